package hookenv

import (
	"os"
	"strings"
)

// HookName returns the name of the hook being dispatched.
func HookName() string {
	path := os.Getenv("JUJU_DISPATCH_PATH")
	if path != "" {
		return strings.TrimPrefix(path, "hooks/")
	}

	return os.Getenv("JUJU_HOOK_NAME")
}

// ActionName returns the name of the action being dispatched.
func ActionName() string {
	name := os.Getenv("JUJU_ACTION_NAME")
	if name != "" {
		return name
	}

	path := os.Getenv("JUJU_DISPATCH_PATH")

	return strings.TrimPrefix(path, "actions/")
}

// RelationID returns the relation ID for the current relation hook, if any.
func RelationID() string {
	return os.Getenv("JUJU_RELATION_ID")
}

// RemoteUnit returns the remote unit that triggered the current relation hook.
func RemoteUnit() string {
	return os.Getenv("JUJU_REMOTE_UNIT")
}

// RemoteApp returns the remote application for the current relation hook.
func RemoteApp() string {
	return os.Getenv("JUJU_REMOTE_APP")
}

// DepartingUnit returns the unit leaving the relation during a departed hook.
func DepartingUnit() string {
	return os.Getenv("JUJU_DEPARTING_UNIT")
}

// UnitName returns the local unit name.
func UnitName() string {
	return os.Getenv("JUJU_UNIT_NAME")
}
