// Package hookenv exposes the Juju hook environment to the charm logic.
//
// All interaction with the controller (leadership, relation data, status,
// action results) goes through the Context interface so handlers can be
// exercised against a fake without a running Juju agent.
package hookenv

import (
	"context"
)

// Status represents a Juju unit workload status.
type Status string

const (
	// StatusActive indicates the workload is up and serving.
	StatusActive Status = "active"

	// StatusBlocked indicates a precondition needs operator or relation attention.
	StatusBlocked Status = "blocked"

	// StatusMaintenance indicates the charm is busy performing work on the unit.
	StatusMaintenance Status = "maintenance"

	// StatusWaiting indicates the charm is waiting on another application.
	StatusWaiting Status = "waiting"
)

// Config holds the charm configuration as returned by config-get.
type Config map[string]any

// String returns the string value for the given option, or "" if unset.
func (c Config) String(key string) string {
	v, ok := c[key]
	if !ok || v == nil {
		return ""
	}

	s, ok := v.(string)
	if !ok {
		return ""
	}

	return s
}

// Context is the capability set the host runtime provides to a running hook.
type Context interface {
	// IsLeader reports whether this unit currently holds application leadership.
	IsLeader(ctx context.Context) (bool, error)

	// ConfigGet returns the full charm configuration.
	ConfigGet(ctx context.Context) (Config, error)

	// RelationIDs returns the active relation IDs for a relation name.
	RelationIDs(ctx context.Context, name string) ([]string, error)

	// RelationUnits returns the remote units present on a relation.
	RelationUnits(ctx context.Context, relationID string) ([]string, error)

	// RelationGet returns the given unit's settings on a relation.
	RelationGet(ctx context.Context, relationID string, unit string) (map[string]string, error)

	// RelationGetApp returns an application databag on a relation.
	RelationGetApp(ctx context.Context, relationID string, app string) (map[string]string, error)

	// RelationSet writes settings into this unit's databag on a relation.
	RelationSet(ctx context.Context, relationID string, values map[string]string) error

	// RelationSetApp writes settings into the local application databag.
	// Only the leader may call this.
	RelationSetApp(ctx context.Context, relationID string, values map[string]string) error

	// PrivateAddress returns the unit's private network address.
	PrivateAddress(ctx context.Context) (string, error)

	// StatusSet updates the unit workload status.
	StatusSet(ctx context.Context, status Status, message string) error

	// OpenPort opens a port range to external traffic.
	OpenPort(ctx context.Context, port string) error

	// ApplicationVersionSet reports the installed workload version.
	ApplicationVersionSet(ctx context.Context, version string) error

	// ActionGet returns the parameters of the running action.
	ActionGet(ctx context.Context) (map[string]any, error)

	// ActionSet records results for the running action.
	ActionSet(ctx context.Context, results map[string]string) error

	// ActionFail marks the running action as failed.
	ActionFail(ctx context.Context, message string) error

	// Log sends a message to the Juju debug log.
	Log(ctx context.Context, message string)
}
