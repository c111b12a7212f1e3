package state

import (
	"errors"
	"slices"
)

// Condition identifies one precondition on the way to an active unit.
type Condition string

const (
	// ConditionFetched requires the Nextcloud sources to be unpacked on disk.
	ConditionFetched Condition = "nextcloud-fetched"

	// ConditionInitialized requires the Nextcloud database schema and admin
	// account to exist.
	ConditionInitialized Condition = "nextcloud-initialized"

	// ConditionApacheConfigured requires the Apache site to be configured.
	ConditionApacheConfigured Condition = "apache-configured"

	// ConditionPHPConfigured requires the PHP module to be configured.
	ConditionPHPConfigured Condition = "php-configured"

	// ConditionDatabaseAvailable requires a usable database connection.
	ConditionDatabaseAvailable Condition = "database-available"
)

// Message returns the operator-facing status message for an unmet condition.
func (c Condition) Message() string {
	switch c {
	case ConditionFetched:
		return "Nextcloud not fetched."
	case ConditionInitialized:
		return "Nextcloud not initialized."
	case ConditionApacheConfigured:
		return "Apache not configured."
	case ConditionPHPConfigured:
		return "PHP not configured."
	case ConditionDatabaseAvailable:
		return "Database not available."
	}

	return string(c)
}

// ErrNotFetched is returned when a transition requires the sources on disk first.
var ErrNotFetched = errors.New("nextcloud sources have not been fetched")

// FirstUnmet returns the first unmet condition, evaluated in the fixed
// fetched, initialized, apache, php, database order. The boolean reports
// whether all conditions are met.
func (s *State) FirstUnmet() (Condition, bool) {
	switch {
	case !s.Nextcloud.Fetched:
		return ConditionFetched, false
	case !s.Nextcloud.Initialized:
		return ConditionInitialized, false
	case !s.Apache.Configured:
		return ConditionApacheConfigured, false
	case !s.PHP.Configured:
		return ConditionPHPConfigured, false
	case !s.Database.Available:
		return ConditionDatabaseAvailable, false
	}

	return "", true
}

// MarkFetched records that the Nextcloud sources are unpacked on disk.
func (s *State) MarkFetched() {
	s.Nextcloud.Fetched = true
}

// MarkInitialized records that the Nextcloud database schema and admin
// account exist. The sources must have been fetched first.
func (s *State) MarkInitialized() error {
	if !s.Nextcloud.Fetched {
		return ErrNotFetched
	}

	s.Nextcloud.Initialized = true

	return nil
}

// MarkApacheConfigured records that the Apache site configuration is in place.
func (s *State) MarkApacheConfigured() {
	s.Apache.Configured = true
}

// MarkPHPConfigured records that the PHP module configuration is in place.
func (s *State) MarkPHPConfigured() {
	s.PHP.Configured = true
}

// SetDatabase records the primary database connection details, or clears all
// of them when called with empty values. Availability is derived from the
// presence of a connection rather than tracked separately, so losing the
// primary also drops availability.
func (s *State) SetDatabase(connString string, uri string, name string, user string, password string, host string, port string) {
	if connString == "" {
		s.Database = Database{}

		return
	}

	s.Database.ConnString = connString
	s.Database.URI = uri
	s.Database.Name = name
	s.Database.User = user
	s.Database.Password = password
	s.Database.Host = host
	s.Database.Port = port
	s.Database.Kind = "pgsql"
	s.Database.Available = true
}

// SetCache records the cache backend address, or clears it when called with
// an empty host. Availability is derived from the presence of a host.
func (s *State) SetCache(host string, port string) {
	if host == "" {
		s.Cache = Cache{}

		return
	}

	s.Cache.Host = host
	s.Cache.Port = port
	s.Cache.Available = true
}

// SetStandbys records the read-only standby connection URIs.
func (s *State) SetStandbys(uris []string) {
	s.Database.StandbyURIs = uris
}

// AdoptPeerConfiguration records that this unit mirrors the leader's rendered
// configuration instead of initializing its own. The configuration file fully
// encodes the database connection, so both initialization and database
// availability are satisfied together.
func (s *State) AdoptPeerConfiguration() error {
	if !s.Nextcloud.Fetched {
		return ErrNotFetched
	}

	s.Nextcloud.Initialized = true
	s.Database.Available = true

	return nil
}

// DeferEvent queues a hook name for redelivery on the next dispatch.
func (s *State) DeferEvent(name string) {
	if slices.Contains(s.DeferredEvents, name) {
		return
	}

	s.DeferredEvents = append(s.DeferredEvents, name)
}

// TakeDeferredEvents empties and returns the queued hook names.
func (s *State) TakeDeferredEvents() []string {
	events := s.DeferredEvents
	s.DeferredEvents = nil

	return events
}
