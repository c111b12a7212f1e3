// Package api holds the structs served by the charm's introspection API.
package api

// DatabaseState is the sanitized view of the database relation state.
type DatabaseState struct {
	Available bool   `json:"available" yaml:"available"`
	Name      string `json:"name"      yaml:"name"`
	Host      string `json:"host"      yaml:"host"`
	Port      string `json:"port"      yaml:"port"`
	Kind      string `json:"kind"      yaml:"kind"`
}

// CacheState is the view of the cache backend relation state.
type CacheState struct {
	Available bool   `json:"available" yaml:"available"`
	Host      string `json:"host"      yaml:"host"`
	Port      string `json:"port"      yaml:"port"`
}

// CharmState is a read-only snapshot of the unit's lifecycle progress.
type CharmState struct {
	Fetched          bool   `json:"fetched"           yaml:"fetched"`
	Initialized      bool   `json:"initialized"       yaml:"initialized"`
	ApacheConfigured bool   `json:"apache_configured" yaml:"apache_configured"`
	PHPConfigured    bool   `json:"php_configured"    yaml:"php_configured"`
	Version          string `json:"version"           yaml:"version"`

	Database DatabaseState `json:"database" yaml:"database"`
	Cache    CacheState    `json:"cache"    yaml:"cache"`

	// DeferredEvents lists hooks queued for redelivery.
	DeferredEvents []string `json:"deferred_events" yaml:"deferred_events"`
}
