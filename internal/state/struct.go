package state

// Nextcloud tracks the installed workload on this unit.
type Nextcloud struct {
	Fetched     bool   `json:"fetched"`
	Initialized bool   `json:"initialized"`
	Version     string `json:"version"`
	DataDir     string `json:"data_dir"`
}

// Apache tracks the web server configuration step.
type Apache struct {
	Configured bool `json:"configured"`
}

// PHP tracks the PHP module configuration step.
type PHP struct {
	Configured bool `json:"configured"`
}

// Cache holds the connection details received over the redis relation.
type Cache struct {
	Available bool   `json:"available"`
	Host      string `json:"host"`
	Port      string `json:"port"`
}

// Database holds the connection details received over the db relation.
type Database struct {
	Available bool `json:"available"`

	ConnString  string   `json:"conn_string"`
	URI         string   `json:"uri"`
	Name        string   `json:"name"`
	User        string   `json:"user"`
	Password    string   `json:"password"`
	Host        string   `json:"host"`
	Port        string   `json:"port"`
	Kind        string   `json:"kind"`
	StandbyURIs []string `json:"standby_uris"`
}

// State represents the on-disk persistent unit state.
type State struct {
	path string

	StateVersion int `json:"state_version"`

	Nextcloud Nextcloud `json:"nextcloud"`
	Apache    Apache    `json:"apache"`
	PHP       PHP       `json:"php"`
	Database  Database  `json:"database"`
	Cache     Cache     `json:"cache"`

	// DeferredEvents holds hook names queued for redelivery because a
	// precondition was not yet met when they last ran.
	DeferredEvents []string `json:"deferred_events"`
}
