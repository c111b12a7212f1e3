package state

import (
	"encoding/json"
	"os"
	"path/filepath"
)

var currentStateVersion = 1

// defaultDataDir is where Nextcloud keeps user data unless configured otherwise.
var defaultDataDir = "/var/www/nextcloud/data"

// LoadOrCreate parses the on-disk state file and returns a State struct.
// If no file exists, a new one is initialized and written out.
func LoadOrCreate(path string) (*State, error) {
	// A file without a recorded version is treated as version zero and
	// brought up to date by upgrade().
	s := State{
		path: path,
	}

	body, err := os.ReadFile(s.path)
	if err == nil {
		err = json.Unmarshal(body, &s)
		if err != nil {
			return nil, err
		}

		err = s.upgrade()

		return &s, err
	}

	if os.IsNotExist(err) {
		s.initialize()

		err = s.Save()
		if err != nil {
			return nil, err
		}

		return &s, nil
	}

	return nil, err
}

// Save writes out the current state struct into its on-disk storage.
func (s *State) Save() error {
	err := os.MkdirAll(filepath.Dir(s.path), 0o700)
	if err != nil {
		return err
	}

	body, err := json.MarshalIndent(s, "", "\t")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, body, 0o600)
}

// initialize sets default values for a new state file.
func (s *State) initialize() {
	s.StateVersion = currentStateVersion
	s.Nextcloud.DataDir = defaultDataDir
}
