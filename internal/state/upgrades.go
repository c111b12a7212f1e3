package state

import (
	"fmt"
)

// upgradeFuncs is a list of functions to apply in order to bring an older
// state file up to the current version. The function at index N upgrades a
// version N state to version N+1.
var upgradeFuncs = []func(*State) error{
	// V0 state files predate versioning and may lack a data directory.
	func(s *State) error {
		if s.Nextcloud.DataDir == "" {
			s.Nextcloud.DataDir = defaultDataDir
		}

		return nil
	},
}

func (s *State) upgrade() error {
	if s.StateVersion > currentStateVersion {
		return fmt.Errorf("state file version %d is newer than supported version %d", s.StateVersion, currentStateVersion)
	}

	for version := s.StateVersion; version < currentStateVersion; version++ {
		err := upgradeFuncs[version](s)
		if err != nil {
			return err
		}

		s.StateVersion = version + 1
	}

	return nil
}
