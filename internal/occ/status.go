package occ

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// Status represents the JSON output of "occ status".
type Status struct {
	Installed       bool   `json:"installed"`
	Version         string `json:"version"`
	VersionString   string `json:"versionstring"`
	Edition         string `json:"edition"`
	Maintenance     bool   `json:"maintenance"`
	NeedsDBUpgrade  bool   `json:"needsDbUpgrade"`
	ExtendedSupport bool   `json:"extendedSupport"`
}

// ErrNoStatus is returned when the command output contains no JSON payload.
var ErrNoStatus = errors.New("no status payload in occ output")

// Status returns the current Nextcloud status.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	output, err := c.run(ctx, "status", "--output=json", "--no-warnings")
	if err != nil {
		return nil, err
	}

	return ParseStatusOutput(output)
}

// ParseStatusOutput extracts the status JSON from raw command output. The CLI
// may print warnings before the payload, so only the last whitespace-delimited
// token is parsed.
func ParseStatusOutput(output string) (*Status, error) {
	fields := strings.Fields(output)
	if len(fields) == 0 {
		return nil, ErrNoStatus
	}

	var status Status

	err := json.Unmarshal([]byte(fields[len(fields)-1]), &status)
	if err != nil {
		return nil, err
	}

	return &status, nil
}
