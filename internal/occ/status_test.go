package occ_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nextcloud-charmers/nextcloud-charm/internal/occ"
)

var goldStatus = `{"installed":true,"version":"18.0.3.0","versionstring":"18.0.3","edition":"","maintenance":false,"needsDbUpgrade":false,"extendedSupport":false}`

func TestParseStatusOutput(t *testing.T) {
	t.Parallel()

	status, err := occ.ParseStatusOutput(goldStatus)
	require.NoError(t, err)

	require.True(t, status.Installed)
	require.Equal(t, "18.0.3.0", status.Version)
	require.Equal(t, "18.0.3", status.VersionString)
	require.False(t, status.Maintenance)
	require.False(t, status.NeedsDBUpgrade)
}

func TestParseStatusOutputLeadingWarnings(t *testing.T) {
	t.Parallel()

	// The CLI prints PHP warnings ahead of the payload; only the last
	// whitespace-delimited token is parsed.
	output := "PHP Warning: something something\nDeprecated: another warning\n" + goldStatus + "\n"

	status, err := occ.ParseStatusOutput(output)
	require.NoError(t, err)
	require.Equal(t, "18.0.3", status.VersionString)
}

func TestParseStatusOutputEmpty(t *testing.T) {
	t.Parallel()

	_, err := occ.ParseStatusOutput("  \n")
	require.ErrorIs(t, err, occ.ErrNoStatus)
}

func TestParseStatusOutputGarbage(t *testing.T) {
	t.Parallel()

	_, err := occ.ParseStatusOutput("maintenance:mode enabled")
	require.Error(t, err)
}
