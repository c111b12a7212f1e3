package apache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nextcloud-charmers/nextcloud-charm/internal/apache"
)

func TestRender(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "nextcloud.conf")

	err := apache.Render(target, apache.SiteOptions{DocumentRoot: "/var/www/nextcloud"})
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)

	require.Contains(t, string(content), "<VirtualHost *:80>")
	require.Contains(t, string(content), "DocumentRoot /var/www/nextcloud")
	require.Contains(t, string(content), "AllowOverride All")
}
