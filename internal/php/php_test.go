package php_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nextcloud-charmers/nextcloud-charm/internal/php"
)

func TestRender(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "nextcloud.ini")

	err := php.Render(target, php.Options{
		MaxFileUploads:    "20",
		UploadMaxFilesize: "512M",
		PostMaxSize:       "512M",
		MemoryLimit:       "512M",
	})
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)

	require.Contains(t, string(content), "max_file_uploads = 20")
	require.Contains(t, string(content), "upload_max_filesize = 512M")
	require.Contains(t, string(content), "post_max_size = 512M")
	require.Contains(t, string(content), "memory_limit = 512M")
}
