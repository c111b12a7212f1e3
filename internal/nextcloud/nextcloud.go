// Package nextcloud handles fetching and unpacking the Nextcloud sources.
package nextcloud

import (
	"context"
	"os"
	"path/filepath"

	"github.com/lxc/incus/v6/shared/subprocess"
)

const (
	// WebRoot is the directory the release tarball is unpacked into.
	WebRoot = "/var/www"

	// InstallDir is the resulting Nextcloud installation directory.
	InstallDir = "/var/www/nextcloud"

	// ConfigPath is the Nextcloud configuration file.
	ConfigPath = "/var/www/nextcloud/config/config.php"
)

// dataDirMarker is the marker file Nextcloud expects inside its data directory.
const dataDirMarker = ".ocdata"

// ChownWWWData hands the installation tree over to the web server user.
func ChownWWWData(ctx context.Context, dir string) error {
	_, err := subprocess.RunCommandContext(ctx, "chown", "-R", "www-data:www-data", dir)

	return err
}

// EnsureDataDir creates the data directory and its marker file if missing.
func EnsureDataDir(dir string) error {
	err := os.MkdirAll(dir, 0o700)
	if err != nil {
		return err
	}

	marker := filepath.Join(dir, dataDirMarker)

	_, err = os.Stat(marker)
	if err == nil {
		return nil
	}

	if !os.IsNotExist(err) {
		return err
	}

	return os.WriteFile(marker, nil, 0o640)
}

// WriteConfig writes the given configuration content verbatim to path.
func WriteConfig(path string, content string) error {
	err := os.MkdirAll(filepath.Dir(path), 0o750)
	if err != nil {
		return err
	}

	return os.WriteFile(path, []byte(content), 0o640)
}

// ReadConfig returns the current configuration file content.
func ReadConfig(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return string(content), nil
}
