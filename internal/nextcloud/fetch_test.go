package nextcloud_test

import (
	"archive/tar"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"github.com/nextcloud-charmers/nextcloud-charm/internal/nextcloud"
)

func makeTarball(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer

	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "nextcloud/", Typeflag: tar.TypeDir, Mode: 0o755}))

	content := []byte("<?php // placeholder\n")
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "nextcloud/index.php", Typeflag: tar.TypeReg, Mode: 0o644, Size: int64(len(content))}))

	_, err := tw.Write(content)
	require.NoError(t, err)

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	return buf.Bytes()
}

func TestExtract(t *testing.T) {
	t.Parallel()

	dest := t.TempDir()

	err := nextcloud.Extract(bytes.NewReader(makeTarball(t)), "nextcloud-18.0.3.tar.gz", dest)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dest, "nextcloud", "index.php"))
	require.NoError(t, err)
	require.Equal(t, "<?php // placeholder\n", string(content))
}

func TestExtractRejectsEscapes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "../evil", Typeflag: tar.TypeReg, Mode: 0o644, Size: 0}))
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	err := nextcloud.Extract(&buf, "evil.tar.gz", t.TempDir())
	require.Error(t, err)
}

func TestExtractRejectsSymlinkTraversal(t *testing.T) {
	t.Parallel()

	// A symlink pointing outside the destination followed by a member
	// nested below it must not write through the link.
	var buf bytes.Buffer

	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "nextcloud/", Typeflag: tar.TypeDir, Mode: 0o755}))
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "nextcloud/data", Typeflag: tar.TypeSymlink, Linkname: "../../outside"}))

	content := []byte("pwned")
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "nextcloud/data/evil.txt", Typeflag: tar.TypeReg, Mode: 0o644, Size: int64(len(content))}))

	_, err := tw.Write(content)
	require.NoError(t, err)

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	parent := t.TempDir()
	dest := filepath.Join(parent, "web")
	require.NoError(t, os.MkdirAll(dest, 0o755))

	err = nextcloud.Extract(&buf, "evil.tar.gz", dest)
	require.Error(t, err)
	require.NoFileExists(t, filepath.Join(parent, "outside", "evil.txt"))
}

func TestExtractUnknownFormat(t *testing.T) {
	t.Parallel()

	err := nextcloud.Extract(bytes.NewReader(nil), "nextcloud.zip", t.TempDir())
	require.Error(t, err)
}

func TestEnsureDataDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "data")

	require.NoError(t, nextcloud.EnsureDataDir(dir))
	require.FileExists(t, filepath.Join(dir, ".ocdata"))

	// Idempotent.
	require.NoError(t, nextcloud.EnsureDataDir(dir))
}

func TestWriteAndReadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config", "config.php")
	content := "<?php $CONFIG = array();\n"

	require.NoError(t, nextcloud.WriteConfig(path, content))

	got, err := nextcloud.ReadConfig(path)
	require.NoError(t, err)
	require.Equal(t, content, got)
}
