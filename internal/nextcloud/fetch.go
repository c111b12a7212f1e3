package nextcloud

import (
	"archive/tar"
	"compress/bzip2"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/sys/unix"
)

// minFreeBytes is the free disk space required before unpacking the sources.
const minFreeBytes = 1 << 30

// Source describes where to fetch the release tarball from.
type Source struct {
	// URL of the release tarball (.tar.bz2 or .tar.gz).
	URL string

	// SHA256 is the expected hex digest of the tarball. Verification is
	// skipped with a warning when empty.
	SHA256 string
}

// ErrChecksumMismatch is returned when the downloaded tarball fails verification.
var ErrChecksumMismatch = errors.New("source tarball checksum mismatch")

// Fetch downloads the release tarball and unpacks it under destDir.
func Fetch(ctx context.Context, src Source, destDir string) error {
	err := checkFreeSpace(destDir)
	if err != nil {
		return err
	}

	archive, err := download(ctx, src)
	if err != nil {
		return err
	}

	defer func() {
		_ = archive.Close()
		_ = os.Remove(archive.Name())
	}()

	return Extract(archive, src.URL, destDir)
}

// download streams the tarball into a temporary file, verifying its digest.
func download(ctx context.Context, src Source) (*os.File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: %s", src.URL, resp.Status)
	}

	tmp, err := os.CreateTemp("", "nextcloud-source-")
	if err != nil {
		return nil, err
	}

	hash := sha256.New()

	_, err = io.Copy(io.MultiWriter(tmp, hash), resp.Body)
	if err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return nil, err
	}

	if src.SHA256 == "" {
		slog.Warn("No source checksum configured, skipping tarball verification", "url", src.URL)
	} else {
		digest := hex.EncodeToString(hash.Sum(nil))
		if !strings.EqualFold(digest, src.SHA256) {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())

			return nil, fmt.Errorf("%w: got %s, expected %s", ErrChecksumMismatch, digest, src.SHA256)
		}
	}

	_, err = tmp.Seek(0, io.SeekStart)
	if err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return nil, err
	}

	return tmp, nil
}

// Extract unpacks a tarball into destDir, picking the decompressor from the name.
func Extract(archive io.Reader, name string, destDir string) error {
	var reader io.Reader

	switch {
	case strings.HasSuffix(name, ".tar.bz2"):
		reader = bzip2.NewReader(archive)
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		gz, err := gzip.NewReader(archive)
		if err != nil {
			return err
		}

		defer gz.Close()

		reader = gz
	default:
		return fmt.Errorf("unsupported archive format for %q", name)
	}

	tr := tar.NewReader(reader)

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		target, err := safeJoin(destDir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			err = os.MkdirAll(target, os.FileMode(header.Mode)&os.ModePerm)
			if err != nil {
				return err
			}
		case tar.TypeReg:
			err = writeFile(target, tr, os.FileMode(header.Mode)&os.ModePerm)
			if err != nil {
				return err
			}
		case tar.TypeSymlink:
			_ = os.Remove(target)

			err = os.Symlink(header.Linkname, target)
			if err != nil {
				return err
			}
		}
	}
}

func writeFile(target string, content io.Reader, mode os.FileMode) error {
	err := os.MkdirAll(filepath.Dir(target), 0o755)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	_, err = io.Copy(f, content)
	if err != nil {
		_ = f.Close()

		return err
	}

	return f.Close()
}

// safeJoin joins a tar member name onto destDir, rejecting path escapes and
// members nested below a previously extracted symlink, which would otherwise
// redirect the write outside destDir.
func safeJoin(destDir string, name string) (string, error) {
	target := filepath.Join(destDir, name)

	if target != destDir && !strings.HasPrefix(target, destDir+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive member %q escapes destination", name)
	}

	parent := destDir

	for part := range strings.SplitSeq(filepath.Dir(strings.TrimPrefix(target, destDir)), string(os.PathSeparator)) {
		if part == "" || part == "." {
			continue
		}

		parent = filepath.Join(parent, part)

		info, err := os.Lstat(parent)
		if os.IsNotExist(err) {
			break
		}

		if err != nil {
			return "", err
		}

		if info.Mode()&os.ModeSymlink != 0 {
			return "", fmt.Errorf("archive member %q traverses a symlink", name)
		}
	}

	return target, nil
}

// checkFreeSpace refuses to unpack onto a nearly full filesystem.
func checkFreeSpace(dir string) error {
	var stat unix.Statfs_t

	err := unix.Statfs(dir, &stat)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}

	free := stat.Bavail * uint64(stat.Bsize)
	if free < minFreeBytes {
		return fmt.Errorf("not enough free space in %s: %d bytes available", dir, free)
	}

	return nil
}
