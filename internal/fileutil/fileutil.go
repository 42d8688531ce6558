// Package fileutil holds the file copy and replacement primitives used when
// swapping re-encoded output over an original asset.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// rename is swapped in tests to simulate cross-device moves.
var rename = os.Rename

// CopyFileVerified streams src to dst with SHA256 + size integrity verification
// and fsyncs dst. Removes dst on mismatch.
func CopyFileVerified(src, dst string, mode fs.FileMode) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		return err
	}
	if err := out.Sync(); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if written != srcSize {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}

	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = os.Remove(dst)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}

	return nil
}

// ReplaceFile moves src over dst so that dst is observed either with its old
// content or with the complete new content, never a mixture. mode is applied
// to src before the move.
//
// When src and dst live on different filesystems, src is first copied into a
// hidden temporary file next to dst and that file is renamed into place.
func ReplaceFile(src, dst string, mode fs.FileMode) error {
	if err := os.Chmod(src, mode.Perm()); err != nil {
		return fmt.Errorf("set mode on replacement: %w", err)
	}

	err := rename(src, dst)
	if err == nil {
		return syncDir(filepath.Dir(dst))
	}
	if !IsCrossDevice(err) {
		return fmt.Errorf("rename replacement: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create sibling temp: %w", err)
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()

	if err := CopyFileVerified(src, tmpPath, mode.Perm()); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("copy across filesystems: %w", err)
	}
	// CreateTemp forces 0600 and umask may have trimmed the open mode.
	if err := os.Chmod(tmpPath, mode.Perm()); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("set mode on sibling temp: %w", err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename sibling temp: %w", err)
	}
	_ = os.Remove(src)
	return syncDir(filepath.Dir(dst))
}

// IsCrossDevice reports whether err came from renaming across filesystems.
func IsCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("open directory for sync: %w", err)
	}
	defer d.Close()
	if err := d.Sync(); err != nil && !errors.Is(err, unix.EINVAL) {
		return fmt.Errorf("sync directory: %w", err)
	}
	return nil
}
