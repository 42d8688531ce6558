// Package runlock prevents two mediashrink runs from processing the same
// asset root at once.
//
// The lock file lives in the OS temp directory, named after a hash of the
// resolved absolute root, so the asset tree itself is never written to for locking.
package runlock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked reports that another run holds the lock for the same root.
var ErrLocked = errors.New("another mediashrink run is already processing this root")

// Lock is a held run lock.
type Lock struct {
	path string
	lock *flock.Flock
}

// PathFor returns the lock file location for root. Symlinks are resolved so
// every spelling of the same tree maps to one lock.
func PathFor(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	name := "mediashrink-" + hex.EncodeToString(sum[:6]) + ".lock"
	return filepath.Join(os.TempDir(), name), nil
}

// Acquire takes the lock for root without blocking. It returns ErrLocked
// when another process (or another Lock in this process) holds it.
func Acquire(root string) (*Lock, error) {
	path, err := PathFor(root)
	if err != nil {
		return nil, err
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrLocked, path)
	}
	return &Lock{path: path, lock: lock}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release unlocks. The file is left in place: unlinking it would let a
// waiter lock an orphaned inode. Safe to call on nil.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
