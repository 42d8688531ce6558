package runlock

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAcquireIsExclusive(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	root := t.TempDir()

	first, err := Acquire(root)
	if err != nil {
		t.Fatalf("first Acquire: %v", err)
	}
	t.Cleanup(func() { _ = first.Release() })

	if _, err := Acquire(root); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked for second acquire, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	again, err := Acquire(root)
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	if err := again.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func TestDifferentRootsDoNotConflict(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	a, err := Acquire(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer a.Release()
	b, err := Acquire(t.TempDir())
	if err != nil {
		t.Fatalf("unrelated root should not be locked: %v", err)
	}
	defer b.Release()
}

func TestLockFileOutsideRoot(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	root := t.TempDir()

	lock, err := Acquire(root)
	if err != nil {
		t.Fatal(err)
	}
	defer lock.Release()

	if filepath.Dir(lock.Path()) != tmp {
		t.Fatalf("expected lock in %q, got %q", tmp, lock.Path())
	}
	if !strings.HasPrefix(filepath.Base(lock.Path()), "mediashrink-") {
		t.Fatalf("unexpected lock name %q", lock.Path())
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("asset root must not be written to, found %v", entries)
	}
}

func TestPathForNormalizesRoot(t *testing.T) {
	root := t.TempDir()
	a, err := PathFor(root)
	if err != nil {
		t.Fatal(err)
	}
	b, err := PathFor(root + string(filepath.Separator) + ".")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("expected equivalent roots to share a lock: %q vs %q", a, b)
	}
}

func TestSymlinkedRootSharesLock(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	real := t.TempDir()
	link := filepath.Join(t.TempDir(), "assets-link")
	if err := os.Symlink(real, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	first, err := Acquire(real)
	if err != nil {
		t.Fatalf("Acquire real root: %v", err)
	}
	defer first.Release()

	if _, err := Acquire(link); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked through symlink, got %v", err)
	}
	viaLink, err := PathFor(link)
	if err != nil {
		t.Fatal(err)
	}
	if viaLink != first.Path() {
		t.Fatalf("expected shared lock file, got %q and %q", viaLink, first.Path())
	}
}

func TestReleaseNil(t *testing.T) {
	var l *Lock
	if err := l.Release(); err != nil {
		t.Fatalf("nil release: %v", err)
	}
}
