// Package runlock serializes runs that write into the same output directory.
//
// The lock file lives in the system temp directory, keyed by the absolute
// output path, so nothing extra ever appears in the output directory itself.
package runlock

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"pngresize/internal/failure"
)

// Lock is a held advisory lock.
type Lock struct {
	path string
	lock *flock.Flock
}

// PathFor returns the lock file path guarding outputDir under baseDir. An
// empty baseDir means os.TempDir().
func PathFor(baseDir, outputDir string) (string, error) {
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return "", fmt.Errorf("resolve output directory %q: %w", outputDir, err)
	}
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	return filepath.Join(baseDir, "pngresize-"+hex.EncodeToString(sum[:8])+".lock"), nil
}

// Acquire takes the lock for outputDir without blocking. A lock held by
// another process fails with failure.ErrLocked.
func Acquire(baseDir, outputDir string) (*Lock, error) {
	path, err := PathFor(baseDir, outputDir)
	if err != nil {
		return nil, failure.Wrap(failure.ErrLocked, "locking", outputDir, err)
	}
	l := flock.New(path)
	ok, err := l.TryLock()
	if err != nil {
		return nil, failure.Wrap(failure.ErrLocked, "locking", outputDir, fmt.Errorf("acquire lock: %w", err))
	}
	if !ok {
		return nil, failure.Wrap(failure.ErrLocked, "locking", outputDir, fmt.Errorf("lock %s held by another run", path))
	}
	return &Lock{path: path, lock: l}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks. The file stays behind: removing it would let a waiter that
// already opened the old inode and a newcomer both believe they hold the lock.
// Safe on a nil Lock.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
