// Package runlock enforces at-most-one-concurrent-run via a cross-process
// file lock.
package runlock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/starford/dagaz/internal/apperr"
)

// Lock guards the pipeline against overlapping runs. The index document is
// not safe under concurrent mutation, so a second invocation while a run is
// in flight must bail out instead of waiting.
type Lock struct {
	flock *flock.Flock
}

// New creates a lock backed by <dir>/.dagaz.lock.
func New(dir string) *Lock {
	return &Lock{flock: flock.New(filepath.Join(dir, ".dagaz.lock"))}
}

// Acquire attempts to take the lock without blocking. Returns
// apperr.ErrLocked when another process holds it.
func (l *Lock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.flock.Path()), 0o755); err != nil {
		return fmt.Errorf("runlock: create lock dir: %w", err)
	}
	ok, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("runlock: acquire: %w", err)
	}
	if !ok {
		return apperr.ErrLocked
	}
	return nil
}

// Release releases the lock. Safe to call when the lock was never acquired.
func (l *Lock) Release() error {
	return l.flock.Unlock()
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.flock.Path()
}
