package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockName = ".facecrop.lock"

// ErrLocked is returned when another run holds the dataset folder.
var ErrLocked = errors.New("dataset is locked by another run")

// Lock takes an exclusive lock on the dataset folder dir, creating it when
// needed. The returned function releases the lock.
func Lock(dir string) (func() error, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	f := flock.New(filepath.Join(dir, lockName))
	ok, err := f.TryLock()
	if err != nil {
		return nil, fmt.Errorf("could not lock %s: %w", dir, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, dir)
	}
	return f.Unlock, nil
}
