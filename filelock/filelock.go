package filelock

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// ErrLocked is returned from Lock if the lockfile already exists.
var ErrLocked = errors.New("specified lockfile is locked")

// retryInterval is how often LockTimeout retries a held lock.
const retryInterval = 10 * time.Millisecond

// FileLock is a handle to an on-disk file lock.
type FileLock struct {
	path string
}

// Lock attempts to acquire a lock on the file at `filename` by creating
// `filename.lck`. Returns ErrLocked if another holder created it first.
func Lock(filename string) (*FileLock, error) {
	absolutePath, err := filepath.Abs(filename + ".lck")
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(absolutePath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0600)
	if os.IsExist(err) {
		return nil, ErrLocked
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not create lockfile")
	}
	if err := f.Close(); err != nil {
		os.Remove(absolutePath)
		return nil, err
	}

	return &FileLock{
		path: absolutePath,
	}, nil
}

// LockTimeout calls Lock until it succeeds or `timeout` has passed, in which
// case ErrLocked is returned.
func LockTimeout(filename string, timeout time.Duration) (*FileLock, error) {
	deadline := time.Now().Add(timeout)
	for {
		fl, err := Lock(filename)
		if err != ErrLocked || !time.Now().Before(deadline) {
			return fl, err
		}
		time.Sleep(retryInterval)
	}
}

// Unlock unlocks the FileLock.
func (fl *FileLock) Unlock() error {
	return os.Remove(fl.path)
}
