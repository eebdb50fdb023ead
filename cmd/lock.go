package cmd

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"

	"github.com/tldv-downloader/tldv/internal/utils"
)

// ErrOutputLocked means another tldv process is writing the same file.
var ErrOutputLocked = errors.New("output file is being written by another tldv process")

// acquireOutputLock takes an exclusive lock next to the output file.
func acquireOutputLock(output string) (*flock.Flock, error) {
	lock := flock.New(output + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", output, err)
	}
	if !ok {
		return nil, ErrOutputLocked
	}
	return lock, nil
}

// releaseOutputLock unlocks but keeps the lock file. Removing it would let a
// waiting process lock the old inode while another creates and locks a new one.
func releaseOutputLock(lock *flock.Flock) {
	if err := lock.Unlock(); err != nil {
		utils.Debug("failed to unlock %s: %v", lock.Path(), err)
	}
}
