package storagefs

import (
	"context"
	"time"

	"github.com/gofrs/flock"
)

// lockTimeout bounds how long a caller waits for a per-path advisory
// lock before giving up, mirroring the teacher's asyncWriter discipline.
const lockTimeout = 5 * time.Second

// withLock acquires an advisory lock on path+".lock" for the duration of
// fn, releasing it on return. Used to serialize concurrent writers (and
// readers that must not observe a half-written file) across processes.
func withLock(path string, fn func() error) error {
	fl := flock.New(path + ".lock")
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	locked, err := fl.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil || !locked {
		return ErrLockTimeout
	}
	defer fl.Unlock()

	return fn()
}
