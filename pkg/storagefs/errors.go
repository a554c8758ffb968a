// Package storagefs implements the lock-then-write/append/replace commit
// discipline every on-disk BBS and TinyMUSH record uses: an advisory
// cross-process file lock guards the write, and whole-file replacements
// go through a temp-file-then-rename so a crash mid-write never leaves a
// torn record behind.
package storagefs

import "errors"

var (
	// ErrLockTimeout is returned when a per-path lock could not be
	// acquired within lockTimeout.
	ErrLockTimeout = errors.New("storagefs: lock acquisition timeout")

	// ErrSizeLimitExceeded is returned by ReadFileChecked when a file is
	// larger than the caller's declared ceiling.
	ErrSizeLimitExceeded = errors.New("storagefs: file size exceeds limit")

	// ErrCorruptRecord names a record that fails to decode after passing
	// its size check. No function in this package returns it; the
	// directory readers in pkg/bbs and pkg/world skip such a record
	// without logging it.
	ErrCorruptRecord = errors.New("storagefs: corrupt record")
)
