package storagefs

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileLocked atomically replaces path's contents with data: the
// lock on path+".lock" is held while a sibling temp file is written,
// fsynced, and renamed over path, then the containing directory is
// fsynced so the rename itself is durable. This is the whole-file
// analogue of the teacher's asyncWriter, which only ever appends — BBS
// and TinyMUSH records need whole-record replacement (password changes,
// topic config edits, slot-machine jackpot updates) where a half-written
// file would corrupt the record.
func WriteFileLocked(path string, data []byte) error {
	return withLock(path, func() error {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		return writeTempAndRename(dir, path, data)
	})
}

// writeTempAndRename writes data to a unique sibling temp file, fsyncs
// it, renames it over path, then fsyncs the containing directory. Must
// be called with path's lock already held.
func writeTempAndRename(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	return fsyncDir(dir)
}

// AppendFileLocked appends data to path under the same per-path lock as
// WriteFileLocked. It reads the existing content (if any), concatenates,
// and commits the whole file through the same temp-then-rename path —
// so a reader never observes a half-appended record, the same guarantee
// WriteFileLocked gives a whole-record replace. Used for JSONL logs
// (admin audit, deletion audit).
func AppendFileLocked(path string, data []byte) error {
	return withLock(path, func() error {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		existing, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		combined := append(existing, data...)
		return writeTempAndRename(dir, path, combined)
	})
}

// ReadFileChecked reads path after verifying its size does not exceed
// maxBytes, bounding memory use and read-time DoS from oversized files.
func ReadFileChecked(path string, maxBytes int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrSizeLimitExceeded, path, info.Size(), maxBytes)
	}
	return os.ReadFile(path)
}

func fsyncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
