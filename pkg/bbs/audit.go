package bbs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/smartyhall/meshbbs/pkg/frame"
	"github.com/smartyhall/meshbbs/pkg/storagefs"
	"github.com/smartyhall/meshbbs/pkg/validate"
)

func (s *Store) adminAuditPath() string {
	return filepath.Join(s.dataDir, "admin_audit.log")
}

func (s *Store) deletionAuditPath() string {
	return filepath.Join(s.dataDir, "deletion_audit.log")
}

// LogAdminAction appends an admin-audit entry (promote/demote, topic
// lock/unlock, topic create/delete, etc).
func (s *Store) LogAdminAction(action, target, actor, details string) error {
	entry := AdminAuditEntry{
		Timestamp: now(),
		Action:    action,
		Target:    target,
		Actor:     actor,
		Details:   details,
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	line = append(line, '\n')
	return storagefs.AppendFileLocked(s.adminAuditPath(), line)
}

// GetAdminAuditPage returns a single page of admin-audit entries, most
// recent first.
func (s *Store) GetAdminAuditPage(page int) ([]AdminAuditEntry, int, error) {
	entries, err := readJSONLEntries[AdminAuditEntry](s.adminAuditPath())
	if err != nil {
		return nil, 0, err
	}
	reverseAdminEntries(entries)
	items, total := frame.Paginate(entries, page)
	return items, total, nil
}

// AppendDeletionAudit records a message deletion.
func (s *Store) AppendDeletionAudit(topic, id, actor string) error {
	entry := DeletionAuditEntry{
		Timestamp: now(),
		Topic:     topic,
		ID:        id,
		Actor:     actor,
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	line = append(line, '\n')
	return storagefs.AppendFileLocked(s.deletionAuditPath(), line)
}

// GetDeletionAuditPage returns a single page of deletion-audit entries,
// most recent first.
func (s *Store) GetDeletionAuditPage(page int) ([]DeletionAuditEntry, int, error) {
	entries, err := readJSONLEntries[DeletionAuditEntry](s.deletionAuditPath())
	if err != nil {
		return nil, 0, err
	}
	reverseDeletionEntries(entries)
	items, total := frame.Paginate(entries, page)
	return items, total, nil
}

func readJSONLEntries[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if err := validate.ValidateFileSize(int64(len(data)), maxMessageFileBytes); err != nil {
		return nil, err
	}
	var out []T
	for _, line := range splitLines(data) {
		if len(line) == 0 {
			continue
		}
		var v T
		if err := json.Unmarshal(line, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func splitLines(data []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, data[start:i])
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, data[start:])
	}
	return lines
}

func reverseAdminEntries(e []AdminAuditEntry) {
	for i, j := 0, len(e)-1; i < j; i, j = i+1, j-1 {
		e[i], e[j] = e[j], e[i]
	}
}

func reverseDeletionEntries(e []DeletionAuditEntry) {
	for i, j := 0, len(e)-1; i < j; i, j = i+1, j-1 {
		e[i], e[j] = e[j], e[i]
	}
}
