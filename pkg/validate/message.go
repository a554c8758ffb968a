package validate

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// ValidateMessageID checks that id is a well-formed UUID, rejecting
// anything that could be mistaken for a path component.
func ValidateMessageID(id string) (string, error) {
	trimmed := strings.TrimSpace(id)
	if _, err := uuid.Parse(trimmed); err != nil {
		return "", newErr("message_id", "must be a valid UUID")
	}
	return trimmed, nil
}

// SanitizeMessageContent enforces a byte-length ceiling and strips
// control characters other than newline and tab.
func SanitizeMessageContent(content string, maxBytes int) (string, error) {
	if len(content) > maxBytes {
		return "", newErr("content", "too long")
	}
	var b strings.Builder
	b.Grow(len(content))
	for _, c := range content {
		if !unicode.IsControl(c) || c == '\n' || c == '\t' {
			b.WriteRune(c)
		}
	}
	return b.String(), nil
}

// ValidateFileSize rejects sizes above max before a file is read into
// memory, bounding read-time denial-of-service from oversized records.
func ValidateFileSize(size, max int64) error {
	if size > max {
		return newErr("file_size", "exceeds limit")
	}
	return nil
}
