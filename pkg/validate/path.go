package validate

import (
	"path/filepath"
	"strings"
)

const upperHex = "0123456789ABCDEF"

// SafeFilename percent-encodes every non-alphanumeric byte of name so the
// result is always a single filesystem-safe path component, regardless
// of what the caller supplied.
func SafeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}

// SecureTopicPath validates topic and joins it under dataDir/messages,
// refusing to return a path that escapes dataDir.
func SecureTopicPath(dataDir, topic string) (string, error) {
	validTopic, err := ValidateTopicName(topic)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dataDir, "messages", validTopic)
	base := filepath.Clean(dataDir)
	if !strings.HasPrefix(filepath.Clean(path), base) {
		return "", newErr("path", "traversal attempt")
	}
	return path, nil
}

// SecureMessagePath validates topic and messageID and returns the JSON
// file path for that message.
func SecureMessagePath(dataDir, topic, messageID string) (string, error) {
	validTopic, err := ValidateTopicName(topic)
	if err != nil {
		return "", err
	}
	validID, err := ValidateMessageID(messageID)
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "messages", validTopic, validID+".json"), nil
}
