package validate

import (
	"encoding/json"
	"strings"
)

// SecureJSONParse decodes content into T after enforcing a size ceiling
// and stripping any leading NUL bytes left behind by an interrupted
// write. Valid JSON never begins with NUL, so this strip is always safe.
func SecureJSONParse[T any](content string, maxBytes int) (T, error) {
	var out T
	if len(content) > maxBytes {
		return out, newErr("json", "exceeds size limit")
	}
	normalized := strings.TrimLeft(content, "\x00")
	if err := json.Unmarshal([]byte(normalized), &out); err != nil {
		return out, newErr("json", "invalid format")
	}
	return out, nil
}
