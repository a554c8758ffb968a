package validate

import "strings"

var reservedTopicNames = map[string]bool{
	"con": true, "prn": true, "aux": true, "nul": true,
	"com1": true, "com2": true, "com3": true, "com4": true, "com5": true, "com6": true, "com7": true, "com8": true, "com9": true,
	"lpt1": true, "lpt2": true, "lpt3": true, "lpt4": true, "lpt5": true, "lpt6": true, "lpt7": true, "lpt8": true, "lpt9": true,
	".": true, "..": true, "config": true, "data": true, "admin": true,
}

// ValidateTopicName validates a runtime topic identifier for filesystem
// safety and returns the lowercased, trimmed form.
func ValidateTopicName(topic string) (string, error) {
	trimmed := strings.TrimSpace(topic)
	if trimmed == "" {
		return "", newErr("topic", "cannot be empty")
	}
	if len(trimmed) > 50 {
		return "", newErr("topic", "too long (max 50 characters)")
	}
	for _, c := range trimmed {
		isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !isAlnum && c != '_' && c != '-' {
			return "", newErr("topic", "must contain only letters, numbers, underscore, and hyphen")
		}
	}
	lower := strings.ToLower(trimmed)
	if reservedTopicNames[lower] {
		return "", newErr("topic", "reserved name")
	}
	return lower, nil
}
