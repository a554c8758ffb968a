package bbs

// Role/privilege level constants. Higher values are a superset of lower
// capabilities.
const (
	LevelUser      = 1
	LevelModerator = 5
	LevelSysop     = 10
)

// RoleName returns the display name for a numeric access level:
// >=10 "Sysop", >=5 "Moderator", otherwise "User".
func RoleName(level int) string {
	switch {
	case level >= LevelSysop:
		return "Sysop"
	case level >= LevelModerator:
		return "Moderator"
	default:
		return "User"
	}
}
