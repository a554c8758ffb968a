package bbs

import (
	"bytes"
	"encoding/json"
	"time"
)

// Reply is a structured message reply.
type Reply struct {
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
	Content   string    `json:"content"`
}

// ReplyEntry decodes either a structured Reply object or a legacy bare
// JSON string (an old reply format predating structured replies), but
// always encodes as the structured form. Grounded on the teacher's
// discriminator-probe decode idiom (pkg/types/unmarshal.go): peek at the
// raw token to tell an object from a string rather than depending on
// error-swallowing.
type ReplyEntry Reply

func (r ReplyEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(Reply(r))
}

func (r *ReplyEntry) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var legacy string
		if err := json.Unmarshal(data, &legacy); err != nil {
			return err
		}
		*r = ReplyEntry{Content: legacy}
		return nil
	}
	var structured Reply
	if err := json.Unmarshal(data, &structured); err != nil {
		return err
	}
	*r = ReplyEntry(structured)
	return nil
}

// Message is a single board post, optionally carrying replies.
type Message struct {
	ID        string       `json:"id"`
	Topic     string       `json:"topic"`
	Author    string       `json:"author"`
	Title     string       `json:"title,omitempty"`
	Content   string       `json:"content"`
	Timestamp time.Time    `json:"timestamp"`
	Replies   []ReplyEntry `json:"replies,omitempty"`
	Pinned    bool         `json:"pinned,omitempty"`
}

// DeletionAuditEntry records a message deletion.
type DeletionAuditEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Topic     string    `json:"topic"`
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`
}

// AdminAuditEntry records an administrative action (promote/demote,
// topic lock, etc).
type AdminAuditEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Target    string    `json:"target,omitempty"`
	Actor     string    `json:"actor"`
	Details   string    `json:"details,omitempty"`
}

// User is a BBS account. UserLevel serializes under the legacy
// "access_level" key for wire compatibility with hand-authored data
// files and the system this was distilled from.
type User struct {
	Username                 string    `json:"username"`
	NodeID                   string    `json:"node_id,omitempty"`
	UserLevel                int       `json:"access_level"`
	PasswordHash             string    `json:"password_hash,omitempty"`
	FirstLogin               time.Time `json:"first_login"`
	LastLogin                time.Time `json:"last_login"`
	TotalMessages            int       `json:"total_messages"`
	WelcomeShownOnRegister   bool      `json:"welcome_shown_on_registration,omitempty"`
	WelcomeShownOnFirstLogin bool      `json:"welcome_shown_on_first_login,omitempty"`
}

// Statistics is a point-in-time summary of board activity.
type Statistics struct {
	TotalMessages        int       `json:"total_messages"`
	TotalUsers           int       `json:"total_users"`
	UptimeStart          time.Time `json:"uptime_start"`
	ModeratorCount       int       `json:"moderator_count"`
	RecentRegistrations  int       `json:"recent_registrations"`
}

// TopicConfig is the runtime (sysop-editable) configuration of a board
// topic, persisted in topics.json.
type TopicConfig struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ReadLevel   int       `json:"read_level"`
	PostLevel   int       `json:"post_level"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	Parent      string    `json:"parent,omitempty"`
}

type topicsFile struct {
	Topics map[string]TopicConfig `json:"topics"`
}
