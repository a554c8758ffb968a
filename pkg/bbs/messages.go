package bbs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/smartyhall/meshbbs/pkg/frame"
	"github.com/smartyhall/meshbbs/pkg/storagefs"
	"github.com/smartyhall/meshbbs/pkg/validate"
)

func (s *Store) messagePath(topic, id string) (string, error) {
	return validate.SecureMessagePath(s.dataDir, topic, id)
}

// StoreMessage posts a new message to topic. Posting is double-gated:
// the topic must exist (sysop-created, never auto-discovered from the
// filesystem) and must not be locked, and the poster's level must meet
// the topic's configured PostLevel.
func (s *Store) StoreMessage(topic, author, title, content string, posterLevel int) (Message, error) {
	validTopic, err := validate.ValidateTopicName(topic)
	if err != nil {
		return Message{}, err
	}
	cfg, exists := s.topics[validTopic]
	if !exists {
		return Message{}, &NotFoundError{Kind: "topic", ID: validTopic}
	}
	if s.lockedTopics[validTopic] {
		return Message{}, &AuthorizationError{Action: "post to locked topic '" + validTopic + "'"}
	}
	if posterLevel < cfg.PostLevel {
		return Message{}, &AuthorizationError{Action: "post in #" + validTopic, Required: cfg.PostLevel, Actual: posterLevel}
	}

	cleaned, err := validate.SanitizeMessageContent(content, s.maxMessageBytes)
	if err != nil {
		return Message{}, err
	}
	if strings.TrimSpace(title) == "" {
		for _, line := range strings.Split(cleaned, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				title = frame.Truncate(line, 32)
				break
			}
		}
	}

	msg := Message{
		ID:        newMessageID(),
		Topic:     validTopic,
		Author:    author,
		Title:     title,
		Content:   cleaned,
		Timestamp: now(),
	}
	if err := s.writeMessage(msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}

func (s *Store) writeMessage(msg Message) error {
	path, err := s.messagePath(msg.Topic, msg.ID)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(msg, "", "  ")
	if err != nil {
		return err
	}
	return storagefs.WriteFileLocked(path, data)
}

// GetMessages returns every message in topic ordered (pinned desc,
// timestamp desc, id asc), truncated to limit entries.
func (s *Store) GetMessages(topic string, limit int) ([]Message, error) {
	msgs, err := s.loadTopicMessages(topic)
	if err != nil {
		return nil, err
	}
	sortMessages(msgs)
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

func sortMessages(msgs []Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].Pinned != msgs[j].Pinned {
			return msgs[i].Pinned
		}
		if !msgs[i].Timestamp.Equal(msgs[j].Timestamp) {
			return msgs[i].Timestamp.After(msgs[j].Timestamp)
		}
		return msgs[i].ID < msgs[j].ID
	})
}

func (s *Store) loadTopicMessages(topic string) ([]Message, error) {
	dir, err := validate.SecureTopicPath(s.dataDir, topic)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var msgs []Message
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if err := validate.ValidateFileSize(info.Size(), maxMessageFileBytes); err != nil {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		var m Message
		if err := json.Unmarshal(data, &m); err != nil {
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

func (s *Store) getMessage(topic, id string) (*Message, error) {
	path, err := s.messagePath(topic, id)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if err := validate.ValidateFileSize(info.Size(), maxMessageFileBytes); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// AppendReply attaches a reply to an existing message.
func (s *Store) AppendReply(topic, id, author, content string) (Message, error) {
	msg, err := s.getMessage(topic, id)
	if err != nil {
		return Message{}, err
	}
	if msg == nil {
		return Message{}, &NotFoundError{Kind: "message", ID: id}
	}
	cleaned, err := validate.SanitizeMessageContent(content, s.maxMessageBytes)
	if err != nil {
		return Message{}, err
	}
	msg.Replies = append(msg.Replies, ReplyEntry{Author: author, Timestamp: now(), Content: cleaned})
	if err := s.writeMessage(*msg); err != nil {
		return Message{}, err
	}
	return *msg, nil
}

// DeleteMessage removes a message and records a deletion-audit entry.
func (s *Store) DeleteMessage(topic, id, actor string) error {
	path, err := s.messagePath(topic, id)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return &NotFoundError{Kind: "message", ID: id}
		}
		return err
	}
	if err := os.Remove(path); err != nil {
		return err
	}
	return s.AppendDeletionAudit(topic, id, actor)
}

// SetMessagePinned pins or unpins a message.
func (s *Store) SetMessagePinned(topic, id string, pinned bool) error {
	msg, err := s.getMessage(topic, id)
	if err != nil {
		return err
	}
	if msg == nil {
		return &NotFoundError{Kind: "message", ID: id}
	}
	msg.Pinned = pinned
	return s.writeMessage(*msg)
}

// SetMessageTitle updates a message's title.
func (s *Store) SetMessageTitle(topic, id, title string) error {
	msg, err := s.getMessage(topic, id)
	if err != nil {
		return err
	}
	if msg == nil {
		return &NotFoundError{Kind: "message", ID: id}
	}
	msg.Title = title
	return s.writeMessage(*msg)
}

// CountMessagesSince returns the number of messages across every topic
// with a timestamp at or after since, expressed as a Unix second count
// to keep this comparable with client-reported clocks.
func (s *Store) CountMessagesSince(sinceUnix int64) (int, error) {
	topics, err := s.ListMessageTopics()
	if err != nil {
		return 0, err
	}
	total := 0
	for _, t := range topics {
		n, err := s.CountMessagesSinceInTopic(t, sinceUnix)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// CountMessagesSinceInTopic is CountMessagesSince scoped to one topic.
func (s *Store) CountMessagesSinceInTopic(topic string, sinceUnix int64) (int, error) {
	msgs, err := s.loadTopicMessages(topic)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, m := range msgs {
		if m.Timestamp.Unix() >= sinceUnix {
			count++
		}
	}
	return count, nil
}
