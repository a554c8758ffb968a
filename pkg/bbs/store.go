// Package bbs implements user accounts, message boards, runtime topic
// configuration, and audit logging for the mesh bulletin board — the
// storage and authorization core every command in pkg/command acts
// through.
package bbs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/smartyhall/meshbbs/pkg/storagefs"
	"github.com/smartyhall/meshbbs/pkg/validate"
)

const (
	maxUserFileBytes    = 100_000
	maxMessageFileBytes = 1_000_000
	defaultMaxMessageBytes = 230
)

// Store is the main persistence interface for BBS accounts, messages,
// and topic configuration, rooted at a single data directory.
type Store struct {
	dataDir         string
	argon2          argon2Params
	maxMessageBytes int

	lockedTopics map[string]bool
	topics       map[string]TopicConfig
}

// New initializes storage rooted at dataDir, creating the standard
// subdirectories and loading any existing locked-topic/runtime-topic
// configuration.
func New(dataDir string) (*Store, error) {
	for _, sub := range []string{"messages", "users", "files"} {
		if err := os.MkdirAll(filepath.Join(dataDir, sub), 0o755); err != nil {
			return nil, err
		}
	}
	locked, err := loadLockedTopics(dataDir)
	if err != nil {
		return nil, err
	}
	topics, err := loadRuntimeTopics(dataDir)
	if err != nil {
		return nil, err
	}
	return &Store{
		dataDir:         dataDir,
		argon2:          defaultArgon2Params(),
		maxMessageBytes: defaultMaxMessageBytes,
		lockedTopics:    locked,
		topics:          topics,
	}, nil
}

// SetMaxMessageBytes caps the max message size at (at most) the
// Meshtastic frame budget, same as the original system's
// `max.min(230)` clamp.
func (s *Store) SetMaxMessageBytes(max int) {
	if max > defaultMaxMessageBytes {
		max = defaultMaxMessageBytes
	}
	s.maxMessageBytes = max
}

// BaseDir returns the data directory this Store is rooted at.
func (s *Store) BaseDir() string { return s.dataDir }

func loadLockedTopics(dataDir string) (map[string]bool, error) {
	path := filepath.Join(dataDir, "locked_topics.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]bool{}, nil
		}
		return nil, err
	}
	list, err := validate.SecureJSONParse[[]string](string(data), maxUserFileBytes)
	if err != nil {
		return map[string]bool{}, nil
	}
	out := make(map[string]bool, len(list))
	for _, t := range list {
		out[t] = true
	}
	return out, nil
}

func (s *Store) persistLockedTopics() error {
	list := make([]string, 0, len(s.lockedTopics))
	for t := range s.lockedTopics {
		list = append(list, t)
	}
	sort.Strings(list)
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return storagefs.WriteFileLocked(filepath.Join(s.dataDir, "locked_topics.json"), data)
}

func loadRuntimeTopics(dataDir string) (map[string]TopicConfig, error) {
	path := filepath.Join(dataDir, "topics.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]TopicConfig{}, nil
		}
		return nil, err
	}
	var tf topicsFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, err
	}
	if tf.Topics == nil {
		tf.Topics = map[string]TopicConfig{}
	}
	return tf.Topics, nil
}

func (s *Store) saveRuntimeTopics() error {
	data, err := json.MarshalIndent(topicsFile{Topics: s.topics}, "", "  ")
	if err != nil {
		return err
	}
	return storagefs.WriteFileLocked(filepath.Join(s.dataDir, "topics.json"), data)
}

func newMessageID() string {
	return uuid.NewString()
}

func now() time.Time {
	return time.Now().UTC()
}
