package bbs

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/smartyhall/meshbbs/pkg/validate"
)

// CreateTopic registers a new sysop-defined topic. Topics are never
// auto-discovered from the filesystem — only sysop-created topics are
// postable/listable.
func (s *Store) CreateTopic(name, description string, readLevel, postLevel int, createdBy string) (TopicConfig, error) {
	validName, err := validate.ValidateTopicName(name)
	if err != nil {
		return TopicConfig{}, err
	}
	if _, exists := s.topics[validName]; exists {
		return TopicConfig{}, &AuthorizationError{Action: "topic '" + validName + "' already exists"}
	}
	cfg := TopicConfig{
		Name:        validName,
		Description: description,
		ReadLevel:   readLevel,
		PostLevel:   postLevel,
		CreatedBy:   createdBy,
		CreatedAt:   now(),
	}
	if err := os.MkdirAll(filepath.Join(s.dataDir, "messages", validName), 0o755); err != nil {
		return TopicConfig{}, err
	}
	s.topics[validName] = cfg
	if err := s.saveRuntimeTopics(); err != nil {
		return TopicConfig{}, err
	}
	_ = s.LogAdminAction("CREATE_TOPIC", validName, createdBy, "")
	return cfg, nil
}

// CreateSubtopic registers a child topic under an existing parent.
func (s *Store) CreateSubtopic(parent, name, description string, readLevel, postLevel int, createdBy string) (TopicConfig, error) {
	validParent, err := validate.ValidateTopicName(parent)
	if err != nil {
		return TopicConfig{}, err
	}
	if _, exists := s.topics[validParent]; !exists {
		return TopicConfig{}, &NotFoundError{Kind: "topic", ID: validParent}
	}
	cfg, err := s.CreateTopic(name, description, readLevel, postLevel, createdBy)
	if err != nil {
		return TopicConfig{}, err
	}
	cfg.Parent = validParent
	s.topics[cfg.Name] = cfg
	if err := s.saveRuntimeTopics(); err != nil {
		return TopicConfig{}, err
	}
	return cfg, nil
}

// ListSubtopics returns every topic whose Parent is parent, sorted by
// name.
func (s *Store) ListSubtopics(parent string) []TopicConfig {
	var out []TopicConfig
	for _, cfg := range s.topics {
		if cfg.Parent == parent {
			out = append(out, cfg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ModifyTopic updates an existing topic's editable fields.
func (s *Store) ModifyTopic(name string, description *string, readLevel, postLevel *int, actor string) (TopicConfig, error) {
	validName, err := validate.ValidateTopicName(name)
	if err != nil {
		return TopicConfig{}, err
	}
	cfg, exists := s.topics[validName]
	if !exists {
		return TopicConfig{}, &NotFoundError{Kind: "topic", ID: validName}
	}
	if description != nil {
		cfg.Description = *description
	}
	if readLevel != nil {
		cfg.ReadLevel = *readLevel
	}
	if postLevel != nil {
		cfg.PostLevel = *postLevel
	}
	s.topics[validName] = cfg
	if err := s.saveRuntimeTopics(); err != nil {
		return TopicConfig{}, err
	}
	_ = s.LogAdminAction("MODIFY_TOPIC", validName, actor, "")
	return cfg, nil
}

// DeleteTopic removes a topic's configuration (but leaves any posted
// messages on disk for audit purposes).
func (s *Store) DeleteTopic(name, actor string) error {
	validName, err := validate.ValidateTopicName(name)
	if err != nil {
		return err
	}
	if _, exists := s.topics[validName]; !exists {
		return &NotFoundError{Kind: "topic", ID: validName}
	}
	delete(s.topics, validName)
	delete(s.lockedTopics, validName)
	if err := s.saveRuntimeTopics(); err != nil {
		return err
	}
	if err := s.persistLockedTopics(); err != nil {
		return err
	}
	_ = s.LogAdminAction("DELETE_TOPIC", validName, actor, "")
	return nil
}

// GetTopicConfig returns the configuration for an existing topic.
func (s *Store) GetTopicConfig(name string) (TopicConfig, bool) {
	cfg, ok := s.topics[name]
	return cfg, ok
}

// ListConfiguredTopics returns every sysop-defined topic, sorted by
// name.
func (s *Store) ListConfiguredTopics() []TopicConfig {
	out := make([]TopicConfig, 0, len(s.topics))
	for _, cfg := range s.topics {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// TopicExists reports whether name has been sysop-created.
func (s *Store) TopicExists(name string) bool {
	_, ok := s.topics[name]
	return ok
}

// IsTopicLocked reports whether posting to name is currently locked.
func (s *Store) IsTopicLocked(name string) bool {
	return s.lockedTopics[name]
}

// LockTopic marks a topic read-only and persists the change.
func (s *Store) LockTopic(name, actor string) error {
	if !s.TopicExists(name) {
		return &NotFoundError{Kind: "topic", ID: name}
	}
	s.lockedTopics[name] = true
	if err := s.persistLockedTopics(); err != nil {
		return err
	}
	_ = s.LogAdminAction("LOCK_TOPIC", name, actor, "")
	return nil
}

// UnlockTopic re-enables posting to a locked topic.
func (s *Store) UnlockTopic(name, actor string) error {
	if !s.TopicExists(name) {
		return &NotFoundError{Kind: "topic", ID: name}
	}
	delete(s.lockedTopics, name)
	if err := s.persistLockedTopics(); err != nil {
		return err
	}
	_ = s.LogAdminAction("UNLOCK_TOPIC", name, actor, "")
	return nil
}

// ListMessageTopics returns the names of every topic directory under
// the messages root, whether or not it still has a sysop configuration
// entry. A directory is listed even when it holds no messages.
func (s *Store) ListMessageTopics() ([]string, error) {
	dir := filepath.Join(s.dataDir, "messages")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
