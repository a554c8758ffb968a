package bbs

import "time"

// GetStatistics returns a point-in-time summary of board activity.
// uptimeStart is passed in by the caller (the process/session owner),
// since the store itself has no notion of process lifetime.
func (s *Store) GetStatistics(uptimeStart time.Time) (Statistics, error) {
	users, err := s.ListAllUsers()
	if err != nil {
		return Statistics{}, err
	}
	topics, err := s.ListMessageTopics()
	if err != nil {
		return Statistics{}, err
	}

	totalMessages := 0
	for _, t := range topics {
		msgs, err := s.loadTopicMessages(t)
		if err != nil {
			return Statistics{}, err
		}
		totalMessages += len(msgs)
	}

	moderators := 0
	recentRegistrations := 0
	cutoff := time.Now().UTC().AddDate(0, 0, -7)
	for _, u := range users {
		if u.UserLevel >= LevelModerator {
			moderators++
		}
		if u.FirstLogin.After(cutoff) {
			recentRegistrations++
		}
	}

	return Statistics{
		TotalMessages:       totalMessages,
		TotalUsers:          len(users),
		UptimeStart:         uptimeStart,
		ModeratorCount:      moderators,
		RecentRegistrations: recentRegistrations,
	}, nil
}

// CountUserPosts counts how many stored messages have author as their
// poster, across every topic.
func (s *Store) CountUserPosts(author string) (int, error) {
	topics, err := s.ListMessageTopics()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, t := range topics {
		msgs, err := s.loadTopicMessages(t)
		if err != nil {
			return 0, err
		}
		for _, m := range msgs {
			if m.Author == author {
				count++
			}
		}
	}
	return count, nil
}

// UserDetails is the full account plus derived stats (post count) that
// GetUserDetails returns for admin/profile views.
type UserDetails struct {
	User      User
	PostCount int
}

// GetUserDetails looks up a user and augments it with a live post count.
func (s *Store) GetUserDetails(username string) (*UserDetails, error) {
	user, err := s.GetUser(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	count, err := s.CountUserPosts(username)
	if err != nil {
		return nil, err
	}
	return &UserDetails{User: *user, PostCount: count}, nil
}
