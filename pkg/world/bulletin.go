package world

import (
	"os"
	"path/filepath"
	"sort"
)

// --- Bulletin boards ---

func (s *Store) boardPath(board, id string) string {
	return filepath.Join(s.dataDir, "bulletins", safeID(board), safeID(id)+".json")
}

func (s *Store) PutBulletin(board string, m BulletinMessage) error {
	return writeRecord(s.boardPath(board, m.ID), m)
}

func (s *Store) GetBulletin(board, id string) (BulletinMessage, error) {
	return readRecord[BulletinMessage](s.boardPath(board, id))
}

func (s *Store) ListBulletinIDs(board string) ([]string, error) {
	return listIDs(filepath.Join(s.dataDir, "bulletins", safeID(board)))
}

// ListBulletins returns every post on board, most recently posted first.
func (s *Store) ListBulletins(board string) ([]BulletinMessage, error) {
	ids, err := s.ListBulletinIDs(board)
	if err != nil {
		return nil, err
	}
	msgs := make([]BulletinMessage, 0, len(ids))
	for _, id := range ids {
		m, err := s.GetBulletin(board, id)
		if err != nil {
			continue
		}
		msgs = append(msgs, m)
	}
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].PostedAt.After(msgs[j].PostedAt) })
	return msgs, nil
}

// --- Mail ---

func (s *Store) mailPath(folder, username, id string) string {
	return filepath.Join(s.dataDir, "mail", safeID(folder), safeID(username), safeID(id)+".json")
}

func (s *Store) PutMail(folder, username string, m MailMessage) error {
	return writeRecord(s.mailPath(folder, username, m.ID), m)
}

func (s *Store) GetMail(folder, username, id string) (MailMessage, error) {
	return readRecord[MailMessage](s.mailPath(folder, username, id))
}

func (s *Store) DeleteMail(folder, username, id string) error {
	err := os.Remove(s.mailPath(folder, username, id))
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *Store) ListMailIDs(folder, username string) ([]string, error) {
	return listIDs(filepath.Join(s.dataDir, "mail", safeID(folder), safeID(username)))
}

// ListMail returns every message in username's folder, most recently
// sent first.
func (s *Store) ListMail(folder, username string) ([]MailMessage, error) {
	ids, err := s.ListMailIDs(folder, username)
	if err != nil {
		return nil, err
	}
	msgs := make([]MailMessage, 0, len(ids))
	for _, id := range ids {
		m, err := s.GetMail(folder, username, id)
		if err != nil {
			continue
		}
		msgs = append(msgs, m)
	}
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].SentAt.After(msgs[j].SentAt) })
	return msgs, nil
}

// SendMail delivers m to the recipient's inbox and files a copy in the
// sender's sent folder, mirroring the dual-write a BBS topic post and
// its author's own read-receipt would need.
func (s *Store) SendMail(m MailMessage) error {
	if err := s.PutMail(MailFolderInbox, m.Recipient, m); err != nil {
		return err
	}
	return s.PutMail(MailFolderSent, m.Sender, m)
}
