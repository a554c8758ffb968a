package bbs

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/smartyhall/meshbbs/pkg/storagefs"
	"github.com/smartyhall/meshbbs/pkg/validate"
)

func (s *Store) userPath(username string) string {
	return filepath.Join(s.dataDir, "users", validate.SafeFilename(username)+".json")
}

// RegisterUser creates a new account with a hashed password. Fails if
// the username is already taken.
func (s *Store) RegisterUser(username, password string, nodeID string) error {
	validUsername, err := validate.ValidateUserName(username)
	if err != nil {
		return err
	}
	if len(password) < 8 {
		return &AuthorizationError{Action: "password too short (minimum 8 characters)"}
	}
	existing, err := s.GetUser(validUsername)
	if err != nil {
		return err
	}
	if existing != nil {
		return &AuthorizationError{Action: "username '" + validUsername + "' is already taken"}
	}

	hash, err := hashPassword(password, s.argon2)
	if err != nil {
		return err
	}
	t := now()
	user := User{
		Username:     validUsername,
		UserLevel:    LevelUser,
		PasswordHash: hash,
		FirstLogin:   t,
		LastLogin:    t,
	}
	if nodeID != "" {
		user.NodeID = nodeID
	}
	return s.writeUser(user)
}

func (s *Store) writeUser(u User) error {
	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return err
	}
	return storagefs.WriteFileLocked(s.userPath(u.Username), data)
}

// GetUser returns the user account, or nil if it does not exist.
func (s *Store) GetUser(username string) (*User, error) {
	path := s.userPath(username)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if err := validate.ValidateFileSize(info.Size(), maxUserFileBytes); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	user, err := validate.SecureJSONParse[User](string(data), maxUserFileBytes)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyPassword checks password against the stored hash. A user with
// no password set (node-bound-only, passwordless continuity) always
// reports a false match rather than erroring.
func (s *Store) VerifyPassword(username, password string) (*User, bool, error) {
	user, err := s.GetUser(username)
	if err != nil {
		return nil, false, err
	}
	if user == nil {
		return nil, false, nil
	}
	if user.PasswordHash == "" {
		return user, false, nil
	}
	return user, verifyPassword(password, user.PasswordHash), nil
}

// BindUserNode attaches a node ID to an existing account if it isn't
// bound to one already, and updates last-login.
func (s *Store) BindUserNode(username, nodeID string) (*User, error) {
	user, err := s.GetUser(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &NotFoundError{Kind: "user", ID: username}
	}
	if user.NodeID == "" {
		user.NodeID = nodeID
	}
	user.LastLogin = now()
	if err := s.writeUser(*user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetUserPassword assigns a password to an (possibly passwordless)
// existing account.
func (s *Store) SetUserPassword(username, password string) (*User, error) {
	if len(password) < 8 {
		return nil, &AuthorizationError{Action: "password too short (minimum 8 characters)"}
	}
	return s.updatePassword(username, password)
}

// UpdateUserPassword always overwrites the existing hash (a password
// change, not an initial set).
func (s *Store) UpdateUserPassword(username, newPassword string) error {
	if len(newPassword) < 8 {
		return &AuthorizationError{Action: "password too short (minimum 8)"}
	}
	if len(newPassword) > 128 {
		return &AuthorizationError{Action: "password too long"}
	}
	_, err := s.updatePassword(username, newPassword)
	return err
}

func (s *Store) updatePassword(username, password string) (*User, error) {
	user, err := s.GetUser(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &NotFoundError{Kind: "user", ID: username}
	}
	hash, err := hashPassword(password, s.argon2)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	user.LastLogin = now()
	if err := s.writeUser(*user); err != nil {
		return nil, err
	}
	return user, nil
}

var errCannotModifySysop = errors.New("cannot modify sysop level")

// UpdateUserLevel promotes/demotes a non-sysop account and records an
// admin-audit entry. The fixed sysop account (level 10) can never be
// demoted through this path.
func (s *Store) UpdateUserLevel(username string, newLevel int, actor string) (*User, error) {
	if newLevel == 0 {
		return nil, &AuthorizationError{Action: "invalid level"}
	}
	user, err := s.GetUser(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &NotFoundError{Kind: "user", ID: username}
	}
	if user.UserLevel == LevelSysop && user.Username == username && newLevel != LevelSysop {
		return nil, errCannotModifySysop
	}
	oldLevel := user.UserLevel
	user.UserLevel = newLevel
	user.LastLogin = now()
	if err := s.writeUser(*user); err != nil {
		return nil, err
	}

	action := "DEMOTE"
	if newLevel > oldLevel {
		action = "PROMOTE"
	}
	_ = s.LogAdminAction(action, username, actor, levelChangeDetail(oldLevel, newLevel))
	return user, nil
}

func levelChangeDetail(old, new int) string {
	return "Level changed from " + itoa(old) + " to " + itoa(new)
}

// RecordUserLogin updates last_login and returns the updated user.
func (s *Store) RecordUserLogin(username string) (*User, error) {
	user, err := s.GetUser(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &NotFoundError{Kind: "user", ID: username}
	}
	user.LastLogin = now()
	if err := s.writeUser(*user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetOrCreateUserForNode returns the account bound to username, creating
// a passwordless, node-bound account on first contact if none exists.
// This is the only path that may create a user with an empty password
// hash — every other path that sets a password always produces a
// non-empty Argon2id hash.
func (s *Store) GetOrCreateUserForNode(username, nodeID string) (*User, error) {
	user, err := s.GetUser(username)
	if err != nil {
		return nil, err
	}
	t := now()
	if user == nil {
		user = &User{
			Username:   username,
			NodeID:     nodeID,
			UserLevel:  LevelUser,
			FirstLogin: t,
			LastLogin:  t,
		}
	} else {
		user.LastLogin = t
		if user.NodeID == "" {
			user.NodeID = nodeID
		}
	}
	if err := s.writeUser(*user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListAllUsers returns every account, sorted by username.
func (s *Store) ListAllUsers() ([]User, error) {
	dir := filepath.Join(s.dataDir, "users")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var users []User
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		var u User
		if err := json.Unmarshal(data, &u); err != nil {
			continue
		}
		users = append(users, u)
	}
	sortUsersByUsername(users)
	return users, nil
}

// MarkWelcomeShown records that the one-time welcome banner(s) have
// been shown to username.
func (s *Store) MarkWelcomeShown(username string, registrationWelcome, firstLoginWelcome bool) error {
	user, err := s.GetUser(username)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	if registrationWelcome {
		user.WelcomeShownOnRegister = true
	}
	if firstLoginWelcome {
		user.WelcomeShownOnFirstLogin = true
	}
	return s.writeUser(*user)
}

func sortUsersByUsername(users []User) {
	for i := 1; i < len(users); i++ {
		for j := i; j > 0 && users[j].Username < users[j-1].Username; j-- {
			users[j], users[j-1] = users[j-1], users[j]
		}
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
