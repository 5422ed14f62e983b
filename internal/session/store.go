package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Session is the token set persisted after a successful login. Tokens are
// opaque to the client; nothing here is validated locally, a stale or forged
// token only surfaces when the backend rejects it.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"`
}

// Store persists the session as a single JSON file. Only the auth service and
// the API client's reissue handler write to it.
type Store struct {
	path string
}

// DefaultDir returns ~/.whalestream, creating nothing.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".whalestream"), nil
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, "session.json")}
}

// Set persists all three session fields. The write goes through a temp file
// and a rename so a reader never observes a partial session.
func (s *Store) Set(sess Session) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "session-*.json")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}

// Get returns the persisted session, or nil when none exists.
func (s *Store) Get() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}
	return &sess, nil
}

// Clear removes the persisted session. Clearing an absent session is not an
// error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// AccessToken returns the stored access token, or "" when logged out.
func (s *Store) AccessToken() string {
	sess, err := s.Get()
	if err != nil || sess == nil {
		return ""
	}
	return sess.AccessToken
}

// RefreshToken returns the stored refresh token, or "".
func (s *Store) RefreshToken() string {
	sess, err := s.Get()
	if err != nil || sess == nil {
		return ""
	}
	return sess.RefreshToken
}

// UserID returns the stored user id, or "".
func (s *Store) UserID() string {
	sess, err := s.Get()
	if err != nil || sess == nil {
		return ""
	}
	return sess.UserID
}
