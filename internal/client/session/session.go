// Package session persists the local pseudo-auth identity: a client-generated
// id plus the user-supplied secret key, stored as a small JSON file. The id is
// generated once per profile directory and survives restarts; signing out
// removes the file, so the next Initialize produces a fresh id.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const fileName = "session.json"

var ErrEmptySecretKey = errors.New("secret key must not be empty")

type Session struct {
	ID string `json:"id"`
	SecretKey string `json:"secret_key"`
}

// Authenticated reports whether a secret key has been set for this identity.
func (s Session) Authenticated() bool {
	return s.SecretKey != ""
}

type Store struct {
	path string
	mu sync.Mutex
	current Session
}

func NewStore(dir string) *Store {
	return &Store{
		path: filepath.Join(dir, fileName),
	}
}

// Initialize restores the persisted session, or generates and persists a
// fresh identity with no secret key when none exists yet.
func (s *Store) Initialize() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err == nil {
		if err := json.Unmarshal(data, &s.current); err != nil {
			return Session{}, err
		}
		return s.current, nil
	}
	if !os.IsNotExist(err) {
		return Session{}, err
	}

	s.current = Session{ID: uuid.NewString()}
	if err := s.save(); err != nil {
		return Session{}, err
	}

	return s.current, nil
}

func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetSecretKey persists the key alongside the existing id. Setting a new key
// overwrites the previous one without verification; the server decides
// whether the overwrite is acceptable.
func (s *Store) SetSecretKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptySecretKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current.SecretKey = key
	return s.save()
}

// SignOut clears the persisted identity. Posts authored under the old id
// become unclaimable, since a new id is generated on the next Initialize.
func (s *Store) SignOut() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Session{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) save() error {
	data, err := json.Marshal(s.current)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
