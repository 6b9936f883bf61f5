package sessions

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DefaultFileName is the name of the session file inside the data folder
const DefaultFileName = "session.json"

var _ Store = (*FileStore)(nil)

// FileStore persists the session as JSON so it survives restarts of the CLI,
// the way localStorage survives page reloads.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by folder/session.json. The folder is
// created on first write.
func NewFileStore(folder string) *FileStore {
	return &FileStore{path: filepath.Join(folder, DefaultFileName)}
}

// Path returns the backing file path
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) SetToken(token string) error {
	if token == "" {
		return pkgerrors.New("[FileStore SetToken] token is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(newSession(token))
}

func (s *FileStore) GetToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.read()
	return session.Token, session.Token != ""
}

func (s *FileStore) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().UserID
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return pkgerrors.Wrap(err, "[FileStore Clear] failed to remove session file")
	}
	return nil
}

// read treats a missing or unreadable file as "no session"
func (s *FileStore) read() Session {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("path", s.path).Msg("failed to read session file")
		}
		return Session{}
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("ignoring corrupt session file")
		return Session{}
	}
	return session
}

func (s *FileStore) write(session Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return pkgerrors.Wrap(err, "[FileStore] failed to create data folder")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return pkgerrors.Wrap(err, "[FileStore] failed to encode session")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return pkgerrors.Wrap(err, "[FileStore] failed to create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return pkgerrors.Wrap(err, "[FileStore] failed to write session")
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return pkgerrors.Wrap(err, "[FileStore] failed to set permissions")
	}
	if err := tmp.Close(); err != nil {
		return pkgerrors.Wrap(err, "[FileStore] failed to close temp file")
	}
	return pkgerrors.Wrap(os.Rename(tmp.Name(), s.path), "[FileStore] failed to replace session file")
}
