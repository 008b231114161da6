// --- storage/users.go ---
package storage

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/dmorenoc/TaskAgenda/models"
)

// UserStore persists the account collection as a single JSON array file.
// Every operation is one read-modify-write under the mutex.
type UserStore struct {
	mu     sync.Mutex
	path   string
	logger *log.Logger
}

// NewUserStore returns a store backed by the given file path.
func NewUserStore(path string, logger *log.Logger) *UserStore {
	return &UserStore{path: path, logger: logger}
}

// Register adds a new account with an already-derived password hash. It fails
// with models.ErrDuplicateUser if the username is taken; the file is left
// untouched in that case.
func (s *UserStore) Register(username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.load()
	for _, u := range users {
		if u.Username == username {
			return models.ErrDuplicateUser
		}
	}
	users = append(users, models.User{Username: username, PasswordHash: passwordHash})
	return writeArray(s.path, users)
}

// FindByUsername returns the stored record or models.ErrUserNotFound.
func (s *UserStore) FindByUsername(username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.load() {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, models.ErrUserNotFound
}

// load reads the collection, treating a missing or unreadable file as empty.
// Callers must hold s.mu.
func (s *UserStore) load() []models.User {
	var users []models.User
	if err := readArray(s.path, &users); err != nil {
		s.logger.Warn("user file unreadable, treating as empty", "path", s.path, "err", err)
		return nil
	}
	return users
}
