// --- storage/tasks.go ---
package storage

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/dmorenoc/TaskAgenda/models"
)

// TaskStore persists every user's tasks in one JSON array file. The store
// has no notion of per-user partitioning; it records owners and lets the API
// layer decide who may see or mutate what. Each exported method is a single
// critical section, so concurrent requests cannot lose each other's writes.
type TaskStore struct {
	mu     sync.Mutex
	path   string
	logger *log.Logger
}

// NewTaskStore returns a store backed by the given file path.
func NewTaskStore(path string, logger *log.Logger) *TaskStore {
	return &TaskStore{path: path, logger: logger}
}

// LoadAll returns the full collection. A missing or corrupt file yields an
// empty collection; the service stays available.
func (s *TaskStore) LoadAll() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// SaveAll replaces the full collection.
func (s *TaskStore) SaveAll(tasks []models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeArray(s.path, tasks)
}

// Append adds one task. It fails with models.ErrDuplicateTask if the id is
// already present.
func (s *TaskStore) Append(t models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.load()
	for _, existing := range tasks {
		if existing.ID == t.ID {
			return models.ErrDuplicateTask
		}
	}
	tasks = append(tasks, t)
	return writeArray(s.path, tasks)
}

// Update merges patch into the task with the given id. It fails with
// models.ErrTaskNotFound if the id is absent and models.ErrForbidden if the
// task belongs to someone other than owner; the file is untouched either way.
func (s *TaskStore) Update(id, owner string, patch models.TaskPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.load()
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		if tasks[i].Owner != owner {
			return models.ErrForbidden
		}
		patch.Apply(&tasks[i])
		return writeArray(s.path, tasks)
	}
	return models.ErrTaskNotFound
}

// Delete removes the task with the given id, with the same not-found and
// ownership failures as Update.
func (s *TaskStore) Delete(id, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.load()
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		if tasks[i].Owner != owner {
			return models.ErrForbidden
		}
		tasks = append(tasks[:i], tasks[i+1:]...)
		return writeArray(s.path, tasks)
	}
	return models.ErrTaskNotFound
}

// load reads the collection, treating a missing or unreadable file as empty.
// Callers must hold s.mu.
func (s *TaskStore) load() []models.Task {
	var tasks []models.Task
	if err := readArray(s.path, &tasks); err != nil {
		s.logger.Warn("task file unreadable, treating as empty", "path", s.path, "err", err)
		return nil
	}
	return tasks
}
