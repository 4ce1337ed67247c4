package storage

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"time"

	todoerrors "github.com/abatilo/powertodo/internal/errors"
	"github.com/abatilo/powertodo/internal/kv"
	"github.com/abatilo/powertodo/internal/task"
)

// TasksKey is the slot holding the serialized task collection.
const TasksKey = "powerTodoTasks"

// Options configures a Store. Zero fields take defaults.
type Options struct {
	Codec  Codec
	NewID  task.IDFunc
	Now    func() time.Time
	Logger *slog.Logger
}

// Store owns the ordered task collection and is the only writer of the
// tasks slot. It is meant for a single goroutine.
type Store struct {
	slots  kv.Store
	codec  Codec
	newID  task.IDFunc
	now    func() time.Time
	logger *slog.Logger

	tasks []*task.Task
	index map[string]*task.Task
}

// Open creates a Store and hydrates it from the tasks slot. A missing,
// unreadable or malformed slot yields an empty collection.
func Open(slots kv.Store, opts Options) *Store {
	s := &Store{
		slots:  slots,
		codec:  opts.Codec,
		newID:  opts.NewID,
		now:    opts.Now,
		logger: opts.Logger,
		index:  make(map[string]*task.Task),
	}
	if s.codec == nil {
		s.codec = jsonCodec{}
	}
	if s.newID == nil {
		s.newID = task.GenerateID
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s.hydrate()
	return s
}

func (s *Store) hydrate() {
	data, err := s.slots.Get(TasksKey)
	if errors.Is(err, kv.ErrNotFound) {
		return
	}
	if err != nil {
		s.logger.Warn("could not read task slot, starting empty", "key", TasksKey, "error", err)
		return
	}

	tasks, err := s.codec.Decode(data)
	if err != nil {
		s.logger.Warn("malformed task slot, starting empty", "key", TasksKey, "error", err)
		return
	}

	for _, t := range tasks {
		if t.ID == "" {
			s.logger.Warn("skipping task without id", "title", t.Title)
			continue
		}
		if _, dup := s.index[t.ID]; dup {
			s.logger.Warn("skipping duplicate task id", "id", t.ID)
			continue
		}
		s.tasks = append(s.tasks, t)
		s.index[t.ID] = t
	}
	s.logger.Debug("hydrated task store", "count", len(s.tasks))
}

// persist writes the whole collection to the tasks slot.
func (s *Store) persist() error {
	data, err := s.codec.Encode(s.tasks)
	if err == nil {
		err = s.slots.Set(TasksKey, data)
	}
	if err != nil {
		s.logger.Debug("could not persist tasks", "key", TasksKey, "error", err)
		return todoerrors.PersistError{Key: TasksKey, Err: err}
	}
	return nil
}

// Add validates details and appends a new task. Validation failures leave
// the collection untouched. A PersistError is returned together with the
// new task: the task exists in memory even though the slot is stale.
func (s *Store) Add(details task.Details) (*task.Task, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}

	createdAt := s.now()
	exists := func(id string) bool {
		_, ok := s.index[id]
		return ok
	}

	t := &task.Task{
		ID:            s.newID(details.Title, createdAt, exists),
		Title:         details.Title,
		Description:   details.Description,
		Category:      details.Category,
		Priority:      details.Priority,
		EstimatedTime: details.EstimatedTime,
		CreatedAt:     createdAt,
	}
	if details.Deadline != nil {
		d := *details.Deadline
		t.Deadline = &d
	}

	s.tasks = append(s.tasks, t)
	s.index[t.ID] = t
	return t.Clone(), s.persist()
}

// Delete removes the task with id. Unknown ids are not an error.
func (s *Store) Delete(id string) error {
	if _, ok := s.index[id]; ok {
		s.tasks = slices.DeleteFunc(s.tasks, func(t *task.Task) bool {
			return t.ID == id
		})
		delete(s.index, id)
	}
	return s.persist()
}

// Toggle flips the completion state of the task with id. Completing stamps
// CompletedAt with the current time; reopening clears it.
func (s *Store) Toggle(id string) (*task.Task, error) {
	t, ok := s.index[id]
	if !ok {
		return nil, todoerrors.TaskNotFoundError{ID: id}
	}

	t.Completed = !t.Completed
	if t.Completed {
		now := s.now()
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	return t.Clone(), s.persist()
}

// Get returns a copy of the task with id.
func (s *Store) Get(id string) (*task.Task, error) {
	t, ok := s.index[id]
	if !ok {
		return nil, todoerrors.TaskNotFoundError{ID: id}
	}
	return t.Clone(), nil
}

// All returns copies of every task in insertion order.
func (s *Store) All() []*task.Task {
	return s.List(Filter{})
}

// List returns copies of the tasks matching filter, in insertion order.
func (s *Store) List(filter Filter) []*task.Task {
	tasks := make([]*task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if filter.Matches(t) {
			tasks = append(tasks, t.Clone())
		}
	}
	return tasks
}

// Len returns the number of tasks held.
func (s *Store) Len() int {
	return len(s.tasks)
}

// DeleteCompleted removes every completed task and returns how many were removed.
func (s *Store) DeleteCompleted() (int, error) {
	before := len(s.tasks)
	s.tasks = slices.DeleteFunc(s.tasks, func(t *task.Task) bool {
		if t.Completed {
			delete(s.index, t.ID)
			return true
		}
		return false
	})
	removed := before - len(s.tasks)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.persist()
}
