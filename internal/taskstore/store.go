// Package taskstore holds the in-memory task collection and derives the
// filtered/sorted view shown to the user.
package taskstore

import (
	"context"
	"sort"
	"strings"

	"taskcli/internal/service"
)

// FilterAll matches every status or priority.
const FilterAll = "ALL"

// SortKey selects the sort dimension of the derived view.
type SortKey string

const (
	SortByDueDate  SortKey = "dueDate"
	SortByPriority SortKey = "priority"
)

// Order is the sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Filters is the session-local filter/sort configuration. It is never
// persisted.
type Filters struct {
	Status    string // FilterAll or a service.Status value
	Priority  string // FilterAll or a service.Priority value
	Search    string // case-insensitive substring of the title
	SortBy    SortKey
	SortOrder Order
}

// DefaultFilters returns the initial configuration: everything visible,
// sorted by due date ascending.
func DefaultFilters() Filters {
	return Filters{
		Status:    FilterAll,
		Priority:  FilterAll,
		SortBy:    SortByDueDate,
		SortOrder: Asc,
	}
}

// Store owns the cached mirror of the user's tasks and the current filter
// configuration. The collection is not authoritative; the server is. The
// store is used from the single command goroutine and is not locked.
type Store struct {
	svc     service.Service
	tasks   []service.Task
	filters Filters

	// memoized derivation of (tasks, filters)
	gen     uint64
	viewGen uint64
	viewFor Filters
	view    []service.Task
}

// New creates an empty store backed by svc.
func New(svc service.Service) *Store {
	return &Store{svc: svc, filters: DefaultFilters(), gen: 1}
}

// Tasks returns a copy of the full collection in insertion order.
func (s *Store) Tasks() []service.Task {
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks in the collection.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Filters returns the current filter configuration.
func (s *Store) Filters() Filters {
	return s.filters
}

// SetFilters replaces the filter configuration.
func (s *Store) SetFilters(f Filters) {
	s.filters = f
}

// View returns the derived view for the current collection and filters.
// The derivation is recomputed only when either input has changed since the
// previous call.
func (s *Store) View() []service.Task {
	if s.view != nil && s.viewGen == s.gen && s.viewFor == s.filters {
		return s.view
	}
	s.view = DeriveView(s.tasks, s.filters)
	s.viewGen = s.gen
	s.viewFor = s.filters
	return s.view
}

// FetchAll replaces the collection with the server's task list.
// On failure the collection is left unchanged.
func (s *Store) FetchAll(ctx context.Context) error {
	tasks, err := s.svc.ListTasks(ctx)
	if err != nil {
		return err
	}
	s.tasks = tasks
	s.gen++
	return nil
}

// Create creates a task and appends it to the collection on success.
func (s *Store) Create(ctx context.Context, req service.CreateTaskRequest) (service.Task, error) {
	task, err := s.svc.CreateTask(ctx, req)
	if err != nil {
		return service.Task{}, err
	}
	s.tasks = append(s.tasks, task)
	s.gen++
	return task, nil
}

// Update replaces a task by id on success. A concurrent edit to the same id
// is not detected; the later response simply overwrites the entry.
func (s *Store) Update(ctx context.Context, id int, req service.UpdateTaskRequest) (service.Task, error) {
	task, err := s.svc.UpdateTask(ctx, id, req)
	if err != nil {
		return service.Task{}, err
	}
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i] = task
			break
		}
	}
	s.gen++
	return task, nil
}

// Delete removes a task by id on success.
func (s *Store) Delete(ctx context.Context, id int) error {
	if err := s.svc.DeleteTask(ctx, id); err != nil {
		return err
	}
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	s.gen++
	return nil
}

// Reset discards the collection, e.g. on logout.
func (s *Store) Reset() {
	s.tasks = nil
	s.filters = DefaultFilters()
	s.view = nil
	s.gen++
}

// DeriveView computes the filtered/sorted projection of tasks. It is pure:
// the input slice is never reordered or mutated, and the result is a fresh
// slice. Equal-rank elements keep their relative input order.
func DeriveView(tasks []service.Task, f Filters) []service.Task {
	result := make([]service.Task, 0, len(tasks))
	search := strings.ToLower(f.Search)

	for _, t := range tasks {
		if f.Status != "" && f.Status != FilterAll && string(t.Status) != f.Status {
			continue
		}
		if f.Priority != "" && f.Priority != FilterAll && string(t.Priority) != f.Priority {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Title), search) {
			continue
		}
		result = append(result, t)
	}

	switch f.SortBy {
	case SortByDueDate:
		sort.SliceStable(result, func(i, j int) bool {
			a, b := result[i].DueDate, result[j].DueDate
			// tasks without a due date sort last regardless of direction
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			if f.SortOrder == Desc {
				return a.After(b.Time)
			}
			return a.Before(b.Time)
		})
	case SortByPriority:
		sort.SliceStable(result, func(i, j int) bool {
			if f.SortOrder == Desc {
				return result[i].Priority.Rank() > result[j].Priority.Rank()
			}
			return result[i].Priority.Rank() < result[j].Priority.Rank()
		})
	}

	return result
}
