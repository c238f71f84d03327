// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"io"
	"sync"

	"taskcli/internal/service"
	"taskcli/internal/session"
)

// ErrNotFound is returned when a task id is unknown.
var ErrNotFound = errors.New("not found")

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int

	// User returned by Login.
	User service.User

	// Token persisted by Login.
	Token string

	// Store, when set, receives the session on Login like the real backend.
	Store *session.Store

	// PhotoURL returned by ProfilePhoto.
	PhotoURL string

	// Calls counts invocations per method name.
	Calls map[string]int

	// Error injection for testing
	LoginErr        error
	RegisterErr     error
	ListTasksErr    error
	GetTaskErr      error
	CreateTaskErr   error
	UpdateTaskErr   error
	DeleteTaskErr   error
	UploadPhotoErr  error
	ProfilePhotoErr error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID: 1,
		User:   service.User{UserID: "u-1", UserName: "alice", Email: "alice@example.com"},
		Token:  "test-token",
		Calls:  make(map[string]int),
	}
}

// AddTask seeds a task and returns its assigned id.
func (f *FakeService) AddTask(t service.Task) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID == 0 {
		t.ID = f.nextID
	}
	if t.ID >= f.nextID {
		f.nextID = t.ID + 1
	}
	f.tasks = append(f.tasks, t)
	return t.ID
}

// TaskCount returns the number of stored tasks.
func (f *FakeService) TaskCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.tasks)
}

func (f *FakeService) called(name string) {
	f.mu.Lock()
	f.Calls[name]++
	f.mu.Unlock()
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, req service.LoginRequest) (service.User, error) {
	f.called("Login")
	if f.LoginErr != nil {
		return service.User{}, f.LoginErr
	}
	if f.Store != nil {
		if err := f.Store.Save(session.Session{Token: f.Token, User: f.User}); err != nil {
			return service.User{}, err
		}
	}
	return f.User, nil
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, req service.RegisterRequest) (string, error) {
	f.called("Register")
	if f.RegisterErr != nil {
		return "", f.RegisterErr
	}
	return "User registered successfully", nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.called("ListTasks")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result, nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id int) (service.Task, error) {
	f.called("GetTask")
	if f.GetTaskErr != nil {
		return service.Task{}, f.GetTaskErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return service.Task{}, ErrNotFound
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, req service.CreateTaskRequest) (service.Task, error) {
	f.called("CreateTask")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	task := service.Task{
		ID:          f.nextID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Status:      req.Status,
	}
	f.nextID++
	f.tasks = append(f.tasks, task)
	return task, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id int, req service.UpdateTaskRequest) (service.Task, error) {
	f.called("UpdateTask")
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i] = service.Task{
				ID:          id,
				Title:       req.Title,
				Description: req.Description,
				DueDate:     req.DueDate,
				Priority:    req.Priority,
				Status:      req.Status,
			}
			return f.tasks[i], nil
		}
	}
	return service.Task{}, ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int) error {
	f.called("DeleteTask")
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// UploadPhoto implements service.Service.
func (f *FakeService) UploadPhoto(ctx context.Context, filename string, r io.Reader) (service.UploadPhotoResult, error) {
	f.called("UploadPhoto")
	if f.UploadPhotoErr != nil {
		return service.UploadPhotoResult{}, f.UploadPhotoErr
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return service.UploadPhotoResult{}, err
	}
	return service.UploadPhotoResult{
		URL:     "https://cdn.example.com/photos/" + filename,
		Message: "Photo uploaded successfully",
	}, nil
}

// ProfilePhoto implements service.Service.
func (f *FakeService) ProfilePhoto(ctx context.Context) (string, error) {
	f.called("ProfilePhoto")
	if f.ProfilePhotoErr != nil {
		return "", f.ProfilePhotoErr
	}
	return f.PhotoURL, nil
}
