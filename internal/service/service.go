// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"io"
)

// Service defines the interface for remote task API operations.
// All HTTP calls go through this interface; commands never touch the
// transport directly. Each method performs exactly one call: no retries,
// no batching.
type Service interface {
	// Login authenticates and, on success, persists the new session.
	Login(ctx context.Context, req LoginRequest) (User, error)

	// Register creates a new account and returns the server's message.
	Register(ctx context.Context, req RegisterRequest) (string, error)

	// ListTasks returns all tasks for the signed-in user in API order.
	ListTasks(ctx context.Context) ([]Task, error)

	// GetTask returns a single task by id.
	GetTask(ctx context.Context, id int) (Task, error)

	// CreateTask creates a task and returns it with its server-assigned id.
	CreateTask(ctx context.Context, req CreateTaskRequest) (Task, error)

	// UpdateTask replaces a task by id and returns the updated task.
	UpdateTask(ctx context.Context, id int, req UpdateTaskRequest) (Task, error)

	// DeleteTask deletes a task by id.
	DeleteTask(ctx context.Context, id int) error

	// UploadPhoto uploads a profile photo from r under the given filename.
	UploadPhoto(ctx context.Context, filename string, r io.Reader) (UploadPhotoResult, error)

	// ProfilePhoto returns the current profile photo URL.
	ProfilePhoto(ctx context.Context) (string, error)
}
