// Package rest implements the service.Service interface against the remote
// task API.
package rest

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"taskcli/internal/api"
	"taskcli/internal/config"
	"taskcli/internal/service"
	"taskcli/internal/session"
)

// Client implements service.Service over the API gateway.
type Client struct {
	gw      *api.Gateway
	store   *session.Store
	timeout time.Duration
}

// New creates a client for the API addressed by cfg.BaseURL.
func New(cfg *config.Config, store *session.Store, log *zap.Logger) (*Client, error) {
	gw, err := api.New(cfg.BaseURL, store, log, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{gw: gw, store: store, timeout: cfg.Timeout}, nil
}

// NewWithGateway creates a client over an existing gateway (for testing).
func NewWithGateway(gw *api.Gateway, store *session.Store, timeout time.Duration) *Client {
	return &Client{gw: gw, store: store, timeout: timeout}
}

// Gateway returns the underlying gateway, for hooking session expiry.
func (c *Client) Gateway() *api.Gateway {
	return c.gw
}

// Login authenticates and persists the new session on success.
func (c *Client) Login(ctx context.Context, req service.LoginRequest) (service.User, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var res service.LoginResult
	if err := c.gw.PostJSON(ctx, "/api/Account/login", req, &res); err != nil {
		return service.User{}, err
	}

	user := service.User{UserID: res.UserID, UserName: res.UserName, Email: res.Email}
	if err := c.store.Save(session.Session{Token: res.Token, User: user}); err != nil {
		return service.User{}, fmt.Errorf("save session: %w", err)
	}
	return user, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req service.RegisterRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var res struct {
		Message string `json:"message"`
	}
	if err := c.gw.PostJSON(ctx, "/api/Account/register", req, &res); err != nil {
		return "", err
	}
	return res.Message, nil
}

// ListTasks returns all tasks for the signed-in user in API order.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var tasks []service.Task
	if err := c.gw.GetJSON(ctx, "/api/Task", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns a single task by id.
func (c *Client) GetTask(ctx context.Context, id int) (service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var task service.Task
	if err := c.gw.GetJSON(ctx, fmt.Sprintf("/api/Task/%d", id), &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// CreateTask creates a task and returns it with its server-assigned id.
func (c *Client) CreateTask(ctx context.Context, req service.CreateTaskRequest) (service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var task service.Task
	if err := c.gw.PostJSON(ctx, "/api/Task", req, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// UpdateTask replaces a task by id.
func (c *Client) UpdateTask(ctx context.Context, id int, req service.UpdateTaskRequest) (service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var task service.Task
	if err := c.gw.PutJSON(ctx, fmt.Sprintf("/api/Task/%d", id), req, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// DeleteTask deletes a task by id.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return c.gw.Delete(ctx, fmt.Sprintf("/api/Task/%d", id))
}

// UploadPhoto uploads a profile photo.
func (c *Client) UploadPhoto(ctx context.Context, filename string, r io.Reader) (service.UploadPhotoResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var res service.UploadPhotoResult
	if err := c.gw.PostMultipart(ctx, "/api/User/upload-photo", "file", filename, r, &res); err != nil {
		return service.UploadPhotoResult{}, err
	}
	return res, nil
}

// ProfilePhoto returns the current profile photo URL.
func (c *Client) ProfilePhoto(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return c.gw.GetText(ctx, "/api/User/profile-photo")
}
