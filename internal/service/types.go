// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Priority is a task priority level.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Rank returns the numeric rank used for sorting: HIGH=3, MEDIUM=2, LOW=1.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// ParsePriority parses a priority value case-insensitively.
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToUpper(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("invalid priority: %s", s)
}

// Status is a task workflow state.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// ParseStatus parses a status value case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusTodo:
		return StatusTodo, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusCompleted:
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("invalid status: %s", s)
}

// DateLayout is the wire format for due dates sent to the API.
const DateLayout = "2006-01-02"

// dateLayouts are the formats accepted when decoding due dates. Servers emit
// both bare dates and timestamp forms with or without a zone.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Date is a calendar date with a lenient JSON codec.
type Date struct {
	time.Time
}

// NewDate returns a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date in the wire format (2006-01-02).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date: %s (want YYYY-MM-DD)", s)
	}
	return Date{t}, nil
}

// MarshalJSON encodes the date in the wire format.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON accepts null, bare dates, and timestamp strings.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*d = Date{t}
			return nil
		}
	}
	return fmt.Errorf("invalid date: %q", s)
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// User identifies the signed-in account.
type User struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
}

// Task represents a single task as mirrored from the server.
type Task struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     *Date    `json:"dueDate"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
}

// CreateTaskRequest is the body for task creation. Field limits are enforced
// client-side before submission; the server remains the source of truth.
type CreateTaskRequest struct {
	Title       string   `json:"title" validate:"required,min=5,max=200"`
	Description string   `json:"description" validate:"max=300"`
	DueDate     *Date    `json:"dueDate"`
	Priority    Priority `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH"`
	Status      Status   `json:"status" validate:"required,oneof=TODO IN_PROGRESS COMPLETED"`
}

// UpdateTaskRequest is the body for a full task replacement.
type UpdateTaskRequest struct {
	Title       string   `json:"title" validate:"required,min=5,max=200"`
	Description string   `json:"description" validate:"max=300"`
	DueDate     *Date    `json:"dueDate"`
	Priority    Priority `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH"`
	Status      Status   `json:"status" validate:"required,oneof=TODO IN_PROGRESS COMPLETED"`
}

// LoginRequest is the body for /api/Account/login.
type LoginRequest struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the body for /api/Account/register.
type RegisterRequest struct {
	UserName string `json:"userName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResult is the response of a successful login.
type LoginResult struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
}

// UploadPhotoResult is the response of a profile photo upload.
type UploadPhotoResult struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}
