// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"taskcli/internal/service"
	"taskcli/internal/taskstore"
)

// DisplayDateLayout is the human-facing date format.
const DisplayDateLayout = "Jan 02, 2006"

// FormatTaskRow formats one task line for the list view.
// Format: "{ID:>4}  {STATUS:<11}  {PRIORITY:<6}  {DUE:<12}  {TITLE}{ANNOTATION}"
func FormatTaskRow(w io.Writer, task service.Task, now time.Time) {
	due := "-"
	if task.DueDate != nil {
		due = task.DueDate.Format(DisplayDateLayout)
	}
	line := fmt.Sprintf("%4d  %-11s  %-6s  %-12s  %s",
		task.ID, task.Status, task.Priority, due, normalizeTitle(task.Title))
	if ann := DueAnnotation(task, now); ann != "" {
		line += "  [" + ann + "]"
	}
	fmt.Fprintln(w, line)
}

// FormatTaskList formats a task list with a header row.
func FormatTaskList(w io.Writer, tasks []service.Task, now time.Time) {
	fmt.Fprintf(w, "%4s  %-11s  %-6s  %-12s  %s\n", "ID", "STATUS", "PRIO", "DUE", "TITLE")
	for _, t := range tasks {
		FormatTaskRow(w, t, now)
	}
}

// FormatTaskDetail formats the full view of a single task.
func FormatTaskDetail(w io.Writer, task service.Task, now time.Time) {
	fmt.Fprintf(w, "id:          %d\n", task.ID)
	fmt.Fprintf(w, "title:       %s\n", normalizeTitle(task.Title))
	fmt.Fprintf(w, "status:      %s\n", task.Status)
	fmt.Fprintf(w, "priority:    %s\n", task.Priority)
	due := "no due date"
	if task.DueDate != nil {
		due = task.DueDate.Format(DisplayDateLayout)
		if ann := DueAnnotation(task, now); ann != "" {
			due += " [" + ann + "]"
		}
	}
	fmt.Fprintf(w, "due:         %s\n", due)
	if task.Description != "" {
		fmt.Fprintf(w, "description: %s\n", task.Description)
	}
}

// FormatStats formats the collection summary.
func FormatStats(w io.Writer, st taskstore.Stats) {
	fmt.Fprintf(w, "total:        %d\n", st.Total)
	fmt.Fprintf(w, "todo:         %d\n", st.Todo)
	fmt.Fprintf(w, "in progress:  %d\n", st.InProgress)
	fmt.Fprintf(w, "completed:    %d\n", st.Completed)
	fmt.Fprintf(w, "overdue:      %d\n", st.Overdue)
}

// FormatUser formats the signed-in identity.
func FormatUser(w io.Writer, user service.User) {
	fmt.Fprintf(w, "user:   %s\n", user.UserName)
	fmt.Fprintf(w, "email:  %s\n", user.Email)
	fmt.Fprintf(w, "id:     %s\n", user.UserID)
}

// DueAnnotation returns "overdue", "today", "soon" (due within 3 days), or
// "" for a task. Completed tasks are never annotated.
func DueAnnotation(task service.Task, now time.Time) string {
	if task.DueDate == nil || task.Status == service.StatusCompleted {
		return ""
	}
	due := task.DueDate.Time
	y1, m1, d1 := due.Date()
	y2, m2, d2 := now.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "today"
	}
	today := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	dueDay := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	days := int(dueDay.Sub(today).Hours() / 24)
	switch {
	case days < 0:
		return "overdue"
	case days <= 3:
		return "soon"
	default:
		return ""
	}
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
