package taskstore

import (
	"time"

	"taskcli/internal/service"
)

// Stats summarizes a task collection.
type Stats struct {
	Total      int
	Todo       int
	InProgress int
	Completed  int
	Overdue    int
}

// Summarize counts tasks per status plus overdue tasks. A task is overdue
// when its due date is before today and it is not completed.
func Summarize(tasks []service.Task, now time.Time) Stats {
	var st Stats
	st.Total = len(tasks)
	today := now.Truncate(24 * time.Hour)
	for _, t := range tasks {
		switch t.Status {
		case service.StatusTodo:
			st.Todo++
		case service.StatusInProgress:
			st.InProgress++
		case service.StatusCompleted:
			st.Completed++
		}
		if t.DueDate != nil && t.Status != service.StatusCompleted && t.DueDate.Before(today) {
			st.Overdue++
		}
	}
	return st
}
