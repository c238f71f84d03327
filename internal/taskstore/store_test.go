package taskstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskcli/internal/service"
	"taskcli/internal/taskstore"
	"taskcli/internal/testutil"
)

func datePtr(year int, month time.Month, day int) *service.Date {
	d := service.NewDate(year, month, day)
	return &d
}

func task(id int, title string, due *service.Date, prio service.Priority, status service.Status) service.Task {
	return service.Task{
		ID:       id,
		Title:    title,
		DueDate:  due,
		Priority: prio,
		Status:   status,
	}
}

func ids(tasks []service.Task) []int {
	out := make([]int, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a []int, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDeriveView_StatusFilter(t *testing.T) {
	tasks := []service.Task{
		task(1, "write report", nil, service.PriorityLow, service.StatusTodo),
		task(2, "review PR", nil, service.PriorityLow, service.StatusCompleted),
		task(3, "plan sprint", nil, service.PriorityLow, service.StatusInProgress),
		task(4, "ship release", nil, service.PriorityLow, service.StatusCompleted),
		task(5, "fix bug", nil, service.PriorityLow, service.StatusTodo),
	}

	f := taskstore.DefaultFilters()
	f.Status = string(service.StatusCompleted)

	view := taskstore.DeriveView(tasks, f)
	if !equalIDs(ids(view), []int{2, 4}) {
		t.Errorf("expected [2 4], got %v", ids(view))
	}
}

func TestDeriveView_PriorityFilter(t *testing.T) {
	tasks := []service.Task{
		task(1, "a task one", nil, service.PriorityHigh, service.StatusTodo),
		task(2, "a task two", nil, service.PriorityLow, service.StatusTodo),
		task(3, "a task three", nil, service.PriorityHigh, service.StatusTodo),
	}

	f := taskstore.DefaultFilters()
	f.Priority = string(service.PriorityHigh)

	view := taskstore.DeriveView(tasks, f)
	if !equalIDs(ids(view), []int{1, 3}) {
		t.Errorf("expected [1 3], got %v", ids(view))
	}
}

func TestDeriveView_SearchCaseInsensitive(t *testing.T) {
	tasks := []service.Task{
		task(1, "Write the Report", nil, service.PriorityLow, service.StatusTodo),
		task(2, "review code", nil, service.PriorityLow, service.StatusTodo),
		task(3, "REPORT findings", nil, service.PriorityLow, service.StatusTodo),
	}

	f := taskstore.DefaultFilters()
	f.Search = "repoRT"

	view := taskstore.DeriveView(tasks, f)
	if !equalIDs(ids(view), []int{1, 3}) {
		t.Errorf("expected [1 3], got %v", ids(view))
	}
}

func TestDeriveView_CombinedFilters(t *testing.T) {
	tasks := []service.Task{
		task(1, "deploy service", nil, service.PriorityHigh, service.StatusTodo),
		task(2, "deploy docs", nil, service.PriorityHigh, service.StatusCompleted),
		task(3, "deploy api", nil, service.PriorityLow, service.StatusTodo),
		task(4, "write tests", nil, service.PriorityHigh, service.StatusTodo),
	}

	f := taskstore.DefaultFilters()
	f.Status = string(service.StatusTodo)
	f.Priority = string(service.PriorityHigh)
	f.Search = "deploy"

	view := taskstore.DeriveView(tasks, f)
	if !equalIDs(ids(view), []int{1}) {
		t.Errorf("expected [1], got %v", ids(view))
	}
}

func TestDeriveView_DueDateAscNilLast(t *testing.T) {
	tasks := []service.Task{
		task(1, "task one x", datePtr(2024, time.January, 10), service.PriorityLow, service.StatusTodo),
		task(2, "task two x", nil, service.PriorityLow, service.StatusTodo),
		task(3, "task three x", datePtr(2024, time.January, 5), service.PriorityLow, service.StatusTodo),
	}

	f := taskstore.DefaultFilters()
	f.SortBy = taskstore.SortByDueDate
	f.SortOrder = taskstore.Asc

	view := taskstore.DeriveView(tasks, f)
	if !equalIDs(ids(view), []int{3, 1, 2}) {
		t.Errorf("expected [3 1 2], got %v", ids(view))
	}
}

func TestDeriveView_DueDateDescNilStillLast(t *testing.T) {
	tasks := []service.Task{
		task(1, "task one x", datePtr(2024, time.January, 10), service.PriorityLow, service.StatusTodo),
		task(2, "task two x", nil, service.PriorityLow, service.StatusTodo),
		task(3, "task three x", datePtr(2024, time.January, 5), service.PriorityLow, service.StatusTodo),
	}

	f := taskstore.DefaultFilters()
	f.SortBy = taskstore.SortByDueDate
	f.SortOrder = taskstore.Desc

	view := taskstore.DeriveView(tasks, f)
	if !equalIDs(ids(view), []int{1, 3, 2}) {
		t.Errorf("expected [1 3 2], got %v", ids(view))
	}
}

func TestDeriveView_PriorityDesc(t *testing.T) {
	tasks := []service.Task{
		task(1, "low task aa", nil, service.PriorityLow, service.StatusTodo),
		task(2, "high task aa", nil, service.PriorityHigh, service.StatusTodo),
		task(3, "medium task aa", nil, service.PriorityMedium, service.StatusTodo),
	}

	f := taskstore.DefaultFilters()
	f.SortBy = taskstore.SortByPriority
	f.SortOrder = taskstore.Desc

	view := taskstore.DeriveView(tasks, f)
	if !equalIDs(ids(view), []int{2, 3, 1}) {
		t.Errorf("expected [2 3 1], got %v", ids(view))
	}
}

func TestDeriveView_PriorityAsc(t *testing.T) {
	tasks := []service.Task{
		task(1, "low task aa", nil, service.PriorityLow, service.StatusTodo),
		task(2, "high task aa", nil, service.PriorityHigh, service.StatusTodo),
		task(3, "medium task aa", nil, service.PriorityMedium, service.StatusTodo),
	}

	f := taskstore.DefaultFilters()
	f.SortBy = taskstore.SortByPriority
	f.SortOrder = taskstore.Asc

	view := taskstore.DeriveView(tasks, f)
	if !equalIDs(ids(view), []int{1, 3, 2}) {
		t.Errorf("expected [1 3 2], got %v", ids(view))
	}
}

func TestDeriveView_StableOnTies(t *testing.T) {
	due := datePtr(2024, time.March, 1)
	tasks := []service.Task{
		task(1, "first high a", due, service.PriorityHigh, service.StatusTodo),
		task(2, "second high a", due, service.PriorityHigh, service.StatusTodo),
		task(3, "third high a", due, service.PriorityHigh, service.StatusTodo),
	}

	for _, key := range []taskstore.SortKey{taskstore.SortByDueDate, taskstore.SortByPriority} {
		for _, order := range []taskstore.Order{taskstore.Asc, taskstore.Desc} {
			f := taskstore.DefaultFilters()
			f.SortBy = key
			f.SortOrder = order
			view := taskstore.DeriveView(tasks, f)
			if !equalIDs(ids(view), []int{1, 2, 3}) {
				t.Errorf("sort %s/%s: ties not stable, got %v", key, order, ids(view))
			}
		}
	}
}

func TestDeriveView_DoesNotMutateInput(t *testing.T) {
	tasks := []service.Task{
		task(1, "task one x", datePtr(2024, time.May, 20), service.PriorityLow, service.StatusTodo),
		task(2, "task two x", datePtr(2024, time.May, 1), service.PriorityHigh, service.StatusCompleted),
		task(3, "task three x", nil, service.PriorityMedium, service.StatusTodo),
	}

	f := taskstore.DefaultFilters()
	f.SortBy = taskstore.SortByDueDate
	taskstore.DeriveView(tasks, f)

	if !equalIDs(ids(tasks), []int{1, 2, 3}) {
		t.Errorf("input order changed: %v", ids(tasks))
	}
}

func TestView_Memoized(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(task(1, "task one x", nil, service.PriorityLow, service.StatusTodo))
	svc.AddTask(task(2, "task two x", nil, service.PriorityHigh, service.StatusTodo))

	store := taskstore.New(svc)
	if err := store.FetchAll(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	v1 := store.View()
	v2 := store.View()
	if len(v1) != 2 || len(v2) != 2 {
		t.Fatalf("expected 2 tasks in view, got %d and %d", len(v1), len(v2))
	}
	// unchanged inputs -> same derived slice
	if &v1[0] != &v2[0] {
		t.Error("expected memoized view to be reused")
	}

	f := store.Filters()
	f.Priority = string(service.PriorityHigh)
	store.SetFilters(f)
	v3 := store.View()
	if !equalIDs(ids(v3), []int{2}) {
		t.Errorf("expected [2] after filter change, got %v", ids(v3))
	}
}

func TestStore_CreateAppends(t *testing.T) {
	svc := testutil.NewFakeService()
	store := taskstore.New(svc)

	created, err := store.Create(context.Background(), service.CreateTaskRequest{
		Title:    "write the report",
		Priority: service.PriorityMedium,
		Status:   service.StatusTodo,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected server-assigned id")
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 task in collection, got %d", store.Len())
	}
}

func TestStore_CreateFailureLeavesCollectionUnchanged(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(task(1, "existing task a", nil, service.PriorityLow, service.StatusTodo))

	store := taskstore.New(svc)
	if err := store.FetchAll(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	svc.CreateTaskErr = errors.New("network down")
	_, err := store.Create(context.Background(), service.CreateTaskRequest{
		Title:    "will not exist",
		Priority: service.PriorityLow,
		Status:   service.StatusTodo,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !equalIDs(ids(store.Tasks()), []int{1}) {
		t.Errorf("collection changed on failure: %v", ids(store.Tasks()))
	}
}

func TestStore_UpdateReplacesByID(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(task(1, "task one xx", nil, service.PriorityLow, service.StatusTodo))
	svc.AddTask(task(2, "task two xx", nil, service.PriorityLow, service.StatusTodo))

	store := taskstore.New(svc)
	if err := store.FetchAll(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	_, err := store.Update(context.Background(), 2, service.UpdateTaskRequest{
		Title:    "task two renamed",
		Priority: service.PriorityHigh,
		Status:   service.StatusInProgress,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	tasks := store.Tasks()
	if !equalIDs(ids(tasks), []int{1, 2}) {
		t.Fatalf("unexpected collection: %v", ids(tasks))
	}
	if tasks[1].Title != "task two renamed" || tasks[1].Status != service.StatusInProgress {
		t.Errorf("entry not replaced: %+v", tasks[1])
	}
}

func TestStore_DeleteRemovesByID(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(task(1, "task one xx", nil, service.PriorityLow, service.StatusTodo))
	svc.AddTask(task(2, "task two xx", nil, service.PriorityLow, service.StatusTodo))

	store := taskstore.New(svc)
	if err := store.FetchAll(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if err := store.Delete(context.Background(), 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !equalIDs(ids(store.Tasks()), []int{2}) {
		t.Errorf("expected [2], got %v", ids(store.Tasks()))
	}
}

func TestStore_DeleteFailureLeavesCollectionUnchanged(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(task(1, "task one xx", nil, service.PriorityLow, service.StatusTodo))

	store := taskstore.New(svc)
	if err := store.FetchAll(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	svc.DeleteTaskErr = errors.New("boom")
	if err := store.Delete(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}
	if store.Len() != 1 {
		t.Errorf("collection changed on failure, len=%d", store.Len())
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	tasks := []service.Task{
		task(1, "overdue one a", datePtr(2024, time.June, 1), service.PriorityLow, service.StatusTodo),
		task(2, "done but old a", datePtr(2024, time.June, 1), service.PriorityLow, service.StatusCompleted),
		task(3, "in progress a", datePtr(2024, time.June, 20), service.PriorityLow, service.StatusInProgress),
		task(4, "no due date a", nil, service.PriorityLow, service.StatusTodo),
	}

	st := taskstore.Summarize(tasks, now)
	if st.Total != 4 || st.Todo != 2 || st.InProgress != 1 || st.Completed != 1 {
		t.Errorf("unexpected counts: %+v", st)
	}
	if st.Overdue != 1 {
		t.Errorf("expected 1 overdue, got %d", st.Overdue)
	}
}
