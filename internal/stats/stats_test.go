//nolint:testpackage // Tests require internal access for thorough testing
package stats

import (
	"testing"
	"time"

	"github.com/abatilo/powertodo/internal/task"
)

func makeTask(c task.Category, p task.Priority, created time.Time) *task.Task {
	return &task.Task{
		ID:        created.Format(time.RFC3339Nano) + string(c),
		Title:     "Task",
		Category:  c,
		Priority:  p,
		CreatedAt: created,
	}
}

func complete(t *task.Task, at *time.Time) *task.Task {
	t.Completed = true
	t.CompletedAt = at
	return t
}

func TestProgress(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds half up
		{1, 200, 1}, // 0.5 rounds half up
		{3, 3, 100},
	}

	for _, tt := range tests {
		if got := Progress(tt.completed, tt.total); got != tt.want {
			t.Errorf("Progress(%d, %d) = %d, want %d", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestSummarizeEmpty(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	s := Summarize(nil, now)

	if s.Total != 0 || s.Completed != 0 || s.Pending != 0 || s.Progress != 0 {
		t.Errorf("Summarize(nil) = %+v, want zero counts", s)
	}
	if len(s.ByCategory) != 3 || len(s.ByPriority) != 4 {
		t.Errorf("breakdowns not zero-filled: %v %v", s.ByCategory, s.ByPriority)
	}
	if len(s.Daily.Days) != DailyWindow {
		t.Fatalf("Daily has %d days, want %d", len(s.Daily.Days), DailyWindow)
	}
}

func TestSummarizeScenario(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	morning := now.Add(-6 * time.Hour)
	doneAt := now.Add(-time.Hour)

	tasks := []*task.Task{
		makeTask(task.CategoryProfessional, task.PriorityHigh, morning),
		makeTask(task.CategoryPersonal, task.PriorityLow, morning.Add(time.Minute)),
		complete(makeTask(task.CategoryPersonal, task.PriorityUrgent, morning.Add(2*time.Minute)), &doneAt),
	}

	s := Summarize(tasks, now)

	if s.Total != 3 || s.Completed != 1 || s.Pending != 2 || s.Progress != 33 {
		t.Errorf("counts = total %d completed %d pending %d progress %d, want 3/1/2/33",
			s.Total, s.Completed, s.Pending, s.Progress)
	}

	wantCategory := map[task.Category]int{
		task.CategoryProfessional: 1,
		task.CategoryPersonal:     2,
		task.CategoryAcademic:     0,
	}
	for c, want := range wantCategory {
		if s.ByCategory[c] != want {
			t.Errorf("ByCategory[%s] = %d, want %d", c, s.ByCategory[c], want)
		}
	}

	wantPriority := map[task.Priority]int{
		task.PriorityLow:    1,
		task.PriorityMedium: 0,
		task.PriorityHigh:   1,
		task.PriorityUrgent: 1,
	}
	for p, want := range wantPriority {
		if s.ByPriority[p] != want {
			t.Errorf("ByPriority[%s] = %d, want %d", p, s.ByPriority[p], want)
		}
	}

	today := s.Daily.Days[DailyWindow-1]
	if today.Date != task.DateOf(now) {
		t.Errorf("last day = %s, want %s", today.Date, task.DateOf(now))
	}
	if today.Created != 3 || today.Completed != 1 {
		t.Errorf("today created %d completed %d, want 3 and 1", today.Created, today.Completed)
	}
}

func TestSummarizeDailyWindow(t *testing.T) {
	now := time.Date(2024, 3, 3, 8, 0, 0, 0, time.UTC) // Sunday
	s := Summarize(nil, now)

	wantDates := []string{
		"2024-02-26", "2024-02-27", "2024-02-28", "2024-02-29",
		"2024-03-01", "2024-03-02", "2024-03-03",
	}
	for i, d := range s.Daily.Days {
		if d.Date.String() != wantDates[i] {
			t.Errorf("day %d = %s, want %s", i, d.Date, wantDates[i])
		}
	}

	labels := s.Daily.Labels()
	if labels[0] != time.Monday || labels[6] != time.Sunday {
		t.Errorf("Labels() = %v, want Monday..Sunday", labels)
	}
}

func TestSummarizeDailyBuckets(t *testing.T) {
	now := time.Date(2024, 5, 10, 23, 59, 0, 0, time.UTC)
	day := func(offset int, hour int) time.Time {
		return time.Date(2024, 5, 10+offset, hour, 0, 0, 0, time.UTC)
	}
	threeDaysAgo := day(-3, 10)
	twoDaysAgo := day(-2, 1)

	tasks := []*task.Task{
		// Outside the window on both counters.
		complete(makeTask(task.CategoryAcademic, task.PriorityLow, day(-7, 12)), nil),
		// Created in window, completed later in window.
		complete(makeTask(task.CategoryAcademic, task.PriorityLow, day(-6, 0)), &threeDaysAgo),
		// Completed without CompletedAt falls back to the creation day.
		complete(makeTask(task.CategoryAcademic, task.PriorityLow, twoDaysAgo), nil),
		// Pending tasks never count as completed, even with a stale CompletedAt.
		{ID: "stale", CreatedAt: day(0, 0), CompletedAt: &threeDaysAgo},
	}

	s := Summarize(tasks, now)

	wantCreated := []int{1, 0, 0, 0, 1, 0, 1}
	wantCompleted := []int{0, 0, 0, 1, 1, 0, 0}
	created := s.Daily.CreatedCounts()
	completed := s.Daily.CompletedCounts()
	for i := range DailyWindow {
		if created[i] != wantCreated[i] {
			t.Errorf("created = %v, want %v", created, wantCreated)
			break
		}
	}
	for i := range DailyWindow {
		if completed[i] != wantCompleted[i] {
			t.Errorf("completed = %v, want %v", completed, wantCompleted)
			break
		}
	}
}

func TestSummarizeUsesNowLocation(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	// 20:00 UTC on May 9 is already May 10 in UTC+7.
	created := time.Date(2024, 5, 9, 20, 0, 0, 0, time.UTC)
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, jakarta)

	s := Summarize([]*task.Task{makeTask(task.CategoryPersonal, task.PriorityLow, created)}, now)
	if s.Daily.Days[DailyWindow-1].Created != 1 {
		t.Errorf("task created late on May 9 UTC should count on May 10 in UTC+7: %v",
			s.Daily.CreatedCounts())
	}
}

func TestSummarizeIgnoresUnknownEnums(t *testing.T) {
	now := time.Now()
	s := Summarize([]*task.Task{
		makeTask(task.Category("hobby"), task.Priority("critical"), now),
	}, now)

	if s.Total != 1 {
		t.Errorf("Total = %d, want 1", s.Total)
	}
	if _, ok := s.ByCategory["hobby"]; ok {
		t.Error("unknown category should not be represented")
	}
	if _, ok := s.ByPriority["critical"]; ok {
		t.Error("unknown priority should not be represented")
	}
}

func TestSummarizeOverdue(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	past := task.Date{Year: 2024, Month: time.May, Day: 1}
	future := task.Date{Year: 2024, Month: time.June, Day: 1}

	late := makeTask(task.CategoryPersonal, task.PriorityHigh, now)
	late.Deadline = &past
	upcoming := makeTask(task.CategoryPersonal, task.PriorityHigh, now)
	upcoming.Deadline = &future
	doneLate := complete(makeTask(task.CategoryPersonal, task.PriorityHigh, now), nil)
	doneLate.Deadline = &past

	s := Summarize([]*task.Task{late, upcoming, doneLate}, now)
	if s.Overdue != 1 {
		t.Errorf("Overdue = %d, want 1", s.Overdue)
	}
}
