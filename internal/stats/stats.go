// Package stats derives summary statistics and the 7-day activity series
// from a task collection. Everything here is a pure function of its inputs.
package stats

import (
	"time"

	"github.com/abatilo/powertodo/internal/task"
)

// DailyWindow is the number of calendar days in the activity series.
const DailyWindow = 7

// Day is one entry of the activity series.
type Day struct {
	Date      task.Date
	Weekday   time.Weekday
	Created   int
	Completed int
}

// DailySeries holds DailyWindow days, oldest first, ending today.
type DailySeries struct {
	Days []Day
}

// Labels returns the day identifiers the renderer formats as weekday names.
func (s DailySeries) Labels() []time.Weekday {
	labels := make([]time.Weekday, len(s.Days))
	for i, d := range s.Days {
		labels[i] = d.Weekday
	}
	return labels
}

// CreatedCounts returns the created counters in day order.
func (s DailySeries) CreatedCounts() []int {
	counts := make([]int, len(s.Days))
	for i, d := range s.Days {
		counts[i] = d.Created
	}
	return counts
}

// CompletedCounts returns the completed counters in day order.
func (s DailySeries) CompletedCounts() []int {
	counts := make([]int, len(s.Days))
	for i, d := range s.Days {
		counts[i] = d.Completed
	}
	return counts
}

// Summary is a read-only snapshot of the collection.
type Summary struct {
	Total      int
	Completed  int
	Pending    int
	Progress   int
	Overdue    int
	ByCategory map[task.Category]int
	ByPriority map[task.Priority]int
	Daily      DailySeries
}

// Summarize computes the summary of tasks as of now. Calendar dates are taken
// in now's location, so callers choose the day boundary by choosing now's zone.
func Summarize(tasks []*task.Task, now time.Time) Summary {
	s := Summary{
		Total:      len(tasks),
		ByCategory: make(map[task.Category]int, len(task.AllCategories())),
		ByPriority: make(map[task.Priority]int, len(task.AllPriorities())),
	}
	for _, c := range task.AllCategories() {
		s.ByCategory[c] = 0
	}
	for _, p := range task.AllPriorities() {
		s.ByPriority[p] = 0
	}

	today := task.DateOf(now)
	loc := now.Location()

	s.Daily.Days = make([]Day, DailyWindow)
	slot := make(map[task.Date]int, DailyWindow)
	for i := range DailyWindow {
		d := today.AddDays(i - (DailyWindow - 1))
		s.Daily.Days[i] = Day{Date: d, Weekday: d.Weekday()}
		slot[d] = i
	}

	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
		if _, ok := s.ByCategory[t.Category]; ok {
			s.ByCategory[t.Category]++
		}
		if _, ok := s.ByPriority[t.Priority]; ok {
			s.ByPriority[t.Priority]++
		}
		if t.IsOverdue(today) {
			s.Overdue++
		}

		if i, ok := slot[task.DateOf(t.CreatedAt.In(loc))]; ok {
			s.Daily.Days[i].Created++
		}
		if t.Completed {
			if i, ok := slot[task.DateOf(t.EffectiveCompletion().In(loc))]; ok {
				s.Daily.Days[i].Completed++
			}
		}
	}

	s.Pending = s.Total - s.Completed
	s.Progress = Progress(s.Completed, s.Total)
	return s
}

// Progress returns completed/total as a whole percentage rounded half up,
// or 0 when total is 0.
func Progress(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return (completed*200 + total) / (total * 2)
}
