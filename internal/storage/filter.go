package storage

import (
	"strings"

	todoerrors "github.com/abatilo/powertodo/internal/errors"
	"github.com/abatilo/powertodo/internal/task"
)

// CategoryAll is the category sentinel that disables category filtering.
const CategoryAll task.Category = ""

// StatusFilter selects tasks by completion state.
type StatusFilter int

const (
	StatusAll StatusFilter = iota
	StatusPending
	StatusCompleted
)

func (s StatusFilter) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusCompleted:
		return "completed"
	default:
		return "all"
	}
}

// ParseStatusFilter converts "all", "pending" or "completed" to a StatusFilter.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return StatusAll, nil
	case "pending", "incomplete":
		return StatusPending, nil
	case "completed", "done":
		return StatusCompleted, nil
	default:
		return StatusAll, todoerrors.InvalidStatusFilterError{Value: s}
	}
}

// Filter controls which tasks List returns. The zero value matches everything.
type Filter struct {
	Category task.Category
	Status   StatusFilter
}

// ParseFilter builds a Filter from user-facing words; "all" or empty disables
// a dimension.
func ParseFilter(category, status string) (Filter, error) {
	var f Filter
	if c := strings.TrimSpace(category); c != "" && !strings.EqualFold(c, "all") {
		parsed, err := task.ParseCategory(c)
		if err != nil {
			return Filter{}, err
		}
		f.Category = parsed
	}
	s, err := ParseStatusFilter(status)
	if err != nil {
		return Filter{}, err
	}
	f.Status = s
	return f, nil
}

// Matches returns true if the task should be included.
func (f Filter) Matches(t *task.Task) bool {
	if f.Category != CategoryAll && t.Category != f.Category {
		return false
	}
	switch f.Status {
	case StatusPending:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	default:
		return true
	}
}
