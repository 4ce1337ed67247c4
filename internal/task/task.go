package task

import (
	"strings"
	"time"

	todoerrors "github.com/abatilo/powertodo/internal/errors"
)

// Category represents the life domain a task belongs to.
type Category string

const (
	CategoryProfessional Category = "professional"
	CategoryPersonal     Category = "personal"
	CategoryAcademic     Category = "academic"
)

// AllCategories returns every category in display order.
func AllCategories() []Category {
	return []Category{CategoryProfessional, CategoryPersonal, CategoryAcademic}
}

// IsValidCategory checks if a category string is valid.
func IsValidCategory(c Category) bool {
	switch c {
	case CategoryProfessional, CategoryPersonal, CategoryAcademic:
		return true
	default:
		return false
	}
}

// ParseCategory converts user input to a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !IsValidCategory(c) {
		return "", todoerrors.InvalidCategoryError{Value: s}
	}
	return c, nil
}

// Priority represents the urgency of a task. It is display-only.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// AllPriorities returns every priority from least to most urgent.
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// IsValidPriority checks if a priority string is valid.
func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// ParsePriority converts user input to a Priority.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !IsValidPriority(p) {
		return "", todoerrors.InvalidPriorityError{Value: s}
	}
	return p, nil
}

// Task represents a tracked unit of work.
type Task struct {
	ID            string
	Title         string
	Description   string
	Category      Category
	Priority      Priority
	Deadline      *Date
	EstimatedTime string
	Completed     bool
	CreatedAt     time.Time
	CompletedAt   *time.Time
}

// Clone returns a deep copy so callers cannot mutate store-owned state.
func (t *Task) Clone() *Task {
	c := *t
	if t.Deadline != nil {
		d := *t.Deadline
		c.Deadline = &d
	}
	if t.CompletedAt != nil {
		ts := *t.CompletedAt
		c.CompletedAt = &ts
	}
	return &c
}

// EffectiveCompletion returns when the task counts as completed for
// statistics: CompletedAt when known, CreatedAt otherwise.
func (t *Task) EffectiveCompletion() time.Time {
	if t.CompletedAt != nil {
		return *t.CompletedAt
	}
	return t.CreatedAt
}

// IsOverdue reports whether an incomplete task's deadline lies before today.
func (t *Task) IsOverdue(today Date) bool {
	if t.Completed || t.Deadline == nil {
		return false
	}
	return t.Deadline.Before(today)
}

// Details holds the user-supplied fields for a new task.
type Details struct {
	Title         string
	Description   string
	Category      Category
	Priority      Priority
	Deadline      *Date
	EstimatedTime string
}

// Validate trims free-text fields and checks that title, category and
// priority are present and well-formed.
func (d *Details) Validate() error {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.EstimatedTime = strings.TrimSpace(d.EstimatedTime)

	if d.Title == "" {
		return todoerrors.ValidationError{Field: "title"}
	}
	if d.Category == "" {
		return todoerrors.ValidationError{Field: "category"}
	}
	if d.Priority == "" {
		return todoerrors.ValidationError{Field: "priority"}
	}
	if !IsValidCategory(d.Category) {
		return todoerrors.InvalidCategoryError{Value: string(d.Category)}
	}
	if !IsValidPriority(d.Priority) {
		return todoerrors.InvalidPriorityError{Value: string(d.Priority)}
	}
	return nil
}
