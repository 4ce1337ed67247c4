package output

import (
	"github.com/abatilo/powertodo/internal/preferences"
	"github.com/abatilo/powertodo/internal/stats"
	"github.com/abatilo/powertodo/internal/task"
)

// Formatter defines the interface for output formatting.
type Formatter interface {
	FormatTask(t *task.Task) string
	FormatTaskList(tasks []*task.Task) string
	FormatSummary(s stats.Summary) string
	FormatPreferences(p preferences.Preferences) string
	FormatError(err error) string
	FormatWarning(err error) string
	FormatMessage(msg string) string
}

// CategoryLabel returns the display name of a category.
func CategoryLabel(c task.Category) string {
	switch c {
	case task.CategoryProfessional:
		return "Professional"
	case task.CategoryPersonal:
		return "Personal"
	case task.CategoryAcademic:
		return "Academic"
	default:
		return string(c)
	}
}

// WeekdayLabel returns the short weekday name used on chart axes.
func WeekdayLabel(d stats.Day) string {
	return d.Weekday.String()[:3]
}
