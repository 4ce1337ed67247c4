package output

import (
	"encoding/json"
	"time"

	"github.com/abatilo/powertodo/internal/preferences"
	"github.com/abatilo/powertodo/internal/stats"
	"github.com/abatilo/powertodo/internal/task"
)

// JSONFormatter formats output as JSON.
type JSONFormatter struct{}

// marshalJSON marshals a value to indented JSON with a trailing newline.
func marshalJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data) + "\n"
}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// taskJSON is the JSON representation of a task.
type taskJSON struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	Category      string  `json:"category"`
	Priority      string  `json:"priority"`
	Deadline      string  `json:"deadline,omitempty"`
	EstimatedTime string  `json:"estimatedTime,omitempty"`
	Completed     bool    `json:"completed"`
	CreatedAt     string  `json:"createdAt"`
	CompletedAt   *string `json:"completedAt,omitempty"`
}

func toTaskJSON(t *task.Task) taskJSON {
	tj := taskJSON{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Category:      string(t.Category),
		Priority:      string(t.Priority),
		EstimatedTime: t.EstimatedTime,
		Completed:     t.Completed,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
	}
	if t.Deadline != nil {
		tj.Deadline = t.Deadline.String()
	}
	if t.CompletedAt != nil {
		s := t.CompletedAt.Format(time.RFC3339)
		tj.CompletedAt = &s
	}
	return tj
}

// FormatTask formats a single task as JSON.
func (f *JSONFormatter) FormatTask(t *task.Task) string {
	return marshalJSON(toTaskJSON(t))
}

// FormatTaskList formats a list of tasks as JSON.
func (f *JSONFormatter) FormatTaskList(tasks []*task.Task) string {
	jsonTasks := make([]taskJSON, len(tasks))
	for i, t := range tasks {
		jsonTasks[i] = toTaskJSON(t)
	}
	return marshalJSON(jsonTasks)
}

// dailyJSON mirrors the chart series: parallel arrays, oldest day first.
type dailyJSON struct {
	Labels    []string `json:"labels"`
	Dates     []string `json:"dates"`
	Created   []int    `json:"created"`
	Completed []int    `json:"completed"`
}

type summaryJSON struct {
	Total      int                   `json:"total"`
	Completed  int                   `json:"completed"`
	Pending    int                   `json:"pending"`
	Progress   int                   `json:"progress"`
	Overdue    int                   `json:"overdue"`
	ByCategory map[task.Category]int `json:"byCategory"`
	ByPriority map[task.Priority]int `json:"byPriority"`
	Daily      dailyJSON             `json:"dailySeries"`
}

// FormatSummary formats statistics as JSON.
func (f *JSONFormatter) FormatSummary(s stats.Summary) string {
	daily := dailyJSON{
		Labels:    make([]string, len(s.Daily.Days)),
		Dates:     make([]string, len(s.Daily.Days)),
		Created:   s.Daily.CreatedCounts(),
		Completed: s.Daily.CompletedCounts(),
	}
	for i, d := range s.Daily.Days {
		daily.Labels[i] = WeekdayLabel(d)
		daily.Dates[i] = d.Date.String()
	}
	return marshalJSON(summaryJSON{
		Total:      s.Total,
		Completed:  s.Completed,
		Pending:    s.Pending,
		Progress:   s.Progress,
		Overdue:    s.Overdue,
		ByCategory: s.ByCategory,
		ByPriority: s.ByPriority,
		Daily:      daily,
	})
}

type preferencesJSON struct {
	Username string `json:"username"`
	Theme    string `json:"theme"`
	Avatar   string `json:"avatar,omitempty"`
}

// FormatPreferences formats profile preferences as JSON.
func (f *JSONFormatter) FormatPreferences(p preferences.Preferences) string {
	return marshalJSON(preferencesJSON{
		Username: p.Username,
		Theme:    string(p.Theme),
		Avatar:   p.Avatar,
	})
}

// errorJSON is the JSON representation of an error.
type errorJSON struct {
	Error string `json:"error"`
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(err error) string {
	return marshalJSON(errorJSON{Error: err.Error()})
}

type warningJSON struct {
	Warning string `json:"warning"`
}

// FormatWarning formats a non-fatal problem as JSON.
func (f *JSONFormatter) FormatWarning(err error) string {
	return marshalJSON(warningJSON{Warning: err.Error()})
}

// messageJSON is the JSON representation of a message.
type messageJSON struct {
	Message string `json:"message"`
}

// FormatMessage formats a simple message as JSON.
func (f *JSONFormatter) FormatMessage(msg string) string {
	return marshalJSON(messageJSON{Message: msg})
}
