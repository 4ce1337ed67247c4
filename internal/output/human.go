package output

import (
	"fmt"
	"strings"

	"github.com/abatilo/powertodo/internal/preferences"
	"github.com/abatilo/powertodo/internal/stats"
	"github.com/abatilo/powertodo/internal/task"
)

const (
	timeFormat  = "2006-01-02 15:04"
	progressBar = 20
	chartWidth  = 20
)

// HumanFormatter formats output for human-readable terminal display.
type HumanFormatter struct{}

// NewHumanFormatter creates a new HumanFormatter.
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// FormatTask formats a single task for display.
func (f *HumanFormatter) FormatTask(t *task.Task) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[%s] %s\n", t.ID, t.Title)
	fmt.Fprintf(&sb, "  Status:    %s\n", f.statusWord(t))
	fmt.Fprintf(&sb, "  Category:  %s\n", CategoryLabel(t.Category))
	fmt.Fprintf(&sb, "  Priority:  %s\n", t.Priority)
	fmt.Fprintf(&sb, "  Created:   %s\n", t.CreatedAt.Local().Format(timeFormat))

	if t.Completed && t.CompletedAt != nil {
		fmt.Fprintf(&sb, "  Completed: %s\n", t.CompletedAt.Local().Format(timeFormat))
	}
	if t.Deadline != nil {
		fmt.Fprintf(&sb, "  Deadline:  %s\n", t.Deadline)
	}
	if t.EstimatedTime != "" {
		fmt.Fprintf(&sb, "  Estimate:  %s\n", t.EstimatedTime)
	}
	if t.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(t.Description)
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatTaskList formats a list of tasks for display.
func (f *HumanFormatter) FormatTaskList(tasks []*task.Task) string {
	if len(tasks) == 0 {
		return "No tasks found.\n"
	}

	var sb strings.Builder
	for _, t := range tasks {
		sb.WriteString(f.formatTaskLine(t))
	}
	return sb.String()
}

// formatTaskLine formats a single task as a compact one-liner.
func (f *HumanFormatter) formatTaskLine(t *task.Task) string {
	deadline := ""
	if t.Deadline != nil {
		deadline = fmt.Sprintf(" (due %s)", t.Deadline)
	}
	return fmt.Sprintf("%s %s [%s] %s - %s%s\n",
		f.statusIcon(t), f.priorityMark(t.Priority), t.ID, t.Title, CategoryLabel(t.Category), deadline)
}

func (f *HumanFormatter) statusIcon(t *task.Task) string {
	if t.Completed {
		return "[X]"
	}
	return "[ ]"
}

func (f *HumanFormatter) statusWord(t *task.Task) string {
	if t.Completed {
		return "completed"
	}
	return "pending"
}

func (f *HumanFormatter) priorityMark(p task.Priority) string {
	switch p {
	case task.PriorityUrgent:
		return "!!!"
	case task.PriorityHigh:
		return "!! "
	case task.PriorityMedium:
		return "!  "
	case task.PriorityLow:
		return "   "
	default:
		return "?  "
	}
}

// FormatSummary renders counts, a progress bar and the 7-day activity chart.
func (f *HumanFormatter) FormatSummary(s stats.Summary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Tasks:     %d total, %d completed, %d pending", s.Total, s.Completed, s.Pending)
	if s.Overdue > 0 {
		fmt.Fprintf(&sb, ", %d overdue", s.Overdue)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Progress:  [%s] %d%%\n", bar(s.Progress, 100, progressBar, '#', '.'), s.Progress)

	sb.WriteString("Category: ")
	for _, c := range task.AllCategories() {
		fmt.Fprintf(&sb, " %s %d", CategoryLabel(c), s.ByCategory[c])
	}
	sb.WriteString("\nPriority: ")
	for _, p := range task.AllPriorities() {
		fmt.Fprintf(&sb, " %s %d", p, s.ByPriority[p])
	}
	sb.WriteString("\n\nLast 7 days      created              completed\n")

	peak := 1
	for _, d := range s.Daily.Days {
		peak = max(peak, d.Created, d.Completed)
	}
	for _, d := range s.Daily.Days {
		fmt.Fprintf(&sb, "  %s %s  %-*s %3d  %-*s %3d\n",
			WeekdayLabel(d), d.Date.String()[5:],
			chartWidth/2, bar(d.Created, peak, chartWidth/2, '+', ' '), d.Created,
			chartWidth/2, bar(d.Completed, peak, chartWidth/2, '*', ' '), d.Completed)
	}
	return sb.String()
}

// bar draws value/limit as a fixed-width run of fill characters.
func bar(value, limit, width int, fill, empty rune) string {
	n := 0
	if limit > 0 {
		n = min(width, value*width/limit)
	}
	return strings.Repeat(string(fill), n) + strings.Repeat(string(empty), width-n)
}

// FormatPreferences formats profile preferences.
func (f *HumanFormatter) FormatPreferences(p preferences.Preferences) string {
	name := p.Username
	if name == "" {
		name = "(not set)"
	}
	avatar := "none"
	if p.HasAvatar() {
		avatar = fmt.Sprintf("set (%d bytes)", len(p.Avatar))
	}
	return fmt.Sprintf("Name:   %s\nTheme:  %s\nAvatar: %s\n", name, p.Theme, avatar)
}

// FormatError formats an error for display.
func (f *HumanFormatter) FormatError(err error) string {
	return fmt.Sprintf("Error: %s\n", err.Error())
}

// FormatWarning formats a non-fatal problem.
func (f *HumanFormatter) FormatWarning(err error) string {
	return fmt.Sprintf("Warning: %s\n", err.Error())
}

// FormatMessage formats a simple message.
func (f *HumanFormatter) FormatMessage(msg string) string {
	return msg + "\n"
}
