package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	todoerrors "github.com/abatilo/powertodo/internal/errors"
	"github.com/abatilo/powertodo/internal/stats"
	"github.com/abatilo/powertodo/internal/storage"
	"github.com/abatilo/powertodo/internal/task"
)

// addCmd implements 'powertodo add'.
func addCmd(a *app) *cobra.Command {
	var description, category, priority, deadline, estimate string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new task",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			details := task.Details{
				Title:         args[0],
				Description:   description,
				EstimatedTime: estimate,
			}
			// Empty values fall through to Validate, which names the missing field.
			if strings.TrimSpace(category) != "" {
				c, err := task.ParseCategory(category)
				if err != nil {
					return err
				}
				details.Category = c
			}
			if strings.TrimSpace(priority) != "" {
				p, err := task.ParsePriority(priority)
				if err != nil {
					return err
				}
				details.Priority = p
			}
			if deadline != "" {
				d, err := task.ParseDate(deadline)
				if err != nil {
					return err
				}
				details.Deadline = &d
			}

			t, err := a.store.Add(details)
			if t == nil {
				return err
			}
			if err = a.checkPersist(err); err != nil {
				return err
			}
			a.print(a.formatter.FormatTask(t))
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (professional, personal, academic)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority (low, medium, high, urgent)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline as YYYY-MM-DD")
	cmd.Flags().StringVarP(&estimate, "estimate", "e", "", "Estimated time, free text")
	return cmd
}

// listCmd implements 'powertodo list'.
func listCmd(a *app) *cobra.Command {
	var category, status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(_ *cobra.Command, _ []string) error {
			filter, err := storage.ParseFilter(category, status)
			if err != nil {
				return err
			}
			a.print(a.formatter.FormatTaskList(a.store.List(filter)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "all", "Only this category (all, professional, personal, academic)")
	cmd.Flags().StringVarP(&status, "status", "s", "all", "Only this status (all, pending, completed)")
	return cmd
}

// showCmd implements 'powertodo show'.
func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			t, err := a.store.Get(args[0])
			if err != nil {
				return err
			}
			a.print(a.formatter.FormatTask(t))
			return nil
		},
	}
}

// toggleCmd implements 'powertodo toggle'.
func toggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Mark a task completed, or reopen a completed task",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			t, err := a.store.Toggle(args[0])
			if t == nil {
				return err
			}
			if err = a.checkPersist(err); err != nil {
				return err
			}
			a.print(a.formatter.FormatTask(t))
			return nil
		},
	}
}

// rmCmd implements 'powertodo rm'.
func rmCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			taskID := args[0]

			t, err := a.store.Get(taskID)
			if err != nil {
				return err
			}
			if !yes && !a.confirm(fmt.Sprintf("Delete task %q?", t.Title)) {
				return todoerrors.AbortedError{Action: "delete"}
			}

			if err = a.checkPersist(a.store.Delete(taskID)); err != nil {
				return err
			}
			a.print(a.formatter.FormatMessage(fmt.Sprintf("Removed task %s (%s)", taskID, t.Title)))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// pruneCmd implements 'powertodo prune'.
func pruneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove all completed tasks",
		RunE: func(_ *cobra.Command, _ []string) error {
			removed, err := a.store.DeleteCompleted()
			if err = a.checkPersist(err); err != nil {
				return err
			}
			if removed == 0 {
				a.print(a.formatter.FormatMessage("No completed tasks to prune"))
				return nil
			}
			a.print(a.formatter.FormatMessage(fmt.Sprintf("Pruned %d completed task(s)", removed)))
			return nil
		},
	}
}

// statsCmd implements 'powertodo stats'.
func statsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show progress and the last 7 days of activity",
		RunE: func(_ *cobra.Command, _ []string) error {
			a.print(a.formatter.FormatSummary(stats.Summarize(a.store.All(), a.now())))
			return nil
		},
	}
}

// confirm asks a yes/no question on the input stream. Anything but y/yes is no.
func (a *app) confirm(question string) bool {
	fmt.Fprintf(a.errOut, "%s [y/N] ", question)
	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
