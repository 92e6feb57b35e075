package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonbystrom/teampulse/internal/app"
	"github.com/simonbystrom/teampulse/internal/member"
)

func statusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status <member> <Working|Meeting|Break|Offline>",
		Short: "Set a member's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := member.ParseStatus(args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return opts.run(func(a *app.App) error {
				m, candidates, ok := member.Match(a.Members.Members(), args[0])
				if !ok || !a.Members.SetMemberStatus(m.ID, st) {
					notFound(out, args[0], candidates)
					return nil
				}
				fmt.Fprintf(out, "%s is now %s\n", m.Name, st)
				return nil
			})
		},
	}
}

func assignCmd(opts *options) *cobra.Command {
	var due string
	cmd := &cobra.Command{
		Use:   "assign <member> <title>",
		Short: "Assign a new task to a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(args[1])
			if title == "" {
				return errors.New("task title is required")
			}
			dueDate, err := member.ParseDate(due)
			if err != nil {
				return fmt.Errorf("--due: %w", err)
			}
			out := cmd.OutOrStdout()
			return opts.run(func(a *app.App) error {
				m, candidates, ok := member.Match(a.Members.Members(), args[0])
				if !ok {
					notFound(out, args[0], candidates)
					return nil
				}
				id, ok := a.Members.AssignTask(m.ID, title, dueDate)
				if !ok {
					notFound(out, args[0], nil)
					return nil
				}
				fmt.Fprintf(out, "assigned task %d to %s\n", id, m.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	return cmd
}

func progressCmd(opts *options) *cobra.Command {
	var up, down bool
	cmd := &cobra.Command{
		Use:   "progress <member> <task-id>",
		Short: "Move a task's progress one step up or down",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id %q: %w", args[1], err)
			}
			delta := 1
			if down {
				delta = -1
			}
			out := cmd.OutOrStdout()
			return opts.run(func(a *app.App) error {
				m, candidates, ok := member.Match(a.Members.Members(), args[0])
				if !ok {
					notFound(out, args[0], candidates)
					return nil
				}
				if !a.Members.AdjustTaskProgress(m.ID, taskID, delta) {
					fmt.Fprintf(out, "no task %d for %s; nothing changed\n", taskID, m.Name)
					return nil
				}
				updated, _ := a.Members.Member(m.ID)
				for _, t := range updated.Tasks {
					if t.ID == taskID {
						fmt.Fprintf(out, "%s: %d%%\n", t.Title, t.Progress)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&up, "up", false, "increase progress by 10")
	cmd.Flags().BoolVar(&down, "down", false, "decrease progress by 10")
	cmd.MarkFlagsMutuallyExclusive("up", "down")
	cmd.MarkFlagsOneRequired("up", "down")
	return cmd
}
