package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonbystrom/teampulse/internal/app"
	"github.com/simonbystrom/teampulse/internal/member"
)

func membersCmd(opts *options) *cobra.Command {
	var status, sortBy string
	cmd := &cobra.Command{
		Use:   "members",
		Short: "List the roster with active task counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := member.ParseStatusFilter(status)
			if err != nil {
				return fmt.Errorf("--status: %w", err)
			}
			key, err := member.ParseSortKey(sortBy)
			if err != nil {
				return fmt.Errorf("--sort: %w", err)
			}
			return opts.run(func(a *app.App) error {
				writeMembers(cmd.OutOrStdout(), a.Members.Members(), filter, key)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", string(member.FilterAll), "show only members with this status")
	cmd.Flags().StringVar(&sortBy, "sort", string(member.SortByName), "sort order: name or tasks")
	return cmd
}

func writeMembers(w io.Writer, all []member.Member, filter member.StatusFilter, key member.SortKey) {
	shown := member.SortMembers(member.FilterByStatus(all, filter), key)
	fmt.Fprintf(w, "%-4s %-22s %-8s %s\n", "ID", "NAME", "STATUS", "ACTIVE")
	for _, m := range shown {
		fmt.Fprintf(w, "%-4d %-22s %-8s %d\n", m.ID, m.Name, m.Status, member.ActiveTaskCount(m))
	}

	counts := member.StatusCounts(all)
	parts := make([]string, 0, len(member.Statuses))
	for _, st := range member.Statuses {
		parts = append(parts, fmt.Sprintf("%s %d", st, counts[st]))
	}
	fmt.Fprintf(w, "\n%d members: %s\n", len(all), strings.Join(parts, ", "))
}

func tasksCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks <member>",
		Short: "List a member's tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return opts.run(func(a *app.App) error {
				m, ok := member.Resolve(a.Members.Members(), args[0])
				if !ok {
					notFound(out, args[0], nil)
					return nil
				}
				fmt.Fprintf(out, "%s (%s)\n", m.Name, m.Status)
				if len(m.Tasks) == 0 {
					fmt.Fprintln(out, "no tasks")
					return nil
				}
				fmt.Fprintf(out, "%-14s %-30s %-10s %s\n", "ID", "TITLE", "DUE", "PROGRESS")
				for _, t := range m.Tasks {
					due := t.DueDate.String()
					if due == "" {
						due = "-"
					}
					done := ""
					if t.Completed {
						done = " done"
					}
					fmt.Fprintf(out, "%-14d %-30s %-10s %d%%%s\n", t.ID, t.Title, due, t.Progress, done)
				}
				return nil
			})
		},
	}
}

func notFound(w io.Writer, ref string, candidates []member.Member) {
	fmt.Fprintf(w, "no member matches %q; nothing changed\n", ref)
	if len(candidates) == 0 {
		return
	}
	names := make([]string, len(candidates))
	for i, m := range candidates {
		names[i] = fmt.Sprintf("%s (id %d)", m.Name, m.ID)
	}
	fmt.Fprintf(w, "did you mean: %s\n", strings.Join(names, ", "))
}
