package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonbystrom/teampulse/internal/app"
	"github.com/simonbystrom/teampulse/internal/role"
)

func roleCmd(opts *options) *cobra.Command {
	var toggle bool
	cmd := &cobra.Command{
		Use:   "role [lead|member]",
		Short: "Show or switch the dashboard role",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if toggle && len(args) > 0 {
				return errors.New("--toggle takes no role argument")
			}
			var target role.Role
			if len(args) == 1 {
				r, err := role.ParseRole(args[0])
				if err != nil {
					return err
				}
				target = r
			}
			out := cmd.OutOrStdout()
			return opts.run(func(a *app.App) error {
				switch {
				case toggle:
					a.Role.Toggle()
				case target != "":
					a.Role.SwitchRole(target)
				}
				fmt.Fprintln(out, a.Role.State().CurrentRole.Label())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&toggle, "toggle", false, "switch between lead and member")
	return cmd
}

func whoamiCmd(opts *options) *cobra.Command {
	var set string
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show or set the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return opts.run(func(a *app.App) error {
				if cmd.Flags().Changed("set") {
					a.Role.SetCurrentUser(set)
				}
				st := a.Role.State()
				fmt.Fprintf(out, "%s (%s)\n", st.CurrentUser, st.CurrentRole.Label())
				if m, ok := a.CurrentMember(); ok {
					fmt.Fprintf(out, "acts as member %d, %s\n", m.ID, m.Name)
				} else {
					fmt.Fprintln(out, "no matching team member")
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&set, "set", "", "sign in as this user")
	return cmd
}
