package main

import (
	"fmt"

	"github.com/spf13/cobra"

	bundledeps "github.com/albertocavalcante/go-bundledeps"
)

func newEnvironmentsCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "environments PROJECT",
		Short: "Print the configured execution environments a project requires",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := st.session()
			if err != nil {
				return err
			}
			p := s.Workspace.Project(args[0])
			if p == nil {
				return fmt.Errorf("%w: %s", bundledeps.ErrProjectNotFound, args[0])
			}
			envs, err := p.ExecutionEnvironments(st.cfg.ExecutionEnvironments)
			if err != nil {
				return err
			}
			for _, e := range envs {
				fmt.Fprintln(cmd.OutOrStdout(), e)
			}
			return nil
		},
		DisableAutoGenTag: true,
	}
}
