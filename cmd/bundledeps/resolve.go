package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/albertocavalcante/go-bundledeps/document"
)

func newResolveCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Compute every project's dependencies and write dependencies.yml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := st.session()
			if err != nil {
				return err
			}
			old, err := document.ReadOrEmpty(s.Workspace.DocumentPath())
			if err != nil {
				return err
			}

			doc, resolveErr := s.Resolve(cmd.Context())
			if doc != nil {
				printDiff(cmd.OutOrStdout(), document.Compare(old, doc))
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", s.Workspace.DocumentPath())
			}
			return resolveErr
		},
		DisableAutoGenTag: true,
	}
}

func printDiff(w io.Writer, diff *document.Diff) {
	if diff.IsEmpty() {
		fmt.Fprintln(w, "dependencies unchanged")
		return
	}
	for _, name := range diff.AddedProjects {
		fmt.Fprintf(w, "+ %s\n", name)
	}
	for _, name := range diff.RemovedProjects {
		fmt.Fprintf(w, "- %s\n", name)
	}
	for _, p := range diff.Changed {
		fmt.Fprintf(w, "~ %s\n", p.Project)
		for _, d := range p.AddedDependencies {
			fmt.Fprintf(w, "    + %s\n", d)
		}
		for _, d := range p.RemovedDependencies {
			fmt.Fprintf(w, "    - %s\n", d)
		}
		for _, d := range p.AddedProjects {
			fmt.Fprintf(w, "    + project %s\n", d)
		}
		for _, d := range p.RemovedProjects {
			fmt.Fprintf(w, "    - project %s\n", d)
		}
	}
}

func newCleanCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Reset dependencies.yml to an empty entry per project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := st.session()
			if err != nil {
				return err
			}
			if err := s.Clean(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleaned %s\n", s.Workspace.DocumentPath())
			return nil
		},
		DisableAutoGenTag: true,
	}
}

func newDependenciesCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "dependencies PROJECT",
		Short: "Print the dependencies recorded for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := st.session()
			if err != nil {
				return err
			}
			deps, err := s.Workspace.Dependencies(args[0])
			if err != nil {
				return err
			}
			for _, d := range deps {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
			return nil
		},
		DisableAutoGenTag: true,
	}
}
