package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	slogcontext "github.com/veqryn/slog-context"

	"github.com/albertocavalcante/go-bundledeps/install"
	"github.com/albertocavalcante/go-bundledeps/repository"
)

func newInstallCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install every resolved bundle into the local repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			local, err := st.localRepository()
			if err != nil {
				return err
			}
			return st.runPipeline(cmd.Context(), cmd.OutOrStdout(), install.NewLocalPublisher(local), local)
		},
		DisableAutoGenTag: true,
	}
}

func newUploadCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "upload",
		Short: "Upload every resolved bundle to the remote repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if st.cfg.RemoteRepository == "" {
				return errors.New("upload requires remoteRepository to be configured")
			}
			var opts []repository.RemoteOption
			if st.cfg.Username != "" {
				opts = append(opts, repository.WithBasicAuth(st.cfg.Username, st.cfg.Password))
			}
			remote := repository.NewRemote(st.cfg.RemoteRepository, opts...)

			local, err := st.localRepository()
			if err != nil {
				return err
			}
			return st.runPipeline(cmd.Context(), cmd.OutOrStdout(), install.NewRemotePublisher(remote), local)
		},
		DisableAutoGenTag: true,
	}
}

func newInstallBundlesCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "install-bundles",
		Short: "Copy the bundle artifact of every project into the release plugins folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := st.session()
			if err != nil {
				return err
			}
			releaseTo := st.cfg.ReleaseTo
			if releaseTo == "" {
				releaseTo = s.Workspace.ReleaseTo
			} else if !filepath.IsAbs(releaseTo) {
				releaseTo = filepath.Join(s.Workspace.Dir, releaseTo)
			}
			if releaseTo == "" {
				return errors.New("install-bundles requires a release directory (releaseTo)")
			}

			deployed, err := install.DeployProjects(cmd.Context(), releaseTo, s.Workspace.DeployableProjects())
			for _, path := range deployed {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return err
		},
		DisableAutoGenTag: true,
	}
}

func (st *state) localRepository() (*repository.Local, error) {
	if st.cfg.LocalRepository == "" {
		return nil, errors.New("localRepository is not configured")
	}
	return repository.NewLocal(st.cfg.LocalRepository), nil
}

// runPipeline publishes the install set of the workspace. Bundles without a
// file in the workspace are looked up in lookup.
func (st *state) runPipeline(ctx context.Context, out io.Writer, publisher install.Publisher, lookup *repository.Local) error {
	s, err := st.session()
	if err != nil {
		return err
	}
	bundles, err := s.InstallSet(ctx)
	if err != nil {
		return err
	}

	opts := []install.Option{install.WithLookup(lookup)}
	if st.cfg.TempDir != "" {
		opts = append(opts, install.WithTempDir(st.cfg.TempDir))
	}
	if st.cfg.NestedArchivePattern != "" {
		opts = append(opts, install.WithNestedArchivePattern(st.cfg.NestedArchivePattern))
	}
	p, err := install.New(publisher, opts...)
	if err != nil {
		return err
	}

	slogcontext.FromCtx(ctx).InfoContext(ctx, "publishing bundles",
		"publisher", publisher.Name(),
		"bundles", len(bundles))
	report := p.Run(ctx, bundles)
	for _, r := range report.Installed {
		fmt.Fprintf(out, "%s %s\n", r.Bundle, r.Digest)
	}
	fmt.Fprintf(out, "%s: %d published, %d failed\n", publisher.Name(), len(report.Installed), len(report.Failures))
	return report.Err()
}
