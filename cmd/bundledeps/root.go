package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	slogcontext "github.com/veqryn/slog-context"

	bundledeps "github.com/albertocavalcante/go-bundledeps"
	"github.com/albertocavalcante/go-bundledeps/config"
	"github.com/albertocavalcante/go-bundledeps/internal/logging"
)

const (
	configFlag    = "config"
	setFlag       = "set"
	workspaceFlag = "workspace"
	platformFlag  = "platform"
)

// state is shared by the sub-commands once the root pre-run hook has loaded
// the configuration.
type state struct {
	cfg       *config.Config
	logger    *slog.Logger
	platforms []string
}

// New returns the root command with every task registered.
func New() *cobra.Command {
	st := &state{}
	cmd := &cobra.Command{
		Use:   "bundledeps",
		Short: "Resolve and install OSGi bundle dependencies of a workspace",
		Long: `bundledeps walks the Require-Bundle and Import-Package headers of every
project in a BUNDLES.bazel workspace, records the transitive closure in
dependencies.yml and installs the resolved bundles into a repository.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return st.setup(cmd)
		},
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}

	flags := cmd.PersistentFlags()
	flags.String(configFlag, "", "path to a YAML configuration file")
	flags.StringArray(setFlag, nil, "override a configuration option (key=value), may be repeated")
	flags.StringP(workspaceFlag, "w", "", "path to the BUNDLES.bazel workspace file")
	flags.StringArrayVar(&st.platforms, platformFlag, nil, "workspace file providing platform bundles, may be repeated")
	logging.RegisterFlags(flags)

	cmd.AddCommand(
		newResolveCommand(st),
		newCleanCommand(st),
		newDependenciesCommand(st),
		newInstallCommand(st),
		newUploadCommand(st),
		newInstallBundlesCommand(st),
		newGraphCommand(st),
		newEnvironmentsCommand(st),
	)
	return cmd
}

func (st *state) setup(cmd *cobra.Command) error {
	logger, err := logging.New(cmd.Flags(), cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("could not create logger: %w", err)
	}
	st.logger = logger
	cmd.SetContext(slogcontext.NewCtx(cmd.Context(), logger))

	path, err := cmd.Flags().GetString(configFlag)
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	assignments, err := cmd.Flags().GetStringArray(setFlag)
	if err != nil {
		return err
	}
	if err := cfg.Apply(assignments); err != nil {
		return err
	}
	if ws, _ := cmd.Flags().GetString(workspaceFlag); ws != "" {
		cfg.Workspace = ws
	}
	st.cfg = cfg

	logger.DebugContext(cmd.Context(), "configuration loaded",
		"workspace", cfg.Workspace,
		"localRepository", cfg.LocalRepository)
	return nil
}

// session opens the configured workspace. Platform workspaces are consulted
// after it.
func (st *state) session() (*bundledeps.Session, error) {
	opts := []bundledeps.Option{
		bundledeps.WithLogger(st.logger),
		bundledeps.WithConcurrency(st.cfg.Concurrency),
		bundledeps.WithProgress(func(e bundledeps.ProgressEvent) {
			if e.Stage == bundledeps.ProgressProjectDone {
				st.logger.Info("collected project", "project", e.Project, "bundles", e.Bundles)
			}
		}),
	}
	for _, path := range st.platforms {
		platform, err := bundledeps.ParseWorkspaceFile(path)
		if err != nil {
			return nil, fmt.Errorf("platform %s: %w", path, err)
		}
		opts = append(opts, bundledeps.WithResolvers(bundledeps.NewIndex(platform)))
	}
	return bundledeps.Open(st.cfg.Workspace, opts...)
}
