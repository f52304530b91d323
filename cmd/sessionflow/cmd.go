package main

import (
	"context"
	"fmt"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/config"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/constants"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/session"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	envFile    string
	backend    string
	storePath  string
	logLevel   string
	language   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:          "sessionflow",
		Short:        "Inspect and drive the persisted onboarding session",
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a TOML config file (default $"+constants.ConfigPathEnvVar+")")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load if present")
	flags.StringVar(&opts.backend, "store", "", "store backend: bolt, memory or redis")
	flags.StringVar(&opts.storePath, "store-path", "", "bolt database file")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	flags.StringVar(&opts.language, "lang", "", "language for screen copy, e.g. en or es")

	rootCmd.AddCommand(
		newResolveCmd(opts),
		newStatusCmd(opts),
		newLogoutCmd(opts),
		newWalkthroughCmd(opts),
	)
	return rootCmd
}

// load reads the configuration and applies command line overrides.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath, o.envFile)
	if err != nil {
		return nil, err
	}

	if o.backend != "" {
		cfg.Store.Backend = o.backend
	}
	if o.storePath != "" {
		cfg.Store.Path = o.storePath
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.language != "" {
		cfg.Language = o.language
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	sessionflow.InitFromConfig(cfg, cmd.ErrOrStderr())
	return cfg, nil
}

// open loads the configuration and opens a flow on it.
func (o *rootOptions) open(cmd *cobra.Command) (*sessionflow.Flow, error) {
	cfg, err := o.load(cmd)
	if err != nil {
		return nil, err
	}
	return sessionflow.Open(cmd.Context(), cfg)
}

func newResolveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Print the phase the app would start in",
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer flow.Close()

			phase := flow.Start(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", phase, flow.Router.Current())
			return nil
		},
	}
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored session keys, flags and greeting",
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer flow.Close()
			return printStatus(cmd.Context(), cmd, flow)
		},
	}
}

func printStatus(ctx context.Context, cmd *cobra.Command, flow *sessionflow.Flow) error {
	out := cmd.OutOrStdout()

	for _, key := range constants.SessionKeys {
		value, ok, err := flow.Store.Get(ctx, key)
		switch {
		case err != nil:
			fmt.Fprintf(out, "%-24s error: %v\n", key, err)
		case !ok:
			fmt.Fprintf(out, "%-24s (absent)\n", key)
		default:
			fmt.Fprintf(out, "%-24s %s\n", key, value)
		}
	}

	flags, err := session.NewResolver(flow.Store, sessionflow.GetLogger()).ReadFlags(ctx)
	if err != nil {
		fmt.Fprintf(out, "read error: %v\n", err)
	}
	fmt.Fprintf(out, "phase: %s\n", flags.Phase())
	if !flags.Consistent() {
		fmt.Fprintln(out, "warning: logged in without completed onboarding")
	}

	if flags.Phase() == session.Authenticated {
		greeting, err := flow.Greeting(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, greeting)
	}
	return nil
}

func newLogoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Purge the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer flow.Close()

			if phase := flow.Start(cmd.Context()); phase != session.Authenticated {
				fmt.Fprintf(cmd.OutOrStdout(), "not logged in (%s)\n", phase)
				return nil
			}
			if err := flow.Engine.OnLogoutRequested(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}
