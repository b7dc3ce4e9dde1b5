package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/pokesearch/internal/app"
	"github.com/five82/pokesearch/internal/config"
	"github.com/five82/pokesearch/internal/logging"
	"github.com/five82/pokesearch/internal/logtail"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "pokesearch: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "pokesearch",
		Short: "Search and browse Pokemon from PokéAPI",
		Long: `pokesearch is a terminal UI over PokéAPI.

Run without arguments to browse the full list page by page, or type an exact
Pokemon name to look it up. The last search is remembered between sessions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/pokesearch/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/pokesearch/prefs.toml)")
	flags.StringVar(&opts.EnvFile, "env-file", "", "dotenv file with POKESEARCH_* overrides (default ./.env)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newLookupCmd(&opts), newListCmd(&opts), newLogsCmd(&opts))
	return root
}

func newLookupCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <name>",
		Short: "Look up one Pokemon by exact name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Setup(*opts)
			if err != nil {
				return err
			}
			defer env.Close()

			out := env.Lookup(cmd.Context(), args[0])
			return app.WriteOutcome(cmd.OutOrStdout(), out, env.Config.PageLimit)
		},
	}
}

func newListCmd(opts *app.Options) *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the Pokemon list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if page < 1 {
				return fmt.Errorf("--page must be at least 1, got %d", page)
			}
			if cmd.Flags().Changed("limit") {
				if err := config.CheckPageLimit(limit); err != nil {
					return fmt.Errorf("--limit: %w", err)
				}
			}

			env, err := app.Setup(*opts)
			if err != nil {
				return err
			}
			defer env.Close()

			if limit == 0 {
				limit = env.Config.PageLimit
			}
			out := env.List(cmd.Context(), page, limit)
			return app.WriteOutcome(cmd.OutOrStdout(), out, limit)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&limit, "limit", 0, "entries per page (default from config)")
	return cmd
}

func newLogsCmd(opts *app.Options) *cobra.Command {
	var lines int
	var level string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the tail of the pokesearch log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadEnvFile(opts.EnvFile); err != nil {
				return err
			}
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			minLevel, err := logging.ParseLevel(level)
			if err != nil {
				return err
			}

			entries, err := logtail.Tail(cfg.LogFile, lines, minLevel)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, e := range entries {
				fmt.Fprintln(w, e.Render())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of entries to show (0 for all)")
	cmd.Flags().StringVar(&level, "level", "debug", "minimum level to show")
	return cmd
}
