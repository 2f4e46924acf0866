// Package cli implements the netconfigd command line.
package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"netconfig/internal/service"
)

// RootOptions holds global flags for all commands
type RootOptions struct {
	ConfigPath string
	DBPath     string
	User       int
	Quiet      bool
}

// userUnset marks --user as not given
const userUnset = -1

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "netconfigd",
		Short: "Saved Wi-Fi network registry",
		Long: `Keeps the saved Wi-Fi network configurations of a multi-user device and
answers which of them the foreground user may see and connect to.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
			if opts.Quiet {
				log.SetOutput(io.Discard)
			} else {
				log.SetOutput(cmd.ErrOrStderr())
			}
			if opts.User < userUnset {
				return fmt.Errorf("invalid user %d", opts.User)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default: search standard locations)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "SQLite database path (overrides config)")
	cmd.PersistentFlags().IntVarP(&opts.User, "user", "u", userUnset, "foreground user (overrides config)")
	cmd.PersistentFlags().BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress log output")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

// NewListCommand creates the list command
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			for _, cfg := range a.svc.List(service.ParseScope(scope)) {
				fmt.Fprintf(out, "%s\t%s\n", cfg, cfg.ProfileKey())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", string(service.ScopeCurrent), "networks to list (all|current)")
	return cmd
}

// NewDumpCommand creates the dump command
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the registry state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.svc.Dump(cmd.OutOrStdout())
		},
	}
}
