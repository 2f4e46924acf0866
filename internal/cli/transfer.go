package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"netconfig/internal/service"
)

// NewImportCommand creates the import command
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		format  string
		replace bool
	)

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import saved networks from YAML or JSON",
		Long: `Import saved networks from a YAML or JSON file, or from stdin with "-".

Networks are merged by ID unless --replace is given, in which case the
imported set replaces every stored network.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()

			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
				if format == "" {
					format = formatFromPath(args[0])
				}
			}

			n, err := a.svc.Import(cmd.Context(), r, format, replace)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d networks\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "input format (yaml|json; default from file extension)")
	cmd.Flags().BoolVar(&replace, "replace", false, "replace all stored networks")
	return cmd
}

// NewExportCommand creates the export command
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		format string
		scope  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export saved networks as YAML or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
				if format == "" {
					format = formatFromPath(output)
				}
			}

			return a.svc.Export(w, format, service.ParseScope(scope))
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "output format (yaml|json)")
	cmd.Flags().StringVar(&scope, "scope", string(service.ScopeAll), "networks to export (all|current)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func formatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return "json"
	}
	return "yaml"
}
