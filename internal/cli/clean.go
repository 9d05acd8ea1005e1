package cli

import (
	"context"

	"github.com/spf13/cobra"

	"xpm/internal/app"
)

type cleanOptions struct {
	PackagePath string
	Verbose     bool
}

func newCleanCommand() *cobra.Command {
	opts := cleanOptions{}
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean all intermediate files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClean(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.PackagePath, "package-path", "", "Root package directory")
	cmd.Flags().BoolVar(&opts.Verbose, "verbose", false, "Enable debug logging")
	return cmd
}

func runClean(ctx context.Context, cmd *cobra.Command, opts cleanOptions) error {
	bindFlags(cmd, map[string]string{
		"package_path": "package-path",
		"verbose":      "verbose",
	})
	verbose := resolveBool(cmd, opts.Verbose, "verbose", "verbose")
	service := newAppService(verbose)
	return service.Clean(ctx, app.CleanRequest{
		PackagePath: resolveString(cmd, opts.PackagePath, "package_path", "package-path"),
		Verbose:     verbose,
	})
}
