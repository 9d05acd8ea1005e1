package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"xpm/internal/app"
)

type buildOptions struct {
	Output       string
	DependencyOf string
	Platforms    string
	PackagePath  string
	Verbose      bool
}

func newBuildCommand() *cobra.Command {
	opts := buildOptions{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build XCFrameworks from Package.swift",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Output, "output", "", "Output directory for XCFrameworks")
	cmd.Flags().StringVarP(&opts.DependencyOf, "dependency-of", "d", "", "Build the dependencies of this target instead of the package")
	cmd.Flags().StringVar(&opts.Platforms, "platforms", "", "Comma-separated platforms (ios, iphonesimulator, macos, maccatalyst, watchos, watchossimulator, tvos, tvossimulator)")
	cmd.Flags().StringVar(&opts.PackagePath, "package-path", "", "Root package directory")
	cmd.Flags().BoolVar(&opts.Verbose, "verbose", false, "Echo commands and tool output")
	return cmd
}

func runBuild(ctx context.Context, cmd *cobra.Command, opts buildOptions) error {
	bindFlags(cmd, map[string]string{
		"output":        "output",
		"dependency_of": "dependency-of",
		"platforms":     "platforms",
		"package_path":  "package-path",
		"verbose":       "verbose",
	})
	req := buildRequest(cmd, opts)
	service := newAppService(req.Verbose)
	result, err := service.Build(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("built xcframeworks: %s\n", result.FrameworksDir)
	for _, name := range result.Frameworks {
		fmt.Printf("- %s\n", name)
	}
	return nil
}

// buildRequest merges flags with config. A --dependency-of given on the
// command line or in config counts as set even when blank.
func buildRequest(cmd *cobra.Command, opts buildOptions) app.BuildRequest {
	return app.BuildRequest{
		PackagePath:     resolveString(cmd, opts.PackagePath, "package_path", "package-path"),
		OutputDir:       resolveString(cmd, opts.Output, "output", "output"),
		DependencyOf:    resolveString(cmd, opts.DependencyOf, "dependency_of", "dependency-of"),
		DependencyOfSet: flagChanged(cmd, "dependency-of") || viper.IsSet("dependency_of"),
		Platforms:       resolveString(cmd, opts.Platforms, "platforms", "platforms"),
		Verbose:         resolveBool(cmd, opts.Verbose, "verbose", "verbose"),
		Toolchain:       toolchain(),
	}
}
