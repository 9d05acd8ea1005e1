package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"xpm/internal/app"
)

type inspectOptions struct {
	Report string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect the report of the last build",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Report, "report", "", "Build report path (defaults to .xpm/build-report.yaml)")
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	bindFlags(cmd, map[string]string{"report": "report"})
	service := newAppService(false)
	result, err := service.Inspect(app.InspectRequest{
		ReportPath: resolveString(cmd, opts.Report, "report", "report"),
	})
	if err != nil {
		return err
	}

	report := result.Report
	fmt.Printf("report: %s\n", result.ReportPath)
	fmt.Printf("root package: %s (built %s)\n", report.Root, report.GeneratedAt)
	fmt.Printf("platforms: %s\n", strings.Join(report.Platforms, ", "))
	fmt.Println("packages:")
	for _, pkg := range report.Packages {
		fmt.Printf("- %s\n", pkg.VersionedName)
	}
	counts := report.Invocations
	fmt.Printf("projects: %d generated, %d cached\n", counts.Projects.Invoked, counts.Projects.Skipped)
	fmt.Printf("archives: %d built, %d cached\n", counts.Archives.Invoked, counts.Archives.Skipped)
	fmt.Printf("xcframeworks: %d created, %d cached\n", counts.XCFrameworks.Invoked, counts.XCFrameworks.Skipped)
	fmt.Println("frameworks:")
	for _, framework := range report.Frameworks {
		fmt.Printf("- %s (%d platforms)\n", framework.Name, len(framework.Inputs))
		if len(framework.Inputs) > 0 {
			fmt.Printf("  %s\n", strings.Join(framework.Inputs, ", "))
		}
	}
	return nil
}
