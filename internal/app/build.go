package app

import (
	"context"
	"strings"
	"time"

	"xpm/internal/adapters"
	"xpm/internal/core"
	"xpm/internal/types"
)

func (s Service) Build(ctx context.Context, req BuildRequest) (BuildResult, error) {
	platforms, err := core.ParsePlatforms(req.Platforms)
	if err != nil {
		return BuildResult{}, err
	}
	emitHints(platformHints(platforms))
	engine, err := s.newEngine(req.PackagePath, req.OutputDir, req.Verbose, req.Toolchain)
	if err != nil {
		return BuildResult{}, err
	}
	result, err := s.build(ctx, engine, req, platforms)
	if err != nil {
		emitHints(failureHints(err, engine.Toolchain))
		return BuildResult{}, err
	}
	return result, nil
}

func (s Service) build(ctx context.Context, engine *Engine, req BuildRequest, platforms []types.Platform) (BuildResult, error) {
	info, err := engine.PackageInfo(ctx, adapters.NewJSONParser[types.PackageInfo]())
	if err != nil {
		return BuildResult{}, err
	}

	var packages []types.Package
	if req.buildsDependencies() {
		deps, err := engine.ReadDependencies(ctx, strings.TrimSpace(req.DependencyOf), info)
		if err != nil {
			return BuildResult{}, err
		}
		for _, dep := range deps {
			packages = append(packages, dep)
		}
	} else {
		packages = []types.Package{types.NewRootPackage(info)}
	}

	if err := engine.GenerateProjects(ctx, packages); err != nil {
		return BuildResult{}, err
	}
	if err := engine.Archive(ctx, packages, platforms); err != nil {
		return BuildResult{}, err
	}
	frameworks, err := engine.ListFrameworks(ctx, packages, platforms)
	if err != nil {
		return BuildResult{}, err
	}
	if err := engine.AssembleXCFrameworks(ctx, frameworks); err != nil {
		return BuildResult{}, err
	}

	reportPath := engine.Layout.ReportFile()
	report := buildReport(engine, s.now(), info, packages, platforms, frameworks)
	if err := s.ReportWriter.WriteBuildReport(reportPath, report); err != nil {
		return BuildResult{}, err
	}
	return BuildResult{
		FrameworksDir: engine.Layout.FrameworksDir(),
		Frameworks:    frameworks.Names(),
		ReportPath:    reportPath,
	}, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

func buildReport(engine *Engine, now time.Time, info types.PackageInfo, packages []types.Package, platforms []types.Platform, frameworks core.Frameworks) types.BuildReport {
	report := types.BuildReport{
		Root:        info.Name,
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Invocations: engine.Counts,
	}
	for _, platform := range platforms {
		report.Platforms = append(report.Platforms, platform.String())
	}
	for _, pkg := range packages {
		report.Packages = append(report.Packages, types.ReportPackage{
			Name:          pkg.Name(),
			VersionedName: pkg.VersionedName(),
			Root:          types.IsRoot(pkg),
		})
	}
	for _, name := range frameworks.Names() {
		report.Frameworks = append(report.Frameworks, types.ReportFramework{
			Name:   name,
			Output: engine.Layout.XCFramework(name),
			Inputs: frameworks[name],
		})
	}
	return report
}
