package app

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"xpm/internal/adapters"
	"xpm/internal/core"
	"xpm/internal/policies"
	"xpm/internal/ports"
	"xpm/internal/types"
)

// Toolchain names the external programs the pipeline drives.
type Toolchain struct {
	Swift      string
	Xcodebuild string
}

func DefaultToolchain() Toolchain {
	return Toolchain{Swift: "swift", Xcodebuild: "xcodebuild"}
}

func (t Toolchain) withDefaults() Toolchain {
	defaults := DefaultToolchain()
	if strings.TrimSpace(t.Swift) == "" {
		t.Swift = defaults.Swift
	}
	if strings.TrimSpace(t.Xcodebuild) == "" {
		t.Xcodebuild = defaults.Xcodebuild
	}
	return t
}

type EngineConfig struct {
	RootPackagePath string
	OutputPath      string
	WorkingDir      string
	Toolchain       Toolchain
}

// Engine runs the build pipeline: manifest, dependencies, projects,
// archives, framework discovery and xcframework assembly.
type Engine struct {
	Layout    core.Layout
	Toolchain Toolchain
	Executor  ports.Executor
	Fs        afero.Fs
	Selector  core.DependencySelector
	Cache     policies.CachePolicy
	Logger    zerolog.Logger
	Counts    types.ReportCounts
}

func NewEngine(cfg EngineConfig, executor ports.Executor, fs afero.Fs, lockState ports.LockStatePort, logger zerolog.Logger) (*Engine, error) {
	if strings.TrimSpace(cfg.WorkingDir) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("could not get current working directory")
	}
	return &Engine{
		Layout:    core.NewLayout(cfg.RootPackagePath, cfg.OutputPath, cfg.WorkingDir),
		Toolchain: cfg.Toolchain.withDefaults(),
		Executor:  executor,
		Fs:        fs,
		Selector:  core.NewDependencySelector(lockState),
		Cache:     policies.NewCachePolicy(fs),
		Logger:    logger,
	}, nil
}

func (e *Engine) context(ctx context.Context) context.Context {
	return e.Logger.WithContext(ctx)
}

func (e *Engine) swiftPackage(args ...string) types.Process {
	return types.NewProcess(append([]string{e.Toolchain.Swift, "package"}, args...)...)
}

func (e *Engine) xcodebuild(args ...string) types.Process {
	return types.NewProcess(append([]string{e.Toolchain.Xcodebuild}, args...)...)
}

// PackageInfo dumps the root manifest and decodes it with parser.
func (e *Engine) PackageInfo(ctx context.Context, parser ports.OutputParser[types.PackageInfo]) (types.PackageInfo, error) {
	ctx = e.context(ctx)
	e.Logger.Info().Msg("Retrieving target information...")

	process := e.swiftPackage("--package-path", e.Layout.RootPackageDir, "dump-package")
	return ports.ExecuteOne(ctx, e.Executor, process, parser)
}

// ReadDependencies resolves the root package and returns the locked
// dependencies referenced by name from targetName, in lock-file order.
func (e *Engine) ReadDependencies(ctx context.Context, targetName string, info types.PackageInfo) ([]types.Dependency, error) {
	ctx = e.context(ctx)
	e.Logger.Info().Msg("Reading dependencies...")

	if strings.TrimSpace(targetName) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("--dependency-of should be followed by a target name")
	}
	target, ok := info.Target(targetName)
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no target found with name %q", targetName))
	}

	resolve := e.swiftPackage("--package-path", e.Layout.RootPackageDir, "resolve")
	if _, err := ports.ExecuteOne[struct{}](ctx, e.Executor, resolve, adapters.NewDiscardParser()); err != nil {
		return nil, err
	}
	return e.Selector.Select(ctx, target, e.Layout.DependenciesStateFile())
}

// GenerateProjects generates one Xcode project per package. All
// generations run in parallel.
func (e *Engine) GenerateProjects(ctx context.Context, packages []types.Package) error {
	ctx = e.context(ctx)
	e.Logger.Info().Msg("Generating Xcode projects...")

	if err := e.mkdir(e.Layout.ProjectsDir()); err != nil {
		return err
	}

	var processes []types.Process
	for _, pkg := range packages {
		output := e.Layout.Project(pkg)
		build, err := e.Cache.NeedsBuild(pkg, output)
		if err != nil {
			return err
		}
		if !build {
			e.Logger.Debug().Str("package", pkg.Name()).Msg("Skipping project generation")
			e.Counts.Projects.Skipped++
			continue
		}
		processes = append(processes, e.swiftPackage(
			"--package-path", e.Layout.SourceDir(pkg),
			"--build-path", e.Layout.PackageBuildDir(pkg),
			"--force-resolved-versions",
			"generate-xcodeproj",
			"--skip-extra-files",
			"--output", output,
		))
	}
	e.Counts.Projects.Invoked += len(processes)

	_, err := ports.Execute[struct{}](ctx, e.Executor, processes, adapters.NewDiscardParser())
	return err
}

// Archive archives every package for every platform. xcodebuild is not
// safe to run concurrently on shared derived data, so archives run one
// at a time.
func (e *Engine) Archive(ctx context.Context, packages []types.Package, platforms []types.Platform) error {
	ctx = e.context(ctx)
	e.Logger.Info().Msg("Generating archives...")

	if err := e.mkdir(e.Layout.ArchivesDir()); err != nil {
		return err
	}

	var processes []types.Process
	for _, pkg := range packages {
		for _, platform := range platforms {
			sdk := platform.SDK()
			assert.NotEmpty(ctx, sdk, "platform sdk must be set")

			output := e.Layout.Archive(pkg, sdk)
			build, err := e.Cache.NeedsBuild(pkg, output)
			if err != nil {
				return err
			}
			if !build {
				e.Logger.Info().
					Str("package", pkg.Name()).
					Str("platform", platform.String()).
					Msg("Skipping archive")
				e.Counts.Archives.Skipped++
				continue
			}
			processes = append(processes, e.xcodebuild(
				"archive",
				"-quiet",
				"-project", e.Layout.Project(pkg),
				"-scheme", pkg.SchemeName(),
				"-archivePath", output,
				fmt.Sprintf("-destination=%q", platform.Destination()),
				"-sdk", sdk,
				"-derivedDataPath", e.Layout.DerivedData(pkg, sdk),
				"SKIP_INSTALL=NO",
				"BUILD_LIBRARY_FOR_DISTRIBUTION=YES",
				"COMPILER_INDEX_STORE_ENABLE=NO",
			))
		}
	}

	for _, process := range processes {
		if _, err := ports.ExecuteOne[struct{}](ctx, e.Executor, process, adapters.NewDiscardParser()); err != nil {
			return err
		}
		e.Counts.Archives.Invoked++
	}
	return nil
}

// ListFrameworks collects the frameworks each archive produced, grouped
// by framework name with one path per platform.
func (e *Engine) ListFrameworks(ctx context.Context, packages []types.Package, platforms []types.Platform) (core.Frameworks, error) {
	ctx = e.context(ctx)

	var listings []core.FrameworkListing
	for _, pkg := range packages {
		for _, platform := range platforms {
			dir := e.Layout.ArchivedFrameworksDir(pkg, platform.SDK())
			infos, err := afero.ReadDir(e.Fs, dir)
			if err != nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeNotFound).
					WithMsg(fmt.Sprintf("archived frameworks not found for %s (%s)", pkg.Name(), platform)).
					WithCause(err)
			}
			entries := make([]string, 0, len(infos))
			for _, info := range infos {
				entries = append(entries, info.Name())
			}
			listings = append(listings, core.FrameworkListing{
				Package:  pkg,
				Platform: platform,
				Dir:      dir,
				Entries:  entries,
			})
		}
	}
	return core.AggregateFrameworks(ctx, platforms, listings), nil
}

// AssembleXCFrameworks recreates the frameworks directory and creates one
// xcframework per framework name. Creations run in parallel.
func (e *Engine) AssembleXCFrameworks(ctx context.Context, frameworks core.Frameworks) error {
	ctx = e.context(ctx)
	e.Logger.Info().Msg("Generating XCFrameworks...")

	dir := e.Layout.FrameworksDir()
	if err := e.Fs.RemoveAll(dir); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to clear frameworks directory").
			WithCause(err)
	}
	if err := e.mkdir(dir); err != nil {
		return err
	}

	var processes []types.Process
	for _, name := range frameworks.Names() {
		output := e.Layout.XCFramework(name)
		exists, err := e.Cache.Exists(output)
		if err != nil {
			return err
		}
		if exists {
			e.Logger.Debug().Str("framework", name).Msg("Skipping xcframework")
			e.Counts.XCFrameworks.Skipped++
			continue
		}
		args := []string{"-create-xcframework", "-output", output}
		for _, path := range frameworks[name] {
			args = append(args, "-framework", path)
		}
		processes = append(processes, e.xcodebuild(args...))
	}
	e.Counts.XCFrameworks.Invoked += len(processes)

	_, err := ports.Execute[struct{}](ctx, e.Executor, processes, adapters.NewDiscardParser())
	return err
}

// Clean removes the tool directory. Failures are logged, not returned.
func (e *Engine) Clean(ctx context.Context) {
	if err := e.Fs.RemoveAll(e.Layout.ToolDir()); err != nil {
		e.Logger.Error().Err(err).Str("path", e.Layout.ToolDir()).Msg("Failed to clean")
		return
	}
	e.Logger.Info().Msg("Successfully cleaned.")
}

func (e *Engine) mkdir(path string) error {
	if err := e.Fs.MkdirAll(path, 0o755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to create %s", path)).
			WithCause(err)
	}
	return nil
}
