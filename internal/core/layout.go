package core

import (
	"path/filepath"
	"strings"

	"xpm/internal/types"
)

// ToolDirName is the private directory, relative to the working
// directory, that holds every intermediate artifact.
const ToolDirName = ".xpm"

// Layout derives every file-system location the pipeline touches. All
// methods are pure: the same package, stage and platform always map to
// the same path, and distinct tuples never alias.
type Layout struct {
	RootPackageDir string
	WorkingDir     string
	// OutputDir overrides FrameworksDir when set.
	OutputDir string
}

// NewLayout resolves rootPackagePath and outputPath against workingDir.
// An empty rootPackagePath means the working directory itself.
func NewLayout(rootPackagePath string, outputPath string, workingDir string) Layout {
	workingDir = filepath.Clean(workingDir)
	layout := Layout{
		WorkingDir:     workingDir,
		RootPackageDir: absolutePath(rootPackagePath, workingDir),
	}
	if strings.TrimSpace(outputPath) != "" {
		layout.OutputDir = absolutePath(outputPath, workingDir)
	}
	return layout
}

func absolutePath(path string, base string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return base
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

// Package manager locations.

func (l Layout) BuildDir() string {
	return filepath.Join(l.RootPackageDir, ".build")
}

func (l Layout) CheckoutsDir() string {
	return filepath.Join(l.BuildDir(), "checkouts")
}

func (l Layout) DependenciesStateFile() string {
	return filepath.Join(l.BuildDir(), "dependencies-state.json")
}

// SourceDir is the package directory handed to the package manager.
func (l Layout) SourceDir(pkg types.Package) string {
	switch p := pkg.(type) {
	case types.Dependency:
		return filepath.Join(l.CheckoutsDir(), p.Subpath)
	case *types.Dependency:
		return filepath.Join(l.CheckoutsDir(), p.Subpath)
	default:
		return l.RootPackageDir
	}
}

// Tool-private locations.

func (l Layout) ToolDir() string {
	return filepath.Join(l.WorkingDir, ToolDirName)
}

func (l Layout) ProjectsDir() string {
	return filepath.Join(l.ToolDir(), "projects")
}

func (l Layout) Project(pkg types.Package) string {
	return filepath.Join(l.ProjectsDir(), pkg.VersionedName()+".xcodeproj")
}

func (l Layout) PackageBuildDir(pkg types.Package) string {
	return filepath.Join(l.ToolDir(), "build", pkg.Name())
}

func (l Layout) ArchivesDir() string {
	return filepath.Join(l.ToolDir(), "archives")
}

func (l Layout) Archive(pkg types.Package, sdk string) string {
	return filepath.Join(l.ArchivesDir(), pkg.VersionedName(), sdk+".xcarchive")
}

func (l Layout) ArchivedFrameworksDir(pkg types.Package, sdk string) string {
	return filepath.Join(l.Archive(pkg, sdk), "Products", "Library", "Frameworks")
}

func (l Layout) DerivedDataDir() string {
	return filepath.Join(l.ToolDir(), "DerivedData")
}

func (l Layout) DerivedData(pkg types.Package, sdk string) string {
	return filepath.Join(l.DerivedDataDir(), pkg.Name(), sdk)
}

func (l Layout) FrameworksDir() string {
	if l.OutputDir != "" {
		return l.OutputDir
	}
	return filepath.Join(l.ToolDir(), "frameworks")
}

func (l Layout) XCFramework(name string) string {
	return filepath.Join(l.FrameworksDir(), name+".xcframework")
}

func (l Layout) ReportFile() string {
	return filepath.Join(l.ToolDir(), "build-report.yaml")
}
