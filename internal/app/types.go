package app

import "xpm/internal/types"

type BuildRequest struct {
	PackagePath  string
	OutputDir    string
	DependencyOf string
	// DependencyOfSet records that a target was requested even when
	// DependencyOf is blank, so the blank name is rejected rather than
	// falling back to the root package.
	DependencyOfSet bool
	Platforms       string
	Verbose         bool
	Toolchain       Toolchain
}

func (r BuildRequest) buildsDependencies() bool {
	return r.DependencyOfSet || r.DependencyOf != ""
}

type BuildResult struct {
	FrameworksDir string
	Frameworks    []string
	ReportPath    string
}

type CleanRequest struct {
	PackagePath string
	Verbose     bool
}

type InspectRequest struct {
	ReportPath string
}

type InspectResult struct {
	ReportPath string
	Report     types.BuildReport
}
