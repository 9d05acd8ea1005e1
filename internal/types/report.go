package types

// BuildReport summarises one `xpm build` run. It is written next to the
// intermediate artifacts and read back by `xpm inspect`.
type BuildReport struct {
	Root        string            `yaml:"root"`
	GeneratedAt string            `yaml:"generated_at"`
	Platforms   []string          `yaml:"platforms"`
	Packages    []ReportPackage   `yaml:"packages"`
	Frameworks  []ReportFramework `yaml:"frameworks"`
	Invocations ReportCounts      `yaml:"invocations"`
}

type ReportPackage struct {
	Name          string `yaml:"name"`
	VersionedName string `yaml:"versioned_name"`
	Root          bool   `yaml:"root,omitempty"`
}

type ReportFramework struct {
	Name   string   `yaml:"name"`
	Output string   `yaml:"output"`
	Inputs []string `yaml:"inputs"`
}

// ReportCounts records how many invocations each stage issued and how
// many it skipped because the artifact was already cached.
type ReportCounts struct {
	Projects     StageCount `yaml:"projects"`
	Archives     StageCount `yaml:"archives"`
	XCFrameworks StageCount `yaml:"xcframeworks"`
}

type StageCount struct {
	Invoked int `yaml:"invoked"`
	Skipped int `yaml:"skipped"`
}
