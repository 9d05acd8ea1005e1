package adapters

import (
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"xpm/internal/ports"
	"xpm/internal/types"
)

type ReportFileAdapter struct {
	Fs afero.Fs
}

func NewReportFileAdapter(fs afero.Fs) ReportFileAdapter {
	return ReportFileAdapter{Fs: fs}
}

func (a ReportFileAdapter) WriteBuildReport(path string, report types.BuildReport) error {
	if err := a.Fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create report directory").
			WithCause(err)
	}
	data, err := yaml.Marshal(report)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode build report").
			WithCause(err)
	}
	if err := afero.WriteFile(a.Fs, path, data, 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write build report").
			WithCause(err)
	}
	return nil
}

func (a ReportFileAdapter) ReadBuildReport(path string) (types.BuildReport, error) {
	data, err := afero.ReadFile(a.Fs, path)
	if err != nil {
		return types.BuildReport{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("build report not found").
			WithCause(err)
	}
	var report types.BuildReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return types.BuildReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("build report is invalid").
			WithCause(err)
	}
	return report, nil
}

var (
	_ ports.ReportWriterPort = ReportFileAdapter{}
	_ ports.ReportReaderPort = ReportFileAdapter{}
)
