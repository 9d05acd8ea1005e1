package app

import (
	"strings"

	"xpm/internal/core"
)

// Inspect reads the report written by the last build in the working
// directory, or the report at req.ReportPath when given.
func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	path := strings.TrimSpace(req.ReportPath)
	if path == "" {
		workingDir, err := s.workingDir()
		if err != nil {
			return InspectResult{}, err
		}
		path = core.NewLayout("", "", workingDir).ReportFile()
	}
	report, err := s.ReportReader.ReadBuildReport(path)
	if err != nil {
		return InspectResult{}, err
	}
	return InspectResult{ReportPath: path, Report: report}, nil
}
