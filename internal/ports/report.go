package ports

import "xpm/internal/types"

type ReportWriterPort interface {
	WriteBuildReport(path string, report types.BuildReport) error
}

type ReportReaderPort interface {
	ReadBuildReport(path string) (types.BuildReport, error)
}
