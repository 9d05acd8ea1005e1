package app

import (
	"os"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"xpm/internal/adapters"
	"xpm/internal/ports"
)

type Service struct {
	Fs           afero.Fs
	NewExecutor  func(verbose bool) ports.Executor
	LockState    ports.LockStatePort
	ReportWriter ports.ReportWriterPort
	ReportReader ports.ReportReaderPort
	Logger       zerolog.Logger
	WorkingDir   func() (string, error)
	Clock        func() time.Time
}

func NewService(logger zerolog.Logger) Service {
	fs := afero.NewOsFs()
	report := adapters.NewReportFileAdapter(fs)
	return Service{
		Fs: fs,
		NewExecutor: func(verbose bool) ports.Executor {
			return adapters.NewProcessExecutor(verbose)
		},
		LockState:    adapters.NewLockStateFileAdapter(fs),
		ReportWriter: report,
		ReportReader: report,
		Logger:       logger,
		WorkingDir:   os.Getwd,
		Clock:        time.Now,
	}
}

func (s Service) workingDir() (string, error) {
	getwd := s.WorkingDir
	if getwd == nil {
		getwd = os.Getwd
	}
	dir, err := getwd()
	if err != nil || dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("could not get current working directory").
			WithCause(err)
	}
	return dir, nil
}

func (s Service) newEngine(packagePath string, outputDir string, verbose bool, toolchain Toolchain) (*Engine, error) {
	workingDir, err := s.workingDir()
	if err != nil {
		return nil, err
	}
	return NewEngine(EngineConfig{
		RootPackagePath: packagePath,
		OutputPath:      outputDir,
		WorkingDir:      workingDir,
		Toolchain:       toolchain,
	}, s.NewExecutor(verbose), s.Fs, s.LockState, s.Logger)
}
