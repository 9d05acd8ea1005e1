package app

import "context"

// Clean removes intermediate artifacts. Only configuration problems are
// returned; file-system failures are logged by the engine.
func (s Service) Clean(ctx context.Context, req CleanRequest) error {
	engine, err := s.newEngine(req.PackagePath, "", req.Verbose, Toolchain{})
	if err != nil {
		return err
	}
	engine.Clean(ctx)
	return nil
}
