package ports

import "xpm/internal/types"

// LockStatePort reads the dependency lock file written by the package
// manager's resolve command.
type LockStatePort interface {
	ReadDependencyState(path string) (types.DependencyState, error)
}
