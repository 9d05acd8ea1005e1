package core

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"xpm/internal/ports"
	"xpm/internal/types"
)

// DependencySelector narrows the lock state down to the direct
// dependencies of one manifest target.
type DependencySelector struct {
	LockState ports.LockStatePort
}

func NewDependencySelector(lockState ports.LockStatePort) DependencySelector {
	return DependencySelector{LockState: lockState}
}

// Select reads the lock file at lockFilePath and returns the entries the
// target references by name, in lock-file order.
func (s DependencySelector) Select(ctx context.Context, target types.Target, lockFilePath string) ([]types.Dependency, error) {
	if strings.TrimSpace(lockFilePath) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("lock file path is empty")
	}
	state, err := s.LockState.ReadDependencyState(lockFilePath)
	if err != nil {
		return nil, err
	}
	deps := FilterDependencies(target, state)
	log.Ctx(ctx).Debug().
		Str("target", target.Name).
		Int("locked", len(state.Object.Dependencies)).
		Int("selected", len(deps)).
		Msg("dependencies selected")
	return deps, nil
}

// FilterDependencies keeps the lock-state entries whose package name is
// referenced by name from target.
func FilterDependencies(target types.Target, state types.DependencyState) []types.Dependency {
	wanted := map[string]struct{}{}
	for _, name := range target.DependencyNames() {
		wanted[name] = struct{}{}
	}
	var selected []types.Dependency
	for _, dep := range state.Object.Dependencies {
		if _, ok := wanted[dep.Name()]; ok {
			selected = append(selected, dep)
		}
	}
	return selected
}
