package adapters

import (
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"

	"xpm/internal/ports"
	"xpm/internal/types"
)

type LockStateFileAdapter struct {
	Fs afero.Fs
}

func NewLockStateFileAdapter(fs afero.Fs) LockStateFileAdapter {
	return LockStateFileAdapter{Fs: fs}
}

func (a LockStateFileAdapter) ReadDependencyState(path string) (types.DependencyState, error) {
	content, err := afero.ReadFile(a.Fs, path)
	if err != nil {
		return types.DependencyState{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("dependencies-state.json not found").
			WithCause(err)
	}
	var state types.DependencyState
	if err := decodeJSON(content, &state); err != nil {
		return types.DependencyState{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("dependencies-state.json is invalid").
			WithCause(err)
	}
	return state, nil
}

var _ ports.LockStatePort = LockStateFileAdapter{}
