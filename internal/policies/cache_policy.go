package policies

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"

	"xpm/internal/types"
)

// CachePolicy decides whether an artifact must be produced again.
// Root package artifacts never hit the cache. Dependency artifacts are
// keyed by versioned name, which embeds the pinned revision, so an
// existing artifact is reused as is.
type CachePolicy struct {
	Fs afero.Fs
}

func NewCachePolicy(fs afero.Fs) CachePolicy {
	return CachePolicy{Fs: fs}
}

// NeedsBuild reports whether the artifact of pkg at path must be built.
// For the root package any existing artifact is removed first.
func (p CachePolicy) NeedsBuild(pkg types.Package, path string) (bool, error) {
	if types.IsRoot(pkg) {
		if err := p.Fs.RemoveAll(path); err != nil {
			return false, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("failed to remove stale artifact for %s", pkg.Name())).
				WithCause(err)
		}
		return true, nil
	}
	exists, err := p.Exists(path)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (p CachePolicy) Exists(path string) (bool, error) {
	exists, err := afero.Exists(p.Fs, path)
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to inspect cached artifact").
			WithCause(err)
	}
	return exists, nil
}
