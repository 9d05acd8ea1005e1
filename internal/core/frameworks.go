package core

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"xpm/internal/shared"
	"xpm/internal/types"
)

// FrameworkListing is the content of one archive's frameworks directory.
type FrameworkListing struct {
	Package  types.Package
	Platform types.Platform
	Dir      string
	Entries  []string
}

// Frameworks maps a framework base name to one input path per platform.
type Frameworks map[string][]string

// Names returns the framework names in sorted order.
func (f Frameworks) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AggregateFrameworks groups listed frameworks by base name. Each
// (name, platform) slot is filled by the first listing that provides it;
// a later package producing the same framework for the same platform is
// dropped. Paths are ordered by the platforms argument.
func AggregateFrameworks(ctx context.Context, platforms []types.Platform, listings []FrameworkListing) Frameworks {
	slots := map[string]map[types.Platform]string{}
	for _, listing := range listings {
		for _, entry := range listing.Entries {
			name := shared.BaseName(entry)
			if name == "" {
				continue
			}
			byPlatform, ok := slots[name]
			if !ok {
				byPlatform = map[types.Platform]string{}
				slots[name] = byPlatform
			}
			if existing, taken := byPlatform[listing.Platform]; taken {
				log.Ctx(ctx).Debug().
					Str("framework", name).
					Str("platform", listing.Platform.String()).
					Str("kept", existing).
					Msg("duplicate framework dropped")
				continue
			}
			byPlatform[listing.Platform] = filepath.Join(listing.Dir, entry)
		}
	}

	frameworks := Frameworks{}
	for name, byPlatform := range slots {
		var paths []string
		for _, platform := range platforms {
			if path, ok := byPlatform[platform]; ok {
				paths = append(paths, path)
			}
		}
		frameworks[name] = paths
	}
	return frameworks
}
