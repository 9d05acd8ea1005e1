package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"xpm/internal/types"
)

// ParsePlatforms parses a comma-separated, case-insensitive platform list.
// Repeated platforms are kept once, in first-seen order.
func ParsePlatforms(value string) ([]types.Platform, error) {
	var platforms []types.Platform
	seen := map[types.Platform]struct{}{}
	for _, token := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(token)
		if trimmed == "" {
			continue
		}
		platform := types.Platform(strings.ToLower(trimmed))
		if !platform.Valid() {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unknown platform %q. Available platforms: %s", trimmed, availablePlatforms()))
		}
		if _, dup := seen[platform]; dup {
			continue
		}
		seen[platform] = struct{}{}
		platforms = append(platforms, platform)
	}
	if len(platforms) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("one or more platforms must be specified with --platforms")
	}
	return platforms, nil
}

func availablePlatforms() string {
	all := types.AllPlatforms()
	names := make([]string, 0, len(all))
	for _, platform := range all {
		names = append(names, platform.String())
	}
	return strings.Join(names, ", ")
}
