package app

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"xpm/internal/types"
)

const startFailurePrefix = "failed to start "

// platformHints flags platform combinations that archive into the same
// location.
func platformHints(platforms []types.Platform) []string {
	bySDK := map[string][]string{}
	var order []string
	for _, platform := range platforms {
		sdk := platform.SDK()
		if _, ok := bySDK[sdk]; !ok {
			order = append(order, sdk)
		}
		bySDK[sdk] = append(bySDK[sdk], platform.String())
	}

	var hints []string
	for _, sdk := range order {
		if names := bySDK[sdk]; len(names) > 1 {
			hints = append(hints, fmt.Sprintf(
				"hint: %s all archive with the %s SDK; only one archive per package is kept",
				strings.Join(names, " and "), sdk,
			))
		}
	}
	return hints
}

// failureHints suggests a fix for failures users commonly hit.
func failureHints(err error, toolchain Toolchain) []string {
	var builder *errbuilder.ErrBuilder
	if !errors.As(err, &builder) {
		return nil
	}
	switch {
	case strings.HasPrefix(builder.Msg, startFailurePrefix):
		program := strings.TrimPrefix(builder.Msg, startFailurePrefix)
		key := "toolchain.xcodebuild"
		if program == toolchain.withDefaults().Swift {
			key = "toolchain.swift"
		}
		env := "XPM_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		return []string{fmt.Sprintf(
			"hint: %s could not be launched; install Xcode or set %s (or %s) to its path",
			program, key, env,
		)}
	case errbuilder.CodeOf(err) == errbuilder.CodeNotFound && strings.HasPrefix(builder.Msg, "archived frameworks not found"):
		return []string{"hint: the archive has no Products/Library/Frameworks; make sure the package declares a dynamic library product"}
	}
	return nil
}

// emitHints writes hint messages to stderr.
func emitHints(hints []string) {
	for _, h := range hints {
		fmt.Fprintln(os.Stderr, h)
	}
}
