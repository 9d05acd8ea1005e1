// Package shared provides common utility functions used across multiple
// packages in the xpm codebase.
package shared

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages.
func CommandError(output []byte, err error) error {
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return err
	}
	return fmt.Errorf("%w: %s", err, trimmed)
}

// BaseName returns the last path element without its extension, e.g.
// "Foo" for ".../Foo.framework".
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Prefix returns at most the first n bytes of value.
func Prefix(value string, n int) string {
	if len(value) <= n {
		return value
	}
	return value[:n]
}
