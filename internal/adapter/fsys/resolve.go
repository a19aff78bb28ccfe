// Package fsys resolves document paths and glob patterns for the CLI.
package fsys

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"docchat/internal/domain"
)

// Resolve expands a path or glob pattern to a single document file with one
// of the allowed extensions. A plain path is checked directly; a pattern is
// expanded and the first match (sorted, for determinism) with an allowed
// extension wins.
func Resolve(pattern string, allowedExts []string) (string, error) {
	if !strings.ContainsAny(pattern, "*?[{") {
		info, err := os.Stat(pattern)
		if err != nil {
			return "", err
		}
		if info.IsDir() {
			return "", fmt.Errorf("%s is a directory, expected a document file", pattern)
		}
		if !extAllowed(pattern, allowedExts) {
			return "", fmt.Errorf("%w: %s (accepted: %s)",
				domain.ErrUnsupportedFileType, filepath.Ext(pattern), strings.Join(allowedExts, ", "))
		}
		return pattern, nil
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return "", fmt.Errorf("bad glob pattern %s: %w", pattern, err)
	}
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		if extAllowed(m, allowedExts) {
			return m, nil
		}
	}
	return "", fmt.Errorf("no file matching %s with extension %s", pattern, strings.Join(allowedExts, ", "))
}

func extAllowed(path string, allowedExts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range allowedExts {
		if ext == allowed {
			return true
		}
	}
	return false
}
