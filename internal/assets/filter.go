package assets

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// skippedDirs are directory names never descended into.
var skippedDirs = []string{
	".git",
	"node_modules",
	".codex",
	".idea",
	".vscode",
}

func shouldSkipDir(name string) bool {
	for _, s := range skippedDirs {
		if strings.EqualFold(name, s) {
			return true
		}
	}
	return false
}

// MatchesInclude returns true if relPath matches any include pattern. An
// empty pattern list includes nothing: assets are opt-in.
func MatchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(relPath, patterns)
}

// MatchesExclude returns true if relPath matches any exclude pattern.
func MatchesExclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(relPath, patterns)
}

// matchesAny matches the slash-normalised path, then the bare file name, so
// "*.psd" excludes nested files too.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	base := filepath.Base(normalized)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}

// ValidatePatterns reports the first malformed glob.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(p)) {
			return &PatternError{Pattern: p}
		}
	}
	return nil
}

// PatternError is returned for a glob doublestar cannot parse.
type PatternError struct {
	Pattern string
}

func (e *PatternError) Error() string { return "invalid asset pattern " + `"` + e.Pattern + `"` }
