package util

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog/log"
)

/* Patterns support * and ** wildcards:
- * matches files in the current directory only (single level)
- ** matches files in all subdirectories recursively (multi-level)
*/

// MatchesPattern reports whether filePath matches any of patterns. An empty
// pattern list matches everything.
func MatchesPattern(filePath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(filePath, patterns)
}

// MatchesAnyPattern is MatchesPattern without the match-all default: an empty
// pattern list matches nothing.
func MatchesAnyPattern(filePath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(filePath, patterns)
}

func matchesAny(filePath string, patterns []string) bool {
	// removing leading slashes
	normalizedPath := strings.TrimPrefix(filePath, "/")

	for _, pattern := range patterns {
		normalizedPattern := strings.TrimPrefix(pattern, "/")

		// The library handles *  and **  natively
		g, err := glob.Compile(normalizedPattern, '/')
		if err != nil {
			log.Warn().Err(err).Str("pattern", pattern).Msg("Skipping invalid pattern")
			continue
		}

		if g.Match(normalizedPath) {
			return true
		}
	}

	return false
}

// FilterPaths filters relative paths based on include and exclude patterns.
// Include patterns are applied first (if any), then exclude patterns are applied.
// If no include patterns are specified, all paths are included by default.
func FilterPaths(paths []string, includePatterns, excludePatterns []string) []string {
	if len(includePatterns) == 0 && len(excludePatterns) == 0 {
		return paths
	}

	var filtered []string
	for _, p := range paths {
		if len(includePatterns) > 0 {
			if !MatchesPattern(p, includePatterns) {
				// Path doesn't match any include pattern, skip it
				continue
			}
		} else if len(excludePatterns) > 0 {
			if MatchesPattern(p, excludePatterns) {
				// Path matches an exclude pattern, skip it
				continue
			}
		}
		filtered = append(filtered, p)
	}

	return filtered
}
