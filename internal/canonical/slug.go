package canonical

import (
	"regexp"
	"strings"
)

// FallbackSlug is used when no candidate yields a usable slug.
const FallbackSlug = "recipe"

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeSlug lowercases s, collapses every run of characters outside
// [a-z0-9] into one hyphen and trims leading and trailing hyphens.
func NormalizeSlug(s string) string {
	s = nonSlugRun.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

// EnsureSlug picks the first non-empty normalized candidate among the explicit
// slug, the display name and the stem of sourcePath, falling back to "recipe".
func EnsureSlug(explicit, name, sourcePath string) string {
	for _, candidate := range []string{explicit, name, pathStem(sourcePath)} {
		if slug := NormalizeSlug(candidate); slug != "" {
			return slug
		}
	}
	return FallbackSlug
}

// pathStem returns the final segment of p (split on '/' or '\') without its extension.
func pathStem(p string) string {
	base := p[strings.LastIndexAny(p, `/\`)+1:]
	if dot := strings.LastIndex(base, "."); dot > 0 {
		base = base[:dot]
	}
	return base
}

// IsSlug reports whether s is already slug-safe.
func IsSlug(s string) bool {
	return s != "" && NormalizeSlug(s) == s
}
