package ingest

import (
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/cv-extract/constants"
)

// ExtSet builds a lookup set from configured extensions, falling back to constants.AllowedExtensions.
func ExtSet(exts []string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, e := range exts {
		if e = constants.NormalizeExt(strings.TrimSpace(e)); e != "" {
			set[e] = struct{}{}
		}
	}
	if len(set) == 0 {
		return constants.AllowedExtensions
	}
	return set
}

// Eligible checks the extension of path against set.
func Eligible(path string, set map[string]struct{}) bool {
	_, ok := set[constants.NormalizeExt(filepath.Ext(path))]
	return ok
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}
