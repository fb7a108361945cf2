package constants

import (
	"slices"
	"strings"
)

// Source formats understood by the text extractor.
const (
	PDF  = "PDF"
	TEXT = "TXT"
)

// FileTypes holds the formats a document can be acquired from.
var FileTypes = []string{PDF, TEXT}

// AllowedExtensions holds the default eligible extensions for a batch run.
// Plain-text files are accepted by the extractor but are not eligible unless configured.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat returns the source format for an extension, or "" when unsupported.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "txt", "text":
		return TEXT
	default:
		return ""
	}
}

// SupportedFormat reports whether the extension maps to one of FileTypes.
func SupportedFormat(ext string) bool {
	return slices.Contains(FileTypes, MapExtToFormat(ext))
}
