// Package ingest discovers CV documents on the local filesystem.
package ingest

// Options controls directory enumeration.
type Options struct {
	// Extensions are eligible extensions, lowercase without '.'; empty -> constants.AllowedExtensions.
	Extensions []string
	Recursive  bool
	SkipHidden bool
}

// DirStats summarizes a directory enumeration.
type DirStats struct {
	Scanned uint32
	Matched uint32
	Failed  uint32
}
