package entity

// Document is one eligible source file, as enumerated by the batch.
type Document struct {
	Index int    `json:"index"` // enumeration order, 0-based
	Path  string `json:"path"`
	Name  string `json:"name"` // base name, with extension
}
