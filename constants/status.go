package constants

// StatusKind is the completeness classification of one extraction record.
type StatusKind string

// Stable values (rendered into reports and stored in the result store).
const (
	StatusSuccess StatusKind = "Success" // GPA and major both present
	StatusPartial StatusKind = "Partial" // text acquired, at least one required field missing
	StatusFailed  StatusKind = "Failed"  // no text could be acquired
	StatusError   StatusKind = "Error"   // the pipeline itself faulted
)

// Required field labels, in the order they are reported as missing.
const (
	FieldGPA   = "GPA"
	FieldMajor = "Jurusan"
)

// ReasonNoText is the Failed reason for documents that yielded no text.
const ReasonNoText = "No text extracted"

// DocumentState tracks a document through the pipeline.
type DocumentState string

const (
	StateInit            DocumentState = "INIT"
	StateTextAcquired    DocumentState = "TEXT_ACQUIRED"
	StateTextUnavailable DocumentState = "TEXT_UNAVAILABLE"
	StateFieldsExtracted DocumentState = "FIELDS_EXTRACTED"
	StateClassified      DocumentState = "CLASSIFIED" // terminal
)
