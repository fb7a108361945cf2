package entity

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/cv-extract/constants"
)

// Status is the completeness classification of a record.
// Missing is set for Partial; Detail holds the Failed reason or the Error message.
type Status struct {
	Kind    constants.StatusKind `json:"kind"`
	Missing []string             `json:"missing,omitempty"`
	Detail  string               `json:"detail,omitempty"`
}

func Success() Status { return Status{Kind: constants.StatusSuccess} }

func Partial(missing ...string) Status {
	return Status{Kind: constants.StatusPartial, Missing: append([]string(nil), missing...)}
}

func Failed(reason string) Status { return Status{Kind: constants.StatusFailed, Detail: reason} }

func Errored(message string) Status { return Status{Kind: constants.StatusError, Detail: message} }

// String renders the status the way it appears in report cells.
func (s Status) String() string {
	switch s.Kind {
	case constants.StatusSuccess:
		return "Success"
	case constants.StatusPartial:
		return "Partial - Missing: " + strings.Join(s.Missing, ", ")
	case constants.StatusFailed:
		return "Failed - " + s.Detail
	case constants.StatusError:
		return "Error: " + s.Detail
	default:
		return string(s.Kind)
	}
}

// ParseStatus is the inverse of Status.String.
func ParseStatus(s string) (Status, error) {
	switch {
	case s == "Success":
		return Success(), nil
	case strings.HasPrefix(s, "Partial - Missing: "):
		parts := strings.Split(strings.TrimPrefix(s, "Partial - Missing: "), ", ")
		return Partial(parts...), nil
	case strings.HasPrefix(s, "Failed - "):
		return Failed(strings.TrimPrefix(s, "Failed - ")), nil
	case strings.HasPrefix(s, "Error: "):
		return Errored(strings.TrimPrefix(s, "Error: ")), nil
	}
	return Status{}, fmt.Errorf("unknown status %q", s)
}
