// Package async processes documents arriving from the inbox watcher.
package async

import (
	"context"
	"time"
)

// Job is one document path handed to the queue. Fingerprint, when set,
// suppresses reprocessing of identical content unless Force is true.
type Job struct {
	Path        string
	Fingerprint string
	Force       bool
	SubmittedAt time.Time
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}
