package async

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expenso-app/receipt-extraction/internal/extract"
)

// Job is one recognized-text file waiting for extraction.
type Job struct {
	ID          uuid.UUID
	Path        string
	SubmittedAt time.Time
}

// Result pairs a finished extraction with its source job.
type Result struct {
	ID         uuid.UUID
	Path       string
	Extraction extract.Extraction
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}
