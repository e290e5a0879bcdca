package inquiry

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Outcome classifies how a relay call ended.
type Outcome string

const (
	OutcomeAnswered Outcome = "answered"
	OutcomeFallback Outcome = "fallback"
	OutcomeFailed   Outcome = "failed"
)

// Inquiry is the metadata of one relay call. Question and answer text are
// deliberately absent; only their sizes are kept.
type Inquiry struct {
	ID            uuid.UUID
	Outcome       Outcome
	QuestionChars int
	AnswerChars   int
	Model         string
	Latency       time.Duration
	CreatedAt     time.Time
}

// Recorder is the port for storing inquiries. It is write-only.
type Recorder interface {
	Record(ctx context.Context, in Inquiry) error
}

// Nop discards inquiries; used when no database is configured.
type Nop struct{}

func (Nop) Record(context.Context, Inquiry) error { return nil }
