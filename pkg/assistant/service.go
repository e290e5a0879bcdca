package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/legalassist/pkg/inquiry"
	"github.com/artem13815/legalassist/pkg/llm"
)

// Messages returned to callers. They are part of the HTTP contract.
const (
	FallbackAnswer      = "Sorry, I could not generate an answer right now. Please try again or contact a lawyer directly."
	ServiceErrorMessage = "There was an error contacting the legal assistant service. Please try again or contact a lawyer directly."
)

// ErrQuestionRequired is returned for an empty question.
var ErrQuestionRequired = errors.New("question is required")

const recordTimeout = 2 * time.Second

// Answer is the result of a successful relay call. Text is never empty.
type Answer struct {
	InquiryID uuid.UUID
	Text      string
	Fallback  bool
	Model     string
}

// UseCase relays one question to the generation backend.
type UseCase interface {
	Ask(ctx context.Context, question string) (Answer, error)
}

type service struct {
	gen      llm.Generator
	recorder inquiry.Recorder
	timeout  time.Duration
	log      *zap.Logger
	now      func() time.Time
}

// NewService creates the relay. A zero timeout leaves the backend call bounded
// only by ctx; a nil recorder disables the inquiry log.
func NewService(gen llm.Generator, recorder inquiry.Recorder, timeout time.Duration, log *zap.Logger) UseCase {
	if recorder == nil {
		recorder = inquiry.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		gen:      gen,
		recorder: recorder,
		timeout:  timeout,
		log:      log,
		now:      time.Now,
	}
}

// Ask makes exactly one backend call. Backend errors are logged here and
// returned wrapped; a blank reply is replaced by FallbackAnswer.
func (s *service) Ask(ctx context.Context, question string) (Answer, error) {
	if question == "" {
		return Answer{}, ErrQuestionRequired
	}

	id := uuid.New()
	start := s.now()
	rec := inquiry.Inquiry{
		ID:            id,
		QuestionChars: utf8.RuneCountInString(question),
		Model:         s.gen.Model(),
		CreatedAt:     start.UTC(),
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	text, err := s.gen.Generate(callCtx, BuildPrompt(question))
	rec.Latency = s.now().Sub(start)

	if err != nil {
		rec.Outcome = inquiry.OutcomeFailed
		s.log.Error("legal assistant upstream call failed",
			zap.String("inquiry_id", id.String()),
			zap.String("model", rec.Model),
			zap.Duration("latency", rec.Latency),
			zap.Error(err))
		s.record(ctx, rec)
		return Answer{}, fmt.Errorf("upstream: %w", err)
	}

	out := Answer{InquiryID: id, Text: text, Model: rec.Model}
	if strings.TrimSpace(text) == "" {
		out.Text = FallbackAnswer
		out.Fallback = true
		rec.Outcome = inquiry.OutcomeFallback
		s.log.Warn("legal assistant returned no text",
			zap.String("inquiry_id", id.String()),
			zap.String("model", rec.Model))
	} else {
		rec.Outcome = inquiry.OutcomeAnswered
		rec.AnswerChars = utf8.RuneCountInString(text)
	}
	s.record(ctx, rec)
	return out, nil
}

// record stores rec without letting a slow or broken log affect the caller.
func (s *service) record(ctx context.Context, rec inquiry.Inquiry) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := s.recorder.Record(ctx, rec); err != nil {
		s.log.Warn("record inquiry", zap.String("inquiry_id", rec.ID.String()), zap.Error(err))
	}
}
