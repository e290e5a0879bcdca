package assistant

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/artem13815/legalassist/pkg/inquiry"
)

type fakeGenerator struct {
	text   string
	err    error
	block  bool
	prompt string
	calls  int
}

func (f *fakeGenerator) Model() string { return "fake-model" }

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.text, f.err
}

type spyRecorder struct {
	mu  sync.Mutex
	got []inquiry.Inquiry
	err error
	// ctx.Err() observed while Record ran
	ctxErrs []error
}

func (s *spyRecorder) Record(ctx context.Context, in inquiry.Inquiry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, in)
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	return s.err
}

func TestAsk_ReturnsModelText(t *testing.T) {
	gen := &fakeGenerator{text: "1. Send notice. 2. Wait 15 days."}
	rec := &spyRecorder{}
	uc := NewService(gen, rec, time.Second, zap.NewNop())

	out, err := uc.Ask(context.Background(), "deposit?")

	require.NoError(t, err)
	assert.Equal(t, "1. Send notice. 2. Wait 15 days.", out.Text)
	assert.False(t, out.Fallback)
	assert.Equal(t, "fake-model", out.Model)
	assert.Equal(t, BuildPrompt("deposit?"), gen.prompt)
	assert.Equal(t, 1, gen.calls)

	require.Len(t, rec.got, 1)
	assert.Equal(t, inquiry.OutcomeAnswered, rec.got[0].Outcome)
	assert.Equal(t, out.InquiryID, rec.got[0].ID)
	assert.Equal(t, 8, rec.got[0].QuestionChars)
	assert.Equal(t, 32, rec.got[0].AnswerChars)
}

func TestAsk_EmptyQuestion(t *testing.T) {
	gen := &fakeGenerator{text: "x"}
	rec := &spyRecorder{}
	_, err := NewService(gen, rec, 0, nil).Ask(context.Background(), "")

	assert.ErrorIs(t, err, ErrQuestionRequired)
	assert.Zero(t, gen.calls)
	assert.Empty(t, rec.got)
}

func TestAsk_BlankTextFallsBack(t *testing.T) {
	for _, text := range []string{"", "  \n "} {
		rec := &spyRecorder{}
		out, err := NewService(&fakeGenerator{text: text}, rec, 0, nil).Ask(context.Background(), "q")

		require.NoError(t, err)
		assert.Equal(t, FallbackAnswer, out.Text)
		assert.True(t, out.Fallback)
		require.Len(t, rec.got, 1)
		assert.Equal(t, inquiry.OutcomeFallback, rec.got[0].Outcome)
		assert.Zero(t, rec.got[0].AnswerChars)
	}
}

func TestAsk_UpstreamErrorIsLoggedOnce(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	boom := errors.New("quota exceeded")
	gen := &fakeGenerator{err: boom}
	rec := &spyRecorder{}

	_, err := NewService(gen, rec, 0, zap.New(core)).Ask(context.Background(), "q")

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, gen.calls, "no retries")
	entries := logs.FilterMessage("legal assistant upstream call failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "quota exceeded", entries[0].ContextMap()["error"])

	require.Len(t, rec.got, 1)
	assert.Equal(t, inquiry.OutcomeFailed, rec.got[0].Outcome)
}

func TestAsk_TimeoutIsUpstreamFailure(t *testing.T) {
	gen := &fakeGenerator{block: true}
	_, err := NewService(gen, nil, 20*time.Millisecond, nil).Ask(context.Background(), "q")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAsk_RecorderFailureDoesNotChangeAnswer(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	rec := &spyRecorder{err: errors.New("db down")}

	out, err := NewService(&fakeGenerator{text: "1. Go."}, rec, 0, zap.New(core)).Ask(context.Background(), "q")

	require.NoError(t, err)
	assert.Equal(t, "1. Go.", out.Text)
	assert.Equal(t, 1, logs.FilterMessage("record inquiry").Len())
}

func TestAsk_RecordsAfterCallerCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rec := &spyRecorder{}
	gen := &fakeGenerator{text: "1. Go."}
	uc := NewService(gen, rec, 0, nil)

	cancel()
	_, err := uc.Ask(ctx, "q")

	require.NoError(t, err)
	require.Len(t, rec.ctxErrs, 1)
	assert.NoError(t, rec.ctxErrs[0])
}

func TestAsk_CallsAreIndependent(t *testing.T) {
	rec := &spyRecorder{}
	uc := NewService(&fakeGenerator{text: "1. Go."}, rec, 0, nil)

	a, err := uc.Ask(context.Background(), "first")
	require.NoError(t, err)
	b, err := uc.Ask(context.Background(), "second")
	require.NoError(t, err)

	assert.NotEqual(t, a.InquiryID, b.InquiryID)
}
