package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/legalassist/pkg/inquiry"
)

// InquiryRepository implements inquiry.Recorder backed by PostgreSQL (pgx).
type InquiryRepository struct {
	pool *pgxpool.Pool
}

func NewInquiryRepository(pool *pgxpool.Pool) (*InquiryRepository, error) {
	r := &InquiryRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("ensure inquiries schema: %w", err)
	}
	return r, nil
}

func (r *InquiryRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS inquiries (
	id UUID PRIMARY KEY,
	outcome TEXT NOT NULL,
	question_chars INTEGER NOT NULL,
	answer_chars INTEGER NOT NULL,
	model TEXT NOT NULL,
	latency_ms BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS inquiries_created_at_idx ON inquiries (created_at);
`)
	return err
}

func (r *InquiryRepository) Record(ctx context.Context, in inquiry.Inquiry) error {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO inquiries (id, outcome, question_chars, answer_chars, model, latency_ms, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, in.ID, string(in.Outcome), in.QuestionChars, in.AnswerChars, in.Model, in.Latency.Milliseconds(), in.CreatedAt)
	return err
}
