package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeChecker struct {
	name string
	err  error
}

func (f fakeChecker) Name() string                { return f.name }
func (f fakeChecker) Check(context.Context) error { return f.err }

func TestReady(t *testing.T) {
	assert.NoError(t, NewService().Ready(context.Background()))
	assert.NoError(t, NewService(fakeChecker{name: "postgres"}).Ready(context.Background()))

	down := errors.New("connection refused")
	err := NewService(fakeChecker{name: "a"}, fakeChecker{name: "postgres", err: down}).Ready(context.Background())
	assert.ErrorIs(t, err, down)
	assert.Contains(t, err.Error(), "postgres")
}
