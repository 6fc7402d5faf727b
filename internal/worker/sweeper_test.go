package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/retry"
)

type countingExpirer struct {
	calls atomic.Int32
}

func (c *countingExpirer) ExpireDue(_ context.Context, _ retry.Strategy, _ time.Time) []uuid.UUID {
	c.calls.Add(1)
	return nil
}

func TestSweeper_Run_TicksUntilCancelled(t *testing.T) {
	expirer := &countingExpirer{}
	s := NewSweeper(expirer, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx, retry.Strategy{})
		close(done)
	}()

	time.Sleep(60 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}

	assert.GreaterOrEqual(t, expirer.calls.Load(), int32(2))
}
