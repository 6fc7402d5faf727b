package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

type expirer interface {
	ExpireDue(ctx context.Context, strategy retry.Strategy, now time.Time) []uuid.UUID
}

// Sweeper periodically expires overdue call requests and evicts terminal
// entries past their grace period. The sweep and a concurrent claim on
// the same request are arbitrated by the registry CAS; whichever applies
// first wins and the loser is a no-op.
type Sweeper struct {
	service  expirer
	interval time.Duration
}

func NewSweeper(svc expirer, interval time.Duration) *Sweeper {
	return &Sweeper{service: svc, interval: interval}
}

func (s *Sweeper) Run(ctx context.Context, strategy retry.Strategy) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	zlog.Logger.Printf("sweeper started, interval %s", s.interval)

	for {
		select {
		case <-ctx.Done():
			zlog.Logger.Print("sweeper stopped")
			return
		case now := <-ticker.C:
			if expired := s.service.ExpireDue(ctx, strategy, now); len(expired) > 0 {
				zlog.Logger.Printf("sweep expired %d call requests", len(expired))
			}
		}
	}
}
