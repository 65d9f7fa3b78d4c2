// Package sweeper periodically expires the coupons of coupon events whose issuance window has closed.
package sweeper

//go:generate mockgen -source=sweeper.go -destination=mock_sweeper.go -package=sweeper

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultInterval = time.Minute
	batchSize       = 100
)

type Expirer interface {
	ExpirableEvents(ctx context.Context, limit int) ([]int, error)
	ExpireEvent(ctx context.Context, eventID int) (int64, error)
}

type Sweeper struct {
	coupons    Expirer
	workerPool WorkerPoolI
	interval   time.Duration

	// events handed to a worker and not finished yet
	inFlight sync.Map
}

func New(coupons Expirer, interval time.Duration, workers int) *Sweeper {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Sweeper{
		coupons:    coupons,
		workerPool: NewWorkerPool(workers),
		interval:   interval,
	}
}

// Run sweeps once immediately and then on every tick until ctx is done. The worker pool is
// drained before Run returns.
func (s *Sweeper) Run(ctx context.Context) {
	zap.L().Info("coupon expiry sweeper started", zap.Duration("interval", s.interval))
	defer s.workerPool.Close()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
			zap.L().Error("coupon expiry sweep failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			zap.L().Info("coupon expiry sweeper stopped")
			return
		case <-ticker.C:
		}
	}
}

// Sweep expires one batch of events concurrently and reports how many coupons changed state.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	ids, err := s.coupons.ExpirableEvents(ctx, batchSize)
	if err != nil {
		return 0, err
	}

	var (
		g       errgroup.Group
		expired atomic.Int64
	)
	for _, id := range ids {
		if _, loaded := s.inFlight.LoadOrStore(id, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			done := make(chan error, 1)
			err := s.workerPool.AddTask(ctx, func() error {
				defer s.inFlight.Delete(id)
				n, err := s.coupons.ExpireEvent(ctx, id)
				expired.Add(n)
				done <- err
				return err
			})
			if err != nil {
				s.inFlight.Delete(id)
				return err
			}
			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	err = g.Wait()
	if n := expired.Load(); n > 0 {
		zap.L().Info("coupons expired", zap.Int64("count", n), zap.Int("events", len(ids)))
	}
	return expired.Load(), err
}
