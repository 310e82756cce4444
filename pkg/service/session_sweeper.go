package service

import (
	"context"
	"log/slog"
	"time"
)

type SessionEvictor interface {
	EvictExpired() int
}

type sessionSweeper struct {
	evictor  SessionEvictor
	interval time.Duration
}

func NewSessionSweeper(evictor SessionEvictor, interval time.Duration) *sessionSweeper {
	return &sessionSweeper{
		evictor:  evictor,
		interval: interval,
	}
}

func (s *sessionSweeper) Name() string { return "session_sweeper" }

func (s *sessionSweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.evictor.EvictExpired(); n > 0 {
				slog.Info("Evicted idle sessions", "count", n)
			}
		}
	}
}
