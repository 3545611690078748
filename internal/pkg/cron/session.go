package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// IdleSweeper is the part of calendar.Service the session jobs need.
type IdleSweeper interface {
	SweepIdleSessions(ctx context.Context) (int, error)
}

// SessionJobs holds the calendar session maintenance jobs.
type SessionJobs struct {
	calendarSvc IdleSweeper
}

func NewSessionJobs(calendarSvc IdleSweeper) *SessionJobs {
	return &SessionJobs{calendarSvc: calendarSvc}
}

// RegisterJobs registers all session-related cron jobs
func (j *SessionJobs) RegisterJobs(scheduler *Scheduler, sweepInterval time.Duration) error {
	return scheduler.AddJob("sweep_idle_calendar_sessions", sweepInterval, j.SweepIdleSessions)
}

// SweepIdleSessions drops sessions nobody has touched within the session TTL.
func (j *SessionJobs) SweepIdleSessions(ctx context.Context) error {
	removed, err := j.calendarSvc.SweepIdleSessions(ctx)
	if err != nil {
		return fmt.Errorf("sweep idle sessions: %w", err)
	}
	if removed > 0 {
		slog.Info("Cron: Swept idle calendar sessions", "count", removed)
	}
	return nil
}
