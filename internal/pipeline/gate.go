package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/resume-tailor/internal/storage"
)

// ReviewGate blocks a run until the tailored resume has been reviewed.
type ReviewGate interface {
	Wait(ctx context.Context, jobID string) error
}

// PollingGate watches the persisted resume until the reviewer clears its
// editing flag. The timeout is mandatory: without one an abandoned review
// would block the run forever.
type PollingGate struct {
	Store    *storage.Store
	Interval time.Duration
	Timeout  time.Duration
}

// Wait polls until editing is false, the timeout passes, or ctx is canceled.
func (g *PollingGate) Wait(ctx context.Context, jobID string) error {
	if g.Timeout <= 0 {
		return fmt.Errorf("review timeout must be positive")
	}
	interval := g.Interval
	if interval <= 0 {
		interval = DefaultReviewInterval
	}

	ctx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		resume, err := g.Store.ReadTailoredResume(jobID)
		if err != nil {
			return fmt.Errorf("review gate could not read tailored resume: %w", err)
		}
		if !resume.Editing {
			return nil
		}

		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return fmt.Errorf("manual review timed out after %s: %s still has editing: true", g.Timeout, g.Store.TailoredResumePath(jobID))
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
