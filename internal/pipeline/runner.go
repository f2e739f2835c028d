package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/adriancosta/fitflow/internal/domain"
	"github.com/adriancosta/fitflow/internal/lock"
	"github.com/adriancosta/fitflow/internal/repository"
)

// ErrStillWorking reports that an artifact's generation timed out twice
// in a row. The sub-plan stays in the generating state; re-entering the
// pipeline later will pick it up again.
var ErrStillWorking = errors.New("generation still in progress on the server")

// ErrOffline reports that the generation server was unreachable. The
// sub-plan is reset to pending so a later attempt starts clean.
var ErrOffline = errors.New("generation server unreachable")

// TaskFunc produces one artifact's plan payload.
type TaskFunc func(ctx context.Context) (json.RawMessage, error)

// Runner executes a single artifact generation task against the session
// store, applying the soft-timeout retry policy: a deadline expiry gets
// exactly one retry after a short backoff, any other failure is final.
type Runner struct {
	sessions repository.PlanSessionRepo
	signal   lock.Signaler
	sleep    func(time.Duration)
	now      func() time.Time
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithSleep overrides the backoff sleep, used to keep tests fast.
func WithSleep(sleep func(time.Duration)) RunnerOption {
	return func(r *Runner) { r.sleep = sleep }
}

// WithRunnerClock overrides the runner's time source.
func WithRunnerClock(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

// NewRunner creates a Runner over the given session store.
func NewRunner(sessions repository.PlanSessionRepo, signal lock.Signaler, opts ...RunnerOption) *Runner {
	r := &Runner{
		sessions: sessions,
		signal:   signal,
		sleep:    time.Sleep,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run generates one artifact, recording every state transition in the
// session store. On success the sub-plan is ready and holds the plan.
// On hard failure it is failed and holds the error. On a double soft
// timeout it stays generating and Run returns ErrStillWorking. When the
// server is unreachable it is reset to pending and Run returns
// ErrOffline.
func (r *Runner) Run(ctx context.Context, sessionID string, kind domain.ArtifactKind, task TaskFunc) error {
	if err := r.markGenerating(ctx, sessionID, kind); err != nil {
		return err
	}

	var lastErr error
	for attempt := 0; attempt <= MaxSoftRetries; attempt++ {
		if attempt > 0 {
			r.signal.Publish(lock.Event{
				Kind:      lock.EventStillWorking,
				SessionID: sessionID,
				Artifact:  kind,
				Message:   "Taking a little longer than usual",
			})
			r.sleep(SoftRetryBackoff)
		}

		plan, err := task(ctx)
		if err == nil {
			return r.markReady(ctx, sessionID, kind, plan)
		}
		lastErr = err

		switch Classify(err) {
		case FailureSoft:
			continue
		case FailureOffline:
			if resetErr := r.resetPending(ctx, sessionID, kind); resetErr != nil {
				return resetErr
			}
			return fmt.Errorf("%s: %w", kind, ErrOffline)
		default:
			return r.markFailed(ctx, sessionID, kind, err)
		}
	}

	// Both attempts hit the deadline. Leave the sub-plan generating so
	// a later run can resume it.
	return fmt.Errorf("%s after %v: %w", kind, lastErr, ErrStillWorking)
}

func (r *Runner) markGenerating(ctx context.Context, sessionID string, kind domain.ArtifactKind) error {
	status := domain.SubPlanGenerating
	started := r.now().UTC()
	err := r.sessions.UpdateSubPlan(ctx, sessionID, kind, repository.SubPlanPatch{
		Status:     &status,
		ClearPlan:  true,
		ClearError: true,
		StartedAt:  &started,
	})
	if err != nil {
		return fmt.Errorf("marking %s generating: %w", kind, err)
	}
	r.publishStatus(sessionID, kind, status, "")
	return nil
}

func (r *Runner) markReady(ctx context.Context, sessionID string, kind domain.ArtifactKind, plan json.RawMessage) error {
	status := domain.SubPlanReady
	completed := r.now().UTC()
	err := r.sessions.UpdateSubPlan(ctx, sessionID, kind, repository.SubPlanPatch{
		Status:      &status,
		Plan:        plan,
		ClearError:  true,
		CompletedAt: &completed,
	})
	if err != nil {
		return fmt.Errorf("marking %s ready: %w", kind, err)
	}
	r.publishStatus(sessionID, kind, status, "")
	return nil
}

func (r *Runner) markFailed(ctx context.Context, sessionID string, kind domain.ArtifactKind, cause error) error {
	status := domain.SubPlanFailed
	msg := cause.Error()
	completed := r.now().UTC()
	err := r.sessions.UpdateSubPlan(ctx, sessionID, kind, repository.SubPlanPatch{
		Status:      &status,
		ClearPlan:   true,
		Error:       &msg,
		CompletedAt: &completed,
	})
	if err != nil {
		return fmt.Errorf("marking %s failed: %w", kind, err)
	}
	r.publishStatus(sessionID, kind, status, msg)
	return fmt.Errorf("generating %s: %w", kind, cause)
}

func (r *Runner) resetPending(ctx context.Context, sessionID string, kind domain.ArtifactKind) error {
	status := domain.SubPlanPending
	err := r.sessions.UpdateSubPlan(ctx, sessionID, kind, repository.SubPlanPatch{
		Status:     &status,
		ClearPlan:  true,
		ClearError: true,
	})
	if err != nil {
		return fmt.Errorf("resetting %s: %w", kind, err)
	}
	r.publishStatus(sessionID, kind, status, "")
	return nil
}

func (r *Runner) publishStatus(sessionID string, kind domain.ArtifactKind, status domain.SubPlanStatus, msg string) {
	r.signal.Publish(lock.Event{
		Kind:      lock.EventArtifact,
		SessionID: sessionID,
		Artifact:  kind,
		Status:    status,
		Message:   msg,
	})
}
