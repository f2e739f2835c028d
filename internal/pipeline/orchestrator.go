// Package pipeline drives onboarding plan generation: a resumable state
// machine that produces the nutrition, workout and journey-stage
// artifacts and finalizes them into a program draft.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adriancosta/fitflow/internal/domain"
	"github.com/adriancosta/fitflow/internal/genapi"
	"github.com/adriancosta/fitflow/internal/lock"
	"github.com/adriancosta/fitflow/internal/repository"
)

// ErrLocked reports that another instance is generating right now.
var ErrLocked = errors.New("plan generation already running elsewhere")

// ErrNoProfile reports that onboarding has not been completed.
var ErrNoProfile = errors.New("no profile found, run onboarding first")

// ErrNotReady reports a Continue on a session that has not produced a
// single artifact yet.
var ErrNotReady = errors.New("no artifacts generated yet")

const (
	// offlineProbeInterval is the pause between connectivity probes
	// while waiting out an offline window.
	offlineProbeInterval = 3 * time.Second
	// offlineProbeLimit bounds how many probes a single run makes.
	offlineProbeLimit = 20

	// completionRecheckDelay is how long the finalizer waits before
	// re-verifying that the draft actually landed.
	completionRecheckDelay = 2 * time.Second
)

// Options holds orchestrator feature switches.
type Options struct {
	// EnableWorkouts gates the optional workout artifact.
	EnableWorkouts bool
}

// Orchestrator owns the plan generation state machine. It is safe to
// re-enter: completed work is never redone, a done session with a live
// draft short-circuits without any network traffic, and a failed
// session is superseded by a fresh one.
type Orchestrator struct {
	sessions repository.PlanSessionRepo
	drafts   repository.DraftRepo
	profiles repository.ProfileRepo
	api      genapi.Client
	lease    *lock.Lease
	signal   lock.Signaler
	runner   *Runner
	opts     Options

	now   func() time.Time
	sleep func(time.Duration)
	newID func() string
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithClock overrides the orchestrator's time source.
func WithClock(now func() time.Time) OrchestratorOption {
	return func(o *Orchestrator) { o.now = now }
}

// WithOrchestratorSleep overrides waits, used to keep tests fast.
func WithOrchestratorSleep(sleep func(time.Duration)) OrchestratorOption {
	return func(o *Orchestrator) { o.sleep = sleep }
}

// WithIDGenerator overrides session ID generation.
func WithIDGenerator(newID func() string) OrchestratorOption {
	return func(o *Orchestrator) { o.newID = newID }
}

// NewOrchestrator wires the pipeline together.
func NewOrchestrator(
	sessions repository.PlanSessionRepo,
	drafts repository.DraftRepo,
	profiles repository.ProfileRepo,
	api genapi.Client,
	lease *lock.Lease,
	signal lock.Signaler,
	runner *Runner,
	opts Options,
	o ...OrchestratorOption,
) *Orchestrator {
	orch := &Orchestrator{
		sessions: sessions,
		drafts:   drafts,
		profiles: profiles,
		api:      api,
		lease:    lease,
		signal:   signal,
		runner:   runner,
		opts:     opts,
		now:      time.Now,
		sleep:    time.Sleep,
		newID:    uuid.NewString,
	}
	for _, fn := range o {
		fn(orch)
	}
	return orch
}

// Run executes the pipeline to completion and returns the finalized
// draft. On a double soft timeout it returns ErrStillWorking with the
// session left running; calling Run again later resumes it.
func (o *Orchestrator) Run(ctx context.Context) (*domain.ProgramDraft, error) {
	sess, err := o.sessions.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if sess != nil && sess.Status == domain.SessionDone {
		if draft, err := o.finishedDraft(ctx, sess); draft != nil || err != nil {
			return draft, err
		}
		// Done session but no usable draft: fall through and rebuild.
	}

	profile, err := o.profiles.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoProfile
		}
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	profile.ApplyDefaults()

	if err := o.lease.Acquire(ctx); err != nil {
		if errors.Is(err, lock.ErrHeldElsewhere) {
			return nil, ErrLocked
		}
		return nil, err
	}
	defer func() { _ = o.lease.Release(context.WithoutCancel(ctx)) }()

	hbCtx, stopHeartbeat := context.WithCancel(ctx)
	defer stopHeartbeat()
	go o.lease.Keepalive(hbCtx)

	// Once generation starts, caller cancellation must not corrupt the
	// session mid-transition. Progress is durable either way; the
	// remaining work is bounded by per-task timeouts.
	genCtx := context.WithoutCancel(ctx)

	sess, err = o.ensureSession(genCtx, sess)
	if err != nil {
		return nil, err
	}

	return o.generate(genCtx, sess, profile)
}

// Status returns the current session, or nil when none exists.
func (o *Orchestrator) Status(ctx context.Context) (*domain.PlanSession, error) {
	return o.sessions.Get(ctx)
}

// Draft returns the current program draft, enforcing its TTL: an
// expired or version-mismatched draft reads as absent and is cleared.
func (o *Orchestrator) Draft(ctx context.Context) (*domain.ProgramDraft, error) {
	draft, err := o.drafts.Get(ctx)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, nil
	}
	if draft.Expired(o.now()) {
		if err := o.drafts.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return draft, nil
}

// Retry resets failed artifacts to pending and re-runs the pipeline,
// preserving everything already generated.
func (o *Orchestrator) Retry(ctx context.Context) (*domain.ProgramDraft, error) {
	sess, err := o.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if sess != nil {
		for _, kind := range domain.AllArtifactKinds {
			if sess.SubPlanFor(kind).Status != domain.SubPlanFailed {
				continue
			}
			pending := domain.SubPlanPending
			err := o.sessions.UpdateSubPlan(ctx, sess.ID, kind, repository.SubPlanPatch{
				Status:     &pending,
				ClearError: true,
			})
			if err != nil {
				return nil, fmt.Errorf("resetting %s: %w", kind, err)
			}
		}
		if sess.Status == domain.SessionFailed || sess.Status == domain.SessionDone {
			if err := o.sessions.SetStatus(ctx, sess.ID, domain.SessionRunning); err != nil {
				return nil, err
			}
		}
	}
	return o.Run(ctx)
}

// Continue force-finishes a stuck session with whatever it holds, a
// missing nutrition plan included. The draft is rebuilt from the stored
// session without touching the generation server; only a session with
// no artifact at all is refused.
func (o *Orchestrator) Continue(ctx context.Context) (*domain.ProgramDraft, error) {
	sess, err := o.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("no generation session to continue")
	}
	if !sess.Nutrition.Ready() && !sess.Workout.Ready() && !sess.Stages.Ready() {
		return nil, ErrNotReady
	}
	return o.finalize(ctx, sess)
}

// finishedDraft resolves a done session: a live draft short-circuits,
// an expired one is cleared so the pipeline regenerates.
func (o *Orchestrator) finishedDraft(ctx context.Context, sess *domain.PlanSession) (*domain.ProgramDraft, error) {
	draft, err := o.Draft(ctx)
	if err != nil {
		return nil, err
	}
	if draft != nil {
		return draft, nil
	}
	if sess.Nutrition.Ready() {
		// The session still holds everything needed; rebuild in place.
		return o.finalize(ctx, sess)
	}
	return nil, nil
}

// ensureSession returns the session the pipeline should work on: the
// existing one when resumable, otherwise a fresh session superseding it.
func (o *Orchestrator) ensureSession(ctx context.Context, sess *domain.PlanSession) (*domain.PlanSession, error) {
	if sess != nil && sess.Status != domain.SessionFailed {
		if sess.Status != domain.SessionRunning {
			if err := o.sessions.SetStatus(ctx, sess.ID, domain.SessionRunning); err != nil {
				return nil, err
			}
			sess.Status = domain.SessionRunning
		}
		return sess, nil
	}

	fresh := domain.NewPlanSession(o.newID(), o.now().UTC())
	fresh.Status = domain.SessionRunning
	if err := o.sessions.Create(ctx, fresh); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return fresh, nil
}

func (o *Orchestrator) generate(ctx context.Context, sess *domain.PlanSession, profile *domain.Profile) (*domain.ProgramDraft, error) {
	if err := o.advance(ctx, sess, ProgressPreparing, msgPreparing); err != nil {
		return nil, err
	}

	// A nutrition hard failure is terminal for the session but must not
	// interrupt the siblings. The error is held until workout and stages
	// have had their turn.
	var nutritionErr error
	if !sess.Nutrition.Ready() {
		if err := o.advance(ctx, sess, ProgressNutritionStart, msgNutrition); err != nil {
			return nil, err
		}
		nutritionErr = o.runNutrition(ctx, sess, profile)
		if errors.Is(nutritionErr, ErrStillWorking) || errors.Is(nutritionErr, ErrOffline) {
			// Recoverable: the session stays running for a later resume.
			return nil, nutritionErr
		}
	}
	if err := o.advance(ctx, sess, ProgressNutritionReady, msgNutritionReady); err != nil {
		return nil, err
	}

	if o.opts.EnableWorkouts && !sess.Workout.Ready() && sess.Workout.Status != domain.SubPlanFailed {
		if err := o.advance(ctx, sess, ProgressWorkout, msgWorkout); err != nil {
			return nil, err
		}
		o.runOptional(ctx, sess, domain.ArtifactWorkout, o.workoutTask(profile))
	}

	if !sess.Stages.Ready() && sess.Stages.Status != domain.SubPlanFailed {
		if err := o.advance(ctx, sess, ProgressStages, msgStages); err != nil {
			return nil, err
		}
		o.runOptional(ctx, sess, domain.ArtifactStages, o.stagesTask(profile))
	}

	if nutritionErr != nil {
		return nil, o.failSession(ctx, sess, nutritionErr)
	}
	return o.finalize(ctx, sess)
}

// runNutrition generates the one required artifact. An offline window
// is waited out once; a double soft timeout leaves the session running
// and surfaces ErrStillWorking to the caller. A hard failure is only
// returned here; the runner has already recorded it on the sub-plan and
// the caller settles the session after the siblings finish.
func (o *Orchestrator) runNutrition(ctx context.Context, sess *domain.PlanSession, profile *domain.Profile) error {
	task := o.nutritionTask(profile)

	err := o.runner.Run(ctx, sess.ID, domain.ArtifactNutrition, task)
	if errors.Is(err, ErrOffline) {
		if waitErr := o.waitForServer(ctx); waitErr != nil {
			return waitErr
		}
		err = o.runner.Run(ctx, sess.ID, domain.ArtifactNutrition, task)
	}
	if err == nil {
		sess.Nutrition.Status = domain.SubPlanReady
	}
	return err
}

// failSession records the terminal failure once every artifact has run.
func (o *Orchestrator) failSession(ctx context.Context, sess *domain.PlanSession, cause error) error {
	if err := o.sessions.SetStatus(ctx, sess.ID, domain.SessionFailed); err != nil {
		return err
	}
	o.signal.Publish(lock.Event{Kind: lock.EventFailed, SessionID: sess.ID, Message: cause.Error()})
	return cause
}

// runOptional generates a best-effort artifact. Nothing it does can
// fail the pipeline: hard failures are already recorded by the runner,
// and recoverable ones are downgraded to a recorded failure so the
// session still reaches a terminal state.
func (o *Orchestrator) runOptional(ctx context.Context, sess *domain.PlanSession, kind domain.ArtifactKind, task TaskFunc) {
	if !o.api.Available(ctx) {
		o.failArtifact(ctx, sess.ID, kind, "generation server unreachable")
		return
	}

	err := o.runner.Run(ctx, sess.ID, kind, task)
	switch {
	case err == nil:
		sess.SubPlanFor(kind).Status = domain.SubPlanReady
	case errors.Is(err, ErrStillWorking):
		o.failArtifact(ctx, sess.ID, kind, "generation timed out")
	case errors.Is(err, ErrOffline):
		o.failArtifact(ctx, sess.ID, kind, "generation server unreachable")
	}
}

func (o *Orchestrator) failArtifact(ctx context.Context, sessionID string, kind domain.ArtifactKind, msg string) {
	failed := domain.SubPlanFailed
	completed := o.now().UTC()
	_ = o.sessions.UpdateSubPlan(ctx, sessionID, kind, repository.SubPlanPatch{
		Status:      &failed,
		ClearPlan:   true,
		Error:       &msg,
		CompletedAt: &completed,
	})
}

// finalize marks the session done and persists the draft, re-verifying
// shortly after in case the write raced a storage hiccup.
func (o *Orchestrator) finalize(ctx context.Context, sess *domain.PlanSession) (*domain.ProgramDraft, error) {
	stored, err := o.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if stored == nil || stored.ID != sess.ID {
		return nil, fmt.Errorf("session %s disappeared during generation", sess.ID)
	}

	draft := o.buildDraft(stored)
	if err := o.drafts.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("saving draft: %w", err)
	}

	if err := o.advance(ctx, stored, ProgressDone, msgDone); err != nil {
		return nil, err
	}
	if err := o.sessions.SetStatus(ctx, stored.ID, domain.SessionDone); err != nil {
		return nil, err
	}
	o.signal.Publish(lock.Event{Kind: lock.EventDone, SessionID: stored.ID, Progress: ProgressDone})

	if check, err := o.drafts.Get(ctx); err != nil || check == nil {
		o.sleep(completionRecheckDelay)
		if err := o.drafts.Save(ctx, draft); err != nil {
			return nil, fmt.Errorf("saving draft: %w", err)
		}
	}
	return draft, nil
}

func (o *Orchestrator) buildDraft(sess *domain.PlanSession) *domain.ProgramDraft {
	draft := &domain.ProgramDraft{
		Version:       domain.DraftSchemaVersion,
		Days:          1,
		NutritionJSON: sess.Nutrition.Plan,
		CreatedAt:     o.now().UTC(),
	}
	if sess.Workout.Ready() {
		var text string
		if json.Unmarshal(sess.Workout.Plan, &text) == nil {
			draft.WorkoutText = text
		}
	}
	if sess.Stages.Ready() {
		draft.StagesJSON = sess.Stages.Plan
	}
	return draft
}

// advance moves progress forward. Checkpoints already passed on a
// previous run are silently kept; progress never rewinds. Storage
// failures are real errors and propagate.
func (o *Orchestrator) advance(ctx context.Context, sess *domain.PlanSession, value int, msg string) error {
	if err := o.sessions.UpdateProgress(ctx, sess.ID, value, msg); err != nil {
		if errors.Is(err, repository.ErrProgressRegression) {
			// The checkpoint was already passed; the stored value wins.
			return nil
		}
		return fmt.Errorf("recording progress: %w", err)
	}
	sess.Progress = value
	o.signal.Publish(lock.Event{
		Kind:      lock.EventProgress,
		SessionID: sess.ID,
		Progress:  value,
		Message:   msg,
	})
	return nil
}

func (o *Orchestrator) waitForServer(ctx context.Context) error {
	for i := 0; i < offlineProbeLimit; i++ {
		if o.api.Available(ctx) {
			return nil
		}
		o.sleep(offlineProbeInterval)
	}
	return fmt.Errorf("server unreachable: %w", ErrOffline)
}

func (o *Orchestrator) nutritionTask(profile *domain.Profile) TaskFunc {
	return func(ctx context.Context) (json.RawMessage, error) {
		res, err := o.api.GenerateNutrition(ctx, genapi.NutritionRequest{
			Gender:         string(profile.Gender),
			Age:            *profile.Age,
			HeightCm:       *profile.HeightCm,
			WeightKg:       *profile.WeightKg,
			TargetWeightKg: *profile.TargetWeightKg,
			Activity:       string(profile.Activity),
			Goal:           string(profile.Goal),
			Diet:           string(profile.Diet),
		})
		if err != nil {
			return nil, err
		}
		return res.Plan, nil
	}
}

func (o *Orchestrator) workoutTask(profile *domain.Profile) TaskFunc {
	return func(ctx context.Context) (json.RawMessage, error) {
		res, err := o.api.GenerateWorkout(ctx, genapi.WorkoutRequest{
			Gender:       string(profile.Gender),
			Age:          *profile.Age,
			Goal:         string(profile.Goal),
			Experience:   string(profile.Experience),
			TrainingDays: *profile.TrainingDays,
		})
		if err != nil {
			return nil, err
		}
		// Workout plans are free text; store them JSON-encoded so the
		// sub-plan column stays uniform.
		return json.Marshal(res.Plan)
	}
}

func (o *Orchestrator) stagesTask(profile *domain.Profile) TaskFunc {
	return func(ctx context.Context) (json.RawMessage, error) {
		res, err := o.api.GenerateStages(ctx, genapi.Avatar{
			Goal:       string(profile.Goal),
			Diet:       string(profile.Diet),
			Frequency:  *profile.TrainingDays,
			Experience: string(profile.Experience),
			Gender:     string(profile.Gender),
		})
		if err != nil {
			return nil, err
		}
		return res.Stages, nil
	}
}
