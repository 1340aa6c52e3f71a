package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

const (
	DefaultRetrySchedule = "0 */5 * * * *"
	DefaultRetryBatch    = 100
)

type dueForRetryReader interface {
	Handle(ctx context.Context, query queries.GetPackagesDueForRetryQuery) ([]queries.PackageDueForRetryResponse, error)
}

type statusTransitioner interface {
	Handle(ctx context.Context, cmd commands.TransitionStatusCommand) error
}

// Outcomes of one due package, as passed to an OutcomeRecorder.
const (
	OutcomeRescheduled = "rescheduled"
	OutcomeSkipped     = "skipped"
	OutcomeFailed      = "failed"
)

// OutcomeRecorder counts what happened to each due package.
type OutcomeRecorder interface {
	RecordRetryOutcome(outcome string)
}

type noopRecorder struct{}

func (noopRecorder) RecordRetryOutcome(string) {}

// RetryReschedulerJob turns failed deliveries that reached their next attempt
// date into rescheduled packages.
type RetryReschedulerJob struct {
	reader   dueForRetryReader
	handler  statusTransitioner
	schedule string
	batch    int
	cron     *cron.Cron
	logger   *slog.Logger
	recorder OutcomeRecorder
	now      func() time.Time

	mu sync.Mutex
}

func NewRetryReschedulerJob(
	reader dueForRetryReader,
	handler statusTransitioner,
	schedule string,
	batch int,
	logger *slog.Logger,
) *RetryReschedulerJob {
	if schedule == "" {
		schedule = DefaultRetrySchedule
	}
	if batch <= 0 {
		batch = DefaultRetryBatch
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RetryReschedulerJob{
		reader:   reader,
		handler:  handler,
		schedule: schedule,
		batch:    batch,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "retry_rescheduler_job"),
		recorder: noopRecorder{},
		now:      time.Now,
	}
}

// WithRecorder sets where per-package outcomes are counted. nil disables counting.
func (j *RetryReschedulerJob) WithRecorder(recorder OutcomeRecorder) *RetryReschedulerJob {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	j.recorder = recorder
	return j
}

// Start registers the job on its schedule and starts the scheduler.
func (j *RetryReschedulerJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Retry rescheduler tick failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Retry rescheduler job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running tick to finish.
func (j *RetryReschedulerJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Retry rescheduler job stopped")
}

// RunOnce reschedules one batch of due packages and reports how many moved.
// Overlapping ticks are serialized.
func (j *RetryReschedulerJob) RunOnce(ctx context.Context) (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now().UTC()
	query, err := queries.NewGetPackagesDueForRetryQuery(now, j.batch)
	if err != nil {
		return 0, err
	}
	due, err := j.reader.Handle(ctx, query)
	if err != nil {
		return 0, err
	}

	moved := 0
	for _, item := range due {
		cmd, cmdErr := commands.NewTransitionStatusCommand(item.ID, parcel.Rescheduled, nil, parcel.TransitionOptions{
			NextAttemptDate: &now,
			Notes:           "next delivery attempt scheduled",
		})
		if cmdErr != nil {
			return moved, cmdErr
		}

		err = j.handler.Handle(ctx, cmd)
		switch {
		case err == nil:
			moved++
			j.recorder.RecordRetryOutcome(OutcomeRescheduled)
		case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrPreconditionFailed):
			j.logger.DebugContext(ctx, "Package changed before rescheduling", "package_id", item.ID.String(), "error", err)
			j.recorder.RecordRetryOutcome(OutcomeSkipped)
		default:
			j.logger.ErrorContext(ctx, "Failed to reschedule package", "package_id", item.ID.String(), "error", err)
			j.recorder.RecordRetryOutcome(OutcomeFailed)
		}
	}

	if moved > 0 {
		j.logger.InfoContext(ctx, "Rescheduled failed deliveries", "count", moved, "due", len(due))
	}
	return moved, nil
}
