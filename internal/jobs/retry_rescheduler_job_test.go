package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDueForRetryReader struct{ mock.Mock }

func (m *MockDueForRetryReader) Handle(
	ctx context.Context,
	query queries.GetPackagesDueForRetryQuery,
) ([]queries.PackageDueForRetryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.PackageDueForRetryResponse), args.Error(1)
}

type MockStatusTransitioner struct{ mock.Mock }

func (m *MockStatusTransitioner) Handle(ctx context.Context, cmd commands.TransitionStatusCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type countingRecorder map[string]int

func (r countingRecorder) RecordRetryOutcome(outcome string) { r[outcome]++ }

func forPackage(id kernel.UUID) any {
	return mock.MatchedBy(func(cmd commands.TransitionStatusCommand) bool {
		return cmd.PackageID() == id && cmd.Status() == parcel.Rescheduled && cmd.Actor() == nil
	})
}

func newTestJob(reader *MockDueForRetryReader, handler *MockStatusTransitioner) *RetryReschedulerJob {
	job := NewRetryReschedulerJob(reader, handler, "", 10, nil)
	fixed := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return fixed }
	return job
}

func TestRetryReschedulerJob_RunOnce_ReschedulesDuePackages(t *testing.T) {
	ctx := t.Context()
	first, second := kernel.NewUUID(), kernel.NewUUID()

	reader := new(MockDueForRetryReader)
	handler := new(MockStatusTransitioner)
	reader.On("Handle", ctx, mock.AnythingOfType("queries.GetPackagesDueForRetryQuery")).
		Return([]queries.PackageDueForRetryResponse{{ID: first}, {ID: second}}, nil).Once()
	handler.On("Handle", ctx, forPackage(first)).Return(nil).Once()
	handler.On("Handle", ctx, forPackage(second)).Return(nil).Once()

	moved, err := newTestJob(reader, handler).RunOnce(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, moved)
	reader.AssertExpectations(t)
	handler.AssertExpectations(t)

	cmd := handler.Calls[0].Arguments[1].(commands.TransitionStatusCommand)
	require.NotNil(t, cmd.Options().NextAttemptDate)
	assert.Equal(t, time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC), *cmd.Options().NextAttemptDate)
}

func TestRetryReschedulerJob_RunOnce_SkipsChangedPackages(t *testing.T) {
	ctx := t.Context()
	stale, moved, broken := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	reader := new(MockDueForRetryReader)
	handler := new(MockStatusTransitioner)
	reader.On("Handle", ctx, mock.Anything).
		Return([]queries.PackageDueForRetryResponse{{ID: stale}, {ID: broken}, {ID: moved}}, nil).Once()
	handler.On("Handle", ctx, forPackage(stale)).Return(errs.NewConflictError("package", stale)).Once()
	handler.On("Handle", ctx, forPackage(broken)).Return(errors.New("connection reset")).Once()
	handler.On("Handle", ctx, forPackage(moved)).Return(nil).Once()

	outcomes := countingRecorder{}
	count, err := newTestJob(reader, handler).WithRecorder(outcomes).RunOnce(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, countingRecorder{OutcomeSkipped: 1, OutcomeFailed: 1, OutcomeRescheduled: 1}, outcomes)
	handler.AssertExpectations(t)
}

func TestRetryReschedulerJob_RunOnce_ReadError(t *testing.T) {
	ctx := t.Context()
	reader := new(MockDueForRetryReader)
	handler := new(MockStatusTransitioner)
	reader.On("Handle", ctx, mock.Anything).Return(nil, errs.NewInfrastructureError("read", errors.New("down"))).Once()

	_, err := newTestJob(reader, handler).RunOnce(ctx)

	require.ErrorIs(t, err, errs.ErrInfrastructure)
	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestRetryReschedulerJob_Start_InvalidSchedule(t *testing.T) {
	job := NewRetryReschedulerJob(new(MockDueForRetryReader), new(MockStatusTransitioner), "every now and then", 0, nil)

	require.Error(t, job.Start())
}

func TestJobManager_StartAndStop(t *testing.T) {
	manager := NewJobManager(Config{}, new(MockDueForRetryReader), new(MockStatusTransitioner), nil)

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
