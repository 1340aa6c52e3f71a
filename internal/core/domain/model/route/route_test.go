package route_test

import (
	"testing"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/route"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

type fixture struct {
	route    *route.Route
	packages [3]kernel.UUID
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{packages: [3]kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}}
	r, err := route.NewRoute(kernel.NewUUID(), kernel.NewUUID(), t0, t0.Add(8*time.Hour), []route.StopPlan{
		{Order: 3, Action: route.ActionDelivery, PackageIDs: []kernel.UUID{f.packages[2]}, EstimatedTravel: 20 * time.Minute},
		{Order: 1, Action: route.ActionPickup, PackageIDs: []kernel.UUID{f.packages[0]}, EstimatedTravel: 10 * time.Minute},
		{Order: 2, Action: route.ActionDelivery, PackageIDs: []kernel.UUID{f.packages[1], f.packages[1]}, EstimatedTravel: 15 * time.Minute},
	})
	require.NoError(t, err)
	f.route = r
	return f
}

func started(t *testing.T) fixture {
	t.Helper()
	f := newFixture(t)
	require.NoError(t, f.route.Start(t0))
	f.route.ClearDomainEvents()
	return f
}

func TestNewRoute(t *testing.T) {
	t.Run("should sort stops and start planned", func(t *testing.T) {
		f := newFixture(t)

		require.NoError(t, f.route.Validate())
		assert.Equal(t, route.Planned, f.route.Status())
		stops := f.route.Stops()
		require.Len(t, stops, 3)
		assert.Equal(t, []int{1, 2, 3}, []int{stops[0].Order(), stops[1].Order(), stops[2].Order()})
		assert.Len(t, stops[1].PackageIDs(), 1)
		assert.Len(t, f.route.PackageIDs(), 3)
	})

	t.Run("should reject duplicate orders", func(t *testing.T) {
		r, err := route.NewRoute(kernel.NewUUID(), kernel.NewUUID(), t0, t0.Add(time.Hour), []route.StopPlan{
			{Order: 1, Action: route.ActionDelivery},
			{Order: 1, Action: route.ActionPickup},
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, r)
		assert.Contains(t, err.Error(), "order 1")
	})

	t.Run("should reject empty stops and bad schedule", func(t *testing.T) {
		_, err := route.NewRoute(kernel.NewUUID(), kernel.NewUUID(), t0, t0.Add(-time.Hour), nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "stops")
		assert.Contains(t, err.Error(), "scheduledEnd")
	})

	t.Run("should reject unknown action", func(t *testing.T) {
		_, err := route.NewRoute(kernel.NewUUID(), kernel.NewUUID(), t0, t0.Add(time.Hour), []route.StopPlan{
			{Order: 1, Action: "fly"},
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRoute_Start(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.route.Assign(kernel.NewUUID(), kernel.NewUUID(), nil, t0))
	assert.Equal(t, route.Assigned, f.route.Status())

	require.NoError(t, f.route.Start(t0))

	assert.Equal(t, route.Active, f.route.Status())
	assert.Equal(t, t0, *f.route.ActualStart())
	current, ok := f.route.CurrentStop()
	require.True(t, ok)
	assert.Equal(t, route.StopPending, current.Status())
	assert.Equal(t, t0.Add(10*time.Minute), *current.ExpectedArrival())

	events := f.route.DomainEvents()
	require.Len(t, events, 1)
	startedEvent, isStarted := events[0].(route.StartedEvent)
	require.True(t, isStarted)
	assert.Len(t, startedEvent.Stops, 3)

	require.ErrorIs(t, f.route.Start(t0), errs.ErrPreconditionFailed)
	require.ErrorIs(t, f.route.Assign(kernel.NewUUID(), kernel.NewUUID(), nil, t0), errs.ErrPreconditionFailed)
}

func TestRoute_CompleteStopOutOfOrderIsRejected(t *testing.T) {
	f := started(t)

	err := f.route.CompleteStop(1, nil, nil, "", t0.Add(time.Minute))

	require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	assert.Equal(t, 0, f.route.CurrentStopIndex())
	assert.Equal(t, 0, f.route.CompletedStops())
	assert.Empty(t, f.route.DomainEvents())
}

func TestRoute_CompleteStop(t *testing.T) {
	t.Run("should record outcomes and prime the next stop", func(t *testing.T) {
		f := started(t)
		at := t0.Add(12 * time.Minute)

		require.NoError(t, f.route.CompleteStop(0, []kernel.UUID{f.packages[0], f.packages[0]}, nil, "ok", at))

		stops := f.route.Stops()
		assert.Equal(t, route.StopCompleted, stops[0].Status())
		assert.Len(t, stops[0].CompletedPackages(), 1)
		assert.Equal(t, at, *stops[0].ActualArrival())
		assert.Equal(t, 1, f.route.CurrentStopIndex())
		assert.Equal(t, 1, f.route.CompletedStops())
		assert.Equal(t, at.Add(15*time.Minute), *stops[1].ExpectedArrival())
	})

	t.Run("should reject foreign packages", func(t *testing.T) {
		f := started(t)

		err := f.route.CompleteStop(0, []kernel.UUID{f.packages[1]}, nil, "", t0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, 0, f.route.CurrentStopIndex())
	})

	t.Run("should reject a package both completed and failed", func(t *testing.T) {
		f := started(t)

		err := f.route.CompleteStop(0, []kernel.UUID{f.packages[0]}, []kernel.UUID{f.packages[0]}, "", t0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject when paused", func(t *testing.T) {
		f := started(t)
		require.NoError(t, f.route.Pause(t0))

		require.ErrorIs(t, f.route.CompleteStop(0, nil, nil, "", t0), errs.ErrPreconditionFailed)
	})
}

func TestRoute_FailAndSkipAdvance(t *testing.T) {
	f := started(t)

	require.NoError(t, f.route.SkipStop(0, "gate closed", t0.Add(5*time.Minute)))
	require.NoError(t, f.route.FailStop(1, "nobody home", nil, t0.Add(30*time.Minute)))

	assert.Equal(t, 2, f.route.CurrentStopIndex())
	assert.Equal(t, 1, f.route.SkippedStops())
	assert.Equal(t, 1, f.route.FailedStops())
	stops := f.route.Stops()
	assert.Equal(t, []kernel.UUID{f.packages[0]}, stops[0].SkippedPackages())
	assert.Equal(t, []kernel.UUID{f.packages[1]}, stops[1].FailedPackages())
	assert.Empty(t, stops[1].SkippedPackages())

	current, ok := f.route.CurrentStop()
	require.True(t, ok)
	assert.Equal(t, 3, current.Order())
	_, hasNext := f.route.NextStop()
	assert.False(t, hasNext)

	require.ErrorIs(t, f.route.FailStop(2, " ", nil, t0), errs.ErrValueIsRequired)
}

func TestRoute_FailStopRecordsSkippedPackages(t *testing.T) {
	served, passed := kernel.NewUUID(), kernel.NewUUID()
	newStarted := func(t *testing.T) *route.Route {
		t.Helper()
		r, err := route.NewRoute(kernel.NewUUID(), kernel.NewUUID(), t0, t0.Add(time.Hour), []route.StopPlan{
			{Order: 1, Action: route.ActionDelivery, PackageIDs: []kernel.UUID{served, passed}},
		})
		require.NoError(t, err)
		require.NoError(t, r.Start(t0))
		r.ClearDomainEvents()
		return r
	}

	t.Run("should split skipped and failed packages", func(t *testing.T) {
		r := newStarted(t)

		require.NoError(t, r.FailStop(0, "gate closed", []kernel.UUID{passed}, t0.Add(10*time.Minute)))

		stop := r.Stops()[0]
		assert.Equal(t, route.StopFailed, stop.Status())
		assert.Equal(t, []kernel.UUID{passed}, stop.SkippedPackages())
		assert.Equal(t, []kernel.UUID{served}, stop.FailedPackages())
		assert.Equal(t, 1, r.FailedStops())
		assert.Equal(t, 0, r.SkippedStops())

		events := r.DomainEvents()
		require.Len(t, events, 1)
		failed, ok := events[0].(route.StopFailedEvent)
		require.True(t, ok)
		assert.Equal(t, []kernel.UUID{served}, failed.Failed)
		assert.Equal(t, []kernel.UUID{passed}, failed.Skipped)
	})

	t.Run("should fail every package when none is skipped", func(t *testing.T) {
		r := newStarted(t)

		require.NoError(t, r.FailStop(0, "nobody home", nil, t0))

		stop := r.Stops()[0]
		assert.Equal(t, []kernel.UUID{served, passed}, stop.FailedPackages())
		assert.Empty(t, stop.SkippedPackages())
	})

	t.Run("should reject a package of another stop", func(t *testing.T) {
		r := newStarted(t)

		err := r.FailStop(0, "gate closed", []kernel.UUID{kernel.NewUUID()}, t0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, 0, r.CurrentStopIndex())
	})
}

func TestRoute_PauseResume(t *testing.T) {
	f := newFixture(t)

	require.ErrorIs(t, f.route.Pause(t0), errs.ErrPreconditionFailed)
	require.ErrorIs(t, f.route.Resume(t0), errs.ErrPreconditionFailed)

	require.NoError(t, f.route.Start(t0))
	require.NoError(t, f.route.Pause(t0))
	require.ErrorIs(t, f.route.Pause(t0), errs.ErrPreconditionFailed)
	require.NoError(t, f.route.Resume(t0))
	assert.Equal(t, route.Active, f.route.Status())
}

func TestRoute_Complete(t *testing.T) {
	t.Run("should skip unreached stops and measure punctuality", func(t *testing.T) {
		f := started(t)
		require.NoError(t, f.route.ArriveAtStop(0, t0.Add(5*time.Minute)))
		require.NoError(t, f.route.CompleteStop(0, []kernel.UUID{f.packages[0]}, nil, "", t0.Add(6*time.Minute)))
		require.NoError(t, f.route.CompleteStop(1, []kernel.UUID{f.packages[1]}, nil, "", t0.Add(60*time.Minute)))

		end := t0.Add(2 * time.Hour)
		require.NoError(t, f.route.Complete("done", end))

		assert.Equal(t, route.Completed, f.route.Status())
		assert.Equal(t, 2*time.Hour, f.route.ActualTime())
		assert.Equal(t, 1, f.route.SkippedStops())
		assert.Equal(t, 3, f.route.CompletedStops()+f.route.FailedStops()+f.route.SkippedStops())
		assert.InDelta(t, 0.5, f.route.OnTimePerformance(), 0.0001)
		assert.InDelta(t, 100, f.route.ProgressPercentage(), 0.0001)
		_, ok := f.route.CurrentStop()
		assert.False(t, ok)

		var skipped []route.StopSkippedEvent
		for _, e := range f.route.DomainEvents() {
			if s, isSkip := e.(route.StopSkippedEvent); isSkip {
				skipped = append(skipped, s)
			}
		}
		require.Len(t, skipped, 1)
		assert.Equal(t, []kernel.UUID{f.packages[2]}, skipped[0].Packages)
		assert.Equal(t, []kernel.UUID{f.packages[2]}, f.route.Stops()[2].SkippedPackages())
	})

	t.Run("should not complete a planned route", func(t *testing.T) {
		f := newFixture(t)

		require.ErrorIs(t, f.route.Complete("", t0), errs.ErrPreconditionFailed)
	})
}

func TestRoute_Cancel(t *testing.T) {
	f := started(t)

	require.ErrorIs(t, f.route.Cancel("", t0), errs.ErrValueIsRequired)
	require.NoError(t, f.route.Cancel("vehicle broke down", t0))
	assert.Equal(t, route.Cancelled, f.route.Status())
	require.ErrorIs(t, f.route.Cancel("again", t0), errs.ErrPreconditionFailed)
}

func TestRoute_ReorderStops(t *testing.T) {
	t.Run("should apply a permutation and renumber", func(t *testing.T) {
		f := newFixture(t)

		require.NoError(t, f.route.ReorderStops([]int{3, 1, 2}, t0))

		stops := f.route.Stops()
		assert.Equal(t, f.packages[2], stops[0].PackageIDs()[0])
		assert.Equal(t, []int{1, 2, 3}, []int{stops[0].Order(), stops[1].Order(), stops[2].Order()})
	})

	t.Run("should reject partial and duplicate orderings", func(t *testing.T) {
		f := newFixture(t)

		require.ErrorIs(t, f.route.ReorderStops([]int{1, 2}, t0), errs.ErrValueIsInvalid)
		require.ErrorIs(t, f.route.ReorderStops([]int{1, 1, 2}, t0), errs.ErrValueIsInvalid)
		assert.Equal(t, 1, f.route.Stops()[0].Order())
	})

	t.Run("should reject once started", func(t *testing.T) {
		f := started(t)

		require.ErrorIs(t, f.route.ReorderStops([]int{3, 2, 1}, t0), errs.ErrPreconditionFailed)
	})
}
