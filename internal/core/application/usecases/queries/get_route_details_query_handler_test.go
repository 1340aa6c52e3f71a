package queries_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/route"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRouteReader struct {
	mock.Mock
}

func (m *MockRouteReader) Get(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*route.Route), args.Error(1)
	}
	return nil, args.Error(1)
}

func newActiveRoute(t *testing.T, now time.Time, stops int) *route.Route {
	t.Helper()
	plans := make([]route.StopPlan, 0, stops)
	for i := range stops {
		plans = append(plans, route.StopPlan{
			Order:      i + 1,
			Action:     route.ActionDelivery,
			PackageIDs: []kernel.UUID{kernel.NewUUID()},
		})
	}
	r, err := route.NewRoute(kernel.NewUUID(), kernel.NewUUID(), now, now.Add(3*time.Hour), plans)
	require.NoError(t, err)
	require.NoError(t, r.Start(now))
	return r
}

func TestGetRouteDetailsQueryHandler_Handle_CurrentAndNextStop(t *testing.T) {
	now := time.Now().UTC()
	r := newActiveRoute(t, now, 3)
	require.NoError(t, r.SkipStop(0, "road closed", now.Add(time.Minute)))

	reader := new(MockRouteReader)
	reader.On("Get", mock.Anything, r.ID()).Return(r, nil).Once()

	query, err := queries.NewGetRouteDetailsQuery(r.ID())
	require.NoError(t, err)
	details, err := queries.NewGetRouteDetailsQueryHandler(reader).Handle(t.Context(), query)

	require.NoError(t, err)
	assert.Equal(t, 1, details.CurrentStopIndex)
	assert.Equal(t, 1, details.SkippedStops)
	assert.InDelta(t, 100.0/3, details.ProgressPercentage, 0.001)
	require.NotNil(t, details.CurrentStop)
	assert.Equal(t, 1, details.CurrentStop.Position)
	assert.Equal(t, "pending", details.CurrentStop.Status)
	require.NotNil(t, details.NextStop)
	assert.Equal(t, 2, details.NextStop.Position)
	assert.Equal(t, kernel.UUIDStrings(r.Stops()[0].PackageIDs()),
		kernel.UUIDStrings(details.Stops[0].SkippedPackages))
	reader.AssertExpectations(t)
}

func TestGetRouteDetailsQueryHandler_Handle_PastLastStop(t *testing.T) {
	now := time.Now().UTC()
	r := newActiveRoute(t, now, 1)
	require.NoError(t, r.CompleteStop(0, r.Stops()[0].PackageIDs(), nil, "", now.Add(time.Minute)))

	reader := new(MockRouteReader)
	reader.On("Get", mock.Anything, r.ID()).Return(r, nil).Once()

	query, err := queries.NewGetRouteDetailsQuery(r.ID())
	require.NoError(t, err)
	details, err := queries.NewGetRouteDetailsQueryHandler(reader).Handle(t.Context(), query)

	require.NoError(t, err)
	assert.Equal(t, 1, details.CurrentStopIndex)
	assert.Equal(t, 1, details.CompletedStops)
	assert.InDelta(t, 100.0, details.ProgressPercentage, 0.001)
	assert.Nil(t, details.CurrentStop)
	assert.Nil(t, details.NextStop)
	reader.AssertExpectations(t)
}

func TestGetRouteDetailsQueryHandler_Handle_NotFound(t *testing.T) {
	id := kernel.NewUUID()
	reader := new(MockRouteReader)
	reader.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("route", id.String())).Once()

	query, err := queries.NewGetRouteDetailsQuery(id)
	require.NoError(t, err)
	_, err = queries.NewGetRouteDetailsQueryHandler(reader).Handle(t.Context(), query)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	reader.AssertExpectations(t)
}
