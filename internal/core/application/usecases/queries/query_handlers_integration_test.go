package queries_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/branchrepo"
	"shipping/internal/adapters/out/postgres/parcelrepo"
	"shipping/internal/adapters/out/postgres/routerepo"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/branch"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/core/domain/model/route"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type QueryHandlersTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	parcels   *parcelrepo.GormParcelRepository
	routes    *routerepo.GormRouteRepository
	branches  *branchrepo.GormBranchRepository
}

func (suite *QueryHandlersTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&branchrepo.BranchDTO{},
		&parcelrepo.ParcelDTO{}, &parcelrepo.IssueDTO{}, &parcelrepo.TrackingEventDTO{},
		&routerepo.RouteDTO{}, &routerepo.StopDTO{}, &routerepo.RoutePackageDTO{},
	))

	suite.parcels = parcelrepo.NewGormParcelRepository(db, noopTracker{})
	suite.routes = routerepo.NewGormRouteRepository(db, noopTracker{})
	suite.branches = branchrepo.NewGormBranchRepository(db, noopTracker{})
}

func (suite *QueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersTestSuite) SetupTest() {
	err := suite.db.Exec(`TRUNCATE TABLE branches, packages, package_issues, package_tracking_events,
		routes, route_stops, route_packages CASCADE`).Error
	suite.Require().NoError(err)
}

func (suite *QueryHandlersTestSuite) storeParcel() *parcel.Parcel {
	address, err := kernel.NewAddress("San Martín 455", "Rosario", "Santa Fe", "S2000", nil)
	suite.Require().NoError(err)
	p, err := parcel.NewParcel(kernel.NewUUID(), parcel.Intake{
		ClientID:       kernel.NewUUID(),
		OriginBranchID: kernel.NewUUID(),
		RecipientName:  "Tomás Acosta",
		Destination:    address,
		Weight:         decimal.RequireFromString("0.8"),
		TotalPrice:     decimal.RequireFromString("2100"),
		PaymentMethod:  parcel.PaymentCash,
		MaxAttempts:    3,
	}, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.parcels.Add(context.Background(), p))
	return p
}

func (suite *QueryHandlersTestSuite) TestPackageDetails_HistoryAndIssues() {
	ctx := context.Background()
	p := suite.storeParcel()
	_, err := p.ReportIssue(parcel.IssueWrongAddress, "street number missing", parcel.PriorityHigh, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.parcels.Update(ctx, p))

	query, err := queries.NewGetPackageByTrackingIDQuery(p.TrackingID())
	suite.Require().NoError(err)
	details, err := queries.NewGetPackageDetailsQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(p.ID(), details.ID)
	suite.Equal("pending", details.Status)
	suite.Equal(3, details.RemainingAttempts)
	suite.Len(details.History, 2)
	suite.Require().Len(details.Issues, 1)
	suite.Equal("wrong_address", details.Issues[0].Type)
	suite.False(details.Issues[0].Resolved)
	suite.Equal(1, details.OpenIssues)
	suite.True(decimal.RequireFromString("2100").Equal(details.TotalPrice))
}

func (suite *QueryHandlersTestSuite) TestPackagesDueForRetry() {
	ctx := context.Background()
	due := suite.storeParcel()
	later := suite.storeParcel()

	past := time.Now().UTC().Add(-time.Hour)
	future := time.Now().UTC().Add(time.Hour)
	suite.Require().NoError(due.TransitionStatus(parcel.FailedDelivery, nil, parcel.TransitionOptions{NextAttemptDate: &past}))
	suite.Require().NoError(later.TransitionStatus(parcel.FailedDelivery, nil, parcel.TransitionOptions{NextAttemptDate: &future}))
	suite.Require().NoError(suite.parcels.Update(ctx, due))
	suite.Require().NoError(suite.parcels.Update(ctx, later))

	query, err := queries.NewGetPackagesDueForRetryQuery(time.Now(), 10)
	suite.Require().NoError(err)
	result, err := queries.NewGetPackagesDueForRetryQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(due.ID(), result[0].ID)
	suite.Equal(1, result[0].AttemptCount)
}

func (suite *QueryHandlersTestSuite) TestBranchLoad() {
	ctx := context.Background()
	companyID := kernel.NewUUID()
	limit := 2
	b, err := branch.NewBranch(kernel.NewUUID(), companyID, "Bahía Blanca", &limit)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.branches.Add(ctx, b))
	suite.Require().NoError(suite.branches.TryAdmit(ctx, b.ID()))

	query, err := queries.NewGetBranchLoadQuery(companyID)
	suite.Require().NoError(err)
	loads, err := queries.NewGetBranchLoadQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(loads, 1)
	suite.Equal(1, loads[0].CurrentLoad)
	suite.Equal(1, *loads[0].Available)
	suite.InDelta(50.0, loads[0].UtilizationPercentage, 0.001)
}

func (suite *QueryHandlersTestSuite) TestPackageRoutes() {
	ctx := context.Background()
	p := suite.storeParcel()
	start := time.Now().UTC().Add(time.Hour)

	active, err := route.NewRoute(kernel.NewUUID(), kernel.NewUUID(), start, start.Add(5*time.Hour), []route.StopPlan{
		{Order: 1, Action: route.ActionPickup, PackageIDs: []kernel.UUID{kernel.NewUUID()}},
		{Order: 2, Action: route.ActionDelivery, PackageIDs: []kernel.UUID{p.ID()}},
	})
	suite.Require().NoError(err)
	cancelled, err := route.NewRoute(kernel.NewUUID(), kernel.NewUUID(), start, start.Add(5*time.Hour), []route.StopPlan{
		{Order: 1, Action: route.ActionDelivery, PackageIDs: []kernel.UUID{p.ID()}},
	})
	suite.Require().NoError(err)
	suite.Require().NoError(cancelled.Cancel("vehicle unavailable", time.Now().UTC()))
	suite.Require().NoError(suite.routes.Add(ctx, active))
	suite.Require().NoError(suite.routes.Add(ctx, cancelled))

	query, err := queries.NewGetPackageRoutesQuery(p.ID(), false)
	suite.Require().NoError(err)
	result, err := queries.NewGetPackageRoutesQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(active.ID(), result[0].RouteID)
	suite.Equal(1, result[0].StopPosition)
	suite.Equal(2, result[0].TotalStops)
	suite.Equal("delivery", result[0].StopAction)

	query, err = queries.NewGetPackageRoutesQuery(p.ID(), true)
	suite.Require().NoError(err)
	result, err = queries.NewGetPackageRoutesQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Len(result, 2)
}

func (suite *QueryHandlersTestSuite) TestRouteDetails() {
	ctx := context.Background()
	served, attempted, passed := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	start := time.Now().UTC().Add(-time.Hour)
	address, err := kernel.NewAddress("Sarmiento 1020", "Rosario", "Santa Fe", "S2000", nil)
	suite.Require().NoError(err)

	r, err := route.NewRoute(kernel.NewUUID(), kernel.NewUUID(), start, start.Add(4*time.Hour), []route.StopPlan{
		{Order: 1, Action: route.ActionDelivery, PackageIDs: []kernel.UUID{served}},
		{Order: 2, Action: route.ActionDelivery, PackageIDs: []kernel.UUID{attempted, passed}, Address: &address},
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.routes.Add(ctx, r))

	handler := queries.NewGetRouteDetailsQueryHandler(suite.routes)
	query, err := queries.NewGetRouteDetailsQuery(r.ID())
	suite.Require().NoError(err)

	loaded, err := suite.routes.Get(ctx, r.ID())
	suite.Require().NoError(err)
	now := time.Now().UTC()
	suite.Require().NoError(loaded.Start(now))
	suite.Require().NoError(suite.routes.Update(ctx, loaded))

	details, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal("active", details.Status)
	suite.Equal(0, details.CurrentStopIndex)
	suite.Require().NotNil(details.CurrentStop)
	suite.Equal(1, details.CurrentStop.Order)
	suite.Require().NotNil(details.NextStop)
	suite.Equal(2, details.NextStop.Order)
	suite.Zero(details.ProgressPercentage)

	loaded, err = suite.routes.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.CompleteStop(0, []kernel.UUID{served}, nil, "", now.Add(time.Minute)))
	suite.Require().NoError(loaded.FailStop(1, "gate closed", []kernel.UUID{passed}, now.Add(2*time.Minute)))
	suite.Require().NoError(loaded.Complete("", now.Add(30*time.Minute)))
	suite.Require().NoError(suite.routes.Update(ctx, loaded))

	details, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal("completed", details.Status)
	suite.Equal(2, details.CurrentStopIndex)
	suite.Equal(1, details.CompletedStops)
	suite.Equal(1, details.FailedStops)
	suite.Zero(details.SkippedStops)
	suite.Equal(2, details.TotalStops)
	suite.InDelta(100.0, details.ProgressPercentage, 0.001)
	suite.Equal(30*time.Minute, details.ActualTime)
	suite.Nil(details.CurrentStop)
	suite.Nil(details.NextStop)

	suite.Require().Len(details.Stops, 2)
	suite.Equal("completed", details.Stops[0].Status)
	suite.Equal(kernel.UUIDStrings([]kernel.UUID{served}), kernel.UUIDStrings(details.Stops[0].CompletedPackages))
	suite.Equal("failed", details.Stops[1].Status)
	suite.Equal(kernel.UUIDStrings([]kernel.UUID{attempted}), kernel.UUIDStrings(details.Stops[1].FailedPackages))
	suite.Equal(kernel.UUIDStrings([]kernel.UUID{passed}), kernel.UUIDStrings(details.Stops[1].SkippedPackages))
	suite.Equal("Sarmiento 1020", details.Stops[1].Street)
}

func TestQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersTestSuite))
}
