package branchrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/branchrepo"
	"shipping/internal/core/domain/model/branch"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// BranchRepositoryIntegrationTestSuite runs the capacity ledger against a
// real PostgreSQL so the conditional updates are checked under contention.
type BranchRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *branchrepo.GormBranchRepository
	tracker    *MockAggregateTracker
}

func (suite *BranchRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&branchrepo.BranchDTO{}))
}

func (suite *BranchRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE branches").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = branchrepo.NewGormBranchRepository(suite.db, suite.tracker)
}

func (suite *BranchRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *BranchRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	b := suite.addBranch(intPtr(5))

	got, err := suite.repository.Get(ctx, b.ID())
	suite.Require().NoError(err)

	suite.Equal(b.Name(), got.Name())
	suite.Equal(branch.Active, got.Status())
	suite.Equal(5, *got.CapacityLimit())
	suite.Equal(0, got.CurrentLoad())
	suite.Equal(1, got.Version())
}

func (suite *BranchRepositoryIntegrationTestSuite) TestGet_Unknown() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *BranchRepositoryIntegrationTestSuite) TestTryAdmit_StopsAtLimit() {
	ctx := context.Background()
	b := suite.addBranch(intPtr(2))

	suite.Require().NoError(suite.repository.TryAdmit(ctx, b.ID()))
	suite.Require().NoError(suite.repository.TryAdmit(ctx, b.ID()))

	err := suite.repository.TryAdmit(ctx, b.ID())
	suite.ErrorIs(err, branch.ErrBranchAtCapacity)
	suite.Equal(2, suite.load(b.ID()))
}

func (suite *BranchRepositoryIntegrationTestSuite) TestTryAdmit_InactiveBranch() {
	ctx := context.Background()
	b := suite.addBranch(nil)
	suite.Require().NoError(suite.db.Exec("UPDATE branches SET status = 'inactive' WHERE id = ?", b.ID().Bytes()).Error)

	err := suite.repository.TryAdmit(ctx, b.ID())

	suite.ErrorIs(err, branch.ErrBranchInactive)
	suite.Equal(0, suite.load(b.ID()))
}

func (suite *BranchRepositoryIntegrationTestSuite) TestTryAdmit_ConcurrentCallersNeverOverfill() {
	ctx := context.Background()
	b := suite.addBranch(intPtr(10))

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0
	for range 25 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := suite.repository.TryAdmit(ctx, b.ID()); err == nil {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	suite.Equal(10, admitted)
	suite.Equal(10, suite.load(b.ID()))
}

func (suite *BranchRepositoryIntegrationTestSuite) TestRelease_NeverBelowZero() {
	ctx := context.Background()
	b := suite.addBranch(nil)
	suite.Require().NoError(suite.repository.TryAdmit(ctx, b.ID()))

	suite.Require().NoError(suite.repository.Release(ctx, b.ID()))
	suite.Require().NoError(suite.repository.Release(ctx, b.ID()))

	suite.Equal(0, suite.load(b.ID()))
	suite.ErrorIs(suite.repository.Release(ctx, kernel.NewUUID()), errs.ErrObjectNotFound)
}

func (suite *BranchRepositoryIntegrationTestSuite) TestUpdateCapacity() {
	ctx := context.Background()
	b := suite.addBranch(intPtr(10))
	for range 4 {
		suite.Require().NoError(suite.repository.TryAdmit(ctx, b.ID()))
	}

	suite.ErrorIs(suite.repository.UpdateCapacity(ctx, b.ID(), intPtr(3)), branch.ErrCapacityBelowLoad)
	suite.Require().NoError(suite.repository.UpdateCapacity(ctx, b.ID(), intPtr(4)))

	got, err := suite.repository.Get(ctx, b.ID())
	suite.Require().NoError(err)
	suite.True(got.IsFull())

	suite.Require().NoError(suite.repository.UpdateCapacity(ctx, b.ID(), nil))
	got, err = suite.repository.Get(ctx, b.ID())
	suite.Require().NoError(err)
	suite.Nil(got.CapacityLimit())
	suite.False(got.IsFull())
}

func (suite *BranchRepositoryIntegrationTestSuite) addBranch(limit *int) *branch.Branch {
	b, err := branch.NewBranch(kernel.NewUUID(), kernel.NewUUID(), "Sucursal Norte", limit)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), b))
	return b
}

func (suite *BranchRepositoryIntegrationTestSuite) load(id kernel.UUID) int {
	var dto branchrepo.BranchDTO
	suite.Require().NoError(suite.db.First(&dto, "id = ?", id.Bytes()).Error)
	return dto.CurrentLoad
}

func intPtr(v int) *int {
	return &v
}

func TestBranchRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(BranchRepositoryIntegrationTestSuite))
}
