package parcelrepo_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"shipping/internal/adapters/out/postgres/parcelrepo"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/pkg/errs"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

func newMockRepository(t *testing.T) (*parcelrepo.GormParcelRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return parcelrepo.NewGormParcelRepository(gormDB, new(MockAggregateTracker)), sqlMock, mockDB
}

func newParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	point, err := kernel.NewGeoPoint(-34.6037, -58.3816)
	require.NoError(t, err)
	address, err := kernel.NewAddress("Av. Corrientes 1234", "Buenos Aires", "CABA", "C1043", &point)
	require.NoError(t, err)

	p, err := parcel.NewParcel(kernel.NewUUID(), parcel.Intake{
		ClientID:       kernel.NewUUID(),
		OriginBranchID: kernel.NewUUID(),
		RecipientName:  "Lucía Pérez",
		RecipientPhone: "+54 11 5555 0000",
		Destination:    address,
		Description:    "books",
		Weight:         decimal.RequireFromString("1.250"),
		TotalPrice:     decimal.RequireFromString("4500.00"),
		PaymentMethod:  parcel.PaymentCashOnDelivery,
	}, nil)
	require.NoError(t, err)
	return p
}

func TestGormParcelRepository_Update_StaleVersion(t *testing.T) {
	repo, sqlMock, mockDB := newMockRepository(t)
	defer mockDB.Close()
	p := newParcel(t)

	sqlMock.ExpectExec(`UPDATE "packages" SET .*WHERE id = \$\d+ AND version = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	sqlMock.ExpectQuery(`SELECT count\(\*\) FROM "packages" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := repo.Update(context.Background(), p)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestGormParcelRepository_Update_Missing(t *testing.T) {
	repo, sqlMock, mockDB := newMockRepository(t)
	defer mockDB.Close()
	p := newParcel(t)

	sqlMock.ExpectExec(`UPDATE "packages" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	sqlMock.ExpectQuery(`SELECT count\(\*\) FROM "packages"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err := repo.Update(context.Background(), p)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.NotErrorIs(t, err, errs.ErrConflict)
}

func TestGormParcelRepository_Update_Outage(t *testing.T) {
	repo, sqlMock, mockDB := newMockRepository(t)
	defer mockDB.Close()

	sqlMock.ExpectExec(`UPDATE "packages" SET`).WillReturnError(errors.New("too many connections"))

	err := repo.Update(context.Background(), newParcel(t))

	require.ErrorIs(t, err, errs.ErrInfrastructure)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

