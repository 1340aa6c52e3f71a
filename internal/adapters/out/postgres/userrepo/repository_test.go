package userrepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/userrepo"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestGormUserRepository_RecordShipment(t *testing.T) {
	testCases := []struct {
		name    string
		expect  func(sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "known client",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(`UPDATE "users" SET .*shipment_count.*WHERE id = \$\d+`).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "unknown client",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(`UPDATE "users" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: errs.ErrObjectNotFound,
		},
		{
			name: "database down",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(`UPDATE "users" SET`).WillReturnError(errors.New("dial tcp: connection refused"))
			},
			wantErr: errs.ErrInfrastructure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockDB, sqlMock, err := sqlmock.New()
			require.NoError(t, err)
			defer mockDB.Close()
			gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}),
				&gorm.Config{SkipDefaultTransaction: true})
			require.NoError(t, err)
			tc.expect(sqlMock)

			err = userrepo.NewGormUserRepository(gormDB).RecordShipment(context.Background(), kernel.NewUUID(), time.Now())

			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.wantErr)
			}
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})
	}
}
