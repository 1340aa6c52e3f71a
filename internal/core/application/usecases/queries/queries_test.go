package queries_test

import (
	"testing"
	"time"

	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetPackageDetailsQuery(t *testing.T) {
	query, err := queries.NewGetPackageDetailsQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())

	_, err = queries.NewGetPackageDetailsQuery(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewGetPackageByTrackingIDQuery("   ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetPackageDetailsQuery_NotConstructedViaConstructor(t *testing.T) {
	err := queries.GetPackageDetailsQuery{}.Validate()
	assert.ErrorIs(t, err, queries.ErrGetPackageDetailsQueryIsNotConstructed)
}

func TestNewGetPackagesDueForRetryQuery_Limit(t *testing.T) {
	testCases := []struct {
		name  string
		limit int
		ok    bool
	}{
		{name: "zero", limit: 0},
		{name: "negative", limit: -1},
		{name: "above page", limit: 501},
		{name: "one", limit: 1, ok: true},
		{name: "full page", limit: 500, ok: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := queries.NewGetPackagesDueForRetryQuery(time.Now(), tc.limit)
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		})
	}
}

func TestNewGetBranchLoadQuery_RequiresCompany(t *testing.T) {
	_, err := queries.NewGetBranchLoadQuery(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	err = queries.GetBranchLoadQuery{}.Validate()
	require.ErrorIs(t, err, queries.ErrGetBranchLoadQueryIsNotConstructed)
}

func TestNewGetPackageRoutesQuery_RequiresPackage(t *testing.T) {
	_, err := queries.NewGetPackageRoutesQuery(kernel.UUID{}, false)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewGetRouteDetailsQuery(t *testing.T) {
	query, err := queries.NewGetRouteDetailsQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())

	_, err = queries.NewGetRouteDetailsQuery(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	assert.ErrorIs(t, queries.GetRouteDetailsQuery{}.Validate(), queries.ErrGetRouteDetailsQueryIsNotConstructed)
}
