package kernel_test

import (
	"testing"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	point, err := kernel.NewGeoPoint(19.43, -99.13)
	require.NoError(t, err)

	t.Run("with geo point", func(t *testing.T) {
		a, err := kernel.NewAddress(" Av. Reforma 1 ", "CDMX", "CDMX", "06600", &point)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, "Av. Reforma 1", a.Street())
		assert.Equal(t, "CDMX", a.City())
		assert.Equal(t, "06600", a.PostalCode())
		require.NotNil(t, a.Point())
		assert.InDelta(t, 19.43, a.Point().Lat(), 1e-9)
	})

	t.Run("without geo point", func(t *testing.T) {
		a, err := kernel.NewAddress("Main St 5", "Springfield", "", "", nil)

		require.NoError(t, err)
		assert.Nil(t, a.Point())
	})

	t.Run("missing street and city", func(t *testing.T) {
		_, err := kernel.NewAddress("  ", "", "", "", nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "street")
		assert.Contains(t, err.Error(), "city")
	})

	t.Run("unconstructed geo point", func(t *testing.T) {
		var zero kernel.GeoPoint

		_, err := kernel.NewAddress("Main St 5", "Springfield", "", "", &zero)

		require.ErrorIs(t, err, kernel.ErrGeoPointIsNotConstructed)
	})
}
