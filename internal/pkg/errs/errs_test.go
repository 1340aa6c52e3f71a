package errs_test

import (
	"errors"
	"testing"

	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("packageId", "123")

		assert.Equal(t, "packageId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("row was deleted")
		err := errs.NewObjectNotFoundErrorWithCause("packageId", "123", cause)

		assert.Equal(t, "packageId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: packageId, ID is: 123 (cause: row was deleted)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("stopIndex", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("trackingId")

		assert.Equal(t, "trackingId", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: trackingId", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing PKG- prefix")
		err := errs.NewValueIsInvalidErrorWithCause("trackingId", cause)

		assert.Equal(t, "trackingId", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: trackingId (cause: missing PKG- prefix)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("maxAttempts", 150, 1, 20)

		assert.Equal(t, "maxAttempts", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 20, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is maxAttempts, min value is 1, max value is 20", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("capacityLimit", -5, 0, 100, cause)

		assert.Equal(t, "capacityLimit", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is capacityLimit, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("notes", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("recipientName")

		assert.Equal(t, "recipientName", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: recipientName", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("recipientName", cause)

		assert.Equal(t, "recipientName", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: recipientName (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestPreconditionFailedError(t *testing.T) {
	t.Run("NewPreconditionFailedError", func(t *testing.T) {
		err := errs.NewPreconditionFailedError("transition package", "status is delivered")

		assert.Equal(t, "transition package", err.Operation)
		assert.Equal(t, "status is delivered", err.Reason)
		require.NoError(t, err.Cause)
		assert.Equal(t, "precondition failed: cannot transition package: status is delivered", err.Error())
		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("NewPreconditionFailedErrorWithCause keeps both sentinels reachable", func(t *testing.T) {
		cause := errors.New("branch is full")
		err := errs.NewPreconditionFailedErrorWithCause("admit package", "no capacity", cause)

		assert.Equal(t,
			"precondition failed: cannot admit package: no capacity (cause: branch is full)",
			err.Error())
		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
		require.ErrorIs(t, err, cause)
	})
}

func TestConflictError(t *testing.T) {
	t.Run("NewConflictError", func(t *testing.T) {
		err := errs.NewConflictError("package", "42")

		assert.Equal(t, "package", err.Entity)
		assert.Equal(t, "conflict: package 42 was modified by another transaction", err.Error())
		assert.Equal(t, errs.ErrConflict, err.Unwrap())
	})

	t.Run("NewConflictErrorWithCause", func(t *testing.T) {
		cause := errors.New("version 3 expected")
		err := errs.NewConflictErrorWithCause("route", "7", cause)

		assert.Equal(t,
			"conflict: route 7 was modified by another transaction (cause: version 3 expected)",
			err.Error())
		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestInfrastructureError(t *testing.T) {
	cause := errors.New("connection refused")
	err := errs.NewInfrastructureError("update package", cause)

	assert.Equal(t, "infrastructure failure: update package (cause: connection refused)", err.Error())
	require.ErrorIs(t, err, errs.ErrInfrastructure)
	require.ErrorIs(t, err, cause)
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrPreconditionFailed)
		require.Error(t, errs.ErrConflict)
		require.Error(t, errs.ErrInfrastructure)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "precondition failed", errs.ErrPreconditionFailed.Error())
		assert.Equal(t, "conflict", errs.ErrConflict.Error())
		assert.Equal(t, "infrastructure failure", errs.ErrInfrastructure.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("packageId", "123")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("trackingId")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("maxAttempts", 150, 1, 20)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("recipientName")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)

		conflictErr := errs.NewConflictError("package", "1")
		require.ErrorIs(t, conflictErr, errs.ErrConflict)
	})
}
