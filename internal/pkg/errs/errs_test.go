package errs_test

import (
	"errors"
	"testing"

	"ecommerce/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("userId", "123")

		assert.Equal(t, "userId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("sanitizes newlines in IDs", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("productId", "wid\nget")
		assert.Contains(t, err.Error(), "wid get")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("quantity")

		assert.Equal(t, "quantity", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: quantity", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("must be greater than 0")
		err := errs.NewValueIsInvalidErrorWithCause("quantity", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: quantity (cause: must be greater than 0)", err.Error())
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("order items")

	assert.Equal(t, "order items", err.ParamName)
	assert.Equal(t, "value is required: order items", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
}

func TestInvalidStateError(t *testing.T) {
	err := errs.NewInvalidStateError("order", "o-1", "Delivered", "Pending")

	assert.Equal(t, "order", err.Entity)
	assert.Equal(t, "invalid state: order o-1 is Delivered, expected Pending", err.Error())
	assert.Equal(t, errs.ErrInvalidState, err.Unwrap())
}

func TestUnauthorizedError(t *testing.T) {
	err := errs.NewUnauthorizedError("order", "o-1", "u-2")

	assert.Equal(t, "unauthorized: order o-1 does not belong to user u-2", err.Error())
	assert.Equal(t, errs.ErrUnauthorized, err.Unwrap())
}

func TestInsufficientStockError(t *testing.T) {
	err := errs.NewInsufficientStockError("widget", "p-1", 3, 2)

	assert.Equal(t, "widget", err.ProductName)
	assert.Equal(t, 3, err.Requested)
	assert.Equal(t, 2, err.Available)
	assert.Equal(t, "insufficient stock for product widget: requested 3, available 2", err.Error())
	assert.Equal(t, errs.ErrInsufficientStock, err.Unwrap())
}

func TestGatewayError(t *testing.T) {
	t.Run("declined is not transient", func(t *testing.T) {
		err := errs.NewGatewayDeclinedError("card declined", nil)

		assert.False(t, err.Transient)
		assert.Equal(t, "payment declined: card declined", err.Error())
		require.ErrorIs(t, err, errs.ErrGatewayDeclined)
		require.NotErrorIs(t, err, errs.ErrGatewayUnavailable)
	})

	t.Run("unavailable is transient", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewGatewayUnavailableError("network error", cause)

		assert.True(t, err.Transient)
		assert.Equal(t, "payment gateway unavailable: network error (cause: connection reset)", err.Error())
		require.ErrorIs(t, err, errs.ErrGatewayUnavailable)
		require.NotErrorIs(t, err, errs.ErrGatewayDeclined)
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("userId", "123"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewValueIsInvalidError("quantity"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsRequiredError("items"), errs.ErrValueIsRequired)
		require.ErrorIs(t, errs.NewInvalidStateError("order", "1", "Paid", "Pending"), errs.ErrInvalidState)
		require.ErrorIs(t, errs.NewUnauthorizedError("order", "1", "2"), errs.ErrUnauthorized)
		require.ErrorIs(t, errs.NewInsufficientStockError("widget", "1", 3, 2), errs.ErrInsufficientStock)
	})
}
