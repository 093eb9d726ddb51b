package errs_test

import (
	"testing"

	"productos/internal/errs"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNotFoundErrorMessageContainsID(t *testing.T) {
	err := errs.NewNotFoundError("Producto", uint(1))
	assert.Equal(t, "Producto no encontrado con id: 1", err.Error())
}

func TestErrorsSurviveWrapping(t *testing.T) {
	wrapped := errors.Wrap(errs.NewNotFoundError("Producto", 7), "lookup")

	var notFound *errs.NotFoundError
	assert.True(t, errors.As(wrapped, &notFound))
	assert.Equal(t, 7, notFound.ID)
}

func TestValidationErrorLastMessageWins(t *testing.T) {
	v := errs.NewValidationError()
	assert.True(t, v.Empty())

	v.Add("stock", "first")
	v.Add("stock", "second")
	v.Add("name", "is required")

	assert.False(t, v.Empty())
	assert.Equal(t, "second", v.Fields["stock"])
	assert.Equal(t, "validation failed: name, stock", v.Error())
}

func TestInsufficientStockErrorMessages(t *testing.T) {
	order := errs.NewInsufficientStockError(3, "Widget", 5, 2)
	assert.Contains(t, order.Error(), "Widget")
	assert.Contains(t, order.Error(), "solicitado: 5")

	negative := errs.NewInsufficientStockError(3, "Widget", -1, 2)
	assert.Contains(t, negative.Error(), "negativo")
}
