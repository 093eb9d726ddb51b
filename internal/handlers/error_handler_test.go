package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productos/internal/errs"
	"productos/internal/models"
)

func TestTranslate(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	_, unknownCategory := models.ParseCategory("LIBROS")

	validation := errs.NewValidationError()
	validation.Add("name", "name is a required field")

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", errs.NewNotFoundError("Producto", uint(1)), fiber.StatusNotFound, "Producto no encontrado con id: 1"},
		{"wrapped not found", errors.Wrap(errs.NewNotFoundError("Producto", uint(2)), "service"), fiber.StatusNotFound, "Producto no encontrado con id: 2"},
		{"insufficient stock", errs.NewInsufficientStockError(1, "Widget", 5, 2), fiber.StatusBadRequest, "Stock insuficiente para el producto Widget (solicitado: 5, disponible: 2)"},
		{"bad request", errs.NewBadRequestError("id inválido: abc"), fiber.StatusBadRequest, "id inválido: abc"},
		{"unknown category", unknownCategory, fiber.StatusBadRequest, unknownCategory.Error()},
		{"unauthorized", errs.NewUnauthorizedError("token inválido"), fiber.StatusUnauthorized, "token inválido"},
		{"conflict", errs.NewConflictError("el usuario ya existe"), fiber.StatusConflict, "el usuario ya existe"},
		{"fiber error", fiber.NewError(fiber.StatusMethodNotAllowed, "Method Not Allowed"), fiber.StatusMethodNotAllowed, "Method Not Allowed"},
		{"unknown", fmt.Errorf("disk on fire"), fiber.StatusInternalServerError, "disk on fire"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := translate(tt.err, "/api/productos/1", now)
			assert.Equal(t, tt.status, status)

			resp, ok := body.(ErrorResponse)
			require.True(t, ok, "expected ErrorResponse, got %T", body)
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, tt.message, resp.Message)
			assert.Equal(t, "/api/productos/1", resp.Path)
			assert.Equal(t, now, resp.Timestamp)
		})
	}

	t.Run("validation", func(t *testing.T) {
		status, body := translate(validation, "/api/productos", now)
		assert.Equal(t, fiber.StatusBadRequest, status)

		resp, ok := body.(ValidationErrorResponse)
		require.True(t, ok)
		assert.Equal(t, fiber.StatusBadRequest, resp.Status)
		assert.Equal(t, map[string]string{"name": "name is a required field"}, resp.Errors)
	})

	t.Run("not found wins over wrapping message", func(t *testing.T) {
		err := fmt.Errorf("%w: while handling stock", errs.NewNotFoundError("Producto", uint(3)))
		status, _ := translate(err, "/", now)
		assert.Equal(t, fiber.StatusNotFound, status)
	})
}

func TestValidatorFieldKeys(t *testing.T) {
	v := NewValidator()
	negative := -1

	err := v.Struct(ProductInput{Stock: &negative, Category: "LIBROS"})
	var verr *errs.ValidationError
	require.True(t, errors.As(err, &verr))

	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "price")
	assert.Contains(t, verr.Fields, "stock")
	assert.Contains(t, verr.Fields["category"], "ELECTRONICA")

	err = v.Struct(OrderInput{Items: []OrderItemInput{{ProductID: 1, Quantity: 0}}})
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "items[0].quantity")

	err = v.Struct(StockInput{})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "stock is a required field", verr.Fields["stock"])

	zero := 0
	assert.NoError(t, v.Struct(StockInput{Stock: &zero}))

	valid := ProductInput{Name: "Widget", Price: decimal.RequireFromString("9.90"), Stock: &zero, Category: models.CategoryOtros}
	assert.NoError(t, v.Struct(valid))

	for _, price := range []string{"9.999", "10000000000", "1.23456789012345678901"} {
		in := valid
		in.Price = decimal.RequireFromString(price)
		err = v.Struct(in)
		require.True(t, errors.As(err, &verr), price)
		assert.Equal(t, []string{"price"}, keys(verr.Fields), price)
	}
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestErrorHandlerLogsOnlyServerErrors(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(&log)})
	app.Get("/missing", func(c *fiber.Ctx) error { return errs.NewNotFoundError("Producto", uint(1)) })
	app.Get("/broken", func(c *fiber.Ctx) error { return fmt.Errorf("disk on fire") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Zero(t, buf.Len(), "client errors belong to the access log")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/broken", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "disk on fire", entry["error"])
	assert.Equal(t, "/broken", entry["path"])
}
