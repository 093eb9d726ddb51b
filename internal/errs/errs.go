// Package errs defines the typed errors that services and repositories return.
//
// The HTTP layer inspects these with errors.As to pick a status code; nothing
// below the handlers writes responses directly.
package errs

import (
	"fmt"
	"sort"
	"strings"
)

// NotFoundError means the requested entity does not exist.
type NotFoundError struct {
	Resource string
	ID       any
}

// NewNotFoundError builds a NotFoundError for resource with the given id.
func NewNotFoundError(resource string, id any) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado con id: %v", e.Resource, e.ID)
}

// InsufficientStockError is a domain rule violation: stock would go negative.
type InsufficientStockError struct {
	ProductID uint
	Name      string
	Requested int
	Available int
}

// NewInsufficientStockError builds an InsufficientStockError.
func NewInsufficientStockError(productID uint, name string, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{ProductID: productID, Name: name, Requested: requested, Available: available}
}

func (e *InsufficientStockError) Error() string {
	if e.Requested < 0 {
		return fmt.Sprintf("Stock insuficiente: el stock del producto %d no puede ser negativo (%d)", e.ProductID, e.Requested)
	}
	return fmt.Sprintf("Stock insuficiente para el producto %s (solicitado: %d, disponible: %d)", e.Name, e.Requested, e.Available)
}

// ValidationError carries one message per invalid field.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records msg for field. A later message for the same field replaces the earlier one.
func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = msg
}

// Empty reports whether no field failed.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// BadRequestError is a malformed request that is not tied to a single field.
type BadRequestError struct {
	Message string
}

// NewBadRequestError builds a BadRequestError.
func NewBadRequestError(message string) *BadRequestError {
	return &BadRequestError{Message: message}
}

func (e *BadRequestError) Error() string {
	return e.Message
}

// UnauthorizedError means missing or invalid credentials.
type UnauthorizedError struct {
	Message string
}

// NewUnauthorizedError builds an UnauthorizedError.
func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

// ConflictError means the write collides with existing data.
type ConflictError struct {
	Message string
}

// NewConflictError builds a ConflictError.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func (e *ConflictError) Error() string {
	return e.Message
}
