package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidCredentials = errors.New("invalid password")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicatePhone     = errors.New("phone already registered")
)

// ProductNotFoundError identifies which line item referenced a missing product.
type ProductNotFoundError struct {
	ID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with ID %d does not exist", e.ID)
}

// InsufficientStockError reports a line item whose quantity exceeds stock.
type InsufficientStockError struct {
	ID int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product ID %d", e.ID)
}
