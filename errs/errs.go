package errs

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError covers caller mistakes: bad input, foreign addresses,
// empty selections, below-minimum totals. Never retried automatically.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validation builds a ValidationError with a formatted message.
func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// StockShortfall describes one product whose stock cannot cover the
// requested quantity.
type StockShortfall struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
}

func (s StockShortfall) String() string {
	return fmt.Sprintf("product %q has only %d in stock, but %d requested", s.ProductName, s.Available, s.Requested)
}

// InsufficientStockError carries the full list of shortfalls from a batch
// stock validation, not just the first one found.
type InsufficientStockError struct {
	Shortfalls []StockShortfall
}

func (e *InsufficientStockError) Error() string {
	msgs := make([]string, len(e.Shortfalls))
	for i, s := range e.Shortfalls {
		msgs[i] = s.String()
	}
	return "insufficient stock: " + strings.Join(msgs, "; ")
}

// StateConflictError covers operations against a checkout that has already
// left the active state. Distinct from ValidationError so callers can branch
// between "redo checkout" and "fix input".
type StateConflictError struct {
	Msg string
}

func (e *StateConflictError) Error() string {
	return e.Msg
}

var (
	ErrCheckoutNotActive = &StateConflictError{Msg: "checkout is no longer active"}
	ErrCheckoutExpired   = &StateConflictError{Msg: "checkout has expired, items returned to inventory"}
)

// IsValidation reports whether err is a caller mistake (including stock
// shortfalls).
func IsValidation(err error) bool {
	var ve *ValidationError
	var se *InsufficientStockError
	return errors.As(err, &ve) || errors.As(err, &se)
}

// IsStateConflict reports whether err is an inactive/expired-checkout
// condition.
func IsStateConflict(err error) bool {
	var ce *StateConflictError
	return errors.As(err, &ce)
}

// StockDetails extracts the per-product shortfalls when err is an
// InsufficientStockError.
func StockDetails(err error) ([]StockShortfall, bool) {
	var se *InsufficientStockError
	if errors.As(err, &se) {
		return se.Shortfalls, true
	}
	return nil, false
}
