package order

import (
	"fmt"
	"net/http"
)

// Error is an orchestration failure surfaced to callers. It carries a stable
// machine code plus an HTTP-style status hint for the boundary layer.
type Error struct {
	Code   string
	Status int
	msg    string
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error carrying the same code, so callers can compare
// against the exported sentinels with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrValidation   = &Error{Code: "INVALID_REQUEST", Status: http.StatusBadRequest, msg: "order request rejected"}
	ErrInventory    = &Error{Code: "INVENTORY_REDUCTION_FAILED", Status: http.StatusUnprocessableEntity, msg: "inventory reduction failed"}
	ErrPersistence  = &Error{Code: "ORDER_PERSISTENCE_FAILED", Status: http.StatusInternalServerError, msg: "order store write failed"}
	ErrOrderMissing = &Error{Code: "NOT_FOUND", Status: http.StatusNotFound, msg: "order not found for order id"}
)

func validationError(msg string) *Error {
	return &Error{Code: ErrValidation.Code, Status: ErrValidation.Status, msg: msg}
}

func inventoryError(cause error) *Error {
	return &Error{Code: ErrInventory.Code, Status: ErrInventory.Status, msg: ErrInventory.msg, cause: cause}
}

func persistenceError(op string, cause error) *Error {
	return &Error{Code: ErrPersistence.Code, Status: ErrPersistence.Status, msg: "order store " + op + " failed", cause: cause}
}

func notFoundError(orderID string) *Error {
	return &Error{Code: ErrOrderMissing.Code, Status: ErrOrderMissing.Status, msg: fmt.Sprintf("order not found for order id %s", orderID)}
}
