package repository

import "errors"

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrTableNotFound    = errors.New("invalid table ID")
	ErrBillNotFound     = errors.New("bill request not found")
	ErrFeedbackNotFound = errors.New("feedback not found")

	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrUnknownMenuItem = errors.New("some menu items were not found")
	ErrTableFull       = errors.New("table is full (maximum 4 customers allowed)")

	ErrOrderNotActive     = errors.New("bill request is only allowed for orders with status 'Active'")
	ErrNoCompletedSession = errors.New("at least one session must be 'Completed' before requesting the bill")
	ErrCancelNotAllowed   = errors.New("session can no longer be cancelled")
	ErrInvalidStatus      = errors.New("invalid status")
)
