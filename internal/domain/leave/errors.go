package leave

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrRequestNotFound     = errors.New("leave request not found")
	ErrInvalidDateRange    = errors.New("end date before start date")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrInvalidState        = errors.New("leave request is not pending")
	ErrInvalidCategory     = errors.New("invalid leave category")
	ErrDuplicateEmployee   = errors.New("employee already exists")
	ErrInvalidEmployee     = errors.New("employee id and name are required")
	ErrNegativeBalance     = errors.New("balance cannot be negative")
)
