package models

// Error types the HTTP helper maps to status codes.

type ErrorValidation struct {
	Message string
}

func (e ErrorValidation) Error() string { return e.Message }

type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string { return e.Message }

type ErrorUnauthorized struct {
	Message string
}

func (e ErrorUnauthorized) Error() string { return e.Message }

type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string { return e.Message }

type ErrorInternalServer struct {
	Message string
}

func (e ErrorInternalServer) Error() string { return e.Message }

// Decision is the outcome of an ownership check on a mutating operation.
// Denied is not an error: the caller performs no mutation and sends the
// actor back to the read view.
type Decision int

const (
	Authorized Decision = iota
	Denied
)
