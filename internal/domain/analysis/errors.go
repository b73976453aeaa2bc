package analysis

import "errors"

// ErrInvalidArgument indicates a malformed request (missing required field,
// unsupported analysis type).
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNotFound indicates the referenced tender/analysis does not exist for the
// tenant. Note: a supplier with no bid history is NOT an error; background
// analysis returns a zero result for that case.
var ErrNotFound = errors.New("not found")
