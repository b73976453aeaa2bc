package records

import "errors"

// ErrInvalidRecord indicates a bid/tender/profile failed normalization
// (missing required field, negative amount, unparseable timestamp).
var ErrInvalidRecord = errors.New("invalid record")
