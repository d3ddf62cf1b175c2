package sim

import "errors"

// ErrInvalidArgument is wrapped by every validation failure in sim and its
// sub-packages. Match with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")
