package market

import (
	"errors"
	"fmt"
)

// Errors used by the package.
var (
	ErrPriceNotFinite  = errors.New("price value is not a finite number")
	ErrQuantityInvalid = errors.New("quantity value is not a finite non-negative number")
)

// MissingFieldError reports a partial quote field that has no value and no
// cached predecessor to inherit from.
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("partial quote field %s has no value and no cached quote to inherit from", e.Field)
}
