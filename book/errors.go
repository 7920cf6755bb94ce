package book

import (
	"errors"
	"fmt"

	"github.com/river-walras/nexuscore/market"
)

// Errors used by the package.
var (
	ErrNoOrderSide = errors.New("cannot resolve order side: record has no side and order id is not cached")
)

// InstrumentMismatchError reports a record applied to a book of a different
// instrument.
type InstrumentMismatchError struct {
	Book   market.InstrumentID
	Record market.InstrumentID
}

func (e InstrumentMismatchError) Error() string {
	return fmt.Sprintf("instrument mismatch: book %s, record %s", e.Book, e.Record)
}

// InvalidBookOperationError reports an operation not supported by the
// book's granularity.
type InvalidBookOperationError struct {
	Operation string
	BookType  market.BookType
}

func (e InvalidBookOperationError) Error() string {
	return fmt.Sprintf("operation %s is not supported for %s books", e.Operation, e.BookType)
}
