package bus

import "fmt"

// DuplicateCorrelationError reports a response handler registered under a
// correlation id that is already pending.
type DuplicateCorrelationError struct {
	ID CorrelationID
}

func (e DuplicateCorrelationError) Error() string {
	return fmt.Sprintf("response handler already registered for correlation id %s", e.ID)
}
