package pipeline

import "fmt"

// InvalidInputError is returned when the records collection handed to the
// aggregator cannot be processed at all. Individual rows with missing text
// never produce this error.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}
