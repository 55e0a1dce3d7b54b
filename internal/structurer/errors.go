package structurer

import (
	"errors"
	"fmt"
)

var (
	// ErrStructuringFailed is matched by *StructuringError.
	ErrStructuringFailed = errors.New("failed to structure AI response")

	// ErrAnswerKeyUnavailable is returned when neither the AI path nor the
	// regex fallback produced a single usable answer.
	ErrAnswerKeyUnavailable = errors.New("could not parse answer key")
)

// StructuringError is returned when a provider replied but the reply could
// not be turned into the expected shape.
type StructuringError struct {
	Reason  string
	Wrapped error
}

func (e *StructuringError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", ErrStructuringFailed, e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", ErrStructuringFailed, e.Reason)
}

func (e *StructuringError) Unwrap() error {
	return e.Wrapped
}

func (e *StructuringError) Is(target error) bool {
	return target == ErrStructuringFailed
}
