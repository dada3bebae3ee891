package projector

import (
	"errors"
	"fmt"
)

// OpErrorCode categorizes why a patch op was skipped.
type OpErrorCode string

const (
	// ErrCodeMissingTag indicates an op without a resource tag.
	ErrCodeMissingTag OpErrorCode = "MISSING_TAG"

	// ErrCodeBadValue indicates a non-scalar or otherwise unusable value.
	ErrCodeBadValue OpErrorCode = "BAD_VALUE"

	// ErrCodeBadEntity indicates a non-finite or non-integer entity id.
	ErrCodeBadEntity OpErrorCode = "BAD_ENTITY"
)

// OpError reports one skipped patch op. Skips never abort the remaining
// ops of the same tick.
type OpError struct {
	Code    OpErrorCode
	Index   int
	Op      string
	Tag     string
	Message string
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: patch[%d] %s tag=%q: %s", e.Code, e.Index, e.Op, e.Tag, e.Message)
}

// IsOpError reports whether err is a skipped-op error, unwrapping as
// needed.
func IsOpError(err error) bool {
	var oe *OpError
	return errors.As(err, &oe)
}
