// Package classifier infers a post's type and topical tags from its
// free text, either through the external Gemini endpoint or through a
// local keyword heuristic. Failures are reported as a typed *Error so
// callers can branch on them explicitly instead of catching broadly.
package classifier

import (
	"context"
	"fmt"

	"github.com/postfolio/postfolio-backend/internal/domain"
)

// Result is the transient outcome of a classification. It is never
// persisted on its own, only projected into Post and CvEntry records.
type Result struct {
	Type    domain.PostType
	Tags    []string
	Summary string // optional short heading; may be empty
}

// Failure reasons
const (
	ReasonRequest    = "request_failed"
	ReasonStatus     = "bad_status"
	ReasonMalformed  = "malformed_body"
	ReasonNoResult   = "missing_fields"
	ReasonEmptyInput = "empty_content"
)

// Error describes a failed classification attempt
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("classification failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("classification failed (%s)", e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(reason string, err error) *Error {
	return &Error{Reason: reason, Err: err}
}

// Classifier produces a Result for a content string or fails with a
// *Error. Implementations must honor ctx cancellation on any blocking
// call.
type Classifier interface {
	Classify(ctx context.Context, content string) (*Result, error)
}
