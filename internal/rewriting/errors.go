package rewriting

import "fmt"

// RewriteError represents a failure to produce rewritten highlights for a
// section.
type RewriteError struct {
	Section string
	Message string
	Cause   error
}

func (e *RewriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rewrite failed for %s: %s: %v", e.Section, e.Message, e.Cause)
	}
	return fmt.Sprintf("rewrite failed for %s: %s", e.Section, e.Message)
}

func (e *RewriteError) Unwrap() error {
	return e.Cause
}

// ReviewError represents a failure during the bullet review pass.
type ReviewError struct {
	Message string
	Cause   error
}

func (e *ReviewError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("bullet review failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("bullet review failed: %s", e.Message)
}

func (e *ReviewError) Unwrap() error {
	return e.Cause
}
