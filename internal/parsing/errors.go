package parsing

import "fmt"

// ParseError represents a failure to extract a usable job description from
// posting text.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job posting parse failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("job posting parse failed: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// FetchError represents a failure to retrieve the posting content before any
// extraction took place.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to fetch %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to fetch %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}
