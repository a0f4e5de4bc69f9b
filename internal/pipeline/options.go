package pipeline

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Default review gate settings. The poll interval matches how often a person
// plausibly saves the file; the timeout keeps an abandoned review from
// blocking forever.
const (
	DefaultReviewInterval = 5 * time.Second
	DefaultReviewTimeout  = 30 * time.Minute
)

// RunOptions holds configuration for one tailoring run. Exactly one of
// JobURL and JobText must be set.
type RunOptions struct {
	ResumePath string `validate:"required"`
	JobURL     string `validate:"required_without=JobText,omitempty,url"`
	JobText    string `validate:"required_without=JobURL"`
	APIKey     string `validate:"required"`

	UseBrowser bool

	// ManualReview pauses the run after persisting the tailored resume
	// until the reviewer clears the editing flag in the output file.
	ManualReview  bool
	ReviewTimeout time.Duration

	Verbose bool
}

var optionsValidator = validator.New()

// Validate checks the options before any work starts.
func (o *RunOptions) Validate() error {
	if o.JobURL != "" && o.JobText != "" {
		return fmt.Errorf("job URL and job text are mutually exclusive")
	}
	if err := optionsValidator.Struct(o); err != nil {
		return fmt.Errorf("invalid run options: %w", err)
	}
	return nil
}
