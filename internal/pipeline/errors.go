package pipeline

import "fmt"

// Stage names identify where a run failed.
const (
	StageOptions    = "options"
	StageLoadResume = "load-resume"
	StageParseJob   = "parse-job"
	StageContext    = "resume-context"
	StagePersist    = "persist"
	StageReview     = "manual-review"
	StageRender     = "render"
)

// Error wraps a stage failure that stops the run.
type Error struct {
	Stage string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("pipeline stage %s failed: %v", e.Stage, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
