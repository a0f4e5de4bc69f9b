// Package rewriting tailors resume content to a parsed job description.
package rewriting

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-tailor/internal/types"
)

// ErrUnparseableDate reports a title date that none of the accepted layouts
// match. Callers treat this as a signal that cached derivations may be stale.
var ErrUnparseableDate = errors.New("unparseable date")

// dateLayouts are the accepted startdate/enddate formats, most specific
// first.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"January 2006",
	"Jan 2006",
	"2006",
}

// currentMarkers are enddate values that mean "still in the role".
var currentMarkers = map[string]struct{}{
	"current": {}, "present": {}, "now": {}, "": {},
}

// ResumeContext is the candidate summary every tailoring prompt shares.
type ResumeContext struct {
	Degrees           []string
	EducationYAML     string
	ExperiencesYAML   string
	SkillLines        []string
	Objective         string
	YearsOfExperience int
}

// BuildResumeContext derives the prompt context from a resume. Date parsing
// failures return an error wrapping ErrUnparseableDate; everything else is
// mechanical.
func BuildResumeContext(resume *types.ResumeDocument, now time.Time) (*ResumeContext, error) {
	rc := &ResumeContext{
		Degrees:   resume.DegreeNames(),
		Objective: resume.Objective,
	}

	if len(resume.Education) > 0 {
		data, err := yaml.Marshal(resume.Education)
		if err != nil {
			return nil, fmt.Errorf("failed to render education: %w", err)
		}
		rc.EducationYAML = string(data)
	}

	if len(resume.Experiences) > 0 {
		data, err := yaml.Marshal(resume.Experiences)
		if err != nil {
			return nil, fmt.Errorf("failed to render experiences: %w", err)
		}
		rc.ExperiencesYAML = string(data)
	}

	for _, cat := range resume.Skills {
		rc.SkillLines = append(rc.SkillLines, fmt.Sprintf("%s: %s", cat.Category, strings.Join(cat.Skills, ", ")))
	}

	years, err := yearsOfExperience(resume.Experiences, now)
	if err != nil {
		return nil, err
	}
	rc.YearsOfExperience = years

	return rc, nil
}

// CandidateText renders the context as the prompt block shared by every
// tailoring call.
func (rc *ResumeContext) CandidateText() string {
	var b strings.Builder
	if rc.YearsOfExperience > 0 {
		fmt.Fprintf(&b, "Years of professional experience: %d\n\n", rc.YearsOfExperience)
	}
	if len(rc.Degrees) > 0 {
		fmt.Fprintf(&b, "Degrees: %s\n\n", strings.Join(rc.Degrees, "; "))
	}
	if rc.EducationYAML != "" {
		fmt.Fprintf(&b, "Education:\n%s\n", rc.EducationYAML)
	}
	if rc.ExperiencesYAML != "" {
		fmt.Fprintf(&b, "Experience:\n%s\n", rc.ExperiencesYAML)
	}
	if len(rc.SkillLines) > 0 {
		fmt.Fprintf(&b, "Skills:\n%s\n", strings.Join(rc.SkillLines, "\n"))
	}
	if rc.Objective != "" {
		fmt.Fprintf(&b, "\nCurrent objective: %s\n", rc.Objective)
	}
	return b.String()
}

// yearsOfExperience measures from the earliest title start date to now.
func yearsOfExperience(experiences []types.Experience, now time.Time) (int, error) {
	var earliest time.Time
	for _, exp := range experiences {
		for _, title := range exp.Titles {
			start, err := parseFlexDate(string(title.StartDate), now)
			if err != nil {
				return 0, err
			}
			if earliest.IsZero() || start.Before(earliest) {
				earliest = start
			}
		}
	}
	if earliest.IsZero() {
		return 0, nil
	}
	years := int(now.Sub(earliest).Hours() / (24 * 365.25))
	if years < 0 {
		years = 0
	}
	return years, nil
}

// parseFlexDate accepts the layouts in dateLayouts plus the current-role
// markers.
func parseFlexDate(value string, now time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if _, ok := currentMarkers[trimmed]; ok {
		return now, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(value)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, value)
}
