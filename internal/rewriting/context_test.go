package rewriting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/types"
)

func testResume() *types.ResumeDocument {
	return &types.ResumeDocument{
		Basic:     types.BasicInfo{Name: "Jane Doe", Email: "jane@example.com"},
		Objective: "Engineer who ships.",
		Education: []types.Education{
			{School: "State University", Degrees: []types.Degree{{Names: []string{"B.S. Computer Science"}}}},
		},
		Experiences: []types.Experience{
			{
				Company: "Acme Corp",
				Titles: []types.Title{
					{Name: "Senior Engineer", StartDate: "2021", EndDate: "current"},
					{Name: "Engineer", StartDate: "Jan 2018", EndDate: "2021"},
				},
				Highlights: []string{"Built the pipeline."},
			},
		},
		Skills: []types.SkillCategory{
			{Category: "Technical", Skills: []string{"Go", "PostgreSQL"}},
		},
	}
}

func TestBuildResumeContext(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	rc, err := BuildResumeContext(testResume(), now)
	require.NoError(t, err)

	assert.Equal(t, []string{"B.S. Computer Science"}, rc.Degrees)
	assert.Equal(t, 8, rc.YearsOfExperience)
	assert.Contains(t, rc.ExperiencesYAML, "Acme Corp")
	assert.Equal(t, []string{"Technical: Go, PostgreSQL"}, rc.SkillLines)

	text := rc.CandidateText()
	assert.Contains(t, text, "Years of professional experience: 8")
	assert.Contains(t, text, "B.S. Computer Science")
	assert.Contains(t, text, "Current objective: Engineer who ships.")
}

func TestBuildResumeContext_UnparseableDate(t *testing.T) {
	resume := testResume()
	resume.Experiences[0].Titles[0].StartDate = "sometime in spring"

	_, err := BuildResumeContext(resume, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnparseableDate)
}

func TestParseFlexDate(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		value string
		year  int
	}{
		{"2019", 2019},
		{"Jan 2020", 2020},
		{"January 2020", 2020},
		{"2021-06", 2021},
		{"2021-06-15", 2021},
		{"current", 2026},
		{"Present", 2026},
	}
	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			parsed, err := parseFlexDate(tc.value, now)
			require.NoError(t, err)
			assert.Equal(t, tc.year, parsed.Year())
		})
	}
}

func TestBuildResumeContext_EmptyResume(t *testing.T) {
	rc, err := BuildResumeContext(&types.ResumeDocument{}, time.Now())
	require.NoError(t, err)
	assert.Zero(t, rc.YearsOfExperience)
	assert.Empty(t, rc.CandidateText())
}
