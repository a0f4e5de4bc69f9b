package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/types"
)

func TestRenderMarkdown(t *testing.T) {
	resume := &types.ResumeDocument{
		Basic: types.BasicInfo{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Websites: []string{"https://github.com/janedoe"},
		},
		Objective: "Engineer who ships.",
		Education: []types.Education{
			{School: "State University", Degrees: []types.Degree{{Names: []string{"B.S. Computer Science"}}}},
		},
		Experiences: []types.Experience{
			{
				Company:  "Acme Corp",
				Location: "Springfield",
				Titles: []types.Title{
					{Name: "Senior Engineer", StartDate: "2021", EndDate: "current"},
				},
				Highlights: []string{"Built the pipeline.", "Led the migration."},
			},
		},
		Projects: []types.Project{
			{Name: "Side Project", Link: "https://example.com", ShowLink: true, Highlights: []string{"Did a thing."}},
		},
		Skills: []types.SkillCategory{
			{Category: "Technical", Skills: []string{"Go", "PostgreSQL"}},
		},
	}

	out, err := RenderMarkdown(resume)
	require.NoError(t, err)

	assert.Contains(t, out, "# Jane Doe")
	assert.Contains(t, out, "jane@example.com")
	assert.Contains(t, out, "### Acme Corp — Springfield")
	assert.Contains(t, out, "*Senior Engineer* (2021 – current)")
	assert.Contains(t, out, "- Built the pipeline.")
	assert.Contains(t, out, "### Side Project (https://example.com)")
	assert.Contains(t, out, "**Technical**: Go, PostgreSQL")
	assert.Contains(t, out, "B.S. Computer Science")
}

func TestRenderMarkdown_MinimalResume(t *testing.T) {
	out, err := RenderMarkdown(&types.ResumeDocument{
		Basic: types.BasicInfo{Name: "Jane Doe"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "# Jane Doe")
	assert.NotContains(t, out, "## Experience")
	assert.NotContains(t, out, "## Skills")
}
