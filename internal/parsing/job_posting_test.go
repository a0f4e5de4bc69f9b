package parsing

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/storage"
)

// stubClient answers per model tier, which distinguishes the description
// extraction (advanced) from the skills extraction (standard).
type stubClient struct {
	byTier  map[llm.ModelTier]string
	errs    map[llm.ModelTier]error
	prompts map[llm.ModelTier]string
}

func (s *stubClient) GenerateJSON(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if s.prompts == nil {
		s.prompts = make(map[llm.ModelTier]string)
	}
	s.prompts[tier] = prompt
	if err := s.errs[tier]; err != nil {
		return "", err
	}
	return s.byTier[tier], nil
}

func (s *stubClient) Close() error { return nil }

func newTestParser(t *testing.T, client llm.Client) (*Parser, *storage.Store) {
	t.Helper()
	store, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)
	extractor := llm.NewExtractor(client, llm.NewCache(), zerolog.Nop())
	return NewParser(extractor, store, nil, false, zerolog.Nop()), store
}

const descriptionResponse = `{
	"company": "Acme Corp",
	"job_title": "Senior Engineer",
	"job_summary": "Build distributed systems.",
	"duties": ["Design services"],
	"qualifications": ["5 years of Go"],
	"is_fully_remote": true
}`

const skillsResponse = `{
	"technical_skills": ["Go", "PostgreSQL"],
	"non_technical_skills": ["Communication"],
	"ats_keywords": ["golang", "distributed systems"]
}`

func TestParseText_FullExtraction(t *testing.T) {
	client := &stubClient{byTier: map[llm.ModelTier]string{
		llm.TierAdvanced: descriptionResponse,
		llm.TierStandard: skillsResponse,
	}}
	parser, store := newTestParser(t, client)

	jd, jobID, err := parser.ParseText(context.Background(), "posting text", "https://example.com/jobs/123")
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", jd.Company)
	assert.Equal(t, "Senior Engineer", jd.Title)
	require.NotNil(t, jd.IsFullyRemote)
	assert.True(t, *jd.IsFullyRemote)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, jd.TechnicalSkills)
	assert.Equal(t, []string{"golang", "distributed systems"}, jd.ATSKeywords)

	// Company and title drive the identifier.
	assert.Equal(t, "acme_corp_senior_engineer", jobID)

	saved, err := store.ReadJobDescription(jobID)
	require.NoError(t, err)
	assert.Equal(t, jd, saved)
}

func TestParseText_PartialExtractionSurvives(t *testing.T) {
	client := &stubClient{
		byTier: map[llm.ModelTier]string{llm.TierStandard: skillsResponse},
		errs:   map[llm.ModelTier]error{llm.TierAdvanced: errors.New("model unavailable")},
	}
	parser, _ := newTestParser(t, client)

	jd, jobID, err := parser.ParseText(context.Background(), "posting text", "https://boards.example.com/acme/senior-engineer/")
	require.NoError(t, err)

	assert.Empty(t, jd.Company)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, jd.TechnicalSkills)

	// No company/title, so the identifier falls back to host and last path
	// segment.
	assert.Equal(t, "boards.example.com.seniorengineer", jobID)
}

func TestParseText_PostingWithoutCompanyAccepted(t *testing.T) {
	// A posting that names neither company nor title still yields a valid
	// description; the identifier falls back to the URL.
	client := &stubClient{byTier: map[llm.ModelTier]string{
		llm.TierAdvanced: `{"job_summary": "Build things.", "duties": ["Design services"]}`,
		llm.TierStandard: skillsResponse,
	}}
	parser, _ := newTestParser(t, client)

	jd, jobID, err := parser.ParseText(context.Background(), "posting text", "https://example.com/jobs/42")
	require.NoError(t, err)

	assert.Empty(t, jd.Company)
	assert.Empty(t, jd.Title)
	assert.Equal(t, "Build things.", jd.Summary)
	assert.Equal(t, "example.com.42", jobID)
}

func TestParseText_PromptsWrapPosting(t *testing.T) {
	client := &stubClient{byTier: map[llm.ModelTier]string{
		llm.TierAdvanced: descriptionResponse,
		llm.TierStandard: skillsResponse,
	}}
	parser, _ := newTestParser(t, client)

	_, _, err := parser.ParseText(context.Background(), "the posting body", "")
	require.NoError(t, err)

	// Each extraction embeds the posting in its own instruction template.
	descPrompt := client.prompts[llm.TierAdvanced]
	assert.Contains(t, descPrompt, "<job_posting>\nthe posting body\n</job_posting>")
	assert.Contains(t, descPrompt, "omit it rather than guessing")

	skillsPrompt := client.prompts[llm.TierStandard]
	assert.Contains(t, skillsPrompt, "<job_posting>\nthe posting body\n</job_posting>")
	assert.Contains(t, skillsPrompt, "applicant tracking system")
}

func TestParseText_BothExtractionsFail(t *testing.T) {
	boom := errors.New("model unavailable")
	client := &stubClient{errs: map[llm.ModelTier]error{
		llm.TierAdvanced: boom,
		llm.TierStandard: boom,
	}}
	parser, _ := newTestParser(t, client)

	_, _, err := parser.ParseText(context.Background(), "posting text", "")
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Message, "both extractions failed")
}

func TestParseText_EmptyInput(t *testing.T) {
	parser, _ := newTestParser(t, &stubClient{})

	_, _, err := parser.ParseText(context.Background(), "   \n", "")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestDeriveIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		company  string
		title    string
		url      string
		expected string
	}{
		{
			name:    "company and title",
			company: "Acme Corp", title: "Senior Engineer",
			expected: "acme_corp_senior_engineer",
		},
		{
			name:    "punctuation stripped",
			company: "Acme, Inc.", title: "Staff Engineer (L6)",
			expected: "acme_inc.staff_engineer_l6",
		},
		{
			name:     "url fallback",
			url:      "https://jobs.example.com/listings/12345",
			expected: "jobs.example.com.12345",
		},
		{
			name:     "url with trailing slash",
			url:      "https://example.com/senior-engineer/",
			expected: "example.com.seniorengineer",
		},
		{
			name:     "host only",
			url:      "https://example.com",
			expected: "example.com",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DeriveIdentifier(tc.company, tc.title, tc.url))
		})
	}
}

func TestDeriveIdentifier_DigestFallback(t *testing.T) {
	id := DeriveIdentifier("", "", "")
	assert.Regexp(t, `^job_[0-9a-f]{8}$`, id)

	// Stable for the same inputs.
	assert.Equal(t, id, DeriveIdentifier("", "", ""))
}
