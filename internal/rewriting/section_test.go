package rewriting

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/types"
)

// scriptClient returns queued responses in order.
type scriptClient struct {
	responses []string
	err       error
	prompts   []string
}

func (s *scriptClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", errors.New("no scripted response")
	}
	response := s.responses[0]
	s.responses = s.responses[1:]
	return response, nil
}

func (s *scriptClient) Close() error { return nil }

func newExtractor(client llm.Client) *llm.Extractor {
	return llm.NewExtractor(client, llm.NewCache(), zerolog.Nop())
}

func testJob() *types.JobDescription {
	return &types.JobDescription{Company: "Acme Corp", Title: "Senior Engineer"}
}

func TestRewriteSection_SortsByRelevance(t *testing.T) {
	client := &scriptClient{responses: []string{`{
		"plan": "emphasize backend work",
		"answer": [
			{"highlight": "Did X", "relevance": 2},
			{"highlight": "Did Y", "relevance": 5}
		]
	}`}}

	got, err := RewriteSection(context.Background(), newExtractor(client), "experiences[0]",
		[]string{"x", "y"}, testJob(), &ResumeContext{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Did Y", "Did X"}, got)
}

func TestRewriteSection_StableForEqualRelevance(t *testing.T) {
	client := &scriptClient{responses: []string{`{
		"plan": "p",
		"answer": [
			{"highlight": "A", "relevance": 3},
			{"highlight": "B", "relevance": 5},
			{"highlight": "C", "relevance": 3},
			{"highlight": "D", "relevance": 5}
		]
	}`}}

	got, err := RewriteSection(context.Background(), newExtractor(client), "s",
		[]string{"a", "b", "c", "d"}, testJob(), &ResumeContext{})
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "D", "A", "C"}, got)
}

func TestRewriteSection_EmptyAnswer(t *testing.T) {
	client := &scriptClient{responses: []string{`{"plan": "p", "answer": []}`}}

	_, err := RewriteSection(context.Background(), newExtractor(client), "s",
		[]string{"a"}, testJob(), &ResumeContext{})
	require.Error(t, err)

	var rewriteErr *RewriteError
	require.ErrorAs(t, err, &rewriteErr)
	assert.Equal(t, "s", rewriteErr.Section)
}

func TestRewriteSection_OutOfRangeRelevanceRejected(t *testing.T) {
	client := &scriptClient{responses: []string{`{
		"plan": "p",
		"answer": [{"highlight": "A", "relevance": 9}]
	}`}}

	_, err := RewriteSection(context.Background(), newExtractor(client), "s",
		[]string{"a"}, testJob(), &ResumeContext{})
	require.Error(t, err)

	var rewriteErr *RewriteError
	require.ErrorAs(t, err, &rewriteErr)
	var extractionErr *llm.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
}

func TestRewriteSection_NoHighlights(t *testing.T) {
	client := &scriptClient{}

	got, err := RewriteSection(context.Background(), newExtractor(client), "s",
		nil, testJob(), &ResumeContext{})
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, client.prompts)
}

func TestRewriteSection_PromptCarriesInputs(t *testing.T) {
	client := &scriptClient{responses: []string{`{
		"plan": "p",
		"answer": [{"highlight": "A", "relevance": 3}]
	}`}}
	rc := &ResumeContext{Objective: "Ship things."}

	_, err := RewriteSection(context.Background(), newExtractor(client), "s",
		[]string{"built a cache"}, testJob(), rc)
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	prompt := client.prompts[0]
	assert.Contains(t, prompt, "Acme Corp")
	assert.Contains(t, prompt, "built a cache")
	assert.Contains(t, prompt, "Ship things.")
}
