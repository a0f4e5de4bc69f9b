package rewriting

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewBullets_EntryMapping(t *testing.T) {
	client := &scriptClient{responses: []string{`{
		"answer": [
			{"highlights": ["<draft_0> Better A", "Better B"]},
			{"highlights": ["Better C"]}
		]
	}`}}
	entries := [][]string{{"a", "b"}, {"c"}}

	got, err := ReviewBullets(context.Background(), newExtractor(client), entries,
		testJob(), &ResumeContext{}, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"Better A", "Better B"}, {"Better C"}}, got)
}

func TestReviewBullets_EntryBulletCountMayChange(t *testing.T) {
	// The reviewer may merge or split bullets within an entry.
	client := &scriptClient{responses: []string{`{
		"answer": [
			{"highlights": ["Merged A and B"]},
			{"highlights": ["C first half", "C second half"]}
		]
	}`}}
	entries := [][]string{{"a", "b"}, {"c"}}

	got, err := ReviewBullets(context.Background(), newExtractor(client), entries,
		testJob(), &ResumeContext{}, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"Merged A and B"}, {"C first half", "C second half"}}, got)
}

func TestReviewBullets_FewerEntriesKeepsTail(t *testing.T) {
	// Three draft entries, two reviewed: the third keeps its draft bullets.
	client := &scriptClient{responses: []string{`{
		"answer": [
			{"highlights": ["Better A"]},
			{"highlights": ["Better B"]}
		]
	}`}}
	entries := [][]string{{"a"}, {"b"}, {"c", "d"}}

	got, err := ReviewBullets(context.Background(), newExtractor(client), entries,
		testJob(), &ResumeContext{}, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"Better A"}, {"Better B"}, {"c", "d"}}, got)
}

func TestReviewBullets_ExtraEntriesDropped(t *testing.T) {
	client := &scriptClient{responses: []string{`{
		"answer": [
			{"highlights": ["Better A"]},
			{"highlights": ["surplus"]}
		]
	}`}}
	entries := [][]string{{"a"}}

	got, err := ReviewBullets(context.Background(), newExtractor(client), entries,
		testJob(), &ResumeContext{}, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"Better A"}}, got)
}

func TestReviewBullets_EmptyReviewedEntryKeepsDraft(t *testing.T) {
	client := &scriptClient{responses: []string{`{
		"answer": [
			{"highlights": []},
			{"highlights": ["Better B"]}
		]
	}`}}
	entries := [][]string{{"a"}, {"b"}}

	got, err := ReviewBullets(context.Background(), newExtractor(client), entries,
		testJob(), &ResumeContext{}, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"a"}, {"Better B"}}, got)
}

func TestReviewBullets_EmptyEntries(t *testing.T) {
	client := &scriptClient{}

	got, err := ReviewBullets(context.Background(), newExtractor(client), [][]string{},
		testJob(), &ResumeContext{}, zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, client.prompts)
}

func TestReviewBullets_ExtractionFailure(t *testing.T) {
	client := &scriptClient{responses: []string{`not json`}}

	_, err := ReviewBullets(context.Background(), newExtractor(client), [][]string{{"a"}},
		testJob(), &ResumeContext{}, zerolog.Nop())
	require.Error(t, err)

	var reviewErr *ReviewError
	require.ErrorAs(t, err, &reviewErr)
}

func TestReviewBullets_TaggedDraftsInPrompt(t *testing.T) {
	client := &scriptClient{responses: []string{`{"answer": [{"highlights": ["A"]}, {"highlights": ["B"]}]}`}}
	entries := [][]string{{"first bullet", "second bullet"}, {"third bullet"}}

	_, err := ReviewBullets(context.Background(), newExtractor(client), entries,
		testJob(), &ResumeContext{}, zerolog.Nop())
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	prompt := client.prompts[0]
	assert.Contains(t, prompt, "<draft_0>\n- first bullet\n- second bullet")
	assert.Contains(t, prompt, "<draft_1>\n- third bullet")
}
