package rewriting

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/prompts"
	"github.com/jonathan/resume-tailor/internal/types"
)

var draftTag = regexp.MustCompile(`^\s*<draft_(\d+)>\s*`)

// reviewSchema is the output shape for the review pass: one reviewed
// highlight list per draft entry, in draft order.
func reviewSchema() llm.ExtractionSchema {
	return llm.ExtractionSchema{
		Name:        "BulletReview",
		Description: prompts.MustGet("tailoring.json", "critic_persona"),
		Tier:        llm.TierStandard,
		Fields: []llm.SchemaField{
			{Name: "plan", Type: llm.TypeString, Description: "short review plan"},
			{
				Name: "answer", Type: llm.TypeObjectList, Required: true,
				Description: "one reviewed entry per draft, in draft order",
				Fields: []llm.SchemaField{
					{Name: "highlights", Type: llm.TypeStringList, Required: true},
				},
			},
			{Name: "reward", Type: llm.TypeInt, Description: "self-assessed quality 1-5"},
			{Name: "reflection", Type: llm.TypeString, Description: "what could be better"},
		},
	}
}

type reviewedEntry struct {
	Highlights []string `json:"highlights"`
}

type reviewResult struct {
	Plan       string          `json:"plan"`
	Answer     []reviewedEntry `json:"answer"`
	Reward     int             `json:"reward"`
	Reflection string          `json:"reflection"`
}

// ReviewBullets runs a critic pass over every entry's bullets in one call.
// Each entry is tagged as one draft and result entry i replaces input entry
// i, so the reviewer may merge or split bullets within an entry. A response
// with fewer entries than drafts leaves the unmatched tail entries
// unchanged; extra entries are dropped. Both cases log a warning instead of
// failing, since the drafts are already usable.
func ReviewBullets(ctx context.Context, extractor *llm.Extractor, entries [][]string, job *types.JobDescription, rc *ResumeContext, log zerolog.Logger) ([][]string, error) {
	if countBullets(entries) == 0 {
		return entries, nil
	}

	var tagged strings.Builder
	for i, entry := range entries {
		fmt.Fprintf(&tagged, "<draft_%d>\n%s", i, bulletList(entry))
	}

	input := prompts.Format(prompts.MustGet("tailoring.json", "bullet_review_instructions"), map[string]string{
		"Job":    JobText(job),
		"Drafts": tagged.String(),
	})

	var result reviewResult
	if err := extractor.Extract(ctx, reviewSchema(), input, &result); err != nil {
		return nil, &ReviewError{Message: "extraction failed", Cause: err}
	}

	switch {
	case len(result.Answer) < len(entries):
		log.Warn().
			Int("drafts", len(entries)).
			Int("reviewed", len(result.Answer)).
			Msg("review returned fewer entries than drafts, keeping unmatched drafts")
	case len(result.Answer) > len(entries):
		log.Warn().
			Int("drafts", len(entries)).
			Int("reviewed", len(result.Answer)).
			Msg("review returned more entries than drafts, dropping extras")
	}

	merged := make([][]string, len(entries))
	for i, entry := range entries {
		merged[i] = entry
		if i >= len(result.Answer) {
			continue
		}
		if reviewed := cleanHighlights(result.Answer[i].Highlights); len(reviewed) > 0 {
			merged[i] = reviewed
		}
	}

	return merged, nil
}

// cleanHighlights strips echoed draft tags and drops blank bullets.
func cleanHighlights(highlights []string) []string {
	var out []string
	for _, h := range highlights {
		h = strings.TrimSpace(draftTag.ReplaceAllString(h, ""))
		if h != "" {
			out = append(out, h)
		}
	}
	return out
}

func countBullets(entries [][]string) int {
	n := 0
	for _, entry := range entries {
		n += len(entry)
	}
	return n
}
