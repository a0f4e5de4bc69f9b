package rewriting

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/prompts"
	"github.com/jonathan/resume-tailor/internal/types"
)

// sectionRewriteSchema is the chain-of-thought output shape for section
// rewriting. Only answer survives into the resume; the surrounding fields
// exist to make the model reason before it writes.
func sectionRewriteSchema() llm.ExtractionSchema {
	min, max := llm.IntRange(types.MinRelevance, types.MaxRelevance)
	return llm.ExtractionSchema{
		Name:        "SectionRewrite",
		Description: prompts.MustGet("tailoring.json", "writer_persona"),
		Tier:        llm.TierAdvanced,
		Fields: []llm.SchemaField{
			{Name: "plan", Type: llm.TypeString, Description: "short plan for the rewrite", Required: true},
			{Name: "work", Type: llm.TypeString, Description: "working notes"},
			{
				Name: "answer", Type: llm.TypeObjectList, Required: true,
				Description: "the rewritten highlights",
				Fields: []llm.SchemaField{
					{Name: "highlight", Type: llm.TypeString, Required: true},
					{Name: "relevance", Type: llm.TypeInt, Required: true, Min: min, Max: max},
				},
			},
			{Name: "reward", Type: llm.TypeInt, Description: "self-assessed quality 1-5"},
			{Name: "reflection", Type: llm.TypeString, Description: "what could be better"},
		},
	}
}

type sectionRewriteResult struct {
	Plan       string               `json:"plan"`
	Work       string               `json:"work"`
	Answer     []types.RankedBullet `json:"answer"`
	Reward     int                  `json:"reward"`
	Reflection string               `json:"reflection"`
}

// RewriteSection rewrites one section's highlights against the job
// description and returns them ordered by descending relevance. Equally
// relevant highlights keep their rewritten order.
func RewriteSection(ctx context.Context, extractor *llm.Extractor, section string, highlights []string, job *types.JobDescription, rc *ResumeContext) ([]string, error) {
	if len(highlights) == 0 {
		return nil, nil
	}

	input := prompts.Format(prompts.MustGet("tailoring.json", "section_rewrite_instructions"), map[string]string{
		"Job":        JobText(job),
		"Candidate":  rc.CandidateText(),
		"Highlights": bulletList(highlights),
	})

	var result sectionRewriteResult
	if err := extractor.Extract(ctx, sectionRewriteSchema(), input, &result); err != nil {
		return nil, &RewriteError{Section: section, Message: "extraction failed", Cause: err}
	}
	if len(result.Answer) == 0 {
		return nil, &RewriteError{Section: section, Message: "response contained no rewritten highlights"}
	}

	types.SortBulletsByRelevance(result.Answer)
	return types.HighlightStrings(result.Answer), nil
}

// JobText renders a job description for prompt embedding.
func JobText(job *types.JobDescription) string {
	data, err := yaml.Marshal(job)
	if err != nil {
		// yaml.Marshal on a plain struct does not fail in practice; fall
		// back to the fields prompts care about most.
		return fmt.Sprintf("%s at %s", job.Title, job.Company)
	}
	return string(data)
}

// bulletList renders highlights one per line with a leading dash.
func bulletList(highlights []string) string {
	var b strings.Builder
	for _, h := range highlights {
		b.WriteString("- ")
		b.WriteString(h)
		b.WriteString("\n")
	}
	return b.String()
}
