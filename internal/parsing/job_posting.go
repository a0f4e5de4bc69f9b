// Package parsing turns raw job postings into structured job descriptions
// through schema-validated extraction.
package parsing

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-tailor/internal/fetch"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/prompts"
	"github.com/jonathan/resume-tailor/internal/storage"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Parser extracts job descriptions from posting text or URLs and persists
// them under a derived job identifier.
type Parser struct {
	extractor  *llm.Extractor
	store      *storage.Store
	fetchOpts  *fetch.Options
	useBrowser bool
	log        zerolog.Logger
}

// NewParser creates a parser. store may be nil to skip persistence, and
// fetchOpts may be nil for defaults. useBrowser enables headless rendering
// when a plain fetch returns too little content.
func NewParser(extractor *llm.Extractor, store *storage.Store, fetchOpts *fetch.Options, useBrowser bool, log zerolog.Logger) *Parser {
	if fetchOpts == nil {
		fetchOpts = fetch.DefaultOptions()
	}
	return &Parser{
		extractor:  extractor,
		store:      store,
		fetchOpts:  fetchOpts,
		useBrowser: useBrowser,
		log:        log,
	}
}

// ParseURL fetches a posting URL, extracts its text, and parses it. The
// returned identifier names the directory the description was persisted to.
func (p *Parser) ParseURL(ctx context.Context, postingURL string) (*types.JobDescription, string, error) {
	body, err := fetch.Fetch(ctx, postingURL, p.fetchOpts)
	if err != nil {
		return nil, "", &FetchError{URL: postingURL, Message: "could not retrieve posting", Cause: err}
	}

	text, err := fetch.ExtractText(string(body), fetch.JobPostingSelectors()...)
	if err != nil {
		return nil, "", &FetchError{URL: postingURL, Message: "could not extract posting text", Cause: err}
	}

	if p.useBrowser && fetch.ShouldUseBrowser(text) {
		p.log.Info().Str("url", postingURL).Msg("posting content too short, rendering with browser")
		html, renderErr := fetch.RenderWithBrowser(ctx, postingURL, 60*time.Second)
		if renderErr != nil {
			p.log.Warn().Err(renderErr).Str("url", postingURL).Msg("browser rendering failed, using plain fetch result")
		} else if rendered, extractErr := fetch.ExtractText(html, fetch.JobPostingSelectors()...); extractErr == nil && len(rendered) > len(text) {
			text = rendered
		}
	}

	return p.ParseText(ctx, text, postingURL)
}

// ParseText parses already-extracted posting text. Description and skills are
// extracted independently: losing one half still yields a usable result, and
// only the loss of both is an error. rawURL feeds identifier derivation and
// may be empty.
func (p *Parser) ParseText(ctx context.Context, text, rawURL string) (*types.JobDescription, string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, "", &ParseError{Message: "posting text is empty"}
	}

	jd := &types.JobDescription{}

	descInput := prompts.Format(prompts.MustGet("parsing.json", "job_description_instructions"), map[string]string{
		"Posting": text,
	})
	descErr := p.extractor.Extract(ctx, DescriptionSchema(), descInput, jd)
	if descErr != nil {
		p.log.Warn().Err(descErr).Msg("job description extraction failed")
	}

	var skills struct {
		TechnicalSkills    []string `json:"technical_skills"`
		NonTechnicalSkills []string `json:"non_technical_skills"`
		ATSKeywords        []string `json:"ats_keywords"`
	}
	skillsInput := prompts.Format(prompts.MustGet("parsing.json", "job_skills_instructions"), map[string]string{
		"Posting": text,
	})
	skillsErr := p.extractor.Extract(ctx, SkillsSchema(), skillsInput, &skills)
	if skillsErr != nil {
		p.log.Warn().Err(skillsErr).Msg("job skills extraction failed")
	} else {
		jd.TechnicalSkills = skills.TechnicalSkills
		jd.NonTechnicalSkills = skills.NonTechnicalSkills
		jd.ATSKeywords = skills.ATSKeywords
	}

	if descErr != nil && skillsErr != nil {
		return nil, "", &ParseError{Message: "both extractions failed", Cause: descErr}
	}

	jobID := DeriveIdentifier(jd.Company, jd.Title, rawURL)

	if p.store != nil {
		path, err := p.store.WriteJobDescription(jobID, jd)
		if err != nil {
			return nil, "", &ParseError{Message: "failed to persist job description", Cause: err}
		}
		p.log.Info().Str("job_id", jobID).Str("path", path).Msg("job description saved")
	}

	return jd, jobID, nil
}
