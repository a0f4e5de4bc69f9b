// Package pipeline provides the high-level orchestration for resume
// tailoring.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-tailor/internal/fetch"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/parsing"
	"github.com/jonathan/resume-tailor/internal/prompts"
	"github.com/jonathan/resume-tailor/internal/rendering"
	"github.com/jonathan/resume-tailor/internal/rewriting"
	"github.com/jonathan/resume-tailor/internal/skills"
	"github.com/jonathan/resume-tailor/internal/storage"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/jonathan/resume-tailor/internal/validation"
)

// Pipeline wires the tailoring stages around shared infrastructure.
type Pipeline struct {
	Extractor    *llm.Extractor
	Store        *storage.Store
	FetchOptions *fetch.Options
	// Gate overrides the default polling review gate, mainly for tests.
	Gate ReviewGate
	// Renderer, when set, receives the finalized document after the review
	// gate and produces the rendered artifact.
	Renderer rendering.Renderer
	Log      zerolog.Logger
}

// Result summarizes a completed run.
type Result struct {
	JobID      string
	OutputPath string
	// Artifact is the rendered output path, empty without a renderer.
	Artifact string
	Job      *types.JobDescription
}

// runState threads the artifacts of a run through its stages.
type runState struct {
	opts     RunOptions
	resume   *types.ResumeDocument
	rc       *rewriting.ResumeContext
	job      *types.JobDescription
	jobID    string
	jobText  string
	output   string
	artifact string
}

// Run executes the tailoring stages in fixed order: parse job, load resume,
// build context, match skills, write objective, rewrite and review
// experiences, rewrite and review projects, persist, the optional manual
// review gate, then rendering. Job parsing, resume loading, and persistence
// are fatal; the tailoring stages degrade to the untailored content with a
// warning.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, &Error{Stage: StageOptions, Cause: err}
	}

	state := &runState{opts: opts}

	if err := p.parseJob(ctx, state); err != nil {
		return nil, &Error{Stage: StageParseJob, Cause: err}
	}

	if err := p.loadResume(state); err != nil {
		return nil, &Error{Stage: StageLoadResume, Cause: err}
	}

	if err := p.buildContext(state); err != nil {
		return nil, &Error{Stage: StageContext, Cause: err}
	}

	// Non-fatal tailoring stages.
	p.matchSkills(ctx, state)
	p.writeObjective(ctx, state)
	p.tailorExperiences(ctx, state)
	p.tailorProjects(ctx, state)

	if err := p.persist(state); err != nil {
		return nil, &Error{Stage: StagePersist, Cause: err}
	}

	if opts.ManualReview {
		if err := p.awaitReview(ctx, state); err != nil {
			return nil, &Error{Stage: StageReview, Cause: err}
		}
	}

	if p.Renderer != nil {
		if err := p.render(state); err != nil {
			return nil, &Error{Stage: StageRender, Cause: err}
		}
	}

	p.Log.Info().Str("job_id", state.jobID).Str("output", state.output).Msg("tailoring complete")
	return &Result{JobID: state.jobID, OutputPath: state.output, Artifact: state.artifact, Job: state.job}, nil
}

// loadResume reads and shape-checks the source resume.
func (p *Pipeline) loadResume(state *runState) error {
	raw, err := storage.ReadRawFile(state.opts.ResumePath)
	if err != nil {
		return err
	}

	result, err := validation.Validate(raw)
	if err != nil {
		return err
	}
	for _, note := range result.Notes {
		p.Log.Info().Msg(note)
	}

	resume, err := storage.ReadResumeFile(state.opts.ResumePath)
	if err != nil {
		return err
	}
	state.resume = resume
	return nil
}

// parseJob extracts the job description from the URL or inline text.
func (p *Pipeline) parseJob(ctx context.Context, state *runState) error {
	parser := parsing.NewParser(p.Extractor, p.Store, p.FetchOptions, state.opts.UseBrowser, p.Log)

	var (
		job   *types.JobDescription
		jobID string
		err   error
	)
	if state.opts.JobURL != "" {
		job, jobID, err = parser.ParseURL(ctx, state.opts.JobURL)
	} else {
		job, jobID, err = parser.ParseText(ctx, state.opts.JobText, "")
	}
	if err != nil {
		return err
	}

	p.Log.Info().Str("job_id", jobID).Str("company", job.Company).Str("title", job.Title).Msg("parsed job posting")
	state.job = job
	state.jobID = jobID
	state.jobText = rewriting.JobText(job)
	return nil
}

// buildContext derives the shared candidate context. An unparseable date
// invalidates cached extractions, since derived prompts embedded the bad
// value.
func (p *Pipeline) buildContext(state *runState) error {
	rc, err := rewriting.BuildResumeContext(state.resume, time.Now())
	if err != nil {
		if errors.Is(err, rewriting.ErrUnparseableDate) {
			p.Extractor.ClearCache()
		}
		return err
	}
	state.rc = rc
	return nil
}

// matchSkills merges job-matched skills into the resume's skill categories.
func (p *Pipeline) matchSkills(ctx context.Context, state *runState) {
	input := prompts.Format(prompts.MustGet("tailoring.json", "skills_match_instructions"), map[string]string{
		"Job":       state.jobText,
		"Candidate": state.rc.CandidateText(),
	})

	var result skillsMatchResult
	if err := p.Extractor.Extract(ctx, skillsMatchSchema(), input, &result); err != nil {
		p.Log.Warn().Err(err).Msg("skills matching failed, keeping original skills")
		return
	}

	matched := []types.SkillCategory{
		{Category: "Technical", Skills: result.FinalAnswer.TechnicalSkills},
		{Category: "Non-technical", Skills: result.FinalAnswer.NonTechnicalSkills},
	}
	state.resume.Skills = skills.Merge(state.resume.Skills, matched)
}

// writeObjective replaces the objective with a job-specific one.
func (p *Pipeline) writeObjective(ctx context.Context, state *runState) {
	input := prompts.Format(prompts.MustGet("tailoring.json", "objective_instructions"), map[string]string{
		"Job":       state.jobText,
		"Candidate": state.rc.CandidateText(),
	})

	var result objectiveResult
	if err := p.Extractor.Extract(ctx, objectiveSchema(), input, &result); err != nil {
		p.Log.Warn().Err(err).Msg("objective writing failed, keeping original objective")
		return
	}
	if result.FinalAnswer != "" {
		state.resume.Objective = result.FinalAnswer
	}
}

// tailorExperiences rewrites each experience entry, then runs the critic
// pass across the experience entries alone.
func (p *Pipeline) tailorExperiences(ctx context.Context, state *runState) {
	entries := make([]*[]string, len(state.resume.Experiences))
	for i := range state.resume.Experiences {
		entries[i] = &state.resume.Experiences[i].Highlights
	}
	p.tailorSection(ctx, state, "experiences", entries)
}

// tailorProjects does the same for projects, skipped when there are none.
func (p *Pipeline) tailorProjects(ctx context.Context, state *runState) {
	if len(state.resume.Projects) == 0 {
		return
	}
	entries := make([]*[]string, len(state.resume.Projects))
	for i := range state.resume.Projects {
		entries[i] = &state.resume.Projects[i].Highlights
	}
	p.tailorSection(ctx, state, "projects", entries)
}

// tailorSection rewrites one section's entries and reviews them together. A
// failed rewrite keeps that entry's original highlights; a failed review
// keeps the rewritten ones.
func (p *Pipeline) tailorSection(ctx context.Context, state *runState, section string, entries []*[]string) {
	for i, highlights := range entries {
		name := fmt.Sprintf("%s[%d]", section, i)
		rewritten, err := rewriting.RewriteSection(ctx, p.Extractor, name, *highlights, state.job, state.rc)
		if err != nil {
			p.Log.Warn().Err(err).Str("section", name).Msg("section rewrite failed, keeping original highlights")
			continue
		}
		if rewritten != nil {
			*highlights = rewritten
		}
	}

	drafts := make([][]string, len(entries))
	for i, highlights := range entries {
		drafts[i] = *highlights
	}
	reviewed, err := rewriting.ReviewBullets(ctx, p.Extractor, drafts, state.job, state.rc, p.Log)
	if err != nil {
		p.Log.Warn().Err(err).Str("section", section).Msg("bullet review failed, keeping rewritten bullets")
		return
	}
	for i, highlights := range entries {
		*highlights = reviewed[i]
	}
}

// persist writes the tailored resume with the editing flag set, marking it
// as awaiting review.
func (p *Pipeline) persist(state *runState) error {
	state.resume.Editing = true
	path, err := p.Store.WriteTailoredResume(state.jobID, state.resume)
	if err != nil {
		return err
	}
	state.output = path
	p.Log.Info().Str("path", path).Msg("tailored resume saved for review")
	return nil
}

// awaitReview blocks until the reviewer clears the editing flag.
func (p *Pipeline) awaitReview(ctx context.Context, state *runState) error {
	gate := p.Gate
	if gate == nil {
		timeout := state.opts.ReviewTimeout
		if timeout <= 0 {
			timeout = DefaultReviewTimeout
		}
		gate = &PollingGate{Store: p.Store, Interval: DefaultReviewInterval, Timeout: timeout}
	}

	p.Log.Info().Str("path", state.output).Msg("waiting for manual review; set editing: false when done")
	return gate.Wait(ctx, state.jobID)
}

// render hands the finalized document to the renderer. The document is
// re-read from storage so manual edits made during review are included.
func (p *Pipeline) render(state *runState) error {
	final, err := p.Store.ReadTailoredResume(state.jobID)
	if err != nil {
		return err
	}

	dir, err := p.Store.JobDir(state.jobID)
	if err != nil {
		return err
	}
	artifact, err := p.Renderer.Render(final, dir)
	if err != nil {
		return err
	}
	state.artifact = artifact
	p.Log.Info().Str("artifact", artifact).Msg("rendered tailored resume")
	return nil
}
