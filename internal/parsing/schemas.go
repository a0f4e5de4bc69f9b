package parsing

import (
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/prompts"
)

// DescriptionSchema extracts the descriptive fields of a job posting.
func DescriptionSchema() llm.ExtractionSchema {
	return llm.ExtractionSchema{
		Name:        "JobDescription",
		Description: prompts.MustGet("parsing.json", "job_posting_persona"),
		Tier:        llm.TierAdvanced,
		Fields: []llm.SchemaField{
			// Every field is optional: a posting may legitimately omit any
			// of them, and identifier derivation has URL and digest
			// fallbacks.
			{Name: "company", Type: llm.TypeString, Description: "hiring company name"},
			{Name: "job_title", Type: llm.TypeString, Description: "title of the role"},
			{Name: "team", Type: llm.TypeString, Description: "team or department, if stated"},
			{Name: "job_summary", Type: llm.TypeString, Description: "one-paragraph summary of the role"},
			{Name: "salary", Type: llm.TypeString, Description: "salary or range, exactly as written"},
			{Name: "duties", Type: llm.TypeStringList, Description: "responsibilities of the role"},
			{Name: "qualifications", Type: llm.TypeStringList, Description: "required and preferred qualifications"},
			{Name: "is_fully_remote", Type: llm.TypeBool, Description: "true only if the posting says the role is fully remote"},
		},
	}
}

// SkillsSchema extracts the skills and keyword fields of a job posting.
func SkillsSchema() llm.ExtractionSchema {
	return llm.ExtractionSchema{
		Name:        "JobSkills",
		Description: prompts.MustGet("parsing.json", "job_posting_persona"),
		Tier:        llm.TierStandard,
		Fields: []llm.SchemaField{
			{Name: "technical_skills", Type: llm.TypeStringList, Description: "languages, tools, platforms, methodologies", Required: true},
			{Name: "non_technical_skills", Type: llm.TypeStringList, Description: "communication, leadership, collaboration skills", Required: true},
			{Name: "ats_keywords", Type: llm.TypeStringList, Description: "keywords an applicant tracking system would scan for"},
		},
	}
}
