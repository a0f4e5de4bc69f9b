package pipeline

import (
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/prompts"
)

// skillsMatchSchema asks the model to plan before answering; only
// final_answer is consumed.
func skillsMatchSchema() llm.ExtractionSchema {
	return llm.ExtractionSchema{
		Name:        "SkillsMatch",
		Description: prompts.MustGet("tailoring.json", "writer_persona"),
		Tier:        llm.TierStandard,
		Fields: []llm.SchemaField{
			{Name: "plan", Type: llm.TypeString, Required: true},
			{Name: "additional_steps", Type: llm.TypeStringList},
			{Name: "work", Type: llm.TypeString},
			{
				Name: "final_answer", Type: llm.TypeObject, Required: true,
				Fields: []llm.SchemaField{
					{Name: "technical_skills", Type: llm.TypeStringList, Required: true},
					{Name: "non_technical_skills", Type: llm.TypeStringList, Required: true},
				},
			},
		},
	}
}

type skillsMatchResult struct {
	Plan        string `json:"plan"`
	FinalAnswer struct {
		TechnicalSkills    []string `json:"technical_skills"`
		NonTechnicalSkills []string `json:"non_technical_skills"`
	} `json:"final_answer"`
}

// objectiveSchema mirrors skillsMatchSchema with a single-sentence answer.
func objectiveSchema() llm.ExtractionSchema {
	return llm.ExtractionSchema{
		Name:        "ObjectiveWriter",
		Description: prompts.MustGet("tailoring.json", "writer_persona"),
		Tier:        llm.TierStandard,
		Fields: []llm.SchemaField{
			{Name: "plan", Type: llm.TypeString, Required: true},
			{Name: "additional_steps", Type: llm.TypeStringList},
			{Name: "work", Type: llm.TypeString},
			{Name: "final_answer", Type: llm.TypeString, Required: true},
		},
	}
}

type objectiveResult struct {
	Plan        string `json:"plan"`
	FinalAnswer string `json:"final_answer"`
}
