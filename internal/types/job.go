// Package types defines the shared data structures passed between pipeline stages.
package types

// JobDescription is the normalized record extracted from a job posting.
// Every field is optional: extraction may legitimately omit any of them.
// Instances are created once by the job posting parser and treated as
// immutable by later stages.
type JobDescription struct {
	Company            string   `json:"company,omitempty" yaml:"company,omitempty"`
	Title              string   `json:"job_title,omitempty" yaml:"job_title,omitempty"`
	Team               string   `json:"team,omitempty" yaml:"team,omitempty"`
	Summary            string   `json:"job_summary,omitempty" yaml:"job_summary,omitempty"`
	Salary             string   `json:"salary,omitempty" yaml:"salary,omitempty"`
	Duties             []string `json:"duties,omitempty" yaml:"duties,omitempty"`
	Qualifications     []string `json:"qualifications,omitempty" yaml:"qualifications,omitempty"`
	ATSKeywords        []string `json:"ats_keywords,omitempty" yaml:"ats_keywords,omitempty"`
	IsFullyRemote      *bool    `json:"is_fully_remote,omitempty" yaml:"is_fully_remote,omitempty"`
	TechnicalSkills    []string `json:"technical_skills,omitempty" yaml:"technical_skills,omitempty"`
	NonTechnicalSkills []string `json:"non_technical_skills,omitempty" yaml:"non_technical_skills,omitempty"`
}
