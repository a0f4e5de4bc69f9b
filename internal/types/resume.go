package types

import "fmt"

// ResumeDocument is the working resume mutated in place as tailoring proceeds.
// A document is exclusively owned by one pipeline run; it is never shared
// across concurrent runs.
type ResumeDocument struct {
	Editing     bool            `yaml:"editing"`
	Basic       BasicInfo       `yaml:"basic"`
	Objective   string          `yaml:"objective"`
	Education   []Education     `yaml:"education"`
	Experiences []Experience    `yaml:"experiences"`
	Projects    []Project       `yaml:"projects,omitempty"`
	Skills      []SkillCategory `yaml:"skills"`
}

// BasicInfo holds name and contact details.
type BasicInfo struct {
	Name     string   `yaml:"name"`
	Address  string   `yaml:"address"`
	Email    string   `yaml:"email"`
	Phone    string   `yaml:"phone"`
	Websites []string `yaml:"websites"`
}

// Education is one school with its degrees.
type Education struct {
	School  string   `yaml:"school"`
	Degrees []Degree `yaml:"degrees"`
}

// Degree holds one or more degree names earned at a school.
type Degree struct {
	Names []string `yaml:"names"`
}

// Experience is one employment entry.
type Experience struct {
	Company    string   `yaml:"company"`
	SkipName   bool     `yaml:"skip_name"`
	Location   string   `yaml:"location"`
	Titles     []Title  `yaml:"titles"`
	Highlights []string `yaml:"highlights"`
}

// Title is a role held during an experience, with its date range.
// Start and end dates may appear as integers (bare years) or strings in the
// source YAML; FlexDate accepts both.
type Title struct {
	Name      string   `yaml:"name"`
	StartDate FlexDate `yaml:"startdate"`
	EndDate   FlexDate `yaml:"enddate"`
}

// Project is one portfolio project entry.
type Project struct {
	Name       string   `yaml:"name"`
	Link       string   `yaml:"link"`
	Date       string   `yaml:"date"`
	Hyperlink  bool     `yaml:"hyperlink"`
	ShowLink   bool     `yaml:"show_link"`
	Highlights []string `yaml:"highlights"`
}

// SkillCategory groups skills under a named category.
type SkillCategory struct {
	Category string   `yaml:"category"`
	Skills   []string `yaml:"skills"`
}

// FlexDate is a date field that tolerates bare-year integers and free-form
// strings in YAML, normalizing both to a string.
type FlexDate string

// UnmarshalYAML accepts scalar ints and strings.
func (d *FlexDate) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err == nil {
		*d = FlexDate(s)
		return nil
	}
	var n int
	if err := unmarshal(&n); err == nil {
		*d = FlexDate(fmt.Sprintf("%d", n))
		return nil
	}
	return fmt.Errorf("date must be a string or an integer year")
}

// MarshalYAML emits the normalized string form.
func (d FlexDate) MarshalYAML() (any, error) {
	return string(d), nil
}

// String returns the normalized date text.
func (d FlexDate) String() string { return string(d) }

// DegreeNames collects every degree name across all education entries, in
// document order.
func (r *ResumeDocument) DegreeNames() []string {
	var names []string
	for _, edu := range r.Education {
		for _, deg := range edu.Degrees {
			names = append(names, deg.Names...)
		}
	}
	return names
}
