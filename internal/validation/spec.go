// Package validation checks that a parsed resume file matches the shape the
// tailoring pipeline expects before any model call is made.
package validation

// Kind identifies the expected YAML value shape at a given path.
type Kind int

const (
	// KindString expects a scalar string.
	KindString Kind = iota
	// KindBool expects a boolean.
	KindBool
	// KindIntOrString accepts either, since dates like 2021 parse as ints.
	KindIntOrString
	// KindList expects a sequence; Elem describes each element.
	KindList
	// KindObject expects a mapping; Fields describe its keys.
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindIntOrString:
		return "string or number"
	case KindList:
		return "list"
	case KindObject:
		return "mapping"
	default:
		return "unknown"
	}
}

// Field describes one expected key within a mapping.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	// Elem describes list elements when Kind is KindList.
	Elem *Field
	// Fields describe nested keys when Kind is KindObject.
	Fields []Field
}

// Spec is the full expected resume shape, one Field per top-level section.
type Spec struct {
	Sections []Field
}

// ResumeSpec returns the shape a tailorable resume file must have.
func ResumeSpec() Spec {
	return Spec{Sections: []Field{
		{
			Name: "basic", Kind: KindObject, Required: true,
			Fields: []Field{
				{Name: "name", Kind: KindString, Required: true},
				{Name: "address", Kind: KindString},
				{Name: "email", Kind: KindString, Required: true},
				{Name: "phone", Kind: KindString},
				{Name: "websites", Kind: KindList, Elem: &Field{Kind: KindString}},
			},
		},
		{Name: "objective", Kind: KindString},
		{
			Name: "education", Kind: KindList, Required: true,
			Elem: &Field{
				Kind: KindObject,
				Fields: []Field{
					{Name: "school", Kind: KindString, Required: true},
					{
						Name: "degrees", Kind: KindList, Required: true,
						Elem: &Field{
							Kind: KindObject,
							Fields: []Field{
								{Name: "names", Kind: KindList, Required: true, Elem: &Field{Kind: KindString}},
							},
						},
					},
				},
			},
		},
		{
			Name: "experiences", Kind: KindList, Required: true,
			Elem: &Field{
				Kind: KindObject,
				Fields: []Field{
					{Name: "company", Kind: KindString, Required: true},
					{Name: "skip_name", Kind: KindBool},
					{Name: "location", Kind: KindString},
					{
						Name: "titles", Kind: KindList, Required: true,
						Elem: &Field{
							Kind: KindObject,
							Fields: []Field{
								{Name: "name", Kind: KindString, Required: true},
								{Name: "startdate", Kind: KindIntOrString, Required: true},
								{Name: "enddate", Kind: KindIntOrString, Required: true},
							},
						},
					},
					{Name: "highlights", Kind: KindList, Required: true, Elem: &Field{Kind: KindString}},
				},
			},
		},
		{
			Name: "projects", Kind: KindList,
			Elem: &Field{
				Kind: KindObject,
				Fields: []Field{
					{Name: "name", Kind: KindString, Required: true},
					{Name: "link", Kind: KindString},
					{Name: "date", Kind: KindString},
					{Name: "hyperlink", Kind: KindBool},
					{Name: "show_link", Kind: KindBool},
					{Name: "highlights", Kind: KindList, Elem: &Field{Kind: KindString}},
				},
			},
		},
		{
			Name: "skills", Kind: KindList, Required: true,
			Elem: &Field{
				Kind: KindObject,
				Fields: []Field{
					{Name: "category", Kind: KindString, Required: true},
					{Name: "skills", Kind: KindList, Required: true, Elem: &Field{Kind: KindString}},
				},
			},
		},
	}}
}

// sectionSnippets maps each top-level section to a minimal correct example,
// shown alongside violations so the fix is obvious without reading docs.
var sectionSnippets = map[string]string{
	"basic": `basic:
  name: Jane Doe
  address: Springfield, USA
  email: jane@example.com
  phone: 555-0100
  websites:
    - https://github.com/janedoe`,
	"objective": `objective: Software engineer with 6 years of experience building data platforms.`,
	"education": `education:
  - school: State University
    degrees:
      - names:
          - B.S. Computer Science`,
	"experiences": `experiences:
  - company: Acme Corp
    skip_name: false
    location: Springfield, USA
    titles:
      - name: Software Engineer
        startdate: 2019
        enddate: current
    highlights:
      - Built the data ingestion pipeline handling 2M events/day.`,
	"projects": `projects:
  - name: Personal Site
    link: https://janedoe.dev
    hyperlink: true
    show_link: true
    date: 2023
    highlights:
      - Static site generator with custom templating.`,
	"skills": `skills:
  - category: Technical
    skills:
      - Go
      - PostgreSQL
  - category: Non-technical
    skills:
      - Communication`,
}

// SectionSnippet returns the example snippet for a top-level section, or the
// empty string when none exists.
func SectionSnippet(section string) string {
	return sectionSnippets[section]
}
