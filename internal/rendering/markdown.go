// Package rendering turns a tailored resume into reviewable output formats.
package rendering

import (
	"strings"
	"text/template"

	"github.com/jonathan/resume-tailor/internal/types"
)

const markdownTemplate = `# {{.Basic.Name}}
{{if .Basic.Address}}{{.Basic.Address}}{{end}}{{if .Basic.Email}} | {{.Basic.Email}}{{end}}{{if .Basic.Phone}} | {{.Basic.Phone}}{{end}}
{{- range .Basic.Websites}}
{{.}}
{{- end}}
{{if .Objective}}
## Objective

{{.Objective}}
{{end}}
{{- if .Experiences}}
## Experience
{{range .Experiences}}
### {{.Company}}{{if .Location}} — {{.Location}}{{end}}
{{- range .Titles}}
*{{.Name}}* ({{.StartDate}} – {{.EndDate}})
{{- end}}
{{range .Highlights}}- {{.}}
{{end}}
{{- end}}
{{- end}}
{{- if .Projects}}
## Projects
{{range .Projects}}
### {{.Name}}{{if and .ShowLink .Link}} ({{.Link}}){{end}}
{{range .Highlights}}- {{.}}
{{end}}
{{- end}}
{{- end}}
{{- if .Education}}
## Education
{{range .Education}}
**{{.School}}**
{{- range .Degrees}}
{{- range .Names}}
- {{.}}
{{- end}}
{{- end}}
{{end}}
{{- end}}
{{- if .Skills}}
## Skills
{{range .Skills}}
**{{.Category}}**: {{join .Skills ", "}}
{{- end}}
{{end}}`

var markdownTmpl = template.Must(
	template.New("resume").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(markdownTemplate),
)

// RenderMarkdown renders a resume as a Markdown document suitable for
// review.
func RenderMarkdown(resume *types.ResumeDocument) (string, error) {
	var b strings.Builder
	if err := markdownTmpl.Execute(&b, resume); err != nil {
		return "", &RenderError{Message: "failed to execute resume template", Cause: err}
	}
	return b.String(), nil
}
