package rendering

import (
	"os"
	"path/filepath"

	"github.com/jonathan/resume-tailor/internal/types"
)

// Renderer turns a finalized resume into a reviewable artifact. It owns the
// output format and layout; callers only receive the artifact's location.
type Renderer interface {
	Render(resume *types.ResumeDocument, dir string) (string, error)
}

// MarkdownRenderer writes the resume as a Markdown file in the output
// directory.
type MarkdownRenderer struct{}

func (MarkdownRenderer) Render(resume *types.ResumeDocument, dir string) (string, error) {
	markdown, err := RenderMarkdown(resume)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, "resume.md")
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return "", &RenderError{Message: "failed to write markdown file", Cause: err}
	}
	return path, nil
}
