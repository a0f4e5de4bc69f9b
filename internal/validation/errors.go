package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Violation records one mismatch between the resume file and the expected
// shape.
type Violation struct {
	// Path is a dotted path from the document root, e.g.
	// "experiences[0].titles[1].startdate".
	Path     string
	Expected string
	Actual   string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: expected %s, got %s", v.Path, v.Expected, v.Actual)
}

// section returns the top-level section a violation belongs to.
func (v Violation) section() string {
	path := v.Path
	if i := strings.IndexAny(path, ".["); i >= 0 {
		path = path[:i]
	}
	return path
}

// Error aggregates every violation found in one pass, grouped by top-level
// section with a correct example per affected section.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "resume file does not match the expected format (%d problem(s))", len(e.Violations))

	bySection := make(map[string][]Violation)
	var order []string
	for _, v := range e.Violations {
		section := v.section()
		if _, ok := bySection[section]; !ok {
			order = append(order, section)
		}
		bySection[section] = append(bySection[section], v)
	}
	sort.Strings(order)

	for _, section := range order {
		fmt.Fprintf(&b, "\n\nin section %q:", section)
		for _, v := range bySection[section] {
			fmt.Fprintf(&b, "\n  - %s", v)
		}
		if snippet := SectionSnippet(section); snippet != "" {
			b.WriteString("\n  expected format:\n")
			for _, line := range strings.Split(snippet, "\n") {
				fmt.Fprintf(&b, "    %s\n", line)
			}
		}
	}
	return b.String()
}
