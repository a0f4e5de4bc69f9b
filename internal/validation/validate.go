package validation

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Result carries the non-fatal findings of a validation pass.
type Result struct {
	// Notes are informational observations that do not block tailoring,
	// such as an empty projects section.
	Notes []string
}

// Validate parses raw resume YAML and walks it against ResumeSpec. It
// collects every mismatch rather than stopping at the first, so one run
// reports everything that needs fixing. A non-nil error is always *Error
// unless the document itself fails to parse.
func Validate(raw []byte) (*Result, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse resume YAML: %w", err)
	}
	return ValidateDocument(doc)
}

// ValidateDocument walks an already-parsed document against ResumeSpec.
func ValidateDocument(doc map[string]any) (*Result, error) {
	result := &Result{}
	var violations []Violation

	for _, section := range ResumeSpec().Sections {
		value, present := doc[section.Name]
		if !present || value == nil {
			if section.Required {
				violations = append(violations, Violation{
					Path:     section.Name,
					Expected: section.Kind.String(),
					Actual:   "missing",
				})
			} else if section.Name == "projects" {
				result.Notes = append(result.Notes, "projects section is empty; it will be carried through unchanged")
			}
			continue
		}
		violations = append(violations, checkValue(section.Name, section, value)...)

		if section.Name == "projects" {
			if list, ok := value.([]any); ok && len(list) == 0 {
				result.Notes = append(result.Notes, "projects section is empty; it will be carried through unchanged")
			}
		}
	}

	if len(violations) > 0 {
		return result, &Error{Violations: violations}
	}
	return result, nil
}

// checkValue compares one value against its expected field, descending into
// lists and mappings.
func checkValue(path string, field Field, value any) []Violation {
	switch field.Kind {
	case KindString:
		if _, ok := value.(string); !ok {
			return []Violation{{Path: path, Expected: "string", Actual: describe(value)}}
		}
	case KindBool:
		if _, ok := value.(bool); !ok {
			return []Violation{{Path: path, Expected: "boolean", Actual: describe(value)}}
		}
	case KindIntOrString:
		switch value.(type) {
		case string, int, int64, uint64, float64:
		default:
			return []Violation{{Path: path, Expected: "string or number", Actual: describe(value)}}
		}
	case KindList:
		list, ok := value.([]any)
		if !ok {
			return []Violation{{Path: path, Expected: "list", Actual: describe(value)}}
		}
		if field.Elem == nil {
			return nil
		}
		var violations []Violation
		for i, elem := range list {
			violations = append(violations, checkValue(fmt.Sprintf("%s[%d]", path, i), *field.Elem, elem)...)
		}
		return violations
	case KindObject:
		obj, ok := asMapping(value)
		if !ok {
			return []Violation{{Path: path, Expected: "mapping", Actual: describe(value)}}
		}
		var violations []Violation
		for _, sub := range field.Fields {
			subValue, present := obj[sub.Name]
			subPath := path + "." + sub.Name
			if !present || subValue == nil {
				if sub.Required {
					violations = append(violations, Violation{
						Path:     subPath,
						Expected: sub.Kind.String(),
						Actual:   "missing",
					})
				}
				continue
			}
			violations = append(violations, checkValue(subPath, sub, subValue)...)
		}
		return violations
	}
	return nil
}

// asMapping normalizes the two mapping shapes yaml.v3 produces.
func asMapping(value any) (map[string]any, bool) {
	switch m := value.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = v
		}
		return out, true
	default:
		return nil, false
	}
}

// describe names a value's shape for violation messages.
func describe(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, uint64, float64:
		return "number"
	case []any:
		return "list"
	case map[string]any, map[any]any:
		return "mapping"
	default:
		return fmt.Sprintf("%T", value)
	}
}
