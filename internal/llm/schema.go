// Package llm - schema.go defines extraction schemas as plain typed records.
// Schemas stay independent of any particular validation library: the JSON
// Schema used for conformance checking is generated from these records.
package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FieldType is the type hint for a schema field.
type FieldType string

// Field type constants cover every shape the extraction schemas use.
const (
	TypeString     FieldType = "string"
	TypeStringList FieldType = "[]string"
	TypeInt        FieldType = "int"
	TypeBool       FieldType = "bool"
	TypeObject     FieldType = "object"
	TypeObjectList FieldType = "[]object"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "JobDescription")
	Description string        // System prompt preamble describing the extraction task
	Tier        ModelTier     // Model tier to run the extraction on
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output. Object and
// object-list fields describe their element shape through Fields.
type SchemaField struct {
	Name        string
	Type        FieldType
	Description string
	Required    bool
	Min, Max    *int          // numeric bounds, TypeInt only
	Fields      []SchemaField // element fields for TypeObject / TypeObjectList
}

// IntRange returns bound pointers for a TypeInt field.
func IntRange(min, max int) (*int, *int) {
	return &min, &max
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n")
	writeFieldBlock(&sb, schema.Fields, 0)
	sb.WriteString("\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent facts.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// writeFieldBlock renders a JSON-shaped field listing with type hints.
func writeFieldBlock(sb *strings.Builder, fields []SchemaField, depth int) {
	indent := strings.Repeat("  ", depth)
	sb.WriteString(indent + "{\n")
	for _, field := range fields {
		inner := strings.Repeat("  ", depth+1)
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		switch field.Type {
		case TypeObject:
			sb.WriteString(fmt.Sprintf("%s%q:%s", inner, field.Name, requiredHint))
			if field.Description != "" {
				sb.WriteString(" // " + field.Description)
			}
			sb.WriteString("\n")
			writeFieldBlock(sb, field.Fields, depth+1)
		case TypeObjectList:
			sb.WriteString(fmt.Sprintf("%s%q: [%s", inner, field.Name, requiredHint))
			if field.Description != "" {
				sb.WriteString(" // " + field.Description)
			}
			sb.WriteString("\n")
			writeFieldBlock(sb, field.Fields, depth+1)
			sb.WriteString(inner + ", ...]\n")
		default:
			sb.WriteString(fmt.Sprintf("%s%q: %s%s", inner, field.Name, typeHint(field), requiredHint))
			if field.Description != "" {
				sb.WriteString(" // " + field.Description)
			}
			sb.WriteString("\n")
		}
	}
	sb.WriteString(indent + "}\n")
}

// typeHint renders a human-readable type hint for the prompt.
func typeHint(field SchemaField) string {
	switch field.Type {
	case TypeStringList:
		return `["string"]`
	case TypeInt:
		if field.Min != nil && field.Max != nil {
			return fmt.Sprintf("integer %d-%d", *field.Min, *field.Max)
		}
		return "integer"
	case TypeBool:
		return "true|false"
	default:
		return `"string"`
	}
}

// JSONSchema generates a JSON Schema document from the record, used to check
// that extraction responses conform before they are decoded.
func (s ExtractionSchema) JSONSchema() (string, error) {
	root := objectSchema(s.Fields)
	root["$schema"] = "http://json-schema.org/draft-07/schema#"
	root["title"] = s.Name

	data, err := json.Marshal(root)
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema %s: %w", s.Name, err)
	}
	return string(data), nil
}

func objectSchema(fields []SchemaField) map[string]any {
	properties := make(map[string]any, len(fields))
	var required []string
	for _, field := range fields {
		properties[field.Name] = fieldSchema(field)
		if field.Required {
			required = append(required, field.Name)
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func fieldSchema(field SchemaField) map[string]any {
	switch field.Type {
	case TypeStringList:
		return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
	case TypeInt:
		schema := map[string]any{"type": "integer"}
		if field.Min != nil {
			schema["minimum"] = *field.Min
		}
		if field.Max != nil {
			schema["maximum"] = *field.Max
		}
		return schema
	case TypeBool:
		return map[string]any{"type": "boolean"}
	case TypeObject:
		return objectSchema(field.Fields)
	case TypeObjectList:
		return map[string]any{"type": "array", "items": objectSchema(field.Fields)}
	default:
		return map[string]any{"type": "string"}
	}
}
