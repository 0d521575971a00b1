package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-heroform/pkg/hero"
	heroapi "github.com/goliatone/go-heroform/pkg/openapi"
)

const errorMessagesExtension = "x-error-messages"

// SchemaIssue is a single schema violation with its location.
type SchemaIssue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Rule    string `json:"rule,omitempty"`
	Message string `json:"message"`
}

// SchemaValidator enforces the HeroFields rules from the hero API
// description against form values.
type SchemaValidator struct {
	schema *openapi3.Schema
}

// NewSchemaValidator wraps a loaded fields schema.
func NewSchemaValidator(schema *openapi3.Schema) (*SchemaValidator, error) {
	if schema == nil {
		return nil, errors.New("validation: fields schema is nil")
	}
	return &SchemaValidator{schema: schema}, nil
}

// DefaultSchemaValidator uses the embedded hero API description.
func DefaultSchemaValidator() (*SchemaValidator, error) {
	spec, err := heroapi.Default()
	if err != nil {
		return nil, fmt.Errorf("validation: load hero API description: %w", err)
	}
	schema, err := spec.FieldsSchema()
	if err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return NewSchemaValidator(schema)
}

// Issues validates values (as produced by hero.FormState.Values) and returns
// every violation.
func (v *SchemaValidator) Issues(values map[string]any) []SchemaIssue {
	err := v.schema.VisitJSON(values, openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	var issues []SchemaIssue
	for _, leaf := range flattenErrors(err) {
		issues = append(issues, v.issueFromError(leaf))
	}
	return issues
}

// ValidateState runs the schema against the text fields and superpowers.
func (v *SchemaValidator) ValidateState(state *hero.FormState) hero.FieldErrors {
	var errs hero.FieldErrors
	for _, issue := range v.Issues(state.Values()) {
		field := issue.Field
		if field == "" {
			field = fieldFromPath(issue.Path)
		}
		errs.Add(field, issue.Message)
	}
	return errs
}

func flattenErrors(err error) []error {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []error
		for _, nested := range multi {
			out = append(out, flattenErrors(nested)...)
		}
		return out
	}
	return []error{err}
}

func (v *SchemaValidator) issueFromError(err error) SchemaIssue {
	var schemaErr *openapi3.SchemaError
	if !errors.As(err, &schemaErr) {
		return SchemaIssue{Message: strings.TrimSpace(err.Error())}
	}

	segments := schemaErr.JSONPointer()
	path := "/" + strings.Join(segments, "/")
	field := fieldFromPath(path)
	if field == "" && schemaErr.SchemaField == "required" {
		field = missingProperty(schemaErr.Reason)
		path = "/" + field
	}

	return SchemaIssue{
		Path:    path,
		Field:   field,
		Rule:    schemaErr.SchemaField,
		Message: v.message(schemaErr, field),
	}
}

// message prefers the failing schema's x-error-messages entry, then the
// owning property's, then the validator reason.
func (v *SchemaValidator) message(err *openapi3.SchemaError, field string) string {
	if msg := lookupMessage(err.Schema, err.SchemaField); msg != "" {
		return msg
	}
	if ref, ok := v.schema.Properties[field]; ok && ref != nil {
		if msg := lookupMessage(ref.Value, err.SchemaField); msg != "" {
			return msg
		}
	}
	reason := strings.TrimSpace(err.Reason)
	if reason == "" {
		reason = "is invalid"
	}
	return reason
}

func lookupMessage(schema *openapi3.Schema, rule string) string {
	if schema == nil || rule == "" {
		return ""
	}
	raw, ok := schema.Extensions[errorMessagesExtension]
	if !ok {
		return ""
	}
	messages, ok := raw.(map[string]any)
	if !ok {
		return ""
	}
	msg, _ := messages[rule].(string)
	return strings.TrimSpace(msg)
}

func missingProperty(reason string) string {
	start := strings.Index(reason, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(reason[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return reason[start+1 : start+1+end]
}

// fieldFromPath maps a JSON pointer such as /superpowers/2 onto the owning
// top-level field.
func fieldFromPath(pointer string) string {
	dotted := fieldPathFromPointer(pointer)
	if dotted == "" {
		return ""
	}
	if idx := strings.Index(dotted, "."); idx >= 0 {
		return dotted[:idx]
	}
	return dotted
}

func fieldPathFromPointer(pointer string) string {
	trimmed := strings.TrimSpace(pointer)
	trimmed = strings.TrimPrefix(trimmed, "#")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return ""
	}

	parts := strings.Split(trimmed, "/")
	out := make([]string, 0, len(parts))
	for idx := 0; idx < len(parts); idx++ {
		segment := strings.ReplaceAll(parts[idx], "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		switch segment {
		case "":
			continue
		case "properties":
			if idx+1 < len(parts) {
				out = append(out, parts[idx+1])
				idx++
			}
		default:
			out = append(out, segment)
		}
	}
	return strings.Join(out, ".")
}
