package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// JSONSchema defines the structure for input/output schemas
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties"`
}

type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	MinLength   *int   `json:"minLength,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidateInput checks job variables against schema. A schema that cannot be
// compiled is reported as a single SCHEMA_ERROR.
func ValidateInput(input map[string]interface{}, schema JSONSchema) *ValidationResult {
	result, err := ValidateDocument(input, schema)
	if err != nil {
		return &ValidationResult{
			Errors: []ValidationError{{Field: rootField, Message: err.Error(), Code: "SCHEMA_ERROR"}},
		}
	}
	return result
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// ValidateDocument checks any JSON-serializable value against schema.
// String lengths are counted in characters.
func ValidateDocument(document interface{}, schema JSONSchema) (*ValidationResult, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewGoLoader(document),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate document: %w", err)
	}

	errors := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errors = append(errors, ValidationError{
			Field:   errorField(desc),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}

	return &ValidationResult{
		Valid:  result.Valid(),
		Errors: errors,
	}, nil
}

const rootField = "(root)"

// errorField names the offending property. Required and additional-property
// errors are raised on the parent object, so the property comes from details.
func errorField(desc gojsonschema.ResultError) string {
	if property, ok := desc.Details()["property"].(string); ok && property != "" {
		if desc.Field() == rootField {
			return property
		}
		return desc.Field() + "." + property
	}
	return desc.Field()
}
