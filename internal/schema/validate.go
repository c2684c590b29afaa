package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zemlex/estate-catalog/internal/types"
)

// Validate checks an attribute payload against a schema document.
//
// The schema is a floor, not a fence: keys not declared in the schema pass
// through untouched. With an empty or unusable schema only the "payload is
// a JSON object" check is performed. All violations are aggregated into a
// single validation error on the "attributes" field so callers can surface
// it as one client error.
func Validate(schemaDoc, attributes []byte) error {
	attrs, err := attributeMap(attributes)
	if err != nil {
		return types.NewValidationError("attributes", "attributes must be a JSON object")
	}

	fields := Fields(schemaDoc)
	if len(fields) == 0 {
		return nil
	}

	var problems []string
	for _, f := range fields {
		value, present := attrs[f.Key]
		if !present {
			if f.Required {
				problems = append(problems, fmt.Sprintf("'%s' is required", f.Key))
			}
			continue
		}
		if msg := checkValue(f, value); msg != "" {
			problems = append(problems, msg)
		}
	}

	if len(problems) > 0 {
		return types.NewValidationError("attributes", strings.Join(problems, "; "))
	}
	return nil
}

// attributeMap decodes the payload, treating an absent payload as empty.
func attributeMap(attributes []byte) (map[string]any, error) {
	if len(attributes) == 0 || string(attributes) == "null" {
		return map[string]any{}, nil
	}
	var attrs map[string]any
	if err := json.Unmarshal(attributes, &attrs); err != nil {
		return nil, err
	}
	if attrs == nil {
		attrs = map[string]any{}
	}
	return attrs, nil
}

func checkValue(f Field, value any) string {
	switch f.Type {
	case TypeNumber, TypeInteger:
		if _, ok := value.(float64); !ok {
			return fmt.Sprintf("'%s' must be a number", f.Key)
		}
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("'%s' must be a boolean", f.Key)
		}
	case TypeString:
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("'%s' must be a string", f.Key)
		}
		if len(f.Choices) > 0 && !contains(f.Choices, s) {
			return fmt.Sprintf("'%s' must be one of: %s", f.Key, strings.Join(f.Choices, ", "))
		}
	}
	// Fields with no type, or a type the engine does not know, are
	// accepted as-is.
	return ""
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
