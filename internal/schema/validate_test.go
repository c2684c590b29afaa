package schema

import (
	"strings"
	"testing"

	"github.com/zemlex/estate-catalog/internal/types"
)

var flatSchema = []byte(`{
	"rooms": {"type": "integer", "required": true},
	"area": {"type": "number"},
	"has_balcony": {"type": "boolean"},
	"material": {"type": "string", "choices": ["Кирпич", "Брус"]}
}`)

func TestValidateAccepts(t *testing.T) {
	cases := map[string]string{
		"full payload":     `{"rooms": 3, "area": 54.5, "has_balcony": true, "material": "Брус"}`,
		"minimal payload":  `{"rooms": 1}`,
		"unknown keys":     `{"rooms": 2, "garage": "detached", "extras": [1, 2]}`,
		"untyped tolerant": `{"rooms": 2, "material": "Кирпич"}`,
	}
	for name, payload := range cases {
		if err := Validate(flatSchema, []byte(payload)); err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]struct {
		payload string
		want    string
	}{
		"missing required":  {`{"area": 10}`, "'rooms' is required"},
		"wrong number type": {`{"rooms": "три"}`, "'rooms' must be a number"},
		"wrong bool type":   {`{"rooms": 1, "has_balcony": "yes"}`, "'has_balcony' must be a boolean"},
		"bad choice":        {`{"rooms": 1, "material": "Бетон"}`, "must be one of: Кирпич, Брус"},
		"not an object":     {`[1, 2]`, "attributes must be a JSON object"},
	}
	for name, tc := range cases {
		err := Validate(flatSchema, []byte(tc.payload))
		if err == nil {
			t.Errorf("%s: expected error", name)
			continue
		}
		if !types.IsKind(err, types.KindValidation) {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
		ce := err.(*types.CatalogError)
		if ce.Field != "attributes" {
			t.Errorf("%s: expected error keyed on attributes, got %q", name, ce.Field)
		}
		if !strings.Contains(ce.Message, tc.want) {
			t.Errorf("%s: message %q does not mention %q", name, ce.Message, tc.want)
		}
	}
}

func TestValidateAggregatesProblems(t *testing.T) {
	err := Validate(flatSchema, []byte(`{"rooms": "x", "has_balcony": 5}`))
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.(*types.CatalogError).Message
	if !strings.Contains(msg, "'rooms' must be a number") || !strings.Contains(msg, "'has_balcony' must be a boolean") {
		t.Errorf("expected both problems aggregated, got %q", msg)
	}
}

func TestValidateEmptySchemaOrPayload(t *testing.T) {
	if err := Validate(nil, []byte(`{"anything": "goes"}`)); err != nil {
		t.Errorf("empty schema must accept any object: %v", err)
	}
	if err := Validate([]byte(`{"name": "broken", "v": 1}`), []byte(`{"x": 1}`)); err != nil {
		t.Errorf("unusable schema must accept any object: %v", err)
	}
	if err := Validate(flatSchema, nil); err == nil {
		t.Error("empty payload must still fail the required check")
	}
	if err := Validate([]byte(`{"optional": {"type": "string"}}`), nil); err != nil {
		t.Errorf("empty payload with no required fields must pass: %v", err)
	}
}
