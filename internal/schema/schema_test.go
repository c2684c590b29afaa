package schema

import (
	"reflect"
	"testing"
)

func TestFieldsNestedShape(t *testing.T) {
	doc := []byte(`{
		"type": "object",
		"properties": {
			"area_sqm": {"type": "number", "title": "Площадь", "units": "м²", "required": true},
			"rooms": {"type": "integer"},
			"material": {"type": "string", "choices": ["Кирпич", "Брус"]}
		}
	}`)

	fields := Fields(doc)
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}

	if fields[0].Key != "area_sqm" || fields[1].Key != "rooms" || fields[2].Key != "material" {
		t.Errorf("declaration order lost: %v", fields)
	}
	if fields[0].Label != "Площадь" {
		t.Errorf("expected title as label, got %q", fields[0].Label)
	}
	if fields[0].Units != "м²" {
		t.Errorf("expected units carried, got %q", fields[0].Units)
	}
	if !fields[0].Required {
		t.Error("expected area_sqm to be required")
	}
	if fields[1].Label != "rooms" {
		t.Errorf("expected key fallback label, got %q", fields[1].Label)
	}
	if !reflect.DeepEqual(fields[2].Choices, []string{"Кирпич", "Брус"}) {
		t.Errorf("choices order lost: %v", fields[2].Choices)
	}
}

func TestFieldsFlatShape(t *testing.T) {
	doc := []byte(`{
		"type": "object",
		"has_balcony": {"type": "boolean", "label": "Балкон"},
		"floor": {"type": "integer"}
	}`)

	fields := Fields(doc)
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Key != "has_balcony" || fields[1].Key != "floor" {
		t.Errorf("declaration order lost: %v", fields)
	}
	if fields[0].Label != "Балкон" {
		t.Errorf("expected label fallback, got %q", fields[0].Label)
	}
}

func TestFieldsNestedShapeWins(t *testing.T) {
	// Both shapes could apply; the nested property map must win.
	doc := []byte(`{
		"properties": {"rooms": {"type": "integer"}},
		"stray": {"type": "boolean"}
	}`)

	fields := Fields(doc)
	if len(fields) != 1 || fields[0].Key != "rooms" {
		t.Fatalf("expected only nested fields, got %v", fields)
	}
}

func TestFieldsLabelPrecedence(t *testing.T) {
	doc := []byte(`{"x": {"type": "string", "title": "Title", "label": "Label"}}`)
	fields := Fields(doc)
	if len(fields) != 1 || fields[0].Label != "Title" {
		t.Fatalf("title must beat label: %v", fields)
	}
}

func TestFieldsDegradesSilently(t *testing.T) {
	cases := map[string]string{
		"empty":            ``,
		"not json":         `{"broken`,
		"not an object":    `[1, 2, 3]`,
		"scalar values":    `{"name": "flat", "count": 3}`,
		"null":             `null`,
		"mixed flat shape": `{"ok": {"type": "string"}, "bad": 42}`,
	}
	for name, doc := range cases {
		if fields := Fields([]byte(doc)); len(fields) != 0 {
			t.Errorf("%s: expected no fields, got %v", name, fields)
		}
	}
}

func TestFieldsSkipsMalformedDescriptor(t *testing.T) {
	doc := []byte(`{"properties": {"good": {"type": "number"}, "bad": "nope"}}`)
	fields := Fields(doc)
	if len(fields) != 1 || fields[0].Key != "good" {
		t.Fatalf("expected bad descriptor skipped, got %v", fields)
	}
}

func TestFieldsEnumFallback(t *testing.T) {
	doc := []byte(`{"kind": {"type": "string", "enum": ["a", "b"]}}`)
	fields := Fields(doc)
	if len(fields) != 1 || !reflect.DeepEqual(fields[0].Choices, []string{"a", "b"}) {
		t.Fatalf("enum must populate choices: %v", fields)
	}
}
