// Package schema implements the attribute schema engine for dynamically
// typed properties: field extraction from stored schema documents,
// payload validation and search-filter derivation.
package schema

import (
	"bytes"
	"encoding/json"
)

// Field value types understood by the validator and filter compiler.
// Anything else is carried verbatim but ignored by both.
const (
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeString  = "string"
)

// Field is one declared attribute of a property type.
type Field struct {
	Key      string
	Type     string
	Label    string
	Required bool
	Choices  []string
	Units    string
}

// Fields extracts the declared attribute fields from a raw schema document,
// in declaration order.
//
// Two document shapes are accepted: the property map nested under a
// "properties" key (JSON-Schema style), or the property map at the top
// level next to an optional stray "type" key. The nested shape wins when
// both could apply. Anything else, including documents that fail to parse,
// yields no fields; stored schemas are never rejected, they degrade.
func Fields(raw []byte) []Field {
	props, order := propertyMap(raw)
	if props == nil {
		return nil
	}

	fields := make([]Field, 0, len(order))
	for _, key := range order {
		f, ok := parseField(key, props[key])
		if !ok {
			// Descriptor is not an object; skipped, never an error.
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// propertyMap locates the attribute descriptor object inside raw and
// returns it together with its key order.
func propertyMap(raw []byte) (map[string]json.RawMessage, []string) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, nil
	}

	if nested, ok := top["properties"]; ok {
		var props map[string]json.RawMessage
		if err := json.Unmarshal(nested, &props); err == nil {
			return props, objectKeys(nested)
		}
	}

	// Flat shape: every non-"type" value must itself be an object,
	// otherwise the document is not a property map and we emit nothing.
	props := make(map[string]json.RawMessage, len(top))
	for key, value := range top {
		if key == "type" {
			continue
		}
		if !isObject(value) {
			return nil, nil
		}
		props[key] = value
	}

	order := make([]string, 0, len(props))
	for _, key := range objectKeys(raw) {
		if _, ok := props[key]; ok {
			order = append(order, key)
		}
	}
	return props, order
}

// objectKeys returns the top-level keys of a JSON object in document order.
// Go maps do not keep insertion order, so the declared order has to be
// recovered from the token stream.
func objectKeys(raw []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return keys
		}
		key, ok := tok.(string)
		if !ok {
			return keys
		}
		keys = append(keys, key)

		// Skip the value.
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return keys
		}
	}
	return keys
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func parseField(key string, raw json.RawMessage) (Field, bool) {
	var desc map[string]any
	if err := json.Unmarshal(raw, &desc); err != nil || desc == nil {
		return Field{}, false
	}

	f := Field{Key: key, Label: key}

	if t, ok := desc["type"].(string); ok {
		f.Type = t
	}
	// Label precedence: title, then label, then the key itself.
	if title, ok := desc["title"].(string); ok {
		f.Label = title
	} else if label, ok := desc["label"].(string); ok {
		f.Label = label
	}
	if required, ok := desc["required"].(bool); ok {
		f.Required = required
	}
	if units, ok := desc["units"].(string); ok {
		f.Units = units
	}

	choices, ok := desc["choices"]
	if !ok {
		choices = desc["enum"]
	}
	if list, ok := choices.([]any); ok {
		for _, item := range list {
			if s, ok := item.(string); ok {
				f.Choices = append(f.Choices, s)
			}
		}
	}

	return f, true
}
