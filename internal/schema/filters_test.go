package schema

import (
	"reflect"
	"testing"
)

func TestDeriveFilters(t *testing.T) {
	doc := []byte(`{
		"area_sqm": {"type": "number", "title": "Площадь", "units": "м²"},
		"has_balcony": {"type": "boolean", "title": "Балкон"},
		"material": {"type": "string", "title": "Материал", "choices": ["Кирпич", "Брус"]}
	}`)

	filters := DeriveFilters(doc)
	want := []FilterDescriptor{
		{Type: FilterRange, Label: "Площадь", ParamMin: "attr_area_sqm_min", ParamMax: "attr_area_sqm_max", Units: "м²", Key: "area_sqm"},
		{Type: FilterBoolean, Label: "Балкон", Param: "attr_has_balcony", Key: "has_balcony"},
		{Type: FilterSelect, Label: "Материал", Param: "attr_material_in", Options: []string{"Кирпич", "Брус"}, Key: "material"},
	}

	if !reflect.DeepEqual(filters, want) {
		t.Errorf("derived filters mismatch:\n got %+v\nwant %+v", filters, want)
	}
}

func TestDeriveFiltersSkipsUnfilterable(t *testing.T) {
	doc := []byte(`{
		"notes": {"type": "string"},
		"untyped": {"title": "Mystery"},
		"floor": {"type": "integer"}
	}`)

	filters := DeriveFilters(doc)
	if len(filters) != 1 {
		t.Fatalf("expected one filter, got %+v", filters)
	}
	if filters[0].Type != FilterRange || filters[0].ParamMin != "attr_floor_min" {
		t.Errorf("unexpected filter: %+v", filters[0])
	}
}

func TestDeriveFiltersEmptySchema(t *testing.T) {
	if filters := DeriveFilters(nil); len(filters) != 0 {
		t.Errorf("expected no filters, got %+v", filters)
	}
}
