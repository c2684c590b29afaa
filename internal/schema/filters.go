package schema

// Filter descriptor kinds.
const (
	FilterRange   = "range"
	FilterBoolean = "boolean"
	FilterSelect  = "select"
)

// FilterDescriptor describes one derived search filter for a schema field.
// The frontend renders its search form from these, so the JSON shape is
// external contract.
type FilterDescriptor struct {
	Type     string   `json:"type"`
	Label    string   `json:"label"`
	Param    string   `json:"param,omitempty"`
	ParamMin string   `json:"param_min,omitempty"`
	ParamMax string   `json:"param_max,omitempty"`
	Units    string   `json:"units"`
	Options  []string `json:"options,omitempty"`

	// Key is the schema field the filter compiles against. Not part of
	// the client payload.
	Key string `json:"-"`
}

// DeriveFilters derives the filter descriptor list for a schema document.
//
// number/integer fields produce a range filter with attr_<key>_min and
// attr_<key>_max parameters; boolean fields an exact-match attr_<key>
// parameter; string fields with declared choices a set-membership
// attr_<key>_in parameter whose options keep the declared order. Fields of
// any other shape produce nothing, leaving room for future field types.
func DeriveFilters(schemaDoc []byte) []FilterDescriptor {
	fields := Fields(schemaDoc)
	filters := make([]FilterDescriptor, 0, len(fields))

	for _, f := range fields {
		base := "attr_" + f.Key
		switch {
		case f.Type == TypeNumber || f.Type == TypeInteger:
			filters = append(filters, FilterDescriptor{
				Type:     FilterRange,
				Label:    f.Label,
				ParamMin: base + "_min",
				ParamMax: base + "_max",
				Units:    f.Units,
				Key:      f.Key,
			})
		case f.Type == TypeBoolean:
			filters = append(filters, FilterDescriptor{
				Type:  FilterBoolean,
				Label: f.Label,
				Param: base,
				Key:   f.Key,
			})
		case f.Type == TypeString && len(f.Choices) > 0:
			filters = append(filters, FilterDescriptor{
				Type:    FilterSelect,
				Label:   f.Label,
				Param:   base + "_in",
				Options: f.Choices,
				Key:     f.Key,
			})
		}
	}
	return filters
}
