package services

import (
	"strconv"
	"strings"

	"github.com/zemlex/estate-catalog/internal/schema"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// applyAttributeFilters compiles inbound attr_* query parameters into
// per-field predicates over the attributes JSON column and ANDs them onto
// the query. Parameters that do not match a derived filter, or carry an
// unparseable value, are ignored.
func applyAttributeFilters(query *gorm.DB, dialect string, filters []schema.FilterDescriptor, params map[string]string) *gorm.DB {
	if len(params) == 0 {
		return query
	}

	for _, f := range filters {
		switch f.Type {
		case schema.FilterRange:
			if raw, ok := params[f.ParamMin]; ok {
				if v, err := strconv.ParseFloat(raw, 64); err == nil {
					expr, path := attrNumberExpr(dialect, f.Key)
					query = query.Where(expr+" >= ?", path, v)
				}
			}
			if raw, ok := params[f.ParamMax]; ok {
				if v, err := strconv.ParseFloat(raw, 64); err == nil {
					expr, path := attrNumberExpr(dialect, f.Key)
					query = query.Where(expr+" <= ?", path, v)
				}
			}

		case schema.FilterBoolean:
			if raw, ok := params[f.Param]; ok {
				if v, err := strconv.ParseBool(raw); err == nil {
					query = query.Where(datatypes.JSONQuery("attributes").Equals(v, f.Key))
				}
			}

		case schema.FilterSelect:
			raw, ok := params[f.Param]
			if !ok {
				continue
			}
			var values []string
			for _, v := range strings.Split(raw, ",") {
				if v = strings.TrimSpace(v); v != "" {
					values = append(values, v)
				}
			}
			if len(values) > 0 {
				expr, path := attrTextExpr(dialect, f.Key)
				query = query.Where(expr+" IN ?", path, values)
			}
		}
	}

	return query
}

// attrJSONPath builds a quoted JSON path for one attribute key. The path is
// always bound as a query parameter, never spliced into the SQL text, so
// schema keys cannot alter the statement.
func attrJSONPath(key string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(key)
	return `$."` + escaped + `"`
}

// attrNumberExpr builds a numeric comparison expression for one attribute
// key, per dialect. The returned argument carries the key or JSON path and
// binds to the expression's first placeholder.
func attrNumberExpr(dialect, key string) (string, interface{}) {
	switch dialect {
	case "postgres":
		return "CAST(attributes ->> ? AS numeric)", key
	case "sqlserver", "mssql":
		return "CAST(JSON_VALUE(attributes, ?) AS decimal(38,10))", attrJSONPath(key)
	default: // mysql, sqlite
		return "JSON_EXTRACT(attributes, ?)", attrJSONPath(key)
	}
}

// attrTextExpr builds a text extraction expression for one attribute key,
// per dialect.
func attrTextExpr(dialect, key string) (string, interface{}) {
	switch dialect {
	case "postgres":
		return "attributes ->> ?", key
	case "sqlserver", "mssql":
		return "JSON_VALUE(attributes, ?)", attrJSONPath(key)
	case "mysql":
		return "JSON_UNQUOTE(JSON_EXTRACT(attributes, ?))", attrJSONPath(key)
	default: // sqlite extracts SQL text directly
		return "JSON_EXTRACT(attributes, ?)", attrJSONPath(key)
	}
}

// applyPriceRange adds gte/lte bounds on a decimal column. Unparseable
// bounds are ignored.
func applyPriceRange(query *gorm.DB, column, min, max string) *gorm.DB {
	if min != "" {
		if v, err := strconv.ParseFloat(min, 64); err == nil {
			query = query.Where(column+" >= ?", v)
		}
	}
	if max != "" {
		if v, err := strconv.ParseFloat(max, 64); err == nil {
			query = query.Where(column+" <= ?", v)
		}
	}
	return query
}

// applyOrdering maps a client ordering parameter ("-price", "created_at")
// through a whitelist; unknown fields fall back to the default.
func applyOrdering(query *gorm.DB, ordering string, allowed map[string]string, fallback string) *gorm.DB {
	if ordering == "" {
		return query.Order(fallback)
	}
	desc := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")
	column, ok := allowed[field]
	if !ok {
		return query.Order(fallback)
	}
	if desc {
		return query.Order(column + " DESC")
	}
	return query.Order(column)
}

// applyPaging clamps and applies page/page_size.
func applyPaging(query *gorm.DB, page, pageSize int) *gorm.DB {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}
	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}
