package models

import (
	"database/sql/driver"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSON is a gorm.io/datatypes.JSON variant with per-driver column type
// mapping, since MSSQL has no native 'json' data type.
type JSON datatypes.JSON

func (j JSON) Value() (driver.Value, error) {
	return datatypes.JSON(j).Value()
}

func (j *JSON) Scan(value interface{}) error {
	return (*datatypes.JSON)(j).Scan(value)
}

func (j JSON) MarshalJSON() ([]byte, error) {
	return datatypes.JSON(j).MarshalJSON()
}

func (j *JSON) UnmarshalJSON(b []byte) error {
	return (*datatypes.JSON)(j).UnmarshalJSON(b)
}

func (JSON) GormDataType() string {
	return "json"
}

// GormDBDataType selects the column type for each supported driver.
func (JSON) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}
