package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zemlex/estate-catalog/internal/database"
	"github.com/zemlex/estate-catalog/internal/models"
	"github.com/zemlex/estate-catalog/internal/types"
)

// setupTestDB creates an in-memory database with the full schema migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func testLocation(t *testing.T, db *gorm.DB) *models.Location {
	t.Helper()
	location := models.Location{Region: "Московская область", Locality: "Истра"}
	if err := db.Create(&location).Error; err != nil {
		t.Fatalf("Failed to create location: %v", err)
	}
	return &location
}

func testPropertyType(t *testing.T, db *gorm.DB, name string, schemaDoc string) *models.PropertyType {
	t.Helper()
	view, err := DefinePropertyType(db, PropertyTypeInput{
		Name:            name,
		AttributeSchema: []byte(schemaDoc),
	})
	if err != nil {
		t.Fatalf("Failed to define property type: %v", err)
	}
	return &view.PropertyType
}

func strPtr(s string) *string { return &s }

func flexPtr(v uint64) *types.FlexUint64 {
	f := types.FlexUint64(v)
	return &f
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
