package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/zemlex/estate-catalog/internal/models"
	"github.com/zemlex/estate-catalog/internal/schema"
	"github.com/zemlex/estate-catalog/internal/types"
	"gorm.io/gorm"
)

// PropertyTypeInput is the write payload for a property type. The schema
// document is stored verbatim: no structural validation happens at write
// time, malformed schemas surface later as empty filter sets and skipped
// attribute validation.
type PropertyTypeInput struct {
	Name            string          `json:"name"`
	Slug            string          `json:"slug,omitempty"`
	AttributeSchema json.RawMessage `json:"attribute_schema,omitempty"`
}

// PropertyTypeView is a property type plus its derived filter descriptors,
// the shape both list and detail endpoints return.
type PropertyTypeView struct {
	models.PropertyType
	AvailableFilters []schema.FilterDescriptor `json:"available_filters"`
}

func propertyTypeView(pt models.PropertyType) PropertyTypeView {
	return PropertyTypeView{
		PropertyType:     pt,
		AvailableFilters: schema.DeriveFilters(pt.AttributeSchema),
	}
}

// DefinePropertyType creates the named type, or rewrites the schema of an
// existing type with the same name. The slug is derived from the name when
// absent and made unique with the probe-and-suffix loop.
func DefinePropertyType(db *gorm.DB, input PropertyTypeInput) (*PropertyTypeView, error) {
	if input.Name == "" {
		return nil, types.NewValidationError("name", "name is required")
	}

	schemaDoc := input.AttributeSchema
	if len(schemaDoc) == 0 {
		schemaDoc = json.RawMessage("{}")
	}

	var pt models.PropertyType
	err := db.Where("name = ?", input.Name).First(&pt).Error
	switch {
	case err == nil:
		pt.AttributeSchema = []byte(schemaDoc)
		if input.Slug != "" && input.Slug != pt.Slug {
			unique, err := uniqueSlug(db, &models.PropertyType{}, input.Slug, "type", pt.ID)
			if err != nil {
				return nil, err
			}
			pt.Slug = unique
		}
		if err := db.Save(&pt).Error; err != nil {
			return nil, err
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		slugSource := input.Slug
		if slugSource == "" {
			slugSource = input.Name
		}
		unique, err := uniqueSlug(db, &models.PropertyType{}, slugSource, "type", 0)
		if err != nil {
			return nil, err
		}
		pt = models.PropertyType{
			Name:            input.Name,
			Slug:            unique,
			AttributeSchema: []byte(schemaDoc),
		}
		if err := db.Create(&pt).Error; err != nil {
			return nil, err
		}

	default:
		return nil, err
	}

	view := propertyTypeView(pt)
	return &view, nil
}

// GetPropertyType resolves a property type by primary key or slug.
// All-digit identifiers are treated as primary keys.
func GetPropertyType(db *gorm.DB, identifier string) (*models.PropertyType, error) {
	var pt models.PropertyType
	var err error

	if id, convErr := strconv.ParseUint(identifier, 10, 64); convErr == nil {
		err = db.First(&pt, id).Error
	} else {
		err = db.Where("slug = ?", identifier).First(&pt).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NewNotFoundError(fmt.Sprintf("property type '%s' not found", identifier))
	}
	if err != nil {
		return nil, err
	}
	return &pt, nil
}

// ListPropertyTypes returns every type with derived filters, ordered by name.
func ListPropertyTypes(db *gorm.DB, search string) ([]PropertyTypeView, error) {
	query := db.Model(&models.PropertyType{}).Order("name")
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+lowered(search)+"%")
	}

	var pts []models.PropertyType
	if err := query.Find(&pts).Error; err != nil {
		return nil, err
	}

	views := make([]PropertyTypeView, 0, len(pts))
	for _, pt := range pts {
		views = append(views, propertyTypeView(pt))
	}
	return views, nil
}

// DeletePropertyType removes a type. Types still referenced by properties
// are protected: the delete fails with a conflict instead of orphaning rows.
func DeletePropertyType(db *gorm.DB, identifier string) error {
	pt, err := GetPropertyType(db, identifier)
	if err != nil {
		return err
	}

	var inUse int64
	if err := db.Model(&models.GenericProperty{}).Where("property_type_id = ?", pt.ID).Count(&inUse).Error; err != nil {
		return err
	}
	if inUse > 0 {
		return types.NewConflictError(fmt.Sprintf("property type '%s' is referenced by %d properties", pt.Name, inUse))
	}

	return db.Delete(&models.PropertyType{}, pt.ID).Error
}
