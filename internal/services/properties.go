package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zemlex/estate-catalog/internal/models"
	"github.com/zemlex/estate-catalog/internal/schema"
	"github.com/zemlex/estate-catalog/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

var listingStatuses = map[string]bool{
	models.ListingStatusPublished: true,
	models.ListingStatusHidden:    true,
	models.ListingStatusReserved:  true,
	models.ListingStatusSold:      true,
}

// GenericPropertyInput is the write payload for a generic property. Id
// references accept both JSON numbers and strings (FlexUint64). Nil pointer
// fields are left unchanged on update.
type GenericPropertyInput struct {
	PropertyTypeID *types.FlexUint64 `json:"property_type_id"`
	LocationID     *types.FlexUint64 `json:"location_id"`
	ParentID       *types.FlexUint64 `json:"parent_id"`
	Title          *string           `json:"title"`
	Description    *string           `json:"description"`
	Price          *decimal.Decimal  `json:"price"`
	ListingStatus  *string           `json:"listing_status"`
	Attributes     json.RawMessage   `json:"attributes"`
}

// GenericPropertyView is the read representation of a property.
type GenericPropertyView struct {
	models.GenericProperty
	ParentSlug    string             `json:"parent_slug,omitempty"`
	ChildrenCount int64              `json:"children_count"`
	MediaFiles    []models.MediaFile `json:"media_files"`
}

// CreateGenericProperty validates the attribute payload against the type's
// schema and persists the property with a derived unique slug.
func CreateGenericProperty(db *gorm.DB, input GenericPropertyInput) (*GenericPropertyView, error) {
	if input.Title == nil || *input.Title == "" {
		return nil, types.NewValidationError("title", "title is required")
	}
	if input.PropertyTypeID == nil {
		return nil, types.NewValidationError("property_type_id", "property_type_id is required")
	}
	if input.LocationID == nil {
		return nil, types.NewValidationError("location_id", "location_id is required")
	}
	if input.Price == nil {
		return nil, types.NewValidationError("price", "price is required")
	}

	var pt models.PropertyType
	if err := db.First(&pt, input.PropertyTypeID.Uint64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewValidationError("property_type_id", "property type does not exist")
		}
		return nil, err
	}
	if err := referenceExists(db, &models.Location{}, input.LocationID.Uint64(), "location_id"); err != nil {
		return nil, err
	}
	if input.ParentID != nil {
		if err := referenceExists(db, &models.GenericProperty{}, input.ParentID.Uint64(), "parent_id"); err != nil {
			return nil, err
		}
	}

	status := models.ListingStatusHidden
	if input.ListingStatus != nil {
		if !listingStatuses[*input.ListingStatus] {
			return nil, types.NewValidationError("listing_status", fmt.Sprintf("unknown listing status '%s'", *input.ListingStatus))
		}
		status = *input.ListingStatus
	}

	attrs := input.Attributes
	if len(attrs) == 0 {
		attrs = json.RawMessage("{}")
	}
	if err := schema.Validate(pt.AttributeSchema, attrs); err != nil {
		return nil, err
	}

	slugValue, err := uniqueSlug(db, &models.GenericProperty{}, *input.Title, pt.Slug, 0)
	if err != nil {
		return nil, err
	}

	prop := models.GenericProperty{
		PropertyTypeID: pt.ID,
		LocationID:     input.LocationID.Uint64(),
		Title:          *input.Title,
		Slug:           slugValue,
		Price:          *input.Price,
		ListingStatus:  status,
		Attributes:     []byte(attrs),
	}
	if input.Description != nil {
		prop.Description = *input.Description
	}
	if input.ParentID != nil {
		parentID := input.ParentID.Uint64()
		prop.ParentID = &parentID
	}

	if err := db.Create(&prop).Error; err != nil {
		return nil, err
	}
	return GetGenericProperty(db, prop.Slug)
}

// UpdateGenericProperty applies a partial update. When the attribute payload
// is part of the update it is re-validated against the effective property
// type's schema; updates that leave attributes untouched are not
// re-validated (schema changes never retroactively invalidate rows).
func UpdateGenericProperty(db *gorm.DB, identifier string, input GenericPropertyInput) (*GenericPropertyView, error) {
	prop, err := findGenericProperty(db, identifier)
	if err != nil {
		return nil, err
	}

	typeID := prop.PropertyTypeID
	if input.PropertyTypeID != nil {
		typeID = input.PropertyTypeID.Uint64()
	}
	var pt models.PropertyType
	if err := db.First(&pt, typeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewValidationError("property_type_id", "property type does not exist")
		}
		return nil, err
	}

	if input.Attributes != nil {
		if err := schema.Validate(pt.AttributeSchema, input.Attributes); err != nil {
			return nil, err
		}
		prop.Attributes = []byte(input.Attributes)
	}

	prop.PropertyTypeID = pt.ID
	if input.LocationID != nil {
		if err := referenceExists(db, &models.Location{}, input.LocationID.Uint64(), "location_id"); err != nil {
			return nil, err
		}
		prop.LocationID = input.LocationID.Uint64()
	}
	if input.ParentID != nil {
		if err := referenceExists(db, &models.GenericProperty{}, input.ParentID.Uint64(), "parent_id"); err != nil {
			return nil, err
		}
		parentID := input.ParentID.Uint64()
		prop.ParentID = &parentID
	}
	if input.Title != nil && *input.Title != "" {
		prop.Title = *input.Title
	}
	if input.Description != nil {
		prop.Description = *input.Description
	}
	if input.Price != nil {
		prop.Price = *input.Price
	}
	if input.ListingStatus != nil {
		if !listingStatuses[*input.ListingStatus] {
			return nil, types.NewValidationError("listing_status", fmt.Sprintf("unknown listing status '%s'", *input.ListingStatus))
		}
		prop.ListingStatus = *input.ListingStatus
	}

	if err := db.Save(prop).Error; err != nil {
		return nil, err
	}
	return GetGenericProperty(db, prop.Slug)
}

// GetGenericProperty resolves a property by primary key or slug and loads
// its relations and attached media.
func GetGenericProperty(db *gorm.DB, identifier string) (*GenericPropertyView, error) {
	prop, err := findGenericProperty(db, identifier,
		func(q *gorm.DB) *gorm.DB { return q.Preload("PropertyType").Preload("Location").Preload("Parent") })
	if err != nil {
		return nil, err
	}
	return genericPropertyView(db, prop)
}

// DeleteGenericProperty removes a property, its children and the media
// records attached to any of them.
func DeleteGenericProperty(db *gorm.DB, identifier string) error {
	prop, err := findGenericProperty(db, identifier)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var children []models.GenericProperty
		if err := tx.Where("parent_id = ?", prop.ID).Find(&children).Error; err != nil {
			return err
		}
		for _, child := range children {
			if err := deletePropertyRow(tx, child.ID); err != nil {
				return err
			}
		}
		return deletePropertyRow(tx, prop.ID)
	})
}

func deletePropertyRow(tx *gorm.DB, id uint64) error {
	if err := tx.Where("namespace = ? AND model_name = ? AND object_id = ?",
		NamespaceCatalog, ModelGenericProperty, id).Delete(&models.MediaFile{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.GenericProperty{}, id).Error
}

// ListPropertiesQuery carries list endpoint parameters. AttrParams holds the
// raw attr_* query values; predicates are compiled from them against the
// requested type's schema.
type ListPropertiesQuery struct {
	Page             int
	PageSize         int
	Ordering         string
	Search           string
	PriceMin         string
	PriceMax         string
	ListingStatus    string
	PropertyTypeSlug string
	LocationRegion   string
	LocationLocality string
	ParentID         string
	AttrParams       map[string]string
}

var propertyOrderings = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"price":      "price",
	"view_count": "view_count",
}

// ListGenericProperties runs the filtered list query. Published listings
// only, unless a listing_status filter is passed explicitly.
func ListGenericProperties(db *gorm.DB, q ListPropertiesQuery) ([]GenericPropertyView, int64, error) {
	query := db.Model(&models.GenericProperty{}).
		Clauses(hints.Comment("select", "catalog:properties")).
		Preload("PropertyType").Preload("Location").Preload("Parent")

	status := q.ListingStatus
	if status == "" {
		status = models.ListingStatusPublished
	}
	query = query.Where("listing_status = ?", status)

	if q.PropertyTypeSlug != "" {
		var pt models.PropertyType
		if err := db.Where("slug = ?", q.PropertyTypeSlug).First(&pt).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []GenericPropertyView{}, 0, nil
			}
			return nil, 0, err
		}
		query = query.Where("property_type_id = ?", pt.ID)
		query = applyAttributeFilters(query, db.Dialector.Name(), schema.DeriveFilters(pt.AttributeSchema), q.AttrParams)
	}

	query = applyPriceRange(query, "price", q.PriceMin, q.PriceMax)

	if q.ParentID != "" {
		if id, err := strconv.ParseUint(q.ParentID, 10, 64); err == nil {
			query = query.Where("parent_id = ?", id)
		}
	}
	if q.LocationRegion != "" {
		query = query.Where("location_id IN (?)",
			db.Model(&models.Location{}).Select("id").Where("LOWER(region) LIKE ?", "%"+lowered(q.LocationRegion)+"%"))
	}
	if q.LocationLocality != "" {
		query = query.Where("location_id IN (?)",
			db.Model(&models.Location{}).Select("id").Where("LOWER(locality) LIKE ?", "%"+lowered(q.LocationLocality)+"%"))
	}
	if q.Search != "" {
		needle := "%" + lowered(q.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR location_id IN (?) OR property_type_id IN (?)",
			needle, needle,
			db.Model(&models.Location{}).Select("id").Where("LOWER(region) LIKE ? OR LOWER(locality) LIKE ?", needle, needle),
			db.Model(&models.PropertyType{}).Select("id").Where("LOWER(name) LIKE ?", needle),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyOrdering(query, q.Ordering, propertyOrderings, "created_at DESC")
	query = applyPaging(query, q.Page, q.PageSize)

	var props []models.GenericProperty
	if err := query.Find(&props).Error; err != nil {
		return nil, 0, err
	}

	views := make([]GenericPropertyView, 0, len(props))
	for i := range props {
		view, err := genericPropertyView(db, &props[i])
		if err != nil {
			return nil, 0, err
		}
		views = append(views, *view)
	}
	return views, total, nil
}

func findGenericProperty(db *gorm.DB, identifier string, scopes ...func(*gorm.DB) *gorm.DB) (*models.GenericProperty, error) {
	query := db
	for _, scope := range scopes {
		query = scope(query)
	}

	var prop models.GenericProperty
	var err error
	if id, convErr := strconv.ParseUint(identifier, 10, 64); convErr == nil {
		err = query.First(&prop, id).Error
	} else {
		err = query.Where("slug = ?", identifier).First(&prop).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NewNotFoundError(fmt.Sprintf("property '%s' not found", identifier))
	}
	if err != nil {
		return nil, err
	}
	return &prop, nil
}

func genericPropertyView(db *gorm.DB, prop *models.GenericProperty) (*GenericPropertyView, error) {
	view := GenericPropertyView{GenericProperty: *prop}

	if prop.Parent != nil {
		view.ParentSlug = prop.Parent.Slug
	}
	if err := db.Model(&models.GenericProperty{}).Where("parent_id = ?", prop.ID).Count(&view.ChildrenCount).Error; err != nil {
		return nil, err
	}

	media, err := ListMedia(db, NamespaceCatalog, ModelGenericProperty, prop.ID)
	if err != nil {
		return nil, err
	}
	view.MediaFiles = media
	return &view, nil
}

func referenceExists(db *gorm.DB, model any, id uint64, field string) error {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return types.NewValidationError(field, fmt.Sprintf("referenced object %d does not exist", id))
	}
	return nil
}

func lowered(s string) string {
	return strings.ToLower(s)
}
