package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/zemlex/estate-catalog/internal/models"
	"github.com/zemlex/estate-catalog/internal/types"
)

// LocationInput is the write payload for a location record.
type LocationInput struct {
	Region      *string          `json:"region"`
	Locality    *string          `json:"locality"`
	AddressLine *string          `json:"address_line"`
	Latitude    *decimal.Decimal `json:"latitude"`
	Longitude   *decimal.Decimal `json:"longitude"`
}

// CreateLocation adds a location used by listings.
func CreateLocation(db *gorm.DB, input LocationInput) (*models.Location, error) {
	if input.Region == nil || strings.TrimSpace(*input.Region) == "" {
		return nil, types.NewValidationError("region", "region is required")
	}
	if input.Locality == nil || strings.TrimSpace(*input.Locality) == "" {
		return nil, types.NewValidationError("locality", "locality is required")
	}
	location := models.Location{
		Region:    strings.TrimSpace(*input.Region),
		Locality:  strings.TrimSpace(*input.Locality),
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	}
	if input.AddressLine != nil {
		location.AddressLine = *input.AddressLine
	}
	if err := db.Create(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// UpdateLocation applies a partial update.
func UpdateLocation(db *gorm.DB, id uint64, input LocationInput) (*models.Location, error) {
	var location models.Location
	err := db.First(&location, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NewNotFoundError(fmt.Sprintf("location %d not found", id))
	}
	if err != nil {
		return nil, err
	}
	if input.Region != nil && strings.TrimSpace(*input.Region) != "" {
		location.Region = strings.TrimSpace(*input.Region)
	}
	if input.Locality != nil && strings.TrimSpace(*input.Locality) != "" {
		location.Locality = strings.TrimSpace(*input.Locality)
	}
	if input.AddressLine != nil {
		location.AddressLine = *input.AddressLine
	}
	if input.Latitude != nil {
		location.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		location.Longitude = input.Longitude
	}
	if err := db.Save(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// ListLocations returns locations filtered by region/locality substring.
func ListLocations(db *gorm.DB, region, locality string) ([]models.Location, error) {
	query := db.Model(&models.Location{}).Order("region, locality")
	if region != "" {
		query = query.Where("LOWER(region) LIKE ?", "%"+lowered(region)+"%")
	}
	if locality != "" {
		query = query.Where("LOWER(locality) LIKE ?", "%"+lowered(locality)+"%")
	}
	var locations []models.Location
	if err := query.Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// DeleteLocation refuses to remove a location still referenced by listings.
func DeleteLocation(db *gorm.DB, id uint64) error {
	var plots, props int64
	if err := db.Model(&models.LandPlot{}).Where("location_id = ?", id).Count(&plots).Error; err != nil {
		return err
	}
	if err := db.Model(&models.GenericProperty{}).Where("location_id = ?", id).Count(&props).Error; err != nil {
		return err
	}
	if plots+props > 0 {
		return types.NewConflictError(fmt.Sprintf("location %d is referenced by %d listing(s)", id, plots+props))
	}
	result := db.Delete(&models.Location{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundError(fmt.Sprintf("location %d not found", id))
	}
	return nil
}

var featureTypes = map[string]bool{
	models.FeatureCommunication:         true,
	models.FeaturePlotFeature:           true,
	models.FeatureComplexInfrastructure: true,
	models.FeatureUnitFeature:           true,
}

// CreateFeature adds a tagged characteristic.
func CreateFeature(db *gorm.DB, name, featureType string) (*models.Feature, error) {
	if strings.TrimSpace(name) == "" {
		return nil, types.NewValidationError("name", "name is required")
	}
	if !featureTypes[featureType] {
		return nil, types.NewValidationError("type", fmt.Sprintf("unknown feature type '%s'", featureType))
	}
	feature := models.Feature{Name: strings.TrimSpace(name), Type: featureType}
	if err := db.Create(&feature).Error; err != nil {
		return nil, err
	}
	return &feature, nil
}

// ListFeatures returns features, optionally restricted to one type tag.
func ListFeatures(db *gorm.DB, featureType string) ([]models.Feature, error) {
	query := db.Model(&models.Feature{}).Order("name")
	if featureType != "" {
		query = query.Where("type = ?", featureType)
	}
	var features []models.Feature
	if err := query.Find(&features).Error; err != nil {
		return nil, err
	}
	return features, nil
}

// DeleteFeature removes a feature and its plot links.
func DeleteFeature(db *gorm.DB, id uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM land_plot_features WHERE feature_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Feature{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return types.NewNotFoundError(fmt.Sprintf("feature %d not found", id))
		}
		return nil
	})
}

// CreateLandUseType adds a permitted-use classification.
func CreateLandUseType(db *gorm.DB, name, description string) (*models.LandUseType, error) {
	if strings.TrimSpace(name) == "" {
		return nil, types.NewValidationError("name", "name is required")
	}
	landUse := models.LandUseType{Name: strings.TrimSpace(name), Description: description}
	if err := db.Create(&landUse).Error; err != nil {
		return nil, err
	}
	return &landUse, nil
}

// ListLandUseTypes returns all permitted-use classifications.
func ListLandUseTypes(db *gorm.DB) ([]models.LandUseType, error) {
	var landUses []models.LandUseType
	if err := db.Order("name").Find(&landUses).Error; err != nil {
		return nil, err
	}
	return landUses, nil
}

// DeleteLandUseType removes a classification and its plot links.
func DeleteLandUseType(db *gorm.DB, id uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM land_plot_land_use_types WHERE land_use_type_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.LandUseType{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return types.NewNotFoundError(fmt.Sprintf("land use type %d not found", id))
		}
		return nil
	})
}

// CreateLandCategory adds a legal land category.
func CreateLandCategory(db *gorm.DB, name string) (*models.LandCategory, error) {
	if strings.TrimSpace(name) == "" {
		return nil, types.NewValidationError("name", "name is required")
	}
	category := models.LandCategory{Name: strings.TrimSpace(name)}
	if err := db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListLandCategories returns all legal land categories.
func ListLandCategories(db *gorm.DB) ([]models.LandCategory, error) {
	var categories []models.LandCategory
	if err := db.Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// DeleteLandCategory refuses to remove a category still used by plots.
func DeleteLandCategory(db *gorm.DB, id uint64) error {
	var used int64
	if err := db.Model(&models.LandPlot{}).Where("land_category_id = ?", id).Count(&used).Error; err != nil {
		return err
	}
	if used > 0 {
		return types.NewConflictError(fmt.Sprintf("land category %d is used by %d plot(s)", id, used))
	}
	result := db.Delete(&models.LandCategory{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundError(fmt.Sprintf("land category %d not found", id))
	}
	return nil
}
