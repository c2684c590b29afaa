package services

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/zemlex/estate-catalog/internal/models"
	"github.com/zemlex/estate-catalog/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

var plotStatuses = map[string]bool{
	models.PlotStatusAvailable: true,
	models.PlotStatusSold:      true,
	models.PlotStatusReserved:  true,
}

var landTypes = map[string]bool{
	models.LandTypeStandard:     true,
	models.LandTypeNewTerritory: true,
}

// LandPlotInput is the write payload for a land plot.
type LandPlotInput struct {
	LandType         *string                `json:"land_type"`
	Title            *string                `json:"title"`
	Description      *string                `json:"description"`
	LocationID       *types.FlexUint64      `json:"location_id"`
	CadastralNumbers *string                `json:"cadastral_numbers"`
	LandCategoryID   *types.FlexUint64      `json:"land_category_id"`
	LandUseTypeIDs   types.FlexList[uint64] `json:"land_use_type_ids"`
	FeatureIDs       types.FlexList[uint64] `json:"feature_ids"`
	Area             *decimal.Decimal       `json:"area"`
	Price            *decimal.Decimal       `json:"price"`
	PricePerAre      *decimal.Decimal       `json:"price_per_are"`
	PlotStatus       *string                `json:"plot_status"`
	ListingStatus    *string                `json:"listing_status"`
}

// LandPlotView is the read representation of a land plot.
type LandPlotView struct {
	models.LandPlot
	MediaFiles []models.MediaFile `json:"media_files"`
}

// CreateLandPlot persists a land plot with a derived unique slug. When only
// one of price and price-per-are is supplied the other is derived from the
// area, rounded to two decimal places.
func CreateLandPlot(db *gorm.DB, input LandPlotInput) (*LandPlotView, error) {
	if input.Title == nil || *input.Title == "" {
		return nil, types.NewValidationError("title", "title is required")
	}
	if input.LocationID == nil {
		return nil, types.NewValidationError("location_id", "location_id is required")
	}
	if input.Area == nil {
		return nil, types.NewValidationError("area", "area is required")
	}
	if input.Price == nil && input.PricePerAre == nil {
		return nil, types.NewValidationError("price", "price or price_per_are is required")
	}
	if err := referenceExists(db, &models.Location{}, input.LocationID.Uint64(), "location_id"); err != nil {
		return nil, err
	}

	plot := models.LandPlot{
		LandType:      models.LandTypeStandard,
		Title:         *input.Title,
		LocationID:    input.LocationID.Uint64(),
		Area:          *input.Area,
		PlotStatus:    models.PlotStatusAvailable,
		ListingStatus: models.ListingStatusHidden,
	}
	if err := applyLandPlotInput(db, &plot, input); err != nil {
		return nil, err
	}

	slugValue, err := uniqueSlug(db, &models.LandPlot{}, plot.Title, "landplot", 0)
	if err != nil {
		return nil, err
	}
	plot.Slug = slugValue

	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&plot).Error; err != nil {
			return err
		}
		return replaceAssociations(tx, &plot, input)
	}); err != nil {
		return nil, err
	}
	return GetLandPlot(db, plot.Slug)
}

// UpdateLandPlot applies a partial update; the slug stays stable.
func UpdateLandPlot(db *gorm.DB, identifier string, input LandPlotInput) (*LandPlotView, error) {
	plot, err := findLandPlot(db, identifier)
	if err != nil {
		return nil, err
	}

	if input.Title != nil && *input.Title != "" {
		plot.Title = *input.Title
	}
	if input.LocationID != nil {
		if err := referenceExists(db, &models.Location{}, input.LocationID.Uint64(), "location_id"); err != nil {
			return nil, err
		}
		plot.LocationID = input.LocationID.Uint64()
	}
	if input.Area != nil {
		plot.Area = *input.Area
	}
	if err := applyLandPlotInput(db, plot, input); err != nil {
		return nil, err
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(plot).Error; err != nil {
			return err
		}
		return replaceAssociations(tx, plot, input)
	}); err != nil {
		return nil, err
	}
	return GetLandPlot(db, plot.Slug)
}

func applyLandPlotInput(db *gorm.DB, plot *models.LandPlot, input LandPlotInput) error {
	if input.LandType != nil {
		if !landTypes[*input.LandType] {
			return types.NewValidationError("land_type", fmt.Sprintf("unknown land type '%s'", *input.LandType))
		}
		plot.LandType = *input.LandType
	}
	if input.Description != nil {
		plot.Description = *input.Description
	}
	if input.CadastralNumbers != nil {
		plot.CadastralNumbers = *input.CadastralNumbers
	}
	if input.LandCategoryID != nil {
		id := input.LandCategoryID.Uint64()
		if err := referenceExists(db, &models.LandCategory{}, id, "land_category_id"); err != nil {
			return err
		}
		plot.LandCategoryID = &id
	}
	if input.PlotStatus != nil {
		if !plotStatuses[*input.PlotStatus] {
			return types.NewValidationError("plot_status", fmt.Sprintf("unknown plot status '%s'", *input.PlotStatus))
		}
		plot.PlotStatus = *input.PlotStatus
	}
	if input.ListingStatus != nil {
		if !listingStatuses[*input.ListingStatus] {
			return types.NewValidationError("listing_status", fmt.Sprintf("unknown listing status '%s'", *input.ListingStatus))
		}
		plot.ListingStatus = *input.ListingStatus
	}
	if input.Price != nil {
		plot.Price = *input.Price
	}
	if input.PricePerAre != nil {
		plot.PricePerAre = input.PricePerAre
	}

	derivePlotPrices(plot, input)
	return nil
}

// derivePlotPrices fills in whichever of price and price-per-are was not
// supplied, using fixed-precision arithmetic. A zero area derives nothing.
func derivePlotPrices(plot *models.LandPlot, input LandPlotInput) {
	if plot.Area.IsZero() {
		return
	}
	if input.Price != nil && input.PricePerAre == nil {
		perAre := plot.Price.DivRound(plot.Area, 2)
		plot.PricePerAre = &perAre
	} else if input.Price == nil && input.PricePerAre != nil {
		plot.Price = input.PricePerAre.Mul(plot.Area).Round(2)
	}
}

func replaceAssociations(db *gorm.DB, plot *models.LandPlot, input LandPlotInput) error {
	if input.LandUseTypeIDs != nil {
		var landUseTypes []models.LandUseType
		if err := db.Find(&landUseTypes, input.LandUseTypeIDs.Slice()).Error; err != nil {
			return err
		}
		if err := db.Model(plot).Association("LandUseTypes").Replace(landUseTypes); err != nil {
			return err
		}
	}
	if input.FeatureIDs != nil {
		var features []models.Feature
		err := db.Where("type IN ?", []string{models.FeatureCommunication, models.FeaturePlotFeature}).
			Find(&features, input.FeatureIDs.Slice()).Error
		if err != nil {
			return err
		}
		if err := db.Model(plot).Association("Features").Replace(features); err != nil {
			return err
		}
	}
	return nil
}

// GetLandPlot resolves a plot by primary key or slug with relations and media.
func GetLandPlot(db *gorm.DB, identifier string) (*LandPlotView, error) {
	plot, err := findLandPlot(db, identifier, func(q *gorm.DB) *gorm.DB {
		return q.Preload("Location").Preload("LandCategory").Preload("LandUseTypes").Preload("Features")
	})
	if err != nil {
		return nil, err
	}

	media, err := ListMedia(db, NamespaceCatalog, ModelLandPlot, plot.ID)
	if err != nil {
		return nil, err
	}
	return &LandPlotView{LandPlot: *plot, MediaFiles: media}, nil
}

// DeleteLandPlot removes a plot and its attached media records.
func DeleteLandPlot(db *gorm.DB, identifier string) error {
	plot, err := findLandPlot(db, identifier)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("namespace = ? AND model_name = ? AND object_id = ?",
			NamespaceCatalog, ModelLandPlot, plot.ID).Delete(&models.MediaFile{}).Error; err != nil {
			return err
		}
		if err := tx.Model(plot).Association("LandUseTypes").Clear(); err != nil {
			return err
		}
		if err := tx.Model(plot).Association("Features").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.LandPlot{}, plot.ID).Error
	})
}

// ListLandPlotsQuery carries the fixed land plot filter set.
type ListLandPlotsQuery struct {
	Page             int
	PageSize         int
	Ordering         string
	Search           string
	PriceMin         string
	PriceMax         string
	AreaMin          string
	AreaMax          string
	ListingStatus    string
	PlotStatus       string
	LandCategoryID   string
	LandUseTypeIDs   []uint64
	FeatureIDs       []uint64
	LocationRegion   string
	LocationLocality string
}

var landPlotOrderings = map[string]string{
	"created_at":    "created_at",
	"updated_at":    "updated_at",
	"price":         "price",
	"area":          "area",
	"price_per_are": "price_per_are",
	"view_count":    "view_count",
}

// ListLandPlots runs the filtered list query. Published listings only,
// unless a listing_status filter is passed explicitly.
func ListLandPlots(db *gorm.DB, q ListLandPlotsQuery) ([]LandPlotView, int64, error) {
	query := db.Model(&models.LandPlot{}).
		Clauses(hints.Comment("select", "catalog:landplots")).
		Preload("Location").Preload("LandCategory").Preload("LandUseTypes").Preload("Features")

	status := q.ListingStatus
	if status == "" {
		status = models.ListingStatusPublished
	}
	query = query.Where("listing_status = ?", status)

	query = applyPriceRange(query, "price", q.PriceMin, q.PriceMax)
	query = applyPriceRange(query, "area", q.AreaMin, q.AreaMax)

	if q.PlotStatus != "" {
		query = query.Where("plot_status = ?", q.PlotStatus)
	}
	if q.LandCategoryID != "" {
		if id, err := strconv.ParseUint(q.LandCategoryID, 10, 64); err == nil {
			query = query.Where("land_category_id = ?", id)
		}
	}
	if len(q.LandUseTypeIDs) > 0 {
		query = query.Where("id IN (?)",
			db.Table("land_plot_land_use_types").Select("land_plot_id").Where("land_use_type_id IN ?", q.LandUseTypeIDs))
	}
	if len(q.FeatureIDs) > 0 {
		query = query.Where("id IN (?)",
			db.Table("land_plot_features").Select("land_plot_id").Where("feature_id IN ?", q.FeatureIDs))
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
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(cadastral_numbers) LIKE ? OR location_id IN (?)",
			needle, needle, needle,
			db.Model(&models.Location{}).Select("id").Where("LOWER(locality) LIKE ? OR LOWER(address_line) LIKE ?", needle, needle),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyOrdering(query, q.Ordering, landPlotOrderings, "created_at DESC")
	query = applyPaging(query, q.Page, q.PageSize)

	var plots []models.LandPlot
	if err := query.Find(&plots).Error; err != nil {
		return nil, 0, err
	}

	views := make([]LandPlotView, 0, len(plots))
	for i := range plots {
		media, err := ListMedia(db, NamespaceCatalog, ModelLandPlot, plots[i].ID)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, LandPlotView{LandPlot: plots[i], MediaFiles: media})
	}
	return views, total, nil
}

func findLandPlot(db *gorm.DB, identifier string, scopes ...func(*gorm.DB) *gorm.DB) (*models.LandPlot, error) {
	query := db
	for _, scope := range scopes {
		query = scope(query)
	}

	var plot models.LandPlot
	var err error
	if id, convErr := strconv.ParseUint(identifier, 10, 64); convErr == nil {
		err = query.First(&plot, id).Error
	} else {
		err = query.Where("slug = ?", identifier).First(&plot).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NewNotFoundError(fmt.Sprintf("land plot '%s' not found", identifier))
	}
	if err != nil {
		return nil, err
	}
	return &plot, nil
}
