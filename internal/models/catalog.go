package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Feature types
const (
	FeatureCommunication         = "communication"
	FeaturePlotFeature           = "plot_feature"
	FeatureComplexInfrastructure = "complex_infrastructure"
	FeatureUnitFeature           = "unit_feature"
)

// Plot and listing statuses
const (
	PlotStatusAvailable = "available"
	PlotStatusSold      = "sold"
	PlotStatusReserved  = "reserved"

	ListingStatusPublished = "published"
	ListingStatusHidden    = "hidden"
	ListingStatusReserved  = "reserved"
	ListingStatusSold      = "sold"

	LandTypeStandard     = "standard"
	LandTypeNewTerritory = "new_territory"
)

// Location is a shared address record referenced by land plots and properties.
type Location struct {
	ID          uint64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Region      string           `gorm:"size:100;not null;index" json:"region"`
	Locality    string           `gorm:"size:100;not null;index" json:"locality"`
	AddressLine string           `gorm:"size:255" json:"address_line"`
	Latitude    *decimal.Decimal `gorm:"type:decimal(9,6)" json:"latitude,omitempty"`
	Longitude   *decimal.Decimal `gorm:"type:decimal(9,6)" json:"longitude,omitempty"`
}

// Feature is a tagged characteristic (communications, plot features,
// complex infrastructure, unit finish).
type Feature struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;size:150;not null" json:"name"`
	Type string `gorm:"size:30;not null;index" json:"type"`
}

// LandUseType is a permitted-use classification for land plots.
type LandUseType struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// LandCategory is the legal land category classification.
type LandCategory struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
}

// LandPlot is a schema-fixed listing: its columns are static, unlike
// GenericProperty. It shares slug discipline, view counting and media
// attachment with the dynamic side of the catalog.
type LandPlot struct {
	ID               uint64           `gorm:"primaryKey;autoIncrement" json:"id"`
	LandType         string           `gorm:"size:20;not null;default:standard" json:"land_type"`
	Title            string           `gorm:"size:200;not null" json:"title"`
	Description      string           `gorm:"type:text" json:"description"`
	Slug             string           `gorm:"uniqueIndex;size:220;not null" json:"slug"`
	LocationID       uint64           `gorm:"not null;index" json:"location_id"`
	Location         *Location        `gorm:"constraint:OnDelete:RESTRICT" json:"location,omitempty"`
	CadastralNumbers string           `gorm:"type:text" json:"cadastral_numbers"`
	LandCategoryID   *uint64          `gorm:"index" json:"land_category_id,omitempty"`
	LandCategory     *LandCategory    `gorm:"constraint:OnDelete:RESTRICT" json:"land_category,omitempty"`
	LandUseTypes     []LandUseType    `gorm:"many2many:land_plot_land_use_types;" json:"land_use_types,omitempty"`
	Features         []Feature        `gorm:"many2many:land_plot_features;" json:"features,omitempty"`
	Area             decimal.Decimal  `gorm:"type:decimal(10,2);not null;index" json:"area"`
	Price            decimal.Decimal  `gorm:"type:decimal(15,2);not null;index" json:"price"`
	PricePerAre      *decimal.Decimal `gorm:"type:decimal(12,2)" json:"price_per_are,omitempty"`
	PlotStatus       string           `gorm:"size:10;not null;default:available" json:"plot_status"`
	ListingStatus    string           `gorm:"size:10;not null;default:hidden;index" json:"listing_status"`
	CreatedAt        time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	ViewCount        uint64           `gorm:"not null;default:0" json:"view_count"`
}

// TableName overrides the table name for LandPlot
func (LandPlot) TableName() string {
	return "land_plots"
}
