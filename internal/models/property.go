package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PropertyType declares a category of real-estate listing and the attribute
// schema its instances carry. The schema is stored verbatim: malformed
// schemas are accepted at write time and degrade to empty filter sets and
// skipped validation downstream.
type PropertyType struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Slug            string    `gorm:"uniqueIndex;size:120;not null" json:"slug"`
	AttributeSchema JSON      `json:"attribute_schema"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName overrides the table name for PropertyType
func (PropertyType) TableName() string {
	return "property_types"
}

// GenericProperty is a dynamically typed listing: its Attributes payload is
// validated against the owning PropertyType's schema on write. Parent links
// form a two-level hierarchy (complex -> unit).
type GenericProperty struct {
	ID             uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyTypeID uint64            `gorm:"not null;index" json:"property_type_id"`
	PropertyType   *PropertyType     `gorm:"constraint:OnDelete:RESTRICT" json:"property_type,omitempty"`
	ParentID       *uint64           `gorm:"index" json:"parent_id,omitempty"`
	Parent         *GenericProperty  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Children       []GenericProperty `gorm:"foreignKey:ParentID" json:"-"`
	Title          string            `gorm:"size:200;not null" json:"title"`
	Description    string            `gorm:"type:text" json:"description"`
	Slug           string            `gorm:"uniqueIndex;size:220;not null" json:"slug"`
	LocationID     uint64            `gorm:"not null;index" json:"location_id"`
	Location       *Location         `gorm:"constraint:OnDelete:RESTRICT" json:"location,omitempty"`
	Price          decimal.Decimal   `gorm:"type:decimal(15,2);not null;index" json:"price"`
	ListingStatus  string            `gorm:"size:10;not null;default:hidden;index" json:"listing_status"`
	Attributes     JSON              `json:"attributes"`
	CreatedAt      time.Time         `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	ViewCount      uint64            `gorm:"not null;default:0" json:"view_count"`
}

// TableName overrides the table name for GenericProperty
func (GenericProperty) TableName() string {
	return "generic_properties"
}
