package models

import (
	"time"
)

// Media types
const (
	MediaTypeImage    = "image"
	MediaTypeVideo    = "video"
	MediaTypeDocument = "document"
	MediaTypePlan     = "plan"
)

// MediaFile is attached to any catalog entity through the erased-type
// (namespace, model, id) triple instead of a static foreign key. The triple
// may dangle after the owner is deleted; resolution then reports Gone.
type MediaFile struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Namespace   string    `gorm:"size:100;not null;index:idx_media_owner" json:"namespace"`
	ModelName   string    `gorm:"size:100;not null;index:idx_media_owner" json:"model"`
	ObjectID    uint64    `gorm:"not null;index:idx_media_owner" json:"object_id"`
	FileName    string    `gorm:"size:255;not null" json:"file_name"`
	FilePath    string    `gorm:"size:512;not null" json:"file_path"`
	MediaType   string    `gorm:"size:10;not null;default:image" json:"type"`
	IsMain      bool      `gorm:"not null;default:false" json:"is_main"`
	SortOrder   uint      `gorm:"not null;default:0" json:"order"`
	Description string    `gorm:"size:255" json:"description"`
	UploadedAt  time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

// TableName overrides the table name for MediaFile
func (MediaFile) TableName() string {
	return "media_files"
}
