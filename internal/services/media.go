package services

import (
	"fmt"

	"github.com/zemlex/estate-catalog/internal/models"
	"github.com/zemlex/estate-catalog/internal/types"
	"gorm.io/gorm"
)

var mediaTypes = map[string]bool{
	models.MediaTypeImage:    true,
	models.MediaTypeVideo:    true,
	models.MediaTypeDocument: true,
	models.MediaTypePlan:     true,
}

// MediaInput is the metadata part of a media upload. The owner triple must
// resolve to a live entity at attach time.
type MediaInput struct {
	Namespace   string
	ModelName   string
	ObjectID    uint64
	FileName    string
	FilePath    string
	MediaType   string
	IsMain      bool
	SortOrder   uint
	Description string
}

// AttachMedia validates the owner triple and persists the association
// record. Exactly-one-main-per-owner is a caller convention, not enforced
// here.
func AttachMedia(db *gorm.DB, input MediaInput) (*models.MediaFile, error) {
	if input.Namespace == "" || input.ModelName == "" || input.ObjectID == 0 {
		return nil, types.NewInvalidRequestError("namespace, model and object_id must all be supplied")
	}

	exists, err := entityExists(db, input.Namespace, input.ModelName, input.ObjectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, types.NewNotFoundError(
			fmt.Sprintf("%s.%s %d not found", input.Namespace, input.ModelName, input.ObjectID))
	}

	mediaType := input.MediaType
	if mediaType == "" {
		mediaType = models.MediaTypeImage
	}
	if !mediaTypes[mediaType] {
		return nil, types.NewValidationError("type", fmt.Sprintf("unknown media type '%s'", mediaType))
	}

	media := models.MediaFile{
		Namespace:   input.Namespace,
		ModelName:   input.ModelName,
		ObjectID:    input.ObjectID,
		FileName:    input.FileName,
		FilePath:    input.FilePath,
		MediaType:   mediaType,
		IsMain:      input.IsMain,
		SortOrder:   input.SortOrder,
		Description: input.Description,
	}
	if err := db.Create(&media).Error; err != nil {
		return nil, err
	}
	return &media, nil
}

// ListMedia returns the media attached to one owner in display order:
// explicit sort order first, upload time as the tie-break.
func ListMedia(db *gorm.DB, namespace, model string, objectID uint64) ([]models.MediaFile, error) {
	media := []models.MediaFile{}
	err := db.Where("namespace = ? AND model_name = ? AND object_id = ?", namespace, model, objectID).
		Order("sort_order, uploaded_at").
		Find(&media).Error
	return media, err
}

// ResolveMediaOwner dereferences a media record's triple back to the owning
// entity. A deleted owner yields (nil, nil): Gone is a legitimate state the
// caller renders, not an error.
func ResolveMediaOwner(db *gorm.DB, media *models.MediaFile) (any, error) {
	return fetchEntity(db, media.Namespace, media.ModelName, media.ObjectID)
}

// GetMediaFile loads one media record.
func GetMediaFile(db *gorm.DB, id uint64) (*models.MediaFile, error) {
	var media models.MediaFile
	if err := db.First(&media, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NewNotFoundError(fmt.Sprintf("media file %d not found", id))
		}
		return nil, err
	}
	return &media, nil
}

// DeleteMediaFile removes one media record. The stored blob is the
// handler's concern.
func DeleteMediaFile(db *gorm.DB, id uint64) error {
	media, err := GetMediaFile(db, id)
	if err != nil {
		return err
	}
	return db.Delete(&models.MediaFile{}, media.ID).Error
}
