package services

import (
	"fmt"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// uniqueSlug derives a URL-safe slug from title and resolves collisions with
// a deterministic probe-and-suffix loop: base, base-1, base-2, first unused
// wins. fallback is used when the title slugifies to nothing (e.g. an
// all-punctuation title). excludeID keeps an update from colliding with the
// row being updated.
func uniqueSlug(db *gorm.DB, model any, title, fallback string, excludeID uint64) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = fallback
	}

	candidate := base
	for counter := 1; ; counter++ {
		var count int64
		query := db.Model(model).Where("slug = ?", candidate)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}
		if err := query.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}
