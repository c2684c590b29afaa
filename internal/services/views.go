package services

import (
	"github.com/zemlex/estate-catalog/internal/models"
	"gorm.io/gorm"
)

// IncrementViewCount resolves the view target and issues a single relative
// UPDATE against the store. The increment is never read-modify-write in
// application code, so concurrent requests cannot lose updates.
func IncrementViewCount(db *gorm.DB, namespace, model, identifier string) error {
	target, err := ResolveViewTarget(db, namespace, model, identifier)
	if err != nil {
		return err
	}

	return db.Table(target.Table).
		Where("id = ?", target.ID).
		Update("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// RequestsByType returns request counts grouped by request type, with known
// types zero-filled.
func RequestsByType(db *gorm.DB) (map[string]int64, error) {
	return requestCounts(db, "request_type",
		models.RequestTypeQuiz, models.RequestTypeContact, models.RequestTypeListing)
}

// RequestsByStatus returns request counts grouped by processing status,
// with known statuses zero-filled.
func RequestsByStatus(db *gorm.DB) (map[string]int64, error) {
	return requestCounts(db, "status",
		models.RequestStatusNew, models.RequestStatusProcessing,
		models.RequestStatusCompleted, models.RequestStatusRejected)
}

func requestCounts(db *gorm.DB, column string, known ...string) (map[string]int64, error) {
	var rows []struct {
		Value string
		Count int64
	}
	err := db.Model(&models.Request{}).
		Select(column + " AS value, COUNT(id) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := make(map[string]int64, len(known))
	for _, code := range known {
		summary[code] = 0
	}
	for _, row := range rows {
		summary[row.Value] = row.Count
	}
	return summary, nil
}
