package services

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// HealthStatus reports service liveness and database reachability.
type HealthStatus struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp int64  `json:"timestamp"`
}

// CheckHealth pings the database with a short deadline.
func CheckHealth(db *gorm.DB) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Database:  "up",
		Timestamp: time.Now().Unix(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sqlDB, err := db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		status.Status = "degraded"
		status.Database = "down"
	}
	return status
}
