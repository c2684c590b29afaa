package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/zemlex/estate-catalog/internal/models"
	"github.com/zemlex/estate-catalog/internal/types"
)

// WorkingHoursInput is one weekday row, 0 = Monday through 6 = Sunday.
type WorkingHoursInput struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  *bool  `json:"is_active"`
}

// ContactInput is the write payload for the contact card. WorkingHours,
// when present, replaces the stored schedule wholesale.
type ContactInput struct {
	Phone         *string             `json:"phone"`
	Whatsapp      *string             `json:"whatsapp"`
	Email         *string             `json:"email"`
	OfficeAddress *string             `json:"office_address"`
	WorkingHours  []WorkingHoursInput `json:"working_hours"`
}

// GetContact returns the contact card with its schedule ordered by weekday.
func GetContact(db *gorm.DB) (*models.Contact, error) {
	var contact models.Contact
	err := db.Preload("WorkingHours", func(q *gorm.DB) *gorm.DB {
		return q.Order("day_of_week")
	}).Order("id").First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NewNotFoundError("contact card not set up")
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// UpsertContact creates or updates the single contact card.
func UpsertContact(db *gorm.DB, input ContactInput) (*models.Contact, error) {
	if err := validateWorkingHours(input.WorkingHours); err != nil {
		return nil, err
	}

	var contact models.Contact
	err := db.Order("id").First(&contact).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if input.Phone != nil {
		contact.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Whatsapp != nil {
		contact.Whatsapp = strings.TrimSpace(*input.Whatsapp)
	}
	if input.Email != nil {
		contact.Email = strings.TrimSpace(*input.Email)
	}
	if input.OfficeAddress != nil {
		contact.OfficeAddress = *input.OfficeAddress
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("WorkingHours").Save(&contact).Error; err != nil {
			return err
		}
		if input.WorkingHours == nil {
			return nil
		}
		if err := tx.Where("contact_id = ?", contact.ID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		for _, row := range input.WorkingHours {
			hours := models.WorkingHours{
				ContactID: contact.ID,
				DayOfWeek: row.DayOfWeek,
				StartTime: row.StartTime,
				EndTime:   row.EndTime,
				IsActive:  true,
			}
			if row.IsActive != nil {
				hours.IsActive = *row.IsActive
			}
			if err := tx.Create(&hours).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetContact(db)
}

func validateWorkingHours(rows []WorkingHoursInput) error {
	seen := map[int]bool{}
	for _, row := range rows {
		if row.DayOfWeek < 0 || row.DayOfWeek > 6 {
			return types.NewValidationError("working_hours",
				fmt.Sprintf("day_of_week %d out of range 0..6", row.DayOfWeek))
		}
		if seen[row.DayOfWeek] {
			return types.NewValidationError("working_hours",
				fmt.Sprintf("day_of_week %d appears more than once", row.DayOfWeek))
		}
		seen[row.DayOfWeek] = true
	}
	return nil
}
