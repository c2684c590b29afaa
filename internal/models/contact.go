package models

import (
	"time"
)

// Contact holds the company contact card shown on the site.
type Contact struct {
	ID            uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Phone         string         `gorm:"size:20" json:"phone"`
	Whatsapp      string         `gorm:"size:20" json:"whatsapp"`
	Email         string         `gorm:"size:254" json:"email"`
	OfficeAddress string         `gorm:"size:255" json:"office_address"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	WorkingHours  []WorkingHours `gorm:"constraint:OnDelete:CASCADE" json:"working_hours,omitempty"`
}

// TableName overrides the table name for Contact
func (Contact) TableName() string {
	return "contacts"
}

// WorkingHours is one weekday row of the office schedule. DayOfWeek is
// 0 for Monday through 6 for Sunday, unique per contact.
type WorkingHours struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ContactID uint64 `gorm:"not null;index:idx_contact_day,unique" json:"contact_id"`
	DayOfWeek int    `gorm:"not null;index:idx_contact_day,unique" json:"day_of_week"`
	StartTime string `gorm:"size:5" json:"start_time,omitempty"`
	EndTime   string `gorm:"size:5" json:"end_time,omitempty"`
	IsActive  bool   `gorm:"not null;default:true" json:"is_active"`
}

// TableName overrides the table name for WorkingHours
func (WorkingHours) TableName() string {
	return "working_hours"
}
