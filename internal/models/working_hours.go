package models

import "time"

// WorkDay is one row of a professional's weekly schedule.
// Weekday follows time.Weekday (0 = Sunday).
type WorkDay struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"uniqueIndex:ux_work_days_professional_weekday" json:"professional_id"`

	Weekday int `gorm:"uniqueIndex:ux_work_days_professional_weekday" json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Active    bool   `json:"active"`

	Breaks []WorkBreak `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"breaks"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WorkBreak struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	WorkDayID uint   `gorm:"index" json:"-"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
}
