package models

import "time"

type Professional struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	DisplayName string `gorm:"size:100;not null" json:"display_name"`
	Email       string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Title       string `gorm:"size:100" json:"title"`
	PhotoURL    string `gorm:"size:255" json:"photo_url"`

	WorkDays []WorkDay `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"work_days,omitempty"`
	Services []Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
