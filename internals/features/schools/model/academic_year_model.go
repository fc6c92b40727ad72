package model

import (
	"time"

	"github.com/google/uuid"
)

// AcademicYearModel describes one school year and its break windows.
// Structure is the period layout ("trimestres", "cuatrimestres").
type AcademicYearModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SchoolID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"school_id"`
	Year             int        `gorm:"not null" json:"year"`
	StartDate        time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate          time.Time  `gorm:"type:date;not null" json:"end_date"`
	WinterBreakStart *time.Time `gorm:"type:date" json:"winter_break_start,omitempty"`
	WinterBreakEnd   *time.Time `gorm:"type:date" json:"winter_break_end,omitempty"`
	Structure        string     `gorm:"size:50" json:"structure"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AcademicYearModel) TableName() string {
	return "academic_years"
}
