package model

import (
	"time"

	"github.com/google/uuid"
)

// SchoolCourseModel is a leaf entity owned by a school level.
type SchoolCourseModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SchoolID      uuid.UUID `gorm:"type:uuid;not null;index" json:"school_id"`
	SchoolLevelID uuid.UUID `gorm:"type:uuid;not null;index" json:"school_level_id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SchoolCourseModel) TableName() string {
	return "school_courses"
}
