package model

import (
	"time"

	"github.com/google/uuid"
)

// ProfileSchoolModel binds a profile to its tenant school. The unique index
// on profile_id enforces the one-school-per-profile rule the read paths
// always assumed.
type ProfileSchoolModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"profile_id"`
	SchoolID  uuid.UUID `gorm:"type:uuid;not null" json:"school_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ProfileSchoolModel) TableName() string {
	return "profile_school"
}

// ProfileSchoolLevelModel narrows a (profile, role) pair to a school level.
// No rows for a role means the role applies school-wide.
type ProfileSchoolLevelModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_profile_school_levels" json:"profile_id"`
	RoleID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_profile_school_levels" json:"role_id"`
	SchoolLevelID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_profile_school_levels" json:"school_level_id"`
	SchoolID      uuid.UUID `gorm:"type:uuid;not null" json:"school_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ProfileSchoolLevelModel) TableName() string {
	return "profile_school_levels"
}
