package model

import (
	"time"

	"github.com/google/uuid"
)

// RoleModel is global reference data: the fixed role vocabulary.
type RoleModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;unique;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (RoleModel) TableName() string {
	return "roles"
}

// ProfileRoleModel associates a profile with a role (many-to-many).
type ProfileRoleModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_profile_roles" json:"profile_id"`
	RoleID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_profile_roles" json:"role_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Role *RoleModel `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (ProfileRoleModel) TableName() string {
	return "profile_roles"
}
