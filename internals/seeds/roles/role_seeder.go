// internals/seeds/roles/role_seeder.go
package roles

import (
	"log"

	"gorm.io/gorm"

	"discens_backend/internals/constants"
	userModel "discens_backend/internals/features/users/model"
)

// SeedRoles inserts the fixed role vocabulary. Idempotent: existing names
// are left untouched.
func SeedRoles(db *gorm.DB) error {
	for _, name := range constants.AllRoles {
		role := userModel.RoleModel{Name: name}
		if err := db.Where("name = ?", name).
			FirstOrCreate(&role, userModel.RoleModel{Name: name}).Error; err != nil {
			return err
		}
	}
	log.Printf("[SEED] roles: %d nombres asegurados", len(constants.AllRoles))
	return nil
}
