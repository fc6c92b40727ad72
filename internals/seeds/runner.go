// internals/seeds/runner.go
package seeds

import (
	"log"

	"gorm.io/gorm"

	roleSeeds "discens_backend/internals/seeds/roles"
)

// RunAllSeeds loads the reference data the app cannot start without.
func RunAllSeeds(db *gorm.DB) {
	if err := roleSeeds.SeedRoles(db); err != nil {
		log.Printf("[SEED][ERROR] roles: %v", err)
	}
}
