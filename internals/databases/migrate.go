package database

import (
	"log"

	authModel "discens_backend/internals/features/auth/model"
	schoolModel "discens_backend/internals/features/schools/model"
	userModel "discens_backend/internals/features/users/model"
)

// MigrateAll keeps the schema in sync with the models. Safe to run on every
// start; GORM only applies missing pieces.
func MigrateAll() {
	err := DB.AutoMigrate(
		&authModel.UserModel{},
		&authModel.RefreshToken{},
		&userModel.PersonModel{},
		&userModel.ProfileModel{},
		&userModel.RoleModel{},
		&userModel.ProfileRoleModel{},
		&userModel.ProfileSchoolModel{},
		&userModel.ProfileSchoolLevelModel{},
		&schoolModel.SchoolModel{},
		&schoolModel.SchoolLevelModel{},
		&schoolModel.SchoolCourseModel{},
		&schoolModel.AcademicYearModel{},
	)
	if err != nil {
		log.Fatalf("❌ migration failed: %v", err)
	}
	log.Println("✅ Schema migrated.")
}
