package access

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	userModel "discens_backend/internals/features/users/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&userModel.PersonModel{},
		&userModel.ProfileModel{},
		&userModel.RoleModel{},
		&userModel.ProfileRoleModel{},
		&userModel.ProfileSchoolModel{},
		&userModel.ProfileSchoolLevelModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, roleNames ...string) uuid.UUID {
	t.Helper()
	person := userModel.PersonModel{FirstName: "Ana", LastName: "García"}
	if err := db.Create(&person).Error; err != nil {
		t.Fatalf("create person: %v", err)
	}
	profile := userModel.ProfileModel{PersonID: person.ID}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}
	for _, name := range roleNames {
		role := userModel.RoleModel{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&role, userModel.RoleModel{Name: name}).Error; err != nil {
			t.Fatalf("create role %s: %v", name, err)
		}
		if err := db.Create(&userModel.ProfileRoleModel{ProfileID: profile.ID, RoleID: role.ID}).Error; err != nil {
			t.Fatalf("assign role %s: %v", name, err)
		}
	}
	return profile.ID
}

func TestResolveRolesEmptyIsNotAnError(t *testing.T) {
	db := setupTestDB(t)
	profileID := seedProfile(t, db)

	roles, err := ResolveRoles(context.Background(), db, profileID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(roles) != 0 {
		t.Fatalf("want zero roles, got %v", roles)
	}
}

func TestResolveRolesReturnsAllAssigned(t *testing.T) {
	db := setupTestDB(t)
	profileID := seedProfile(t, db, "familiar", "estudiante")

	roles, err := ResolveRoles(context.Background(), db, profileID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := make([]string, 0, len(roles))
	for _, r := range roles {
		if r.RoleID == uuid.Nil {
			t.Errorf("role %q resolved without an id", r.RoleName)
		}
		names = append(names, r.RoleName)
	}
	sort.Strings(names)
	if !reflect.DeepEqual(names, []string{"estudiante", "familiar"}) {
		t.Fatalf("resolved %v", names)
	}
}

func TestResolveRolesOrderIsStable(t *testing.T) {
	db := setupTestDB(t)
	profileID := seedProfile(t, db, "docente", "preceptor", "familiar")

	first, err := ResolveRoles(context.Background(), db, profileID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := ResolveRoles(context.Background(), db, profileID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("order changed between reads: %v vs %v", first, again)
		}
	}
}

func TestResolveRolesStoreFailure(t *testing.T) {
	db := setupTestDB(t)
	if err := db.Migrator().DropTable("roles"); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	_, err := ResolveRoles(context.Background(), db, uuid.New())
	if !errors.Is(err, ErrRoleResolution) {
		t.Fatalf("want ErrRoleResolution, got %v", err)
	}
}
