package access

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	userModel "discens_backend/internals/features/users/model"
)

func TestResolveSessionContextSingleStaffRole(t *testing.T) {
	db := setupTestDB(t)
	profileID := seedProfile(t, db, "docente")
	schoolID := uuid.New()
	if err := db.Create(&userModel.ProfileSchoolModel{ProfileID: profileID, SchoolID: schoolID}).Error; err != nil {
		t.Fatalf("bind school: %v", err)
	}

	sc, err := ResolveSessionContext(context.Background(), db, profileID, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.ActiveRole.RoleName != "docente" {
		t.Errorf("active role = %q", sc.ActiveRole.RoleName)
	}
	if sc.Tier != TierStaff {
		t.Errorf("tier = %v, want staff", sc.Tier)
	}
	if sc.LandingRoute != "/dashboard/staff" {
		t.Errorf("landing = %q", sc.LandingRoute)
	}
	if sc.SchoolID == nil || *sc.SchoolID != schoolID {
		t.Errorf("school = %v, want %v", sc.SchoolID, schoolID)
	}
}

func TestResolveSessionContextMarkerPicksRole(t *testing.T) {
	db := setupTestDB(t)
	profileID := seedProfile(t, db, "familiar", "estudiante")

	sc, err := ResolveSessionContext(context.Background(), db, profileID, "estudiante")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.ActiveRole.RoleName != "estudiante" {
		t.Errorf("active role = %q, want estudiante", sc.ActiveRole.RoleName)
	}
	if sc.Tier != TierCommunity {
		t.Errorf("tier = %v, want community", sc.Tier)
	}
	if sc.SchoolID != nil {
		t.Errorf("expected no tenant school, got %v", sc.SchoolID)
	}
}

func TestResolveSessionContextNoRoles(t *testing.T) {
	db := setupTestDB(t)
	profileID := seedProfile(t, db)

	_, err := ResolveSessionContext(context.Background(), db, profileID, "docente")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}

func TestResolveSessionContextSelectionRequired(t *testing.T) {
	db := setupTestDB(t)
	profileID := seedProfile(t, db, "familiar", "docente")

	_, err := ResolveSessionContext(context.Background(), db, profileID, "")
	if !errors.Is(err, ErrRoleSelectionRequired) {
		t.Fatalf("want ErrRoleSelectionRequired, got %v", err)
	}
}
