package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authModel "discens_backend/internals/features/auth/model"
	schoolModel "discens_backend/internals/features/schools/model"
	"discens_backend/internals/features/users/model"
	"discens_backend/internals/features/users/service"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&authModel.UserModel{},
		&model.PersonModel{},
		&model.ProfileModel{},
		&model.RoleModel{},
		&model.ProfileRoleModel{},
		&model.ProfileSchoolModel{},
		&model.ProfileSchoolLevelModel{},
		&schoolModel.SchoolModel{},
		&schoolModel.SchoolLevelModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newAdminApp mounts the managed-user routes behind a stub that injects the
// admin session locals the auth middleware would provide.
func newAdminApp(db *gorm.DB, schoolID uuid.UUID) *fiber.App {
	app := fiber.New()
	ctl := NewUserController(db)

	admin := app.Group("/api/a", func(c *fiber.Ctx) error {
		c.Locals("user_id", uuid.NewString())
		c.Locals("active_role", "admin")
		c.Locals("school_id", schoolID.String())
		return c.Next()
	})
	users := admin.Group("/users")
	users.Get("/", ctl.ListUsers)
	users.Get("/:id", ctl.GetUser)
	users.Post("/", ctl.CreateUser)
	users.Put("/:id", ctl.EditUser)
	return app
}

func seedSchoolAndRole(t *testing.T, db *gorm.DB) (uuid.UUID, uuid.UUID) {
	t.Helper()
	school := schoolModel.SchoolModel{Name: "Instituto Belgrano", IsActive: true}
	if err := db.Create(&school).Error; err != nil {
		t.Fatalf("create school: %v", err)
	}
	role := model.RoleModel{Name: "docente"}
	if err := db.Create(&role).Error; err != nil {
		t.Fatalf("create role: %v", err)
	}
	return school.ID, role.ID
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestListUsersReturnsSchoolProfiles(t *testing.T) {
	db := setupTestDB(t)
	schoolID, roleID := seedSchoolAndRole(t, db)

	engine := service.NewMutationEngine(db, nil)
	for _, name := range []string{"Pérez", "Alonso"} {
		if _, err := engine.CreateManagedUser(context.Background(), service.ManagedUserInput{
			FirstName: "Docente",
			LastName:  name,
			SchoolID:  schoolID,
			RoleIDs:   []uuid.UUID{roleID},
		}); err != nil {
			t.Fatalf("seed user %s: %v", name, err)
		}
	}

	// someone else's school must not leak in
	otherSchool := schoolModel.SchoolModel{Name: "Otro Colegio", IsActive: true}
	if err := db.Create(&otherSchool).Error; err != nil {
		t.Fatalf("create school: %v", err)
	}
	if _, err := engine.CreateManagedUser(context.Background(), service.ManagedUserInput{
		FirstName: "Ajeno",
		LastName:  "Lejano",
		SchoolID:  otherSchool.ID,
		RoleIDs:   []uuid.UUID{roleID},
	}); err != nil {
		t.Fatalf("seed foreign user: %v", err)
	}

	app := newAdminApp(db, schoolID)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/a/users/", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var body struct {
		Data []struct {
			LastName string `json:"last_name"`
			Roles    []struct {
				RoleName string `json:"role_name"`
			} `json:"roles"`
		} `json:"data"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Pagination.Total != 2 || len(body.Data) != 2 {
		t.Fatalf("want the 2 school profiles, got %s", raw)
	}
	// ordered by last name, roles attached
	if body.Data[0].LastName != "Alonso" || body.Data[1].LastName != "Pérez" {
		t.Fatalf("unexpected order: %s", raw)
	}
	for _, row := range body.Data {
		if len(row.Roles) != 1 || row.Roles[0].RoleName != "docente" {
			t.Fatalf("roles not attached: %s", raw)
		}
	}
}

func TestCreateUserScopedToSessionSchool(t *testing.T) {
	db := setupTestDB(t)
	schoolID, roleID := seedSchoolAndRole(t, db)
	app := newAdminApp(db, schoolID)

	body := `{"email":"nuevo@colegio.edu.ar","first_name":"Nuevo","last_name":"Docente","role_ids":["` + roleID.String() + `"]}`
	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/a/users/", body), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("want 201, got %d: %s", resp.StatusCode, raw)
	}

	var binding model.ProfileSchoolModel
	if err := db.First(&binding).Error; err != nil {
		t.Fatalf("load binding: %v", err)
	}
	if binding.SchoolID != schoolID {
		t.Fatalf("admin create must bind to the session school, got %s", binding.SchoolID)
	}
}

func TestCreateUserRejectsForeignSchool(t *testing.T) {
	db := setupTestDB(t)
	schoolID, roleID := seedSchoolAndRole(t, db)

	other := schoolModel.SchoolModel{Name: "Otro Colegio", IsActive: true}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("create school: %v", err)
	}

	app := newAdminApp(db, schoolID)
	body := `{"email":"x@colegio.edu.ar","first_name":"X","last_name":"Y","school_id":"` + other.ID.String() + `","role_ids":["` + roleID.String() + `"]}`
	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/a/users/", body), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("cross-school create must be refused, got %d", resp.StatusCode)
	}
}

func TestCreateUserReportsStepOnInactiveSchool(t *testing.T) {
	db := setupTestDB(t)
	_, roleID := seedSchoolAndRole(t, db)

	inactive := schoolModel.SchoolModel{Name: "Colegio Cerrado", IsActive: false}
	if err := db.Create(&inactive).Error; err != nil {
		t.Fatalf("create school: %v", err)
	}

	app := newAdminApp(db, inactive.ID)
	body := `{"email":"x@colegio.edu.ar","first_name":"X","last_name":"Y","role_ids":["` + roleID.String() + `"]}`
	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/a/users/", body), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("inactive school must map to 409, got %d", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	var payload struct {
		Step string `json:"step"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload.Step != "school" {
		t.Fatalf("want school step tag, got %s", raw)
	}
}
