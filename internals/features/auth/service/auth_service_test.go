package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"discens_backend/internals/configs"
	authModel "discens_backend/internals/features/auth/model"
	schoolModel "discens_backend/internals/features/schools/model"
	userModel "discens_backend/internals/features/users/model"
	helper "discens_backend/internals/helpers"
)

func setupSessionTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&authModel.UserModel{},
		&authModel.RefreshToken{},
		&userModel.PersonModel{},
		&userModel.ProfileModel{},
		&userModel.RoleModel{},
		&userModel.ProfileRoleModel{},
		&userModel.ProfileSchoolModel{},
		&userModel.ProfileSchoolLevelModel{},
		&schoolModel.SchoolModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newLoginApp wires the login handler the way the public route does.
func newLoginApp(db *gorm.DB) *fiber.App {
	configs.JWTSecret = "clave-de-prueba"
	configs.JWTRefreshSecret = "clave-refresh-de-prueba"

	app := fiber.New()
	identity := NewLocalIdentity(db)
	app.Post("/api/auth/login", func(c *fiber.Ctx) error {
		return Login(db, identity, c)
	})
	return app
}

// seedPrincipal provisions a login account with the given roles and binds it
// to a fresh active school.
func seedPrincipal(t *testing.T, db *gorm.DB, email, password string, roleNames ...string) uuid.UUID {
	t.Helper()

	identity := NewLocalIdentity(db)
	principalID, err := identity.Provision(context.Background(), email, password, true)
	if err != nil {
		t.Fatalf("provision: %v", err)
	}

	person := userModel.PersonModel{FirstName: "Ana", LastName: "García"}
	if err := db.Create(&person).Error; err != nil {
		t.Fatalf("create person: %v", err)
	}
	profile := userModel.ProfileModel{ID: principalID, PersonID: person.ID}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}

	school := schoolModel.SchoolModel{Name: "Instituto San Martín", IsActive: true}
	if err := db.Create(&school).Error; err != nil {
		t.Fatalf("create school: %v", err)
	}
	if err := db.Create(&userModel.ProfileSchoolModel{ProfileID: principalID, SchoolID: school.ID}).Error; err != nil {
		t.Fatalf("bind school: %v", err)
	}

	for _, name := range roleNames {
		role := userModel.RoleModel{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&role, userModel.RoleModel{Name: name}).Error; err != nil {
			t.Fatalf("create role %s: %v", name, err)
		}
		if err := db.Create(&userModel.ProfileRoleModel{ProfileID: principalID, RoleID: role.ID}).Error; err != nil {
			t.Fatalf("assign role %s: %v", name, err)
		}
	}
	return principalID
}

func loginRequest(email, password, staleMarker string) *http.Request {
	body := `{"email":"` + email + `","password":"` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if staleMarker != "" {
		req.AddCookie(&http.Cookie{Name: helper.CookieActiveRole, Value: staleMarker})
	}
	return req
}

func findCookie(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, ck := range resp.Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	t.Fatalf("cookie %q not set; got %v", name, resp.Cookies())
	return nil
}

func TestLoginSingleRoleOverwritesStaleMarkerCookie(t *testing.T) {
	db := setupSessionTestDB(t)
	seedPrincipal(t, db, "docente@colegio.edu.ar", "secreto-largo", "docente")
	app := newLoginApp(db)

	// stale marker from a previous session with a different role
	resp, err := app.Test(loginRequest("docente@colegio.edu.ar", "secreto-largo", "familiar"), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}

	marker := findCookie(t, resp, helper.CookieActiveRole)
	if marker.Value != "docente" {
		t.Fatalf("single-role login must overwrite the marker; got %q", marker.Value)
	}

	// durable session-cookie attributes
	if marker.Path != "/" {
		t.Fatalf("marker path: %q", marker.Path)
	}
	if !marker.HttpOnly {
		t.Fatal("marker must be HttpOnly")
	}
	if !marker.Secure {
		t.Fatal("marker must be Secure")
	}
	if marker.SameSite != http.SameSiteLaxMode {
		t.Fatalf("marker SameSite: %v", marker.SameSite)
	}
	if want := int(helper.SessionCookieTTL / time.Second); marker.MaxAge != want {
		t.Fatalf("marker MaxAge: got %d want %d", marker.MaxAge, want)
	}

	// the rest of the session context travels with the same attributes
	for _, name := range []string{
		helper.CookieProfileID, helper.CookieSchoolID,
		helper.CookieAccessToken, helper.CookieRefreshToken,
	} {
		ck := findCookie(t, resp, name)
		if ck.Path != "/" || !ck.HttpOnly || !ck.Secure || ck.SameSite != http.SameSiteLaxMode {
			t.Fatalf("cookie %s attributes: %+v", name, ck)
		}
	}
}

func TestLoginRolelessLeavesNoRefreshToken(t *testing.T) {
	db := setupSessionTestDB(t)
	seedPrincipal(t, db, "nadie@colegio.edu.ar", "secreto-largo") // no roles
	app := newLoginApp(db)

	resp, err := app.Test(loginRequest("nadie@colegio.edu.ar", "secreto-largo", ""), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("roleless login must be rejected, got %d", resp.StatusCode)
	}

	var tokens int64
	if err := db.Model(&authModel.RefreshToken{}).Count(&tokens).Error; err != nil {
		t.Fatalf("count refresh tokens: %v", err)
	}
	if tokens != 0 {
		t.Fatalf("rejected login must not persist refresh tokens, found %d", tokens)
	}
	if len(resp.Cookies()) != 0 {
		t.Fatalf("rejected login must not set session cookies: %v", resp.Cookies())
	}
}

func TestLoginMultiRoleWithoutMarkerAsksForSelection(t *testing.T) {
	db := setupSessionTestDB(t)
	seedPrincipal(t, db, "dos@colegio.edu.ar", "secreto-largo", "familiar", "estudiante")
	app := newLoginApp(db)

	resp, err := app.Test(loginRequest("dos@colegio.edu.ar", "secreto-largo", ""), -1)
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
		Data struct {
			NeedsRoleSelection bool `json:"needs_role_selection"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Data.NeedsRoleSelection {
		t.Fatalf("want needs_role_selection, body: %s", raw)
	}

	// tokens are issued so the selection step can authenticate, but no role
	// marker is set yet
	findCookie(t, resp, helper.CookieAccessToken)
	findCookie(t, resp, helper.CookieRefreshToken)
	for _, ck := range resp.Cookies() {
		if ck.Name == helper.CookieActiveRole {
			t.Fatalf("no marker must be set before selection, got %q", ck.Value)
		}
	}
}

func TestLoginMultiRoleMarkerBreaksTie(t *testing.T) {
	db := setupSessionTestDB(t)
	seedPrincipal(t, db, "marca@colegio.edu.ar", "secreto-largo", "familiar", "estudiante")
	app := newLoginApp(db)

	resp, err := app.Test(loginRequest("marca@colegio.edu.ar", "secreto-largo", "estudiante"), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	if marker := findCookie(t, resp, helper.CookieActiveRole); marker.Value != "estudiante" {
		t.Fatalf("marker must pick the stored role, got %q", marker.Value)
	}
}

func TestSelectRoleWritesMarkerCookie(t *testing.T) {
	db := setupSessionTestDB(t)
	principalID := seedPrincipal(t, db, "sel@colegio.edu.ar", "secreto-largo", "familiar", "estudiante")

	configs.JWTSecret = "clave-de-prueba"
	configs.JWTRefreshSecret = "clave-refresh-de-prueba"

	app := fiber.New()
	app.Post("/api/u/select-role", func(c *fiber.Ctx) error {
		c.Locals("user_id", principalID.String())
		return SelectRole(db, c)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/u/select-role", strings.NewReader(`{"role":"estudiante"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	if marker := findCookie(t, resp, helper.CookieActiveRole); marker.Value != "estudiante" {
		t.Fatalf("marker must match the selected role, got %q", marker.Value)
	}

	// a role the profile does not hold is refused
	req = httptest.NewRequest(http.MethodPost, "/api/u/select-role", strings.NewReader(`{"role":"docente"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("unheld role must be refused, got %d", resp.StatusCode)
	}
}
