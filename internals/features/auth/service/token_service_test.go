package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authModel "discens_backend/internals/features/auth/model"
)

const testSecret = "clave-de-prueba"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&authModel.UserModel{}, &authModel.RefreshToken{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestIssueAndRotateRefreshToken(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	now := time.Now()

	raw, err := IssueRefreshToken(context.Background(), db, testSecret, userID, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// only the HMAC is stored
	var row authModel.RefreshToken
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("load row: %v", err)
	}
	if string(row.TokenHash) == raw {
		t.Fatal("plaintext token must not be stored")
	}

	gotUser, next, err := RotateRefreshToken(context.Background(), db, testSecret, raw, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if gotUser != userID {
		t.Fatalf("rotate returned wrong user: %s", gotUser)
	}
	if next == raw {
		t.Fatal("rotation must mint a different token")
	}

	// the old token is now revoked: a second rotation must fail
	if _, _, err := RotateRefreshToken(context.Background(), db, testSecret, raw, now.Add(2*time.Minute)); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("reused token must be rejected, got %v", err)
	}

	// the replacement still works
	if _, _, err := RotateRefreshToken(context.Background(), db, testSecret, next, now.Add(3*time.Minute)); err != nil {
		t.Fatalf("rotating the replacement: %v", err)
	}
}

func TestRotateRejectsExpiredToken(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	issued := time.Now().Add(-RefreshTokenTTL - time.Hour)

	raw, err := IssueRefreshToken(context.Background(), db, testSecret, userID, issued)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, _, err := RotateRefreshToken(context.Background(), db, testSecret, raw, time.Now()); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expired token must be rejected, got %v", err)
	}
}

func TestRotateRejectsForgedToken(t *testing.T) {
	db := setupTestDB(t)
	claims := jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("otra-clave"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, _, err := RotateRefreshToken(context.Background(), db, testSecret, forged, time.Now()); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("forged token must be rejected, got %v", err)
	}
}

func TestRevokeRefreshTokenIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	now := time.Now()

	raw, err := IssueRefreshToken(context.Background(), db, testSecret, userID, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := RevokeRefreshToken(context.Background(), db, testSecret, raw, now); err != nil {
			t.Fatalf("revoke #%d: %v", i+1, err)
		}
	}
	if err := RevokeRefreshToken(context.Background(), db, testSecret, "", now); err != nil {
		t.Fatalf("revoking an empty token must be a no-op, got %v", err)
	}

	if _, _, err := RotateRefreshToken(context.Background(), db, testSecret, raw, now.Add(time.Minute)); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("revoked token must not rotate, got %v", err)
	}
}

func TestAccessTokenCarriesSessionClaims(t *testing.T) {
	userID := uuid.New()
	roleID := uuid.NewString()
	schoolID := uuid.NewString()

	raw, err := CreateAccessToken(testSecret, userID, "docente", roleID, schoolID, time.Now())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var claims AccessClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != userID.String() {
		t.Fatalf("wrong subject: %s", claims.Subject)
	}
	if claims.ActiveRole != "docente" || claims.RoleID != roleID || claims.SchoolID != schoolID {
		t.Fatalf("session claims not carried: %+v", claims)
	}
}

func TestProvisionAndAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	identity := NewLocalIdentity(db)

	id, err := identity.Provision(context.Background(), "  Admin@Colegio.EDU.ar ", "secreto-largo", true)
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("expected a principal ID")
	}

	// duplicate email, case-insensitive
	if _, err := identity.Provision(context.Background(), "admin@colegio.edu.ar", "otro-secreto", true); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}

	user, err := identity.Authenticate(context.Background(), "admin@colegio.edu.ar", "secreto-largo")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.ID != id {
		t.Fatalf("authenticated wrong principal: %s", user.ID)
	}

	if _, err := identity.Authenticate(context.Background(), "admin@colegio.edu.ar", "equivocada"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
	if _, err := identity.Authenticate(context.Background(), "nadie@colegio.edu.ar", "lo-que-sea"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email must map to ErrInvalidCredentials, got %v", err)
	}

	if err := db.Model(&authModel.UserModel{}).Where("id = ?", id).Update("is_active", false).Error; err != nil {
		t.Fatalf("disable: %v", err)
	}
	if _, err := identity.Authenticate(context.Background(), "admin@colegio.edu.ar", "secreto-largo"); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("want ErrAccountDisabled, got %v", err)
	}
}
