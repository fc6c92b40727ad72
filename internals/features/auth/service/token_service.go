// file: internals/features/auth/service/token_service.go
package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "discens_backend/internals/features/auth/model"
)

const (
	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var ErrInvalidRefreshToken = errors.New("refresh token inválido o expirado")

// AccessClaims carries the resolved session context inside the access token.
// ActiveRole/RoleID/SchoolID are empty until a role has been selected.
type AccessClaims struct {
	ActiveRole string `json:"active_role,omitempty"`
	RoleID     string `json:"role_id,omitempty"`
	SchoolID   string `json:"school_id,omitempty"`
	jwt.RegisteredClaims
}

func CreateAccessToken(secret string, userID uuid.UUID, activeRole, roleID, schoolID string, now time.Time) (string, error) {
	claims := AccessClaims{
		ActiveRole: activeRole,
		RoleID:     roleID,
		SchoolID:   schoolID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func refreshHash(raw, secret string) []byte {
	m := hmac.New(sha256.New, []byte(secret))
	m.Write([]byte(raw))
	return m.Sum(nil)
}

// IssueRefreshToken mints a refresh JWT and stores only its HMAC.
func IssueRefreshToken(ctx context.Context, db *gorm.DB, secret string, userID uuid.UUID, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(RefreshTokenTTL)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	row := authModel.RefreshToken{
		UserID:    userID,
		TokenHash: refreshHash(raw, secret),
		ExpiresAt: now.Add(RefreshTokenTTL),
	}
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", err
	}
	return raw, nil
}

// RotateRefreshToken validates the presented token against the stored hash,
// revokes it and mints a replacement.
func RotateRefreshToken(ctx context.Context, db *gorm.DB, secret, raw string, now time.Time) (uuid.UUID, string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidRefreshToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return uuid.Nil, "", ErrInvalidRefreshToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", ErrInvalidRefreshToken
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", ErrInvalidRefreshToken
	}

	var row authModel.RefreshToken
	if err := db.WithContext(ctx).
		Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", refreshHash(raw, secret), now).
		First(&row).Error; err != nil {
		return uuid.Nil, "", ErrInvalidRefreshToken
	}

	if err := db.WithContext(ctx).
		Model(&row).
		Update("revoked_at", now).Error; err != nil {
		return uuid.Nil, "", err
	}

	next, err := IssueRefreshToken(ctx, db, secret, userID, now)
	if err != nil {
		return uuid.Nil, "", err
	}
	return userID, next, nil
}

// RevokeRefreshToken is idempotent: unknown tokens are ignored.
func RevokeRefreshToken(ctx context.Context, db *gorm.DB, secret, raw string, now time.Time) error {
	if raw == "" {
		return nil
	}
	return db.WithContext(ctx).
		Model(&authModel.RefreshToken{}).
		Where("token_hash = ? AND revoked_at IS NULL", refreshHash(raw, secret)).
		Update("revoked_at", now).Error
}
