// file: internals/features/auth/service/identity_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/google/uuid"

	authModel "discens_backend/internals/features/auth/model"
)

var (
	ErrEmailTaken         = errors.New("el email ya está registrado")
	ErrInvalidCredentials = errors.New("email o contraseña incorrectos")
	ErrAccountDisabled    = errors.New("la cuenta está deshabilitada")
)

// LocalIdentity is the built-in identity provider: bcrypt principals in the
// users table. The Profile Mutation Engine only sees the IdentityProvider
// interface, so a hosted provider can replace this without touching the core.
type LocalIdentity struct {
	DB *gorm.DB
}

func NewLocalIdentity(db *gorm.DB) *LocalIdentity {
	return &LocalIdentity{DB: db}
}

// Provision creates an authentication principal and returns its ID, which the
// caller uses as the profile ID.
func (s *LocalIdentity) Provision(ctx context.Context, email, password string, emailConfirmed bool) (uuid.UUID, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := s.DB.WithContext(ctx).
		Model(&authModel.UserModel{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return uuid.Nil, err
	}
	if count > 0 {
		return uuid.Nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, err
	}

	user := authModel.UserModel{
		Email:          email,
		Password:       string(hash),
		EmailConfirmed: emailConfirmed,
		IsActive:       true,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

// Authenticate checks the credentials and returns the principal.
func (s *LocalIdentity) Authenticate(ctx context.Context, email, password string) (*authModel.UserModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user authModel.UserModel
	if err := s.DB.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}
