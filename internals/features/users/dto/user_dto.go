// file: internals/features/users/dto/user_dto.go
package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"discens_backend/internals/features/users/service"
)

var validate = validator.New()

type RoleLevelPair struct {
	RoleID        uuid.UUID `json:"role_id" validate:"required"`
	SchoolLevelID uuid.UUID `json:"school_level_id" validate:"required"`
}

// CreateManagedUserRequest provisions an account. Password empty → managed,
// non-login person (structured data, never authenticates directly).
type CreateManagedUserRequest struct {
	Email          string          `json:"email" validate:"required,email"`
	Password       string          `json:"password" validate:"omitempty,min=8"`
	FirstName      string          `json:"first_name" validate:"required,max=100"`
	LastName       string          `json:"last_name" validate:"required,max=100"`
	DocumentNumber *string         `json:"document_number" validate:"omitempty,max=20"`
	BirthDate      *string         `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Address        *string         `json:"address" validate:"omitempty,max=255"`
	Phone          *string         `json:"phone" validate:"omitempty,max=50"`
	SchoolID       uuid.UUID       `json:"school_id"`
	RoleIDs        []uuid.UUID     `json:"role_ids" validate:"required,min=1"`
	RoleLevels     []RoleLevelPair `json:"role_levels" validate:"dive"`
}

type EditManagedUserRequest struct {
	FirstName      string          `json:"first_name" validate:"required,max=100"`
	LastName       string          `json:"last_name" validate:"required,max=100"`
	DocumentNumber *string         `json:"document_number" validate:"omitempty,max=20"`
	BirthDate      *string         `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Address        *string         `json:"address" validate:"omitempty,max=255"`
	Phone          *string         `json:"phone" validate:"omitempty,max=50"`
	SchoolID       uuid.UUID       `json:"school_id"`
	RoleIDs        []uuid.UUID     `json:"role_ids" validate:"required,min=1"`
	RoleLevels     []RoleLevelPair `json:"role_levels" validate:"dive"`
}

func (r *CreateManagedUserRequest) Validate() error { return validate.Struct(r) }
func (r *EditManagedUserRequest) Validate() error   { return validate.Struct(r) }

func (r *CreateManagedUserRequest) ToInput() service.ManagedUserInput {
	return service.ManagedUserInput{
		Email:          r.Email,
		Password:       r.Password,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		DocumentNumber: r.DocumentNumber,
		BirthDate:      parseDate(r.BirthDate),
		Address:        r.Address,
		Phone:          r.Phone,
		SchoolID:       r.SchoolID,
		RoleIDs:        r.RoleIDs,
		RoleLevels:     toScopes(r.RoleLevels),
	}
}

func (r *EditManagedUserRequest) ToInput() service.ManagedUserInput {
	return service.ManagedUserInput{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		DocumentNumber: r.DocumentNumber,
		BirthDate:      parseDate(r.BirthDate),
		Address:        r.Address,
		Phone:          r.Phone,
		SchoolID:       r.SchoolID,
		RoleIDs:        r.RoleIDs,
		RoleLevels:     toScopes(r.RoleLevels),
	}
}

func toScopes(pairs []RoleLevelPair) []service.RoleLevelScope {
	out := make([]service.RoleLevelScope, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, service.RoleLevelScope{RoleID: p.RoleID, SchoolLevelID: p.SchoolLevelID})
	}
	return out
}

func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}

// ValidationMessages flattens validator errors into field → message.
func ValidationMessages(err error) map[string]string {
	out := make(map[string]string)
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = "Formato inválido"
		return out
	}
	for _, fe := range ve {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = "es obligatorio"
		case "email":
			out[fe.Field()] = "formato de email inválido"
		case "min":
			out[fe.Field()] = "mínimo " + fe.Param()
		case "max":
			out[fe.Field()] = "máximo " + fe.Param()
		case "datetime":
			out[fe.Field()] = "fecha inválida (AAAA-MM-DD)"
		default:
			out[fe.Field()] = "inválido"
		}
	}
	return out
}
