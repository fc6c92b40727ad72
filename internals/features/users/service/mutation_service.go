// file: internals/features/users/service/mutation_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	schoolModel "discens_backend/internals/features/schools/model"
	userModel "discens_backend/internals/features/users/model"
)

/* ==========================
   Steps & errors
========================== */

// MutationStep names the phase of the ordered write sequence that failed, so
// callers get structured, step-tagged errors instead of one opaque message.
type MutationStep string

const (
	StepIdentity MutationStep = "identity"
	StepLookup   MutationStep = "lookup"
	StepPerson   MutationStep = "person"
	StepProfile  MutationStep = "profile"
	StepSchool   MutationStep = "school"
	StepRoles    MutationStep = "roles"
	StepLevels   MutationStep = "levels"
)

type MutationError struct {
	Step MutationStep
	Err  error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("paso %s: %v", e.Step, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }

func stepErr(step MutationStep, err error) *MutationError {
	return &MutationError{Step: step, Err: err}
}

var (
	ErrProfileNotFound = errors.New("perfil no encontrado")
	ErrSchoolNotFound  = errors.New("colegio no encontrado")
	ErrSchoolInactive  = errors.New("el colegio está inactivo y no admite nuevas asignaciones")
	ErrNoRolesSelected = errors.New("debe seleccionar al menos un rol")
	ErrOrphanScope     = errors.New("el alcance por nivel referencia un rol no asignado")
)

/* ==========================
   Inputs
========================== */

// IdentityProvider provisions an authentication principal for accounts that
// can log in directly. The returned ID becomes the profile ID.
type IdentityProvider interface {
	Provision(ctx context.Context, email, password string, emailConfirmed bool) (uuid.UUID, error)
}

// RoleLevelScope narrows one assigned role to one school level.
type RoleLevelScope struct {
	RoleID        uuid.UUID `json:"role_id"`
	SchoolLevelID uuid.UUID `json:"school_level_id"`
}

type ManagedUserInput struct {
	Email          string
	Password       string // empty → managed, non-login person
	FirstName      string
	LastName       string
	DocumentNumber *string
	BirthDate      *time.Time
	Address        *string
	Phone          *string
	SchoolID       uuid.UUID
	RoleIDs        []uuid.UUID
	RoleLevels     []RoleLevelScope
}

/* ==========================
   Engine
========================== */

// MutationEngine keeps persons, profiles, profile_school, profile_roles and
// profile_school_levels consistent. Every sequence runs inside one DB
// transaction: a reported step failure means nothing was applied, except for
// identity provisioning on create, which happens before the transaction and
// cannot be rolled back.
type MutationEngine struct {
	DB       *gorm.DB
	Identity IdentityProvider
}

func NewMutationEngine(db *gorm.DB, identity IdentityProvider) *MutationEngine {
	return &MutationEngine{DB: db, Identity: identity}
}

// normalize dedupes role IDs (order preserved) and checks every level scope
// references an assigned role. Runs before any store call.
func normalize(in *ManagedUserInput) error {
	if len(in.RoleIDs) == 0 {
		return ErrNoRolesSelected
	}
	seen := make(map[uuid.UUID]struct{}, len(in.RoleIDs))
	deduped := in.RoleIDs[:0]
	for _, id := range in.RoleIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, id)
	}
	in.RoleIDs = deduped

	for _, scope := range in.RoleLevels {
		if _, ok := seen[scope.RoleID]; !ok {
			return fmt.Errorf("%w (rol %s)", ErrOrphanScope, scope.RoleID)
		}
	}
	return nil
}

func (e *MutationEngine) ensureAssignableSchool(tx *gorm.DB, schoolID uuid.UUID) error {
	var school schoolModel.SchoolModel
	if err := tx.First(&school, "id = ?", schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSchoolNotFound
		}
		return err
	}
	if !school.IsActive {
		return ErrSchoolInactive
	}
	return nil
}

// CreateManagedUser provisions the account and writes the full association
// set. With a password the profile ID comes from the identity provider
// (email pre-confirmed); without one a fresh ID is generated and the person
// never authenticates directly.
func (e *MutationEngine) CreateManagedUser(ctx context.Context, in ManagedUserInput) (uuid.UUID, error) {
	if err := normalize(&in); err != nil {
		return uuid.Nil, err
	}

	var profileID uuid.UUID
	if in.Password != "" {
		id, err := e.Identity.Provision(ctx, in.Email, in.Password, true)
		if err != nil {
			return uuid.Nil, stepErr(StepIdentity, err)
		}
		profileID = id
	} else {
		profileID = uuid.New()
	}

	err := e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := e.ensureAssignableSchool(tx, in.SchoolID); err != nil {
			return stepErr(StepSchool, err)
		}

		person := userModel.PersonModel{
			FirstName:      in.FirstName,
			LastName:       in.LastName,
			DocumentNumber: in.DocumentNumber,
			BirthDate:      in.BirthDate,
			Address:        in.Address,
			Phone:          in.Phone,
		}
		if in.Email != "" {
			email := in.Email
			person.Email = &email
		}
		if err := tx.Create(&person).Error; err != nil {
			return stepErr(StepPerson, err)
		}

		profile := userModel.ProfileModel{ID: profileID, PersonID: person.ID}
		if err := tx.Create(&profile).Error; err != nil {
			return stepErr(StepProfile, err)
		}

		if err := tx.Create(&userModel.ProfileSchoolModel{
			ProfileID: profileID,
			SchoolID:  in.SchoolID,
		}).Error; err != nil {
			return stepErr(StepSchool, err)
		}

		if err := insertRoleSet(tx, profileID, in); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return profileID, nil
}

// EditManagedUser replaces the school/role/level association sets with the
// supplied ones (delete-then-reinsert, atomic) and updates person attributes
// in place. Idempotent: repeating the same input yields the same final state.
func (e *MutationEngine) EditManagedUser(ctx context.Context, profileID uuid.UUID, in ManagedUserInput) error {
	if err := normalize(&in); err != nil {
		return err
	}

	return e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile userModel.ProfileModel
		if err := tx.First(&profile, "id = ?", profileID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return stepErr(StepLookup, ErrProfileNotFound)
			}
			return stepErr(StepLookup, err)
		}

		updates := map[string]any{
			"first_name":      in.FirstName,
			"last_name":       in.LastName,
			"document_number": in.DocumentNumber,
			"birth_date":      in.BirthDate,
			"address":         in.Address,
			"phone":           in.Phone,
		}
		if err := tx.Model(&userModel.PersonModel{}).
			Where("id = ?", profile.PersonID).
			Updates(updates).Error; err != nil {
			return stepErr(StepPerson, err)
		}

		if err := e.ensureAssignableSchool(tx, in.SchoolID); err != nil {
			return stepErr(StepSchool, err)
		}
		if err := tx.Where("profile_id = ?", profileID).
			Delete(&userModel.ProfileSchoolModel{}).Error; err != nil {
			return stepErr(StepSchool, err)
		}
		if err := tx.Create(&userModel.ProfileSchoolModel{
			ProfileID: profileID,
			SchoolID:  in.SchoolID,
		}).Error; err != nil {
			return stepErr(StepSchool, err)
		}

		if err := tx.Where("profile_id = ?", profileID).
			Delete(&userModel.ProfileRoleModel{}).Error; err != nil {
			return stepErr(StepRoles, err)
		}
		if err := tx.Where("profile_id = ?", profileID).
			Delete(&userModel.ProfileSchoolLevelModel{}).Error; err != nil {
			return stepErr(StepLevels, err)
		}

		return insertRoleSet(tx, profileID, in)
	})
}

func insertRoleSet(tx *gorm.DB, profileID uuid.UUID, in ManagedUserInput) error {
	rows := make([]userModel.ProfileRoleModel, 0, len(in.RoleIDs))
	for _, roleID := range in.RoleIDs {
		rows = append(rows, userModel.ProfileRoleModel{ProfileID: profileID, RoleID: roleID})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return stepErr(StepRoles, err)
	}

	if len(in.RoleLevels) == 0 {
		return nil
	}
	scopes := make([]userModel.ProfileSchoolLevelModel, 0, len(in.RoleLevels))
	for _, scope := range in.RoleLevels {
		scopes = append(scopes, userModel.ProfileSchoolLevelModel{
			ProfileID:     profileID,
			RoleID:        scope.RoleID,
			SchoolLevelID: scope.SchoolLevelID,
			SchoolID:      in.SchoolID,
		})
	}
	if err := tx.Create(&scopes).Error; err != nil {
		return stepErr(StepLevels, err)
	}
	return nil
}
