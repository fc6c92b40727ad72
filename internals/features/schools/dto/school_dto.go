// file: internals/features/schools/dto/school_dto.go
package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

/* ==========================
   Schools
========================== */

type CreateSchoolRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Address  *string `json:"address" validate:"omitempty,max=255"`
	City     *string `json:"city" validate:"omitempty,max=100"`
	Province *string `json:"province" validate:"omitempty,max=100"`
	Phone    *string `json:"phone" validate:"omitempty,max=50"`
	CUE      *string `json:"cue" validate:"omitempty,max=20"`
}

type UpdateSchoolRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Address  *string `json:"address" validate:"omitempty,max=255"`
	City     *string `json:"city" validate:"omitempty,max=100"`
	Province *string `json:"province" validate:"omitempty,max=100"`
	Phone    *string `json:"phone" validate:"omitempty,max=50"`
	CUE      *string `json:"cue" validate:"omitempty,max=20"`
}

func (r *CreateSchoolRequest) Validate() error { return validate.Struct(r) }
func (r *UpdateSchoolRequest) Validate() error { return validate.Struct(r) }

// Updates builds the partial column map; only supplied fields change.
func (r *UpdateSchoolRequest) Updates() map[string]any {
	out := map[string]any{}
	if r.Name != nil {
		out["name"] = *r.Name
	}
	if r.Address != nil {
		out["address"] = r.Address
	}
	if r.City != nil {
		out["city"] = r.City
	}
	if r.Province != nil {
		out["province"] = r.Province
	}
	if r.Phone != nil {
		out["phone"] = r.Phone
	}
	if r.CUE != nil {
		out["cue"] = r.CUE
	}
	return out
}

/* ==========================
   School levels
========================== */

type SchoolLevelRequest struct {
	Name    string  `json:"name" validate:"required,max=100"`
	CUE     *string `json:"cue" validate:"omitempty,max=20"`
	Diegep  *string `json:"diegep" validate:"omitempty,max=20"`
	KeyProv *string `json:"key_prov" validate:"omitempty,max=20"`
}

func (r *SchoolLevelRequest) Validate() error { return validate.Struct(r) }

/* ==========================
   School courses
========================== */

type SchoolCourseRequest struct {
	Name          string    `json:"name" validate:"required,max=100"`
	SchoolLevelID uuid.UUID `json:"school_level_id" validate:"required"`
}

func (r *SchoolCourseRequest) Validate() error { return validate.Struct(r) }

/* ==========================
   Academic years
========================== */

type AcademicYearRequest struct {
	Year             int     `json:"year" validate:"required,min=2000,max=2100"`
	StartDate        string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate          string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	WinterBreakStart *string `json:"winter_break_start" validate:"omitempty,datetime=2006-01-02"`
	WinterBreakEnd   *string `json:"winter_break_end" validate:"omitempty,datetime=2006-01-02"`
	Structure        string  `json:"structure" validate:"omitempty,oneof=trimestres cuatrimestres semestres"`
}

func (r *AcademicYearRequest) Validate() error { return validate.Struct(r) }

func (r *AcademicYearRequest) Dates() (start, end time.Time, wbStart, wbEnd *time.Time, err error) {
	start, err = time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return
	}
	end, err = time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return
	}
	if r.WinterBreakStart != nil {
		t, perr := time.Parse("2006-01-02", *r.WinterBreakStart)
		if perr != nil {
			err = perr
			return
		}
		wbStart = &t
	}
	if r.WinterBreakEnd != nil {
		t, perr := time.Parse("2006-01-02", *r.WinterBreakEnd)
		if perr != nil {
			err = perr
			return
		}
		wbEnd = &t
	}
	return
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
		case "min":
			out[fe.Field()] = "mínimo " + fe.Param()
		case "max":
			out[fe.Field()] = "máximo " + fe.Param()
		case "datetime":
			out[fe.Field()] = "fecha inválida (AAAA-MM-DD)"
		case "oneof":
			out[fe.Field()] = "valor fuera del conjunto permitido"
		default:
			out[fe.Field()] = "inválido"
		}
	}
	return out
}
