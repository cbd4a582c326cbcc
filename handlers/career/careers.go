package career

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/utils/response"
	"github.com/upsight-uz/portal-api/utils/validation"
)

// CareerHandler handles job-seeker records with their work history and
// counselling notes.
type CareerHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewCareerHandler creates a new career handler.
func NewCareerHandler(db *gorm.DB) *CareerHandler {
	return &CareerHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CareerRequest is the write body for career records.
type CareerRequest struct {
	NameUz      string     `json:"name_uz"`
	NameKo      string     `json:"name_ko"`
	BirthDate   model.Date `json:"birth_date" validate:"required"`
	Gender      string     `json:"gender" validate:"required,oneof=male female"`
	PhoneNumber string     `json:"phone_number"`
	Telephone   string     `json:"telephone"`
}

func (r *CareerRequest) validate(v *validation.Validator) map[string]string {
	errs := v.Check(r)
	validation.RequireBilingual(errs, "name", r.NameUz, r.NameKo)
	return errs
}

func (r *CareerRequest) apply(career *model.Career) {
	career.NameUz = validation.SanitizeString(r.NameUz)
	career.NameKo = validation.SanitizeString(r.NameKo)
	career.BirthDate = r.BirthDate
	career.Gender = r.Gender
	career.PhoneNumber = r.PhoneNumber
	career.Telephone = r.Telephone
}

// ListCareers handles GET /management/careers
func (h *CareerHandler) ListCareers(c *fiber.Ctx) error {
	var careers []model.Career
	if err := h.db.Order("id").Find(&careers).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch careers")
	}
	return response.List(c, "careers", careers, len(careers))
}

// GetCareer handles GET /management/careers/:id. The detail embeds work
// history and counselling notes.
func (h *CareerHandler) GetCareer(c *fiber.Ctx) error {
	id := c.Params("id")

	var career model.Career
	if err := h.db.Preload("History").Preload("Counsels").First(&career, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Career not found")
		}
		return response.InternalServerError(c, "Failed to fetch career")
	}

	return response.Detail(c, career)
}

// CreateCareer handles POST /management/careers
func (h *CareerHandler) CreateCareer(c *fiber.Ctx) error {
	var req CareerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	var career model.Career
	req.apply(&career)

	if err := h.db.Create(&career).Error; err != nil {
		return response.InternalServerError(c, "Failed to create career")
	}

	return response.Created(c, "Career created successfully", "career", career)
}

// UpdateCareer handles PUT /management/careers/:id
func (h *CareerHandler) UpdateCareer(c *fiber.Ctx) error {
	id := c.Params("id")

	var career model.Career
	if err := h.db.First(&career, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Career not found")
		}
		return response.InternalServerError(c, "Failed to fetch career")
	}

	var req CareerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	req.apply(&career)

	if err := h.db.Save(&career).Error; err != nil {
		return response.InternalServerError(c, "Failed to update career")
	}

	return response.Updated(c, "Career updated successfully", "career", career)
}

// DeleteCareer handles DELETE /management/careers/:id. History and
// counselling notes go with the row.
func (h *CareerHandler) DeleteCareer(c *fiber.Ctx) error {
	id := c.Params("id")

	var career model.Career
	if err := h.db.First(&career, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Career not found")
		}
		return response.InternalServerError(c, "Failed to fetch career")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{&model.CareerHistory{}, &model.CareerCounsel{}} {
			if err := tx.Where("career_id = ?", career.ID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&career).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to delete career")
	}

	return response.Message(c, "Career deleted successfully")
}
