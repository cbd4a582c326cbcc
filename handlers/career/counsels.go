package career

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/utils/response"
	"github.com/upsight-uz/portal-api/utils/validation"
)

// CounselRequest is the write body for counselling notes.
type CounselRequest struct {
	Date      model.Date `json:"date" validate:"required"`
	DetailsUz string     `json:"details_uz"`
	DetailsKo string     `json:"details_ko"`
}

func (r *CounselRequest) validate(v *validation.Validator) map[string]string {
	errs := v.Check(r)
	validation.RequireBilingual(errs, "details", r.DetailsUz, r.DetailsKo)
	return errs
}

// ListCounsels handles GET /management/careers/:id/counsels
func (h *CareerHandler) ListCounsels(c *fiber.Ctx) error {
	id := c.Params("id")

	var career model.Career
	if err := h.db.First(&career, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Career not found")
		}
		return response.InternalServerError(c, "Failed to fetch career")
	}

	var counsels []model.CareerCounsel
	if err := h.db.Where("career_id = ?", career.ID).Order("date DESC").Find(&counsels).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch counsels")
	}

	return response.List(c, "counsels", counsels, len(counsels))
}

// CreateCounsel handles POST /management/careers/:id/counsels
func (h *CareerHandler) CreateCounsel(c *fiber.Ctx) error {
	id := c.Params("id")

	var career model.Career
	if err := h.db.First(&career, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Career not found")
		}
		return response.InternalServerError(c, "Failed to fetch career")
	}

	var req CounselRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	counsel := model.CareerCounsel{
		CareerID:  career.ID,
		Date:      req.Date,
		DetailsUz: validation.SanitizeString(req.DetailsUz),
		DetailsKo: validation.SanitizeString(req.DetailsKo),
	}

	if err := h.db.Create(&counsel).Error; err != nil {
		return response.InternalServerError(c, "Failed to create counsel")
	}

	return response.Created(c, "Counsel created successfully", "counsel", counsel)
}

// UpdateCounsel handles PUT /management/careers/:id/counsels/:counselId
func (h *CareerHandler) UpdateCounsel(c *fiber.Ctx) error {
	id := c.Params("id")
	counselID := c.Params("counselId")

	var counsel model.CareerCounsel
	if err := h.db.Where("career_id = ?", id).First(&counsel, counselID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Counsel not found")
		}
		return response.InternalServerError(c, "Failed to fetch counsel")
	}

	var req CounselRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	counsel.Date = req.Date
	counsel.DetailsUz = validation.SanitizeString(req.DetailsUz)
	counsel.DetailsKo = validation.SanitizeString(req.DetailsKo)

	if err := h.db.Save(&counsel).Error; err != nil {
		return response.InternalServerError(c, "Failed to update counsel")
	}

	return response.Updated(c, "Counsel updated successfully", "counsel", counsel)
}

// DeleteCounsel handles DELETE /management/careers/:id/counsels/:counselId
func (h *CareerHandler) DeleteCounsel(c *fiber.Ctx) error {
	id := c.Params("id")
	counselID := c.Params("counselId")

	var counsel model.CareerCounsel
	if err := h.db.Where("career_id = ?", id).First(&counsel, counselID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Counsel not found")
		}
		return response.InternalServerError(c, "Failed to fetch counsel")
	}

	if err := h.db.Delete(&counsel).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete counsel")
	}

	return response.Message(c, "Counsel deleted successfully")
}
