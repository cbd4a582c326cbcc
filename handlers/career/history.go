package career

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/utils/response"
	"github.com/upsight-uz/portal-api/utils/validation"
)

// HistoryRequest is the write body for work-history entries.
type HistoryRequest struct {
	WorkTitleUz string     `json:"work_title_uz"`
	WorkTitleKo string     `json:"work_title_ko"`
	StartDate   model.Date `json:"start_date" validate:"required"`
	EndDate     model.Date `json:"end_date"`
	RegionUz    string     `json:"region_uz"`
	RegionKo    string     `json:"region_ko"`
	Visa        string     `json:"visa"`
}

func (r *HistoryRequest) validate(v *validation.Validator) map[string]string {
	errs := v.Check(r)
	validation.RequireBilingual(errs, "work_title", r.WorkTitleUz, r.WorkTitleKo)
	validation.RequireBilingual(errs, "region", r.RegionUz, r.RegionKo)
	return errs
}

func (r *HistoryRequest) apply(entry *model.CareerHistory) {
	entry.WorkTitleUz = validation.SanitizeString(r.WorkTitleUz)
	entry.WorkTitleKo = validation.SanitizeString(r.WorkTitleKo)
	entry.StartDate = r.StartDate
	entry.EndDate = r.EndDate
	entry.RegionUz = validation.SanitizeString(r.RegionUz)
	entry.RegionKo = validation.SanitizeString(r.RegionKo)
	entry.Visa = r.Visa
}

// ListHistory handles GET /management/careers/:id/history
func (h *CareerHandler) ListHistory(c *fiber.Ctx) error {
	id := c.Params("id")

	var career model.Career
	if err := h.db.First(&career, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Career not found")
		}
		return response.InternalServerError(c, "Failed to fetch career")
	}

	var history []model.CareerHistory
	if err := h.db.Where("career_id = ?", career.ID).Order("start_date DESC").Find(&history).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch history")
	}

	return response.List(c, "history", history, len(history))
}

// CreateHistory handles POST /management/careers/:id/history
func (h *CareerHandler) CreateHistory(c *fiber.Ctx) error {
	id := c.Params("id")

	var career model.Career
	if err := h.db.First(&career, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Career not found")
		}
		return response.InternalServerError(c, "Failed to fetch career")
	}

	var req HistoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	entry := model.CareerHistory{CareerID: career.ID}
	req.apply(&entry)

	if err := h.db.Create(&entry).Error; err != nil {
		return response.InternalServerError(c, "Failed to create history entry")
	}

	return response.Created(c, "History entry created successfully", "history", entry)
}

// UpdateHistory handles PUT /management/careers/:id/history/:historyId
func (h *CareerHandler) UpdateHistory(c *fiber.Ctx) error {
	id := c.Params("id")
	historyID := c.Params("historyId")

	var entry model.CareerHistory
	if err := h.db.Where("career_id = ?", id).First(&entry, historyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "History entry not found")
		}
		return response.InternalServerError(c, "Failed to fetch history entry")
	}

	var req HistoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	req.apply(&entry)

	if err := h.db.Save(&entry).Error; err != nil {
		return response.InternalServerError(c, "Failed to update history entry")
	}

	return response.Updated(c, "History entry updated successfully", "history", entry)
}

// DeleteHistory handles DELETE /management/careers/:id/history/:historyId
func (h *CareerHandler) DeleteHistory(c *fiber.Ctx) error {
	id := c.Params("id")
	historyID := c.Params("historyId")

	var entry model.CareerHistory
	if err := h.db.Where("career_id = ?", id).First(&entry, historyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "History entry not found")
		}
		return response.InternalServerError(c, "Failed to fetch history entry")
	}

	if err := h.db.Delete(&entry).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete history entry")
	}

	return response.Message(c, "History entry deleted successfully")
}
