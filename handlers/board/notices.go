package board

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/services/storage"
	"github.com/upsight-uz/portal-api/utils/response"
	"github.com/upsight-uz/portal-api/utils/validation"
)

// ListNotices handles GET /board/notices
func (h *BoardHandler) ListNotices(c *fiber.Ctx) error {
	s, err := h.readScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	var notices []model.Notice
	q := s.Filter(h.db.Order("date DESC, id DESC"), "university_id")
	if err := q.Find(&notices).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch notices")
	}

	return response.ListWith(c, "notices", notices, len(notices), fiber.Map{
		"access_level": accessLevel(s),
	})
}

// GetNotice handles GET /board/notices/:id
func (h *BoardHandler) GetNotice(c *fiber.Ctx) error {
	s, err := h.readScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	var notice model.Notice
	if err := h.db.First(&notice, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Notice not found")
		}
		return response.InternalServerError(c, "Failed to fetch notice")
	}

	if !s.CanAccess(notice.UniversityID) {
		return response.Forbidden(c, "Permission denied")
	}

	return response.Detail(c, notice)
}

// CreateNotice handles POST /board/notices
func (h *BoardHandler) CreateNotice(c *fiber.Ctx) error {
	s, err := h.writeScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	var req PostRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	universityID, err := h.resolveOwner(s, req.University)
	if err != nil {
		return ownerFailure(c, err)
	}

	notice := model.Notice{
		TitleUz:      validation.SanitizeString(req.TitleUz),
		TitleKo:      validation.SanitizeString(req.TitleKo),
		ContentUz:    validation.SanitizeString(req.ContentUz),
		ContentKo:    validation.SanitizeString(req.ContentKo),
		UniversityID: universityID,
	}

	if err := h.db.Create(&notice).Error; err != nil {
		return response.InternalServerError(c, "Failed to create notice")
	}

	return response.Created(c, "Notice created successfully", "notice", notice)
}

// UpdateNotice handles PUT /board/notices/:id
func (h *BoardHandler) UpdateNotice(c *fiber.Ctx) error {
	s, err := h.writeScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	var notice model.Notice
	if err := h.db.First(&notice, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Notice not found")
		}
		return response.InternalServerError(c, "Failed to fetch notice")
	}

	if !s.CanAccess(notice.UniversityID) {
		return response.Forbidden(c, "Permission denied")
	}

	var req PostRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	if s.Global && req.University != 0 && req.University != notice.UniversityID {
		universityID, err := h.resolveOwner(s, req.University)
		if err != nil {
			return ownerFailure(c, err)
		}
		notice.UniversityID = universityID
	}

	notice.TitleUz = validation.SanitizeString(req.TitleUz)
	notice.TitleKo = validation.SanitizeString(req.TitleKo)
	notice.ContentUz = validation.SanitizeString(req.ContentUz)
	notice.ContentKo = validation.SanitizeString(req.ContentKo)

	if err := h.db.Save(&notice).Error; err != nil {
		return response.InternalServerError(c, "Failed to update notice")
	}

	return response.Updated(c, "Notice updated successfully", "notice", notice)
}

// DeleteNotice handles DELETE /board/notices/:id
func (h *BoardHandler) DeleteNotice(c *fiber.Ctx) error {
	s, err := h.writeScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	var notice model.Notice
	if err := h.db.First(&notice, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Notice not found")
		}
		return response.InternalServerError(c, "Failed to fetch notice")
	}

	if !s.CanAccess(notice.UniversityID) {
		return response.Forbidden(c, "Permission denied")
	}

	if err := h.db.Delete(&notice).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete notice")
	}

	return response.Message(c, "Notice deleted successfully")
}

// UploadNoticeImage handles POST /board/notices/:id/image
func (h *BoardHandler) UploadNoticeImage(c *fiber.Ctx) error {
	s, err := h.writeScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	var notice model.Notice
	if err := h.db.First(&notice, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Notice not found")
		}
		return response.InternalServerError(c, "Failed to fetch notice")
	}

	if !s.CanAccess(notice.UniversityID) {
		return response.Forbidden(c, "Permission denied")
	}

	url, err := h.uploadImage(c, storage.PrefixNoticeImages)
	if err != nil {
		return uploadFailure(c, err)
	}

	notice.Image = url
	if err := h.db.Save(&notice).Error; err != nil {
		return response.InternalServerError(c, "Failed to update notice")
	}

	return response.Updated(c, "Image uploaded successfully", "notice", notice)
}
