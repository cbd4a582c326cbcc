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

// ListTranslations handles GET /board/translations
func (h *BoardHandler) ListTranslations(c *fiber.Ctx) error {
	s, err := h.readScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	var translations []model.Translation
	q := s.Filter(h.db.Order("id DESC"), "university_id")
	if err := q.Find(&translations).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch translations")
	}

	return response.ListWith(c, "translations", translations, len(translations), fiber.Map{
		"access_level": accessLevel(s),
	})
}

// GetTranslation handles GET /board/translations/:id
func (h *BoardHandler) GetTranslation(c *fiber.Ctx) error {
	s, err := h.readScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	var translation model.Translation
	if err := h.db.First(&translation, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Translation not found")
		}
		return response.InternalServerError(c, "Failed to fetch translation")
	}

	if !s.CanAccess(translation.UniversityID) {
		return response.Forbidden(c, "Permission denied")
	}

	return response.Detail(c, translation)
}

// CreateTranslation handles POST /board/translations
func (h *BoardHandler) CreateTranslation(c *fiber.Ctx) error {
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

	translation := model.Translation{
		TitleUz:      validation.SanitizeString(req.TitleUz),
		TitleKo:      validation.SanitizeString(req.TitleKo),
		ContentUz:    validation.SanitizeString(req.ContentUz),
		ContentKo:    validation.SanitizeString(req.ContentKo),
		UniversityID: universityID,
	}

	if err := h.db.Create(&translation).Error; err != nil {
		return response.InternalServerError(c, "Failed to create translation")
	}

	return response.Created(c, "Translation created successfully", "translation", translation)
}

// UpdateTranslation handles PUT /board/translations/:id
func (h *BoardHandler) UpdateTranslation(c *fiber.Ctx) error {
	s, err := h.writeScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	var translation model.Translation
	if err := h.db.First(&translation, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Translation not found")
		}
		return response.InternalServerError(c, "Failed to fetch translation")
	}

	if !s.CanAccess(translation.UniversityID) {
		return response.Forbidden(c, "Permission denied")
	}

	var req PostRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	if s.Global && req.University != 0 && req.University != translation.UniversityID {
		universityID, err := h.resolveOwner(s, req.University)
		if err != nil {
			return ownerFailure(c, err)
		}
		translation.UniversityID = universityID
	}

	translation.TitleUz = validation.SanitizeString(req.TitleUz)
	translation.TitleKo = validation.SanitizeString(req.TitleKo)
	translation.ContentUz = validation.SanitizeString(req.ContentUz)
	translation.ContentKo = validation.SanitizeString(req.ContentKo)

	if err := h.db.Save(&translation).Error; err != nil {
		return response.InternalServerError(c, "Failed to update translation")
	}

	return response.Updated(c, "Translation updated successfully", "translation", translation)
}

// DeleteTranslation handles DELETE /board/translations/:id
func (h *BoardHandler) DeleteTranslation(c *fiber.Ctx) error {
	s, err := h.writeScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	var translation model.Translation
	if err := h.db.First(&translation, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Translation not found")
		}
		return response.InternalServerError(c, "Failed to fetch translation")
	}

	if !s.CanAccess(translation.UniversityID) {
		return response.Forbidden(c, "Permission denied")
	}

	if err := h.db.Delete(&translation).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete translation")
	}

	return response.Message(c, "Translation deleted successfully")
}

// UploadTranslationImage handles POST /board/translations/:id/image
func (h *BoardHandler) UploadTranslationImage(c *fiber.Ctx) error {
	s, err := h.writeScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	var translation model.Translation
	if err := h.db.First(&translation, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Translation not found")
		}
		return response.InternalServerError(c, "Failed to fetch translation")
	}

	if !s.CanAccess(translation.UniversityID) {
		return response.Forbidden(c, "Permission denied")
	}

	url, err := h.uploadImage(c, storage.PrefixTranslationImages)
	if err != nil {
		return uploadFailure(c, err)
	}

	translation.Image = url
	if err := h.db.Save(&translation).Error; err != nil {
		return response.InternalServerError(c, "Failed to update translation")
	}

	return response.Updated(c, "Image uploaded successfully", "translation", translation)
}
