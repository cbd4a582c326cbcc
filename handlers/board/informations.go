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

// ListInformations handles GET /board/informations
func (h *BoardHandler) ListInformations(c *fiber.Ctx) error {
	s, err := h.readScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	var informations []model.Information
	q := s.Filter(h.db.Preload("Documents").Order("date DESC, id DESC"), "university_id")
	if err := q.Find(&informations).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch informations")
	}

	return response.ListWith(c, "informations", informations, len(informations), fiber.Map{
		"access_level": accessLevel(s),
	})
}

// GetInformation handles GET /board/informations/:id. The detail embeds
// the attached documents.
func (h *BoardHandler) GetInformation(c *fiber.Ctx) error {
	s, err := h.readScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	var info model.Information
	if err := h.db.Preload("Documents").First(&info, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Information not found")
		}
		return response.InternalServerError(c, "Failed to fetch information")
	}

	if !s.CanAccess(info.UniversityID) {
		return response.Forbidden(c, "Permission denied")
	}

	return response.Detail(c, info)
}

// CreateInformation handles POST /board/informations
func (h *BoardHandler) CreateInformation(c *fiber.Ctx) error {
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

	info := model.Information{
		TitleUz:      validation.SanitizeString(req.TitleUz),
		TitleKo:      validation.SanitizeString(req.TitleKo),
		ContentUz:    validation.SanitizeString(req.ContentUz),
		ContentKo:    validation.SanitizeString(req.ContentKo),
		UniversityID: universityID,
	}

	if err := h.db.Create(&info).Error; err != nil {
		return response.InternalServerError(c, "Failed to create information")
	}

	return response.Created(c, "Information created successfully", "information", info)
}

// UpdateInformation handles PUT /board/informations/:id
func (h *BoardHandler) UpdateInformation(c *fiber.Ctx) error {
	s, err := h.writeScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	var info model.Information
	if err := h.db.First(&info, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Information not found")
		}
		return response.InternalServerError(c, "Failed to fetch information")
	}

	if !s.CanAccess(info.UniversityID) {
		return response.Forbidden(c, "Permission denied")
	}

	var req PostRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	if s.Global && req.University != 0 && req.University != info.UniversityID {
		universityID, err := h.resolveOwner(s, req.University)
		if err != nil {
			return ownerFailure(c, err)
		}
		info.UniversityID = universityID
	}

	info.TitleUz = validation.SanitizeString(req.TitleUz)
	info.TitleKo = validation.SanitizeString(req.TitleKo)
	info.ContentUz = validation.SanitizeString(req.ContentUz)
	info.ContentKo = validation.SanitizeString(req.ContentKo)

	if err := h.db.Save(&info).Error; err != nil {
		return response.InternalServerError(c, "Failed to update information")
	}

	return response.Updated(c, "Information updated successfully", "information", info)
}

// DeleteInformation handles DELETE /board/informations/:id. Attached
// documents go with the post.
func (h *BoardHandler) DeleteInformation(c *fiber.Ctx) error {
	s, err := h.writeScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	var info model.Information
	if err := h.db.First(&info, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Information not found")
		}
		return response.InternalServerError(c, "Failed to fetch information")
	}

	if !s.CanAccess(info.UniversityID) {
		return response.Forbidden(c, "Permission denied")
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("information_id = ?", info.ID).Delete(&model.InformationDocument{}).Error; err != nil {
			return err
		}
		return tx.Delete(&info).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to delete information")
	}

	return response.Message(c, "Information deleted successfully")
}

// UploadInformationImage handles POST /board/informations/:id/image
func (h *BoardHandler) UploadInformationImage(c *fiber.Ctx) error {
	s, err := h.writeScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	var info model.Information
	if err := h.db.First(&info, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Information not found")
		}
		return response.InternalServerError(c, "Failed to fetch information")
	}

	if !s.CanAccess(info.UniversityID) {
		return response.Forbidden(c, "Permission denied")
	}

	url, err := h.uploadImage(c, storage.PrefixInformationImages)
	if err != nil {
		return uploadFailure(c, err)
	}

	info.Image = url
	if err := h.db.Save(&info).Error; err != nil {
		return response.InternalServerError(c, "Failed to update information")
	}

	return response.Updated(c, "Image uploaded successfully", "information", info)
}
