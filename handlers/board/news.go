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

// ListNews handles GET /board/news
func (h *BoardHandler) ListNews(c *fiber.Ctx) error {
	s, err := h.readScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	var news []model.News
	q := s.Filter(h.db.Order("date DESC, id DESC"), "university_id")
	if err := q.Find(&news).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch news")
	}

	return response.ListWith(c, "news", news, len(news), fiber.Map{
		"access_level": accessLevel(s),
	})
}

// GetNews handles GET /board/news/:id
func (h *BoardHandler) GetNews(c *fiber.Ctx) error {
	s, err := h.readScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	var post model.News
	if err := h.db.First(&post, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "News not found")
		}
		return response.InternalServerError(c, "Failed to fetch news")
	}

	if !s.CanAccess(post.UniversityID) {
		return response.Forbidden(c, "Permission denied")
	}

	return response.Detail(c, post)
}

// CreateNews handles POST /board/news. University staff always post to
// their own university; the body's university field only matters for
// global staff.
func (h *BoardHandler) CreateNews(c *fiber.Ctx) error {
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

	post := model.News{
		TitleUz:      validation.SanitizeString(req.TitleUz),
		TitleKo:      validation.SanitizeString(req.TitleKo),
		ContentUz:    validation.SanitizeString(req.ContentUz),
		ContentKo:    validation.SanitizeString(req.ContentKo),
		UniversityID: universityID,
	}

	if err := h.db.Create(&post).Error; err != nil {
		return response.InternalServerError(c, "Failed to create news")
	}

	return response.Created(c, "News created successfully", "news", post)
}

// UpdateNews handles PUT /board/news/:id. The owning university is
// immutable for scoped staff.
func (h *BoardHandler) UpdateNews(c *fiber.Ctx) error {
	s, err := h.writeScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	var post model.News
	if err := h.db.First(&post, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "News not found")
		}
		return response.InternalServerError(c, "Failed to fetch news")
	}

	if !s.CanAccess(post.UniversityID) {
		return response.Forbidden(c, "Permission denied")
	}

	var req PostRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	if s.Global && req.University != 0 && req.University != post.UniversityID {
		universityID, err := h.resolveOwner(s, req.University)
		if err != nil {
			return ownerFailure(c, err)
		}
		post.UniversityID = universityID
	}

	post.TitleUz = validation.SanitizeString(req.TitleUz)
	post.TitleKo = validation.SanitizeString(req.TitleKo)
	post.ContentUz = validation.SanitizeString(req.ContentUz)
	post.ContentKo = validation.SanitizeString(req.ContentKo)

	if err := h.db.Save(&post).Error; err != nil {
		return response.InternalServerError(c, "Failed to update news")
	}

	return response.Updated(c, "News updated successfully", "news", post)
}

// DeleteNews handles DELETE /board/news/:id
func (h *BoardHandler) DeleteNews(c *fiber.Ctx) error {
	s, err := h.writeScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	var post model.News
	if err := h.db.First(&post, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "News not found")
		}
		return response.InternalServerError(c, "Failed to fetch news")
	}

	if !s.CanAccess(post.UniversityID) {
		return response.Forbidden(c, "Permission denied")
	}

	if err := h.db.Delete(&post).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete news")
	}

	return response.Message(c, "News deleted successfully")
}

// UploadNewsImage handles POST /board/news/:id/image
func (h *BoardHandler) UploadNewsImage(c *fiber.Ctx) error {
	s, err := h.writeScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	var post model.News
	if err := h.db.First(&post, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "News not found")
		}
		return response.InternalServerError(c, "Failed to fetch news")
	}

	if !s.CanAccess(post.UniversityID) {
		return response.Forbidden(c, "Permission denied")
	}

	url, err := h.uploadImage(c, storage.PrefixNewsImages)
	if err != nil {
		return uploadFailure(c, err)
	}

	post.Image = url
	if err := h.db.Save(&post).Error; err != nil {
		return response.InternalServerError(c, "Failed to update news")
	}

	return response.Updated(c, "Image uploaded successfully", "news", post)
}
