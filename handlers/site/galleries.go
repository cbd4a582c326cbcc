package site

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/utils/response"
)

type galleryItem struct {
	model.Gallery
	Title string `json:"title"`
}

type galleryPhotoItem struct {
	model.GalleryItem
	Description string `json:"description"`
}

// ListGalleries handles GET /site/galleries
func (h *SiteHandler) ListGalleries(c *fiber.Ctx) error {
	lang := language(c)

	var galleries []model.Gallery
	if err := h.db.Order("id DESC").Find(&galleries).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch galleries")
	}

	items := make([]galleryItem, 0, len(galleries))
	for _, g := range galleries {
		items = append(items, galleryItem{
			Gallery: g,
			Title:   g.Title(lang),
		})
	}

	return response.List(c, "galleries", items, len(items))
}

// ListGalleryItems handles GET /site/galleries/:id/items
func (h *SiteHandler) ListGalleryItems(c *fiber.Ctx) error {
	lang := language(c)

	var gallery model.Gallery
	if err := h.db.First(&gallery, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Gallery not found")
		}
		return response.InternalServerError(c, "Failed to fetch gallery")
	}

	var photos []model.GalleryItem
	if err := h.db.Where("gallery_id = ?", gallery.ID).Order("id").Find(&photos).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch gallery items")
	}

	items := make([]galleryPhotoItem, 0, len(photos))
	for _, p := range photos {
		items = append(items, galleryPhotoItem{
			GalleryItem: p,
			Description: p.Description(lang),
		})
	}

	return response.List(c, "items", items, len(items))
}
