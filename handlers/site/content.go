package site

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/utils/response"
)

// ListCarousel handles GET /site/carousel
func (h *SiteHandler) ListCarousel(c *fiber.Ctx) error {
	var slides []model.Carousel
	if err := h.db.Order("id").Find(&slides).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch carousel")
	}
	return response.List(c, "carousel", slides, len(slides))
}

type feedbackItem struct {
	model.Feedback
	FullnameDisplay    string `json:"fullname"`
	DescriptionDisplay string `json:"description"`
}

// ListFeedback handles GET /site/feedback
func (h *SiteHandler) ListFeedback(c *fiber.Ctx) error {
	lang := language(c)

	var entries []model.Feedback
	if err := h.db.Order("id DESC").Find(&entries).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch feedback")
	}

	items := make([]feedbackItem, 0, len(entries))
	for _, f := range entries {
		items = append(items, feedbackItem{
			Feedback:           f,
			FullnameDisplay:    f.Fullname(lang),
			DescriptionDisplay: f.Description(lang),
		})
	}

	return response.List(c, "feedback", items, len(items))
}

// ListAboutUs handles GET /site/about-us
func (h *SiteHandler) ListAboutUs(c *fiber.Ctx) error {
	var cards []model.AboutUs
	if err := h.db.Order("id").Find(&cards).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch about us")
	}
	return response.List(c, "about_us", cards, len(cards))
}

// GetReport handles GET /site/report. There is a single counters row;
// an empty table reads as all zeros.
func (h *SiteHandler) GetReport(c *fiber.Ctx) error {
	var report model.Report
	if err := h.db.First(&report).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return response.InternalServerError(c, "Failed to fetch report")
		}
	}
	return response.Detail(c, report)
}
