package site

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/utils/response"
)

// siteNewsItem is a SiteNews row with its display side resolved for the
// requested language.
type siteNewsItem struct {
	model.SiteNews
	Title   string `json:"title"`
	Content string `json:"content"`
}

func newSiteNewsItem(post model.SiteNews, lang string) siteNewsItem {
	return siteNewsItem{
		SiteNews: post,
		Title:    post.Title(lang),
		Content:  post.Content(lang),
	}
}

// ListNews handles GET /site/news
func (h *SiteHandler) ListNews(c *fiber.Ctx) error {
	lang := language(c)

	var posts []model.SiteNews
	if err := h.db.Order("date_posted DESC, id DESC").Find(&posts).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch news")
	}

	items := make([]siteNewsItem, 0, len(posts))
	for _, post := range posts {
		items = append(items, newSiteNewsItem(post, lang))
	}

	return response.List(c, "news", items, len(items))
}

// GetNews handles GET /site/news/:id
func (h *SiteHandler) GetNews(c *fiber.Ctx) error {
	var post model.SiteNews
	if err := h.db.First(&post, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "News not found")
		}
		return response.InternalServerError(c, "Failed to fetch news")
	}

	return response.Detail(c, newSiteNewsItem(post, language(c)))
}
