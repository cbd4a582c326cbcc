package site

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SiteHandler serves the public marketing content. Everything here is
// unauthenticated and read-only; writes happen out of band.
type SiteHandler struct {
	db *gorm.DB
}

// NewSiteHandler creates a new site handler.
func NewSiteHandler(db *gorm.DB) *SiteHandler {
	return &SiteHandler{db: db}
}

// language reads the ?language= selector. Anything but "uz" means the
// Korean-first default.
func language(c *fiber.Ctx) string {
	if c.Query("language") == "uz" {
		return "uz"
	}
	return "ko"
}
