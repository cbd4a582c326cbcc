package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/utils/middleware"
	"github.com/upsight-uz/portal-api/utils/response"
)

// Profile handles GET /auth/profile. The payload carries the user plus
// the personnel row behind the role, so clients can show names and, for
// scoped staff, the owning institution.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	body := fiber.Map{
		"user": user,
	}

	switch user.Role {
	case model.RoleUpsightStaff:
		var employee model.Employee
		err := h.db.Where("user_id = ?", user.ID).First(&employee).Error
		if err == nil {
			body["employee"] = employee
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return response.InternalServerError(c, "Failed to load profile")
		}
	case model.RoleUniversityStaff:
		var manager model.UniversityManager
		err := h.db.Preload("University").Where("user_id = ?", user.ID).First(&manager).Error
		if err == nil {
			body["manager"] = manager
			body["university"] = manager.University
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return response.InternalServerError(c, "Failed to load profile")
		}
	case model.RoleOrganStaff:
		var manager model.OrganManager
		err := h.db.Preload("Organ").Where("user_id = ?", user.ID).First(&manager).Error
		if err == nil {
			body["manager"] = manager
			body["organ"] = manager.Organ
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return response.InternalServerError(c, "Failed to load profile")
		}
	}

	return c.Status(fiber.StatusOK).JSON(body)
}
