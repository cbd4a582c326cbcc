package university

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/services"
	"github.com/upsight-uz/portal-api/utils/response"
	"github.com/upsight-uz/portal-api/utils/validation"
)

// ManagerRequest is the write body for university managers. Password is
// required on create and optional on update.
type ManagerRequest struct {
	UniversityID uint   `json:"university_id"`
	NameUz       string `json:"name_uz"`
	NameKo       string `json:"name_ko"`
	ManagerID    int    `json:"manager_id" validate:"required,gt=0"`
	PhoneNumber  string `json:"phone_number"`
	Password     string `json:"password"`
}

func (r *ManagerRequest) validate(v *validation.Validator, requirePassword bool) map[string]string {
	errs := v.Check(r)
	validation.RequireBilingual(errs, "name", r.NameUz, r.NameKo)
	if requirePassword && r.Password == "" {
		errs["password"] = "Password is required"
	}
	if r.Password != "" {
		if ok, msgs := validation.ValidatePassword(r.Password); !ok {
			errs["password"] = msgs[0]
		}
	}
	return errs
}

// ListManagers handles GET /management/universities/:id/managers
func (h *UniversityHandler) ListManagers(c *fiber.Ctx) error {
	id := c.Params("id")

	var university model.University
	if err := h.db.First(&university, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to fetch university")
	}

	var managers []model.UniversityManager
	if err := h.db.Where("university_id = ?", university.ID).Order("id").Find(&managers).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch managers")
	}

	return response.List(c, "managers", managers, len(managers))
}

// CreateManager handles POST /management/universities/:id/managers. The
// manager row and its university_staff user are created in one
// transaction.
func (h *UniversityHandler) CreateManager(c *fiber.Ctx) error {
	id := c.Params("id")

	var university model.University
	if err := h.db.First(&university, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to fetch university")
	}

	var req ManagerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator, true); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	var existing model.UniversityManager
	if err := h.db.Where("manager_id = ?", req.ManagerID).First(&existing).Error; err == nil {
		return response.ValidationError(c, map[string]string{
			"manager_id": "Manager with this manager_id already exists",
		})
	}

	manager := model.UniversityManager{
		UniversityID: university.ID,
		NameUz:       validation.SanitizeString(req.NameUz),
		NameKo:       validation.SanitizeString(req.NameKo),
		ManagerID:    req.ManagerID,
		PhoneNumber:  req.PhoneNumber,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := h.accounts.ProvisionUniversityManagerUser(tx, &manager, req.Password); err != nil {
			return err
		}
		return tx.Create(&manager).Error
	})
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return response.ValidationError(c, map[string]string{
				"manager_id": "Manager with this manager_id already exists",
			})
		}
		return response.InternalServerError(c, "Failed to create manager")
	}

	return response.Created(c, "Manager created successfully", "manager", manager)
}

// UpdateManager handles PUT /management/universities/:id/managers/:managerId
func (h *UniversityHandler) UpdateManager(c *fiber.Ctx) error {
	id := c.Params("id")
	managerID := c.Params("managerId")

	var manager model.UniversityManager
	if err := h.db.Where("university_id = ?", id).First(&manager, managerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Manager not found")
		}
		return response.InternalServerError(c, "Failed to fetch manager")
	}

	var req ManagerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator, false); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	if req.ManagerID != manager.ManagerID {
		return response.ValidationError(c, map[string]string{
			"manager_id": "ManagerID cannot be changed",
		})
	}

	manager.NameUz = validation.SanitizeString(req.NameUz)
	manager.NameKo = validation.SanitizeString(req.NameKo)
	manager.PhoneNumber = req.PhoneNumber

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if req.Password != "" {
			hash, err := h.accounts.UpdatePassword(tx, manager.UserID, req.Password)
			if err != nil {
				return err
			}
			manager.PasswordHash = hash
		}
		return tx.Save(&manager).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to update manager")
	}

	return response.Updated(c, "Manager updated successfully", "manager", manager)
}

// DeleteManager handles DELETE /management/universities/:id/managers/:managerId.
// The paired user is removed in the same transaction.
func (h *UniversityHandler) DeleteManager(c *fiber.Ctx) error {
	id := c.Params("id")
	managerID := c.Params("managerId")

	var manager model.UniversityManager
	if err := h.db.Where("university_id = ?", id).First(&manager, managerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Manager not found")
		}
		return response.InternalServerError(c, "Failed to fetch manager")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&manager).Error; err != nil {
			return err
		}
		return h.accounts.DeleteUser(tx, manager.UserID)
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to delete manager")
	}

	return response.Message(c, "Manager deleted successfully")
}
