package organ

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/services"
	"github.com/upsight-uz/portal-api/services/storage"
	"github.com/upsight-uz/portal-api/utils/response"
	"github.com/upsight-uz/portal-api/utils/upload"
	"github.com/upsight-uz/portal-api/utils/validation"
)

// OrganHandler handles partner-organisation records and their managers.
type OrganHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	store     storage.Store
	accounts  *services.AccountService
}

// NewOrganHandler creates a new organ handler.
func NewOrganHandler(db *gorm.DB, store storage.Store) *OrganHandler {
	return &OrganHandler{
		db:        db,
		validator: validation.NewValidator(),
		store:     store,
		accounts:  services.NewAccountService(db),
	}
}

// OrganRequest is the write body for organs.
type OrganRequest struct {
	NameUz           string     `json:"name_uz"`
	NameKo           string     `json:"name_ko"`
	Type             string     `json:"type" validate:"required,oneof=language aboard industry public hospital other"`
	Nationality      string     `json:"nationality" validate:"required,oneof=uzbek korean other"`
	RepresentativeUz string     `json:"representative_uz"`
	RepresentativeKo string     `json:"representative_ko"`
	PositionUz       string     `json:"position_uz"`
	PositionKo       string     `json:"position_ko"`
	Phone            string     `json:"phone"`
	Telephone        string     `json:"telephone"`
	Address          string     `json:"address"`
	Email            string     `json:"email" validate:"required,email"`
	ContractDate     model.Date `json:"contract_date"`
	AgreementDate    model.Date `json:"agreement_date"`
}

func (r *OrganRequest) validate(v *validation.Validator) map[string]string {
	errs := v.Check(r)
	validation.RequireBilingual(errs, "name", r.NameUz, r.NameKo)
	return errs
}

func (r *OrganRequest) apply(o *model.Organ) {
	o.NameUz = validation.SanitizeString(r.NameUz)
	o.NameKo = validation.SanitizeString(r.NameKo)
	o.Type = r.Type
	o.Nationality = r.Nationality
	o.RepresentativeUz = validation.SanitizeString(r.RepresentativeUz)
	o.RepresentativeKo = validation.SanitizeString(r.RepresentativeKo)
	o.PositionUz = validation.SanitizeString(r.PositionUz)
	o.PositionKo = validation.SanitizeString(r.PositionKo)
	o.Phone = r.Phone
	o.Telephone = r.Telephone
	o.Address = validation.SanitizeString(r.Address)
	o.Email = r.Email
	o.ContractDate = r.ContractDate
	o.AgreementDate = r.AgreementDate
}

// ListOrgans handles GET /management/organs
func (h *OrganHandler) ListOrgans(c *fiber.Ctx) error {
	query := h.db.Model(&model.Organ{})

	if organType := c.Query("type"); organType != "" {
		query = query.Where("type = ?", organType)
	}
	if nationality := c.Query("nationality"); nationality != "" {
		query = query.Where("nationality = ?", nationality)
	}

	var organs []model.Organ
	if err := query.Order("id").Find(&organs).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch organs")
	}

	return response.List(c, "organs", organs, len(organs))
}

// GetOrgan handles GET /management/organs/:id. The detail embeds the
// organ's managers.
func (h *OrganHandler) GetOrgan(c *fiber.Ctx) error {
	id := c.Params("id")

	var organ model.Organ
	if err := h.db.Preload("Managers").First(&organ, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Organ not found")
		}
		return response.InternalServerError(c, "Failed to fetch organ")
	}

	return response.Detail(c, organ)
}

// CreateOrgan handles POST /management/organs
func (h *OrganHandler) CreateOrgan(c *fiber.Ctx) error {
	var req OrganRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	var existing model.Organ
	if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return response.ValidationError(c, map[string]string{
			"email": "Organ with this email already exists",
		})
	}

	var organ model.Organ
	req.apply(&organ)

	if err := h.db.Create(&organ).Error; err != nil {
		return response.InternalServerError(c, "Failed to create organ")
	}

	return response.Created(c, "Organ created successfully", "organ", organ)
}

// UpdateOrgan handles PUT /management/organs/:id
func (h *OrganHandler) UpdateOrgan(c *fiber.Ctx) error {
	id := c.Params("id")

	var organ model.Organ
	if err := h.db.First(&organ, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Organ not found")
		}
		return response.InternalServerError(c, "Failed to fetch organ")
	}

	var req OrganRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	var existing model.Organ
	if err := h.db.Where("email = ? AND id != ?", req.Email, organ.ID).First(&existing).Error; err == nil {
		return response.ValidationError(c, map[string]string{
			"email": "Organ with this email already exists",
		})
	}

	req.apply(&organ)

	if err := h.db.Save(&organ).Error; err != nil {
		return response.InternalServerError(c, "Failed to update organ")
	}

	return response.Updated(c, "Organ updated successfully", "organ", organ)
}

// DeleteOrgan handles DELETE /management/organs/:id. Managers and their
// users go with the row.
func (h *OrganHandler) DeleteOrgan(c *fiber.Ctx) error {
	id := c.Params("id")

	var organ model.Organ
	if err := h.db.Preload("Managers").First(&organ, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Organ not found")
		}
		return response.InternalServerError(c, "Failed to fetch organ")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		for i := range organ.Managers {
			if err := h.accounts.DeleteUser(tx, organ.Managers[i].UserID); err != nil {
				return err
			}
		}
		if err := tx.Where("organ_id = ?", organ.ID).Delete(&model.OrganManager{}).Error; err != nil {
			return err
		}
		return tx.Delete(&organ).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to delete organ")
	}

	return response.Message(c, "Organ deleted successfully")
}

// UploadLogo handles POST /management/organs/:id/logo (multipart field
// "logo").
func (h *OrganHandler) UploadLogo(c *fiber.Ctx) error {
	id := c.Params("id")

	var organ model.Organ
	if err := h.db.First(&organ, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Organ not found")
		}
		return response.InternalServerError(c, "Failed to fetch organ")
	}

	file, err := c.FormFile("logo")
	if err != nil {
		return response.BadRequest(c, "Logo file is required")
	}

	if err := upload.ValidateImageFile(file); err != nil {
		if upload.IsValidationError(err) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to read uploaded file")
	}

	f, err := file.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read uploaded file")
	}
	defer f.Close()

	key := storage.ObjectKey(storage.PrefixUniversityLogos, file.Filename)
	url, err := h.store.Upload(c.Context(), key, f, upload.ContentType(file.Filename))
	if err != nil {
		return response.InternalServerError(c, "Failed to store logo")
	}

	organ.Logo = url
	if err := h.db.Save(&organ).Error; err != nil {
		return response.InternalServerError(c, "Failed to update organ")
	}

	return response.Updated(c, "Logo uploaded successfully", "organ", organ)
}
