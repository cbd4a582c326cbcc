package university

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

// UniversityHandler handles partner-university records and their
// scoped-staff managers.
type UniversityHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	store     storage.Store
	accounts  *services.AccountService
}

// NewUniversityHandler creates a new university handler.
func NewUniversityHandler(db *gorm.DB, store storage.Store) *UniversityHandler {
	return &UniversityHandler{
		db:        db,
		validator: validation.NewValidator(),
		store:     store,
		accounts:  services.NewAccountService(db),
	}
}

// UniversityRequest is the write body for universities. Bilingual pairs
// need at least one side; enums are checked against the display sets.
type UniversityRequest struct {
	NameKo           string     `json:"name_ko"`
	NameUz           string     `json:"name_uz"`
	Grade            string     `json:"grade" validate:"omitempty,oneof=best excellent average low"`
	Years            string     `json:"years" validate:"omitempty,oneof=2 4"`
	RepresentativeUz string     `json:"representative_uz"`
	RepresentativeKo string     `json:"representative_ko"`
	PositionUz       string     `json:"position_uz"`
	PositionKo       string     `json:"position_ko"`
	Phone            string     `json:"phone"`
	Telephone        string     `json:"telephone"`
	Email            string     `json:"email" validate:"required,email"`
	Address          string     `json:"address"`
	Contract         string     `json:"contract" validate:"omitempty,oneof=yes no"`
	AgreementDate    model.Date `json:"agreement_date"`
}

func (r *UniversityRequest) validate(v *validation.Validator) map[string]string {
	errs := v.Check(r)
	validation.RequireBilingual(errs, "name", r.NameUz, r.NameKo)
	return errs
}

func (r *UniversityRequest) apply(u *model.University) {
	u.NameKo = validation.SanitizeString(r.NameKo)
	u.NameUz = validation.SanitizeString(r.NameUz)
	u.Grade = r.Grade
	u.Years = r.Years
	u.RepresentativeUz = validation.SanitizeString(r.RepresentativeUz)
	u.RepresentativeKo = validation.SanitizeString(r.RepresentativeKo)
	u.PositionUz = validation.SanitizeString(r.PositionUz)
	u.PositionKo = validation.SanitizeString(r.PositionKo)
	u.Phone = r.Phone
	u.Telephone = r.Telephone
	u.Email = r.Email
	u.Address = validation.SanitizeString(r.Address)
	u.Contract = r.Contract
	u.AgreementDate = r.AgreementDate
}

// ListUniversities handles GET /management/universities
func (h *UniversityHandler) ListUniversities(c *fiber.Ctx) error {
	var universities []model.University
	if err := h.db.Order("id").Find(&universities).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch universities")
	}
	return response.List(c, "universities", universities, len(universities))
}

// GetUniversity handles GET /management/universities/:id. The detail
// embeds the university's managers.
func (h *UniversityHandler) GetUniversity(c *fiber.Ctx) error {
	id := c.Params("id")

	var university model.University
	if err := h.db.Preload("Managers").First(&university, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to fetch university")
	}

	return response.Detail(c, university)
}

// CreateUniversity handles POST /management/universities
func (h *UniversityHandler) CreateUniversity(c *fiber.Ctx) error {
	var req UniversityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	var existing model.University
	if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return response.ValidationError(c, map[string]string{
			"email": "University with this email already exists",
		})
	}

	var university model.University
	req.apply(&university)

	if err := h.db.Create(&university).Error; err != nil {
		return response.InternalServerError(c, "Failed to create university")
	}

	return response.Created(c, "University created successfully", "university", university)
}

// UpdateUniversity handles PUT /management/universities/:id
func (h *UniversityHandler) UpdateUniversity(c *fiber.Ctx) error {
	id := c.Params("id")

	var university model.University
	if err := h.db.First(&university, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to fetch university")
	}

	var req UniversityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	var existing model.University
	if err := h.db.Where("email = ? AND id != ?", req.Email, university.ID).First(&existing).Error; err == nil {
		return response.ValidationError(c, map[string]string{
			"email": "University with this email already exists",
		})
	}

	req.apply(&university)

	if err := h.db.Save(&university).Error; err != nil {
		return response.InternalServerError(c, "Failed to update university")
	}

	return response.Updated(c, "University updated successfully", "university", university)
}

// DeleteUniversity handles DELETE /management/universities/:id. The
// cascade removes managers (with their users), entrances and the
// university's board content.
func (h *UniversityHandler) DeleteUniversity(c *fiber.Ctx) error {
	id := c.Params("id")

	var university model.University
	if err := h.db.Preload("Managers").First(&university, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to fetch university")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var enterances []model.Enterance
		if err := tx.Where("university_id = ?", university.ID).Find(&enterances).Error; err != nil {
			return err
		}
		for i := range enterances {
			if err := deleteEnteranceChildren(tx, enterances[i].ID); err != nil {
				return err
			}
		}
		if err := tx.Where("university_id = ?", university.ID).Delete(&model.Enterance{}).Error; err != nil {
			return err
		}

		// Board content owned by this university
		for _, m := range []interface{}{&model.News{}, &model.Notice{}, &model.Translation{}} {
			if err := tx.Where("university_id = ?", university.ID).Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("information_id IN (SELECT id FROM information WHERE university_id = ?)", university.ID).
			Delete(&model.InformationDocument{}).Error; err != nil {
			return err
		}
		if err := tx.Where("university_id = ?", university.ID).Delete(&model.Information{}).Error; err != nil {
			return err
		}

		// Managers and their login principals
		for i := range university.Managers {
			if err := h.accounts.DeleteUser(tx, university.Managers[i].UserID); err != nil {
				return err
			}
		}
		if err := tx.Where("university_id = ?", university.ID).Delete(&model.UniversityManager{}).Error; err != nil {
			return err
		}

		return tx.Delete(&university).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to delete university")
	}

	return response.Message(c, "University deleted successfully")
}

// UploadLogo handles POST /management/universities/:id/logo (multipart
// field "logo").
func (h *UniversityHandler) UploadLogo(c *fiber.Ctx) error {
	id := c.Params("id")

	var university model.University
	if err := h.db.First(&university, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to fetch university")
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

	university.Logo = url
	if err := h.db.Save(&university).Error; err != nil {
		return response.InternalServerError(c, "Failed to update university")
	}

	return response.Updated(c, "Logo uploaded successfully", "university", university)
}

// deleteEnteranceChildren removes the owned rows of one entrance cycle.
// Shared with the entrance delete endpoint's cascade.
func deleteEnteranceChildren(tx *gorm.DB, enteranceID uint) error {
	for _, m := range []interface{}{
		&model.EnteranceStudentRegistration{},
		&model.EnterancePayment{},
		&model.EnteranceDocument{},
	} {
		if err := tx.Where("enterance_id = ?", enteranceID).Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}
