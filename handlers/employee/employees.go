package employee

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

// EmployeeHandler handles head-office staff records. Creating an
// employee provisions an upsight_staff login in the same transaction.
type EmployeeHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	store     storage.Store
	accounts  *services.AccountService
}

// NewEmployeeHandler creates a new employee handler.
func NewEmployeeHandler(db *gorm.DB, store storage.Store) *EmployeeHandler {
	return &EmployeeHandler{
		db:        db,
		validator: validation.NewValidator(),
		store:     store,
		accounts:  services.NewAccountService(db),
	}
}

// EmployeeRequest is the write body for employees. Password is required
// on create only.
type EmployeeRequest struct {
	NameKo    string     `json:"name_ko"`
	NameUz    string     `json:"name_uz"`
	BirthDate model.Date `json:"birth_date"`
	Gender    string     `json:"gender" validate:"required,oneof=M F"`
	StartDate model.Date `json:"start_date"`
	Telephone string     `json:"telephone"`
	Address   string     `json:"address"`
	Email     string     `json:"email" validate:"required,email"`

	College    string `json:"college"`
	University string `json:"university"`
	Graduate   string `json:"graduate"`

	Position string   `json:"position" validate:"required,oneof=Teacher Staff Manager Director Other"`
	Salary   *float64 `json:"salary"`
	Bonus    *float64 `json:"bonus"`
	Status   string   `json:"status" validate:"omitempty,oneof=Work End Rest"`

	EmployeeID string `json:"employee_id" validate:"required"`
	Password   string `json:"password"`
}

func (r *EmployeeRequest) validate(v *validation.Validator, requirePassword bool) map[string]string {
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

func (r *EmployeeRequest) apply(e *model.Employee) {
	e.NameKo = validation.SanitizeString(r.NameKo)
	e.NameUz = validation.SanitizeString(r.NameUz)
	e.BirthDate = r.BirthDate
	e.Gender = r.Gender
	e.StartDate = r.StartDate
	e.Telephone = r.Telephone
	e.Address = validation.SanitizeString(r.Address)
	e.Email = r.Email
	e.College = validation.SanitizeString(r.College)
	e.University = validation.SanitizeString(r.University)
	e.Graduate = validation.SanitizeString(r.Graduate)
	e.Position = r.Position
	e.Salary = r.Salary
	e.Bonus = r.Bonus
	if r.Status != "" {
		e.Status = r.Status
	}
}

// ListEmployees handles GET /management/employees
func (h *EmployeeHandler) ListEmployees(c *fiber.Ctx) error {
	query := h.db.Model(&model.Employee{})

	if position := c.Query("position"); position != "" {
		query = query.Where("position = ?", position)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var employees []model.Employee
	if err := query.Order("id").Find(&employees).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch employees")
	}

	return response.List(c, "employees", employees, len(employees))
}

// GetEmployee handles GET /management/employees/:id. The detail embeds
// attached documents.
func (h *EmployeeHandler) GetEmployee(c *fiber.Ctx) error {
	id := c.Params("id")

	var employee model.Employee
	if err := h.db.Preload("AttachedDocuments").First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to fetch employee")
	}

	return response.Detail(c, employee)
}

// CreateEmployee handles POST /management/employees. The employee row
// and its upsight_staff user are created in one transaction.
func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var req EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator, true); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	var existing model.Employee
	if err := h.db.Where("employee_id = ?", req.EmployeeID).First(&existing).Error; err == nil {
		return response.ValidationError(c, map[string]string{
			"employee_id": "Employee with this employee_id already exists",
		})
	}

	employee := model.Employee{
		EmployeeID: req.EmployeeID,
		Status:     model.StatusWork,
	}
	req.apply(&employee)

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := h.accounts.ProvisionEmployeeUser(tx, &employee, req.Password); err != nil {
			return err
		}
		return tx.Create(&employee).Error
	})
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return response.ValidationError(c, map[string]string{
				"employee_id": "Employee with this employee_id already exists",
			})
		}
		return response.InternalServerError(c, "Failed to create employee")
	}

	return response.Created(c, "Employee created successfully", "employee", employee)
}

// UpdateEmployee handles PUT /management/employees/:id. The employee_id
// is immutable after creation.
func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	id := c.Params("id")

	var employee model.Employee
	if err := h.db.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to fetch employee")
	}

	var req EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator, false); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	if req.EmployeeID != employee.EmployeeID {
		return response.ValidationError(c, map[string]string{
			"employee_id": "EmployeeID cannot be changed",
		})
	}

	req.apply(&employee)

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if req.Password != "" {
			hash, err := h.accounts.UpdatePassword(tx, employee.UserID, req.Password)
			if err != nil {
				return err
			}
			employee.PasswordHash = hash
		}
		return tx.Save(&employee).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to update employee")
	}

	return response.Updated(c, "Employee updated successfully", "employee", employee)
}

// DeleteEmployee handles DELETE /management/employees/:id. Documents
// and the paired user go with the row.
func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	id := c.Params("id")

	var employee model.Employee
	if err := h.db.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to fetch employee")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", employee.ID).Delete(&model.EmployeeDocument{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&employee).Error; err != nil {
			return err
		}
		return h.accounts.DeleteUser(tx, employee.UserID)
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to delete employee")
	}

	return response.Message(c, "Employee deleted successfully")
}

// UploadPicture handles POST /management/employees/:id/picture
// (multipart field "picture").
func (h *EmployeeHandler) UploadPicture(c *fiber.Ctx) error {
	id := c.Params("id")

	var employee model.Employee
	if err := h.db.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to fetch employee")
	}

	file, err := c.FormFile("picture")
	if err != nil {
		return response.BadRequest(c, "Picture file is required")
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

	key := storage.ObjectKey(storage.PrefixEmployeeImages, file.Filename)
	url, err := h.store.Upload(c.Context(), key, f, upload.ContentType(file.Filename))
	if err != nil {
		return response.InternalServerError(c, "Failed to store picture")
	}

	employee.Picture = url
	if err := h.db.Save(&employee).Error; err != nil {
		return response.InternalServerError(c, "Failed to update employee")
	}

	return response.Updated(c, "Picture uploaded successfully", "employee", employee)
}
