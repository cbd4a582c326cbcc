package student

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/services/storage"
	"github.com/upsight-uz/portal-api/utils/auth"
	"github.com/upsight-uz/portal-api/utils/response"
	"github.com/upsight-uz/portal-api/utils/upload"
	"github.com/upsight-uz/portal-api/utils/validation"
)

// StudentHandler handles student records and their attached documents.
type StudentHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	store     storage.Store
}

// NewStudentHandler creates a new student handler.
func NewStudentHandler(db *gorm.DB, store storage.Store) *StudentHandler {
	return &StudentHandler{
		db:        db,
		validator: validation.NewValidator(),
		store:     store,
	}
}

// StudentRequest is the write body for students. Password is required
// on create only.
type StudentRequest struct {
	NameKo    string     `json:"name_ko"`
	NameUz    string     `json:"name_uz"`
	BirthDate model.Date `json:"birth_date"`
	Gender    string     `json:"gender" validate:"required,oneof=M F"`
	Telephone string     `json:"telephone"`
	Address   string     `json:"address"`
	Email     string     `json:"email" validate:"required,email"`

	HighSchool     string `json:"high_school"`
	College        string `json:"college"`
	University     string `json:"university"`
	Master         string `json:"master"`
	OtherEducation string `json:"other_education"`

	GuardianNameKo       string `json:"guardian_name_ko"`
	GuardianNameUz       string `json:"guardian_name_uz"`
	GuardianTelephone    string `json:"guardian_telephone"`
	GuardianRelationship string `json:"guardian_relationship" validate:"omitempty,oneof=F M"`

	StudentID string `json:"student_id" validate:"required"`
	Password  string `json:"password"`
}

func (r *StudentRequest) validate(v *validation.Validator, requirePassword bool) map[string]string {
	errs := v.Check(r)
	validation.RequireBilingual(errs, "name", r.NameUz, r.NameKo)
	validation.RequireBilingual(errs, "guardian_name", r.GuardianNameUz, r.GuardianNameKo)
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

func (r *StudentRequest) apply(s *model.Student) {
	s.NameKo = validation.SanitizeString(r.NameKo)
	s.NameUz = validation.SanitizeString(r.NameUz)
	s.BirthDate = r.BirthDate
	s.Gender = r.Gender
	s.Telephone = r.Telephone
	s.Address = validation.SanitizeString(r.Address)
	s.Email = r.Email
	s.HighSchool = validation.SanitizeString(r.HighSchool)
	s.College = validation.SanitizeString(r.College)
	s.University = validation.SanitizeString(r.University)
	s.Master = validation.SanitizeString(r.Master)
	s.OtherEducation = validation.SanitizeString(r.OtherEducation)
	s.GuardianNameKo = validation.SanitizeString(r.GuardianNameKo)
	s.GuardianNameUz = validation.SanitizeString(r.GuardianNameUz)
	s.GuardianTelephone = r.GuardianTelephone
	s.GuardianRelationship = r.GuardianRelationship
}

// ListStudents handles GET /management/students
func (h *StudentHandler) ListStudents(c *fiber.Ctx) error {
	query := h.db.Model(&model.Student{})

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name_ko ILIKE ? OR name_uz ILIKE ? OR student_id ILIKE ?", like, like, like)
	}

	var students []model.Student
	if err := query.Order("id").Find(&students).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch students")
	}

	return response.List(c, "students", students, len(students))
}

// GetStudent handles GET /management/students/:id. The detail embeds
// attached documents.
func (h *StudentHandler) GetStudent(c *fiber.Ctx) error {
	id := c.Params("id")

	var student model.Student
	if err := h.db.Preload("AttachedDocuments").First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, "Failed to fetch student")
	}

	return response.Detail(c, student)
}

// CreateStudent handles POST /management/students
func (h *StudentHandler) CreateStudent(c *fiber.Ctx) error {
	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator, true); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	var existing model.Student
	if err := h.db.Where("student_id = ?", req.StudentID).First(&existing).Error; err == nil {
		return response.ValidationError(c, map[string]string{
			"student_id": "Student with this student_id already exists",
		})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return response.InternalServerError(c, "Failed to create student")
	}

	student := model.Student{
		StudentID:    req.StudentID,
		PasswordHash: hash,
	}
	req.apply(&student)

	if err := h.db.Create(&student).Error; err != nil {
		return response.InternalServerError(c, "Failed to create student")
	}

	return response.Created(c, "Student created successfully", "student", student)
}

// UpdateStudent handles PUT /management/students/:id. The student_id is
// immutable after creation.
func (h *StudentHandler) UpdateStudent(c *fiber.Ctx) error {
	id := c.Params("id")

	var student model.Student
	if err := h.db.First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, "Failed to fetch student")
	}

	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator, false); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	if req.StudentID != student.StudentID {
		return response.ValidationError(c, map[string]string{
			"student_id": "StudentID cannot be changed",
		})
	}

	req.apply(&student)

	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return response.InternalServerError(c, "Failed to update student")
		}
		student.PasswordHash = hash
	}

	if err := h.db.Save(&student).Error; err != nil {
		return response.InternalServerError(c, "Failed to update student")
	}

	return response.Updated(c, "Student updated successfully", "student", student)
}

// DeleteStudent handles DELETE /management/students/:id. Registrations,
// payments and documents go with the row.
func (h *StudentHandler) DeleteStudent(c *fiber.Ctx) error {
	id := c.Params("id")

	var student model.Student
	if err := h.db.First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, "Failed to fetch student")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&model.AttachedDocument{},
			&model.EnteranceStudentRegistration{},
			&model.EnterancePayment{},
			&model.ClassStudentRegistration{},
			&model.ClassPayment{},
		} {
			if err := tx.Where("student_id = ?", student.ID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&student).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to delete student")
	}

	return response.Message(c, "Student deleted successfully")
}

// UploadPicture handles POST /management/students/:id/picture
// (multipart field "picture").
func (h *StudentHandler) UploadPicture(c *fiber.Ctx) error {
	id := c.Params("id")

	var student model.Student
	if err := h.db.First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, "Failed to fetch student")
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

	key := storage.ObjectKey(storage.PrefixStudentImages, file.Filename)
	url, err := h.store.Upload(c.Context(), key, f, upload.ContentType(file.Filename))
	if err != nil {
		return response.InternalServerError(c, "Failed to store picture")
	}

	student.Picture = url
	if err := h.db.Save(&student).Error; err != nil {
		return response.InternalServerError(c, "Failed to update student")
	}

	return response.Updated(c, "Picture uploaded successfully", "student", student)
}
