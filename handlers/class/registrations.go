package class

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/utils/response"
	"github.com/upsight-uz/portal-api/utils/validation"
)

// RegistrationRequest is the write body for class enrollments. State
// defaults to 1 (Do) when omitted on create.
type RegistrationRequest struct {
	Student uint `json:"student" validate:"required"`
	State   int  `json:"state" validate:"omitempty,oneof=1 2 3"`
}

func (r *RegistrationRequest) validate(v *validation.Validator) map[string]string {
	return v.Check(r)
}

// registrationItem is the wire shape: the row plus student identity and
// the state label.
type registrationItem struct {
	model.ClassStudentRegistration
	StudentName  string `json:"student_name"`
	StudentIDStr string `json:"student_id"`
	StateDisplay string `json:"state_display"`
}

func newRegistrationItem(r model.ClassStudentRegistration) registrationItem {
	return registrationItem{
		ClassStudentRegistration: r,
		StudentName:              r.Student.Name(),
		StudentIDStr:             r.Student.StudentID,
		StateDisplay:             r.StateDisplay(),
	}
}

// ListRegistrations handles GET /management/classes/:id/registrations
func (h *ClassHandler) ListRegistrations(c *fiber.Ctx) error {
	id := c.Params("id")

	var class model.Class
	if err := h.db.First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Class not found")
		}
		return response.InternalServerError(c, "Failed to fetch class")
	}

	var registrations []model.ClassStudentRegistration
	if err := h.db.Preload("Student").Where("class_id = ?", class.ID).Order("id").Find(&registrations).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch registrations")
	}

	items := make([]registrationItem, 0, len(registrations))
	for _, r := range registrations {
		items = append(items, newRegistrationItem(r))
	}

	return response.List(c, "registrations", items, len(items))
}

// CreateRegistration handles POST /management/classes/:id/registrations.
// A student enrolls into a class at most once.
func (h *ClassHandler) CreateRegistration(c *fiber.Ctx) error {
	id := c.Params("id")

	var class model.Class
	if err := h.db.First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Class not found")
		}
		return response.InternalServerError(c, "Failed to fetch class")
	}

	var req RegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	var student model.Student
	if err := h.db.First(&student, req.Student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.ValidationError(c, map[string]string{"student": "Student not found"})
		}
		return response.InternalServerError(c, "Failed to fetch student")
	}

	var existing model.ClassStudentRegistration
	if err := h.db.Where("class_id = ? AND student_id = ?", class.ID, student.ID).First(&existing).Error; err == nil {
		return response.ValidationError(c, map[string]string{
			"student": "Student is already registered in this class",
		})
	}

	registration := model.ClassStudentRegistration{
		StudentID: student.ID,
		ClassID:   class.ID,
		State:     1,
	}
	if req.State != 0 {
		registration.State = req.State
	}
	registration.Student = student

	if err := h.db.Create(&registration).Error; err != nil {
		return response.InternalServerError(c, "Failed to create registration")
	}

	return response.Created(c, "Registration created successfully", "registration", newRegistrationItem(registration))
}

// UpdateRegistration handles PUT /management/classes/:id/registrations/:registrationId.
// Only the state changes; the (student, class) pair is fixed.
func (h *ClassHandler) UpdateRegistration(c *fiber.Ctx) error {
	id := c.Params("id")
	registrationID := c.Params("registrationId")

	var registration model.ClassStudentRegistration
	if err := h.db.Preload("Student").Where("class_id = ?", id).First(&registration, registrationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Registration not found")
		}
		return response.InternalServerError(c, "Failed to fetch registration")
	}

	var req RegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.State < 1 || req.State > 3 {
		return response.ValidationError(c, map[string]string{"state": "State must be one of: 1, 2, 3"})
	}

	registration.State = req.State

	if err := h.db.Save(&registration).Error; err != nil {
		return response.InternalServerError(c, "Failed to update registration")
	}

	return response.Updated(c, "Registration updated successfully", "registration", newRegistrationItem(registration))
}

// DeleteRegistration handles DELETE /management/classes/:id/registrations/:registrationId
func (h *ClassHandler) DeleteRegistration(c *fiber.Ctx) error {
	id := c.Params("id")
	registrationID := c.Params("registrationId")

	var registration model.ClassStudentRegistration
	if err := h.db.Where("class_id = ?", id).First(&registration, registrationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Registration not found")
		}
		return response.InternalServerError(c, "Failed to fetch registration")
	}

	if err := h.db.Delete(&registration).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete registration")
	}

	return response.Message(c, "Registration deleted successfully")
}
