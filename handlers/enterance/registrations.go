package enterance

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/utils/response"
	"github.com/upsight-uz/portal-api/utils/validation"
)

// RegistrationRequest is the write body for admission registrations.
type RegistrationRequest struct {
	Student   uint       `json:"student" validate:"required"`
	Date      model.Date `json:"date" validate:"required"`
	Contract  string     `json:"contract"`
	Bonus     string     `json:"bonus"`
	State     int        `json:"state" validate:"required,oneof=1 2 3"`
	Recommend string     `json:"recommend"`
}

func (r *RegistrationRequest) validate(v *validation.Validator) map[string]string {
	return v.Check(r)
}

// registrationItem is the wire shape: the row plus student identity and
// the state label.
type registrationItem struct {
	model.EnteranceStudentRegistration
	StudentName  string `json:"student_name"`
	StudentIDStr string `json:"student_id"`
	StateDisplay string `json:"state_display"`
}

func newRegistrationItem(r model.EnteranceStudentRegistration) registrationItem {
	return registrationItem{
		EnteranceStudentRegistration: r,
		StudentName:                  r.Student.Name(),
		StudentIDStr:                 r.Student.StudentID,
		StateDisplay:                 r.StateDisplay(),
	}
}

// ListRegistrations handles GET /management/enterances/:id/registrations
func (h *EnteranceHandler) ListRegistrations(c *fiber.Ctx) error {
	id := c.Params("id")

	var enterance model.Enterance
	if err := h.db.First(&enterance, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Enterance not found")
		}
		return response.InternalServerError(c, "Failed to fetch enterance")
	}

	var registrations []model.EnteranceStudentRegistration
	if err := h.db.Preload("Student").Where("enterance_id = ?", enterance.ID).Order("id").Find(&registrations).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch registrations")
	}

	items := make([]registrationItem, 0, len(registrations))
	for _, r := range registrations {
		items = append(items, newRegistrationItem(r))
	}

	return response.List(c, "registrations", items, len(items))
}

// CreateRegistration handles POST /management/enterances/:id/registrations.
// A student registers for an admission round at most once.
func (h *EnteranceHandler) CreateRegistration(c *fiber.Ctx) error {
	id := c.Params("id")

	var enterance model.Enterance
	if err := h.db.First(&enterance, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Enterance not found")
		}
		return response.InternalServerError(c, "Failed to fetch enterance")
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

	var existing model.EnteranceStudentRegistration
	if err := h.db.Where("enterance_id = ? AND student_id = ?", enterance.ID, student.ID).First(&existing).Error; err == nil {
		return response.ValidationError(c, map[string]string{
			"student": "Student is already registered in this enterance",
		})
	}

	registration := model.EnteranceStudentRegistration{
		EnteranceID: enterance.ID,
		StudentID:   student.ID,
		Date:        req.Date,
		Contract:    req.Contract,
		Bonus:       req.Bonus,
		State:       req.State,
		Recommend:   req.Recommend,
	}
	registration.Student = student

	if err := h.db.Create(&registration).Error; err != nil {
		return response.InternalServerError(c, "Failed to create registration")
	}

	return response.Created(c, "Registration created successfully", "registration", newRegistrationItem(registration))
}

// UpdateRegistration handles PUT /management/enterances/:id/registrations/:registrationId.
// The (enterance, student) pair is fixed; the rest is editable.
func (h *EnteranceHandler) UpdateRegistration(c *fiber.Ctx) error {
	id := c.Params("id")
	registrationID := c.Params("registrationId")

	var registration model.EnteranceStudentRegistration
	if err := h.db.Preload("Student").Where("enterance_id = ?", id).First(&registration, registrationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Registration not found")
		}
		return response.InternalServerError(c, "Failed to fetch registration")
	}

	var req RegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	errs := make(map[string]string)
	if req.Date.IsZero() {
		errs["date"] = "Date is required"
	}
	if req.State < 1 || req.State > 3 {
		errs["state"] = "State must be one of: 1, 2, 3"
	}
	if len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	registration.Date = req.Date
	registration.Contract = req.Contract
	registration.Bonus = req.Bonus
	registration.State = req.State
	registration.Recommend = req.Recommend

	if err := h.db.Save(&registration).Error; err != nil {
		return response.InternalServerError(c, "Failed to update registration")
	}

	return response.Updated(c, "Registration updated successfully", "registration", newRegistrationItem(registration))
}

// DeleteRegistration handles DELETE /management/enterances/:id/registrations/:registrationId
func (h *EnteranceHandler) DeleteRegistration(c *fiber.Ctx) error {
	id := c.Params("id")
	registrationID := c.Params("registrationId")

	var registration model.EnteranceStudentRegistration
	if err := h.db.Where("enterance_id = ?", id).First(&registration, registrationID).Error; err != nil {
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
