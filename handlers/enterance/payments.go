package enterance

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/services"
	"github.com/upsight-uz/portal-api/utils/response"
	"github.com/upsight-uz/portal-api/utils/validation"
)

// PaymentRequest is the write body for admission payments.
type PaymentRequest struct {
	Student uint       `json:"student" validate:"required"`
	Date    model.Date `json:"date" validate:"required"`
	Amount  float64    `json:"amount" validate:"required,gt=0"`
}

func (r *PaymentRequest) validate(v *validation.Validator) map[string]string {
	return v.Check(r)
}

// paymentItem is the wire shape: the row plus student identity and the
// round label.
type paymentItem struct {
	model.EnterancePayment
	StudentName   string `json:"student_name"`
	StudentIDStr  string `json:"student_id"`
	EnteranceInfo string `json:"enterance_info"`
}

func newPaymentItem(p model.EnterancePayment) paymentItem {
	return paymentItem{
		EnterancePayment: p,
		StudentName:      p.Student.Name(),
		StudentIDStr:     p.Student.StudentID,
		EnteranceInfo:    p.Enterance.Info(),
	}
}

// ListPayments handles GET /management/enterances/:id/payments
func (h *EnteranceHandler) ListPayments(c *fiber.Ctx) error {
	id := c.Params("id")

	var enterance model.Enterance
	if err := h.db.First(&enterance, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Enterance not found")
		}
		return response.InternalServerError(c, "Failed to fetch enterance")
	}

	var payments []model.EnterancePayment
	if err := h.db.Preload("Student").Where("enterance_id = ?", enterance.ID).Order("date DESC, id DESC").Find(&payments).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch payments")
	}

	items := make([]paymentItem, 0, len(payments))
	amounts := make([]float64, 0, len(payments))
	for _, p := range payments {
		p.Enterance = enterance
		items = append(items, newPaymentItem(p))
		amounts = append(amounts, p.Amount)
	}

	return response.ListWith(c, "payments", items, len(items), fiber.Map{
		"total_amount": services.SumAmounts(amounts),
	})
}

// CreatePayment handles POST /management/enterances/:id/payments. The
// student must hold a registration in the round.
func (h *EnteranceHandler) CreatePayment(c *fiber.Ctx) error {
	id := c.Params("id")

	var enterance model.Enterance
	if err := h.db.First(&enterance, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Enterance not found")
		}
		return response.InternalServerError(c, "Failed to fetch enterance")
	}

	var req PaymentRequest
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

	var registered int64
	h.db.Model(&model.EnteranceStudentRegistration{}).
		Where("enterance_id = ? AND student_id = ?", enterance.ID, student.ID).
		Count(&registered)
	if registered == 0 {
		return response.ValidationError(c, map[string]string{
			"student": "Student is not registered in this enterance",
		})
	}

	payment := model.EnterancePayment{
		Date:        req.Date,
		Amount:      req.Amount,
		StudentID:   student.ID,
		EnteranceID: enterance.ID,
	}
	payment.Student = student
	payment.Enterance = enterance

	if err := h.db.Create(&payment).Error; err != nil {
		return response.InternalServerError(c, "Failed to create payment")
	}

	return response.Created(c, "Payment created successfully", "payment", newPaymentItem(payment))
}

// UpdatePayment handles PUT /management/enterances/:id/payments/:paymentId
func (h *EnteranceHandler) UpdatePayment(c *fiber.Ctx) error {
	id := c.Params("id")
	paymentID := c.Params("paymentId")

	var payment model.EnterancePayment
	if err := h.db.Preload("Student").Preload("Enterance").Where("enterance_id = ?", id).First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Payment not found")
		}
		return response.InternalServerError(c, "Failed to fetch payment")
	}

	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	errs := make(map[string]string)
	if req.Date.IsZero() {
		errs["date"] = "Date is required"
	}
	if req.Amount <= 0 {
		errs["amount"] = "Amount must be positive"
	}
	if len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	payment.Date = req.Date
	payment.Amount = req.Amount

	if err := h.db.Save(&payment).Error; err != nil {
		return response.InternalServerError(c, "Failed to update payment")
	}

	return response.Updated(c, "Payment updated successfully", "payment", newPaymentItem(payment))
}

// DeletePayment handles DELETE /management/enterances/:id/payments/:paymentId
func (h *EnteranceHandler) DeletePayment(c *fiber.Ctx) error {
	id := c.Params("id")
	paymentID := c.Params("paymentId")

	var payment model.EnterancePayment
	if err := h.db.Where("enterance_id = ?", id).First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Payment not found")
		}
		return response.InternalServerError(c, "Failed to fetch payment")
	}

	if err := h.db.Delete(&payment).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete payment")
	}

	return response.Message(c, "Payment deleted successfully")
}
