package class

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/services"
	"github.com/upsight-uz/portal-api/utils/response"
	"github.com/upsight-uz/portal-api/utils/validation"
)

// PaymentRequest is the write body for tuition payments. Student is
// checked only on create; updates keep the existing payer.
type PaymentRequest struct {
	Student      uint       `json:"student" validate:"required"`
	Date         model.Date `json:"date" validate:"required"`
	Amount       float64    `json:"amount" validate:"required,gt=0"`
	PaymentMonth int        `json:"payment_month" validate:"required,gte=1"`
}

func (r *PaymentRequest) validate(v *validation.Validator) map[string]string {
	return v.Check(r)
}

// updateRequest relaxes the student requirement for updates, where the
// payer is fixed by the existing row.
type updateRequest struct {
	Date         model.Date `json:"date" validate:"required"`
	Amount       float64    `json:"amount" validate:"required,gt=0"`
	PaymentMonth int        `json:"payment_month" validate:"required,gte=1"`
}

// paymentItem is the wire shape: the row plus student identity and the
// month label.
type paymentItem struct {
	model.ClassPayment
	StudentName         string `json:"student_name"`
	StudentIDStr        string `json:"student_id"`
	PaymentMonthDisplay string `json:"payment_month_display"`
}

func newPaymentItem(p model.ClassPayment) paymentItem {
	return paymentItem{
		ClassPayment:        p,
		StudentName:         p.Student.Name(),
		StudentIDStr:        p.Student.StudentID,
		PaymentMonthDisplay: p.PaymentMonthDisplay(),
	}
}

// ListPayments handles GET /management/classes/:id/payments
func (h *ClassHandler) ListPayments(c *fiber.Ctx) error {
	id := c.Params("id")

	var class model.Class
	if err := h.db.First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Class not found")
		}
		return response.InternalServerError(c, "Failed to fetch class")
	}

	var payments []model.ClassPayment
	if err := h.db.Preload("Student").Where("class_id = ?", class.ID).Order("date DESC, id DESC").Find(&payments).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch payments")
	}

	items := make([]paymentItem, 0, len(payments))
	amounts := make([]float64, 0, len(payments))
	for _, p := range payments {
		items = append(items, newPaymentItem(p))
		amounts = append(amounts, p.Amount)
	}

	return response.ListWith(c, "payments", items, len(items), fiber.Map{
		"total_amount": services.SumAmounts(amounts),
	})
}

// CreatePayment handles POST /management/classes/:id/payments. The
// student must hold a registration in the class.
func (h *ClassHandler) CreatePayment(c *fiber.Ctx) error {
	id := c.Params("id")

	var class model.Class
	if err := h.db.First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Class not found")
		}
		return response.InternalServerError(c, "Failed to fetch class")
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
	h.db.Model(&model.ClassStudentRegistration{}).
		Where("class_id = ? AND student_id = ?", class.ID, student.ID).
		Count(&registered)
	if registered == 0 {
		return response.ValidationError(c, map[string]string{
			"student": "Student is not registered in this class",
		})
	}

	payment := model.ClassPayment{
		Date:         req.Date,
		Amount:       req.Amount,
		StudentID:    student.ID,
		ClassID:      class.ID,
		PaymentMonth: req.PaymentMonth,
	}
	payment.Student = student

	if err := h.db.Create(&payment).Error; err != nil {
		return response.InternalServerError(c, "Failed to create payment")
	}

	return response.Created(c, "Payment created successfully", "payment", newPaymentItem(payment))
}

// UpdatePayment handles PUT /management/classes/:id/payments/:paymentId
func (h *ClassHandler) UpdatePayment(c *fiber.Ctx) error {
	id := c.Params("id")
	paymentID := c.Params("paymentId")

	var payment model.ClassPayment
	if err := h.db.Preload("Student").Where("class_id = ?", id).First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Payment not found")
		}
		return response.InternalServerError(c, "Failed to fetch payment")
	}

	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := h.validator.Check(&req); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	payment.Date = req.Date
	payment.Amount = req.Amount
	payment.PaymentMonth = req.PaymentMonth

	if err := h.db.Save(&payment).Error; err != nil {
		return response.InternalServerError(c, "Failed to update payment")
	}

	return response.Updated(c, "Payment updated successfully", "payment", newPaymentItem(payment))
}

// DeletePayment handles DELETE /management/classes/:id/payments/:paymentId
func (h *ClassHandler) DeletePayment(c *fiber.Ctx) error {
	id := c.Params("id")
	paymentID := c.Params("paymentId")

	var payment model.ClassPayment
	if err := h.db.Where("class_id = ?", id).First(&payment, paymentID).Error; err != nil {
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
