package finance

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/services"
	"github.com/upsight-uz/portal-api/utils/response"
)

// FinanceHandler serves the merged payment feed and the two underlying
// ledgers. Read-only: payments are written through their entrance and
// class endpoints.
type FinanceHandler struct {
	db      *gorm.DB
	finance *services.FinanceService
}

// NewFinanceHandler creates a new finance handler.
func NewFinanceHandler(db *gorm.DB) *FinanceHandler {
	return &FinanceHandler{
		db:      db,
		finance: services.NewFinanceService(db),
	}
}

// ListPayments handles GET /management/finance/payments. Entrance and
// class payments are merged into one feed, newest first, with
// cent-exact totals per ledger.
func (h *FinanceHandler) ListPayments(c *fiber.Ctx) error {
	records, totals, err := h.finance.ListPayments(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch payments")
	}

	return response.ListWith(c, "payments", records, len(records), fiber.Map{
		"total_amount":            totals.TotalAmount,
		"entrance_payments_total": totals.EntrancePaymentsTotal,
		"class_payments_total":    totals.ClassPaymentsTotal,
		"entrance_payments_count": totals.EntrancePaymentsCount,
		"class_payments_count":    totals.ClassPaymentsCount,
	})
}

// ListEntrancePayments handles GET /management/finance/entrance-payments
func (h *FinanceHandler) ListEntrancePayments(c *fiber.Ctx) error {
	var payments []model.EnterancePayment
	err := h.db.
		Preload("Student").
		Preload("Enterance").
		Preload("Enterance.University").
		Order("date DESC, id DESC").
		Find(&payments).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch entrance payments")
	}

	amounts := make([]float64, 0, len(payments))
	for i := range payments {
		amounts = append(amounts, payments[i].Amount)
	}

	return response.ListWith(c, "payments", payments, len(payments), fiber.Map{
		"total_amount": services.SumAmounts(amounts),
	})
}

// GetEntrancePayment handles GET /management/finance/entrance-payments/:id
func (h *FinanceHandler) GetEntrancePayment(c *fiber.Ctx) error {
	var payment model.EnterancePayment
	err := h.db.
		Preload("Student").
		Preload("Enterance").
		Preload("Enterance.University").
		First(&payment, c.Params("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Payment not found")
		}
		return response.InternalServerError(c, "Failed to fetch payment")
	}

	return response.Detail(c, payment)
}

// ListClassPayments handles GET /management/finance/class-payments
func (h *FinanceHandler) ListClassPayments(c *fiber.Ctx) error {
	var payments []model.ClassPayment
	err := h.db.
		Preload("Student").
		Preload("Class").
		Order("date DESC, id DESC").
		Find(&payments).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch class payments")
	}

	amounts := make([]float64, 0, len(payments))
	for i := range payments {
		amounts = append(amounts, payments[i].Amount)
	}

	return response.ListWith(c, "payments", payments, len(payments), fiber.Map{
		"total_amount": services.SumAmounts(amounts),
	})
}

// GetClassPayment handles GET /management/finance/class-payments/:id
func (h *FinanceHandler) GetClassPayment(c *fiber.Ctx) error {
	var payment model.ClassPayment
	err := h.db.
		Preload("Student").
		Preload("Class").
		First(&payment, c.Params("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Payment not found")
		}
		return response.InternalServerError(c, "Failed to fetch payment")
	}

	return response.Detail(c, payment)
}
