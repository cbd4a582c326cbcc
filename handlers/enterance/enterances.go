package enterance

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/services"
	"github.com/upsight-uz/portal-api/services/storage"
	"github.com/upsight-uz/portal-api/utils/response"
	"github.com/upsight-uz/portal-api/utils/validation"
)

// EnteranceHandler handles admission rounds with their registrations,
// payments and documents.
type EnteranceHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	store     storage.Store
}

// NewEnteranceHandler creates a new entrance handler.
func NewEnteranceHandler(db *gorm.DB, store storage.Store) *EnteranceHandler {
	return &EnteranceHandler{
		db:        db,
		validator: validation.NewValidator(),
		store:     store,
	}
}

// EnteranceRequest is the write body for admission rounds. State is
// always whatever the operator sets; it is never derived from dates.
type EnteranceRequest struct {
	University uint       `json:"university" validate:"required"`
	Years      int        `json:"years" validate:"required,oneof=2026 2027 2028 2029 2030"`
	Kind       string     `json:"kind" validate:"required,oneof=language collegue university graduate"`
	Order      string     `json:"order" validate:"required,oneof=1 2 3 4 spring winter"`
	FromDate   model.Date `json:"from_date" validate:"required"`
	ToDate     model.Date `json:"to_date" validate:"required"`
	ContractNo string     `json:"contract_no"`
	State      string     `json:"state" validate:"required,oneof=end now after"`
}

func (r *EnteranceRequest) validate(v *validation.Validator) map[string]string {
	return v.Check(r)
}

func (r *EnteranceRequest) apply(e *model.Enterance) {
	e.UniversityID = r.University
	e.Years = r.Years
	e.Kind = r.Kind
	e.Order = r.Order
	e.FromDate = r.FromDate
	e.ToDate = r.ToDate
	e.ContractNo = r.ContractNo
	e.State = r.State
}

// enteranceItem is the list row shape: the round plus derived labels
// and the owning university's name.
type enteranceItem struct {
	model.Enterance
	Info           string `json:"info"`
	KindDisplay    string `json:"kind_display"`
	OrderDisplay   string `json:"order_display"`
	StateDisplay   string `json:"state_display"`
	UniversityName string `json:"university_name"`
}

func newEnteranceItem(e model.Enterance) enteranceItem {
	return enteranceItem{
		Enterance:      e,
		Info:           e.Info(),
		KindDisplay:    e.KindDisplay(),
		OrderDisplay:   e.OrderDisplay(),
		StateDisplay:   e.StateDisplay(),
		UniversityName: e.University.DisplayName(),
	}
}

// registeredStudent is one student row inside the entrance detail, with
// registration facts and the student's aggregated payment amount.
type registeredStudent struct {
	ID            uint       `json:"id"`
	StudentID     string     `json:"student_id"`
	NameKo        string     `json:"name_ko"`
	NameUz        string     `json:"name_uz"`
	Name          string     `json:"name"`
	Date          model.Date `json:"date"`
	Contract      string     `json:"contract"`
	Bonus         string     `json:"bonus"`
	State         int        `json:"state"`
	StateDisplay  string     `json:"state_display"`
	Recommend     string     `json:"recommend"`
	PaymentAmount float64    `json:"payment_amount"`
}

// ListEnterances handles GET /management/enterances
func (h *EnteranceHandler) ListEnterances(c *fiber.Ctx) error {
	query := h.db.Preload("University").Model(&model.Enterance{})

	if university := c.Query("university"); university != "" {
		query = query.Where("university_id = ?", university)
	}
	if state := c.Query("state"); state != "" {
		query = query.Where("state = ?", state)
	}
	if years := c.Query("years"); years != "" {
		if y, err := strconv.Atoi(years); err == nil {
			query = query.Where("years = ?", y)
		}
	}

	var enterances []model.Enterance
	if err := query.Order("id").Find(&enterances).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch enterances")
	}

	items := make([]enteranceItem, 0, len(enterances))
	for _, e := range enterances {
		items = append(items, newEnteranceItem(e))
	}

	return response.List(c, "enterances", items, len(items))
}

// GetEnterance handles GET /management/enterances/:id. The detail
// embeds registered students, each with their aggregated payment amount
// for this round.
func (h *EnteranceHandler) GetEnterance(c *fiber.Ctx) error {
	id := c.Params("id")

	var enterance model.Enterance
	if err := h.db.Preload("University").First(&enterance, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Enterance not found")
		}
		return response.InternalServerError(c, "Failed to fetch enterance")
	}

	var registrations []model.EnteranceStudentRegistration
	if err := h.db.Preload("Student").Where("enterance_id = ?", enterance.ID).Order("id").Find(&registrations).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch registrations")
	}

	var payments []model.EnterancePayment
	if err := h.db.Where("enterance_id = ?", enterance.ID).Find(&payments).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch payments")
	}

	paidByStudent := make(map[uint][]float64)
	for i := range payments {
		paidByStudent[payments[i].StudentID] = append(paidByStudent[payments[i].StudentID], payments[i].Amount)
	}

	students := make([]registeredStudent, 0, len(registrations))
	for _, r := range registrations {
		students = append(students, registeredStudent{
			ID:            r.StudentID,
			StudentID:     r.Student.StudentID,
			NameKo:        r.Student.NameKo,
			NameUz:        r.Student.NameUz,
			Name:          r.Student.Name(),
			Date:          r.Date,
			Contract:      r.Contract,
			Bonus:         r.Bonus,
			State:         r.State,
			StateDisplay:  r.StateDisplay(),
			Recommend:     r.Recommend,
			PaymentAmount: services.SumAmounts(paidByStudent[r.StudentID]),
		})
	}

	var documents []model.EnteranceDocument
	if err := h.db.Where("enterance_id = ?", enterance.ID).Order("id").Find(&documents).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch documents")
	}

	body := fiber.Map{
		"enterance": newEnteranceItem(enterance),
		"students":  students,
		"documents": documents,
	}

	return c.Status(fiber.StatusOK).JSON(body)
}

// CreateEnterance handles POST /management/enterances
func (h *EnteranceHandler) CreateEnterance(c *fiber.Ctx) error {
	var req EnteranceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	var university model.University
	if err := h.db.First(&university, req.University).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.ValidationError(c, map[string]string{"university": "University not found"})
		}
		return response.InternalServerError(c, "Failed to fetch university")
	}

	var enterance model.Enterance
	req.apply(&enterance)
	enterance.University = university

	if err := h.db.Create(&enterance).Error; err != nil {
		return response.InternalServerError(c, "Failed to create enterance")
	}

	return response.Created(c, "Enterance created successfully", "enterance", newEnteranceItem(enterance))
}

// UpdateEnterance handles PUT /management/enterances/:id
func (h *EnteranceHandler) UpdateEnterance(c *fiber.Ctx) error {
	id := c.Params("id")

	var enterance model.Enterance
	if err := h.db.First(&enterance, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Enterance not found")
		}
		return response.InternalServerError(c, "Failed to fetch enterance")
	}

	var req EnteranceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	var university model.University
	if err := h.db.First(&university, req.University).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.ValidationError(c, map[string]string{"university": "University not found"})
		}
		return response.InternalServerError(c, "Failed to fetch university")
	}

	req.apply(&enterance)
	enterance.University = university

	if err := h.db.Save(&enterance).Error; err != nil {
		return response.InternalServerError(c, "Failed to update enterance")
	}

	return response.Updated(c, "Enterance updated successfully", "enterance", newEnteranceItem(enterance))
}

// DeleteEnterance handles DELETE /management/enterances/:id.
// Registrations, payments and documents go with the row.
func (h *EnteranceHandler) DeleteEnterance(c *fiber.Ctx) error {
	id := c.Params("id")

	var enterance model.Enterance
	if err := h.db.First(&enterance, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Enterance not found")
		}
		return response.InternalServerError(c, "Failed to fetch enterance")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&model.EnteranceStudentRegistration{},
			&model.EnterancePayment{},
			&model.EnteranceDocument{},
		} {
			if err := tx.Where("enterance_id = ?", enterance.ID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&enterance).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to delete enterance")
	}

	return response.Message(c, "Enterance deleted successfully")
}
