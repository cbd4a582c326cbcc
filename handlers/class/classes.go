package class

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/services"
	"github.com/upsight-uz/portal-api/utils/response"
	"github.com/upsight-uz/portal-api/utils/validation"
)

// ClassHandler handles course offerings with their timetables,
// registrations and tuition payments.
type ClassHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewClassHandler creates a new class handler.
func NewClassHandler(db *gorm.DB) *ClassHandler {
	return &ClassHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// ClassRequest is the write body for classes. Enum and range rules
// live in the struct tags; checkTeachers covers the FK lookups.
type ClassRequest struct {
	TeacherFirst   uint       `json:"teacher_first" validate:"required"`
	TeacherSecond  uint       `json:"teacher_second" validate:"required"`
	Level          string     `json:"level" validate:"required,oneof=low intermediate high"`
	Lecture        string     `json:"lecture" validate:"required,oneof=topik aboard nurse it others"`
	Group          int        `json:"group" validate:"gte=1,lte=10"`
	OpeningDate    model.Date `json:"opening_date" validate:"required"`
	Period         int        `json:"period" validate:"required,oneof=1 3 6"`
	TuitionFee     float64    `json:"tuition_fee" validate:"gte=0"`
	TextbookFirst  string     `json:"textbook_first"`
	TextbookSecond string     `json:"textbook_second"`
	Classroom      string     `json:"classroom"`
}

func (r *ClassRequest) validate(v *validation.Validator) map[string]string {
	return v.Check(r)
}

func (r *ClassRequest) apply(cl *model.Class) {
	cl.TeacherFirstID = r.TeacherFirst
	cl.TeacherSecondID = r.TeacherSecond
	cl.Level = r.Level
	cl.Lecture = r.Lecture
	cl.Group = r.Group
	cl.OpeningDate = r.OpeningDate
	cl.Period = r.Period
	cl.TuitionFee = r.TuitionFee
	cl.TextbookFirst = validation.SanitizeString(r.TextbookFirst)
	cl.TextbookSecond = validation.SanitizeString(r.TextbookSecond)
	cl.Classroom = validation.SanitizeString(r.Classroom)
}

// checkTeachers verifies both teacher FKs resolve to employees.
func (h *ClassHandler) checkTeachers(req *ClassRequest) map[string]string {
	errs := make(map[string]string)
	var count int64
	h.db.Model(&model.Employee{}).Where("id = ?", req.TeacherFirst).Count(&count)
	if count == 0 {
		errs["teacher_first"] = "Teacher not found"
	}
	h.db.Model(&model.Employee{}).Where("id = ?", req.TeacherSecond).Count(&count)
	if count == 0 {
		errs["teacher_second"] = "Teacher not found"
	}
	return errs
}

// classItem is the list row shape: the class plus its derived fields.
type classItem struct {
	model.Class
	Info           string `json:"info"`
	LevelDisplay   string `json:"level_display"`
	LectureDisplay string `json:"lecture_display"`
	CurrentMonth   int    `json:"current_month"`
}

func newClassItem(cl model.Class) classItem {
	return classItem{
		Class:          cl,
		Info:           cl.Info(),
		LevelDisplay:   cl.LevelDisplay(),
		LectureDisplay: cl.LectureDisplay(),
		CurrentMonth:   cl.CurrentMonth(),
	}
}

// ListClasses handles GET /management/classes
func (h *ClassHandler) ListClasses(c *fiber.Ctx) error {
	query := h.db.Model(&model.Class{})

	if level := c.Query("level"); level != "" {
		query = query.Where("level = ?", level)
	}
	if lecture := c.Query("lecture"); lecture != "" {
		query = query.Where("lecture = ?", lecture)
	}

	var classes []model.Class
	if err := query.Order("id").Find(&classes).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch classes")
	}

	items := make([]classItem, 0, len(classes))
	for _, cl := range classes {
		items = append(items, newClassItem(cl))
	}

	return response.List(c, "classes", items, len(items))
}

// GetClass handles GET /management/classes/:id?month=M. The detail
// embeds timetables, registration counts and the class's payments; with
// ?month= the payment list narrows to that payment month.
func (h *ClassHandler) GetClass(c *fiber.Ctx) error {
	id := c.Params("id")

	var class model.Class
	if err := h.db.Preload("Timetables").First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Class not found")
		}
		return response.InternalServerError(c, "Failed to fetch class")
	}

	paymentQuery := h.db.Preload("Student").Where("class_id = ?", class.ID)

	filtered := false
	month := 0
	if monthParam := c.Query("month"); monthParam != "" {
		m, err := strconv.Atoi(monthParam)
		if err != nil || m < 1 {
			return response.BadRequest(c, "Invalid month filter")
		}
		month = m
		filtered = true
		paymentQuery = paymentQuery.Where("payment_month = ?", m)
	}

	var payments []model.ClassPayment
	if err := paymentQuery.Order("date DESC, id DESC").Find(&payments).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch payments")
	}

	amounts := make([]float64, 0, len(payments))
	for i := range payments {
		amounts = append(amounts, payments[i].Amount)
	}

	var totalStudents, activeStudents int64
	h.db.Model(&model.ClassStudentRegistration{}).Where("class_id = ?", class.ID).Count(&totalStudents)
	h.db.Model(&model.ClassStudentRegistration{}).Where("class_id = ? AND state = ?", class.ID, 1).Count(&activeStudents)

	timetables := make([]timetableItem, 0, len(class.Timetables))
	for _, t := range class.Timetables {
		timetables = append(timetables, newTimetableItem(t))
	}

	body := fiber.Map{
		"class":           newClassItem(class),
		"timetables":      timetables,
		"payments":        payments,
		"total_payments":  services.SumAmounts(amounts),
		"total_students":  totalStudents,
		"active_students": activeStudents,
		"current_month":   class.CurrentMonth(),
	}
	if filtered {
		body["filter_info"] = fiber.Map{
			"month":         month,
			"month_display": "Month " + strconv.Itoa(month),
		}
	}

	return c.Status(fiber.StatusOK).JSON(body)
}

// CreateClass handles POST /management/classes
func (h *ClassHandler) CreateClass(c *fiber.Ctx) error {
	var req ClassRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}
	if errs := h.checkTeachers(&req); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	var class model.Class
	req.apply(&class)

	if err := h.db.Create(&class).Error; err != nil {
		return response.InternalServerError(c, "Failed to create class")
	}

	return response.Created(c, "Class created successfully", "class", newClassItem(class))
}

// UpdateClass handles PUT /management/classes/:id
func (h *ClassHandler) UpdateClass(c *fiber.Ctx) error {
	id := c.Params("id")

	var class model.Class
	if err := h.db.First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Class not found")
		}
		return response.InternalServerError(c, "Failed to fetch class")
	}

	var req ClassRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}
	if errs := h.checkTeachers(&req); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	req.apply(&class)

	if err := h.db.Save(&class).Error; err != nil {
		return response.InternalServerError(c, "Failed to update class")
	}

	return response.Updated(c, "Class updated successfully", "class", newClassItem(class))
}

// DeleteClass handles DELETE /management/classes/:id. Timetables,
// registrations and payments go with the row.
func (h *ClassHandler) DeleteClass(c *fiber.Ctx) error {
	id := c.Params("id")

	var class model.Class
	if err := h.db.First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Class not found")
		}
		return response.InternalServerError(c, "Failed to fetch class")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&model.ClassTimeTable{},
			&model.ClassStudentRegistration{},
			&model.ClassPayment{},
		} {
			if err := tx.Where("class_id = ?", class.ID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&class).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to delete class")
	}

	return response.Message(c, "Class deleted successfully")
}
