package class

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/utils/response"
	"github.com/upsight-uz/portal-api/utils/validation"
)

// TimetableRequest is the write body for weekly slots.
type TimetableRequest struct {
	Days      []string `json:"days"`
	StartTime string   `json:"start_time" validate:"required,clocktime"`
	EndTime   string   `json:"end_time" validate:"required,clocktime"`
}

func (r *TimetableRequest) validate(v *validation.Validator) map[string]string {
	errs := v.Check(r)
	if len(r.Days) == 0 {
		errs["days"] = "Days is required"
	}
	for _, day := range r.Days {
		if !model.ValidWeekday(day) {
			errs["days"] = "Days must contain weekday names monday..sunday"
			break
		}
	}
	if len(errs) == 0 && !model.ClockTimeAfter(r.StartTime, r.EndTime) {
		errs["end_time"] = "EndTime must be after StartTime"
	}
	return errs
}

// timetableItem is the wire shape: the slot plus derived labels.
type timetableItem struct {
	model.ClassTimeTable
	Duration      string   `json:"duration"`
	DaysDisplay   []string `json:"days_display"`
	DaysDisplayKo []string `json:"days_display_ko"`
	DaysDisplayUz []string `json:"days_display_uz"`
}

func newTimetableItem(t model.ClassTimeTable) timetableItem {
	return timetableItem{
		ClassTimeTable: t,
		Duration:       t.Duration(),
		DaysDisplay:    t.DaysDisplay(),
		DaysDisplayKo:  t.DaysDisplayKo(),
		DaysDisplayUz:  t.DaysDisplayUz(),
	}
}

// ListTimetables handles GET /management/classes/:id/timetables
func (h *ClassHandler) ListTimetables(c *fiber.Ctx) error {
	id := c.Params("id")

	var class model.Class
	if err := h.db.First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Class not found")
		}
		return response.InternalServerError(c, "Failed to fetch class")
	}

	var timetables []model.ClassTimeTable
	if err := h.db.Where("class_id = ?", class.ID).Order("id").Find(&timetables).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch timetables")
	}

	items := make([]timetableItem, 0, len(timetables))
	for _, t := range timetables {
		items = append(items, newTimetableItem(t))
	}

	return response.List(c, "timetables", items, len(items))
}

// CreateTimetable handles POST /management/classes/:id/timetables
func (h *ClassHandler) CreateTimetable(c *fiber.Ctx) error {
	id := c.Params("id")

	var class model.Class
	if err := h.db.First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Class not found")
		}
		return response.InternalServerError(c, "Failed to fetch class")
	}

	var req TimetableRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	timetable := model.ClassTimeTable{
		ClassID:   class.ID,
		Days:      datatypes.NewJSONSlice(req.Days),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if err := h.db.Create(&timetable).Error; err != nil {
		return response.InternalServerError(c, "Failed to create timetable")
	}

	return response.Created(c, "Timetable created successfully", "timetable", newTimetableItem(timetable))
}

// UpdateTimetable handles PUT /management/classes/:id/timetables/:timetableId
func (h *ClassHandler) UpdateTimetable(c *fiber.Ctx) error {
	id := c.Params("id")
	timetableID := c.Params("timetableId")

	var timetable model.ClassTimeTable
	if err := h.db.Where("class_id = ?", id).First(&timetable, timetableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Timetable not found")
		}
		return response.InternalServerError(c, "Failed to fetch timetable")
	}

	var req TimetableRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := req.validate(h.validator); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	timetable.Days = datatypes.NewJSONSlice(req.Days)
	timetable.StartTime = req.StartTime
	timetable.EndTime = req.EndTime

	if err := h.db.Save(&timetable).Error; err != nil {
		return response.InternalServerError(c, "Failed to update timetable")
	}

	return response.Updated(c, "Timetable updated successfully", "timetable", newTimetableItem(timetable))
}

// DeleteTimetable handles DELETE /management/classes/:id/timetables/:timetableId
func (h *ClassHandler) DeleteTimetable(c *fiber.Ctx) error {
	id := c.Params("id")
	timetableID := c.Params("timetableId")

	var timetable model.ClassTimeTable
	if err := h.db.Where("class_id = ?", id).First(&timetable, timetableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Timetable not found")
		}
		return response.InternalServerError(c, "Failed to fetch timetable")
	}

	if err := h.db.Delete(&timetable).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete timetable")
	}

	return response.Message(c, "Timetable deleted successfully")
}
