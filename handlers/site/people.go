package site

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/utils/response"
)

type personItem struct {
	model.Person
	FullName string `json:"full_name"`
	Position string `json:"position"`
}

type experienceItem struct {
	model.Experience
	Text string `json:"experience"`
}

// ListPersons handles GET /site/persons
func (h *SiteHandler) ListPersons(c *fiber.Ctx) error {
	lang := language(c)

	var persons []model.Person
	if err := h.db.Order("id").Find(&persons).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch persons")
	}

	items := make([]personItem, 0, len(persons))
	for _, p := range persons {
		items = append(items, personItem{
			Person:   p,
			FullName: p.FullName(lang),
			Position: p.Position(lang),
		})
	}

	return response.List(c, "persons", items, len(items))
}

// ListExperiences handles GET /site/persons/:id/experiences
func (h *SiteHandler) ListExperiences(c *fiber.Ctx) error {
	lang := language(c)

	var person model.Person
	if err := h.db.First(&person, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Person not found")
		}
		return response.InternalServerError(c, "Failed to fetch person")
	}

	var experiences []model.Experience
	if err := h.db.Where("person_id = ?", person.ID).Order("id").Find(&experiences).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch experiences")
	}

	items := make([]experienceItem, 0, len(experiences))
	for _, e := range experiences {
		items = append(items, experienceItem{
			Experience: e,
			Text:       e.Text(lang),
		})
	}

	return response.List(c, "experiences", items, len(items))
}
