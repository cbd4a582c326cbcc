package enterance

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/services/storage"
	"github.com/upsight-uz/portal-api/utils/response"
	"github.com/upsight-uz/portal-api/utils/upload"
	"github.com/upsight-uz/portal-api/utils/validation"
)

// ListDocuments handles GET /management/enterances/:id/documents
func (h *EnteranceHandler) ListDocuments(c *fiber.Ctx) error {
	id := c.Params("id")

	var enterance model.Enterance
	if err := h.db.First(&enterance, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Enterance not found")
		}
		return response.InternalServerError(c, "Failed to fetch enterance")
	}

	var documents []model.EnteranceDocument
	if err := h.db.Where("enterance_id = ?", enterance.ID).Order("id").Find(&documents).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch documents")
	}

	return response.List(c, "documents", documents, len(documents))
}

// UploadDocument handles POST /management/enterances/:id/documents.
// Multipart form: "file" (PDF) plus document_name_uz / document_name_ko.
func (h *EnteranceHandler) UploadDocument(c *fiber.Ctx) error {
	id := c.Params("id")

	var enterance model.Enterance
	if err := h.db.First(&enterance, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Enterance not found")
		}
		return response.InternalServerError(c, "Failed to fetch enterance")
	}

	nameUz := c.FormValue("document_name_uz")
	nameKo := c.FormValue("document_name_ko")

	errs := make(map[string]string)
	validation.RequireBilingual(errs, "document_name", nameUz, nameKo)
	if len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "Document file is required")
	}

	if err := upload.ValidatePDFFile(file); err != nil {
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

	key := storage.ObjectKey(storage.PrefixStudentDocuments, file.Filename)
	url, err := h.store.Upload(c.Context(), key, f, upload.ContentType(file.Filename))
	if err != nil {
		return response.InternalServerError(c, "Failed to store document")
	}

	document := model.EnteranceDocument{
		EnteranceID:    enterance.ID,
		DocumentNameUz: validation.SanitizeString(nameUz),
		DocumentNameKo: validation.SanitizeString(nameKo),
		File:           url,
	}

	if err := h.db.Create(&document).Error; err != nil {
		return response.InternalServerError(c, "Failed to create document")
	}

	return response.Created(c, "Document uploaded successfully", "document", document)
}

// DeleteDocument handles DELETE /management/enterances/:id/documents/:documentId
func (h *EnteranceHandler) DeleteDocument(c *fiber.Ctx) error {
	id := c.Params("id")
	documentID := c.Params("documentId")

	var document model.EnteranceDocument
	if err := h.db.Where("enterance_id = ?", id).First(&document, documentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Document not found")
		}
		return response.InternalServerError(c, "Failed to fetch document")
	}

	if err := h.db.Delete(&document).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete document")
	}

	return response.Message(c, "Document deleted successfully")
}
