package board

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/services/storage"
	"github.com/upsight-uz/portal-api/utils/response"
	"github.com/upsight-uz/portal-api/utils/scope"
	"github.com/upsight-uz/portal-api/utils/upload"
	"github.com/upsight-uz/portal-api/utils/validation"
)

// fetchScopedInformation loads the parent post for a document route and
// applies the caller's scope. Failures go through informationFailure.
func (h *BoardHandler) fetchScopedInformation(c *fiber.Ctx, s scope.Scope) (model.Information, error) {
	var info model.Information
	if err := h.db.First(&info, c.Params("id")).Error; err != nil {
		return info, err
	}

	if !s.CanAccess(info.UniversityID) {
		return info, errAccessDenied
	}
	return info, nil
}

// informationFailure writes the response for a fetchScopedInformation
// error.
func informationFailure(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return response.NotFound(c, "Information not found")
	case errors.Is(err, errAccessDenied):
		return response.Forbidden(c, "Permission denied")
	}
	return response.InternalServerError(c, "Failed to fetch information")
}

// ListInformationDocuments handles GET /board/informations/:id/documents
func (h *BoardHandler) ListInformationDocuments(c *fiber.Ctx) error {
	s, err := h.readScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	info, err := h.fetchScopedInformation(c, s)
	if err != nil {
		return informationFailure(c, err)
	}

	var documents []model.InformationDocument
	if err := h.db.Where("information_id = ?", info.ID).Order("id").Find(&documents).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch documents")
	}

	return response.List(c, "documents", documents, len(documents))
}

// UploadInformationDocument handles POST /board/informations/:id/documents.
// Multipart body: "file" plus document_name_uz / document_name_ko fields.
func (h *BoardHandler) UploadInformationDocument(c *fiber.Ctx) error {
	s, err := h.writeScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	info, err := h.fetchScopedInformation(c, s)
	if err != nil {
		return informationFailure(c, err)
	}

	nameUz := validation.SanitizeString(c.FormValue("document_name_uz"))
	nameKo := validation.SanitizeString(c.FormValue("document_name_ko"))

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

	key := storage.ObjectKey(storage.PrefixInformationDocuments, file.Filename)
	url, err := h.store.Upload(c.Context(), key, f, upload.ContentType(file.Filename))
	if err != nil {
		return response.InternalServerError(c, "Failed to store document")
	}

	document := model.InformationDocument{
		InformationID: info.ID,
		File:          url,
		DocumentUz:    nameUz,
		DocumentKo:    nameKo,
	}

	if err := h.db.Create(&document).Error; err != nil {
		return response.InternalServerError(c, "Failed to create document")
	}

	return response.Created(c, "Document uploaded successfully", "document", document)
}

// DeleteInformationDocument handles
// DELETE /board/informations/:id/documents/:documentId
func (h *BoardHandler) DeleteInformationDocument(c *fiber.Ctx) error {
	s, err := h.writeScope(c)
	if err != nil {
		return scopeFailure(c, err)
	}

	info, err := h.fetchScopedInformation(c, s)
	if err != nil {
		return informationFailure(c, err)
	}

	var document model.InformationDocument
	if err := h.db.Where("information_id = ?", info.ID).First(&document, c.Params("documentId")).Error; err != nil {
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
