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

// BoardHandler handles university-owned content posts: news, notices,
// translations and information posts with documents. Reads and writes
// are scoped: upsight_staff sees every university, university_staff
// only its own.
type BoardHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	scopes    *scope.Resolver
	store     storage.Store
}

// NewBoardHandler creates a new board handler.
func NewBoardHandler(db *gorm.DB, store storage.Store) *BoardHandler {
	return &BoardHandler{
		db:        db,
		validator: validation.NewValidator(),
		scopes:    scope.NewResolver(db),
		store:     store,
	}
}

var (
	errOwnerRequired = errors.New("university is required")
	errOwnerUnknown  = errors.New("university not found")
	errImageMissing  = errors.New("image file is required")
	errAccessDenied  = errors.New("permission denied")
)

// writeScope resolves the request principal's row visibility for a
// mutation. Failures go through scopeFailure, which rejects non-staff
// principals outright.
func (h *BoardHandler) writeScope(c *fiber.Ctx) (scope.Scope, error) {
	return h.scopes.Resolve(c)
}

// readScope is the read-side variant: non-staff principals get an
// empty scope instead of an error, and Filter turns that into an empty
// result set.
func (h *BoardHandler) readScope(c *fiber.Ctx) (scope.Scope, error) {
	s, err := h.scopes.Resolve(c)
	if errors.Is(err, scope.ErrNotStaff) {
		return scope.Scope{}, nil
	}
	return s, err
}

// scopeFailure writes the response for a scope resolution error. A
// university_staff user without a manager row is a configuration
// problem reported as 400, not 403.
func scopeFailure(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, scope.ErrManagerNotLinked):
		return response.BadRequest(c, "University not found for user")
	case errors.Is(err, scope.ErrNotStaff):
		return response.Forbidden(c, "Permission denied")
	}
	return response.InternalServerError(c, "Failed to resolve access scope")
}

// accessLevel labels the list payload with the caller's visibility.
func accessLevel(s scope.Scope) string {
	if s.Global {
		return "global"
	}
	return "university"
}

// PostRequest is the shared write body for board posts.
type PostRequest struct {
	TitleUz    string `json:"title_uz"`
	TitleKo    string `json:"title_ko"`
	ContentUz  string `json:"content_uz"`
	ContentKo  string `json:"content_ko"`
	University uint   `json:"university"`
}

func (r *PostRequest) validate(v *validation.Validator) map[string]string {
	errs := v.Check(r)
	validation.RequireBilingual(errs, "title", r.TitleUz, r.TitleKo)
	validation.RequireBilingual(errs, "content", r.ContentUz, r.ContentKo)
	return errs
}

// resolveOwner decides the owning university for a create: scoped staff
// are pinned to their own university regardless of the request body;
// global staff must name an existing one. Failures go through
// ownerFailure.
func (h *BoardHandler) resolveOwner(s scope.Scope, requested uint) (uint, error) {
	if !s.Global {
		return s.UniversityID, nil
	}
	if requested == 0 {
		return 0, errOwnerRequired
	}
	var count int64
	if err := h.db.Model(&model.University{}).Where("id = ?", requested).Count(&count).Error; err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, errOwnerUnknown
	}
	return requested, nil
}

// ownerFailure writes the response for a resolveOwner error.
func ownerFailure(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errOwnerRequired):
		return response.ValidationError(c, map[string]string{"university": "University is required"})
	case errors.Is(err, errOwnerUnknown):
		return response.ValidationError(c, map[string]string{"university": "University not found"})
	}
	return response.InternalServerError(c, "Failed to fetch university")
}

// uploadImage stores a validated multipart image and returns its URL.
// Failures go through uploadFailure.
func (h *BoardHandler) uploadImage(c *fiber.Ctx, prefix string) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", errImageMissing
	}

	if err := upload.ValidateImageFile(file); err != nil {
		return "", err
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	key := storage.ObjectKey(prefix, file.Filename)
	return h.store.Upload(c.Context(), key, f, upload.ContentType(file.Filename))
}

// uploadFailure writes the response for an uploadImage error.
func uploadFailure(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errImageMissing):
		return response.BadRequest(c, "Image file is required")
	case upload.IsValidationError(err):
		return response.BadRequest(c, err.Error())
	}
	return response.InternalServerError(c, "Failed to store image")
}
