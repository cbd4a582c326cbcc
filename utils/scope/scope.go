package scope

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/utils/middleware"
)

var (
	// ErrNotStaff marks principals without any staff role. Callers map
	// it to 403 on writes and to an empty result set on reads.
	ErrNotStaff = errors.New("user has no staff role")

	// ErrManagerNotLinked marks a university_staff user with no manager
	// row. This is a configuration error and maps to 400, not 403.
	ErrManagerNotLinked = errors.New("university not found for user")
)

// Scope is the row visibility of one authenticated principal for
// university-owned data. Either Global is set, or UniversityID pins the
// principal to a single university, or both are zero (no access).
type Scope struct {
	Global       bool
	UniversityID uint
}

// Empty reports whether the scope grants no access at all.
func (s Scope) Empty() bool {
	return !s.Global && s.UniversityID == 0
}

// CanAccess reports whether a row owned by universityID is visible.
func (s Scope) CanAccess(universityID uint) bool {
	return s.Global || (s.UniversityID != 0 && s.UniversityID == universityID)
}

// Filter narrows a query to the scope's university. Global scopes pass
// the query through; empty scopes match nothing.
func (s Scope) Filter(q *gorm.DB, column string) *gorm.DB {
	if s.Global {
		return q
	}
	if s.UniversityID != 0 {
		return q.Where(column+" = ?", s.UniversityID)
	}
	return q.Where("1 = 0")
}

// Resolver maps request principals to scopes. Resolution happens once
// per request at the top of each scoped handler.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Resolve reads the authenticated user from the request and derives its
// scope. upsight_staff is global; university_staff is pinned via its
// UniversityManager row; everyone else gets ErrNotStaff.
func (r *Resolver) Resolve(c *fiber.Ctx) (Scope, error) {
	user, ok := middleware.GetUser(c)
	if !ok {
		return Scope{}, ErrNotStaff
	}

	switch user.Role {
	case model.RoleUpsightStaff:
		return Scope{Global: true}, nil
	case model.RoleUniversityStaff:
		var manager model.UniversityManager
		err := r.db.WithContext(c.Context()).
			Where("user_id = ?", user.ID).
			First(&manager).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Scope{}, ErrManagerNotLinked
			}
			return Scope{}, err
		}
		return Scope{UniversityID: manager.UniversityID}, nil
	}
	return Scope{}, ErrNotStaff
}
