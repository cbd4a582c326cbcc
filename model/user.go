package model

import "time"

// Staff roles. Every login principal carries exactly one.
const (
	RoleUpsightStaff    = "upsight_staff"    // head-office staff, global access
	RoleUniversityStaff = "university_staff" // scoped to one university via UniversityManager
	RoleOrganStaff      = "organ_staff"      // scoped to one organ via OrganManager
)

// User is a login principal. Users are provisioned automatically when an
// Employee, UniversityManager or OrganManager is created and share that
// row's credentials.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"type:varchar(32);not null;index" json:"role"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	TokenVersion int       `gorm:"default:0" json:"-"` // Increment to invalidate all user tokens
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsStaff reports whether the user holds any staff role.
func (u *User) IsStaff() bool {
	switch u.Role {
	case RoleUpsightStaff, RoleUniversityStaff, RoleOrganStaff:
		return true
	}
	return false
}

// IsGlobalStaff reports whether the user can see rows of every university.
func (u *User) IsGlobalStaff() bool {
	return u.Role == RoleUpsightStaff
}
