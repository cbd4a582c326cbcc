package services

import (
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/utils/auth"
)

// ErrUsernameTaken is returned when a provisioned login name collides
// with an existing user.
var ErrUsernameTaken = errors.New("username already in use")

// AccountService provisions login principals alongside the personnel
// rows that own them. Every Provision* method expects to run inside the
// same transaction that creates the personnel row, so a failed user
// insert rolls the whole creation back.
type AccountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

// ProvisionEmployeeUser creates the upsight_staff user for a new
// employee. The employee logs in with employee_id as username.
func (s *AccountService) ProvisionEmployeeUser(tx *gorm.DB, employee *model.Employee, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user := model.User{
		Username:     employee.EmployeeID,
		Email:        employee.Email,
		FirstName:    employee.Name(),
		PasswordHash: hash,
		Role:         model.RoleUpsightStaff,
		IsActive:     true,
	}
	if err := s.createUser(tx, &user); err != nil {
		return err
	}

	employee.PasswordHash = hash
	employee.UserID = &user.ID
	return nil
}

// ProvisionUniversityManagerUser creates the university_staff user for
// a new manager. Manager IDs are numeric, so the username is the
// decimal form of manager_id.
func (s *AccountService) ProvisionUniversityManagerUser(tx *gorm.DB, manager *model.UniversityManager, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user := model.User{
		Username:     strconv.Itoa(manager.ManagerID),
		FirstName:    manager.Name(),
		PasswordHash: hash,
		Role:         model.RoleUniversityStaff,
		IsActive:     true,
	}
	if err := s.createUser(tx, &user); err != nil {
		return err
	}

	manager.PasswordHash = hash
	manager.UserID = &user.ID
	return nil
}

// ProvisionOrganManagerUser creates the organ_staff user for a new
// organ manager.
func (s *AccountService) ProvisionOrganManagerUser(tx *gorm.DB, manager *model.OrganManager, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user := model.User{
		Username:     strconv.Itoa(manager.ManagerID),
		FirstName:    manager.Name(),
		PasswordHash: hash,
		Role:         model.RoleOrganStaff,
		IsActive:     true,
	}
	if err := s.createUser(tx, &user); err != nil {
		return err
	}

	manager.PasswordHash = hash
	manager.UserID = &user.ID
	return nil
}

// UpdatePassword rehashes a changed password and bumps the linked
// user's token version so outstanding tokens stop working.
func (s *AccountService) UpdatePassword(tx *gorm.DB, userID *uint, password string) (string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	if userID != nil {
		err = tx.Model(&model.User{}).
			Where("id = ?", *userID).
			Updates(map[string]interface{}{
				"password_hash": hash,
				"token_version": gorm.Expr("token_version + 1"),
			}).Error
		if err != nil {
			return "", err
		}
	}

	return hash, nil
}

// DeleteUser removes the login principal linked to a deleted personnel
// row. A nil userID is a no-op.
func (s *AccountService) DeleteUser(tx *gorm.DB, userID *uint) error {
	if userID == nil {
		return nil
	}
	return tx.Delete(&model.User{}, *userID).Error
}

func (s *AccountService) createUser(tx *gorm.DB, user *model.User) error {
	var count int64
	if err := tx.Model(&model.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUsernameTaken
	}
	return tx.Create(user).Error
}
