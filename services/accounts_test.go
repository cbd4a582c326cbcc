package services

import (
	"errors"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/upsight-uz/portal-api/model"
	"github.com/upsight-uz/portal-api/utils/auth"
)

// testDB connects to the database named by TEST_DATABASE_DSN. Tests
// that need Postgres skip when it is not set.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set, skipping database test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Employee{}); err != nil {
		t.Fatalf("failed to migrate test tables: %v", err)
	}
	return db
}

func testEmployee(id string) model.Employee {
	return model.Employee{
		NameKo:     "직원",
		NameUz:     "Xodim",
		BirthDate:  model.NewDate(1990, time.January, 1),
		Gender:     "M",
		StartDate:  model.NewDate(2026, time.January, 1),
		Telephone:  "+998901234567",
		Address:    "Tashkent",
		Email:      id + "@example.com",
		Position:   model.PositionStaff,
		Status:     model.StatusWork,
		EmployeeID: id,
	}
}

func TestProvisionEmployeeUser(t *testing.T) {
	db := testDB(t)
	accounts := NewAccountService(db)

	tx := db.Begin()
	defer tx.Rollback()

	employee := testEmployee("EMP-TEST-001")
	if err := accounts.ProvisionEmployeeUser(tx, &employee, "secret12"); err != nil {
		t.Fatalf("ProvisionEmployeeUser failed: %v", err)
	}
	if err := tx.Create(&employee).Error; err != nil {
		t.Fatalf("failed to create employee: %v", err)
	}

	if employee.UserID == nil {
		t.Fatal("employee should be linked to its user")
	}
	if employee.PasswordHash == "" || employee.PasswordHash == "secret12" {
		t.Error("password should be stored hashed")
	}

	var user model.User
	if err := tx.First(&user, *employee.UserID).Error; err != nil {
		t.Fatalf("provisioned user not found: %v", err)
	}
	if user.Username != "EMP-TEST-001" {
		t.Errorf("Username = %q", user.Username)
	}
	if user.Role != model.RoleUpsightStaff {
		t.Errorf("Role = %q", user.Role)
	}
	if err := auth.VerifyPassword(user.PasswordHash, "secret12"); err != nil {
		t.Errorf("user password should verify: %v", err)
	}

	// A second employee with the same ID must hit the username guard.
	duplicate := testEmployee("EMP-TEST-001")
	err := accounts.ProvisionEmployeeUser(tx, &duplicate, "secret12")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUpdatePasswordBumpsTokenVersion(t *testing.T) {
	db := testDB(t)
	accounts := NewAccountService(db)

	tx := db.Begin()
	defer tx.Rollback()

	employee := testEmployee("EMP-TEST-002")
	if err := accounts.ProvisionEmployeeUser(tx, &employee, "secret12"); err != nil {
		t.Fatalf("ProvisionEmployeeUser failed: %v", err)
	}
	if err := tx.Create(&employee).Error; err != nil {
		t.Fatalf("failed to create employee: %v", err)
	}

	hash, err := accounts.UpdatePassword(tx, employee.UserID, "newsecret99")
	if err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}
	if err := auth.VerifyPassword(hash, "newsecret99"); err != nil {
		t.Errorf("returned hash should verify: %v", err)
	}

	var user model.User
	if err := tx.First(&user, *employee.UserID).Error; err != nil {
		t.Fatal(err)
	}
	if user.TokenVersion != 1 {
		t.Errorf("TokenVersion = %d, want 1 after a password change", user.TokenVersion)
	}
	if err := auth.VerifyPassword(user.PasswordHash, "newsecret99"); err != nil {
		t.Errorf("stored hash should verify: %v", err)
	}

	// Deleting the paired user must be idempotent for nil IDs.
	if err := accounts.DeleteUser(tx, employee.UserID); err != nil {
		t.Errorf("DeleteUser failed: %v", err)
	}
	if err := accounts.DeleteUser(tx, nil); err != nil {
		t.Errorf("DeleteUser(nil) should be a no-op, got %v", err)
	}
}
