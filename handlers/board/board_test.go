package board

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/upsight-uz/portal-api/model"
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

	if err := db.AutoMigrate(&model.User{}, &model.University{}, &model.UniversityManager{}, &model.Notice{}); err != nil {
		t.Fatalf("failed to migrate test tables: %v", err)
	}
	return db
}

// boardFixture is two universities plus one user per access level, all
// created inside a transaction the test rolls back.
type boardFixture struct {
	tx       *gorm.DB
	uniA     model.University
	uniB     model.University
	global   model.User // upsight_staff
	scoped   model.User // university_staff linked to uniA
	unlinked model.User // university_staff without a manager row
	organ    model.User // organ_staff
}

func newBoardFixture(t *testing.T, tx *gorm.DB) *boardFixture {
	t.Helper()

	f := &boardFixture{tx: tx}

	f.uniA = model.University{NameKo: "서울대학교", NameUz: "Seul universiteti"}
	f.uniB = model.University{NameKo: "부산대학교", NameUz: "Busan universiteti"}
	for _, u := range []*model.University{&f.uniA, &f.uniB} {
		if err := tx.Create(u).Error; err != nil {
			t.Fatalf("failed to create university: %v", err)
		}
	}

	f.global = model.User{Username: "BRD-GLOBAL", Role: model.RoleUpsightStaff, PasswordHash: "x", IsActive: true}
	f.scoped = model.User{Username: "BRD-SCOPED", Role: model.RoleUniversityStaff, PasswordHash: "x", IsActive: true}
	f.unlinked = model.User{Username: "BRD-UNLINKED", Role: model.RoleUniversityStaff, PasswordHash: "x", IsActive: true}
	f.organ = model.User{Username: "BRD-ORGAN", Role: model.RoleOrganStaff, PasswordHash: "x", IsActive: true}
	for _, u := range []*model.User{&f.global, &f.scoped, &f.unlinked, &f.organ} {
		if err := tx.Create(u).Error; err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
	}

	manager := model.UniversityManager{
		UniversityID: f.uniA.ID,
		NameUz:       "Menejer",
		NameKo:       "매니저",
		ManagerID:    910001,
		PasswordHash: "x",
		UserID:       &f.scoped.ID,
	}
	if err := tx.Create(&manager).Error; err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	return f
}

func (f *boardFixture) notice(t *testing.T, universityID uint, title string) model.Notice {
	t.Helper()

	n := model.Notice{TitleUz: title, TitleKo: title, UniversityID: universityID}
	if err := f.tx.Create(&n).Error; err != nil {
		t.Fatalf("failed to create notice: %v", err)
	}
	return n
}

// app builds a fiber app with the notice routes behind a stub that
// injects the user the way the auth middleware would.
func (f *boardFixture) app(user *model.User) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", user.ID)
		c.Locals("user_role", user.Role)
		c.Locals("user", user)
		return c.Next()
	})

	h := NewBoardHandler(f.tx, nil)
	app.Get("/board/notices", h.ListNotices)
	app.Post("/board/notices", h.CreateNotice)
	app.Put("/board/notices/:id", h.UpdateNotice)
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	resp.Body.Close()
	return body
}

func TestUpdateNoticeAcrossUniversitiesForbidden(t *testing.T) {
	db := testDB(t)
	tx := db.Begin()
	defer tx.Rollback()

	f := newBoardFixture(t, tx)
	other := f.notice(t, f.uniB.ID, "B notice")

	app := f.app(&f.scoped)
	resp, err := app.Test(jsonRequest("PUT", "/board/notices/"+itoa(other.ID),
		`{"title_uz": "Yangilandi", "content_uz": "x"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "Permission denied" {
		t.Errorf("error = %v", body["error"])
	}

	// The row must be untouched.
	var reloaded model.Notice
	if err := tx.First(&reloaded, other.ID).Error; err != nil {
		t.Fatal(err)
	}
	if reloaded.TitleUz != "B notice" || reloaded.UniversityID != f.uniB.ID {
		t.Errorf("notice changed: title_uz=%q university=%d", reloaded.TitleUz, reloaded.UniversityID)
	}
}

func TestCreateNoticePinsScopedStaffToOwnUniversity(t *testing.T) {
	db := testDB(t)
	tx := db.Begin()
	defer tx.Rollback()

	f := newBoardFixture(t, tx)

	// The body names university B; the scope must win.
	app := f.app(&f.scoped)
	resp, err := app.Test(jsonRequest("POST", "/board/notices",
		`{"title_uz": "E'lon", "content_uz": "Matn", "university": `+itoa(f.uniB.ID)+`}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	resp.Body.Close()

	var created model.Notice
	if err := tx.Where("title_uz = ?", "E'lon").First(&created).Error; err != nil {
		t.Fatal(err)
	}
	if created.UniversityID != f.uniA.ID {
		t.Errorf("UniversityID = %d, want %d", created.UniversityID, f.uniA.ID)
	}
}

func TestCreateNoticeRejectsUnknownUniversity(t *testing.T) {
	db := testDB(t)
	tx := db.Begin()
	defer tx.Rollback()

	f := newBoardFixture(t, tx)

	app := f.app(&f.global)
	resp, err := app.Test(jsonRequest("POST", "/board/notices",
		`{"title_uz": "E'lon", "content_uz": "Matn", "university": 99999999}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	var count int64
	if err := tx.Model(&model.Notice{}).Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("notice count = %d, want 0 after a rejected create", count)
	}
}

func TestCreateNoticeWithoutManagerRow(t *testing.T) {
	db := testDB(t)
	tx := db.Begin()
	defer tx.Rollback()

	f := newBoardFixture(t, tx)

	app := f.app(&f.unlinked)
	resp, err := app.Test(jsonRequest("POST", "/board/notices",
		`{"title_uz": "E'lon", "content_uz": "Matn"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "University not found for user" {
		t.Errorf("error = %v", body["error"])
	}

	var count int64
	if err := tx.Model(&model.Notice{}).Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("notice count = %d, want 0 after a rejected create", count)
	}
}

func TestListNoticesFiltersByScope(t *testing.T) {
	db := testDB(t)
	tx := db.Begin()
	defer tx.Rollback()

	f := newBoardFixture(t, tx)
	f.notice(t, f.uniA.ID, "A notice")
	f.notice(t, f.uniB.ID, "B notice")

	resp, err := f.app(&f.scoped).Test(jsonRequest("GET", "/board/notices", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["total_count"] != float64(1) {
		t.Errorf("total_count = %v, want 1 for scoped staff", body["total_count"])
	}
	if body["access_level"] != "university" {
		t.Errorf("access_level = %v", body["access_level"])
	}

	resp, err = f.app(&f.global).Test(jsonRequest("GET", "/board/notices", ""))
	if err != nil {
		t.Fatal(err)
	}
	body = decodeBody(t, resp)
	if body["total_count"] != float64(2) {
		t.Errorf("total_count = %v, want 2 for global staff", body["total_count"])
	}
}

func TestBoardAccessForNonUniversityStaff(t *testing.T) {
	db := testDB(t)
	tx := db.Begin()
	defer tx.Rollback()

	f := newBoardFixture(t, tx)
	f.notice(t, f.uniA.ID, "A notice")

	// Reads collapse to an empty list, writes are rejected.
	app := f.app(&f.organ)
	resp, err := app.Test(jsonRequest("GET", "/board/notices", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("list status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["total_count"] != float64(0) {
		t.Errorf("total_count = %v, want 0 for organ staff", body["total_count"])
	}

	resp, err = app.Test(jsonRequest("POST", "/board/notices",
		`{"title_uz": "E'lon", "content_uz": "Matn"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("create status = %d, want 403", resp.StatusCode)
	}
	resp.Body.Close()
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
