package validation

import "testing"

func TestRequireBilingual(t *testing.T) {
	errs := make(map[string]string)
	RequireBilingual(errs, "name", "", "")
	if errs["name"] != "Either name_uz or name_ko is required" {
		t.Errorf("unexpected message: %q", errs["name"])
	}

	errs = make(map[string]string)
	RequireBilingual(errs, "name", "Ism", "")
	if len(errs) != 0 {
		t.Error("uzbek side alone should satisfy the pair")
	}

	errs = make(map[string]string)
	RequireBilingual(errs, "name", "", "이름")
	if len(errs) != 0 {
		t.Error("korean side alone should satisfy the pair")
	}

	errs = make(map[string]string)
	RequireBilingual(errs, "name", "   ", "\t")
	if len(errs) != 1 {
		t.Error("whitespace on both sides should fail")
	}
}

func TestCheck(t *testing.T) {
	v := NewValidator()

	type body struct {
		State string `json:"state" validate:"required,oneof=end now after"`
		Email string `json:"email" validate:"required,email"`
		Month int    `json:"payment_month" validate:"required,gte=1"`
	}

	errs := v.Check(body{State: "now", Email: "user@example.com", Month: 2})
	if len(errs) != 0 {
		t.Errorf("valid body should pass, got %v", errs)
	}

	errs = v.Check(body{State: "soon", Email: "plainaddress"})
	if errs["state"] != "state must be one of: end now after" {
		t.Errorf("unexpected state detail: %q", errs["state"])
	}
	if errs["email"] != "Invalid email format" {
		t.Errorf("unexpected email detail: %q", errs["email"])
	}
	if errs["payment_month"] != "payment_month is required" {
		t.Errorf("unexpected month detail: %q", errs["payment_month"])
	}
}

func TestCheckUsesJSONFieldNames(t *testing.T) {
	v := NewValidator()

	type body struct {
		TeacherFirst uint `json:"teacher_first" validate:"required"`
	}

	errs := v.Check(body{})
	if _, ok := errs["teacher_first"]; !ok {
		t.Errorf("detail should be keyed by the json name, got %v", errs)
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, _ := ValidatePassword("secret12"); !ok {
		t.Error("eight chars with a letter should pass")
	}
	if ok, msgs := ValidatePassword("short"); ok || len(msgs) == 0 {
		t.Error("short password should fail with a message")
	}
	if ok, _ := ValidatePassword("12345678"); ok {
		t.Error("digits only should fail the letter check")
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello\x00world  "); got != "helloworld" {
		t.Errorf("SanitizeString = %q", got)
	}
}

func TestClockTimeTag(t *testing.T) {
	v := NewValidator()

	type slot struct {
		Start string `validate:"required,clocktime"`
	}

	if err := v.ValidateStruct(slot{Start: "09:30"}); err != nil {
		t.Errorf("09:30 should validate: %v", err)
	}
	if err := v.ValidateStruct(slot{Start: "25:00"}); err == nil {
		t.Error("25:00 should fail the clocktime tag")
	}

	err := v.ValidateStruct(slot{Start: "9am"})
	if err == nil {
		t.Fatal("9am should fail")
	}
	details := FormatValidationErrors(err)
	if details["start"] != "Start must be a valid HH:MM time" {
		t.Errorf("unexpected detail: %q", details["start"])
	}
}
