package model

import (
	"testing"
	"time"

	"gorm.io/datatypes"
)

func TestClassInfo(t *testing.T) {
	class := Class{Group: 3, Level: "low", Lecture: "topik"}
	if got := class.Info(); got != "Group 3 - Low TOPIK" {
		t.Errorf("Info() = %q", got)
	}
	if got := class.LevelDisplay(); got != "Low" {
		t.Errorf("LevelDisplay() = %q", got)
	}
	if got := class.LectureDisplay(); got != "TOPIK" {
		t.Errorf("LectureDisplay() = %q", got)
	}
}

func TestClassCurrentMonthAt(t *testing.T) {
	class := Class{OpeningDate: NewDate(2026, time.March, 10), Period: 3}

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"before opening", time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC), 0},
		{"opening day", time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), 1},
		{"within first month", time.Date(2026, time.April, 9, 0, 0, 0, 0, time.UTC), 1},
		{"second month starts", time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC), 2},
		{"runs past the period", time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := class.CurrentMonthAt(tt.now); got != tt.want {
				t.Errorf("CurrentMonthAt(%v) = %d, want %d", tt.now, got, tt.want)
			}
		})
	}

	var unopened Class
	if got := unopened.CurrentMonthAt(time.Now()); got != 0 {
		t.Errorf("zero opening date should give 0, got %d", got)
	}
}

func TestTimetableDuration(t *testing.T) {
	tests := []struct {
		start string
		end   string
		want  string
	}{
		{"09:00", "10:30", "1h 30m"},
		{"14:00", "14:45", "0h 45m"},
		{"10:00", "09:00", "0h 0m"},
		{"bogus", "10:00", "0h 0m"},
	}

	for _, tt := range tests {
		slot := ClassTimeTable{StartTime: tt.start, EndTime: tt.end}
		if got := slot.Duration(); got != tt.want {
			t.Errorf("Duration(%s-%s) = %q, want %q", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestTimetableDaysDisplay(t *testing.T) {
	slot := ClassTimeTable{Days: datatypes.NewJSONSlice([]string{"monday", "friday"})}

	display := slot.DaysDisplay()
	if len(display) != 2 || display[0] != "월요일 / Душанба" || display[1] != "금요일 / Жума" {
		t.Errorf("DaysDisplay() = %v", display)
	}

	ko := slot.DaysDisplayKo()
	if len(ko) != 2 || ko[0] != "월요일" {
		t.Errorf("DaysDisplayKo() = %v", ko)
	}

	uz := slot.DaysDisplayUz()
	if len(uz) != 2 || uz[1] != "Жума" {
		t.Errorf("DaysDisplayUz() = %v", uz)
	}

	unknown := ClassTimeTable{Days: datatypes.NewJSONSlice([]string{"someday"})}
	if got := unknown.DaysDisplay(); got[0] != "someday" {
		t.Errorf("unknown day should pass through, got %v", got)
	}
}

func TestClockTimeHelpers(t *testing.T) {
	if !ValidClockTime("23:59") || ValidClockTime("24:00") || ValidClockTime("9am") {
		t.Error("ValidClockTime misclassified an input")
	}
	if !ClockTimeAfter("09:00", "09:01") {
		t.Error("09:01 should be after 09:00")
	}
	if ClockTimeAfter("09:00", "09:00") {
		t.Error("equal times should not count as after")
	}
	if !ValidWeekday("sunday") || ValidWeekday("caturday") {
		t.Error("ValidWeekday misclassified an input")
	}
}

func TestRegistrationAndPaymentDisplays(t *testing.T) {
	reg := ClassStudentRegistration{State: 1}
	if got := reg.StateDisplay(); got != "Do" {
		t.Errorf("StateDisplay(1) = %q", got)
	}
	reg.State = 3
	if got := reg.StateDisplay(); got != "End" {
		t.Errorf("StateDisplay(3) = %q", got)
	}

	payment := ClassPayment{PaymentMonth: 2}
	if got := payment.PaymentMonthDisplay(); got != "Month 2" {
		t.Errorf("PaymentMonthDisplay() = %q", got)
	}
}
