package model

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Class level and lecture options.
var classLevelDisplay = map[string]string{
	"low":          "Low",
	"intermediate": "Intermediate",
	"high":         "High",
}

var classLectureDisplay = map[string]string{
	"topik":  "TOPIK",
	"aboard": "Aboard",
	"nurse":  "Nurse",
	"it":     "IT",
	"others": "Others",
}

// Class is a language/training course run by two teachers.
type Class struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	TeacherFirstID  uint    `gorm:"not null;index" json:"teacher_first"`
	TeacherSecondID uint    `gorm:"not null;index" json:"teacher_second"`
	Level           string  `gorm:"size:100;not null" json:"level"`   // low, intermediate, high
	Lecture         string  `gorm:"size:100;not null" json:"lecture"` // topik, aboard, nurse, it, others
	Group           int     `json:"group"`                            // 1..10
	OpeningDate     Date    `gorm:"not null" json:"opening_date"`
	Period          int     `gorm:"not null" json:"period"` // months
	TuitionFee      float64 `gorm:"type:numeric(10,2);not null" json:"tuition_fee"`
	TextbookFirst   string  `gorm:"size:200" json:"textbook_first"`
	TextbookSecond  string  `gorm:"size:200" json:"textbook_second"`
	Classroom       string  `gorm:"size:100" json:"classroom"`

	// Relationships
	TeacherFirst         Employee                   `gorm:"foreignKey:TeacherFirstID" json:"-"`
	TeacherSecond        Employee                   `gorm:"foreignKey:TeacherSecondID" json:"-"`
	Timetables           []ClassTimeTable           `gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE" json:"timetables,omitempty"`
	StudentRegistrations []ClassStudentRegistration `gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE" json:"-"`
	Payments             []ClassPayment             `gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Class) LevelDisplay() string {
	return classLevelDisplay[c.Level]
}

func (c *Class) LectureDisplay() string {
	return classLectureDisplay[c.Lecture]
}

// Info renders the short class label shown on registrations and
// payment rows, e.g. "Group 3 - Low TOPIK".
func (c *Class) Info() string {
	return fmt.Sprintf("Group %d - %s %s", c.Group, c.LevelDisplay(), c.LectureDisplay())
}

// CurrentMonth counts how far into its period the class is, 1-based
// from the opening date. Before opening it is 0; it is not capped at
// the period so overrun shows up in the numbers.
func (c *Class) CurrentMonth() int {
	return c.CurrentMonthAt(time.Now())
}

func (c *Class) CurrentMonthAt(now time.Time) int {
	if c.OpeningDate.IsZero() || now.Before(c.OpeningDate.Time) {
		return 0
	}
	months := (now.Year()-c.OpeningDate.Year())*12 + int(now.Month()) - int(c.OpeningDate.Month())
	if now.Day() < c.OpeningDate.Day() {
		months--
	}
	return months + 1
}

// Weekday values accepted in timetable day lists.
var Weekdays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

var weekdayKo = map[string]string{
	"monday":    "월요일",
	"tuesday":   "화요일",
	"wednesday": "수요일",
	"thursday":  "목요일",
	"friday":    "금요일",
	"saturday":  "토요일",
	"sunday":    "일요일",
}

var weekdayUz = map[string]string{
	"monday":    "Душанба",
	"tuesday":   "Сешанба",
	"wednesday": "Чоршанба",
	"thursday":  "Пайшанба",
	"friday":    "Жума",
	"saturday":  "Шанба",
	"sunday":    "Якшанба",
}

// ValidWeekday reports whether s is one of monday..sunday.
func ValidWeekday(s string) bool {
	_, ok := weekdayKo[s]
	return ok
}

// ClassTimeTable is a weekly slot: a set of weekdays plus a start and
// end time ("HH:MM"). Days is stored as a JSON array.
type ClassTimeTable struct {
	ID        uint                        `gorm:"primaryKey" json:"id"`
	ClassID   uint                        `gorm:"not null;index" json:"class_id"`
	Days      datatypes.JSONSlice[string] `json:"days"`
	StartTime string                      `gorm:"size:5;not null" json:"start_time"` // HH:MM
	EndTime   string                      `gorm:"size:5;not null" json:"end_time"`   // HH:MM
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`

	// Relationships
	Class Class `gorm:"foreignKey:ClassID" json:"-"`
}

// DaysDisplay renders the bilingual "월요일 / Душанба" labels.
func (t *ClassTimeTable) DaysDisplay() []string {
	out := make([]string, 0, len(t.Days))
	for _, day := range t.Days {
		ko, ok := weekdayKo[day]
		if !ok {
			out = append(out, day)
			continue
		}
		out = append(out, ko+" / "+weekdayUz[day])
	}
	return out
}

func (t *ClassTimeTable) DaysDisplayKo() []string {
	return mapDays(t.Days, weekdayKo)
}

func (t *ClassTimeTable) DaysDisplayUz() []string {
	return mapDays(t.Days, weekdayUz)
}

func mapDays(days []string, names map[string]string) []string {
	out := make([]string, 0, len(days))
	for _, day := range days {
		if name, ok := names[day]; ok {
			out = append(out, name)
		} else {
			out = append(out, day)
		}
	}
	return out
}

// Duration renders the slot length as "XhYm", e.g. 09:00-10:30 is
// "1h 30m". Unparseable times collapse to "0h 0m".
func (t *ClassTimeTable) Duration() string {
	start, err1 := parseClockTime(t.StartTime)
	end, err2 := parseClockTime(t.EndTime)
	if err1 != nil || err2 != nil || end <= start {
		return "0h 0m"
	}
	minutes := end - start
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// parseClockTime turns "HH:MM" into minutes since midnight.
func parseClockTime(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ValidClockTime reports whether s parses as "HH:MM".
func ValidClockTime(s string) bool {
	_, err := parseClockTime(s)
	return err == nil
}

// ClockTimeAfter reports whether end is strictly after start. Both must
// already be valid clock times.
func ClockTimeAfter(start, end string) bool {
	s, err1 := parseClockTime(start)
	e, err2 := parseClockTime(end)
	return err1 == nil && err2 == nil && e > s
}

// Registration state values shared by class and entrance registrations.
var classRegistrationStateDisplay = map[int]string{
	1: "Do",
	2: "Undo",
	3: "End",
}

// ClassStudentRegistration enrolls a student into a class. One row per
// (student, class).
type ClassStudentRegistration struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	StudentID uint `gorm:"not null;uniqueIndex:idx_class_registration" json:"student"`
	ClassID   uint `gorm:"not null;uniqueIndex:idx_class_registration" json:"class_id"`
	State     int  `gorm:"not null;default:1" json:"state"` // 1 Do, 2 Undo, 3 End

	// Relationships
	Student Student `gorm:"foreignKey:StudentID" json:"-"`
	Class   Class   `gorm:"foreignKey:ClassID" json:"-"`
}

func (r *ClassStudentRegistration) StateDisplay() string {
	return classRegistrationStateDisplay[r.State]
}

// ClassPayment is a monthly tuition payment against a class.
type ClassPayment struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Date         Date    `gorm:"not null" json:"date"`
	Amount       float64 `gorm:"type:numeric(10,2);not null" json:"amount"`
	StudentID    uint    `gorm:"not null;index" json:"student"`
	ClassID      uint    `gorm:"not null;index" json:"class_id"`
	PaymentMonth int     `gorm:"not null" json:"payment_month"` // 1-based month within the class period

	// Relationships
	Student Student `gorm:"foreignKey:StudentID" json:"-"`
	Class   Class   `gorm:"foreignKey:ClassID" json:"-"`
}

// PaymentMonthDisplay renders "Month N".
func (p *ClassPayment) PaymentMonthDisplay() string {
	return fmt.Sprintf("Month %d", p.PaymentMonth)
}
