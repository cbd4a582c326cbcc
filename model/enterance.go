package model

import (
	"fmt"
	"time"
)

// The data model spells "entrance" as "enterance" throughout; the API
// keeps the spelling for compatibility.

var enteranceKindDisplay = map[string]string{
	"language":   "Language",
	"collegue":   "Collegue",
	"university": "University",
	"graduate":   "Graduate",
}

var enteranceOrderDisplay = map[string]string{
	"1":      "1st",
	"2":      "2nd",
	"3":      "3rd",
	"4":      "4th",
	"spring": "Spring",
	"winter": "Winter",
}

var enteranceStateDisplay = map[string]string{
	"end":   "End",
	"now":   "Now",
	"after": "After",
}

// Enterance is an admission round at a university. State is set by
// operators and never derived from the from/to dates.
type Enterance struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UniversityID uint   `gorm:"not null;index" json:"university"`
	Years        int    `gorm:"not null" json:"years"`         // 2026..2030
	Kind         string `gorm:"size:50;not null" json:"kind"`  // language, collegue, university, graduate
	Order        string `gorm:"size:50;not null;column:order_no" json:"order"` // 1..4, spring, winter
	FromDate     Date   `gorm:"not null" json:"from_date"`
	ToDate       Date   `gorm:"not null" json:"to_date"`
	ContractNo   string `gorm:"size:100" json:"contract_no"`
	State        string `gorm:"size:50;not null" json:"state"` // end, now, after

	// Relationships
	University           University                     `gorm:"foreignKey:UniversityID" json:"-"`
	StudentRegistrations []EnteranceStudentRegistration `gorm:"foreignKey:EnteranceID;constraint:OnDelete:CASCADE" json:"-"`
	Payments             []EnterancePayment             `gorm:"foreignKey:EnteranceID;constraint:OnDelete:CASCADE" json:"-"`
	AttachedDocuments    []EnteranceDocument            `gorm:"foreignKey:EnteranceID;constraint:OnDelete:CASCADE" json:"-"`
}

func (e *Enterance) KindDisplay() string {
	return enteranceKindDisplay[e.Kind]
}

func (e *Enterance) OrderDisplay() string {
	return enteranceOrderDisplay[e.Order]
}

func (e *Enterance) StateDisplay() string {
	return enteranceStateDisplay[e.State]
}

// Info renders the short admission label shown on payment rows,
// e.g. "2026 - Language (Spring)".
func (e *Enterance) Info() string {
	return fmt.Sprintf("%d - %s (%s)", e.Years, e.KindDisplay(), e.OrderDisplay())
}

var enteranceRegistrationStateDisplay = map[int]string{
	1: "Go",
	2: "Pass",
	3: "NP",
}

// EnteranceStudentRegistration puts a student into an admission round.
// One row per (enterance, student).
type EnteranceStudentRegistration struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	EnteranceID uint   `gorm:"not null;uniqueIndex:idx_enterance_registration" json:"enterance"`
	StudentID   uint   `gorm:"not null;uniqueIndex:idx_enterance_registration" json:"student"`
	Date        Date   `gorm:"not null" json:"date"`
	Contract    string `gorm:"size:100" json:"contract"`
	Bonus       string `gorm:"size:100" json:"bonus"`
	State       int    `gorm:"not null" json:"state"` // 1 Go, 2 Pass, 3 NP
	Recommend   string `gorm:"size:100" json:"recommend"`

	// Relationships
	Enterance Enterance `gorm:"foreignKey:EnteranceID" json:"-"`
	Student   Student   `gorm:"foreignKey:StudentID" json:"-"`
}

func (r *EnteranceStudentRegistration) StateDisplay() string {
	return enteranceRegistrationStateDisplay[r.State]
}

// EnterancePayment is a consulting/admission payment for one round.
type EnterancePayment struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Date        Date    `gorm:"not null" json:"date"`
	Amount      float64 `gorm:"type:numeric(10,2);not null" json:"amount"`
	StudentID   uint    `gorm:"not null;index" json:"student"`
	EnteranceID uint    `gorm:"not null;index" json:"enterance"`

	// Relationships
	Student   Student   `gorm:"foreignKey:StudentID" json:"-"`
	Enterance Enterance `gorm:"foreignKey:EnteranceID" json:"-"`
}

// EnteranceDocument is a PDF attached to an admission round.
type EnteranceDocument struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	EnteranceID    uint      `gorm:"not null;index" json:"enterance_id"`
	DocumentNameKo string    `gorm:"size:200;not null" json:"document_name_ko"`
	DocumentNameUz string    `gorm:"size:200;not null" json:"document_name_uz"`
	File           string    `gorm:"size:500;not null" json:"file"`
	UploadedAt     time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	// Relationships
	Enterance Enterance `gorm:"foreignKey:EnteranceID" json:"-"`
}

func (d *EnteranceDocument) DocumentName() string {
	return Resolve(d.DocumentNameKo, d.DocumentNameUz)
}
