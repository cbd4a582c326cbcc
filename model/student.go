package model

import "time"

var genderDisplay = map[string]string{
	"M": "Male",
	"F": "Female",
}

var guardianRelationshipDisplay = map[string]string{
	"F": "Father",
	"M": "Mother",
}

// Student holds personal data, education background and guardian
// contacts. Students authenticate with student_id but have no portal
// role; staff manage their records.
type Student struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	NameKo    string `gorm:"size:100;not null" json:"name_ko"`
	NameUz    string `gorm:"size:100;not null" json:"name_uz"`
	BirthDate Date   `gorm:"not null" json:"birth_date"`
	Gender    string `gorm:"size:1;not null" json:"gender"` // M, F
	Telephone string `gorm:"size:20;not null" json:"telephone"`
	Address   string `gorm:"type:text;not null" json:"address"`
	Email     string `gorm:"not null" json:"email"`
	Picture   string `gorm:"size:500" json:"picture"`

	// Education background
	HighSchool     string `gorm:"size:200" json:"high_school"`
	College        string `gorm:"size:200" json:"college"`
	University     string `gorm:"size:200" json:"university"`
	Master         string `gorm:"size:200" json:"master"`
	OtherEducation string `gorm:"size:200" json:"other_education"`

	// Guardian
	GuardianNameKo        string `gorm:"size:100;not null" json:"guardian_name_ko"`
	GuardianNameUz        string `gorm:"size:100;not null" json:"guardian_name_uz"`
	GuardianTelephone     string `gorm:"size:20;not null" json:"guardian_telephone"`
	GuardianRelationship  string `gorm:"size:1;not null" json:"guardian_relationship"` // F, M

	StudentID    string    `gorm:"size:50;uniqueIndex;not null" json:"student_id"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	AttachedDocuments      []AttachedDocument             `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"attached_documents,omitempty"`
	EnteranceRegistrations []EnteranceStudentRegistration `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	EnterancePayments      []EnterancePayment             `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	ClassRegistrations     []ClassStudentRegistration     `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	ClassPayments          []ClassPayment                 `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
}

// DisplayName is "name (student_id)", ko-first.
func (s *Student) DisplayName() string {
	return Resolve(s.NameKo, s.NameUz) + " (" + s.StudentID + ")"
}

func (s *Student) Name() string {
	return Resolve(s.NameKo, s.NameUz)
}

func (s *Student) GuardianName() string {
	return Resolve(s.GuardianNameKo, s.GuardianNameUz)
}

func (s *Student) GenderDisplay() string {
	return genderDisplay[s.Gender]
}

func (s *Student) GuardianRelationshipDisplay() string {
	return guardianRelationshipDisplay[s.GuardianRelationship]
}

// AttachedDocument is a PDF attached to a student's record.
type AttachedDocument struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StudentID      uint      `gorm:"not null;index" json:"student_id"`
	DocumentNameKo string    `gorm:"size:200;not null" json:"document_name_ko"`
	DocumentNameUz string    `gorm:"size:200;not null" json:"document_name_uz"`
	File           string    `gorm:"size:500;not null" json:"file"`
	UploadedAt     time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	// Relationships
	Student Student `gorm:"foreignKey:StudentID" json:"-"`
}

func (d *AttachedDocument) DocumentName() string {
	return Resolve(d.DocumentNameKo, d.DocumentNameUz)
}
