package model

import "time"

// Employee position options.
const (
	PositionTeacher  = "Teacher"
	PositionStaff    = "Staff"
	PositionManager  = "Manager"
	PositionDirector = "Director"
	PositionOther    = "Other"
)

// Employee status options.
const (
	StatusWork = "Work"
	StatusEnd  = "End"
	StatusRest = "Rest"
)

// Employee is a head-office worker. Creating one provisions a User in
// the upsight_staff role sharing the employee_id and password.
type Employee struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	NameKo    string `gorm:"size:100;not null" json:"name_ko"`
	NameUz    string `gorm:"size:100;not null" json:"name_uz"`
	BirthDate Date   `gorm:"not null" json:"birth_date"`
	Gender    string `gorm:"size:1;not null" json:"gender"` // M, F
	StartDate Date   `gorm:"not null" json:"start_date"`
	Telephone string `gorm:"size:20;not null" json:"telephone"`
	Address   string `gorm:"type:text;not null" json:"address"`
	Email     string `gorm:"not null" json:"email"`

	// Education background
	College    string `gorm:"size:200" json:"college"`
	University string `gorm:"size:200" json:"university"`
	Graduate   string `gorm:"size:200" json:"graduate"`

	// Employment
	Position string   `gorm:"size:50;not null" json:"position"` // Teacher, Staff, Manager, Director, Other
	Salary   *float64 `gorm:"type:numeric(10,2)" json:"salary"`
	Bonus    *float64 `gorm:"type:numeric(10,2)" json:"bonus"`
	Status   string   `gorm:"size:10;not null;default:'Work'" json:"status"` // Work, End, Rest
	Picture  string   `gorm:"size:500" json:"picture"`

	EmployeeID   string    `gorm:"size:50;uniqueIndex;not null" json:"employee_id"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	UserID       *uint     `gorm:"uniqueIndex" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	User              *User              `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	AttachedDocuments []EmployeeDocument `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"attached_documents,omitempty"`
}

func (e *Employee) Name() string {
	return Resolve(e.NameKo, e.NameUz)
}

// DisplayName is "name (employee_id)", ko-first.
func (e *Employee) DisplayName() string {
	return e.Name() + " (" + e.EmployeeID + ")"
}

func (e *Employee) GenderDisplay() string {
	return genderDisplay[e.Gender]
}

// EmployeeDocument is a PDF attached to an employee's record.
type EmployeeDocument struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	EmployeeID     uint      `gorm:"not null;index" json:"employee_id"`
	DocumentNameKo string    `gorm:"size:200;not null" json:"document_name_ko"`
	DocumentNameUz string    `gorm:"size:200;not null" json:"document_name_uz"`
	File           string    `gorm:"size:500;not null" json:"file"`
	UploadedAt     time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	// Relationships
	Employee Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (d *EmployeeDocument) DocumentName() string {
	return Resolve(d.DocumentNameKo, d.DocumentNameUz)
}
