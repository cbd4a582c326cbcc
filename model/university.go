package model

// University grade options.
const (
	GradeBest      = "best"
	GradeExcellent = "excellent"
	GradeAverage   = "average"
	GradeLow       = "low"
)

var universityGradeDisplay = map[string]string{
	GradeBest:      "Best",
	GradeExcellent: "Excellent",
	GradeAverage:   "Average",
	GradeLow:       "Low",
}

var universityYearsDisplay = map[string]string{
	"2": "2 years",
	"4": "4 years",
}

var contractDisplay = map[string]string{
	"yes": "YES",
	"no":  "NO",
}

// University is a partner institution. It owns managers, entrances and
// all board content rows.
type University struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	NameKo           string `gorm:"size:100;not null" json:"name_ko"`
	NameUz           string `gorm:"size:100;not null" json:"name_uz"`
	Grade            string `gorm:"size:50" json:"grade"` // best, excellent, average, low
	Years            string `gorm:"size:50" json:"years"` // 2, 4
	RepresentativeUz string `gorm:"size:100" json:"representative_uz"`
	RepresentativeKo string `gorm:"size:100" json:"representative_ko"`
	PositionUz       string `gorm:"size:100" json:"position_uz"`
	PositionKo       string `gorm:"size:100" json:"position_ko"`
	Phone            string `gorm:"size:20" json:"phone"`
	Telephone        string `gorm:"size:20" json:"telephone"`
	Address          string `gorm:"type:text" json:"address"`
	Email            string `gorm:"uniqueIndex;not null" json:"email"`
	Contract         string `gorm:"size:100" json:"contract"` // yes, no
	AgreementDate    Date   `json:"agreement_date"`
	Logo             string `gorm:"size:500" json:"logo"`

	// Relationships
	Managers  []UniversityManager `gorm:"foreignKey:UniversityID;constraint:OnDelete:CASCADE" json:"managers,omitempty"`
	Entrances []Enterance         `gorm:"foreignKey:UniversityID;constraint:OnDelete:CASCADE" json:"-"`
}

// DisplayName renders the bilingual institution label used on payment
// rows and entrance listings.
func (u *University) DisplayName() string {
	return u.NameKo + " / " + u.NameUz
}

func (u *University) GradeDisplay() string {
	return universityGradeDisplay[u.Grade]
}

func (u *University) YearsDisplay() string {
	return universityYearsDisplay[u.Years]
}

func (u *University) ContractDisplay() string {
	return contractDisplay[u.Contract]
}

// RepresentativeName joins both representative sides, trimming the
// separator when one side is missing.
func (u *University) RepresentativeName() string {
	return joinBilingualLabel(u.RepresentativeKo, u.RepresentativeUz)
}

// UniversityManager links a scoped staff account to its university.
// Creating one provisions a User in the university_staff role.
type UniversityManager struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UniversityID uint   `gorm:"not null;index" json:"university_id"`
	NameUz       string `gorm:"size:100;not null" json:"name_uz"`
	NameKo       string `gorm:"size:100;not null" json:"name_ko"`
	ManagerID    int    `gorm:"uniqueIndex;not null" json:"manager_id"`
	PhoneNumber  string `gorm:"size:20" json:"phone_number"`
	PasswordHash string `gorm:"size:128;not null" json:"-"`
	UserID       *uint  `gorm:"uniqueIndex" json:"-"`

	// Relationships
	University University `gorm:"foreignKey:UniversityID" json:"-"`
	User       *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName keeps the table singular-free like the rest of the schema.
func (UniversityManager) TableName() string {
	return "university_managers"
}

func (m *UniversityManager) Name() string {
	return Resolve(m.NameKo, m.NameUz)
}

func joinBilingualLabel(ko, uz string) string {
	switch {
	case ko != "" && uz != "":
		return ko + " / " + uz
	case ko != "":
		return ko
	default:
		return uz
	}
}
