package model

var organTypeDisplay = map[string]string{
	"language": "Language",
	"aboard":   "Aboard",
	"industry": "Industry",
	"public":   "Public",
	"hospital": "Hospital",
	"other":    "Other",
}

var organNationalityDisplay = map[string]string{
	"uzbek":  "Uzbek",
	"korean": "Korean",
	"other":  "Other",
}

// Organ is a partner organisation (employer, agency, hospital, ...).
type Organ struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	NameUz           string `gorm:"size:100;not null" json:"name_uz"`
	NameKo           string `gorm:"size:100;not null" json:"name_ko"`
	Type             string `gorm:"size:100;not null" json:"type"`        // language, aboard, industry, public, hospital, other
	Nationality      string `gorm:"size:100;not null" json:"nationality"` // uzbek, korean, other
	RepresentativeUz string `gorm:"size:100" json:"representative_uz"`
	RepresentativeKo string `gorm:"size:100" json:"representative_ko"`
	PositionUz       string `gorm:"size:100" json:"position_uz"`
	PositionKo       string `gorm:"size:100" json:"position_ko"`
	Phone            string `gorm:"size:20" json:"phone"`
	Telephone        string `gorm:"size:20" json:"telephone"`
	Address          string `gorm:"type:text" json:"address"`
	Email            string `gorm:"uniqueIndex;not null" json:"email"`
	ContractDate     Date   `json:"contract_date"`
	AgreementDate    Date   `json:"agreement_date"`
	Logo             string `gorm:"size:500" json:"logo"`

	// Relationships
	Managers []OrganManager `gorm:"foreignKey:OrganID;constraint:OnDelete:CASCADE" json:"managers,omitempty"`
}

func (o *Organ) TypeDisplay() string {
	return organTypeDisplay[o.Type]
}

func (o *Organ) NationalityDisplay() string {
	return organNationalityDisplay[o.Nationality]
}

func (o *Organ) RepresentativeName() string {
	return joinBilingualLabel(o.RepresentativeKo, o.RepresentativeUz)
}

// OrganManager links a scoped staff account to its organ. Creating one
// provisions a User in the organ_staff role.
type OrganManager struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	OrganID      uint   `gorm:"not null;index" json:"organ_id"`
	NameUz       string `gorm:"size:100;not null" json:"name_uz"`
	NameKo       string `gorm:"size:100;not null" json:"name_ko"`
	ManagerID    int    `gorm:"uniqueIndex;not null" json:"manager_id"`
	PhoneNumber  string `gorm:"size:20" json:"phone_number"`
	PasswordHash string `gorm:"size:128;not null" json:"-"`
	UserID       *uint  `gorm:"uniqueIndex" json:"-"`

	// Relationships
	Organ Organ `gorm:"foreignKey:OrganID" json:"-"`
	User  *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName keeps the plural consistent with the rest of the schema.
func (OrganManager) TableName() string {
	return "organ_managers"
}

func (m *OrganManager) Name() string {
	return Resolve(m.NameKo, m.NameUz)
}
