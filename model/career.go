package model

var careerGenderDisplay = map[string]string{
	"male":   "Male",
	"female": "Female",
}

// Career is a job-seeker tracked by the counselling desk.
type Career struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	NameUz      string `gorm:"size:100;not null" json:"name_uz"`
	NameKo      string `gorm:"size:100;not null" json:"name_ko"`
	BirthDate   Date   `gorm:"not null" json:"birth_date"`
	Gender      string `gorm:"size:10;not null" json:"gender"` // male, female
	PhoneNumber string `gorm:"size:20" json:"phone_number"`
	Telephone   string `gorm:"size:20" json:"telephone"`

	// Relationships
	History  []CareerHistory `gorm:"foreignKey:CareerID;constraint:OnDelete:CASCADE" json:"history,omitempty"`
	Counsels []CareerCounsel `gorm:"foreignKey:CareerID;constraint:OnDelete:CASCADE" json:"counsels,omitempty"`
}

func (c *Career) Name() string {
	return Resolve(c.NameKo, c.NameUz)
}

func (c *Career) GenderDisplay() string {
	return careerGenderDisplay[c.Gender]
}

// CareerHistory is one past job of a career record.
type CareerHistory struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CareerID    uint   `gorm:"not null;index" json:"career_id"`
	WorkTitleUz string `gorm:"size:100;not null" json:"work_title_uz"`
	WorkTitleKo string `gorm:"size:100;not null" json:"work_title_ko"`
	StartDate   Date   `gorm:"not null" json:"start_date"`
	EndDate     Date   `json:"end_date"`
	RegionUz    string `gorm:"size:100;not null" json:"region_uz"`
	RegionKo    string `gorm:"size:100;not null" json:"region_ko"`
	Visa        string `gorm:"size:100" json:"visa"`

	// Relationships
	Career Career `gorm:"foreignKey:CareerID" json:"-"`
}

func (h *CareerHistory) WorkTitle() string {
	return Resolve(h.WorkTitleKo, h.WorkTitleUz)
}

func (h *CareerHistory) Region() string {
	return Resolve(h.RegionKo, h.RegionUz)
}

// TableName avoids GORM pluralising "history" to "careerhistories".
func (CareerHistory) TableName() string {
	return "career_history"
}

// CareerCounsel is one counselling session note.
type CareerCounsel struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	CareerID  uint   `gorm:"not null;index" json:"career_id"`
	Date      Date   `gorm:"not null" json:"date"`
	DetailsUz string `gorm:"type:text" json:"details_uz"`
	DetailsKo string `gorm:"type:text" json:"details_ko"`

	// Relationships
	Career Career `gorm:"foreignKey:CareerID" json:"-"`
}

func (c *CareerCounsel) Details() string {
	return Resolve(c.DetailsKo, c.DetailsUz)
}
