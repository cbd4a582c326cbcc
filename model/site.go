package model

import "time"

// Site content is the public, free-standing marketing surface. No
// university ownership, read-only over the API.

// Carousel is a single front-page carousel image.
type Carousel struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Image string `gorm:"size:500;not null" json:"image"`
}

// SiteNews is a public news post, separate from the scoped board News.
type SiteNews struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TitleKo    string    `gorm:"size:100" json:"title_ko"`
	TitleUz    string    `gorm:"size:100" json:"title_uz"`
	Image      string    `gorm:"size:500;not null" json:"image"`
	ContentKo  string    `gorm:"type:text" json:"content_ko"`
	ContentUz  string    `gorm:"type:text" json:"content_uz"`
	File       string    `gorm:"size:500" json:"file"`
	DatePosted time.Time `gorm:"autoCreateTime" json:"date_posted"`
}

func (n *SiteNews) Title(language string) string {
	return PickLanguage(n.TitleKo, n.TitleUz, language)
}

func (n *SiteNews) Content(language string) string {
	return PickLanguage(n.ContentKo, n.ContentUz, language)
}

// TableName separates the public news table from the board one.
func (SiteNews) TableName() string { return "site_news" }

// Person is a staff member shown on the site, with work experiences.
type Person struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	FullNameUz string `gorm:"size:50" json:"full_name_uz"`
	FullNameKo string `gorm:"size:50" json:"full_name_ko"`
	PositionUz string `gorm:"size:50;not null" json:"position_uz"`
	PositionKo string `gorm:"size:50;not null" json:"position_ko"`
	Image      string `gorm:"size:500;not null" json:"image"`

	// Relationships
	Experiences []Experience `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"experiences,omitempty"`
}

func (p *Person) FullName(language string) string {
	return PickLanguage(p.FullNameKo, p.FullNameUz, language)
}

func (p *Person) Position(language string) string {
	return PickLanguage(p.PositionKo, p.PositionUz, language)
}

// Experience is one line of a person's background.
type Experience struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	PersonID     uint   `gorm:"index" json:"person_id"`
	ExperienceKo string `gorm:"size:1024" json:"experience_ko"`
	ExperienceUz string `gorm:"size:1024" json:"experience_uz"`

	// Relationships
	Person Person `gorm:"foreignKey:PersonID" json:"-"`
}

func (e *Experience) Text(language string) string {
	return PickLanguage(e.ExperienceKo, e.ExperienceUz, language)
}

// Gallery is a titled photo collection.
type Gallery struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	TitleKo string `gorm:"size:100;not null" json:"title_ko"`
	TitleUz string `gorm:"size:100;not null" json:"title_uz"`
	Image   string `gorm:"size:500;not null" json:"image"`

	// Relationships
	Items []GalleryItem `gorm:"foreignKey:GalleryID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (g *Gallery) Title(language string) string {
	return PickLanguage(g.TitleKo, g.TitleUz, language)
}

// TableName keeps GORM from producing "galleries" vs schema drift.
func (Gallery) TableName() string { return "galleries" }

// GalleryItem is one captioned photo inside a gallery.
type GalleryItem struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	GalleryID     uint   `gorm:"index" json:"gallery_id"`
	DescriptionKo string `gorm:"type:text" json:"description_ko"`
	DescriptionUz string `gorm:"type:text" json:"description_uz"`
	Image         string `gorm:"size:500;not null" json:"image"`

	// Relationships
	Gallery Gallery `gorm:"foreignKey:GalleryID" json:"-"`
}

func (i *GalleryItem) Description(language string) string {
	return PickLanguage(i.DescriptionKo, i.DescriptionUz, language)
}

// AboutUs is a single contact/intro card.
type AboutUs struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Fullname    string `gorm:"size:100" json:"fullname"`
	PhoneNumber string `gorm:"size:100" json:"phone_number"`
	Content     string `gorm:"type:text" json:"content"`
}

// TableName keeps GORM from pluralising "aboutus".
func (AboutUs) TableName() string { return "about_us" }

// Feedback is a testimonial shown on the site.
type Feedback struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Image         string `gorm:"size:500;not null" json:"image"`
	FullnameUz    string `gorm:"size:100" json:"fullname_uz"`
	FullnameKo    string `gorm:"size:100" json:"fullname_ko"`
	DescriptionUz string `gorm:"type:text" json:"description_uz"`
	DescriptionKo string `gorm:"type:text" json:"description_ko"`
}

func (f *Feedback) Fullname(language string) string {
	return PickLanguage(f.FullnameKo, f.FullnameUz, language)
}

func (f *Feedback) Description(language string) string {
	return PickLanguage(f.DescriptionKo, f.DescriptionUz, language)
}

// TableName keeps GORM from pluralising "feedback".
func (Feedback) TableName() string { return "feedback" }

// Report carries the three headline counters on the landing page.
type Report struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	TotalCourses int  `gorm:"default:0" json:"umumiy_oquv"`
	AllStudents  int  `gorm:"default:0" json:"jami_oquv"`
	Teachers     int  `gorm:"default:0" json:"oqituvchi"`
}
