package model

import "time"

// Board content rows are all owned by a University; access is scoped
// per staff role. News, Notice and Translation share the same shape,
// Information additionally owns documents.

// News is a university news post.
type News struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TitleUz      string    `gorm:"size:200;not null" json:"title_uz"`
	TitleKo      string    `gorm:"size:200;not null" json:"title_ko"`
	ContentUz    string    `gorm:"type:text" json:"content_uz"`
	ContentKo    string    `gorm:"type:text" json:"content_ko"`
	Image        string    `gorm:"size:500" json:"image"`
	Date         time.Time `gorm:"autoCreateTime" json:"date"`
	UniversityID uint      `gorm:"not null;index" json:"university"`

	// Relationships
	University University `gorm:"foreignKey:UniversityID" json:"-"`
}

func (n *News) Title() string   { return Resolve(n.TitleKo, n.TitleUz) }
func (n *News) Content() string { return Resolve(n.ContentKo, n.ContentUz) }

// TableName keeps GORM from pluralising "news".
func (News) TableName() string { return "news" }

// Notice is a university notice post.
type Notice struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TitleUz      string    `gorm:"size:200;not null" json:"title_uz"`
	TitleKo      string    `gorm:"size:200;not null" json:"title_ko"`
	ContentUz    string    `gorm:"type:text" json:"content_uz"`
	ContentKo    string    `gorm:"type:text" json:"content_ko"`
	Image        string    `gorm:"size:500" json:"image"`
	Date         time.Time `gorm:"autoCreateTime" json:"date"`
	UniversityID uint      `gorm:"not null;index" json:"university"`

	// Relationships
	University University `gorm:"foreignKey:UniversityID" json:"-"`
}

func (n *Notice) Title() string   { return Resolve(n.TitleKo, n.TitleUz) }
func (n *Notice) Content() string { return Resolve(n.ContentKo, n.ContentUz) }

// Translation is a translated announcement. Unlike News it carries no
// posting date.
type Translation struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	TitleUz      string `gorm:"size:200;not null" json:"title_uz"`
	TitleKo      string `gorm:"size:200;not null" json:"title_ko"`
	ContentUz    string `gorm:"type:text" json:"content_uz"`
	ContentKo    string `gorm:"type:text" json:"content_ko"`
	Image        string `gorm:"size:500" json:"image"`
	UniversityID uint   `gorm:"not null;index" json:"university"`

	// Relationships
	University University `gorm:"foreignKey:UniversityID" json:"-"`
}

func (t *Translation) Title() string   { return Resolve(t.TitleKo, t.TitleUz) }
func (t *Translation) Content() string { return Resolve(t.ContentKo, t.ContentUz) }

// Information is a university information post with attached documents.
type Information struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TitleUz      string    `gorm:"size:200;not null" json:"title_uz"`
	TitleKo      string    `gorm:"size:200;not null" json:"title_ko"`
	ContentUz    string    `gorm:"type:text" json:"content_uz"`
	ContentKo    string    `gorm:"type:text" json:"content_ko"`
	Image        string    `gorm:"size:500" json:"image"`
	Date         time.Time `gorm:"autoCreateTime" json:"date"`
	UniversityID uint      `gorm:"not null;index" json:"university"`

	// Relationships
	University University            `gorm:"foreignKey:UniversityID" json:"-"`
	Documents  []InformationDocument `gorm:"foreignKey:InformationID;constraint:OnDelete:CASCADE" json:"documents,omitempty"`
}

func (i *Information) Title() string   { return Resolve(i.TitleKo, i.TitleUz) }
func (i *Information) Content() string { return Resolve(i.ContentKo, i.ContentUz) }

// TableName keeps GORM from pluralising "information".
func (Information) TableName() string { return "information" }

// InformationDocument is a file attached to an Information post. Scope
// checks follow the parent post's university.
type InformationDocument struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	InformationID uint   `gorm:"not null;index" json:"information"`
	File          string `gorm:"size:500;not null" json:"file"`
	DocumentUz    string `gorm:"size:200;not null" json:"document_uz"`
	DocumentKo    string `gorm:"size:200;not null" json:"document_ko"`

	// Relationships
	Information Information `gorm:"foreignKey:InformationID" json:"-"`
}

func (d *InformationDocument) DocumentName() string {
	return Resolve(d.DocumentKo, d.DocumentUz)
}
