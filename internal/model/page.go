package model

import "time"

// Page is a CMS-managed static page (mission, leadership, history, ...).
// Slugs are unique per language, so the same slug can exist once per translation.
type Page struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	Title           string     `json:"title" gorm:"size:255;not null"`
	Slug            string     `json:"slug" gorm:"size:255;not null;uniqueIndex:idx_pages_slug_language"`
	Content         string     `json:"content" gorm:"type:text;not null"` // sanitised HTML
	MetaTitle       *string    `json:"metaTitle" gorm:"size:255"`
	MetaDescription *string    `json:"metaDescription" gorm:"type:text"`
	IsPublished     bool       `json:"isPublished" gorm:"not null;index"`
	PublishedAt     *time.Time `json:"publishedAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	Language        string     `json:"language" gorm:"size:16;not null;uniqueIndex:idx_pages_slug_language"`
}

// TableName overrides the table name.
func (Page) TableName() string {
	return "pages"
}

// PageInput is the insert shape accepted by POST /api/pages.
type PageInput struct {
	Title           string     `json:"title" validate:"required,max=255"`
	Slug            string     `json:"slug" validate:"omitempty,max=255,slug"`
	Content         string     `json:"content" validate:"required"`
	MetaTitle       *string    `json:"metaTitle" validate:"omitnil,max=255"`
	MetaDescription *string    `json:"metaDescription"`
	IsPublished     *bool      `json:"isPublished"`
	PublishedAt     *time.Time `json:"publishedAt"`
	Language        string     `json:"language" validate:"omitempty,lang"`
}

// ToPage builds the record to store. updatedAt is server-managed.
func (in PageInput) ToPage() *Page {
	p := &Page{
		Title:           in.Title,
		Slug:            in.Slug,
		Content:         in.Content,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
		PublishedAt:     in.PublishedAt,
		Language:        orDefaultLanguage(in.Language),
	}
	setIf(&p.IsPublished, in.IsPublished)
	return p
}

// PagePatch is a partial update; nil fields are left untouched.
type PagePatch struct {
	Title           *string    `json:"title" validate:"omitnil,min=1,max=255"`
	Slug            *string    `json:"slug" validate:"omitnil,max=255,slug"`
	Content         *string    `json:"content" validate:"omitnil,min=1"`
	MetaTitle       *string    `json:"metaTitle" validate:"omitnil,max=255"`
	MetaDescription *string    `json:"metaDescription"`
	IsPublished     *bool      `json:"isPublished"`
	PublishedAt     *time.Time `json:"publishedAt"`
	Language        *string    `json:"language" validate:"omitnil,lang"`
}

// Apply merges the patch into p. The caller refreshes UpdatedAt.
func (pp PagePatch) Apply(p *Page) {
	setIf(&p.Title, pp.Title)
	setIf(&p.Slug, pp.Slug)
	setIf(&p.Content, pp.Content)
	if pp.MetaTitle != nil {
		p.MetaTitle = pp.MetaTitle
	}
	if pp.MetaDescription != nil {
		p.MetaDescription = pp.MetaDescription
	}
	setIf(&p.IsPublished, pp.IsPublished)
	if pp.PublishedAt != nil {
		p.PublishedAt = pp.PublishedAt
	}
	setIf(&p.Language, pp.Language)
}
