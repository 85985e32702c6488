package model

import "time"

// DefaultLanguage is used whenever a record or a list query omits its language.
const DefaultLanguage = "en"

// News represents an announcement or article published on the news pages.
type News struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Slug        string    `json:"slug" gorm:"size:255;not null;uniqueIndex"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	Excerpt     *string   `json:"excerpt" gorm:"type:text"`
	ImageURL    *string   `json:"imageUrl" gorm:"size:1024"`
	Category    string    `json:"category" gorm:"size:100;not null;index"`
	PublishDate time.Time `json:"publishDate" gorm:"not null;index"`
	IsPublished bool      `json:"isPublished" gorm:"not null;index"`
	Author      uint      `json:"author" gorm:"not null"` // users.id, not enforced
	Language    string    `json:"language" gorm:"size:16;not null;index"`
}

// TableName pins the table name; "news" is uncountable for the inflector anyway.
func (News) TableName() string {
	return "news"
}

// NewsInput is the insert shape accepted by POST /api/news.
type NewsInput struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Slug        string     `json:"slug" validate:"omitempty,max=255,slug"`
	Content     string     `json:"content" validate:"required"`
	Excerpt     *string    `json:"excerpt"`
	ImageURL    *string    `json:"imageUrl" validate:"omitempty,max=1024"`
	Category    string     `json:"category" validate:"required,max=100"`
	PublishDate *time.Time `json:"publishDate"`
	IsPublished *bool      `json:"isPublished"`
	Author      uint       `json:"author" validate:"required"`
	Language    string     `json:"language" validate:"omitempty,lang"`
}

// ToNews builds the record to store, applying column defaults.
func (in NewsInput) ToNews(now time.Time) *News {
	n := &News{
		Title:       in.Title,
		Slug:        in.Slug,
		Content:     in.Content,
		Excerpt:     in.Excerpt,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		PublishDate: now,
		Author:      in.Author,
		Language:    orDefaultLanguage(in.Language),
	}
	if in.PublishDate != nil {
		n.PublishDate = *in.PublishDate
	}
	if in.IsPublished != nil {
		n.IsPublished = *in.IsPublished
	}
	return n
}

// NewsPatch is a partial update; nil fields are left untouched.
type NewsPatch struct {
	Title       *string    `json:"title" validate:"omitnil,min=1,max=255"`
	Slug        *string    `json:"slug" validate:"omitnil,max=255,slug"`
	Content     *string    `json:"content" validate:"omitnil,min=1"`
	Excerpt     *string    `json:"excerpt"`
	ImageURL    *string    `json:"imageUrl" validate:"omitnil,max=1024"`
	Category    *string    `json:"category" validate:"omitnil,min=1,max=100"`
	PublishDate *time.Time `json:"publishDate"`
	IsPublished *bool      `json:"isPublished"`
	Author      *uint      `json:"author" validate:"omitnil,min=1"`
	Language    *string    `json:"language" validate:"omitnil,lang"`
}

// Apply merges the patch into n.
func (p NewsPatch) Apply(n *News) {
	setIf(&n.Title, p.Title)
	setIf(&n.Slug, p.Slug)
	setIf(&n.Content, p.Content)
	if p.Excerpt != nil {
		n.Excerpt = p.Excerpt
	}
	if p.ImageURL != nil {
		n.ImageURL = p.ImageURL
	}
	setIf(&n.Category, p.Category)
	setIf(&n.PublishDate, p.PublishDate)
	setIf(&n.IsPublished, p.IsPublished)
	setIf(&n.Author, p.Author)
	setIf(&n.Language, p.Language)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func orDefaultLanguage(lang string) string {
	if lang == "" {
		return DefaultLanguage
	}
	return lang
}
