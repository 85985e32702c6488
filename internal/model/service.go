package model

// Service is an entry in the agency's catalog of public services.
type Service struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"size:255;not null"`
	Slug        string  `json:"slug" gorm:"size:255;not null;uniqueIndex"`
	Description string  `json:"description" gorm:"type:text;not null"`
	Content     string  `json:"content" gorm:"type:text;not null"`
	Icon        *string `json:"icon" gorm:"size:100"`
	ImageURL    *string `json:"imageUrl" gorm:"size:1024"`
	Order       int     `json:"order" gorm:"column:sort_order;not null;index"`
	IsActive    bool    `json:"isActive" gorm:"not null;index"`
	Language    string  `json:"language" gorm:"size:16;not null;index"`
}

// TableName overrides the table name.
func (Service) TableName() string {
	return "services"
}

// ServiceInput is the insert shape accepted by POST /api/services.
type ServiceInput struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Slug        string  `json:"slug" validate:"omitempty,max=255,slug"`
	Description string  `json:"description" validate:"required"`
	Content     string  `json:"content" validate:"required"`
	Icon        *string `json:"icon" validate:"omitnil,max=100"`
	ImageURL    *string `json:"imageUrl" validate:"omitnil,max=1024"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
	Language    string  `json:"language" validate:"omitempty,lang"`
}

// ToService builds the record to store. Services are active unless told otherwise.
func (in ServiceInput) ToService() *Service {
	s := &Service{
		Title:       in.Title,
		Slug:        in.Slug,
		Description: in.Description,
		Content:     in.Content,
		Icon:        in.Icon,
		ImageURL:    in.ImageURL,
		IsActive:    true,
		Language:    orDefaultLanguage(in.Language),
	}
	setIf(&s.Order, in.Order)
	setIf(&s.IsActive, in.IsActive)
	return s
}

// ServicePatch is a partial update; nil fields are left untouched.
type ServicePatch struct {
	Title       *string `json:"title" validate:"omitnil,min=1,max=255"`
	Slug        *string `json:"slug" validate:"omitnil,max=255,slug"`
	Description *string `json:"description" validate:"omitnil,min=1"`
	Content     *string `json:"content" validate:"omitnil,min=1"`
	Icon        *string `json:"icon" validate:"omitnil,max=100"`
	ImageURL    *string `json:"imageUrl" validate:"omitnil,max=1024"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
	Language    *string `json:"language" validate:"omitnil,lang"`
}

// Apply merges the patch into s.
func (p ServicePatch) Apply(s *Service) {
	setIf(&s.Title, p.Title)
	setIf(&s.Slug, p.Slug)
	setIf(&s.Description, p.Description)
	setIf(&s.Content, p.Content)
	if p.Icon != nil {
		s.Icon = p.Icon
	}
	if p.ImageURL != nil {
		s.ImageURL = p.ImageURL
	}
	setIf(&s.Order, p.Order)
	setIf(&s.IsActive, p.IsActive)
	setIf(&s.Language, p.Language)
}
