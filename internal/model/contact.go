package model

import "time"

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"size:255;not null"`
	Subject   string    `json:"subject" gorm:"size:255;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Phone     *string   `json:"phone" gorm:"size:50"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	IsRead    bool      `json:"isRead" gorm:"not null;index"`
}

// TableName overrides the table name.
func (Contact) TableName() string {
	return "contacts"
}

// ContactInput is the body of POST /api/contact.
type ContactInput struct {
	Name    string  `json:"name" validate:"required,max=255"`
	Email   string  `json:"email" validate:"required,email,max=255"`
	Subject string  `json:"subject" validate:"required,max=255"`
	Message string  `json:"message" validate:"required"`
	Phone   *string `json:"phone" validate:"omitnil,max=50"`
}

// ToContact builds the record to store. New submissions are always unread.
func (in ContactInput) ToContact() *Contact {
	c := &Contact{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
		IsRead:  false,
	}
	// The form posts "" when the optional phone field is left blank.
	if in.Phone != nil && *in.Phone != "" {
		c.Phone = in.Phone
	}
	return c
}

// ContactPatch is used by admin triage.
type ContactPatch struct {
	Name    *string `json:"name" validate:"omitnil,min=1,max=255"`
	Email   *string `json:"email" validate:"omitnil,email,max=255"`
	Subject *string `json:"subject" validate:"omitnil,min=1,max=255"`
	Message *string `json:"message" validate:"omitnil,min=1"`
	Phone   *string `json:"phone" validate:"omitnil,max=50"`
	IsRead  *bool   `json:"isRead"`
}

// Apply merges the patch into c.
func (p ContactPatch) Apply(c *Contact) {
	setIf(&c.Name, p.Name)
	setIf(&c.Email, p.Email)
	setIf(&c.Subject, p.Subject)
	setIf(&c.Message, p.Message)
	if p.Phone != nil {
		c.Phone = p.Phone
	}
	setIf(&c.IsRead, p.IsRead)
}
