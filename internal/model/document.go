package model

import (
	"slices"
	"time"
)

// Document is a downloadable file (forms, reports, plans) listed on the documents page.
type Document struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description *string   `json:"description" gorm:"type:text"`
	FileURL     string    `json:"fileUrl" gorm:"size:1024;not null"`
	FileType    string    `json:"fileType" gorm:"size:100;not null"`
	FileSize    int64     `json:"fileSize" gorm:"not null"`
	Category    string    `json:"category" gorm:"size:100;not null;index"`
	Tags        []string  `json:"tags" gorm:"type:text;serializer:json"`
	UploadedBy  uint      `json:"uploadedBy" gorm:"not null"` // users.id, not enforced
	UploadedAt  time.Time `json:"uploadedAt" gorm:"not null;index"`
	IsPublic    bool      `json:"isPublic" gorm:"not null;index"`
	Language    string    `json:"language" gorm:"size:16;not null;index"`
}

// TableName overrides the table name.
func (Document) TableName() string {
	return "documents"
}

// Clone returns a copy that does not share the tags slice.
func (d Document) Clone() Document {
	d.Tags = slices.Clone(d.Tags)
	return d
}

// DocumentInput is the insert shape accepted by POST /api/documents.
type DocumentInput struct {
	Title       string   `json:"title" form:"title" validate:"required,max=255"`
	Description *string  `json:"description" form:"description"`
	FileURL     string   `json:"fileUrl" form:"fileUrl" validate:"required,max=1024"`
	FileType    string   `json:"fileType" form:"fileType" validate:"required,max=100"`
	FileSize    *int64   `json:"fileSize" form:"fileSize" validate:"required,min=0"`
	Category    string   `json:"category" form:"category" validate:"required,max=100"`
	Tags        []string `json:"tags" form:"tags" validate:"omitempty,dive,min=1,max=50"`
	UploadedBy  uint     `json:"uploadedBy" form:"uploadedBy" validate:"required"`
	IsPublic    *bool    `json:"isPublic" form:"isPublic"`
	Language    string   `json:"language" form:"language" validate:"omitempty,lang"`
}

// ToDocument builds the record to store. uploadedAt is server-managed.
func (in DocumentInput) ToDocument() *Document {
	d := &Document{
		Title:       in.Title,
		Description: in.Description,
		FileURL:     in.FileURL,
		FileType:    in.FileType,
		Category:    in.Category,
		Tags:        slices.Clone(in.Tags),
		UploadedBy:  in.UploadedBy,
		IsPublic:    true,
		Language:    orDefaultLanguage(in.Language),
	}
	setIf(&d.FileSize, in.FileSize)
	setIf(&d.IsPublic, in.IsPublic)
	return d
}

// DocumentPatch is a partial update; nil fields are left untouched.
type DocumentPatch struct {
	Title       *string   `json:"title" validate:"omitnil,min=1,max=255"`
	Description *string   `json:"description"`
	FileURL     *string   `json:"fileUrl" validate:"omitnil,min=1,max=1024"`
	FileType    *string   `json:"fileType" validate:"omitnil,min=1,max=100"`
	FileSize    *int64    `json:"fileSize" validate:"omitnil,min=0"`
	Category    *string   `json:"category" validate:"omitnil,min=1,max=100"`
	Tags        *[]string `json:"tags"`
	UploadedBy  *uint     `json:"uploadedBy" validate:"omitnil,min=1"`
	IsPublic    *bool     `json:"isPublic"`
	Language    *string   `json:"language" validate:"omitnil,lang"`
}

// Apply merges the patch into d.
func (p DocumentPatch) Apply(d *Document) {
	setIf(&d.Title, p.Title)
	if p.Description != nil {
		d.Description = p.Description
	}
	setIf(&d.FileURL, p.FileURL)
	setIf(&d.FileType, p.FileType)
	setIf(&d.FileSize, p.FileSize)
	setIf(&d.Category, p.Category)
	if p.Tags != nil {
		d.Tags = slices.Clone(*p.Tags)
	}
	setIf(&d.UploadedBy, p.UploadedBy)
	setIf(&d.IsPublic, p.IsPublic)
	setIf(&d.Language, p.Language)
}
