package client

import (
	"encoding/json"
	"time"
)

// Service is an entry of the public service catalog.
type Service struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Content     string  `json:"content"`
	Icon        *string `json:"icon"`
	ImageURL    *string `json:"imageUrl"`
	Order       int     `json:"order"`
	IsActive    bool    `json:"isActive"`
	Language    string  `json:"language"`
}

// News is a published announcement or article.
type News struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Content     string    `json:"content"`
	Excerpt     *string   `json:"excerpt"`
	ImageURL    *string   `json:"imageUrl"`
	Category    string    `json:"category"`
	PublishDate time.Time `json:"publishDate"`
	IsPublished bool      `json:"isPublished"`
	Author      uint      `json:"author"`
	Language    string    `json:"language"`
}

// Document is a downloadable public file.
type Document struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	FileURL     string    `json:"fileUrl"`
	FileType    string    `json:"fileType"`
	FileSize    int64     `json:"fileSize"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	UploadedBy  uint      `json:"uploadedBy"`
	UploadedAt  time.Time `json:"uploadedAt"`
	IsPublic    bool      `json:"isPublic"`
	Language    string    `json:"language"`
}

// MapData is one layer of the interactive map. GeoJSON and Style are left
// undecoded.
type MapData struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	LayerType   string          `json:"layerType"`
	GeoJSON     json.RawMessage `json:"geojson"`
	Style       json.RawMessage `json:"style"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Page is a published static page. Content is sanitised HTML.
type Page struct {
	ID              uint       `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Content         string     `json:"content"`
	MetaTitle       *string    `json:"metaTitle"`
	MetaDescription *string    `json:"metaDescription"`
	IsPublished     bool       `json:"isPublished"`
	PublishedAt     *time.Time `json:"publishedAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	Language        string     `json:"language"`
}

// ContactInput is the body of a contact form submission.
type ContactInput struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Subject string  `json:"subject"`
	Message string  `json:"message"`
	Phone   *string `json:"phone,omitempty"`
}
