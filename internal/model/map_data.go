package model

import (
	"bytes"
	"time"

	"gorm.io/datatypes"
)

// MapData is one layer of the interactive map. GeoJSON and Style are stored
// verbatim; the API never looks inside them beyond validation.
type MapData struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Description *string        `json:"description" gorm:"type:text"`
	LayerType   string         `json:"layerType" gorm:"size:100;not null;index"`
	GeoJSON     datatypes.JSON `json:"geojson" gorm:"column:geojson;not null"`
	Style       datatypes.JSON `json:"style" gorm:"column:style"`
	IsActive    bool           `json:"isActive" gorm:"not null;index"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// TableName overrides the table name.
func (MapData) TableName() string {
	return "map_data"
}

// Clone returns a copy that does not share the JSON buffers.
func (m MapData) Clone() MapData {
	m.GeoJSON = cloneJSON(m.GeoJSON)
	m.Style = cloneJSON(m.Style)
	return m
}

// MapDataInput is the insert shape accepted by POST /api/map-data.
type MapDataInput struct {
	Title       string         `json:"title" validate:"required,max=255"`
	Description *string        `json:"description"`
	LayerType   string         `json:"layerType" validate:"required,max=100"`
	GeoJSON     datatypes.JSON `json:"geojson" validate:"required,geojson"`
	Style       datatypes.JSON `json:"style"`
	IsActive    *bool          `json:"isActive"`
}

// ToMapData builds the record to store. Timestamps are server-managed.
func (in MapDataInput) ToMapData() *MapData {
	m := &MapData{
		Title:       in.Title,
		Description: in.Description,
		LayerType:   in.LayerType,
		GeoJSON:     cloneJSON(in.GeoJSON),
		Style:       nullableJSON(in.Style),
		IsActive:    true,
	}
	setIf(&m.IsActive, in.IsActive)
	return m
}

// MapDataPatch is a partial update; nil fields are left untouched.
type MapDataPatch struct {
	Title       *string         `json:"title" validate:"omitnil,min=1,max=255"`
	Description *string         `json:"description"`
	LayerType   *string         `json:"layerType" validate:"omitnil,min=1,max=100"`
	GeoJSON     *datatypes.JSON `json:"geojson" validate:"omitnil,geojson"`
	Style       *datatypes.JSON `json:"style"`
	IsActive    *bool           `json:"isActive"`
}

// Apply merges the patch into m. The caller refreshes UpdatedAt.
func (p MapDataPatch) Apply(m *MapData) {
	setIf(&m.Title, p.Title)
	if p.Description != nil {
		m.Description = p.Description
	}
	setIf(&m.LayerType, p.LayerType)
	if p.GeoJSON != nil {
		m.GeoJSON = cloneJSON(*p.GeoJSON)
	}
	if p.Style != nil {
		m.Style = nullableJSON(*p.Style)
	}
	setIf(&m.IsActive, p.IsActive)
}

func cloneJSON(j datatypes.JSON) datatypes.JSON {
	if j == nil {
		return nil
	}
	return bytes.Clone(j)
}

// nullableJSON maps an explicit JSON null to a SQL NULL.
func nullableJSON(j datatypes.JSON) datatypes.JSON {
	if len(j) == 0 || bytes.Equal(bytes.TrimSpace(j), []byte("null")) {
		return nil
	}
	return cloneJSON(j)
}
