package router

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"govsite/internal/model"
)

func failedFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected validation errors, got %v", err)
	out := map[string]string{}
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

func TestValidator_ContactUsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&model.ContactInput{Name: "Jane", Subject: "s", Message: "m"})
	fields := failedFields(t, err)
	assert.Equal(t, "required", fields["email"])

	err = v.Validate(&model.ContactInput{Name: "Jane", Email: "nope", Subject: "s", Message: "m"})
	assert.Equal(t, "email", failedFields(t, err)["email"])

	assert.NoError(t, v.Validate(&model.ContactInput{Name: "Jane", Email: "jane@example.com", Subject: "s", Message: "m"}))
}

func TestValidator_SlugAndLang(t *testing.T) {
	v := NewValidator()
	base := model.NewsInput{Title: "t", Content: "c", Category: "c", Author: 1}

	ok := base
	ok.Slug = "road-closure"
	ok.Language = "ar"
	assert.NoError(t, v.Validate(&ok))

	bad := base
	bad.Slug = "Road Closure"
	bad.Language = "not a language!"
	fields := failedFields(t, v.Validate(&bad))
	assert.Equal(t, "slug", fields["slug"])
	assert.Equal(t, "lang", fields["language"])
}

func TestValidator_GeoJSON(t *testing.T) {
	v := NewValidator()

	ok := model.MapDataInput{Title: "Offices", LayerType: "offices", GeoJSON: datatypes.JSON(`{"type":"FeatureCollection","features":[]}`)}
	assert.NoError(t, v.Validate(&ok))

	missingType := ok
	missingType.GeoJSON = datatypes.JSON(`{"features":[]}`)
	assert.Equal(t, "geojson", failedFields(t, v.Validate(&missingType))["geojson"])

	array := ok
	array.GeoJSON = datatypes.JSON(`[1,2]`)
	assert.Equal(t, "geojson", failedFields(t, v.Validate(&array))["geojson"])

	missing := ok
	missing.GeoJSON = nil
	assert.Equal(t, "required", failedFields(t, v.Validate(&missing))["geojson"])
}

func TestValidator_PatchSkipsNil(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(&model.NewsPatch{}))

	empty := ""
	fields := failedFields(t, v.Validate(&model.NewsPatch{Title: &empty}))
	assert.Equal(t, "min", fields["title"])
}
