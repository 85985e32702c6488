package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Business License Application", "business-license-application"},
		{"  New Online Services   Portal ", "new-online-services-portal"},
		{"Café & Résumé", "cafe-resume"},
		{"snake_case_title", "snake-case-title"},
		{"2024 Annual Report!", "2024-annual-report"},
		{"---", ""},
		{"خدمات", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("about"))
	assert.True(t, IsValidSlug("business-license-2024"))
	assert.False(t, IsValidSlug(""))
	assert.False(t, IsValidSlug("About"))
	assert.False(t, IsValidSlug("-about"))
	assert.False(t, IsValidSlug("about--us"))
	assert.False(t, IsValidSlug("about us"))
}

func TestSanitizeHTML(t *testing.T) {
	in := `<h2>Mission</h2><p onclick="x()">Serve <a href="https://gov.example">citizens</a></p><script>alert(1)</script>`
	out := SanitizeHTML(in)

	assert.Contains(t, out, "<h2>Mission</h2>")
	assert.Contains(t, out, `href="https://gov.example"`)
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "<script>")
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "Hello world", StripTags("<b>Hello</b> <i>world</i>"))
}
