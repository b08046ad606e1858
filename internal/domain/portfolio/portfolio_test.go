package portfolio

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/media"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
)

func TestNormalizeSlug(t *testing.T) {
	_, err := NormalizeSlug("My Cool Slug!")
	assert.Equal(t, 400, httperr.StatusOf(err))

	slug, err := NormalizeSlug("my-cool-slug")
	require.NoError(t, err)
	assert.Equal(t, "my-cool-slug", slug)

	slug, err = NormalizeSlug("  Studio-42 ")
	require.NoError(t, err)
	assert.Equal(t, "studio-42", slug)

	for _, bad := range []string{"", "-lead", "trail-", "double--dash", "under_score"} {
		_, err := NormalizeSlug(bad)
		assert.Error(t, err, bad)
	}
}

func TestValidateSocials(t *testing.T) {
	s, err := ValidateSocials(models.Socials{
		Email:    " me@studio.io ",
		WhatsApp: "+62 812-3456-789",
		GitHub:   "https://github.com/me",
	})
	require.NoError(t, err)
	assert.Equal(t, "me@studio.io", s.Email)

	_, err = ValidateSocials(models.Socials{WhatsApp: "https://wa.me/628123"})
	assert.NoError(t, err)

	_, err = ValidateSocials(models.Socials{Email: "nope"})
	assert.EqualError(t, err, "Email must be a valid email address")

	_, err = ValidateSocials(models.Socials{WhatsApp: "call me"})
	assert.EqualError(t, err, "WhatsApp must be a valid phone number or URL")

	// first failing key wins
	_, err = ValidateSocials(models.Socials{Instagram: "instagram.com/me", Website: "ftp://x"})
	assert.EqualError(t, err, "Instagram must be a valid http(s) URL")
}

func TestSanitizeLinks(t *testing.T) {
	links, err := SanitizeLinks([]models.PortfolioLink{
		{Name: " Shop ", URL: " https://shop.example.com "},
		{},
	})
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "Shop", links[0].Name)

	_, err = SanitizeLinks([]models.PortfolioLink{{Name: "x", URL: "javascript:alert(1)"}})
	assert.Equal(t, 400, httperr.StatusOf(err))

	big := "data:image/png;base64," + strings.Repeat("A", (media.MaxLinkIconBytes+1024)*4/3)
	_, err = SanitizeLinks([]models.PortfolioLink{{Name: "x", URL: "https://x.io", Icon: big}})
	assert.EqualError(t, err, "Link 1 icon must be smaller than 220KB")
}

func TestValidateCover(t *testing.T) {
	ok := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(make([]byte, 2048))
	assert.NoError(t, ValidateCover(ok))
	assert.Error(t, ValidateCover("data:text/html;base64,AAAA"))
}
