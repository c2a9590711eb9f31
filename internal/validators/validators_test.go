package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Bia Souza", want: "bia-souza"},
		{in: "  José  da Silva ", want: "jose-da-silva"},
		{in: "Studio 3 | Unhas & Cia", want: "studio-3-unhas-cia"},
		{in: "ÇÃO!", want: "cao"},
		{in: "---", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestIsSlugValid(t *testing.T) {
	assert.True(t, IsSlugValid("bia-souza"))
	assert.False(t, IsSlugValid("Bia Souza"))
	assert.False(t, IsSlugValid(""))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "11987654321", NormalizePhone("(11) 98765-4321"))
	assert.True(t, IsPhoneValid("+55 (11) 98765-4321"))
	assert.False(t, IsPhoneValid("1234"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "bia@mail.com", NormalizeEmail("  Bia@Mail.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestIsEmailDomainValid_Malformed(t *testing.T) {
	for _, email := range []string{"", "bia", "bia@", "@mail.com"} {
		assert.False(t, IsEmailDomainValid(email), email)
	}
}
