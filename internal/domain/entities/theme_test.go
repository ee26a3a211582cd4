package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseThemeID(t *testing.T) {
	tests := []struct {
		input  string
		want   ThemeID
		wantOK bool
	}{
		{"default", ThemeDefault, true},
		{"Professional", ThemeProfessional, true},
		{"  MODERN ", ThemeModern, true},
		{"minimal", ThemeMinimal, true},
		{"corporate", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseThemeID(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestThemeID_String(t *testing.T) {
	assert.Equal(t, "professional", ThemeProfessional.String())
	assert.Equal(t, "theme(9)", ThemeID(9).String())
}

func TestRGB(t *testing.T) {
	c := RGB{R: 0x4F, G: 0x81, B: 0xBD}
	assert.Equal(t, "4F81BD", c.Hex())

	parsed, err := ParseRGB("#4f81bd")
	require.NoError(t, err)
	assert.Equal(t, c, parsed)

	_, err = ParseRGB("12345")
	assert.Error(t, err)
	_, err = ParseRGB("zzzzzz")
	assert.Error(t, err)
}

func TestMarginProfile_Margins(t *testing.T) {
	std := MarginStandard.Margins()
	assert.Equal(t, Margins{Top: 457200, Bottom: 457200, Left: 685800, Right: 685800}, std)

	wide := MarginWide.Margins()
	assert.Greater(t, wide.Left, std.Left)
	assert.Equal(t, "wide", MarginWide.String())
}

func TestTheme_Validate(t *testing.T) {
	valid := Theme{ID: ThemeDefault, FontFamily: "Calibri", TitleFont: "Calibri", CodeFont: "Consolas", TitleSize: 4400, BodySize: 2000, CodeSize: 1600}
	assert.NoError(t, valid.Validate())

	noFont := valid
	noFont.CodeFont = ""
	assert.Error(t, noFont.Validate())

	badSize := valid
	badSize.BodySize = 0
	assert.Error(t, badSize.Validate())

	badID := valid
	badID.ID = 42
	assert.Error(t, badID.Validate())
}
