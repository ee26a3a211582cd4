package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ThemeID identifies one of the built-in presentation templates
type ThemeID int

const (
	ThemeDefault ThemeID = iota
	ThemeProfessional
	ThemeModern
	ThemeMinimal
)

// DefaultThemeName is used when no template is requested
const DefaultThemeName = "default"

var themeNames = map[ThemeID]string{
	ThemeDefault:      "default",
	ThemeProfessional: "professional",
	ThemeModern:       "modern",
	ThemeMinimal:      "minimal",
}

// String returns the canonical lowercase template name
func (id ThemeID) String() string {
	if name, ok := themeNames[id]; ok {
		return name
	}
	return fmt.Sprintf("theme(%d)", int(id))
}

// ParseThemeID maps a template name to its id. Matching is case-insensitive
// and ignores surrounding whitespace.
func ParseThemeID(name string) (ThemeID, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for id, n := range themeNames {
		if n == key {
			return id, true
		}
	}
	return 0, false
}

// RGB is a 24-bit sRGB color
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as six uppercase hex digits, the DrawingML srgbClr form
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// ParseRGB parses six hex digits, with or without a leading '#'
func ParseRGB(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid color %q: want 6 hex digits", s)
	}
	var c RGB
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

// MarginProfile selects the slide margin set
type MarginProfile int

const (
	MarginStandard MarginProfile = iota
	MarginWide
)

// String returns the profile name
func (m MarginProfile) String() string {
	if m == MarginWide {
		return "wide"
	}
	return "standard"
}

// Margins are slide margins in EMU
type Margins struct {
	Top    int64 `json:"top"`
	Bottom int64 `json:"bottom"`
	Left   int64 `json:"left"`
	Right  int64 `json:"right"`
}

// Margins returns the EMU margins for the profile
func (m MarginProfile) Margins() Margins {
	if m == MarginWide {
		return Margins{Top: 914400, Bottom: 914400, Left: 1371600, Right: 1371600}
	}
	return Margins{Top: 457200, Bottom: 457200, Left: 685800, Right: 685800}
}

// Theme represents a resolved presentation template
type Theme struct {
	// ID is the template identifier
	ID ThemeID `json:"-"`

	// Name is the human-readable template name
	Name string `json:"name"`

	// Description provides details about the template
	Description string `json:"description"`

	// FontFamily is the body font
	FontFamily string `json:"font_family"`

	// TitleFont is the font used for titles
	TitleFont string `json:"title_font"`

	// CodeFont is the monospace font used for code
	CodeFont string `json:"code_font"`

	Background    RGB `json:"-"`
	TextPrimary   RGB `json:"-"`
	TextSecondary RGB `json:"-"`
	AccentColor   RGB `json:"-"`
	Accent2       RGB `json:"-"`
	Accent3       RGB `json:"-"`

	// MarginProfile selects the slide margins
	MarginProfile MarginProfile `json:"-"`

	// Font sizes in hundredths of a point
	TitleSize int `json:"title_size"`
	BodySize  int `json:"body_size"`
	CodeSize  int `json:"code_size"`
}

// Validate ensures the theme has valid required fields
func (t *Theme) Validate() error {
	if _, ok := themeNames[t.ID]; !ok {
		return fmt.Errorf("unknown theme id %d", int(t.ID))
	}

	if t.FontFamily == "" || t.TitleFont == "" || t.CodeFont == "" {
		return errors.New("theme fonts are required")
	}

	if t.TitleSize <= 0 || t.BodySize <= 0 || t.CodeSize <= 0 {
		return errors.New("theme font sizes must be positive")
	}

	return nil
}

// Margins returns the EMU margins of the theme's profile
func (t *Theme) Margins() Margins {
	return t.MarginProfile.Margins()
}
