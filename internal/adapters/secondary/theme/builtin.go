package theme

import (
	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

// builtinThemes is the compiled template table, one entry per ThemeID
var builtinThemes = map[entities.ThemeID]entities.Theme{
	entities.ThemeDefault: {
		ID:            entities.ThemeDefault,
		Name:          "Default",
		Description:   "Classic white deck with Calibri and blue accents",
		FontFamily:    "Calibri",
		TitleFont:     "Calibri",
		CodeFont:      "Consolas",
		Background:    entities.RGB{R: 0xFF, G: 0xFF, B: 0xFF},
		TextPrimary:   entities.RGB{R: 0x00, G: 0x00, B: 0x00},
		TextSecondary: entities.RGB{R: 0x66, G: 0x66, B: 0x66},
		AccentColor:   entities.RGB{R: 0x4F, G: 0x81, B: 0xBD},
		Accent2:       entities.RGB{R: 0xF7, G: 0x96, B: 0x46},
		Accent3:       entities.RGB{R: 0x9B, G: 0xBB, B: 0x59},
		MarginProfile: entities.MarginStandard,
		TitleSize:     4400,
		BodySize:      2400,
		CodeSize:      1600,
	},
	entities.ThemeProfessional: {
		ID:            entities.ThemeProfessional,
		Name:          "Professional",
		Description:   "Corporate deck with Segoe UI and dark text",
		FontFamily:    "Segoe UI",
		TitleFont:     "Segoe UI",
		CodeFont:      "Consolas",
		Background:    entities.RGB{R: 0xFF, G: 0xFF, B: 0xFF},
		TextPrimary:   entities.RGB{R: 0x1F, G: 0x1F, B: 0x1F},
		TextSecondary: entities.RGB{R: 0x75, G: 0x75, B: 0x75},
		AccentColor:   entities.RGB{R: 0x2E, G: 0x75, B: 0xB6},
		Accent2:       entities.RGB{R: 0xC6, G: 0x59, B: 0x11},
		Accent3:       entities.RGB{R: 0x70, G: 0xAD, B: 0x47},
		MarginProfile: entities.MarginStandard,
		TitleSize:     4000,
		BodySize:      2200,
		CodeSize:      1600,
	},
	entities.ThemeModern: {
		ID:            entities.ThemeModern,
		Name:          "Modern",
		Description:   "Light grey deck with Roboto and Fira Code",
		FontFamily:    "Roboto",
		TitleFont:     "Roboto",
		CodeFont:      "Fira Code",
		Background:    entities.RGB{R: 0xF8, G: 0xF9, B: 0xFA},
		TextPrimary:   entities.RGB{R: 0x21, G: 0x25, B: 0x29},
		TextSecondary: entities.RGB{R: 0x6C, G: 0x75, B: 0x7D},
		AccentColor:   entities.RGB{R: 0x00, G: 0x7B, B: 0xFF},
		Accent2:       entities.RGB{R: 0xFD, G: 0x7E, B: 0x14},
		Accent3:       entities.RGB{R: 0x28, G: 0xA7, B: 0x45},
		MarginProfile: entities.MarginStandard,
		TitleSize:     4400,
		BodySize:      2400,
		CodeSize:      1600,
	},
	entities.ThemeMinimal: {
		ID:            entities.ThemeMinimal,
		Name:          "Minimal",
		Description:   "Sparse deck with Helvetica and wide margins",
		FontFamily:    "Helvetica",
		TitleFont:     "Helvetica",
		CodeFont:      "Monaco",
		Background:    entities.RGB{R: 0xFF, G: 0xFF, B: 0xFF},
		TextPrimary:   entities.RGB{R: 0x2C, G: 0x2C, B: 0x2C},
		TextSecondary: entities.RGB{R: 0x8C, G: 0x8C, B: 0x8C},
		AccentColor:   entities.RGB{R: 0x00, G: 0x7A, B: 0xCC},
		Accent2:       entities.RGB{R: 0xFF, G: 0x6B, B: 0x35},
		Accent3:       entities.RGB{R: 0x32, G: 0xCD, B: 0x32},
		MarginProfile: entities.MarginWide,
		TitleSize:     3600,
		BodySize:      2000,
		CodeSize:      1400,
	},
}
