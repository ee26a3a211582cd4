package ooxml

import (
	"strings"
	"unicode/utf8"
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape replaces the five XML-reserved characters. It is used for text
// content and attribute values alike.
func Escape(s string) string {
	return escaper.Replace(stripInvalid(s))
}

// stripInvalid drops characters XML 1.0 cannot carry, such as most C0
// controls. Invalid UTF-8 sequences become U+FFFD.
func stripInvalid(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "\uFFFD")
	}

	clean := true
	for _, r := range s {
		if !validXMLRune(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var sb strings.Builder
	for _, r := range s {
		if validXMLRune(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func validXMLRune(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}
