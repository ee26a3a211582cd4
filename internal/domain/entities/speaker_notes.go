package entities

import "strings"

// HasNotes returns true if the slide carries speaker notes
func (s *Slide) HasNotes() bool {
	return strings.TrimSpace(s.Notes) != ""
}

// AppendNotes adds a notes section; sections are separated by a blank line
func (s *Slide) AppendNotes(text string) {
	s.Notes = JoinNotes(s.Notes, text)
}

// NotesParagraphs splits the notes into the paragraphs written to the notes page
func (s *Slide) NotesParagraphs() []string {
	if !s.HasNotes() {
		return nil
	}
	lines := strings.Split(strings.TrimSpace(s.Notes), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return lines
}

// JoinNotes concatenates two notes sections, skipping empty ones
func JoinNotes(existing, more string) string {
	existing = strings.TrimSpace(existing)
	more = strings.TrimSpace(more)
	switch {
	case existing == "":
		return more
	case more == "":
		return existing
	default:
		return existing + "\n\n" + more
	}
}
