package ooxml

import (
	"strconv"
	"strings"
)

// Attr is one attribute of an element
type Attr struct {
	Name  string
	Value string
}

// A builds a string attribute
func A(name, value string) Attr {
	return Attr{Name: name, Value: value}
}

// AInt builds an integer attribute
func AInt(name string, value int64) Attr {
	return Attr{Name: name, Value: strconv.FormatInt(value, 10)}
}

// ABool builds a "1"/"0" attribute
func ABool(name string, value bool) Attr {
	if value {
		return Attr{Name: name, Value: "1"}
	}
	return Attr{Name: name, Value: "0"}
}

// Builder writes XML with escaped text and attribute values. Element names
// are written verbatim so prefixes stay exactly as given.
type Builder struct {
	sb strings.Builder
}

// NewBuilder returns a builder, optionally starting with the XML declaration
func NewBuilder(withHeader bool) *Builder {
	b := &Builder{}
	if withHeader {
		b.sb.WriteString(Header)
	}
	return b
}

func (b *Builder) writeStart(name string, attrs []Attr) {
	b.sb.WriteByte('<')
	b.sb.WriteString(name)
	for _, a := range attrs {
		b.sb.WriteByte(' ')
		b.sb.WriteString(a.Name)
		b.sb.WriteString(`="`)
		b.sb.WriteString(Escape(a.Value))
		b.sb.WriteByte('"')
	}
}

// Open writes a start tag
func (b *Builder) Open(name string, attrs ...Attr) *Builder {
	b.writeStart(name, attrs)
	b.sb.WriteByte('>')
	return b
}

// Empty writes a self-closing element
func (b *Builder) Empty(name string, attrs ...Attr) *Builder {
	b.writeStart(name, attrs)
	b.sb.WriteString("/>")
	return b
}

// Close writes an end tag
func (b *Builder) Close(name string) *Builder {
	b.sb.WriteString("</")
	b.sb.WriteString(name)
	b.sb.WriteByte('>')
	return b
}

// Text writes escaped character data
func (b *Builder) Text(s string) *Builder {
	b.sb.WriteString(Escape(s))
	return b
}

// Element writes an element holding escaped text
func (b *Builder) Element(name, text string, attrs ...Attr) *Builder {
	return b.Open(name, attrs...).Text(text).Close(name)
}

// Raw writes pre-serialized XML
func (b *Builder) Raw(fragment []byte) *Builder {
	b.sb.Write(fragment)
	return b
}

// Bytes returns the serialized document
func (b *Builder) Bytes() []byte {
	return []byte(b.sb.String())
}

// String returns the serialized document
func (b *Builder) String() string {
	return b.sb.String()
}
