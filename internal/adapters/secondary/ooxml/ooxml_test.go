package ooxml

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`a & b`, `a &amp; b`},
		{`<tag>`, `&lt;tag&gt;`},
		{`say "hi"`, `say &quot;hi&quot;`},
		{`it's`, `it&apos;s`},
		{`&amp;`, `&amp;amp;`},
		{"bell\x07char", "bellchar"},
		{"tab\tnewline\n", "tab\tnewline\n"},
		{"plain ünïcödé", "plain ünïcödé"},
		{"bad \xff\xfe byte", "bad \uFFFD byte"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.in))
		})
	}
}

func TestBuilder_WellFormed(t *testing.T) {
	b := NewBuilder(true)
	b.Open("p:sld", A("xmlns:p", NamespaceP), A("xmlns:a", NamespaceA)).
		Empty("a:off", AInt("x", 10), AInt("y", -5)).
		Element("a:t", `<&>"'`).
		Empty("a:rPr", ABool("b", true), ABool("i", false), A("descr", `x"y`)).
		Close("p:sld")

	out := b.String()
	assert.True(t, strings.HasPrefix(out, Header))
	assert.Contains(t, out, `<a:t>&lt;&amp;&gt;&quot;&apos;</a:t>`)
	assert.Contains(t, out, `<a:off x="10" y="-5"/>`)
	assert.Contains(t, out, `b="1" i="0" descr="x&quot;y"`)

	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
			break
		}
	}
}

func TestAllocator(t *testing.T) {
	a := NewAllocator(256)
	assert.Equal(t, int64(256), a.Peek())
	assert.Equal(t, int64(256), a.Next())
	assert.Equal(t, int64(257), a.Next())
	assert.Equal(t, int64(258), a.Peek())

	// scopes are independent
	b := NewAllocator(256)
	assert.Equal(t, int64(256), b.Next())

	r := NewRelIDs(1)
	assert.Equal(t, "rId1", r.Next())
	assert.Equal(t, "rId2", r.Next())
	assert.Equal(t, "rId3", r.Next())
}
