package parser

import (
	"testing"
)

func BenchmarkGoldmarkExtractor_Extract(b *testing.B) {
	extractor := NewGoldmarkExtractor()

	// Typical presentation content
	content := []byte(`---
title: Benchmark Presentation
author: Test Author
template: default
---

# Introduction

Welcome to this benchmark presentation with **bold** and *italic* text.

## Main Content

Here's a list:
- Item 1
- Item 2
  - Nested item

And a code block:
` + "```go\nfunc main() {\n    fmt.Println(\"Hello, World!\")\n}\n```" + `

### Complex Slide

| Header 1 | Header 2 |
|----------|----------|
| Cell 1   | Cell 2   |
| Cell 3   |

> This is a blockquote with some content

1. Ordered item 1
2. Ordered item 2

## Conclusion

Thank you for watching!`)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		doc := extractor.Extract(content)
		n := 0
		for range doc.Blocks {
			n++
		}
		if n == 0 {
			b.Fatal("no blocks extracted")
		}
	}
}
