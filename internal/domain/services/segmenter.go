package services

import (
	"iter"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

type segmentState int

const (
	stateNoOpenSlide segmentState = iota
	stateSlideOpen
)

// Segmenter partitions a block sequence into slides. Level 1 and 2 headings
// open a new slide; everything else lands in the currently open slide.
type Segmenter struct{}

// NewSegmenter creates a new slide segmenter
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Segment groups blocks into slides in source order. A sequence without any
// slide boundary yields exactly one untitled slide.
func (s *Segmenter) Segment(blocks iter.Seq[entities.Block], source string) []entities.Slide {
	var (
		slides  []entities.Slide
		current entities.Slide
		state   = stateNoOpenSlide
		pending string
	)

	open := func(title *entities.RichText) {
		current = entities.Slide{
			Title:       title,
			Elements:    []entities.SlideElement{},
			SourceOrder: len(slides),
			Source:      source,
			Notes:       pending,
		}
		pending = ""
		state = stateSlideOpen
	}

	closeSlide := func() {
		if state != stateSlideOpen {
			return
		}
		finalizeTables(current.Elements)
		slides = append(slides, current)
		state = stateNoOpenSlide
	}

	for block := range blocks {
		if block.IsSlideBoundary() {
			closeSlide()
			title := block.Text
			if title == nil {
				title = entities.RichText{}
			}
			open(&title)
			continue
		}

		// notes never open a slide; before the first one they wait for it
		if block.Kind == entities.BlockNotes {
			if state == stateSlideOpen {
				current.AppendNotes(block.Raw)
			} else {
				pending = entities.JoinNotes(pending, block.Raw)
			}
			continue
		}

		if state == stateNoOpenSlide {
			open(nil)
		}
		current.Elements = appendBlock(current.Elements, block)
	}

	closeSlide()

	if len(slides) == 0 {
		open(nil)
		closeSlide()
	}

	return slides
}

// appendBlock maps a block to a slide element, merging list items and table
// rows into the element they continue
func appendBlock(elements []entities.SlideElement, block entities.Block) []entities.SlideElement {
	var last *entities.SlideElement
	if n := len(elements); n > 0 {
		last = &elements[n-1]
	}

	switch block.Kind {
	case entities.BlockHeading:
		return append(elements, entities.SubHeading(block.Level, block.Text))

	case entities.BlockParagraph:
		return append(elements, entities.Paragraph(block.Text))

	case entities.BlockQuote:
		return append(elements, entities.Quote(block.Text))

	case entities.BlockCode:
		return append(elements, entities.CodeElement(block.Language, block.Raw))

	case entities.BlockImage:
		return append(elements, entities.ImagePlaceholder(block.Alt, block.Src))

	case entities.BlockListItem:
		item := entities.ListItem{Text: block.Text, Depth: block.Depth, Ordered: block.Ordered}
		if last != nil && last.IsList() && continuesList(*last, item) {
			last.Items = append(last.Items, item)
			return elements
		}
		if item.Ordered {
			return append(elements, entities.NumberedList(item))
		}
		return append(elements, entities.BulletList(item))

	case entities.BlockTableRow:
		row := append([]entities.RichText(nil), block.Cells...)
		if block.IsHeader {
			return append(elements, entities.Table([][]entities.RichText{row}, 0))
		}
		if last != nil && last.Kind == entities.ElementTable {
			last.Rows = append(last.Rows, row)
			return elements
		}
		return append(elements, entities.Table([][]entities.RichText{row}, -1))
	}

	return elements
}

// continuesList reports whether an item belongs to the open list. Nested
// items always do; a top-level item with a different ordered flag starts a
// new list.
func continuesList(list entities.SlideElement, item entities.ListItem) bool {
	if item.Depth > 0 {
		return true
	}
	return item.Ordered == (list.Kind == entities.ElementNumberedList)
}

// finalizeTables squares every table: header tables to the header width,
// headerless tables to their widest row
func finalizeTables(elements []entities.SlideElement) {
	for i := range elements {
		el := &elements[i]
		if el.Kind != entities.ElementTable || len(el.Rows) == 0 {
			continue
		}

		width := el.Columns()
		if el.HeaderRow >= 0 {
			width = len(el.Rows[el.HeaderRow])
		}

		for r, row := range el.Rows {
			switch {
			case len(row) < width:
				for len(row) < width {
					row = append(row, entities.RichText{})
				}
				el.Rows[r] = row
			case len(row) > width:
				el.Rows[r] = row[:width]
			}
		}
	}
}

// Ensure Segmenter implements ports.SlideSegmenter
var _ ports.SlideSegmenter = (*Segmenter)(nil)
