package renderer

import (
	"strconv"

	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/ooxml"
)

// writeShapes serializes shapes as p:spTree children
func writeShapes(b *ooxml.Builder, shapes []Shape) {
	for _, s := range shapes {
		if s.Kind == ShapeTable {
			writeTable(b, s)
			continue
		}
		writeShape(b, s)
	}
}

func writeShape(b *ooxml.Builder, s Shape) {
	b.Open("p:sp")

	b.Open("p:nvSpPr")
	cNvPr := []ooxml.Attr{ooxml.AInt("id", s.ID), ooxml.A("name", s.Name)}
	if s.Description != "" {
		cNvPr = append(cNvPr, ooxml.A("descr", s.Description))
	}
	if s.LinkRelID != "" {
		b.Open("p:cNvPr", cNvPr...)
		b.Empty("a:hlinkClick", ooxml.A("r:id", s.LinkRelID))
		b.Close("p:cNvPr")
	} else {
		b.Empty("p:cNvPr", cNvPr...)
	}

	switch s.Kind {
	case ShapeTitle:
		b.Open("p:cNvSpPr").Empty("a:spLocks", ooxml.ABool("noGrp", true)).Close("p:cNvSpPr")
		b.Open("p:nvPr").Empty("p:ph", ooxml.A("type", "title")).Close("p:nvPr")
	case ShapeQuoteBar:
		b.Empty("p:cNvSpPr")
		b.Empty("p:nvPr")
	default:
		b.Empty("p:cNvSpPr", ooxml.ABool("txBox", true))
		b.Empty("p:nvPr")
	}
	b.Close("p:nvSpPr")

	b.Open("p:spPr")
	writeXfrm(b, "a:xfrm", s.Frame)
	b.Open("a:prstGeom", ooxml.A("prst", "rect")).Empty("a:avLst").Close("a:prstGeom")
	switch {
	case s.Fill != nil:
		writeSolidFill(b, s.Fill.Hex())
	case s.Kind == ShapeImage:
		b.Empty("a:noFill")
	}
	if s.Line != nil {
		b.Open("a:ln", ooxml.AInt("w", s.Line.Width))
		writeSolidFill(b, s.Line.Color.Hex())
		if s.Line.Dash != "" {
			b.Empty("a:prstDash", ooxml.A("val", s.Line.Dash))
		}
		b.Close("a:ln")
	}
	b.Close("p:spPr")

	if s.Kind != ShapeQuoteBar {
		writeTextBody(b, "p:txBody", s)
	}

	b.Close("p:sp")
}

func writeTextBody(b *ooxml.Builder, name string, s Shape) {
	b.Open(name)
	bodyPr := []ooxml.Attr{ooxml.A("wrap", "square"), ooxml.A("rtlCol", "0")}
	switch s.Kind {
	case ShapeTitle:
		bodyPr = append(bodyPr, ooxml.A("anchor", "b"))
	case ShapeImage:
		bodyPr = append(bodyPr, ooxml.A("anchor", "ctr"))
	}
	b.Open("a:bodyPr", bodyPr...).Empty("a:normAutofit").Close("a:bodyPr")
	b.Empty("a:lstStyle")
	for _, p := range s.Paragraphs {
		writeParagraph(b, p)
	}
	b.Close(name)
}

func writeParagraph(b *ooxml.Builder, p Paragraph) {
	b.Open("a:p")

	switch p.Bullet {
	case BulletChar, BulletNumber:
		b.Open("a:pPr",
			ooxml.AInt("marL", BulletHang+int64(p.Level)*ListIndent),
			ooxml.AInt("lvl", int64(p.Level)),
			ooxml.AInt("indent", -BulletHang),
		)
		if p.Bullet == BulletNumber {
			b.Empty("a:buFont", ooxml.A("typeface", "+mj-lt"))
			b.Empty("a:buAutoNum", ooxml.A("type", "arabicPeriod"))
		} else {
			b.Empty("a:buFont", ooxml.A("typeface", "Arial"))
			b.Empty("a:buChar", ooxml.A("char", p.Char))
		}
		b.Close("a:pPr")
	default:
		attrs := []ooxml.Attr{}
		if p.Align != "" {
			attrs = append(attrs, ooxml.A("algn", p.Align))
		}
		b.Open("a:pPr", attrs...).Empty("a:buNone").Close("a:pPr")
	}

	for _, r := range p.Runs {
		writeRun(b, r)
	}
	b.Close("a:p")
}

func writeRun(b *ooxml.Builder, r Run) {
	b.Open("a:r")
	attrs := []ooxml.Attr{ooxml.A("lang", "en-US")}
	if r.Size > 0 {
		attrs = append(attrs, ooxml.AInt("sz", int64(r.Size)))
	}
	if r.Bold {
		attrs = append(attrs, ooxml.ABool("b", true))
	}
	if r.Italic {
		attrs = append(attrs, ooxml.ABool("i", true))
	}
	attrs = append(attrs, ooxml.ABool("dirty", false))

	b.Open("a:rPr", attrs...)
	writeSolidFill(b, r.Color.Hex())
	if r.Font != "" {
		b.Empty("a:latin", ooxml.A("typeface", r.Font))
		b.Empty("a:cs", ooxml.A("typeface", r.Font))
	}
	b.Close("a:rPr")
	b.Element("a:t", r.Text)
	b.Close("a:r")
}

func writeTable(b *ooxml.Builder, s Shape) {
	grid := s.Table

	b.Open("p:graphicFrame")
	b.Open("p:nvGraphicFramePr")
	b.Empty("p:cNvPr", ooxml.AInt("id", s.ID), ooxml.A("name", s.Name))
	b.Open("p:cNvGraphicFramePr").Empty("a:graphicFrameLocks", ooxml.ABool("noGrp", true)).Close("p:cNvGraphicFramePr")
	b.Empty("p:nvPr")
	b.Close("p:nvGraphicFramePr")
	writeXfrm(b, "p:xfrm", s.Frame)

	b.Open("a:graphic")
	b.Open("a:graphicData", ooxml.A("uri", ooxml.TableGraphicURI))
	b.Open("a:tbl")

	tblPr := []ooxml.Attr{}
	if grid.HeaderRow >= 0 {
		tblPr = append(tblPr, ooxml.ABool("firstRow", true))
	}
	tblPr = append(tblPr, ooxml.ABool("bandRow", true))
	b.Empty("a:tblPr", tblPr...)

	b.Open("a:tblGrid")
	for _, w := range grid.Columns {
		b.Empty("a:gridCol", ooxml.AInt("w", w))
	}
	b.Close("a:tblGrid")

	for _, row := range grid.Rows {
		b.Open("a:tr", ooxml.AInt("h", grid.RowHeight))
		for _, cell := range row {
			b.Open("a:tc")
			b.Open("a:txBody")
			b.Empty("a:bodyPr")
			b.Empty("a:lstStyle")
			for _, p := range cell.Paragraphs {
				writeParagraph(b, p)
			}
			b.Close("a:txBody")
			b.Open("a:tcPr",
				ooxml.AInt("marL", CellInset*2),
				ooxml.AInt("marR", CellInset*2),
				ooxml.AInt("marT", CellInset),
				ooxml.AInt("marB", CellInset),
			)
			if cell.Fill != nil {
				writeSolidFill(b, cell.Fill.Hex())
			}
			b.Close("a:tcPr")
			b.Close("a:tc")
		}
		b.Close("a:tr")
	}

	b.Close("a:tbl")
	b.Close("a:graphicData")
	b.Close("a:graphic")
	b.Close("p:graphicFrame")
}

func writeXfrm(b *ooxml.Builder, name string, r Rect) {
	b.Open(name)
	b.Empty("a:off", ooxml.AInt("x", r.X), ooxml.AInt("y", r.Y))
	b.Empty("a:ext", ooxml.AInt("cx", r.CX), ooxml.AInt("cy", r.CY))
	b.Close(name)
}

func writeSolidFill(b *ooxml.Builder, hex string) {
	b.Open("a:solidFill").Empty("a:srgbClr", ooxml.A("val", hex)).Close("a:solidFill")
}

// shapeName numbers shapes from 1; id 1 is the group shape
func shapeName(prefix string, id int64) string {
	return prefix + " " + strconv.FormatInt(id-1, 10)
}
