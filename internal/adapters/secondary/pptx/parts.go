package pptx

import (
	"strconv"
	"strings"
	"time"

	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/ooxml"
	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/renderer"
	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

func pmlRoot(b *ooxml.Builder, name string, attrs ...ooxml.Attr) {
	all := []ooxml.Attr{
		ooxml.A("xmlns:a", ooxml.NamespaceA),
		ooxml.A("xmlns:r", ooxml.NamespaceR),
		ooxml.A("xmlns:p", ooxml.NamespaceP),
	}
	b.Open(name, append(all, attrs...)...)
}

// writeGroupHeader writes the mandatory group shape properties of a shape tree
func writeGroupHeader(b *ooxml.Builder) {
	b.Open("p:nvGrpSpPr")
	b.Empty("p:cNvPr", ooxml.AInt("id", 1), ooxml.A("name", ""))
	b.Empty("p:cNvGrpSpPr")
	b.Empty("p:nvPr")
	b.Close("p:nvGrpSpPr")

	b.Open("p:grpSpPr").Open("a:xfrm")
	b.Empty("a:off", ooxml.AInt("x", 0), ooxml.AInt("y", 0))
	b.Empty("a:ext", ooxml.AInt("cx", 0), ooxml.AInt("cy", 0))
	b.Empty("a:chOff", ooxml.AInt("x", 0), ooxml.AInt("y", 0))
	b.Empty("a:chExt", ooxml.AInt("cx", 0), ooxml.AInt("cy", 0))
	b.Close("a:xfrm").Close("p:grpSpPr")
}

func solidFill(b *ooxml.Builder, c entities.RGB) {
	b.Open("a:solidFill").Empty("a:srgbClr", ooxml.A("val", c.Hex())).Close("a:solidFill")
}

// slideXML wraps rendered shapes into a slide part
func slideXML(shapes []byte) []byte {
	b := ooxml.NewBuilder(true)
	pmlRoot(b, "p:sld")
	b.Open("p:cSld").Open("p:spTree")
	writeGroupHeader(b)
	b.Raw(shapes)
	b.Close("p:spTree").Close("p:cSld")
	b.Open("p:clrMapOvr").Empty("a:masterClrMapping").Close("p:clrMapOvr")
	b.Close("p:sld")
	return b.Bytes()
}

type idRef struct {
	id  int64
	rel string
}

// presentationXML writes the presentation part; notesMasterRel is empty
// when no slide has notes
func presentationXML(master idRef, notesMasterRel string, slides []idRef) []byte {
	b := ooxml.NewBuilder(true)
	pmlRoot(b, "p:presentation", ooxml.ABool("saveSubsetFonts", true))

	b.Open("p:sldMasterIdLst")
	b.Empty("p:sldMasterId", ooxml.AInt("id", master.id), ooxml.A("r:id", master.rel))
	b.Close("p:sldMasterIdLst")

	if notesMasterRel != "" {
		b.Open("p:notesMasterIdLst")
		b.Empty("p:notesMasterId", ooxml.A("r:id", notesMasterRel))
		b.Close("p:notesMasterIdLst")
	}

	if len(slides) > 0 {
		b.Open("p:sldIdLst")
		for _, s := range slides {
			b.Empty("p:sldId", ooxml.AInt("id", s.id), ooxml.A("r:id", s.rel))
		}
		b.Close("p:sldIdLst")
	}

	b.Empty("p:sldSz", ooxml.AInt("cx", ooxml.SlideWidth), ooxml.AInt("cy", ooxml.SlideHeight), ooxml.A("type", "screen4x3"))
	b.Empty("p:notesSz", ooxml.AInt("cx", ooxml.NotesWidth), ooxml.AInt("cy", ooxml.NotesHeight))
	b.Open("p:defaultTextStyle").
		Open("a:defPPr").Empty("a:defRPr", ooxml.A("lang", "en-US")).Close("a:defPPr").
		Close("p:defaultTextStyle")
	b.Close("p:presentation")
	return b.Bytes()
}

func masterXML(theme entities.Theme, layouts []idRef) []byte {
	b := ooxml.NewBuilder(true)
	pmlRoot(b, "p:sldMaster")

	b.Open("p:cSld")
	b.Open("p:bg").Open("p:bgPr")
	solidFill(b, theme.Background)
	b.Empty("a:effectLst")
	b.Close("p:bgPr").Close("p:bg")
	b.Open("p:spTree")
	writeGroupHeader(b)
	b.Close("p:spTree")
	b.Close("p:cSld")

	b.Empty("p:clrMap",
		ooxml.A("bg1", "lt1"), ooxml.A("tx1", "dk1"), ooxml.A("bg2", "lt2"), ooxml.A("tx2", "dk2"),
		ooxml.A("accent1", "accent1"), ooxml.A("accent2", "accent2"), ooxml.A("accent3", "accent3"),
		ooxml.A("accent4", "accent4"), ooxml.A("accent5", "accent5"), ooxml.A("accent6", "accent6"),
		ooxml.A("hlink", "hlink"), ooxml.A("folHlink", "folHlink"),
	)

	b.Open("p:sldLayoutIdLst")
	for _, l := range layouts {
		b.Empty("p:sldLayoutId", ooxml.AInt("id", l.id), ooxml.A("r:id", l.rel))
	}
	b.Close("p:sldLayoutIdLst")

	b.Open("p:txStyles")
	textStyle(b, "p:titleStyle", theme.TitleSize, theme.TextPrimary, theme.TitleFont)
	textStyle(b, "p:bodyStyle", theme.BodySize, theme.TextPrimary, theme.FontFamily)
	textStyle(b, "p:otherStyle", 0, theme.TextSecondary, theme.FontFamily)
	b.Close("p:txStyles")

	b.Close("p:sldMaster")
	return b.Bytes()
}

func textStyle(b *ooxml.Builder, name string, size int, color entities.RGB, font string) {
	b.Open(name).Open("a:lvl1pPr")
	attrs := []ooxml.Attr{}
	if size > 0 {
		attrs = append(attrs, ooxml.AInt("sz", int64(size)), ooxml.AInt("kern", 1200))
	}
	b.Open("a:defRPr", attrs...)
	solidFill(b, color)
	b.Empty("a:latin", ooxml.A("typeface", font))
	b.Close("a:defRPr")
	b.Close("a:lvl1pPr").Close(name)
}

// layoutType maps a shape pattern to the ST_SlideLayoutType value
func layoutType(l entities.SlideLayout) string {
	switch l {
	case entities.LayoutTitleOnly:
		return "titleOnly"
	case entities.LayoutTitleContent:
		return "obj"
	default:
		return "blank"
	}
}

func layoutXML(theme entities.Theme, layout entities.SlideLayout) []byte {
	m := theme.Margins()
	width := ooxml.SlideWidth - m.Left - m.Right

	b := ooxml.NewBuilder(true)
	pmlRoot(b, "p:sldLayout", ooxml.A("type", layoutType(layout)), ooxml.ABool("preserve", true))
	b.Open("p:cSld", ooxml.A("name", layout.String()))
	b.Open("p:spTree")
	writeGroupHeader(b)

	if layout != entities.LayoutBlank {
		placeholder(b, 2, "Title 1", []ooxml.Attr{ooxml.A("type", "title")},
			m.Left, m.Top, width, renderer.TitleHeight, "Click to edit Master title style")
	}
	if layout == entities.LayoutTitleContent {
		top := m.Top + renderer.TitleHeight + renderer.ContentSpacing
		placeholder(b, 3, "Content Placeholder 2", []ooxml.Attr{ooxml.AInt("idx", 1)},
			m.Left, top, width, ooxml.SlideHeight-top-m.Bottom, "Click to edit Master text styles")
	}

	b.Close("p:spTree")
	b.Close("p:cSld")
	b.Open("p:clrMapOvr").Empty("a:masterClrMapping").Close("p:clrMapOvr")
	b.Close("p:sldLayout")
	return b.Bytes()
}

func placeholder(b *ooxml.Builder, id int64, name string, ph []ooxml.Attr, x, y, cx, cy int64, prompt string) {
	b.Open("p:sp")
	b.Open("p:nvSpPr")
	b.Empty("p:cNvPr", ooxml.AInt("id", id), ooxml.A("name", name))
	b.Open("p:cNvSpPr").Empty("a:spLocks", ooxml.ABool("noGrp", true)).Close("p:cNvSpPr")
	b.Open("p:nvPr").Empty("p:ph", ph...).Close("p:nvPr")
	b.Close("p:nvSpPr")

	b.Open("p:spPr").Open("a:xfrm")
	b.Empty("a:off", ooxml.AInt("x", x), ooxml.AInt("y", y))
	b.Empty("a:ext", ooxml.AInt("cx", cx), ooxml.AInt("cy", cy))
	b.Close("a:xfrm").Close("p:spPr")

	b.Open("p:txBody")
	b.Empty("a:bodyPr")
	b.Empty("a:lstStyle")
	b.Open("a:p").Open("a:r").Empty("a:rPr", ooxml.A("lang", "en-US")).Element("a:t", prompt).Close("a:r").Close("a:p")
	b.Close("p:txBody")
	b.Close("p:sp")
}

func themeXML(theme entities.Theme) []byte {
	b := ooxml.NewBuilder(true)
	b.Open("a:theme", ooxml.A("xmlns:a", ooxml.NamespaceA), ooxml.A("name", theme.Name))
	b.Open("a:themeElements")

	b.Open("a:clrScheme", ooxml.A("name", theme.Name))
	schemeColor(b, "a:dk1", theme.TextPrimary.Hex())
	schemeColor(b, "a:lt1", theme.Background.Hex())
	schemeColor(b, "a:dk2", theme.TextSecondary.Hex())
	schemeColor(b, "a:lt2", "EEECE1")
	schemeColor(b, "a:accent1", theme.AccentColor.Hex())
	schemeColor(b, "a:accent2", theme.Accent2.Hex())
	schemeColor(b, "a:accent3", theme.Accent3.Hex())
	schemeColor(b, "a:accent4", "8064A2")
	schemeColor(b, "a:accent5", "4BACC6")
	schemeColor(b, "a:accent6", "F39646")
	schemeColor(b, "a:hlink", "0000FF")
	schemeColor(b, "a:folHlink", "800080")
	b.Close("a:clrScheme")

	b.Open("a:fontScheme", ooxml.A("name", theme.Name))
	fontSet(b, "a:majorFont", theme.TitleFont)
	fontSet(b, "a:minorFont", theme.FontFamily)
	b.Close("a:fontScheme")

	b.Raw([]byte(formatScheme))
	b.Close("a:themeElements")
	b.Empty("a:objectDefaults")
	b.Empty("a:extraClrSchemeLst")
	b.Close("a:theme")
	return b.Bytes()
}

func schemeColor(b *ooxml.Builder, name, hex string) {
	b.Open(name).Empty("a:srgbClr", ooxml.A("val", hex)).Close(name)
}

func fontSet(b *ooxml.Builder, name, typeface string) {
	b.Open(name)
	b.Empty("a:latin", ooxml.A("typeface", typeface))
	b.Empty("a:ea", ooxml.A("typeface", ""))
	b.Empty("a:cs", ooxml.A("typeface", ""))
	b.Close(name)
}

// formatScheme is the Office fill, line, effect and background style matrix
const formatScheme = `<a:fmtScheme name="Office">` +
	`<a:fillStyleLst>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:gradFill rotWithShape="1"><a:gsLst>` +
	`<a:gs pos="0"><a:schemeClr val="phClr"><a:tint val="50000"/><a:satMod val="300000"/></a:schemeClr></a:gs>` +
	`<a:gs pos="35000"><a:schemeClr val="phClr"><a:tint val="37000"/><a:satMod val="300000"/></a:schemeClr></a:gs>` +
	`<a:gs pos="100000"><a:schemeClr val="phClr"><a:tint val="15000"/><a:satMod val="350000"/></a:schemeClr></a:gs>` +
	`</a:gsLst><a:lin ang="16200000" scaled="1"/></a:gradFill>` +
	`<a:gradFill rotWithShape="1"><a:gsLst>` +
	`<a:gs pos="0"><a:schemeClr val="phClr"><a:shade val="51000"/><a:satMod val="130000"/></a:schemeClr></a:gs>` +
	`<a:gs pos="80000"><a:schemeClr val="phClr"><a:shade val="93000"/><a:satMod val="130000"/></a:schemeClr></a:gs>` +
	`<a:gs pos="100000"><a:schemeClr val="phClr"><a:shade val="94000"/><a:satMod val="135000"/></a:schemeClr></a:gs>` +
	`</a:gsLst><a:lin ang="16200000" scaled="0"/></a:gradFill>` +
	`</a:fillStyleLst>` +
	`<a:lnStyleLst>` +
	`<a:ln w="9525" cap="flat" cmpd="sng" algn="ctr"><a:solidFill><a:schemeClr val="phClr"><a:shade val="95000"/><a:satMod val="105000"/></a:schemeClr></a:solidFill><a:prstDash val="solid"/></a:ln>` +
	`<a:ln w="25400" cap="flat" cmpd="sng" algn="ctr"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:prstDash val="solid"/></a:ln>` +
	`<a:ln w="38100" cap="flat" cmpd="sng" algn="ctr"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:prstDash val="solid"/></a:ln>` +
	`</a:lnStyleLst>` +
	`<a:effectStyleLst>` +
	`<a:effectStyle><a:effectLst><a:outerShdw blurRad="40000" dist="20000" dir="5400000" rotWithShape="0"><a:srgbClr val="000000"><a:alpha val="38000"/></a:srgbClr></a:outerShdw></a:effectLst></a:effectStyle>` +
	`<a:effectStyle><a:effectLst><a:outerShdw blurRad="40000" dist="23000" dir="5400000" rotWithShape="0"><a:srgbClr val="000000"><a:alpha val="35000"/></a:srgbClr></a:outerShdw></a:effectLst></a:effectStyle>` +
	`<a:effectStyle><a:effectLst><a:outerShdw blurRad="40000" dist="23000" dir="5400000" rotWithShape="0"><a:srgbClr val="000000"><a:alpha val="35000"/></a:srgbClr></a:outerShdw></a:effectLst></a:effectStyle>` +
	`</a:effectStyleLst>` +
	`<a:bgFillStyleLst>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:gradFill rotWithShape="1"><a:gsLst>` +
	`<a:gs pos="0"><a:schemeClr val="phClr"><a:tint val="40000"/><a:satMod val="350000"/></a:schemeClr></a:gs>` +
	`<a:gs pos="40000"><a:schemeClr val="phClr"><a:tint val="45000"/><a:shade val="99000"/><a:satMod val="350000"/></a:schemeClr></a:gs>` +
	`<a:gs pos="100000"><a:schemeClr val="phClr"><a:shade val="20000"/><a:satMod val="255000"/></a:schemeClr></a:gs>` +
	`</a:gsLst><a:path path="circle"><a:fillToRect l="50000" t="-80000" r="50000" b="180000"/></a:path></a:gradFill>` +
	`<a:gradFill rotWithShape="1"><a:gsLst>` +
	`<a:gs pos="0"><a:schemeClr val="phClr"><a:tint val="80000"/><a:satMod val="300000"/></a:schemeClr></a:gs>` +
	`<a:gs pos="100000"><a:schemeClr val="phClr"><a:shade val="30000"/><a:satMod val="200000"/></a:schemeClr></a:gs>` +
	`</a:gsLst><a:path path="circle"><a:fillToRect l="50000" t="50000" r="50000" b="50000"/></a:path></a:gradFill>` +
	`</a:bgFillStyleLst>` +
	`</a:fmtScheme>`

// notes page geometry: slide image on top, notes body below
const (
	notesMarginX int64 = 685800
	notesImageY  int64 = 685800
	notesImageCY int64 = 3429000
	notesBodyY   int64 = 4343400
	notesBodyCY  int64 = 4114800
)

func notesPlaceholders(b *ooxml.Builder, withGeometry bool, paragraphs []string) {
	width := ooxml.NotesWidth - 2*notesMarginX

	b.Open("p:sp")
	b.Open("p:nvSpPr")
	b.Empty("p:cNvPr", ooxml.AInt("id", 2), ooxml.A("name", "Slide Image Placeholder 1"))
	b.Open("p:cNvSpPr").Empty("a:spLocks", ooxml.ABool("noGrp", true), ooxml.ABool("noRot", true), ooxml.ABool("noChangeAspect", true)).Close("p:cNvSpPr")
	b.Open("p:nvPr").Empty("p:ph", ooxml.A("type", "sldImg")).Close("p:nvPr")
	b.Close("p:nvSpPr")
	notesGeometry(b, withGeometry, notesMarginX, notesImageY, width, notesImageCY)
	b.Close("p:sp")

	b.Open("p:sp")
	b.Open("p:nvSpPr")
	b.Empty("p:cNvPr", ooxml.AInt("id", 3), ooxml.A("name", "Notes Placeholder 2"))
	b.Open("p:cNvSpPr").Empty("a:spLocks", ooxml.ABool("noGrp", true)).Close("p:cNvSpPr")
	b.Open("p:nvPr").Empty("p:ph", ooxml.A("type", "body"), ooxml.AInt("idx", 1)).Close("p:nvPr")
	b.Close("p:nvSpPr")
	notesGeometry(b, withGeometry, notesMarginX, notesBodyY, width, notesBodyCY)
	b.Open("p:txBody")
	b.Empty("a:bodyPr")
	b.Empty("a:lstStyle")
	if len(paragraphs) == 0 {
		b.Empty("a:p")
	}
	for _, p := range paragraphs {
		b.Open("a:p").Open("a:r").Empty("a:rPr", ooxml.A("lang", "en-US")).Element("a:t", p).Close("a:r").Close("a:p")
	}
	b.Close("p:txBody")
	b.Close("p:sp")
}

func notesGeometry(b *ooxml.Builder, withGeometry bool, x, y, cx, cy int64) {
	if !withGeometry {
		b.Empty("p:spPr")
		return
	}
	b.Open("p:spPr").Open("a:xfrm")
	b.Empty("a:off", ooxml.AInt("x", x), ooxml.AInt("y", y))
	b.Empty("a:ext", ooxml.AInt("cx", cx), ooxml.AInt("cy", cy))
	b.Close("a:xfrm").Close("p:spPr")
}

func notesMasterXML(theme entities.Theme) []byte {
	b := ooxml.NewBuilder(true)
	pmlRoot(b, "p:notesMaster")
	b.Open("p:cSld")
	b.Open("p:bg").Open("p:bgRef", ooxml.AInt("idx", 1001)).Empty("a:schemeClr", ooxml.A("val", "bg1")).Close("p:bgRef").Close("p:bg")
	b.Open("p:spTree")
	writeGroupHeader(b)
	notesPlaceholders(b, true, nil)
	b.Close("p:spTree")
	b.Close("p:cSld")

	b.Empty("p:clrMap",
		ooxml.A("bg1", "lt1"), ooxml.A("tx1", "dk1"), ooxml.A("bg2", "lt2"), ooxml.A("tx2", "dk2"),
		ooxml.A("accent1", "accent1"), ooxml.A("accent2", "accent2"), ooxml.A("accent3", "accent3"),
		ooxml.A("accent4", "accent4"), ooxml.A("accent5", "accent5"), ooxml.A("accent6", "accent6"),
		ooxml.A("hlink", "hlink"), ooxml.A("folHlink", "folHlink"),
	)
	b.Open("p:notesStyle")
	b.Open("a:lvl1pPr", ooxml.AInt("marL", 0), ooxml.A("algn", "l"))
	b.Open("a:defRPr", ooxml.AInt("sz", 1200), ooxml.AInt("kern", 1200))
	solidFill(b, theme.TextPrimary)
	b.Empty("a:latin", ooxml.A("typeface", theme.FontFamily))
	b.Close("a:defRPr")
	b.Close("a:lvl1pPr")
	b.Close("p:notesStyle")
	b.Close("p:notesMaster")
	return b.Bytes()
}

// notesSlideXML writes one notes page; each paragraph becomes one a:p
func notesSlideXML(paragraphs []string) []byte {
	b := ooxml.NewBuilder(true)
	pmlRoot(b, "p:notes")
	b.Open("p:cSld").Open("p:spTree")
	writeGroupHeader(b)
	notesPlaceholders(b, false, paragraphs)
	b.Close("p:spTree").Close("p:cSld")
	b.Open("p:clrMapOvr").Empty("a:masterClrMapping").Close("p:clrMapOvr")
	b.Close("p:notes")
	return b.Bytes()
}

func presPropsXML() []byte {
	b := ooxml.NewBuilder(true)
	pmlRoot(b, "p:presentationPr")
	b.Close("p:presentationPr")
	return b.Bytes()
}

func viewPropsXML() []byte {
	b := ooxml.NewBuilder(true)
	pmlRoot(b, "p:viewPr")
	b.Empty("p:normalViewPr")
	b.Empty("p:gridSpacing", ooxml.AInt("cx", 76200), ooxml.AInt("cy", 76200))
	b.Close("p:viewPr")
	return b.Bytes()
}

func tableStylesXML() []byte {
	b := ooxml.NewBuilder(true)
	b.Empty("a:tblStyleLst",
		ooxml.A("xmlns:a", ooxml.NamespaceA),
		ooxml.A("def", "{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"))
	return b.Bytes()
}

// coreProps holds the values written to docProps/core.xml
type coreProps struct {
	entities.DeckMetadata
	Identifier string
	Created    time.Time
}

func corePropsXML(p coreProps) []byte {
	b := ooxml.NewBuilder(true)
	b.Open("cp:coreProperties",
		ooxml.A("xmlns:cp", ooxml.NamespaceCoreProps),
		ooxml.A("xmlns:dc", ooxml.NamespaceDC),
		ooxml.A("xmlns:dcterms", ooxml.NamespaceDCTerms),
		ooxml.A("xmlns:xsi", ooxml.NamespaceXSI),
	)
	optional := func(name, value string) {
		if value != "" {
			b.Element(name, value)
		}
	}
	optional("dc:title", p.Title)
	optional("dc:subject", p.Subject)
	optional("dc:creator", p.Author)
	optional("cp:keywords", strings.Join(p.Keywords, ", "))
	optional("dc:identifier", p.Identifier)
	if !p.Created.IsZero() {
		stamp := p.Created.UTC().Format(time.RFC3339)
		b.Element("dcterms:created", stamp, ooxml.A("xsi:type", "dcterms:W3CDTF"))
		b.Element("dcterms:modified", stamp, ooxml.A("xsi:type", "dcterms:W3CDTF"))
	}
	b.Close("cp:coreProperties")
	return b.Bytes()
}

func appPropsXML(slides, notes int, company string) []byte {
	b := ooxml.NewBuilder(true)
	b.Open("Properties",
		ooxml.A("xmlns", ooxml.NamespaceExtProps),
		ooxml.A("xmlns:vt", ooxml.NamespaceDocPropsVT),
	)
	b.Element("Application", "mdpptx")
	b.Element("PresentationFormat", "On-screen Show (4:3)")
	b.Element("Slides", strconv.Itoa(slides))
	b.Element("Notes", strconv.Itoa(notes))
	b.Element("HiddenSlides", "0")
	b.Element("ScaleCrop", "false")
	if company != "" {
		b.Element("Company", company)
	}
	b.Element("AppVersion", "16.0000")
	b.Close("Properties")
	return b.Bytes()
}
