// Package ooxml holds the low-level pieces shared by the DrawingML renderer
// and the package assembler: namespaces, content and relationship types,
// escaping, an element builder and scoped id allocators.
package ooxml

// Namespace URIs. Every part binds the same prefixes: a, r, p.
const (
	NamespaceA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NamespaceR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NamespaceP = "http://schemas.openxmlformats.org/presentationml/2006/main"

	NamespaceContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	NamespaceRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"
	NamespaceCoreProps     = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	NamespaceExtProps      = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	NamespaceDocPropsVT    = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"
	NamespaceDC            = "http://purl.org/dc/elements/1.1/"
	NamespaceDCTerms       = "http://purl.org/dc/terms/"
	NamespaceXSI           = "http://www.w3.org/2001/XMLSchema-instance"

	TableGraphicURI = "http://schemas.openxmlformats.org/drawingml/2006/table"
)

// Relationship types
const (
	RelOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RelCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	RelExtProps       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	RelSlide          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	RelSlideMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	RelSlideLayout    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	RelTheme          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	RelPresProps      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/presProps"
	RelViewProps      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/viewProps"
	RelTableStyles    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/tableStyles"
	RelHyperlink      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	RelNotesMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesMaster"
	RelNotesSlide     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"
)

// Content types
const (
	ContentTypeRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	ContentTypeXML           = "application/xml"
	ContentTypePresentation  = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ContentTypeSlide         = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ContentTypeSlideMaster   = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ContentTypeSlideLayout   = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ContentTypeTheme         = "application/vnd.openxmlformats-officedocument.theme+xml"
	ContentTypePresProps     = "application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"
	ContentTypeViewProps     = "application/vnd.openxmlformats-officedocument.presentationml.viewProps+xml"
	ContentTypeTableStyles   = "application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"
	ContentTypeCoreProps     = "application/vnd.openxmlformats-package.core-properties+xml"
	ContentTypeExtProps      = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	ContentTypeNotesMaster   = "application/vnd.openxmlformats-officedocument.presentationml.notesMaster+xml"
	ContentTypeNotesSlide    = "application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"
)

// Header is the XML declaration written at the top of every part
const Header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Slide geometry in EMU (10in x 7.5in, 4:3)
const (
	EMUPerPoint int64 = 12700
	SlideWidth  int64 = 9144000
	SlideHeight int64 = 6858000
	NotesWidth  int64 = 6858000
	NotesHeight int64 = 9144000
)
