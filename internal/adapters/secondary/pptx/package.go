package pptx

import (
	"fmt"

	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/ooxml"
	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

const contentTypesPath = "[Content_Types].xml"

// opcPackage is the part graph of one archive, kept in write order
type opcPackage struct {
	rootRels []entities.Relationship
	parts    []entities.Part
	index    map[string]int
}

func newPackage() *opcPackage {
	return &opcPackage{index: make(map[string]int)}
}

// add appends a part; a second part with the same path is rejected
func (p *opcPackage) add(part entities.Part) error {
	if _, exists := p.index[part.Path]; exists {
		return entities.PackagingError(part.Path, "duplicate part path")
	}
	if part.Path == contentTypesPath || part.Path == "" {
		return entities.PackagingError(part.Path, "reserved part path")
	}
	p.index[part.Path] = len(p.parts)
	p.parts = append(p.parts, part)
	return nil
}

func (p *opcPackage) has(path string) bool {
	_, ok := p.index[path]
	return ok
}

// contentTypes serializes the manifest: one Default per extension and one
// Override per part, in part order
func (p *opcPackage) contentTypes() []byte {
	b := ooxml.NewBuilder(true)
	b.Open("Types", ooxml.A("xmlns", ooxml.NamespaceContentTypes))
	b.Empty("Default", ooxml.A("Extension", "rels"), ooxml.A("ContentType", ooxml.ContentTypeRelationships))
	b.Empty("Default", ooxml.A("Extension", "xml"), ooxml.A("ContentType", ooxml.ContentTypeXML))

	seen := make(map[string]bool, len(p.parts))
	for _, part := range p.parts {
		if seen[part.Path] || part.ContentType == "" {
			continue
		}
		seen[part.Path] = true
		b.Empty("Override", ooxml.A("PartName", "/"+part.Path), ooxml.A("ContentType", part.ContentType))
	}
	b.Close("Types")
	return b.Bytes()
}

// entry is one file of the archive
type entry struct {
	name string
	body []byte
}

// entries returns the archive files in write order: manifest, package rels,
// then every part followed by its rels part
func (p *opcPackage) entries() []entry {
	out := make([]entry, 0, 2+2*len(p.parts))
	out = append(out,
		entry{name: contentTypesPath, body: p.contentTypes()},
		entry{name: entities.RelsPathFor(""), body: relsXML(p.rootRels)},
	)
	for i := range p.parts {
		part := &p.parts[i]
		out = append(out, entry{name: part.Path, body: part.Body})
		if len(part.Relationships) > 0 {
			out = append(out, entry{name: part.RelsPath(), body: relsXML(part.Relationships)})
		}
	}
	return out
}

func relsXML(rels []entities.Relationship) []byte {
	b := ooxml.NewBuilder(true)
	b.Open("Relationships", ooxml.A("xmlns", ooxml.NamespaceRelationships))
	for _, rel := range rels {
		attrs := []ooxml.Attr{
			ooxml.A("Id", rel.ID),
			ooxml.A("Type", rel.Type),
			ooxml.A("Target", rel.Target),
		}
		if rel.External {
			attrs = append(attrs, ooxml.A("TargetMode", "External"))
		}
		b.Empty("Relationship", attrs...)
	}
	b.Close("Relationships")
	return b.Bytes()
}

func slidePath(n int) string {
	return fmt.Sprintf("ppt/slides/slide%d.xml", n)
}

func layoutPath(n int) string {
	return fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", n)
}

func notesSlidePath(n int) string {
	return fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", n)
}

const (
	presentationPath = "ppt/presentation.xml"
	masterPath       = "ppt/slideMasters/slideMaster1.xml"
	themePath        = "ppt/theme/theme1.xml"
	notesMasterPath  = "ppt/notesMasters/notesMaster1.xml"
	notesThemePath   = "ppt/theme/theme2.xml"
	presPropsPath    = "ppt/presProps.xml"
	viewPropsPath    = "ppt/viewProps.xml"
	tableStylesPath  = "ppt/tableStyles.xml"
	corePropsPath    = "docProps/core.xml"
	appPropsPath     = "docProps/app.xml"
)
