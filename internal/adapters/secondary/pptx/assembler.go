// Package pptx assembles rendered slides into an Office Open XML
// presentation archive and reads such archives back.
package pptx

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/ooxml"
	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/renderer"
	"github.com/fredcamaral/mdpptx/internal/domain/entities"
	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

const (
	firstSlideID  int64 = 256
	firstMasterID int64 = 2147483648
)

// Assembler builds .pptx archives from decks
type Assembler struct {
	renderer   ports.ElementRenderer
	logger     ports.Logger
	identifier func() string
	clock      ports.TimeProvider
	cache      *PartCache
}

// Option configures an Assembler
type Option func(*Assembler)

// WithIdentifierSource replaces the per-run dc:identifier generator
func WithIdentifierSource(fn func() string) Option {
	return func(a *Assembler) {
		if fn != nil {
			a.identifier = fn
		}
	}
}

// WithLogger sets the assembler logger
func WithLogger(logger ports.Logger) Option {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithRenderer sets the element renderer
func WithRenderer(r ports.ElementRenderer) Option {
	return func(a *Assembler) {
		if r != nil {
			a.renderer = r
		}
	}
}

// WithTimestamps writes dcterms:created and modified from the clock.
// Without it the archive carries no wall-clock value.
func WithTimestamps(clock ports.TimeProvider) Option {
	return func(a *Assembler) {
		a.clock = clock
	}
}

// WithPartCache shares a theme part cache between assemblers
func WithPartCache(cache *PartCache) Option {
	return func(a *Assembler) {
		if cache != nil {
			a.cache = cache
		}
	}
}

// NewAssembler creates a new package assembler
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		renderer:   renderer.NewRenderer(),
		logger:     ports.NewNoOpLogger(),
		identifier: func() string { return "urn:uuid:" + uuid.NewString() },
		cache:      NewPartCache(64, 0),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CacheStats returns statistics of the theme part cache
func (a *Assembler) CacheStats() entities.CacheStats {
	return a.cache.Stats()
}

// Assemble renders every slide, builds and checks the part graph, then
// writes the archive. Nothing is returned unless every check passes.
func (a *Assembler) Assemble(ctx context.Context, deck entities.Deck, theme entities.Theme) ([]byte, error) {
	start := time.Now()

	rendered := make([]ports.RenderedSlide, 0, len(deck.Slides))
	for i, slide := range deck.Slides {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("assembly cancelled: %w", err)
		}
		rs, err := a.renderer.RenderSlide(slide, i, theme)
		if err != nil {
			return nil, fmt.Errorf("rendering slide %d: %w", i+1, err)
		}
		rendered = append(rendered, rs)
	}

	pkg, err := a.buildPackage(deck, theme, rendered)
	if err != nil {
		return nil, err
	}
	if err := pkg.verify(); err != nil {
		return nil, err
	}

	data, err := writeArchive(pkg.entries())
	if err != nil {
		return nil, fmt.Errorf("writing package: %w", err)
	}

	a.logger.Debug("package assembled",
		"slides", len(rendered),
		"notes", countNotes(deck),
		"parts", len(pkg.parts),
		"bytes", len(data),
		"theme", theme.ID.String(),
		"duration", time.Since(start))

	return data, nil
}

func countNotes(deck entities.Deck) int {
	n := 0
	for i := range deck.Slides {
		if deck.Slides[i].HasNotes() {
			n++
		}
	}
	return n
}

// usedLayouts returns the distinct layouts in enum order. A deck without
// slides still gets the blank layout so the master has one.
func usedLayouts(rendered []ports.RenderedSlide) []entities.SlideLayout {
	used := make(map[entities.SlideLayout]bool)
	for _, rs := range rendered {
		used[rs.Layout] = true
	}

	var out []entities.SlideLayout
	for _, l := range []entities.SlideLayout{entities.LayoutTitleOnly, entities.LayoutTitleContent, entities.LayoutBlank} {
		if used[l] {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		out = append(out, entities.LayoutBlank)
	}
	return out
}

func (a *Assembler) buildPackage(deck entities.Deck, theme entities.Theme, rendered []ports.RenderedSlide) (*opcPackage, error) {
	pkg := newPackage()

	pkg.rootRels = []entities.Relationship{
		{ID: "rId1", Type: ooxml.RelOfficeDocument, Target: presentationPath},
		{ID: "rId2", Type: ooxml.RelCoreProps, Target: corePropsPath},
		{ID: "rId3", Type: ooxml.RelExtProps, Target: appPropsPath},
	}

	// presentation relationships: slides first, then master, theme and props
	presRels := ooxml.NewRelIDs(1)
	slideIDs := ooxml.NewAllocator(firstSlideID)
	var (
		slideRefs []idRef
		rels      []entities.Relationship
	)
	for i := range rendered {
		ref := idRef{id: slideIDs.Next(), rel: presRels.Next()}
		slideRefs = append(slideRefs, ref)
		rels = append(rels, entities.Relationship{ID: ref.rel, Type: ooxml.RelSlide, Target: fmt.Sprintf("slides/slide%d.xml", i+1)})
	}

	// master and layouts share one id space
	masterIDs := ooxml.NewAllocator(firstMasterID)
	master := idRef{id: masterIDs.Next(), rel: presRels.Next()}
	rels = append(rels,
		entities.Relationship{ID: master.rel, Type: ooxml.RelSlideMaster, Target: "slideMasters/slideMaster1.xml"},
		entities.Relationship{ID: presRels.Next(), Type: ooxml.RelTheme, Target: "theme/theme1.xml"},
		entities.Relationship{ID: presRels.Next(), Type: ooxml.RelPresProps, Target: "presProps.xml"},
		entities.Relationship{ID: presRels.Next(), Type: ooxml.RelViewProps, Target: "viewProps.xml"},
		entities.Relationship{ID: presRels.Next(), Type: ooxml.RelTableStyles, Target: "tableStyles.xml"},
	)

	notesCount := countNotes(deck)
	var notesMasterRel string
	if notesCount > 0 {
		notesMasterRel = presRels.Next()
		rels = append(rels, entities.Relationship{ID: notesMasterRel, Type: ooxml.RelNotesMaster, Target: "notesMasters/notesMaster1.xml"})
	}

	layouts := usedLayouts(rendered)
	layoutNumber := make(map[entities.SlideLayout]int, len(layouts))
	masterRels := ooxml.NewRelIDs(1)
	var (
		layoutRefs      []idRef
		masterRelations []entities.Relationship
	)
	for i, l := range layouts {
		layoutNumber[l] = i + 1
		ref := idRef{id: masterIDs.Next(), rel: masterRels.Next()}
		layoutRefs = append(layoutRefs, ref)
		masterRelations = append(masterRelations, entities.Relationship{
			ID: ref.rel, Type: ooxml.RelSlideLayout, Target: fmt.Sprintf("../slideLayouts/slideLayout%d.xml", i+1),
		})
	}
	masterRelations = append(masterRelations, entities.Relationship{
		ID: masterRels.Next(), Type: ooxml.RelTheme, Target: "../theme/theme1.xml",
	})

	meta := deck.Metadata
	if meta.Title == "" {
		for i := range deck.Slides {
			if deck.Slides[i].HasTitle() {
				meta.Title = deck.Slides[i].TitleText()
				break
			}
		}
	}
	core := coreProps{DeckMetadata: meta, Identifier: a.identifier()}
	if a.clock != nil {
		core.Created = a.clock.Now()
	}

	parts := []entities.Part{
		{Path: corePropsPath, ContentType: ooxml.ContentTypeCoreProps, Body: corePropsXML(core)},
		{Path: appPropsPath, ContentType: ooxml.ContentTypeExtProps, Body: appPropsXML(len(rendered), notesCount, meta.Company)},
		{Path: presentationPath, ContentType: ooxml.ContentTypePresentation, Body: presentationXML(master, notesMasterRel, slideRefs), Relationships: rels},
		{Path: presPropsPath, ContentType: ooxml.ContentTypePresProps, Body: presPropsXML()},
		{Path: viewPropsPath, ContentType: ooxml.ContentTypeViewProps, Body: viewPropsXML()},
		{Path: tableStylesPath, ContentType: ooxml.ContentTypeTableStyles, Body: tableStylesXML()},
		{Path: masterPath, ContentType: ooxml.ContentTypeSlideMaster, Body: masterXML(theme, layoutRefs), Relationships: masterRelations},
	}

	for i, l := range layouts {
		body := a.cache.GetOrRender(theme.ID, "layout/"+l.String(), func() []byte {
			return layoutXML(theme, l)
		})
		parts = append(parts, entities.Part{
			Path:        layoutPath(i + 1),
			ContentType: ooxml.ContentTypeSlideLayout,
			Body:        body,
			Relationships: []entities.Relationship{
				{ID: "rId1", Type: ooxml.RelSlideMaster, Target: "../slideMasters/slideMaster1.xml"},
			},
		})
	}

	parts = append(parts, entities.Part{
		Path:        themePath,
		ContentType: ooxml.ContentTypeTheme,
		Body: a.cache.GetOrRender(theme.ID, "theme1", func() []byte {
			return themeXML(theme)
		}),
	})

	if notesCount > 0 {
		parts = append(parts,
			entities.Part{
				Path:        notesMasterPath,
				ContentType: ooxml.ContentTypeNotesMaster,
				Body: a.cache.GetOrRender(theme.ID, "notesMaster1", func() []byte {
					return notesMasterXML(theme)
				}),
				Relationships: []entities.Relationship{
					{ID: "rId1", Type: ooxml.RelTheme, Target: "../theme/theme2.xml"},
				},
			},
			entities.Part{
				Path:        notesThemePath,
				ContentType: ooxml.ContentTypeTheme,
				Body: a.cache.GetOrRender(theme.ID, "theme1", func() []byte {
					return themeXML(theme)
				}),
			},
		)
	}

	var notesParts []entities.Part
	for i, rs := range rendered {
		slideRels := []entities.Relationship{{
			ID:     "rId1",
			Type:   ooxml.RelSlideLayout,
			Target: fmt.Sprintf("../slideLayouts/slideLayout%d.xml", layoutNumber[rs.Layout]),
		}}
		slideRels = append(slideRels, rs.Relationships...)

		if paragraphs := deck.Slides[i].NotesParagraphs(); len(paragraphs) > 0 {
			// slide rel ids are contiguous from rId1, so the next free one follows them
			notesRel := ooxml.NewRelIDs(int64(len(slideRels)) + 1).Next()
			slideRels = append(slideRels, entities.Relationship{
				ID: notesRel, Type: ooxml.RelNotesSlide, Target: fmt.Sprintf("../notesSlides/notesSlide%d.xml", i+1),
			})
			notesParts = append(notesParts, entities.Part{
				Path:        notesSlidePath(i + 1),
				ContentType: ooxml.ContentTypeNotesSlide,
				Body:        notesSlideXML(paragraphs),
				Relationships: []entities.Relationship{
					{ID: "rId1", Type: ooxml.RelNotesMaster, Target: "../notesMasters/notesMaster1.xml"},
					{ID: "rId2", Type: ooxml.RelSlide, Target: fmt.Sprintf("../slides/slide%d.xml", i+1)},
				},
			})
		}

		parts = append(parts, entities.Part{
			Path:          slidePath(i + 1),
			ContentType:   ooxml.ContentTypeSlide,
			Body:          slideXML(rs.XML),
			Relationships: slideRels,
		})
	}
	parts = append(parts, notesParts...)

	for _, part := range parts {
		if err := pkg.add(part); err != nil {
			return nil, err
		}
	}
	return pkg, nil
}

// Ensure Assembler implements ports.PackageAssembler
var _ ports.PackageAssembler = (*Assembler)(nil)
