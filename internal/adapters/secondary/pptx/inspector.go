package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/ooxml"
	"github.com/fredcamaral/mdpptx/internal/domain/entities"
	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

type contentTypesDoc struct {
	Defaults []struct {
		Extension   string `xml:"Extension,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Default"`
	Overrides []struct {
		PartName    string `xml:"PartName,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Override"`
}

type relsDoc struct {
	Relationships []struct {
		ID         string `xml:"Id,attr"`
		Type       string `xml:"Type,attr"`
		Target     string `xml:"Target,attr"`
		TargetMode string `xml:"TargetMode,attr"`
	} `xml:"Relationship"`
}

type coreDoc struct {
	Title      string `xml:"title"`
	Creator    string `xml:"creator"`
	Identifier string `xml:"identifier"`
}

type presentationDoc struct {
	Slides []struct {
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type layoutDoc struct {
	CSld struct {
		Name string `xml:"name,attr"`
	} `xml:"cSld"`
}

// Inspector reads archives back and re-checks their relationship graph
type Inspector struct{}

// NewInspector creates a new archive inspector
func NewInspector() *Inspector {
	return &Inspector{}
}

// archiveView indexes the entries of an open archive
type archiveView struct {
	files map[string]*zip.File
	order []string
}

func (v *archiveView) read(name string) ([]byte, error) {
	f, ok := v.files[name]
	if !ok {
		return nil, entities.PackagingError(name, "part not found")
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

func (v *archiveView) decode(name string, into any) error {
	data, err := v.read(name)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(data, into); err != nil {
		ce := entities.PackagingError(name, "malformed XML")
		ce.Cause = err
		return ce
	}
	return nil
}

// Inspect validates the package structure and summarizes its slides
func (i *Inspector) Inspect(r io.ReaderAt, size int64) (*ports.ArchiveReport, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	view := &archiveView{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		if _, dup := view.files[f.Name]; dup {
			return nil, entities.PackagingError(f.Name, "duplicate archive entry")
		}
		view.files[f.Name] = f
		view.order = append(view.order, f.Name)
	}

	if len(view.order) == 0 || view.order[0] != contentTypesPath {
		return nil, entities.PackagingError(contentTypesPath, "manifest is not the first entry")
	}

	var ct contentTypesDoc
	if err := view.decode(contentTypesPath, &ct); err != nil {
		return nil, err
	}
	if err := checkContentTypes(view, ct); err != nil {
		return nil, err
	}

	report := &ports.ArchiveReport{PartCount: len(view.order)}
	rels := make(map[string]relsDoc)
	for _, name := range view.order {
		if path.Ext(name) != ".rels" {
			continue
		}
		var doc relsDoc
		if err := view.decode(name, &doc); err != nil {
			return nil, err
		}
		source := sourceOfRels(name)
		for _, rel := range doc.Relationships {
			report.Relationships++
			if rel.TargetMode == "External" {
				continue
			}
			target := resolveTarget(source, rel.Target)
			if _, ok := view.files[target]; !ok {
				return nil, entities.PackagingError(name, fmt.Sprintf("relationship %s targets missing part %s", rel.ID, target))
			}
		}
		rels[source] = doc
	}

	var core coreDoc
	if _, ok := view.files[corePropsPath]; ok {
		if err := view.decode(corePropsPath, &core); err != nil {
			return nil, err
		}
	}
	report.Title = core.Title
	report.Author = core.Creator
	report.Identifier = core.Identifier

	slides, err := slideOrder(view, rels)
	if err != nil {
		return nil, err
	}
	for n, slide := range slides {
		summary, err := summarizeSlide(view, rels, slide)
		if err != nil {
			return nil, err
		}
		summary.Number = n + 1
		report.Slides = append(report.Slides, summary)
	}

	return report, nil
}

func checkContentTypes(view *archiveView, ct contentTypesDoc) error {
	defaults := make(map[string]bool, len(ct.Defaults))
	for _, d := range ct.Defaults {
		defaults[strings.ToLower(d.Extension)] = true
	}
	overrides := make(map[string]bool, len(ct.Overrides))
	for _, o := range ct.Overrides {
		overrides[strings.TrimPrefix(o.PartName, "/")] = true
	}

	for _, name := range view.order {
		if name == contentTypesPath {
			continue
		}
		ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
		if !overrides[name] && !defaults[ext] {
			return entities.PackagingError(name, "no content type declared")
		}
	}
	return nil
}

// sourceOfRels maps ppt/slides/_rels/slide1.xml.rels back to ppt/slides/slide1.xml
func sourceOfRels(relsPath string) string {
	dir, file := path.Split(relsPath)
	dir = strings.TrimSuffix(strings.TrimSuffix(dir, "/"), "_rels")
	return strings.TrimPrefix(dir+strings.TrimSuffix(file, ".rels"), "/")
}

// slideOrder follows the presentation's slide id list to slide part paths
func slideOrder(view *archiveView, rels map[string]relsDoc) ([]string, error) {
	var pres presentationDoc
	if err := view.decode(presentationPath, &pres); err != nil {
		return nil, err
	}

	targets := make(map[string]string)
	for _, rel := range rels[presentationPath].Relationships {
		if rel.Type == ooxml.RelSlide {
			targets[rel.ID] = resolveTarget(presentationPath, rel.Target)
		}
	}

	out := make([]string, 0, len(pres.Slides))
	for _, s := range pres.Slides {
		target, ok := targets[s.RID]
		if !ok {
			return nil, entities.PackagingError(presentationPath, fmt.Sprintf("slide id references unknown relationship %s", s.RID))
		}
		out = append(out, target)
	}
	return out, nil
}

func summarizeSlide(view *archiveView, rels map[string]relsDoc, slidePath string) (ports.SlideSummary, error) {
	summary := ports.SlideSummary{Part: slidePath}

	data, err := view.read(slidePath)
	if err != nil {
		return summary, err
	}
	title, text, err := slideText(data)
	if err != nil {
		ce := entities.PackagingError(slidePath, "malformed XML")
		ce.Cause = err
		return summary, ce
	}
	summary.Title = title
	summary.Text = text

	for _, rel := range rels[slidePath].Relationships {
		target := resolveTarget(slidePath, rel.Target)
		switch rel.Type {
		case ooxml.RelSlideLayout:
			var layout layoutDoc
			if err := view.decode(target, &layout); err != nil {
				return summary, err
			}
			summary.Layout = layout.CSld.Name
		case ooxml.RelNotesSlide:
			data, err := view.read(target)
			if err != nil {
				return summary, err
			}
			_, notes, err := slideText(data)
			if err != nil {
				ce := entities.PackagingError(target, "malformed XML")
				ce.Cause = err
				return summary, ce
			}
			summary.Notes = notes
		}
	}
	return summary, nil
}

// slideText collects the paragraphs of every shape; the title placeholder
// text is returned separately
func slideText(data []byte) (string, []string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		title     []string
		text      []string
		inTitle   bool
		inText    bool
		paragraph strings.Builder
		depth     int
		spDepth   = -1
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case t.Name.Space == ooxml.NamespaceP && t.Name.Local == "sp":
				spDepth = depth
				inTitle = false
			case t.Name.Space == ooxml.NamespaceP && t.Name.Local == "ph" && spDepth > 0:
				for _, attr := range t.Attr {
					if attr.Name.Local == "type" && (attr.Value == "title" || attr.Value == "ctrTitle") {
						inTitle = true
					}
				}
			case t.Name.Space == ooxml.NamespaceA && t.Name.Local == "p":
				paragraph.Reset()
			case t.Name.Space == ooxml.NamespaceA && t.Name.Local == "t":
				inText = true
			}

		case xml.CharData:
			if inText {
				paragraph.Write(t)
			}

		case xml.EndElement:
			switch {
			case t.Name.Space == ooxml.NamespaceA && t.Name.Local == "t":
				inText = false
			case t.Name.Space == ooxml.NamespaceA && t.Name.Local == "p":
				if s := paragraph.String(); s != "" {
					if inTitle {
						title = append(title, s)
					} else {
						text = append(text, s)
					}
				}
			case t.Name.Space == ooxml.NamespaceP && t.Name.Local == "sp" && depth == spDepth:
				spDepth = -1
				inTitle = false
			}
			depth--
		}
	}

	return strings.Join(title, " "), text, nil
}

// Ensure Inspector implements ports.ArchiveInspector
var _ ports.ArchiveInspector = (*Inspector)(nil)
