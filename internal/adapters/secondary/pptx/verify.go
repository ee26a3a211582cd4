package pptx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

// verify checks the part graph before anything is written. Every failure
// names the offending part.
func (p *opcPackage) verify() error {
	seen := make(map[string]bool, len(p.parts))
	for _, part := range p.parts {
		if seen[part.Path] {
			return entities.PackagingError(part.Path, "duplicate part path")
		}
		seen[part.Path] = true

		if part.ContentType == "" && !hasDefaultContentType(part.Path) {
			return entities.PackagingError(part.Path, "no content type declared")
		}
	}

	if err := p.verifyRels("", p.rootRels); err != nil {
		return err
	}
	for _, part := range p.parts {
		if err := p.verifyRels(part.Path, part.Relationships); err != nil {
			return err
		}
	}

	for _, e := range p.entries() {
		if len(e.body) == 0 {
			return entities.PackagingError(e.name, "empty part body")
		}
		if err := wellFormed(e.body); err != nil {
			ce := entities.PackagingError(e.name, "malformed XML")
			ce.Cause = err
			return ce
		}
	}
	return nil
}

// verifyRels checks relationship ids are unique and internal targets resolve
func (p *opcPackage) verifyRels(source string, rels []entities.Relationship) error {
	relsPath := entities.RelsPathFor(source)
	ids := make(map[string]bool, len(rels))
	for _, rel := range rels {
		if rel.ID == "" {
			return entities.PackagingError(relsPath, "relationship without id")
		}
		if ids[rel.ID] {
			return entities.PackagingError(relsPath, fmt.Sprintf("duplicate relationship id %s", rel.ID))
		}
		ids[rel.ID] = true

		if rel.External {
			continue
		}
		target := resolveTarget(source, rel.Target)
		if !p.has(target) {
			return entities.PackagingError(relsPath, fmt.Sprintf("relationship %s targets missing part %s", rel.ID, target))
		}
	}
	return nil
}

// resolveTarget resolves a relative relationship target against its source part
func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return strings.TrimPrefix(path.Join(path.Dir(source), target), "/")
}

func hasDefaultContentType(partPath string) bool {
	switch path.Ext(partPath) {
	case ".xml", ".rels":
		return true
	}
	return false
}

// wellFormed reads every token of an XML body
func wellFormed(body []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(body))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
