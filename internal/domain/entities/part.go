package entities

// Relationship links a source part to a target part or external resource
type Relationship struct {
	ID       string
	Type     string
	Target   string
	External bool
}

// Part is one entry of an OPC package
type Part struct {
	// Path is the absolute part name without the leading slash, e.g. ppt/slides/slide1.xml
	Path string

	ContentType string
	Body        []byte

	// Relationships are serialized to the part's sibling _rels part
	Relationships []Relationship
}

// RelsPath returns the path of the part's relationship part
func (p *Part) RelsPath() string {
	return RelsPathFor(p.Path)
}

// RelsPathFor returns the relationship part path for a source part path.
// The package itself (empty path) maps to _rels/.rels.
func RelsPathFor(partPath string) string {
	dir, file := "", partPath
	for i := len(partPath) - 1; i >= 0; i-- {
		if partPath[i] == '/' {
			dir, file = partPath[:i+1], partPath[i+1:]
			break
		}
	}
	return dir + "_rels/" + file + ".rels"
}
