package domain

import "strings"

// closeMarker terminates a build-unit descriptor document.
const closeMarker = "</Project>"

// Descriptor is a small structural model of a build-unit descriptor: an
// ordered list of line elements with the document close located at parse
// time. Edits go through the model and are serialized back, which keeps the
// reference-link step stable across close-marker casing and indentation
// variations instead of splicing raw text.
type Descriptor struct {
	indent string
	lines  []string
	close  int
}

// ParseDescriptor models content as ordered line elements and locates the
// document close. The close marker is matched case-insensitively on its own
// line; when it appears more than once, the last occurrence terminates the
// document. Returns ErrDescriptorNoClose when no close is present.
func ParseDescriptor(content string) (*Descriptor, error) {
	lines := strings.Split(content, "\n")
	closeIdx := -1
	for i, line := range lines {
		if strings.EqualFold(strings.TrimSpace(line), closeMarker) {
			closeIdx = i
		}
	}
	if closeIdx == -1 {
		return nil, ErrDescriptorNoClose
	}
	line := lines[closeIdx]
	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	return &Descriptor{lines: lines, close: closeIdx, indent: indent}, nil
}

// ContainsReference reports whether the document already mentions the given
// descriptor file name, compared case-insensitively. The containment check
// is what makes the link step idempotent.
func (d *Descriptor) ContainsReference(fileName string) bool {
	needle := strings.ToLower(fileName)
	for _, line := range d.lines {
		if strings.Contains(strings.ToLower(line), needle) {
			return true
		}
	}
	return false
}

// InsertReference inserts a project-reference element for includePath
// immediately before the document close, indented relative to the close
// line's own indentation.
func (d *Descriptor) InsertReference(includePath string) {
	block := []string{
		d.indent + "  <ItemGroup>",
		d.indent + `    <ProjectReference Include="` + includePath + `" />`,
		d.indent + "  </ItemGroup>",
	}
	lines := make([]string, 0, len(d.lines)+len(block))
	lines = append(lines, d.lines[:d.close]...)
	lines = append(lines, block...)
	lines = append(lines, d.lines[d.close:]...)
	d.lines = lines
	d.close += len(block)
}

// String serializes the document back to its textual form.
func (d *Descriptor) String() string {
	return strings.Join(d.lines, "\n")
}
