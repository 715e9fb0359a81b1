// Package contentmd provides a typed model for DOR content metadata
// documents: the XML record describing an object's content resources.
package contentmd

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Content metadata document types.
const (
	TypeImage = "image"
	TypeBook  = "book"
	TypeFile  = "file"
)

// Document is a content metadata record. Resources are kept in document
// order; all iteration and mutation preserves that order.
type Document struct {
	XMLName   xml.Name   `xml:"contentMetadata"`
	ObjectID  string     `xml:"objectId,attr"`
	Type      string     `xml:"type,attr"`
	Resources []Resource `xml:"resource"`
}

// Resource is one identified, typed chunk of an object's content: a page,
// an image, a file group. A Resource with a non-nil External field is a
// virtual resource: its content lives under another object and is only
// referenced here.
type Resource struct {
	ID       string       `xml:"id,attr,omitempty"`
	Type     string       `xml:"type,attr,omitempty"`
	Sequence int          `xml:"sequence,attr,omitempty"`
	Label    string       `xml:"label,omitempty"`
	Files    []File       `xml:"file"`
	External *ExternalRef `xml:"externalFile"`
}

// File is a single content file within a resource.
type File struct {
	ID       string `xml:"id,attr"`
	MimeType string `xml:"mimetype,attr,omitempty"`
	Size     int64  `xml:"size,attr,omitempty"`
}

// ExternalRef points a virtual resource at a resource physically stored
// under another object.
type ExternalRef struct {
	ObjectID   string `xml:"objectId,attr"`
	ResourceID string `xml:"resourceId,attr"`
}

// NewDocument returns an empty, well-formed document for the given object
// and content type.
func NewDocument(objectID, typ string) *Document {
	return &Document{ObjectID: objectID, Type: typ}
}

// Parse decodes a content metadata document from r.
func Parse(r io.Reader) (*Document, error) {
	doc := &Document{}
	if err := xml.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("parsing content metadata: %w", err)
	}
	return doc, nil
}

// Encode writes the document to w as indented XML with a standard header.
func (d *Document) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encoding content metadata: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// AddVirtualResource appends a virtual resource referencing src, a resource
// stored under the object named by objectID. The new resource carries src's
// type, a sequence number continuing from the document's current maximum,
// and an external reference to objectID/src.ID. Duplicate references are
// not detected: adding the same source twice appends two entries.
func (d *Document) AddVirtualResource(objectID string, src Resource) *Resource {
	seq := d.nextSequence()
	res := Resource{
		ID:       fmt.Sprintf("%s_%d", d.ObjectID, seq),
		Type:     src.Type,
		Sequence: seq,
		External: &ExternalRef{ObjectID: objectID, ResourceID: src.ID},
	}
	d.Resources = append(d.Resources, res)
	return &d.Resources[len(d.Resources)-1]
}

func (d *Document) nextSequence() int {
	max := 0
	for _, r := range d.Resources {
		if r.Sequence > max {
			max = r.Sequence
		}
	}
	return max + 1
}

// Len returns the number of resources in the document.
func (d *Document) Len() int { return len(d.Resources) }
