package dormerge

import (
	"github.com/sdr-ops/dormerge/contentmd"
)

// Object is a working copy of a repository object, loaded with
// Repository.Find and persisted with Repository.Save. Mutations between
// Find and Save are local until saved.
type Object struct {
	// Druid is the object's repository identifier.
	Druid string

	// AllowsModification reflects the object's repository state at load
	// time. Objects that don't allow modification must not be saved.
	AllowsModification bool

	// ContentMetadata is the object's content metadata document. It may be
	// nil for objects with no content.
	ContentMetadata *contentmd.Document

	// Relationships holds relationships recorded on this working copy
	// since it was loaded. Save appends them to the object's relationship
	// set in the repository.
	Relationships []Relationship
}

// AddRelationship records a directed relationship from the object to
// target. The relationship is persisted on the next Save.
func (o *Object) AddRelationship(kind RelationshipKind, target string) {
	o.Relationships = append(o.Relationships, Relationship{Kind: kind, Target: target})
}
