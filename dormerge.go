// Package dormerge implements batch merge operations for objects in a DOR
// (digital object repository). The top-level package provides the domain
// model and the merge job; the dorhttp and dormem packages provide
// Repository implementations.
package dormerge

import (
	"context"
	"errors"
	"fmt"
)

// package version
const Version = "0.1.0"

var (
	// ErrNotFound is returned by Repository.Find when no object exists
	// with the given druid.
	ErrNotFound = errors.New("object not found")

	// ErrNotModifiable indicates an object's repository state does not
	// allow modification.
	ErrNotModifiable = errors.New("object does not allow modification")
)

// RelationshipKind names a kind of directed relationship between two
// repository objects.
type RelationshipKind string

// IsConstituentOf declares that the source object is part of the target
// object. It is the only relationship kind the merge tools record.
const IsConstituentOf RelationshipKind = "isConstituentOf"

// Relationship is a directed link from the object that carries it to
// Target.
type Relationship struct {
	Kind   RelationshipKind `json:"kind"`
	Target string           `json:"target"`
}

// Repository provides access to objects in a DOR. Implementations include
// dorhttp.Client and dormem.Repo.
type Repository interface {
	// Find returns the object with the given druid, or an error wrapping
	// ErrNotFound.
	Find(ctx context.Context, druid string) (*Object, error)

	// Save persists the object's content metadata and any relationships
	// recorded since Find.
	Save(ctx context.Context, obj *Object) error
}

// ChildError wraps a failure while processing one secondary object during a
// merge run. Child errors are collected in the run's Report; they are never
// fatal to the run.
type ChildError struct {
	Druid string
	Err   error
}

func (e *ChildError) Error() string {
	return fmt.Sprintf("child object %q: %s", e.Druid, e.Err)
}

func (e *ChildError) Unwrap() error { return e.Err }
