// Package dormem provides an in-memory dormerge.Repository, used in tests
// and dry runs.
package dormem

import (
	"context"
	"fmt"
	"sync"

	"github.com/sdr-ops/dormerge"
	"github.com/sdr-ops/dormerge/contentmd"
)

// Repo is an in-memory object store. Find returns working copies; changes
// become visible only through Save, matching the remote repository's
// semantics. The zero value is not usable; use New.
type Repo struct {
	mu       sync.Mutex
	objects  map[string]*dormerge.Object
	saves    map[string]int
	saveErrs map[string]error
}

func New() *Repo {
	return &Repo{
		objects:  map[string]*dormerge.Object{},
		saves:    map[string]int{},
		saveErrs: map[string]error{},
	}
}

// NewWith returns a Repo seeded with the given objects.
func NewWith(objs ...*dormerge.Object) *Repo {
	r := New()
	for _, o := range objs {
		r.Add(o)
	}
	return r
}

// Add stores a copy of obj without counting a save.
func (r *Repo) Add(obj *dormerge.Object) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.objects[obj.Druid] = clone(obj)
}

// Find implements dormerge.Repository.
func (r *Repo) Find(ctx context.Context, druid string) (*dormerge.Object, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	obj, ok := r.objects[druid]
	if !ok {
		return nil, fmt.Errorf("%q: %w", druid, dormerge.ErrNotFound)
	}
	out := clone(obj)
	// relationships accumulate per working copy, not across loads
	out.Relationships = nil
	return out, nil
}

// Save implements dormerge.Repository.
func (r *Repo) Save(ctx context.Context, obj *dormerge.Object) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.saveErrs[obj.Druid]; err != nil {
		return err
	}
	stored, ok := r.objects[obj.Druid]
	if !ok {
		return fmt.Errorf("%q: %w", obj.Druid, dormerge.ErrNotFound)
	}
	saved := clone(obj)
	saved.Relationships = append(stored.Relationships, obj.Relationships...)
	r.objects[obj.Druid] = saved
	r.saves[obj.Druid]++
	return nil
}

// FailSaves makes subsequent saves of druid return err.
func (r *Repo) FailSaves(druid string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveErrs[druid] = err
}

// SaveCount returns how many times druid has been saved.
func (r *Repo) SaveCount(druid string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves[druid]
}

// Get returns the stored state of druid, or nil. The returned object is a
// copy.
func (r *Repo) Get(druid string) *dormerge.Object {
	r.mu.Lock()
	defer r.mu.Unlock()
	obj, ok := r.objects[druid]
	if !ok {
		return nil
	}
	return clone(obj)
}

func clone(obj *dormerge.Object) *dormerge.Object {
	out := &dormerge.Object{
		Druid:              obj.Druid,
		AllowsModification: obj.AllowsModification,
		Relationships:      append([]dormerge.Relationship(nil), obj.Relationships...),
	}
	if obj.ContentMetadata != nil {
		doc := *obj.ContentMetadata
		doc.Resources = append([]contentmd.Resource(nil), obj.ContentMetadata.Resources...)
		out.ContentMetadata = &doc
	}
	return out
}
