package dormerge

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sdr-ops/dormerge/contentmd"
	"github.com/sdr-ops/dormerge/logging"
)

// Merge is a batch job that merges a set of secondary ("child") objects
// into one primary object. Each child's content resources are attached to
// the primary's content metadata as virtual resources, an isConstituentOf
// relationship is recorded on the child, and the child is saved. The
// primary is saved once, after all children are processed.
type Merge struct {
	// Repo provides object access. Required.
	Repo Repository

	// Purge, if set, discards the primary's existing content metadata
	// before any child is merged.
	Purge bool

	// Logger receives progress and per-child error lines. If nil, logging
	// is disabled.
	Logger *slog.Logger
}

// Run executes the merge. It fails immediately if the primary object can't
// be loaded or doesn't allow modification. Child failures are recorded in
// the returned report and logged, but never stop the loop: the primary is
// saved exactly once after the last child, however many children failed.
// A non-nil error is returned only for primary-level failures; the report
// is non-nil whenever the run reached the child loop.
func (m *Merge) Run(ctx context.Context, primaryID string, childIDs []string) (*Report, error) {
	log := m.Logger
	if log == nil {
		log = logging.DisabledLogger()
	}
	primary, err := m.Repo.Find(ctx, primaryID)
	if err != nil {
		return nil, fmt.Errorf("loading primary object %q: %w", primaryID, err)
	}
	if !primary.AllowsModification {
		return nil, fmt.Errorf("primary object %q: %w", primaryID, ErrNotModifiable)
	}
	if m.Purge {
		primary.ContentMetadata = contentmd.NewDocument(primaryID, contentmd.TypeImage)
		log.Info("purged existing content metadata", "druid", primaryID)
	}
	if primary.ContentMetadata == nil {
		primary.ContentMetadata = contentmd.NewDocument(primaryID, contentmd.TypeImage)
	}
	report := &Report{Primary: primaryID, Purged: m.Purge}
	for _, childID := range childIDs {
		n, err := m.mergeChild(ctx, primary, childID, log)
		if err != nil {
			cerr := &ChildError{Druid: childID, Err: err}
			log.Error("skipping child object", "druid", childID, "error", cerr)
			report.Children = append(report.Children, ChildResult{Druid: childID, Err: cerr})
			continue
		}
		report.Children = append(report.Children, ChildResult{Druid: childID, Resources: n})
	}
	if err := m.Repo.Save(ctx, primary); err != nil {
		return report, fmt.Errorf("saving primary object %q: %w", primaryID, err)
	}
	log.Info("saved primary object", "druid", primaryID, "resources", primary.ContentMetadata.Len())
	return report, nil
}

// mergeChild loads one child, records its constituent relationship, saves
// it, and attaches its resources to the primary's document. Resources are
// attached only after the child saves, so a failed child contributes
// nothing to the primary.
func (m *Merge) mergeChild(ctx context.Context, primary *Object, childID string, log *slog.Logger) (int, error) {
	child, err := m.Repo.Find(ctx, childID)
	if err != nil {
		return 0, err
	}
	if !child.AllowsModification {
		return 0, ErrNotModifiable
	}
	log.Info("merging child object", "druid", childID, "parent", primary.Druid)
	var resources []contentmd.Resource
	if child.ContentMetadata != nil {
		resources = child.ContentMetadata.Resources
	}
	child.AddRelationship(IsConstituentOf, primary.Druid)
	if err := m.Repo.Save(ctx, child); err != nil {
		return 0, err
	}
	for _, src := range resources {
		added := primary.ContentMetadata.AddVirtualResource(childID, src)
		log.Info("attached virtual resource",
			"parent", primary.Druid,
			"child", childID,
			"resource", src.ID,
			"type", src.Type,
			"sequence", added.Sequence)
	}
	return len(resources), nil
}
