package dormerge

// Report summarizes one merge run: which children merged, which failed and
// why, and how many virtual resources each contributed.
type Report struct {
	// Primary is the druid of the primary object.
	Primary string

	// Purged reports whether the primary's content metadata was discarded
	// before merging.
	Purged bool

	// Children holds one result per child identifier, in processing order.
	Children []ChildResult
}

// ChildResult is the outcome for a single child.
type ChildResult struct {
	Druid string

	// Resources is the number of virtual resources the child contributed
	// to the primary. Zero when the child failed.
	Resources int

	// Err is non-nil when the child failed; it is always a *ChildError.
	Err error
}

// Merged returns the results for children that merged successfully, in
// processing order.
func (r *Report) Merged() []ChildResult {
	var out []ChildResult
	for _, c := range r.Children {
		if c.Err == nil {
			out = append(out, c)
		}
	}
	return out
}

// Failed returns the results for children that failed, in processing order.
func (r *Report) Failed() []ChildResult {
	var out []ChildResult
	for _, c := range r.Children {
		if c.Err != nil {
			out = append(out, c)
		}
	}
	return out
}

// TotalResources returns the number of virtual resources added to the
// primary across all successfully merged children.
func (r *Report) TotalResources() int {
	n := 0
	for _, c := range r.Children {
		n += c.Resources
	}
	return n
}
