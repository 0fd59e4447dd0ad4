package domain

import "sort"

// ChangeSet accumulates the repository-relative paths touched during a run.
// It is an explicit value threaded through each generation step; steps
// return the paths they touched and the caller merges them, so no step
// depends on shared mutable state. Entries are case-preserved, de-duplicated
// exactly, and never removed.
type ChangeSet struct {
	seen  map[string]struct{}
	paths []string
}

// NewChangeSet returns an empty change set.
func NewChangeSet() *ChangeSet {
	return &ChangeSet{seen: make(map[string]struct{})}
}

// Record adds a path to the set. Adding a path twice is a no-op.
func (c *ChangeSet) Record(path string) {
	if path == "" {
		return
	}
	if _, ok := c.seen[path]; ok {
		return
	}
	c.seen[path] = struct{}{}
	c.paths = append(c.paths, path)
}

// Merge records every path of other into c.
func (c *ChangeSet) Merge(other *ChangeSet) {
	if other == nil {
		return
	}
	for _, p := range other.paths {
		c.Record(p)
	}
}

// Len returns the number of distinct paths recorded.
func (c *ChangeSet) Len() int {
	return len(c.paths)
}

// Paths returns the recorded paths sorted lexicographically.
func (c *ChangeSet) Paths() []string {
	out := make([]string, len(c.paths))
	copy(out, c.paths)
	sort.Strings(out)
	return out
}
