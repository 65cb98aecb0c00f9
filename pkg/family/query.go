package family

import (
	"sort"
	"strings"
)

// Preview caps. Previews are small derived subsets for cards and landing
// pages, never the full graph.
const (
	RootPreviewSize   = 2
	CommonChildrenCap = 8
)

// TreePreview is the view-ready summary of a dataset: the top-level
// ancestors and their direct children.
type TreePreview struct {
	Parents  []Person `json:"parents"`
	Children []Person `json:"children"`
}

// Roots returns every person whose id never appears as a childId in the
// relationship set. Dangling edges that reference unknown ids contribute
// nothing.
func Roots(ds Dataset) []Person {
	children := make(map[string]struct{}, len(ds.Relationships))
	for _, r := range ds.Relationships {
		if id := r.ChildID(); id != "" {
			children[id] = struct{}{}
		}
	}

	roots := make([]Person, 0)
	for _, p := range ds.People {
		if _, ok := children[p.ID()]; !ok {
			roots = append(roots, p)
		}
	}
	return roots
}

// RootPreview returns up to n root people in original order. A cyclic graph
// has no roots; in that case the first n people stand in so that previews
// never render empty.
func RootPreview(ds Dataset, n int) []Person {
	preview := Roots(ds)
	if len(preview) == 0 {
		preview = ds.People
	}
	if len(preview) > n {
		preview = preview[:n]
	}
	return preview
}

// CommonChildren returns the ids of children that both parents share a
// direct edge to, sorted lexicographically and capped at max entries. A
// parent absent from the relationship set simply contributes an empty set.
func CommonChildren(ds Dataset, parentA, parentB string, max int) []string {
	childrenOf := func(parent string) map[string]struct{} {
		set := make(map[string]struct{})
		for _, r := range ds.Relationships {
			if r.ParentID() == parent {
				set[r.ChildID()] = struct{}{}
			}
		}
		return set
	}

	setA := childrenOf(parentA)
	setB := childrenOf(parentB)

	shared := make([]string, 0)
	for id := range setA {
		if _, ok := setB[id]; ok {
			shared = append(shared, id)
		}
	}
	sort.Strings(shared)

	if len(shared) > max {
		shared = shared[:max]
	}
	return shared
}

// PhotoPreview returns up to n people that have a photo, ordered by display
// name. When priority is non-empty, people whose name contains it
// (case-insensitive) sort ahead of the rest. People without a name sort with
// an empty-string surrogate.
func PhotoPreview(ds Dataset, n int, priority string) []Person {
	withPhoto := make([]Person, 0)
	for _, p := range ds.People {
		if p.Photo() != "" {
			withPhoto = append(withPhoto, p)
		}
	}

	priority = strings.ToLower(priority)
	matches := func(p Person) bool {
		return priority != "" && strings.Contains(strings.ToLower(p.Name()), priority)
	}

	sort.SliceStable(withPhoto, func(i, j int) bool {
		if priority != "" {
			mi, mj := matches(withPhoto[i]), matches(withPhoto[j])
			if mi != mj {
				return mi
			}
		}
		return withPhoto[i].Name() < withPhoto[j].Name()
	})

	if len(withPhoto) > n {
		withPhoto = withPhoto[:n]
	}
	return withPhoto
}

// Preview builds the tree summary: up to RootPreviewSize top-level ancestors
// plus their direct children in dataset order.
func Preview(ds Dataset) TreePreview {
	parents := RootPreview(ds, RootPreviewSize)

	parentIDs := make(map[string]struct{}, len(parents))
	for _, p := range parents {
		if id := p.ID(); id != "" {
			parentIDs[id] = struct{}{}
		}
	}

	childIDs := make(map[string]struct{})
	for _, r := range ds.Relationships {
		if _, ok := parentIDs[r.ParentID()]; ok {
			childIDs[r.ChildID()] = struct{}{}
		}
	}

	children := make([]Person, 0, len(childIDs))
	for _, p := range ds.People {
		if _, ok := childIDs[p.ID()]; ok && p.ID() != "" {
			children = append(children, p)
		}
		if len(children) == CommonChildrenCap {
			break
		}
	}

	return TreePreview{Parents: parents, Children: children}
}
