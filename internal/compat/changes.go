package compat

import (
	"sort"

	"github.com/toyz/apilint/internal/models"
	"github.com/toyz/apilint/internal/report"
)

// Changes splits the classes noticed in two runs into those added or
// changed in the current run and those only present in the previous one.
// Classes whose identity hash is unchanged appear in neither. The inputs
// are not modified.
func Changes(cur, prev report.Noticed) (changed, removed report.Noticed) {
	changed = make(report.Noticed, len(cur))
	removed = make(report.Noticed)
	for name, c := range cur {
		if p, ok := prev[name]; ok && p.Hash() == c.Hash() {
			continue
		}
		changed[name] = c
	}
	for name, p := range prev {
		if _, ok := cur[name]; !ok {
			removed[name] = p
		}
	}
	return changed, removed
}

// MemberDiff lists the normalized member declarations added to and
// removed from a class between two versions
type MemberDiff struct {
	Class   string   `json:"class"`
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`
}

// Empty reports whether no member differs
func (d MemberDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// DiffMembers compares the members of two versions of a class. Either side
// may be nil.
func DiffMembers(prev, cur *models.Class) MemberDiff {
	var diff MemberDiff
	before, after := memberSet(prev), memberSet(cur)
	switch {
	case cur != nil:
		diff.Class = cur.FullName
	case prev != nil:
		diff.Class = prev.FullName
	}
	for sig := range after {
		if !before[sig] {
			diff.Added = append(diff.Added, sig)
		}
	}
	for sig := range before {
		if !after[sig] {
			diff.Removed = append(diff.Removed, sig)
		}
	}
	sort.Strings(diff.Added)
	sort.Strings(diff.Removed)
	return diff
}

// DiffChanged returns the member diff of every changed class, sorted by
// class name. prev supplies the earlier version of each class, if any.
func DiffChanged(changed, prev report.Noticed) []MemberDiff {
	diffs := make([]MemberDiff, 0, len(changed))
	for _, name := range changed.Names() {
		if d := DiffMembers(prev[name], changed[name]); !d.Empty() {
			diffs = append(diffs, d)
		}
	}
	return diffs
}

func memberSet(c *models.Class) map[string]bool {
	set := make(map[string]bool)
	if c == nil {
		return set
	}
	for _, m := range c.Members() {
		set[models.Normalize(m.String())] = true
	}
	return set
}
