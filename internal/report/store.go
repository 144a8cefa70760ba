package report

import (
	"sort"
	"strings"

	"github.com/toyz/apilint/internal/models"
)

// Store accumulates findings keyed by signature. Recording a finding whose
// signature is already present replaces the earlier one.
//
// A Store belongs to one examination run and is not safe for concurrent use.
type Store struct {
	failures map[string]*Failure
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{failures: make(map[string]*Failure)}
}

// Warn records a warning
func (s *Store) Warn(class *models.Class, detail models.Element, rule, msg string) {
	s.Add(NewFailure(class, detail, false, rule, msg))
}

// Error records an error
func (s *Store) Error(class *models.Class, detail models.Element, rule, msg string) {
	s.Add(NewFailure(class, detail, true, rule, msg))
}

// Add records a finding
func (s *Store) Add(f *Failure) {
	s.failures[f.Signature] = f
}

// Get returns the finding with the given signature
func (s *Store) Get(signature string) (*Failure, bool) {
	f, ok := s.failures[signature]
	return f, ok
}

// Len returns the number of findings
func (s *Store) Len() int {
	return len(s.failures)
}

// Sorted returns the findings ordered by signature
func (s *Store) Sorted() []*Failure {
	keys := make([]string, 0, len(s.failures))
	for k := range s.failures {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]*Failure, len(keys))
	for i, k := range keys {
		out[i] = s.failures[k]
	}
	return out
}

// HasErrors reports whether any finding is an error
func (s *Store) HasErrors() bool {
	for _, f := range s.failures {
		if f.Error {
			return true
		}
	}
	return false
}

// Subtract drops every finding whose signature is also in prev
func (s *Store) Subtract(prev *Store) {
	for sig := range prev.failures {
		delete(s.failures, sig)
	}
}

// Merge adds every finding of other
func (s *Store) Merge(other *Store) {
	for sig, f := range other.failures {
		s.failures[sig] = f
	}
}

// Filter keeps only findings whose rule code starts with one of the
// prefixes. Findings without a rule code never match.
func (s *Store) Filter(prefixes []string) {
	for sig, f := range s.failures {
		if !MatchesFilter(prefixes, f) {
			delete(s.failures, sig)
		}
	}
}

// MatchesFilter reports whether the finding's rule starts with one of the prefixes
func MatchesFilter(prefixes []string, f *Failure) bool {
	if f.Rule == "" {
		return false
	}
	for _, p := range prefixes {
		if strings.HasPrefix(f.Rule, p) {
			return true
		}
	}
	return false
}

// Noticed records classes by fully-qualified name
type Noticed map[string]*models.Class

// Notice records a class
func (n Noticed) Notice(c *models.Class) {
	n[c.FullName] = c
}

// Names returns the recorded class names in sorted order
func (n Noticed) Names() []string {
	names := make([]string, 0, len(n))
	for name := range n {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
