package domain

import "strings"

// Uncategorized is the sentinel label written when a file cannot be
// classified: incompatible type, classifier failure, or an out-of-vocabulary
// response.
const Uncategorized = "Uncategorized"

// DefaultLabels is the archive's category vocabulary. It can be overridden
// through configuration; Uncategorized is always a member regardless.
var DefaultLabels = []string{
	"Machine Learning",
	"Philosophy",
	"Historic Image",
	"Non-Historic Image",
}

// LabelSet is the closed set of tag values this system is allowed to persist.
type LabelSet struct {
	ordered []string
	members map[string]struct{}
}

// NewLabelSet builds a label set from the given category names.
// Uncategorized is added if absent. Empty and duplicate names are ignored.
func NewLabelSet(labels ...string) LabelSet {
	s := LabelSet{members: make(map[string]struct{})}
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if _, ok := s.members[l]; ok {
			continue
		}
		s.members[l] = struct{}{}
		s.ordered = append(s.ordered, l)
	}
	if _, ok := s.members[Uncategorized]; !ok {
		s.members[Uncategorized] = struct{}{}
		s.ordered = append(s.ordered, Uncategorized)
	}
	return s
}

// Contains reports whether label is a member of the closed set.
func (s LabelSet) Contains(label string) bool {
	_, ok := s.members[label]
	return ok
}

// Normalize trims a raw classifier response and coerces anything outside the
// closed set to Uncategorized. This is the only gate between model output and
// persisted tags.
func (s LabelSet) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if s.Contains(trimmed) {
		return trimmed
	}
	return Uncategorized
}

// Categories returns the members excluding Uncategorized, in declaration
// order. Used to build classification prompts.
func (s LabelSet) Categories() []string {
	out := make([]string, 0, len(s.ordered))
	for _, l := range s.ordered {
		if l != Uncategorized {
			out = append(out, l)
		}
	}
	return out
}
