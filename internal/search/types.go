package search

import (
	"sort"
	"strings"
)

// ExtensionFilter restricts results to a set of extension labels.
// The zero value is inactive and allows every record.
type ExtensionFilter struct {
	labels map[string]struct{}
}

// NewExtensionFilter builds a filter over labels. Empty labels are ignored;
// a filter without labels is inactive.
func NewExtensionFilter(labels ...string) ExtensionFilter {
	set := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		if label != "" {
			set[label] = struct{}{}
		}
	}
	if len(set) == 0 {
		return ExtensionFilter{}
	}
	return ExtensionFilter{labels: set}
}

// Active reports whether the filter restricts anything.
func (f ExtensionFilter) Active() bool {
	return len(f.labels) > 0
}

// Allows reports whether a record with extension ext passes the filter.
func (f ExtensionFilter) Allows(ext string) bool {
	if !f.Active() {
		return true
	}
	_, ok := f.labels[ext]
	return ok
}

// Labels returns the filter labels sorted.
func (f ExtensionFilter) Labels() []string {
	labels := make([]string, 0, len(f.labels))
	for label := range f.labels {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Key is a stable string form of the filter, suitable for cache keys.
func (f ExtensionFilter) Key() string {
	return strings.Join(f.Labels(), ",")
}
