package store

import (
	"sort"
	"sync"
)

// ExtensionCatalog counts how many indexed documents carry each extension label.
type ExtensionCatalog struct {
	mu     sync.RWMutex
	counts map[string]int
}

// NewExtensionCatalog creates an empty catalog.
func NewExtensionCatalog() *ExtensionCatalog {
	return &ExtensionCatalog{counts: make(map[string]int)}
}

// Increment records one more document with the given label.
func (c *ExtensionCatalog) Increment(label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[label]++
}

// Count returns the number of documents recorded for label.
func (c *ExtensionCatalog) Count(label string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counts[label]
}

// Len returns the number of distinct labels.
func (c *ExtensionCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.counts)
}

// Counts returns a copy of the label counts.
func (c *ExtensionCatalog) Counts() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	counts := make(map[string]int, len(c.counts))
	for label, n := range c.counts {
		counts[label] = n
	}
	return counts
}

// SortedExtensions returns labels by descending count, ties broken
// lexicographically ascending.
func (c *ExtensionCatalog) SortedExtensions() []string {
	c.mu.RLock()
	labels := make([]string, 0, len(c.counts))
	for label := range c.counts {
		labels = append(labels, label)
	}
	counts := c.counts
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})
	c.mu.RUnlock()
	return labels
}
