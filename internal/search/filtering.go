package search

import (
	"strings"

	"github.com/gcbaptista/go-file-search/model"
)

// ResolveExtensionFilter combines the two ways a caller can restrict by
// extension. A non-blank manual list wins: it is split on commas, whitespace
// is removed from each token, which is then lowercased and given a leading dot
// when missing. Empty tokens are dropped. Otherwise a selected label other than model.AllTypes is
// used as-is. Otherwise the filter is inactive.
//
// Tokens are not validated, so "tar gz" becomes ".targz".
func ResolveExtensionFilter(manual, selected string) ExtensionFilter {
	if strings.TrimSpace(manual) != "" {
		var labels []string
		for _, part := range strings.Split(manual, ",") {
			token := strings.ToLower(strings.Join(strings.Fields(part), ""))
			if token == "" {
				continue
			}
			if !strings.HasPrefix(token, ".") {
				token = "." + token
			}
			labels = append(labels, token)
		}
		if filter := NewExtensionFilter(labels...); filter.Active() {
			return filter
		}
	}

	if selected != "" && selected != model.AllTypes {
		return NewExtensionFilter(selected)
	}
	return ExtensionFilter{}
}

// ScanByExtension returns every record whose extension passes an active
// filter, in doc ID order. An inactive filter yields an empty result rather
// than the whole store.
func (s *Service) ScanByExtension(filter ExtensionFilter) []model.DocRecord {
	results := make([]model.DocRecord, 0)
	if !filter.Active() {
		return results
	}

	s.documentStore.Mu.RLock()
	defer s.documentStore.Mu.RUnlock()

	for id := uint32(0); id < s.documentStore.NextID; id++ {
		doc, ok := s.documentStore.GetUnsafe(id)
		if ok && filter.Allows(doc.Extension) {
			results = append(results, doc)
		}
	}
	return results
}
