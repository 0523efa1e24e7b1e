package search

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/gcbaptista/go-file-search/index"
	"github.com/gcbaptista/go-file-search/internal/tokenizer"
	"github.com/gcbaptista/go-file-search/model"
	"github.com/gcbaptista/go-file-search/store"
)

// Service answers substring queries over one index snapshot.
// It only reads; the snapshot may still be growing while it is used.
type Service struct {
	invertedIndex *index.InvertedIndex
	documentStore *store.DocumentStore
}

// NewService creates a new search Service.
func NewService(invIndex *index.InvertedIndex, docStore *store.DocumentStore) (*Service, error) {
	if invIndex == nil {
		return nil, fmt.Errorf("inverted index cannot be nil")
	}
	if docStore == nil {
		return nil, fmt.Errorf("document store cannot be nil")
	}

	return &Service{
		invertedIndex: invIndex,
		documentStore: docStore,
	}, nil
}

// Search returns every record whose lowercased name contains the lowercased
// query and whose extension passes filter, ordered by (name length, name).
// An empty query returns an empty result. The result is never truncated.
func (s *Service) Search(query string, filter ExtensionFilter) []model.DocRecord {
	results := make([]model.DocRecord, 0)
	if query == "" {
		return results
	}
	lowerQuery := strings.ToLower(query)

	s.documentStore.Mu.RLock()
	defer s.documentStore.Mu.RUnlock()

	candidates := s.candidates(lowerQuery)
	if candidates == nil || candidates.IsEmpty() {
		return results
	}

	it := candidates.Iterator()
	for it.HasNext() {
		doc, ok := s.documentStore.GetUnsafe(it.Next())
		if !ok {
			continue
		}
		if !filter.Allows(doc.Extension) {
			continue
		}
		// Trigram overlap is necessary but not sufficient.
		if !strings.Contains(doc.LowerName, lowerQuery) {
			continue
		}
		results = append(results, doc)
	}

	sortByNameLength(results)
	return results
}

// candidates intersects the posting lists of every trigram of lowerQuery,
// rarest first. The returned bitmap is owned by the caller. The caller must
// hold the document store read lock.
func (s *Service) candidates(lowerQuery string) *roaring.Bitmap {
	grams := tokenizer.SortedTrigrams(lowerQuery)

	s.invertedIndex.Mu.RLock()
	defer s.invertedIndex.Mu.RUnlock()

	sort.SliceStable(grams, func(i, j int) bool {
		return s.invertedIndex.CardinalityUnsafe(grams[i]) < s.invertedIndex.CardinalityUnsafe(grams[j])
	})

	var result *roaring.Bitmap
	for _, gram := range grams {
		postings := s.invertedIndex.PostingsUnsafe(gram)
		if postings == nil {
			return nil
		}
		if result == nil {
			result = postings.Clone()
		} else {
			result.And(postings)
		}
		if result.IsEmpty() {
			return result
		}
	}
	return result
}

// sortByNameLength orders docs by name length in characters, then by name,
// then by ID.
func sortByNameLength(docs []model.DocRecord) {
	sort.Slice(docs, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(docs[i].Name), utf8.RuneCountInString(docs[j].Name)
		if li != lj {
			return li < lj
		}
		if docs[i].Name != docs[j].Name {
			return docs[i].Name < docs[j].Name
		}
		return docs[i].ID < docs[j].ID
	})
}
