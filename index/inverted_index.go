package index

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// InvertedIndex maps a trigram (shingle) to the set of document IDs whose
// lowercased name contains it.
//
// Postings are compressed bitmaps; intersection of two lists is a single And.
// Methods suffixed with Unsafe expect the caller to hold Mu.
type InvertedIndex struct {
	Mu    sync.RWMutex
	Index map[string]*roaring.Bitmap
}

// NewInvertedIndex creates an empty index.
func NewInvertedIndex() *InvertedIndex {
	return &InvertedIndex{Index: make(map[string]*roaring.Bitmap)}
}

// AddUnsafe records docID under every gram in grams.
func (ii *InvertedIndex) AddUnsafe(docID uint32, grams map[string]struct{}) {
	for gram := range grams {
		postings, ok := ii.Index[gram]
		if !ok {
			postings = roaring.New()
			ii.Index[gram] = postings
		}
		postings.Add(docID)
	}
}

// PostingsUnsafe returns the live posting list for gram, or nil when the gram
// has never been indexed. Callers must not mutate the returned bitmap.
func (ii *InvertedIndex) PostingsUnsafe(gram string) *roaring.Bitmap {
	return ii.Index[gram]
}

// CardinalityUnsafe returns the posting list length for gram.
func (ii *InvertedIndex) CardinalityUnsafe(gram string) uint64 {
	if postings, ok := ii.Index[gram]; ok {
		return postings.GetCardinality()
	}
	return 0
}

// Postings returns a sorted copy of the doc IDs indexed under gram.
func (ii *InvertedIndex) Postings(gram string) []uint32 {
	ii.Mu.RLock()
	defer ii.Mu.RUnlock()

	postings, ok := ii.Index[gram]
	if !ok {
		return []uint32{}
	}
	return postings.ToArray()
}

// GramsFor returns every gram whose posting list contains docID.
// It scans the whole index and is intended for diagnostics and tests.
func (ii *InvertedIndex) GramsFor(docID uint32) map[string]struct{} {
	ii.Mu.RLock()
	defer ii.Mu.RUnlock()

	grams := make(map[string]struct{})
	for gram, postings := range ii.Index {
		if postings.Contains(docID) {
			grams[gram] = struct{}{}
		}
	}
	return grams
}

// Len returns the number of distinct grams.
func (ii *InvertedIndex) Len() int {
	ii.Mu.RLock()
	defer ii.Mu.RUnlock()
	return len(ii.Index)
}
