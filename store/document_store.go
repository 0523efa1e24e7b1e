package store

import (
	"sort"
	"sync"

	"github.com/gcbaptista/go-file-search/model"
)

// DocumentStore is the authoritative mapping from doc ID to record for one
// indexing run. IDs are dense: NextID is always the number of stored records.
type DocumentStore struct {
	Mu     sync.RWMutex
	Docs   map[uint32]model.DocRecord
	NextID uint32
}

// NewDocumentStore creates an empty store whose first ID is 0.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{Docs: make(map[uint32]model.DocRecord)}
}

// InsertUnsafe stores doc under the next free ID and returns that ID.
// The caller must hold Mu for writing.
func (ds *DocumentStore) InsertUnsafe(doc model.DocRecord) uint32 {
	id := ds.NextID
	doc.ID = id
	ds.Docs[id] = doc
	ds.NextID++
	return id
}

// GetUnsafe returns the record stored under id. The caller must hold Mu.
func (ds *DocumentStore) GetUnsafe(id uint32) (model.DocRecord, bool) {
	doc, ok := ds.Docs[id]
	return doc, ok
}

// Get returns the record stored under id.
func (ds *DocumentStore) Get(id uint32) (model.DocRecord, bool) {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()
	return ds.GetUnsafe(id)
}

// Len returns the number of stored records.
func (ds *DocumentStore) Len() int {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()
	return len(ds.Docs)
}

// All returns every record ordered by ID.
func (ds *DocumentStore) All() []model.DocRecord {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()

	docs := make([]model.DocRecord, 0, len(ds.Docs))
	for _, doc := range ds.Docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs
}
