package engine

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gcbaptista/go-file-search/index"
	"github.com/gcbaptista/go-file-search/internal/indexing"
	"github.com/gcbaptista/go-file-search/internal/search"
	"github.com/gcbaptista/go-file-search/model"
	"github.com/gcbaptista/go-file-search/store"
)

// IndexInstance holds one snapshot: the structures built by a single run and
// the services bound to them. A new run always gets a new instance.
type IndexInstance struct {
	runID         string
	InvertedIndex *index.InvertedIndex
	DocumentStore *store.DocumentStore
	Extensions    *store.ExtensionCatalog
	indexer       *indexing.Service
	searcher      *search.Service
	sealed        atomic.Bool
}

// NewIndexInstance creates an empty snapshot owned by runID.
func NewIndexInstance(runID string, progressInterval int, logger *slog.Logger) (*IndexInstance, error) {
	invIndex := index.NewInvertedIndex()
	docStore := store.NewDocumentStore()
	extensions := store.NewExtensionCatalog()

	indexerService, err := indexing.NewService(invIndex, docStore, extensions, indexing.Options{
		ProgressInterval: progressInterval,
		Logger:           logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create indexer service: %w", err)
	}

	searchService, err := search.NewService(invIndex, docStore)
	if err != nil {
		return nil, fmt.Errorf("failed to create search service: %w", err)
	}

	return &IndexInstance{
		runID:         runID,
		InvertedIndex: invIndex,
		DocumentStore: docStore,
		Extensions:    extensions,
		indexer:       indexerService,
		searcher:      searchService,
	}, nil
}

// RunID returns the run that owns this snapshot.
func (i *IndexInstance) RunID() string {
	return i.runID
}

// Sealed reports whether the owning run has ended. A sealed snapshot never
// changes again.
func (i *IndexInstance) Sealed() bool {
	return i.sealed.Load()
}

func (i *IndexInstance) seal() {
	i.sealed.Store(true)
}

// Search delegates to the underlying search service.
func (i *IndexInstance) Search(query string, filter search.ExtensionFilter) []model.DocRecord {
	return i.searcher.Search(query, filter)
}

// ScanByExtension delegates to the underlying search service.
func (i *IndexInstance) ScanByExtension(filter search.ExtensionFilter) []model.DocRecord {
	return i.searcher.ScanByExtension(filter)
}

// SortedExtensions returns the catalog labels, most frequent first.
func (i *IndexInstance) SortedExtensions() []string {
	return i.Extensions.SortedExtensions()
}

// DocumentCount returns the number of records in the snapshot.
func (i *IndexInstance) DocumentCount() int {
	return i.DocumentStore.Len()
}
