package indexing

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gcbaptista/go-file-search/config"
	"github.com/gcbaptista/go-file-search/index"
	internalErrors "github.com/gcbaptista/go-file-search/internal/errors"
	"github.com/gcbaptista/go-file-search/internal/tokenizer"
	"github.com/gcbaptista/go-file-search/model"
	"github.com/gcbaptista/go-file-search/store"
)

// Listener receives the events of an indexing run. It is called on the
// indexing goroutine and must not block.
type Listener func(model.Event)

// Options tunes a Service.
type Options struct {
	ProgressInterval int          // Indexed items between progress events
	Logger           *slog.Logger // Defaults to slog.Default()
}

// Service walks a directory tree and populates one index snapshot.
// It is the only writer of the structures it was created with.
type Service struct {
	invertedIndex    *index.InvertedIndex
	documentStore    *store.DocumentStore
	extensions       *store.ExtensionCatalog
	progressInterval int
	logger           *slog.Logger
}

// NewService creates a new indexing Service.
func NewService(invertedIndex *index.InvertedIndex, documentStore *store.DocumentStore, extensions *store.ExtensionCatalog, opts Options) (*Service, error) {
	if invertedIndex == nil {
		return nil, fmt.Errorf("inverted index cannot be nil")
	}
	if documentStore == nil {
		return nil, fmt.Errorf("document store cannot be nil")
	}
	if extensions == nil {
		return nil, fmt.Errorf("extension catalog cannot be nil")
	}
	if invertedIndex.Index == nil {
		invertedIndex.Index = index.NewInvertedIndex().Index
	}
	if documentStore.Docs == nil {
		documentStore.Docs = make(map[uint32]model.DocRecord)
	}

	interval := opts.ProgressInterval
	if interval <= 0 {
		interval = config.DefaultProgressInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		invertedIndex:    invertedIndex,
		documentStore:    documentStore,
		extensions:       extensions,
		progressInterval: interval,
		logger:           logger,
	}, nil
}

// Run indexes every entry below root and reports through notify.
//
// It emits a progress event each time the indexed count reaches a multiple of
// the progress interval, then exactly one terminal event: Completed when the
// walk ends or is cancelled, Failed when root cannot be walked at all. The
// returned error is non-nil only in the Failed case.
//
// ctx is checked whenever the walk reaches a directory; records indexed before
// cancellation stay in the snapshot.
func (s *Service) Run(ctx context.Context, runID, root string, notify Listener) (int, error) {
	if notify == nil {
		notify = func(model.Event) {}
	}
	startTime := time.Now()

	absRoot, err := resolveRoot(root)
	if err != nil {
		s.logger.Error("Indexing run failed", "run_id", runID, "root", root, "error", err)
		notify(model.Failed(runID, err.Error()))
		return 0, err
	}

	s.logger.Info("Indexing run started", "run_id", runID, "root", absRoot)

	count := 0
	stopped := false
	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return internalErrors.NewRunFailureError(absRoot, err)
			}
			// Unreadable subdirectory: its own entry was already indexed
			// (or skipped); the contents are left out.
			s.logger.Debug("Skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() && ctx.Err() != nil {
			stopped = true
			return filepath.SkipAll
		}
		if path == absRoot {
			return nil
		}

		if s.IndexItem(d.Name(), path, d.IsDir()) {
			count++
			if count%s.progressInterval == 0 {
				notify(model.Progress(runID, count))
			}
		}
		return nil
	})

	if walkErr != nil {
		s.logger.Error("Indexing run failed", "run_id", runID, "root", absRoot, "indexed", count, "error", walkErr)
		notify(model.Failed(runID, walkErr.Error()))
		return count, walkErr
	}

	elapsed := time.Since(startTime).Seconds()
	s.logger.Info("Indexing run finished", "run_id", runID, "root", absRoot, "indexed", count, "duration_seconds", elapsed, "cancelled", stopped)
	notify(model.Completed(runID, count, elapsed, stopped))
	return count, nil
}

// IndexItem stats one entry and, on success, stores its record, counts its
// extension and posts its ID under every trigram of its name. It returns false
// without touching any structure when the entry cannot be stat'ed.
func (s *Service) IndexItem(name, fullPath string, isFolder bool) bool {
	info, err := os.Stat(fullPath)
	if err != nil {
		s.logger.Debug("Skipping entry", "path", fullPath, "error", err)
		return false
	}
	// Symlinks are stat'ed through; a link to a directory is a folder.
	if info.IsDir() {
		isFolder = true
	}

	doc := model.DocRecord{
		Name:            name,
		Path:            fullPath,
		Extension:       NormalizeExtension(name, isFolder),
		SizeDisplay:     SizePlaceholder,
		ModifiedDisplay: FormatModified(info.ModTime()),
		LowerName:       strings.ToLower(name),
		IsFolder:        isFolder,
	}
	if !isFolder {
		doc.SizeDisplay = FormatSize(info.Size())
	}
	grams := tokenizer.GenerateTrigrams(name)

	// Record and postings become visible to readers together.
	s.documentStore.Mu.Lock()
	s.invertedIndex.Mu.Lock()
	docID := s.documentStore.InsertUnsafe(doc)
	s.invertedIndex.AddUnsafe(docID, grams)
	s.invertedIndex.Mu.Unlock()
	s.documentStore.Mu.Unlock()

	s.extensions.Increment(doc.Extension)
	return true
}

// resolveRoot returns the absolute, symlink-free form of root, or a
// RunFailureError when root is not an accessible directory.
func resolveRoot(root string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", internalErrors.NewRunFailureError(root, fmt.Errorf("root path is empty"))
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", internalErrors.NewRunFailureError(root, err)
	}
	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", internalErrors.NewRunFailureError(absRoot, err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", internalErrors.NewRunFailureError(absRoot, err)
	}
	if !info.IsDir() {
		return "", internalErrors.NewRunFailureError(absRoot, fmt.Errorf("not a directory"))
	}
	return resolved, nil
}
