package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-file-search/index"
	testutil "github.com/gcbaptista/go-file-search/internal/testing"
	"github.com/gcbaptista/go-file-search/internal/tokenizer"
	"github.com/gcbaptista/go-file-search/model"
	"github.com/gcbaptista/go-file-search/store"
)

type testEntry struct {
	name      string
	extension string
}

// setupTestSearchService indexes entries in order, so the i-th entry gets doc ID i.
func setupTestSearchService(t *testing.T, entries ...testEntry) *Service {
	t.Helper()
	invIndex := index.NewInvertedIndex()
	docStore := store.NewDocumentStore()

	for _, e := range entries {
		doc := model.DocRecord{
			Name:      e.name,
			Path:      "/data/" + e.name,
			Extension: e.extension,
			LowerName: strings.ToLower(e.name),
			IsFolder:  e.extension == model.ExtensionFolder,
		}
		id := docStore.InsertUnsafe(doc)
		invIndex.AddUnsafe(id, tokenizer.GenerateTrigrams(doc.Name))
	}

	s, err := NewService(invIndex, docStore)
	require.NoError(t, err)
	return s
}

func TestNewService(t *testing.T) {
	t.Run("valid initialization", func(t *testing.T) {
		_, err := NewService(index.NewInvertedIndex(), store.NewDocumentStore())
		assert.NoError(t, err)
	})

	t.Run("nil inverted index", func(t *testing.T) {
		_, err := NewService(nil, store.NewDocumentStore())
		assert.Error(t, err)
	})

	t.Run("nil document store", func(t *testing.T) {
		_, err := NewService(index.NewInvertedIndex(), nil)
		assert.Error(t, err)
	})
}

func TestSearch(t *testing.T) {
	s := setupTestSearchService(t,
		testEntry{"report.pdf", ".pdf"},
		testEntry{"readme.md", ".md"},
		testEntry{"reports", model.ExtensionFolder},
		testEntry{"Prepare.TXT", ".txt"},
		testEntry{"a b c", model.ExtensionFile},
		testEntry{"go", model.ExtensionFile},
		testEntry{"Zeta report", model.ExtensionFile},
	)

	tests := []struct {
		name   string
		query  string
		filter ExtensionFilter
		want   []string
	}{
		{"shortest name first", "rep", ExtensionFilter{}, []string{"reports", "report.pdf", "Prepare.TXT", "Zeta report"}},
		{"case insensitive query", "REPORT", ExtensionFilter{}, []string{"reports", "report.pdf", "Zeta report"}},
		{"verification drops trigram false positives", "report.", ExtensionFilter{}, []string{"report.pdf"}},
		{"unknown trigram", "xyz", ExtensionFilter{}, []string{}},
		{"empty query", "", ExtensionFilter{}, []string{}},
		{"spaces are literal", "a b", ExtensionFilter{}, []string{"a b c"}},
		{"short query matches short name", "go", ExtensionFilter{}, []string{"go"}},
		{"short query does not match substrings of longer names", "ep", ExtensionFilter{}, []string{}},
		{"extension filter", "rep", NewExtensionFilter(".pdf", ".txt"), []string{"report.pdf", "Prepare.TXT"}},
		{"folder label", "rep", NewExtensionFilter(model.ExtensionFolder), []string{"reports"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := s.Search(tt.query, tt.filter)
			require.NotNil(t, results)
			assert.Equal(t, tt.want, testutil.DocNames(results))
		})
	}
}

func TestSearch_ExcludesNonMatchingReadme(t *testing.T) {
	s := setupTestSearchService(t,
		testEntry{"report.pdf", ".pdf"},
		testEntry{"readme.md", ".md"},
		testEntry{"reports", model.ExtensionFolder},
	)

	results := s.Search("rep", ExtensionFilter{})
	assert.Equal(t, []string{"reports", "report.pdf"}, testutil.DocNames(results))
}

func TestSearch_EveryResultContainsQuery(t *testing.T) {
	names := []string{"alpha.go", "alphabet.txt", "beta_alpha", "Alp", "lpha", "ALPHA"}
	entries := make([]testEntry, 0, len(names))
	for _, n := range names {
		entries = append(entries, testEntry{n, model.ExtensionFile})
	}
	s := setupTestSearchService(t, entries...)

	for _, q := range []string{"alp", "lph", "pha", "alpha", "a"} {
		for _, doc := range s.Search(q, ExtensionFilter{}) {
			assert.Contains(t, doc.LowerName, strings.ToLower(q))
		}
	}
}

func TestSearch_Idempotent(t *testing.T) {
	s := setupTestSearchService(t,
		testEntry{"report.pdf", ".pdf"},
		testEntry{"report.pdf", ".pdf"},
		testEntry{"reports", model.ExtensionFolder},
	)

	first := s.Search("report", ExtensionFilter{})
	second := s.Search("report", ExtensionFilter{})
	assert.Equal(t, first, second)
	require.Len(t, first, 3)
	// Identical names fall back to ID order.
	assert.Less(t, first[1].ID, first[2].ID)
}

func TestSearch_EmptyStore(t *testing.T) {
	s := setupTestSearchService(t)
	assert.Empty(t, s.Search("anything", ExtensionFilter{}))
	assert.Empty(t, s.ScanByExtension(NewExtensionFilter(".go")))
}

func TestSearch_DoesNotMutatePostings(t *testing.T) {
	s := setupTestSearchService(t,
		testEntry{"report.pdf", ".pdf"},
		testEntry{"repo", model.ExtensionFolder},
	)
	before := s.invertedIndex.Postings("rep")

	_ = s.Search("report", ExtensionFilter{})
	assert.Equal(t, before, s.invertedIndex.Postings("rep"))
}

func TestResolveExtensionFilter(t *testing.T) {
	tests := []struct {
		name     string
		manual   string
		selected string
		want     []string
	}{
		{"manual list", "py, png", "", []string{".png", ".py"}},
		{"manual keeps dots and lowercases", ".PY,.Md", "", []string{".md", ".py"}},
		{"manual wins over selection", "go", ".pdf", []string{".go"}},
		{"empty tokens dropped", "py,, ,", "", []string{".py"}},
		{"inner whitespace removed", "tar gz", "", []string{".targz"}},
		{"only separators falls back to selection", " , ", ".pdf", []string{".pdf"}},
		{"blank manual uses selection", "   ", "Folder", []string{"Folder"}},
		{"all types is inactive", "", model.AllTypes, []string{}},
		{"nothing is inactive", "", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := ResolveExtensionFilter(tt.manual, tt.selected)
			assert.Equal(t, tt.want, filter.Labels())
			assert.Equal(t, len(tt.want) > 0, filter.Active())
		})
	}
}

func TestExtensionFilter_Allows(t *testing.T) {
	var inactive ExtensionFilter
	assert.True(t, inactive.Allows(".anything"))
	assert.Equal(t, "", inactive.Key())

	filter := NewExtensionFilter(".py", "", ".png")
	assert.True(t, filter.Allows(".py"))
	assert.False(t, filter.Allows(".pyc"))
	assert.False(t, filter.Allows(model.ExtensionFolder))
	assert.Equal(t, ".png,.py", filter.Key())
}

func TestManualFilterExcludesFolderAndPyc(t *testing.T) {
	s := setupTestSearchService(t,
		testEntry{"main.py", ".py"},
		testEntry{"main.pyc", ".pyc"},
		testEntry{"main", model.ExtensionFolder},
		testEntry{"main.png", ".png"},
	)
	filter := ResolveExtensionFilter("py, png", "")

	assert.Equal(t, []string{"main.py", "main.png"}, testutil.DocNames(s.Search("main", filter)))
	assert.Equal(t, []string{"main.py", "main.png"}, testutil.DocNames(s.ScanByExtension(filter)))
}

func TestScanByExtension(t *testing.T) {
	s := setupTestSearchService(t,
		testEntry{"z.go", ".go"},
		testEntry{"notes.md", ".md"},
		testEntry{"a.go", ".go"},
	)

	t.Run("doc ID order", func(t *testing.T) {
		results := s.ScanByExtension(NewExtensionFilter(".go"))
		assert.Equal(t, []string{"z.go", "a.go"}, testutil.DocNames(results))
	})

	t.Run("inactive filter is empty", func(t *testing.T) {
		results := s.ScanByExtension(ExtensionFilter{})
		require.NotNil(t, results)
		assert.Empty(t, results)
	})
}
