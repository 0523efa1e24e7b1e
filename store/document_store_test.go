package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-file-search/model"
)

func TestDocumentStore_InsertAssignsDenseIDs(t *testing.T) {
	ds := NewDocumentStore()

	ds.Mu.Lock()
	first := ds.InsertUnsafe(model.DocRecord{Name: "a.txt"})
	second := ds.InsertUnsafe(model.DocRecord{Name: "b.txt", ID: 99}) // caller-provided ID is ignored
	ds.Mu.Unlock()

	assert.Equal(t, uint32(0), first)
	assert.Equal(t, uint32(1), second)
	assert.Equal(t, uint32(2), ds.NextID)
	assert.Equal(t, 2, ds.Len())

	doc, ok := ds.Get(1)
	require.True(t, ok)
	assert.Equal(t, "b.txt", doc.Name)
	assert.Equal(t, uint32(1), doc.ID)

	_, ok = ds.Get(2)
	assert.False(t, ok)
}

func TestDocumentStore_AllOrderedByID(t *testing.T) {
	ds := NewDocumentStore()
	ds.Mu.Lock()
	for _, name := range []string{"c", "a", "b"} {
		ds.InsertUnsafe(model.DocRecord{Name: name})
	}
	ds.Mu.Unlock()

	all := ds.All()
	require.Len(t, all, 3)
	for i, doc := range all {
		assert.Equal(t, uint32(i), doc.ID)
	}
	assert.Equal(t, "c", all[0].Name)
}
