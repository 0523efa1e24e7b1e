package model

// Sentinel extension labels used when no real file extension applies.
const (
	ExtensionFolder = "Folder"
	ExtensionFile   = "File"
)

// AllTypes is the selector label meaning "no extension filter". It is a
// presentation concept and never appears in the extension catalog.
const AllTypes = "All Types"

// DocRecord is the indexed view of one filesystem entry.
// ID is assigned densely in insertion order within a single indexing run.
type DocRecord struct {
	ID              uint32 `json:"id"`
	Name            string `json:"name"`         // Original-case entry name
	Path            string `json:"full_path"`    // Absolute filesystem path
	Extension       string `json:"extension"`    // ".ext", ExtensionFolder or ExtensionFile
	SizeDisplay     string `json:"size_display"` // e.g. "1.5 KB", "--" for folders
	ModifiedDisplay string `json:"date_display"` // Local time, minute precision
	LowerName       string `json:"-"`            // Cached lowercase Name for containment checks
	IsFolder        bool   `json:"is_folder"`
}
