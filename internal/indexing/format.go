package indexing

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gcbaptista/go-file-search/model"
)

// UnknownSize marks a size that could not be determined.
const UnknownSize int64 = -1

// SizePlaceholder is displayed for folders and unknown sizes.
const SizePlaceholder = "--"

// ModifiedLayout renders modification times to minute precision.
const ModifiedLayout = "2006-01-02 15:04"

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatSize renders a byte count with 1024-based units and one decimal,
// e.g. 1536 -> "1.5 KB". Negative sizes render as SizePlaceholder.
func FormatSize(size int64) string {
	if size < 0 {
		return SizePlaceholder
	}

	value := float64(size)
	for _, unit := range sizeUnits {
		if value < 1024 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.1f TB", value)
}

// FormatModified renders t in local time to minute precision.
func FormatModified(t time.Time) string {
	return t.Local().Format(ModifiedLayout)
}

// NormalizeExtension returns the extension label for an entry name.
// Folders get model.ExtensionFolder and files without an extension get
// model.ExtensionFile. Leading dots are not treated as an extension separator,
// so ".bashrc" has no extension while ".config.yml" has ".yml".
func NormalizeExtension(name string, isFolder bool) string {
	if isFolder {
		return model.ExtensionFolder
	}
	ext := filepath.Ext(strings.TrimLeft(name, "."))
	if ext == "" {
		return model.ExtensionFile
	}
	return strings.ToLower(ext)
}
