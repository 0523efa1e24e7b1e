package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/gcbaptista/go-file-search/services"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newColor(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// cell keeps a value on one table line.
func cell(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return ' '
		}
		return r
	}, s)
}

// printResults writes the hits as a table followed by a one-line summary.
// Folder rows are highlighted when colored is set.
func printResults(w io.Writer, result services.SearchResult, colored bool) {
	header := newColor(colored, color.FgCyan, color.Bold)
	folder := newColor(colored, color.FgBlue)
	summary := newColor(colored, color.FgGreen)
	dim := newColor(colored, color.FgYellow)

	if len(result.Hits) > 0 {
		var table bytes.Buffer
		tw := tabwriter.NewWriter(&table, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "NAME\tTYPE\tSIZE\tMODIFIED\tPATH")
		for _, doc := range result.Hits {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				cell(doc.Name), cell(doc.Extension), doc.SizeDisplay, doc.ModifiedDisplay, cell(doc.Path))
		}
		_ = tw.Flush()

		// Colored after alignment so escape codes do not skew column widths.
		lines := strings.Split(strings.TrimSuffix(table.String(), "\n"), "\n")
		_, _ = header.Fprintln(w, lines[0])
		for i, line := range lines[1:] {
			if result.Hits[i].IsFolder {
				_, _ = folder.Fprintln(w, line)
			} else {
				_, _ = fmt.Fprintln(w, line)
			}
		}
	}

	if result.Total > len(result.Hits) {
		_, _ = dim.Fprintf(w, "Showing the first %d of %d matches\n", len(result.Hits), result.Total)
	}
	_, _ = summary.Fprintf(w, "Found %d matches in %.2f ms\n", result.Total, result.TookMs)
}

// printExtensions writes one line per label with its record count.
func printExtensions(w io.Writer, labels []string, counts map[string]int, colored bool) {
	header := newColor(colored, color.FgCyan, color.Bold)

	var table bytes.Buffer
	tw := tabwriter.NewWriter(&table, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "EXTENSION\tCOUNT")
	for _, label := range labels {
		_, _ = fmt.Fprintf(tw, "%s\t%d\n", cell(label), counts[label])
	}
	_ = tw.Flush()

	lines := strings.Split(strings.TrimSuffix(table.String(), "\n"), "\n")
	_, _ = header.Fprintln(w, lines[0])
	for _, line := range lines[1:] {
		_, _ = fmt.Fprintln(w, line)
	}
}
