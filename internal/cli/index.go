package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/gcbaptista/go-file-search/internal/engine"
	"github.com/gcbaptista/go-file-search/model"
)

// indexRoot runs one indexing pass over root and reports progress on w.
// When ctx is done the run is cancelled and the partial snapshot is kept.
func indexRoot(ctx context.Context, eng *engine.Engine, root string, w io.Writer) (model.Event, error) {
	sub := eng.Subscribe()
	defer sub.Cancel()

	runID, err := eng.Start(root)
	if err != nil {
		return model.Event{}, err
	}

	done := ctx.Done()
	for {
		select {
		case <-done:
			eng.Cancel()
			done = nil
		case ev, ok := <-sub.C():
			if !ok {
				return model.Event{}, fmt.Errorf("event stream closed before run %s finished", runID)
			}
			if ev.RunID != runID {
				continue
			}

			switch ev.Type {
			case model.EventProgress:
				_, _ = fmt.Fprintf(w, "Indexing... %d items\n", ev.Count)
			case model.EventCompleted:
				if ev.Cancelled {
					_, _ = fmt.Fprintln(w, "Indexing cancelled")
				}
				_, _ = fmt.Fprintf(w, "Indexed %d items in %.2fs\n", ev.Count, ev.Duration)
				return ev, nil
			case model.EventFailed:
				return ev, fmt.Errorf("indexing failed: %s", ev.Message)
			}
		}
	}
}
