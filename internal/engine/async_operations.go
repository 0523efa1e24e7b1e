package engine

import (
	"context"

	"github.com/gcbaptista/go-file-search/internal/jobs"
	"github.com/gcbaptista/go-file-search/model"
)

// executeRun fills instance by walking run.Root. It runs on the job manager's
// worker goroutine.
func (e *Engine) executeRun(ctx context.Context, instance *IndexInstance, run model.Run) (jobs.RunResult, error) {
	// Sealed on every exit path.
	defer instance.seal()

	var cancelled bool
	count, err := instance.indexer.Run(ctx, run.ID, run.Root, func(ev model.Event) {
		switch ev.Type {
		case model.EventProgress:
			e.jobManager.UpdateRunProgress(run.ID, ev.Count)
		case model.EventCompleted:
			cancelled = ev.Cancelled
		}
		// Subscribers that query after the terminal event see the final snapshot.
		if ev.IsTerminal() {
			instance.seal()
		}
		e.broker.Publish(ev)
	})

	return jobs.RunResult{Indexed: count, Cancelled: cancelled}, err
}
