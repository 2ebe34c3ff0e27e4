package service

import (
	"context"
	"log"
	"sync"
	"time"
)

// SchedulerConfig holds settings for the periodic pipeline trigger.
type SchedulerConfig struct {
	Interval time.Duration
}

// SchedulerWorker periodically runs the status transition engine followed by
// the notification dispatcher. Overlapping invocations are safe: both engines
// are idempotent by selection predicate and dedup reservation, so the worker
// does not serialize against external triggers.
type SchedulerWorker struct {
	engine     *StatusEngine
	dispatcher *Dispatcher
	cfg        SchedulerConfig
	wg         sync.WaitGroup
}

// NewSchedulerWorker creates a new SchedulerWorker.
func NewSchedulerWorker(engine *StatusEngine, dispatcher *Dispatcher, cfg SchedulerConfig) *SchedulerWorker {
	return &SchedulerWorker{
		engine:     engine,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

// Start runs the trigger loop until ctx is canceled. It blocks until an
// in-flight pipeline pass has finished.
func (w *SchedulerWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	log.Printf("scheduler: started (interval=%s)", w.cfg.Interval)

	for {
		select {
		case <-ctx.Done():
			log.Printf("scheduler: shutting down, waiting for in-flight run...")
			w.wg.Wait()
			log.Printf("scheduler: shutdown complete")
			return
		case <-ticker.C:
			w.wg.Add(1)
			go func() {
				defer w.wg.Done()
				w.runOnce(ctx)
			}()
		}
	}
}

func (w *SchedulerWorker) runOnce(ctx context.Context) {
	results, err := w.engine.RunStatusUpdate(ctx)
	if err != nil {
		log.Printf("scheduler: status update run failed: %v", err)
	} else {
		total := 0
		for _, r := range results {
			total += r.UpdatedCount
		}
		log.Printf("scheduler: status update complete (%d agencies, %d updated)", len(results), total)
	}

	dispatch, err := w.dispatcher.RunNotificationDispatch(ctx)
	if err != nil {
		log.Printf("scheduler: dispatch run failed: %v", err)
		return
	}
	log.Printf("scheduler: dispatch complete (sent=%d, skipped_duplicate=%d, failed=%d)",
		dispatch.Sent, dispatch.SkippedDuplicate, dispatch.Failed)
}
