package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"clinic-scheduling-service/internal/usecase"

	"github.com/sirupsen/logrus"
)

// SlotGenerationWorker runs the slot generation pass on a fixed interval so
// the rolling booking window keeps moving forward without operator action.
type SlotGenerationWorker struct {
	log               *logrus.Logger
	generationUsecase usecase.SlotGenerationUsecase
	interval          time.Duration
	startupDelay      time.Duration

	stopChan chan struct{}
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

func NewSlotGenerationWorker(
	log *logrus.Logger,
	generationUsecase usecase.SlotGenerationUsecase,
	interval time.Duration,
	startupDelay time.Duration,
) *SlotGenerationWorker {
	return &SlotGenerationWorker{
		log:               log,
		generationUsecase: generationUsecase,
		interval:          interval,
		startupDelay:      startupDelay,
		stopChan:          make(chan struct{}),
	}
}

// Start launches the worker loop. The first pass runs after a short startup
// delay so the service finishes wiring before hitting the database. The loop
// runs on a cancellable child of ctx so Stop can interrupt an in-flight pass.
func (w *SlotGenerationWorker) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	go w.run(runCtx)
	w.log.Infof("Slot generation worker started: interval=%s", w.interval)
}

// Stop cancels the worker's context and waits for it to exit. An in-flight
// pass stops at the next per-doctor cancellation point rather than running to
// completion. Safe to call more than once.
func (w *SlotGenerationWorker) Stop() {
	if w.stopped.Swap(true) {
		return
	}
	close(w.stopChan)
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
	w.log.Info("Slot generation worker stopped")
}

func (w *SlotGenerationWorker) run(ctx context.Context) {
	defer w.wg.Done()

	select {
	case <-time.After(w.startupDelay):
	case <-w.stopChan:
		return
	case <-ctx.Done():
		return
	}

	w.runOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.runOnce(ctx)
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (w *SlotGenerationWorker) runOnce(ctx context.Context) {
	start := time.Now()
	if err := w.generationUsecase.Execute(ctx); err != nil {
		w.log.Warnf("Slot generation pass completed with errors after %s: %+v", time.Since(start), err)
		return
	}
	w.log.Infof("Slot generation pass completed in %s", time.Since(start))
}
