package worker

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workerTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// slowGeneration simulates a long multi-doctor pass that yields to
// cancellation between doctors, like the real generation usecase.
type slowGeneration struct {
	started chan struct{}
	once    sync.Once

	mu           sync.Mutex
	sawCancelled bool
	calls        int
}

func newSlowGeneration() *slowGeneration {
	return &slowGeneration{started: make(chan struct{})}
}

func (g *slowGeneration) Execute(ctx context.Context) error {
	g.once.Do(func() { close(g.started) })
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()

	for i := 0; i < 100; i++ {
		if err := ctx.Err(); err != nil {
			g.mu.Lock()
			g.sawCancelled = true
			g.mu.Unlock()
			return err
		}
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}

func (g *slowGeneration) cancelled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sawCancelled
}

func TestStopInterruptsInFlightPass(t *testing.T) {
	generation := newSlowGeneration()
	w := NewSlotGenerationWorker(workerTestLogger(), generation, time.Hour, 0)

	w.Start(context.Background())

	select {
	case <-generation.started:
	case <-time.After(time.Second):
		t.Fatal("generation pass never started")
	}

	stopStart := time.Now()
	w.Stop()
	elapsed := time.Since(stopStart)

	// The full pass takes around a second; Stop must not wait for it.
	assert.Less(t, elapsed, 500*time.Millisecond, "Stop waited for the full pass")
	assert.True(t, generation.cancelled(), "in-flight pass did not observe cancellation")
}

func TestStopBeforeFirstPass(t *testing.T) {
	generation := newSlowGeneration()
	w := NewSlotGenerationWorker(workerTestLogger(), generation, time.Hour, time.Hour)

	w.Start(context.Background())
	w.Stop()

	generation.mu.Lock()
	calls := generation.calls
	generation.mu.Unlock()
	assert.Equal(t, 0, calls)
}

func TestStopIsIdempotent(t *testing.T) {
	generation := newSlowGeneration()
	w := NewSlotGenerationWorker(workerTestLogger(), generation, time.Hour, time.Hour)

	w.Start(context.Background())
	w.Stop()
	require.NotPanics(t, w.Stop)
}
