package capability

import (
	"context"
	"sync"
)

var (
	initMu      sync.Mutex
	initialized bool
	current     Snapshot
)

// Initialize builds the process-wide snapshot from the registered
// providers. Only the first call probes; concurrent callers block until
// it finishes and every call returns the same snapshot.
func Initialize(ctx context.Context) Snapshot {
	initMu.Lock()
	defer initMu.Unlock()
	if initialized {
		return current
	}
	current = Probe(ctx)
	initialized = true
	slogger().Info("capabilities initialized",
		"cpu", current.For(CPU).String(),
		"gpu", current.For(GPU).String(),
		"dpu", current.For(DPU).String(),
		"dpu_aeu", current.For(DPUAEU).String(),
		"vpu", current.For(VPU).String(),
		"cam", current.For(CAM).String())
	return current
}

// Current returns the process-wide snapshot, initializing it on first use.
func Current() Snapshot {
	return Initialize(context.Background())
}

// Reset forgets the process-wide snapshot so the next Initialize probes
// again. This is useful for testing.
func Reset() {
	initMu.Lock()
	defer initMu.Unlock()
	initialized = false
	current = Snapshot{}
}
