package transcribe

import "sync"

// ProgressState is one phase of the transcription progress indicator.
type ProgressState int

const (
	ProgressIdle ProgressState = iota
	ProgressRunning
	ProgressCompleting
	ProgressDone
)

func (s ProgressState) String() string {
	switch s {
	case ProgressIdle:
		return "idle"
	case ProgressRunning:
		return "running"
	case ProgressCompleting:
		return "completing"
	case ProgressDone:
		return "done"
	default:
		return "unknown"
	}
}

// runningCap is the highest value the indicator reaches before the real
// transcription result arrives.
const runningCap = 95

// Progress models the cosmetic in-flight indicator as an explicit state
// machine: idle → running → completing → done. It holds no timers; an
// external clock or ticker drives it through Tick, which makes it
// deterministic under test.
//
// Invariants: the value never decreases within a run, never reports 100
// before Complete has been called, and ticks outside running/completing
// stall silently.
type Progress struct {
	mu    sync.Mutex
	state ProgressState
	value float64
}

// NewProgress returns an idle indicator at zero.
func NewProgress() *Progress {
	return &Progress{}
}

// Start begins a new run, resetting the value to zero.
func (p *Progress) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = ProgressRunning
	p.value = 0
}

// Tick advances the indicator one step: a slow crawl capped below
// completion while running, then an ease-out toward 100 once completing.
func (p *Progress) Tick() {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case ProgressRunning:
		if p.value < runningCap {
			p.value++
		}
	case ProgressCompleting:
		p.value += (100 - p.value) * 0.2
		if p.value >= 99.5 {
			p.value = 100
			p.state = ProgressDone
		}
	}
}

// Complete signals that the real result has arrived; subsequent ticks
// animate the remaining distance to 100.
func (p *Progress) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == ProgressRunning {
		p.state = ProgressCompleting
	}
}

// Reset returns the indicator to idle, e.g. after a transcription failure.
func (p *Progress) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = ProgressIdle
	p.value = 0
}

// Value reports the current progress percentage.
func (p *Progress) Value() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// State reports the current phase.
func (p *Progress) State() ProgressState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}
