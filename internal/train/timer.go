package train

import "time"

// Timer measures elapsed wall-clock time across multiple start/stop
// cycles, for throughput reporting (e.g. tokens per second).
type Timer struct {
	times   []float64
	started time.Time
	running bool
}

// NewTimer creates a timer and starts its first measurement.
func NewTimer() *Timer {
	t := &Timer{}
	t.Start()
	return t
}

// Start begins a new measurement.
func (t *Timer) Start() {
	t.started = time.Now()
	t.running = true
}

// Stop ends the current measurement and returns its duration in seconds.
func (t *Timer) Stop() float64 {
	if !t.running {
		return 0
	}
	elapsed := time.Since(t.started).Seconds()
	t.times = append(t.times, elapsed)
	t.running = false
	return elapsed
}

// Sum returns the total of all recorded durations in seconds.
func (t *Timer) Sum() float64 {
	var total float64
	for _, v := range t.times {
		total += v
	}
	return total
}

// Avg returns the average recorded duration in seconds.
func (t *Timer) Avg() float64 {
	if len(t.times) == 0 {
		return 0
	}
	return t.Sum() / float64(len(t.times))
}
