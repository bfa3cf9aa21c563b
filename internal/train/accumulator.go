// Package train provides training-time utilities: a fixed-slot metric
// accumulator, a wall-clock timer, an accuracy helper and a progress
// recorder fed by an explicit metrics-event channel.
package train

import "fmt"

// Accumulator keeps running sums over a fixed number of scalar slots.
// The slot count is fixed at construction; Reset zeroes all slots.
//
// Typical use in a batch loop:
//
//	metric := train.NewAccumulator(2)
//	for batch := range batches {
//	    metric.Add(lossSum, float64(numTokens))
//	}
//	avgLoss := metric.Get(0) / metric.Get(1)
type Accumulator struct {
	data []float64
}

// NewAccumulator creates an accumulator with n slots, all zero.
func NewAccumulator(n int) *Accumulator {
	if n <= 0 {
		panic(fmt.Sprintf("Accumulator: slot count must be positive, got %d", n))
	}
	return &Accumulator{data: make([]float64, n)}
}

// Add adds one value per slot. The number of values must equal the slot count.
func (a *Accumulator) Add(values ...float64) {
	if len(values) != len(a.data) {
		panic(fmt.Sprintf("Accumulator.Add: expected %d values, got %d", len(a.data), len(values)))
	}
	for i, v := range values {
		a.data[i] += v
	}
}

// AddAt adds a value to a single slot.
func (a *Accumulator) AddAt(i int, v float64) {
	a.data[i] += v
}

// Get returns the running sum of slot i.
func (a *Accumulator) Get(i int) float64 {
	return a.data[i]
}

// Len returns the slot count.
func (a *Accumulator) Len() int {
	return len(a.data)
}

// Reset clears all slots to zero.
func (a *Accumulator) Reset() {
	for i := range a.data {
		a.data[i] = 0
	}
}
