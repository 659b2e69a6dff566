package wallet

import (
	"context"
	"log"
	"math/rand/v2"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultDelay is the artificial connect latency.
const DefaultDelay = 700 * time.Millisecond

// Simulator fakes a wallet handshake: after a fixed delay it yields one
// address drawn uniformly from a fixed candidate set. It never fails unless
// ctx is cancelled.
type Simulator struct {
	candidates []string
	delay      time.Duration
	clock      clock.Clock
	pick       func(n int) int
}

// SimulatorOption customises a Simulator.
type SimulatorOption func(*Simulator)

// WithClock sets the clock the delay is measured on.
func WithClock(c clock.Clock) SimulatorOption {
	return func(s *Simulator) { s.clock = c }
}

// WithPicker replaces the uniform random index source.
func WithPicker(pick func(n int) int) SimulatorOption {
	return func(s *Simulator) { s.pick = pick }
}

// NewSimulator creates a simulator. candidates must not be empty.
func NewSimulator(candidates []string, delay time.Duration, opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		candidates: append([]string(nil), candidates...),
		delay:      delay,
		clock:      clock.New(),
		pick:       rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Candidates returns a copy of the address set.
func (s *Simulator) Candidates() []string {
	return append([]string(nil), s.candidates...)
}

// Connect arms the delay timer synchronously and resolves on the returned channel.
func (s *Simulator) Connect(ctx context.Context) <-chan Result {
	out := make(chan Result, 1)
	timer := s.clock.Timer(s.delay)

	go func() {
		select {
		case <-ctx.Done():
			timer.Stop()
			out <- Result{Err: ctx.Err()}
		case <-timer.C:
			addr := s.candidates[s.pick(len(s.candidates))]
			log.Printf("[wallet] Simulated connect resolved: %s", addr)
			out <- Result{Address: addr}
		}
	}()
	return out
}
