// Package wallet turns a "connect wallet" click into an address.
//
// The dashboard only depends on Connector, so the simulated handshake can be
// swapped for a key-backed one (or a real identity provider) without touching
// how assets are filtered.
package wallet

import "context"

// Result is the outcome of one connect attempt.
type Result struct {
	Address string
	Err     error
}

// Connector starts an asynchronous connect. Implementations must arm any
// timers before returning and must deliver exactly one Result on the
// returned channel.
type Connector interface {
	Connect(ctx context.Context) <-chan Result
}
