// Package session holds the per-page state of the dashboard: the one-shot
// asset load, the wallet connection machine and the owned-only filter.
//
// All mutation goes through ToggleConnection and ToggleOwnedOnlyFilter. Both
// consult a transition guard first, so an invalid transition is rejected even
// when the control is invoked programmatically rather than from the page.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/b0ase/path402/apps/assetroom/internal/assets"
	"github.com/b0ase/path402/apps/assetroom/internal/metrics"
	"github.com/b0ase/path402/apps/assetroom/internal/wallet"
)

var (
	// ErrConnectInFlight rejects a connection toggle while a connect is pending.
	ErrConnectInFlight = errors.New("connect already in progress")
	// ErrFilterUnavailable rejects a filter toggle with no connected address.
	ErrFilterUnavailable = errors.New("owned-only filter requires a connected wallet")
)

// LoadState is the forward-only asset load lifecycle.
type LoadState int

const (
	Loading LoadState = iota
	Loaded
	Failed
)

func (s LoadState) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "loading"
	}
}

// ConnState is the wallet connection machine.
type ConnState int

const (
	Disconnected ConnState = iota
	Connecting
	Connected
)

func (s ConnState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Snapshot is an immutable copy of a session's state.
type Snapshot struct {
	ID              string         `json:"id"`
	Load            LoadState      `json:"-"`
	Assets          []assets.Asset `json:"assets"`
	LoadError       string         `json:"load_error,omitempty"`
	Address         string         `json:"address,omitempty"`
	Connecting      bool           `json:"connecting"`
	FilterOwnedOnly bool           `json:"filter_owned_only"`
	ConnectError    string         `json:"connect_error,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// State derives the connection machine state.
func (s Snapshot) State() ConnState {
	switch {
	case s.Connecting:
		return Connecting
	case s.Address != "":
		return Connected
	default:
		return Disconnected
	}
}

// CanToggleConnection is false while a connect is in flight.
func (s Snapshot) CanToggleConnection() bool { return !s.Connecting }

// CanToggleFilter is true only with a resolved connection.
func (s Snapshot) CanToggleFilter() bool { return s.Address != "" && !s.Connecting }

// EffectiveFilter is the stored filter, forced off without an address.
func (s Snapshot) EffectiveFilter() bool { return s.FilterOwnedOnly && s.Address != "" }

// Option customises a Session.
type Option func(*Session)

// WithClock sets the clock used for timestamps.
func WithClock(c clock.Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithContext parents the session's lifetime on ctx.
func WithContext(ctx context.Context) Option {
	return func(s *Session) { s.parent = ctx }
}

// Session is one page lifetime. It is safe for concurrent use.
type Session struct {
	id        string
	connector wallet.Connector
	clock     clock.Clock
	parent    context.Context
	ctx       context.Context
	cancel    context.CancelFunc
	createdAt time.Time

	mu         sync.Mutex
	load       LoadState
	assets     []assets.Asset
	loadErr    string
	loaded     chan struct{} // closed once the load resolves
	address    string
	connecting bool
	idle       chan struct{} // closed when no connect is in flight
	filter     bool
	connectErr string
}

// New creates a session and immediately starts its single asset load.
func New(id string, loader assets.Loader, connector wallet.Connector, opts ...Option) *Session {
	s := &Session{
		id:        id,
		connector: connector,
		clock:     clock.New(),
		parent:    context.Background(),
		loaded:    make(chan struct{}),
		idle:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	close(s.idle)
	s.ctx, s.cancel = context.WithCancel(s.parent)
	s.createdAt = s.clock.Now()

	go s.runLoad(loader)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

func (s *Session) runLoad(loader assets.Loader) {
	started := s.clock.Now()
	list, err := loader.LoadAssets(s.ctx)
	metrics.AssetLoadSeconds.Observe(s.clock.Since(started).Seconds())

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		metrics.AssetLoads.WithLabelValues(metrics.OutcomeFailed).Inc()
		var le *assets.LoadError
		if errors.As(err, &le) {
			s.loadErr = le.Message
		} else {
			s.loadErr = err.Error()
		}
		s.load = Failed
		log.Printf("[session] %s asset load failed: %v", s.shortID(), err)
	} else {
		metrics.AssetLoads.WithLabelValues(metrics.OutcomeLoaded).Inc()
		s.assets = list
		s.load = Loaded
	}
	close(s.loaded)
}

// ToggleConnection disconnects when connected, otherwise starts a connect.
// While a connect is pending it returns ErrConnectInFlight and changes nothing.
// Every accepted transition resets the owned-only filter.
func (s *Session) ToggleConnection() (ConnState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connecting {
		return Connecting, ErrConnectInFlight
	}

	s.filter = false
	if s.address != "" {
		log.Printf("[session] %s disconnected %s", s.shortID(), s.address)
		s.address = ""
		return Disconnected, nil
	}

	s.connecting = true
	s.connectErr = ""
	idle := make(chan struct{})
	s.idle = idle
	go s.finishConnect(s.connector.Connect(s.ctx), idle)
	return Connecting, nil
}

func (s *Session) finishConnect(ch <-chan wallet.Result, idle chan struct{}) {
	res := <-ch

	s.mu.Lock()
	defer s.mu.Unlock()
	s.connecting = false
	s.filter = false
	switch {
	case errors.Is(res.Err, context.Canceled):
		metrics.Connects.WithLabelValues(metrics.OutcomeCancelled).Inc()
		s.connectErr = res.Err.Error()
	case res.Err != nil:
		metrics.Connects.WithLabelValues(metrics.OutcomeFailed).Inc()
		s.connectErr = res.Err.Error()
		log.Printf("[session] %s connect failed: %v", s.shortID(), res.Err)
	default:
		metrics.Connects.WithLabelValues(metrics.OutcomeConnected).Inc()
		s.address = res.Address
		log.Printf("[session] %s connected %s", s.shortID(), res.Address)
	}
	close(idle)
}

// ToggleOwnedOnlyFilter flips the filter. It never touches the address and
// returns ErrFilterUnavailable unless a connection has resolved.
func (s *Session) ToggleOwnedOnlyFilter() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.address == "" || s.connecting {
		return s.filter, ErrFilterUnavailable
	}
	s.filter = !s.filter
	return s.filter, nil
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:              s.id,
		Load:            s.load,
		Assets:          s.assets,
		LoadError:       s.loadErr,
		Address:         s.address,
		Connecting:      s.connecting,
		FilterOwnedOnly: s.filter,
		ConnectError:    s.connectErr,
		CreatedAt:       s.createdAt,
	}
}

// AwaitLoad blocks until the asset load has resolved either way.
func (s *Session) AwaitLoad(ctx context.Context) error {
	select {
	case <-s.loaded:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AwaitConnection blocks until no connect is in flight.
func (s *Session) AwaitConnection(ctx context.Context) error {
	s.mu.Lock()
	idle := s.idle
	s.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels any pending load or connect.
func (s *Session) Close() {
	s.cancel()
}

func (s *Session) shortID() string {
	if len(s.id) > 8 {
		return s.id[:8]
	}
	return s.id
}
