package resilience

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned while the breaker rejects calls
var ErrOpen = errors.New("circuit breaker is open")

// State is the breaker position
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings configures a breaker
type Settings struct {
	// Threshold is the number of consecutive failures that opens the breaker
	Threshold int
	// Cooldown is how long the breaker stays open before allowing one probe
	Cooldown time.Duration
	// OnStateChange is called outside the lock after every transition
	OnStateChange func(name string, from, to State)
}

// Breaker trips after repeated failures of a collaborator and lets a single
// probe through once the cooldown has passed.
type Breaker struct {
	name     string
	settings Settings
	now      func() time.Time

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	probing  bool
}

// New creates a closed breaker
func New(name string, settings Settings) *Breaker {
	if settings.Threshold <= 0 {
		settings.Threshold = 5
	}
	if settings.Cooldown <= 0 {
		settings.Cooldown = 30 * time.Second
	}
	return &Breaker{
		name:     name,
		settings: settings,
		now:      time.Now,
	}
}

// Name returns the breaker name
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current position, moving open to half-open when the
// cooldown has elapsed.
func (b *Breaker) State() State {
	b.mu.Lock()
	cooled := b.advance()
	state := b.state
	b.mu.Unlock()

	if cooled {
		b.notify(StateOpen, StateHalfOpen)
	}
	return state
}

// Do runs fn unless the breaker is open. Only errors for which counts
// returns true are recorded as failures; a nil counts treats every error as
// a failure.
func (b *Breaker) Do(fn func() error, counts func(error) bool) error {
	if err := b.acquire(); err != nil {
		return err
	}

	failed := false
	defer func() {
		if r := recover(); r != nil {
			b.release(true)
			panic(r)
		}
		b.release(failed)
	}()

	err := fn()
	failed = err != nil && (counts == nil || counts(err))
	return err
}

func (b *Breaker) acquire() error {
	b.mu.Lock()
	cooled := b.advance()
	err := b.admit()
	b.mu.Unlock()

	if cooled {
		b.notify(StateOpen, StateHalfOpen)
	}
	return err
}

// admit must be called with mu held
func (b *Breaker) admit() error {
	switch b.state {
	case StateOpen:
		return ErrOpen
	case StateHalfOpen:
		if b.probing {
			return ErrOpen
		}
		b.probing = true
	}
	return nil
}

func (b *Breaker) release(failed bool) {
	b.mu.Lock()
	from := b.state
	wasProbe := b.probing && b.state == StateHalfOpen
	b.probing = false

	switch {
	case !failed:
		b.failures = 0
		if wasProbe {
			b.state = StateClosed
		}
	case wasProbe:
		b.trip()
	default:
		b.failures++
		if b.state == StateClosed && b.failures >= b.settings.Threshold {
			b.trip()
		}
	}
	to := b.state
	b.mu.Unlock()

	b.notify(from, to)
}

// advance moves an open breaker to half-open once the cooldown has passed
// and reports whether it did. Must be called with mu held.
func (b *Breaker) advance() bool {
	if b.state != StateOpen || b.now().Sub(b.openedAt) < b.settings.Cooldown {
		return false
	}
	b.state = StateHalfOpen
	b.probing = false
	return true
}

// trip must be called with mu held
func (b *Breaker) trip() {
	b.state = StateOpen
	b.openedAt = b.now()
	b.failures = 0
}

func (b *Breaker) notify(from, to State) {
	if from != to && b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.name, from, to)
	}
}
