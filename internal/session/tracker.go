package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"postcraft/internal/domain"
)

// Ticket identifies one submitted request.
type Ticket struct {
	ID  string
	seq uint64
}

// Tracker lets only the most recently submitted request's outcome through.
// Beginning a new request cancels the previous one's context.
type Tracker[T any] struct {
	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	last    T
	hasLast bool
	touched time.Time

	// reserved is set when Registry.Get hands the tracker out and cleared by
	// Begin, so eviction cannot drop it in between.
	reserved bool
}

// Begin registers input as the latest request and returns the context it must run under.
func (t *Tracker[T]) Begin(ctx context.Context, input T) (context.Context, Ticket) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
	}
	t.seq++
	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.reserved = false
	t.last = input
	t.hasLast = true
	t.touched = time.Now()
	return runCtx, Ticket{ID: uuid.NewString(), seq: t.seq}
}

// Commit reports whether tk is still the latest request. A stale ticket
// yields ErrSuperseded and its outcome must be discarded.
func (t *Tracker[T]) Commit(tk Ticket) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if tk.seq != t.seq {
		return domain.ErrSuperseded
	}
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.touched = time.Now()
	return nil
}

// Cancel aborts the in-flight request, if any. Its eventual Commit fails.
func (t *Tracker[T]) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.seq++
}

// LastInput returns the most recently submitted input, for retry.
func (t *Tracker[T]) LastInput() (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last, t.hasLast
}

func (t *Tracker[T]) idleSince() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.touched, t.cancel == nil && !t.reserved
}

func (t *Tracker[T]) reserve() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reserved = true
	t.touched = time.Now()
}

// Run executes fn as the latest request for input. When another request is
// begun before fn returns, fn's result or error is dropped and ErrSuperseded
// is returned instead.
func Run[T, R any](ctx context.Context, t *Tracker[T], input T, fn func(context.Context, T) (R, error)) (R, error) {
	runCtx, tk := t.Begin(ctx, input)
	res, err := fn(runCtx, input)
	if cerr := t.Commit(tk); cerr != nil {
		var zero R
		return zero, cerr
	}
	return res, err
}

// Retry re-runs fn with the exact input of the last submission.
func Retry[T, R any](ctx context.Context, t *Tracker[T], fn func(context.Context, T) (R, error)) (R, bool, error) {
	input, ok := t.LastInput()
	if !ok {
		var zero R
		return zero, false, nil
	}
	res, err := Run(ctx, t, input, fn)
	return res, true, err
}

// Registry holds one Tracker per client key. When full, the tracker idle the
// longest is evicted; trackers with a request in flight, or handed out by Get
// and not yet begun, are never evicted.
type Registry[T any] struct {
	mu       sync.Mutex
	max      int
	trackers map[string]*Tracker[T]
}

func NewRegistry[T any](max int) *Registry[T] {
	if max <= 0 {
		max = 1024
	}
	return &Registry[T]{max: max, trackers: make(map[string]*Tracker[T])}
}

// Get returns the tracker for key, creating it when needed. The tracker is
// reserved until its next Begin; callers must follow Get with Begin or Run.
func (r *Registry[T]) Get(key string) *Tracker[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trackers[key]
	if !ok {
		if len(r.trackers) >= r.max {
			r.evictLocked()
		}
		t = &Tracker[T]{}
		r.trackers[key] = t
	}
	t.reserve()
	return t
}

// Lookup returns the tracker for key without creating one.
func (r *Registry[T]) Lookup(key string) (*Tracker[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trackers[key]
	return t, ok
}

func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.trackers)
}

func (r *Registry[T]) evictLocked() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for k, t := range r.trackers {
		touched, idle := t.idleSince()
		if !idle {
			continue
		}
		if !found || touched.Before(oldest) {
			oldestKey, oldest, found = k, touched, true
		}
	}
	if found {
		delete(r.trackers, oldestKey)
	}
}
