// Package registry holds pending call requests in process memory.
//
// The registry is the only mutable shared state in the broker. All status
// changes go through compare-and-swap transitions serialized per request,
// so two concurrent transitions on the same id never both succeed. The
// state is volatile: a restart loses all pending requests, which is
// acceptable given the short request TTL.
package registry

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/medlink/doctor-dispatch/internal/model"
)

var (
	ErrAlreadyExists = errors.New("request already registered")
	ErrNotFound      = errors.New("request not found")
	ErrConflict      = errors.New("request status conflict")
)

// entry wraps a request with its own mutex so contention stays per-key;
// there is no registry-wide lock on the transition path.
type entry struct {
	mu         sync.Mutex
	req        model.CallRequest
	terminalAt time.Time
}

// Registry is a concurrent map from request id to call request state.
type Registry struct {
	entries sync.Map // uuid.UUID -> *entry
	grace   time.Duration
}

// New creates a registry. Terminal entries are kept for grace after their
// final transition so late status queries still resolve.
func New(grace time.Duration) *Registry {
	return &Registry{grace: grace}
}

// Insert registers a new request. An id collision is a logic error
// upstream (ids are generated, not supplied) and returns ErrAlreadyExists.
func (r *Registry) Insert(req model.CallRequest) error {
	if _, loaded := r.entries.LoadOrStore(req.ID, &entry{req: req}); loaded {
		return ErrAlreadyExists
	}
	return nil
}

// Get returns a snapshot of the request.
func (r *Registry) Get(id uuid.UUID) (model.CallRequest, error) {
	v, ok := r.entries.Load(id)
	if !ok {
		return model.CallRequest{}, ErrNotFound
	}
	e := v.(*entry)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.req, nil
}

// Transition applies from -> to only if the stored status equals from.
// On conflict it returns the current snapshot together with ErrConflict so
// the caller can map the race to an outcome.
func (r *Registry) Transition(id uuid.UUID, from, to model.Status) (model.CallRequest, error) {
	v, ok := r.entries.Load(id)
	if !ok {
		return model.CallRequest{}, ErrNotFound
	}
	e := v.(*entry)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.req.Status != from {
		return e.req, ErrConflict
	}
	e.req.Status = to
	if to.IsTerminal() {
		e.terminalAt = time.Now()
	}
	return e.req, nil
}

// Dispatch is the pending -> dispatched CAS, recording the candidate
// doctors the call was offered to so later status reads can see them.
func (r *Registry) Dispatch(id uuid.UUID, candidates []uuid.UUID) (model.CallRequest, error) {
	v, ok := r.entries.Load(id)
	if !ok {
		return model.CallRequest{}, ErrNotFound
	}
	e := v.(*entry)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.req.Status != model.StatusPending {
		return e.req, ErrConflict
	}
	e.req.Status = model.StatusDispatched
	e.req.Candidates = candidates
	return e.req, nil
}

// ClaimBy is the dispatched -> claimed CAS, stamping the winning doctor.
// A request past its deadline is transitioned to expired instead of
// claimed, so an overdue entry is never claimable even before the sweeper
// reaches it.
func (r *Registry) ClaimBy(id, doctorID uuid.UUID, now time.Time) (model.CallRequest, error) {
	v, ok := r.entries.Load(id)
	if !ok {
		return model.CallRequest{}, ErrNotFound
	}
	e := v.(*entry)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.req.Status != model.StatusDispatched {
		return e.req, ErrConflict
	}
	if !e.req.ExpiresAt.After(now) {
		e.req.Status = model.StatusExpired
		e.terminalAt = now
		return e.req, ErrConflict
	}
	e.req.Status = model.StatusClaimed
	e.req.ClaimedBy = doctorID
	e.terminalAt = now
	return e.req, nil
}

// SweepExpired transitions every overdue pending or dispatched request to
// expired and returns the snapshots of the requests it expired.
func (r *Registry) SweepExpired(now time.Time) []model.CallRequest {
	var expired []model.CallRequest
	r.entries.Range(func(_, v any) bool {
		e := v.(*entry)
		e.mu.Lock()
		if (e.req.Status == model.StatusPending || e.req.Status == model.StatusDispatched) &&
			!e.req.ExpiresAt.After(now) {
			e.req.Status = model.StatusExpired
			e.terminalAt = now
			expired = append(expired, e.req)
		}
		e.mu.Unlock()
		return true
	})
	return expired
}

// EvictTerminal removes terminal entries whose grace period has elapsed
// and returns how many were evicted.
func (r *Registry) EvictTerminal(now time.Time) int {
	var evicted int
	r.entries.Range(func(k, v any) bool {
		e := v.(*entry)
		e.mu.Lock()
		done := e.req.Status.IsTerminal() && !e.terminalAt.IsZero() &&
			!e.terminalAt.Add(r.grace).After(now)
		e.mu.Unlock()
		if done {
			r.entries.Delete(k)
			evicted++
		}
		return true
	})
	return evicted
}

// Remove drops an entry unconditionally.
func (r *Registry) Remove(id uuid.UUID) {
	r.entries.Delete(id)
}
