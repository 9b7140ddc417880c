package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/davfen/pendsim/internal/pendulum"
)

var (
	// ErrIndexOutOfRange reports a remove or modify request against a bob
	// index that does not exist. The chain is left untouched.
	ErrIndexOutOfRange = errors.New("bob index out of range")

	// ErrWorldClosed reports an operation against a world that has been
	// shut down. The caller must not retry.
	ErrWorldClosed = errors.New("world is closed")
)

// BobPatch carries the optional fields of a modify request. Nil fields
// are left unchanged on the target bob.
type BobPatch struct {
	RodLength *float64 `json:"rod_length,omitempty"`
	Mass      *float64 `json:"mass,omitempty"`
	Theta     *float64 `json:"theta,omitempty"`
	Omega     *float64 `json:"omega,omitempty"`
}

// World owns the single live pendulum. Every operation takes the lock
// for its whole duration, so stepping and edits serialize against each
// other and a snapshot can never observe a half-applied mutation.
//
// A World supports one stepping loop; edits may come from any number of
// goroutines.
type World struct {
	mu     sync.Mutex
	pend   *pendulum.Pendulum
	closed bool
	tick   uint64
	time   float64
}

func NewWorld(p *pendulum.Pendulum) *World {
	if p == nil {
		p = pendulum.NewDefault()
	}
	return &World{pend: p}
}

// AddBob appends a bob to the end of the chain. There is no upper bound
// on chain length. Rod length and mass are the caller's responsibility
// to keep positive.
func (w *World) AddBob(rodLength, mass, theta, omega float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWorldClosed
	}
	w.pend.Bobs = append(w.pend.Bobs, pendulum.NewBob(rodLength, mass, theta, omega))
	w.pend.RecomputePositions()
	return nil
}

// RemoveBob removes the bob at index. Removing an interior bob splices
// the chain: every later bob now hangs from a new predecessor. That is
// the intended semantics, not an artifact.
func (w *World) RemoveBob(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWorldClosed
	}
	if index < 0 || index >= w.pend.N() {
		return fmt.Errorf("remove bob %d of %d: %w", index, w.pend.N(), ErrIndexOutOfRange)
	}
	w.pend.Bobs = append(w.pend.Bobs[:index], w.pend.Bobs[index+1:]...)
	w.pend.RecomputePositions()
	return nil
}

// ModifyBob applies the set fields of patch to the bob at index. The
// cached position is not recomputed here; it is stale until the next
// step rebuilds it.
func (w *World) ModifyBob(index int, patch BobPatch) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWorldClosed
	}
	if index < 0 || index >= w.pend.N() {
		return fmt.Errorf("modify bob %d of %d: %w", index, w.pend.N(), ErrIndexOutOfRange)
	}
	b := &w.pend.Bobs[index]
	if patch.RodLength != nil {
		b.RodLength = *patch.RodLength
	}
	if patch.Mass != nil {
		b.Mass = *patch.Mass
	}
	if patch.Theta != nil {
		b.Theta = *patch.Theta
	}
	if patch.Omega != nil {
		b.Omega = *patch.Omega
	}
	return nil
}

// Step advances the pendulum by substeps integration steps of dt each
// and returns the resulting snapshot. The lock is held across the whole
// step+kinematics+copy sequence, so the snapshot is atomic with respect
// to concurrent edits.
func (w *World) Step(dt float64, substeps int) (Snapshot, error) {
	if substeps < 1 {
		substeps = 1
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return Snapshot{}, ErrWorldClosed
	}
	for i := 0; i < substeps; i++ {
		w.pend.Step(dt)
		w.time += dt
	}
	w.tick++
	return w.snapshotLocked(), nil
}

// Snapshot copies out the current state without advancing it.
func (w *World) Snapshot() (Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return Snapshot{}, ErrWorldClosed
	}
	return w.snapshotLocked(), nil
}

func (w *World) snapshotLocked() Snapshot {
	return Snapshot{
		Tick: w.tick,
		Time: w.time,
		Bobs: snapshotBobs(w.pend),
	}
}

// NumBobs returns the current chain length.
func (w *World) NumBobs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pend.N()
}

// Close marks the world as shut down. All subsequent operations return
// ErrWorldClosed. Close is idempotent.
func (w *World) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}
