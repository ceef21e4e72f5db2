package schema

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/dmitrijs2005/classkeeper/internal/logging"
)

// Gate is passed to repositories; every storage call goes through EnsureReady first.
type Gate interface {
	EnsureReady(ctx context.Context) error
}

// Ready is a Gate for handles whose schema is known to exist, such as a
// transaction opened after initialization.
var Ready Gate = readyGate{}

type readyGate struct{}

func (readyGate) EnsureReady(context.Context) error { return nil }

// State is the schema lifecycle stage tracked by a Guard.
type State int32

const (
	Uninitialized State = iota
	Initializing
	Initialized
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Initialized:
		return "ready"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Guard lazily initializes the schema exactly once. The slot channel is a
// single-slot lock; waiting on it honours ctx.
type Guard struct {
	db      *sql.DB
	migrate MigrateFunc
	log     logging.Logger

	slot  chan struct{}
	state atomic.Int32
	runs  atomic.Int64
}

// NewGuard returns a Guard that runs migrate against db on first use.
func NewGuard(db *sql.DB, migrate MigrateFunc, log logging.Logger) *Guard {
	return &Guard{
		db:      db,
		migrate: migrate,
		log:     log,
		slot:    make(chan struct{}, 1),
	}
}

// EnsureReady returns once the schema has been initialized, running the
// migration itself if no caller has done so yet.
func (g *Guard) EnsureReady(ctx context.Context) error {
	if g.State() == Initialized {
		return nil
	}

	select {
	case g.slot <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-g.slot }()

	// another caller may have finished while we waited
	if g.State() == Initialized {
		return nil
	}

	g.state.Store(int32(Initializing))
	g.runs.Add(1)
	if err := g.migrate(ctx, g.db); err != nil {
		g.state.Store(int32(Uninitialized))
		g.log.Error(ctx, "schema initialization failed", "err", err)
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	g.state.Store(int32(Initialized))
	return nil
}

// State reports the current stage without blocking.
func (g *Guard) State() State {
	return State(g.state.Load())
}

// Runs reports how many initialization sequences have been started.
func (g *Guard) Runs() int64 {
	return g.runs.Load()
}
