package live

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/mew228/Flowstate/internal/core/domain"
)

// Scope identifies what a board is subscribed to. Changing either field
// replaces the subscription.
type Scope struct {
	UserID string
	Paid   bool
}

// Board keeps the latest task snapshot for one scope. Readers get an
// immutable collection that is swapped whole on every applied snapshot.
type Board struct {
	hub    *Hub
	loader Loader

	tasks atomic.Pointer[[]domain.Task]

	// applyMu guards the fields snapshots are checked against.
	applyMu sync.Mutex
	owner   string
	version uint64

	mu     sync.Mutex
	scope  Scope
	active bool
	cancel context.CancelFunc
	done   chan struct{}
}

func NewBoard(hub *Hub, loader Loader) *Board {
	b := &Board{hub: hub, loader: loader}
	b.store(nil)
	return b
}

// Watch points the board at scope. The previous subscription, if any, stops
// delivering before the new one is established. An unpaid scope holds no tasks.
func (b *Board) Watch(ctx context.Context, scope Scope) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active && b.scope == scope {
		return nil
	}
	b.stopLocked()
	b.scope = scope
	b.active = false

	if scope.UserID == "" || !scope.Paid {
		b.reset("")
		b.active = true
		return nil
	}
	b.reset(scope.UserID)

	subCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	sub := b.hub.Subscribe(subCtx, scope.UserID)

	version := b.hub.version.Load()
	tasks, err := b.loader.ListByUser(ctx, scope.UserID)
	if err != nil {
		cancel()
		sub.Close()
		b.reset("")
		return err
	}
	b.Apply(Snapshot{UserID: scope.UserID, Version: version, Tasks: tasks})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for snap := range sub.C() {
			b.Apply(snap)
		}
	}()

	b.cancel = cancel
	b.done = done
	b.active = true

	zap.L().Debug("task board subscribed", zap.String("user_id", scope.UserID))
	return nil
}

// Apply stores snap if it belongs to the watched user and is not older than
// what the board already holds. It reports whether snap was stored.
func (b *Board) Apply(snap Snapshot) bool {
	b.applyMu.Lock()
	defer b.applyMu.Unlock()

	if b.owner == "" || snap.UserID != b.owner || snap.Version < b.version {
		return false
	}
	b.version = snap.Version
	b.store(snap.Tasks)
	return true
}

// Tasks returns the current snapshot. Callers must not modify it.
func (b *Board) Tasks() []domain.Task {
	return *b.tasks.Load()
}

func (b *Board) Scope() Scope {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.scope
}

func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
	b.reset("")
	b.active = false
}

func (b *Board) stopLocked() {
	if b.cancel == nil {
		return
	}
	b.cancel()
	<-b.done
	b.cancel = nil
	b.done = nil
}

func (b *Board) reset(owner string) {
	b.applyMu.Lock()
	defer b.applyMu.Unlock()
	b.owner = owner
	b.version = 0
	b.store(nil)
}

func (b *Board) store(tasks []domain.Task) {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	b.tasks.Store(&tasks)
}
