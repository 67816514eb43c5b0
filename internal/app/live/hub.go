// Package live fans full task snapshots out to subscribers whenever a user's
// tasks change. Subscribers always receive the whole collection; there is no
// incremental diffing.
package live

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/mew228/Flowstate/internal/core/domain"
)

type Loader interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Task, error)
}

// Snapshot is a read-only view of every task a user owns at one point in time.
type Snapshot struct {
	UserID  string
	Version uint64
	Tasks   []domain.Task
}

type Hub struct {
	loader  Loader
	version atomic.Uint64

	mu   sync.Mutex
	subs map[string]map[*Subscription]struct{}
}

func NewHub(loader Loader) *Hub {
	return &Hub{
		loader: loader,
		subs:   make(map[string]map[*Subscription]struct{}),
	}
}

type Subscription struct {
	hub    *Hub
	userID string
	ch     chan Snapshot
	once   sync.Once
}

// C delivers snapshots. Only the latest undelivered snapshot is kept.
func (s *Subscription) C() <-chan Snapshot {
	return s.ch
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}

// Subscribe registers a subscriber for userID. It is closed when ctx is done.
func (h *Hub) Subscribe(ctx context.Context, userID string) *Subscription {
	sub := &Subscription{hub: h, userID: userID, ch: make(chan Snapshot, 1)}

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*Subscription]struct{})
	}
	h.subs[userID][sub] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		sub.Close()
	}()

	return sub
}

// Refresh reloads the user's tasks and publishes them. The version is taken
// before loading so a load that started later always wins.
func (h *Hub) Refresh(ctx context.Context, userID string) (Snapshot, error) {
	version := h.version.Add(1)
	tasks, err := h.loader.ListByUser(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{UserID: userID, Version: version, Tasks: tasks}
	h.send(snap)
	return snap, nil
}

// send delivers snap to every subscriber of its user without blocking.
func (h *Hub) send(snap Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs[snap.UserID] {
		deliver(sub.ch, snap)
	}
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.subs[sub.userID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, sub.userID)
		}
	}
	close(sub.ch)
}

// deliver replaces a pending snapshot rather than waiting for the reader.
func deliver(ch chan Snapshot, snap Snapshot) {
	select {
	case ch <- snap:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}
