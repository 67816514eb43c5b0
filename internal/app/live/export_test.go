package live

import "github.com/mew228/Flowstate/internal/core/domain"

// Publish pushes tasks as a new snapshot without going through the loader.
func (h *Hub) Publish(userID string, tasks []domain.Task) Snapshot {
	snap := Snapshot{UserID: userID, Version: h.version.Add(1), Tasks: tasks}
	h.send(snap)
	return snap
}

func (h *Hub) Subscribers(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[userID])
}
