package hub

import (
	"strconv"
	"sync"
)

// Conn is the write side of a live client connection. Implementations must
// not block: the hub dispatches to every member while holding no locks, but
// a stalled Send would still stall the publishing caller.
type Conn interface {
	Send(payload []byte)
}

// Hub maintains group membership and fans payloads out to group members.
// Groups exist only while non-empty.
type Hub struct {
	mu     sync.RWMutex
	groups map[string]map[Conn]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		groups: make(map[string]map[Conn]struct{}),
	}
}

// UserGroup returns the fan-out group key for a user id.
func UserGroup(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10)
}

// Join adds conn to the group's member set, creating the group if absent.
// Joining a group the conn is already a member of is a no-op.
func (h *Hub) Join(group string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.groups[group] == nil {
		h.groups[group] = make(map[Conn]struct{})
	}
	h.groups[group][conn] = struct{}{}
}

// Leave removes conn from the group and deletes the group once empty.
// Safe to call for a conn that never joined; admission can fail before Join.
func (h *Hub) Leave(group string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.groups[group]
	if !ok {
		return
	}
	delete(members, conn)
	if len(members) == 0 {
		delete(h.groups, group)
	}
}

// Send fans payload out to a snapshot of the group's current members.
// Members joining after the snapshot do not receive this payload; a missing
// group is a no-op. Nothing is queued or retried.
func (h *Hub) Send(group string, payload []byte) {
	h.mu.RLock()
	members := make([]Conn, 0, len(h.groups[group]))
	for conn := range h.groups[group] {
		members = append(members, conn)
	}
	h.mu.RUnlock()

	for _, conn := range members {
		conn.Send(payload)
	}
}

// GroupSize returns the number of live members in a group.
func (h *Hub) GroupSize(group string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[group])
}

// TotalConns returns the total number of connections across all groups.
func (h *Hub) TotalConns() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, members := range h.groups {
		total += len(members)
	}
	return total
}
