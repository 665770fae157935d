package hub

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeConn struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (c *fakeConn) Send(payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payloads = append(c.payloads, payload)
}

func (c *fakeConn) received() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.payloads)
}

func TestHub_UserGroup(t *testing.T) {
	assert.Equal(t, "user:42", UserGroup(42))
	assert.Equal(t, "user:7", UserGroup(7))
}

func TestHub_SendReachesAllMembers(t *testing.T) {
	h := NewHub()
	a := &fakeConn{}
	b := &fakeConn{}

	h.Join("user:1", a)
	h.Join("user:1", b)

	h.Send("user:1", []byte("hello"))

	assert.Equal(t, 1, a.received())
	assert.Equal(t, 1, b.received())
}

func TestHub_SendToMissingGroupIsNoop(t *testing.T) {
	h := NewHub()

	assert.NotPanics(t, func() {
		h.Send("user:999", []byte("nobody home"))
	})
}

func TestHub_SendSkipsOtherGroups(t *testing.T) {
	h := NewHub()
	a := &fakeConn{}
	b := &fakeConn{}

	h.Join("user:1", a)
	h.Join("user:2", b)

	h.Send("user:1", []byte("only a"))

	assert.Equal(t, 1, a.received())
	assert.Equal(t, 0, b.received())
}

func TestHub_JoinIsIdempotent(t *testing.T) {
	h := NewHub()
	a := &fakeConn{}

	h.Join("user:1", a)
	h.Join("user:1", a)

	assert.Equal(t, 1, h.GroupSize("user:1"))

	h.Send("user:1", []byte("once"))
	assert.Equal(t, 1, a.received())
}

func TestHub_LeaveDeletesEmptyGroup(t *testing.T) {
	h := NewHub()
	a := &fakeConn{}
	b := &fakeConn{}

	h.Join("user:1", a)
	h.Join("user:1", b)
	h.Leave("user:1", a)

	assert.Equal(t, 1, h.GroupSize("user:1"))

	h.Leave("user:1", b)
	assert.Equal(t, 0, h.GroupSize("user:1"))
	assert.Equal(t, 0, h.TotalConns())
}

func TestHub_LeaveWithoutJoinIsNoop(t *testing.T) {
	h := NewHub()
	a := &fakeConn{}

	assert.NotPanics(t, func() {
		h.Leave("user:1", a)
	})

	// Leaving a group that exists but was never joined by this conn.
	b := &fakeConn{}
	h.Join("user:1", b)
	h.Leave("user:1", a)
	assert.Equal(t, 1, h.GroupSize("user:1"))
}

func TestHub_LeftConnReceivesNothing(t *testing.T) {
	h := NewHub()
	a := &fakeConn{}
	b := &fakeConn{}

	h.Join("user:1", a)
	h.Join("user:1", b)
	h.Leave("user:1", a)

	h.Send("user:1", []byte("after leave"))

	assert.Equal(t, 0, a.received())
	assert.Equal(t, 1, b.received())
}

func TestHub_ConcurrentJoinLeaveSend(t *testing.T) {
	h := NewHub()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			group := UserGroup(int64(n % 5))
			conn := &fakeConn{}
			h.Join(group, conn)
			h.Send(group, []byte(fmt.Sprintf("msg-%d", n)))
			h.Leave(group, conn)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, h.TotalConns())
}
