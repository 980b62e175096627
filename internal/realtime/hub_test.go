package realtime

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	msgs [][]byte
	fail bool
}

func (r *recorder) Send(m []byte) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return false
	}
	r.msgs = append(r.msgs, m)
	return true
}

func (r *recorder) Close() {}

// blockingClient stalls in Send until released, like a socket with a full buffer.
type blockingClient struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingClient) Send([]byte) bool {
	close(b.entered)
	<-b.release
	return true
}

func (b *blockingClient) Close() {}

func TestHub_SlowSendDoesNotBlockRegistration(t *testing.T) {
	h := NewHub(nil)
	slow := &blockingClient{entered: make(chan struct{}), release: make(chan struct{})}
	h.Register("1", slow)

	sent := make(chan int)
	go func() { sent <- h.Broadcast("1", []byte("x")) }()
	<-slow.entered

	registered := make(chan struct{})
	go func() {
		h.Register("2", &recorder{})
		h.Unregister("1", slow)
		close(registered)
	}()
	select {
	case <-registered:
	case <-time.After(time.Second):
		t.Fatal("registration waited on a slow send")
	}

	close(slow.release)
	require.Equal(t, 1, <-sent)
	require.Equal(t, 1, h.Watchers("2"))
	require.Equal(t, 0, h.Watchers("1"))
}

func TestHub_PublishReachesOnlyBoardWatchers(t *testing.T) {
	h := NewHub(nil)
	a, b, other := &recorder{}, &recorder{}, &recorder{}
	h.Register("1", a)
	h.Register("1", b)
	h.Register("2", other)

	h.Publish(Event{Type: EventTaskMoved, BoardID: "1", TaskID: "11"})

	require.Len(t, a.msgs, 1)
	require.Len(t, b.msgs, 1)
	require.Empty(t, other.msgs)

	var evt Event
	require.NoError(t, json.Unmarshal(a.msgs[0], &evt))
	require.Equal(t, EventTaskMoved, evt.Type)
	require.Equal(t, 1, evt.Version)
}

func TestHub_UnregisterCleansUp(t *testing.T) {
	h := NewHub(nil)
	c := &recorder{}
	h.Register("1", c)
	require.Equal(t, 1, h.Watchers("1"))

	h.Unregister("1", c)
	require.Equal(t, 0, h.Watchers("1"))
	require.Equal(t, 0, h.Broadcast("1", []byte("x")))
}

func TestHub_FailedSendNotCounted(t *testing.T) {
	h := NewHub(nil)
	h.Register("1", &recorder{fail: true})
	h.Register("1", &recorder{})
	require.Equal(t, 1, h.Broadcast("1", []byte("x")))
}
