package bridge

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// peer is one extension connection. Writes are serialized; replies to our
// calls are matched to waiters by frame id.
type peer struct {
	id string
	ws *websocket.Conn

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan Frame

	closed    chan struct{}
	closeOnce sync.Once
}

func newPeer(id string, ws *websocket.Conn) *peer {
	return &peer{
		id:      id,
		ws:      ws,
		pending: make(map[string]chan Frame),
		closed:  make(chan struct{}),
	}
}

func (p *peer) write(f Frame) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	_ = p.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return p.ws.WriteJSON(f)
}

func (p *peer) ping() error {
	return p.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (p *peer) expect(id string) <-chan Frame {
	ch := make(chan Frame, 1)
	p.mu.Lock()
	p.pending[id] = ch
	p.mu.Unlock()
	return ch
}

func (p *peer) forget(id string) {
	p.mu.Lock()
	delete(p.pending, id)
	p.mu.Unlock()
}

// resolve delivers a response frame. Late or unknown replies are dropped.
func (p *peer) resolve(f Frame) bool {
	p.mu.Lock()
	ch, ok := p.pending[f.ID]
	delete(p.pending, f.ID)
	p.mu.Unlock()
	if !ok {
		return false
	}
	ch <- f
	return true
}

func (p *peer) close() {
	p.closeOnce.Do(func() {
		close(p.closed)
		_ = p.ws.Close()
	})
}
