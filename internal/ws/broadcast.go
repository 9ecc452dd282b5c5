package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/idilsaglam/board/internal/model"
	"github.com/idilsaglam/board/internal/state"
)

const sendBuffer = 64

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func newClient(conn *websocket.Conn) *client {
	c := &client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	go c.writePump()
	return c
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (c *client) close() {
	close(c.send)
}

// Broadcaster is a single board observer that fans every snapshot out to
// connected websocket clients. Clients that fall behind are disconnected.
type Broadcaster struct {
	mu          sync.Mutex
	clients     map[*client]bool
	last        []byte
	unsubscribe func()
}

func NewBroadcaster(board *state.Projects) *Broadcaster {
	b := &Broadcaster{
		clients: make(map[*client]bool),
	}
	b.unsubscribe = board.Watch(b.onSnapshot)
	return b
}

// onSnapshot runs under the board's lock; it only queues frames.
func (b *Broadcaster) onSnapshot(items []model.Project) {
	data, err := json.Marshal(WSMessage{
		Type:    MsgSnapshot,
		Payload: SnapshotPayload{Projects: items},
	})
	if err != nil {
		log.Printf("broadcast marshal error: %v", err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = data
	for c := range b.clients {
		select {
		case c.send <- data:
		default:
			log.Printf("ws client too slow, disconnecting")
			b.removeLocked(c)
		}
	}
}

// AddClient registers conn and queues the current board for it.
func (b *Broadcaster) AddClient(conn *websocket.Conn) *client {
	c := newClient(conn)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients[c] = true
	if b.last != nil {
		c.send <- b.last
	}
	return c
}

func (b *Broadcaster) RemoveClient(c *client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removeLocked(c)
}

func (b *Broadcaster) removeLocked(c *client) {
	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		c.close()
	}
}

// sendTo queues a frame for one client only.
func (b *Broadcaster) sendTo(c *client, msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("ws marshal error: %v", err)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.clients[c] {
		return
	}
	select {
	case c.send <- data:
	default:
		b.removeLocked(c)
	}
}

func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Close detaches from the board and drops every client.
func (b *Broadcaster) Close() {
	b.unsubscribe()
	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.clients {
		b.removeLocked(c)
	}
}
