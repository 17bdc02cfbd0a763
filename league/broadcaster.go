package league

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	modelwebsocket "github.com/courtside/sports-league-backend-go/model/websocket"
)

// TopicLive is the topic every connected client is implicitly joined to.
const TopicLive = "live"

func GameTopic(gameID uint) string {
	return fmt.Sprintf("game_%d", gameID)
}

// Broadcaster is the publish side of the live channel, injected into the
// services that emit updates. Publishing is best-effort and never blocks
// or fails the caller.
type Broadcaster interface {
	Publish(topic string, m modelwebsocket.Message)
	PublishGame(gameID uint, m modelwebsocket.Message)
}

type Client struct {
	ID   uuid.UUID
	conn *websocket.Conn
	send chan modelwebsocket.Message
}

type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	rooms   map[string]map[*Client]struct{}
	sendBuf int
}

var _ Broadcaster = (*Hub)(nil)

func NewHub(sendBuf int) *Hub {
	if sendBuf <= 0 {
		sendBuf = 32
	}
	return &Hub{
		clients: map[*Client]struct{}{},
		rooms:   map[string]map[*Client]struct{}{},
		sendBuf: sendBuf,
	}
}

// HandleWebsocketConnection registers a new connection, joins it to the
// live topic and greets it with a connected message. The returned client
// must be released with RemoveClient when the read loop ends.
func (h *Hub) HandleWebsocketConnection(conn *websocket.Conn) *Client {
	c := &Client{
		ID:   uuid.New(),
		conn: conn,
		send: make(chan modelwebsocket.Message, h.sendBuf),
	}
	slog.Info(fmt.Sprintf("[HandleWebsocketConnection] - registering client %s", c.ID))

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.joinLocked(c, TopicLive)
	c.enqueue(greeting(c))
	h.mu.Unlock()

	go c.writePump()
	return c
}

func greeting(c *Client) modelwebsocket.Message {
	payload, err := json.Marshal(modelwebsocket.ConnectedPayload{
		ClientID:  c.ID.String(),
		Message:   "Connected to live feed",
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		slog.Error(fmt.Sprintf("failed to marshal connected payload : %s", err.Error()))
	}
	return modelwebsocket.Message{
		Action:  modelwebsocket.Connected,
		Content: string(payload),
	}
}

// HandleWebsocketMessage dispatches a client control message, reporting
// whether the hub handled the action.
func (h *Hub) HandleWebsocketMessage(wm *modelwebsocket.Message, c *Client) bool {
	slog.Info(fmt.Sprintf("[HandleWebsocketMessage] - %s event received from client %s", wm.Action, c.ID))
	switch wm.Action {
	case modelwebsocket.JoinGame:
		h.handleJoinGame(wm, c, true)
		return true
	case modelwebsocket.LeaveGame:
		h.handleJoinGame(wm, c, false)
		return true
	default:
		slog.Debug(fmt.Sprintf("websocket action '%s' is not handled by the hub", wm.Action))
		return false
	}
}

func (h *Hub) handleJoinGame(wm *modelwebsocket.Message, c *Client, join bool) {
	var p modelwebsocket.JoinGamePayload
	if err := json.Unmarshal([]byte(wm.Content), &p); err != nil || p.GameID == 0 {
		slog.Warn(fmt.Sprintf("unable to read game id from %s message : %v", wm.Action, err))
		return
	}
	topic := GameTopic(p.GameID)
	h.mu.Lock()
	defer h.mu.Unlock()
	if join {
		slog.Info(fmt.Sprintf("client %s joined topic %s", c.ID, topic))
		h.joinLocked(c, topic)
	} else {
		slog.Info(fmt.Sprintf("client %s left topic %s", c.ID, topic))
		h.leaveLocked(c, topic)
	}
}

func (h *Hub) joinLocked(c *Client, topic string) {
	room, ok := h.rooms[topic]
	if !ok {
		room = map[*Client]struct{}{}
		h.rooms[topic] = room
	}
	room[c] = struct{}{}
}

func (h *Hub) leaveLocked(c *Client, topic string) {
	room, ok := h.rooms[topic]
	if !ok {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, topic)
	}
}

// RemoveClient unregisters the client from every topic and releases its
// write pump.
func (h *Hub) RemoveClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	for topic := range h.rooms {
		h.leaveLocked(c, topic)
	}
	close(c.send)
	slog.Info(fmt.Sprintf("[RemoveClient] - removed client %s", c.ID))
}

// Publish delivers m to every subscriber of topic. Delivery is
// at-most-once, a subscriber with a full send buffer misses the message.
func (h *Hub) Publish(topic string, m modelwebsocket.Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[topic] {
		c.enqueue(m)
	}
}

// PublishGame delivers m to the per-game topic and the live topic. A
// client subscribed to both receives the message exactly once.
func (h *Hub) PublishGame(gameID uint, m modelwebsocket.Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	seen := map[*Client]struct{}{}
	for c := range h.rooms[TopicLive] {
		seen[c] = struct{}{}
		c.enqueue(m)
	}
	for c := range h.rooms[GameTopic(gameID)] {
		if _, ok := seen[c]; ok {
			continue
		}
		c.enqueue(m)
	}
}

// Close tears down every registered client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		for topic := range h.rooms {
			h.leaveLocked(c, topic)
		}
		close(c.send)
	}
}

// enqueue must run while holding the hub lock so it cannot race a close
// of the send channel.
func (c *Client) enqueue(m modelwebsocket.Message) {
	select {
	case c.send <- m:
	default:
		slog.Warn(fmt.Sprintf("dropping %s message for slow client %s", m.Action, c.ID))
	}
}

const pingInterval = 50 * time.Second

func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		if c.conn != nil {
			c.conn.Close()
		}
	}()
	for {
		select {
		case m, ok := <-c.send:
			if !ok {
				return
			}
			if c.conn == nil {
				continue
			}
			if err := c.conn.WriteJSON(m); err != nil {
				slog.Warn(fmt.Sprintf("failed to write to client %s : %s", c.ID, err.Error()))
				return
			}
		case <-ticker.C:
			if c.conn == nil {
				continue
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
