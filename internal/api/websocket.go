package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"swiftscroll/internal/config"
	"swiftscroll/internal/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The server only listens on loopback
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSManager handles WebSocket connections and broadcasting
type WSManager struct {
	server     *Server
	clients    map[*wsClient]bool
	clientsMu  sync.RWMutex
	broadcast  chan protocol.Message
	register   chan *wsClient
	unregister chan *wsClient
	shutdown   chan struct{}
}

// wsClient represents one connected settings UI
type wsClient struct {
	manager *WSManager
	conn    *websocket.Conn
	send    chan []byte
	addr    string
}

func newWSManager(s *Server) *WSManager {
	return &WSManager{
		server:     s,
		clients:    make(map[*wsClient]bool),
		broadcast:  make(chan protocol.Message, 8),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		shutdown:   make(chan struct{}),
	}
}

func (m *WSManager) start() {
	for {
		select {
		case client := <-m.register:
			m.clientsMu.Lock()
			m.clients[client] = true
			m.clientsMu.Unlock()
			log.Printf("WS: client connected from %s, total %d", client.addr, len(m.clients))

		case client := <-m.unregister:
			m.clientsMu.Lock()
			if _, ok := m.clients[client]; ok {
				delete(m.clients, client)
				close(client.send)
				log.Printf("WS: client disconnected from %s, total %d", client.addr, len(m.clients))
			}
			m.clientsMu.Unlock()

		case message := <-m.broadcast:
			m.broadcastMessage(message)

		case <-m.shutdown:
			return
		}
	}
}

func (m *WSManager) broadcastMessage(message protocol.Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("WS: failed to marshal broadcast: %v", err)
		return
	}

	m.clientsMu.Lock()
	defer m.clientsMu.Unlock()

	for client := range m.clients {
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(m.clients, client)
		}
	}
}

// Broadcast queues a message for every connected client
func (m *WSManager) Broadcast(message protocol.Message) {
	select {
	case m.broadcast <- message:
	case <-m.shutdown:
	}
}

func (m *WSManager) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WS: failed to upgrade connection: %v", err)
		return
	}

	client := &wsClient{
		manager: m,
		conn:    conn,
		send:    make(chan []byte, 32),
		addr:    r.RemoteAddr,
	}

	m.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump pumps client requests into the settings layer
func (c *wsClient) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(64 * 1024)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WS: read error: %v", err)
			}
			break
		}
		c.handleMessage(message)
	}
}

// writePump pumps broadcasts to the client
func (c *wsClient) writePump() {
	ticker := time.NewTicker(50 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *wsClient) handleMessage(data []byte) {
	var msg protocol.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("WS: invalid message: %v", err)
		return
	}

	switch msg.Type {
	case protocol.TypeApply:
		raw, _ := json.Marshal(msg.Payload)
		var next config.Settings
		if err := json.Unmarshal(raw, &next); err != nil {
			log.Printf("WS: invalid settings payload: %v", err)
			return
		}
		c.manager.server.cfgMgr.Set(&next)
		if err := c.manager.server.cfgMgr.Save(); err != nil {
			log.Printf("WS: failed to save settings: %v", err)
		}
		c.manager.server.BroadcastSettings()

	case protocol.TypeToggle:
		c.manager.server.scroller.Toggle()
		c.manager.server.BroadcastStatus()
	}
}
