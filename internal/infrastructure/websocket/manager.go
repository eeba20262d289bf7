package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"homerent/pkg/logger"
)

// Event is the envelope pushed to subscribed clients.
type Event struct {
	Channel string      `json:"channel"`
	Payload interface{} `json:"payload"`
}

// Manager tracks active WebSocket clients and their channel subscriptions.
// Delivery is fire-and-forget: a client that is not connected, not
// subscribed, or too slow simply misses the event and must re-fetch state
// over the REST API when it comes back.
type Manager struct {
	clients    map[*Client]bool
	channels   map[string]map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[*Client]bool),
		channels:   make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client] = true
				m.mutex.Unlock()
				logger.Info("WebSocket client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if _, ok := m.clients[client]; ok {
					m.removeClientLocked(client)
				}
				m.mutex.Unlock()
				logger.Info("WebSocket client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// Broadcast sends payload to every client subscribed to channel. Slow
// clients are dropped rather than blocking the caller.
func (m *Manager) Broadcast(channel string, payload interface{}) {
	data, err := json.Marshal(Event{Channel: channel, Payload: payload})
	if err != nil {
		logger.Error("Failed to marshal event for channel %s: %v", channel, err)
		return
	}

	m.mutex.RLock()
	subscribers := make([]*Client, 0, len(m.channels[channel]))
	for client := range m.channels[channel] {
		subscribers = append(subscribers, client)
	}
	m.mutex.RUnlock()

	for _, client := range subscribers {
		select {
		case client.Send <- data:
		default:
			m.mutex.Lock()
			m.removeClientLocked(client)
			m.mutex.Unlock()
			logger.Warn("Dropped slow WebSocket client %s", client.UserID)
		}
	}
}

// Subscribe attaches the client to a named channel.
func (m *Manager) Subscribe(client *Client, channel string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.channels[channel] == nil {
		m.channels[channel] = make(map[*Client]bool)
	}
	m.channels[channel][client] = true
	client.channels[channel] = true
}

// Unsubscribe detaches the client from a named channel.
func (m *Manager) Unsubscribe(client *Client, channel string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if subs, ok := m.channels[channel]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(m.channels, channel)
		}
	}
	delete(client.channels, channel)
}

func (m *Manager) removeClientLocked(client *Client) {
	if _, ok := m.clients[client]; !ok {
		return
	}
	delete(m.clients, client)
	for channel := range client.channels {
		if subs, ok := m.channels[channel]; ok {
			delete(subs, client)
			if len(subs) == 0 {
				delete(m.channels, channel)
			}
		}
	}
	close(client.Send)
}
