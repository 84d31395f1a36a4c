package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/TEJ12356788/atmosphere/internal/models"
)

// Message is the envelope pushed to connected clients.
type Message struct {
	Type         string              `json:"type"`
	Notification models.Notification `json:"notification"`
	UnreadHint   bool                `json:"unread_hint,omitempty"`
}

type delivery struct {
	userID  string
	payload []byte
}

type countQuery struct {
	userID string
	reply  chan int
}

// Hub tracks the open connections of each user and pushes notifications to
// them. All hub state is owned by the Run goroutine.
type Hub struct {
	// Registered clients, keyed by user id.
	clients map[string]map[*Client]bool

	// Outbound notifications.
	deliver chan delivery

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	count chan countQuery
	quit  chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		deliver:    make(chan delivery),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		count:      make(chan countQuery),
		quit:       make(chan struct{}),
		clients:    make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			conns := h.clients[client.userID]
			if conns == nil {
				conns = make(map[*Client]bool)
				h.clients[client.userID] = conns
			}
			conns[client] = true
		case client := <-h.unregister:
			h.remove(client)
		case d := <-h.deliver:
			for client := range h.clients[d.userID] {
				select {
				case client.send <- d.payload:
				default:
					log.Printf("ws: dropping slow client for %s", d.userID)
					h.remove(client)
				}
			}
		case q := <-h.count:
			q.reply <- len(h.clients[q.userID])
		case <-h.quit:
			for _, conns := range h.clients {
				for client := range conns {
					close(client.send)
				}
			}
			h.clients = make(map[string]map[*Client]bool)
			return
		}
	}
}

func (h *Hub) remove(client *Client) {
	conns := h.clients[client.userID]
	if _, ok := conns[client]; !ok {
		return
	}
	delete(conns, client)
	close(client.send)
	if len(conns) == 0 {
		delete(h.clients, client.userID)
	}
}

// Stop closes every client and ends Run.
func (h *Hub) Stop() {
	close(h.quit)
}

// Connections returns the number of open connections for userID.
func (h *Hub) Connections(userID string) int {
	reply := make(chan int, 1)
	select {
	case h.count <- countQuery{userID: userID, reply: reply}:
		return <-reply
	case <-h.quit:
		return 0
	}
}

// Notify pushes n to every open connection of userID. Users without a
// connection simply miss the push; the notification is already persisted.
func (h *Hub) Notify(ctx context.Context, userID string, n models.Notification) error {
	payload, err := json.Marshal(Message{Type: "notification", Notification: n, UnreadHint: !n.Read})
	if err != nil {
		return err
	}
	select {
	case h.deliver <- delivery{userID: userID, payload: payload}:
		return nil
	case <-h.quit:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
