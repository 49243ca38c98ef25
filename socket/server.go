package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// NewServer builds the socket.io server. Clients emit "join" with their user
// ID after connecting; each user gets a private room named by that ID, and
// services push events into it through Notifier.
func NewServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		return nil
	})

	server.OnEvent("/", "join", func(s socketio.Conn, userID string) {
		if userID == "" {
			return
		}
		s.SetContext(userID)
		s.Join(userID)
	})

	server.OnEvent("/", "leave", func(s socketio.Conn, userID string) {
		s.Leave(userID)
	})

	server.OnError("/", func(s socketio.Conn, err error) {
		log.Printf("Socket error: %v", err)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		if userID, ok := s.Context().(string); ok && userID != "" {
			s.Leave(userID)
		}
	})

	return server
}

// Notifier pushes events to a user's room. Implements services.Notifier.
type Notifier struct {
	Server *socketio.Server
}

// NewNotifier wraps a socket.io server for service-side pushes.
func NewNotifier(server *socketio.Server) *Notifier {
	return &Notifier{Server: server}
}

// NotifyUser emits an event into userID's room. Users who are not connected
// simply miss the push; the data is still in the store.
func (n *Notifier) NotifyUser(userID, event string, payload interface{}) {
	if n.Server == nil || userID == "" {
		return
	}
	n.Server.BroadcastToRoom("/", userID, event, payload)
}
