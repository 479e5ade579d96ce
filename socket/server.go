package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// NewServer builds the socket.io server used for live game and chat
// feeds. Clients land in both rooms on connect; "join" exists for
// clients that reconnect after a dropped transport.
func NewServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		s.Join("games")
		s.Join("chat")
		log.Printf("🔌 Socket connected: %s", s.ID())
		return nil
	})

	server.OnEvent("/", "join", func(s socketio.Conn, room string) {
		s.Join(room)
		log.Printf("🔌 Socket %s joined room %s", s.ID(), room)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		log.Printf("🔌 Socket disconnected: %s (%s)", s.ID(), reason)
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		log.Printf("⚠️ Socket error: %v", e)
	})

	return server
}
