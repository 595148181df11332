package socket

import (
	"log"
	"net/http"

	"petfectly_server/discovery"
	"petfectly_server/models"

	socketio "github.com/googollee/go-socket.io"
)

const namespace = "/"

// Server pushes discovery state and chat messages to Socket.IO rooms.
// Clients join the room of their discovery session id and of each match id they chat in.
type Server struct {
	io *socketio.Server
}

// NewServer initializes a Socket.IO server with join/leave handlers
func NewServer() *Server {
	server := socketio.NewServer(nil)

	server.OnConnect(namespace, func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		return nil
	})

	server.OnEvent(namespace, "join", func(c socketio.Conn, room string) {
		if room == "" {
			log.Println("❌ Invalid room in join request")
			return
		}
		log.Printf("👥 Socket %s joined %s", c.ID(), room)
		c.Join(room)
	})

	server.OnEvent(namespace, "leave", func(c socketio.Conn, room string) {
		c.Leave(room)
	})

	server.OnError(namespace, func(c socketio.Conn, err error) {
		log.Printf("❌ Socket error: %v", err)
	})

	server.OnDisconnect(namespace, func(c socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", c.ID(), reason)
	})

	return &Server{io: server}
}

// Serve runs the engine loop until Close
func (s *Server) Serve() error { return s.io.Serve() }

// Close shuts the server down
func (s *Server) Close() error { return s.io.Close() }

// Handler mounts the server on /socket.io/
func (s *Server) Handler() http.Handler { return s.io }

// StateChanged implements discovery.Observer
func (s *Server) StateChanged(sessionID string, snap discovery.Snapshot) {
	s.io.BroadcastToRoom(namespace, sessionID, "state", snap)
}

// MatchFound implements discovery.Observer; the popup waits for MatchRevealed
func (s *Server) MatchFound(string, discovery.Candidate) {}

// MatchRevealed implements discovery.Observer
func (s *Server) MatchRevealed(sessionID string, c discovery.Candidate) {
	log.Printf("🎉 Match popup for session %s: %s", sessionID, c.Name)
	s.io.BroadcastToRoom(namespace, sessionID, "match", c)
}

// BroadcastMessage delivers a chat message to everyone in the match room
func (s *Server) BroadcastMessage(msg models.Message) {
	s.io.BroadcastToRoom(namespace, msg.MatchID, "newMessage", msg)
}
