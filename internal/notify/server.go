package notify

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/louisbranch/idlerealm/internal/platform/id"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server exposes the hub over websockets for chat surfaces to attach to.
type Server struct {
	hub *Hub
	log *logrus.Logger
}

// NewServer creates the websocket surface over a hub.
func NewServer(hub *Hub, log *logrus.Logger) *Server {
	return &Server{hub: hub, log: log}
}

// Routes registers the chat surface endpoints on a fresh router.
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/ws/{channel}", s.handleChannel).Methods(http.MethodGet)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleChannel upgrades the connection and streams the channel's
// announcements until the client goes away.
func (s *Server) handleChannel(w http.ResponseWriter, r *http.Request) {
	channelID := mux.Vars(r)["channel"]
	if channelID == "" {
		http.Error(w, "channel is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if s.log != nil {
			s.log.WithError(err).Warn("websocket upgrade failed")
		}
		return
	}

	if s.log != nil {
		connID, err := id.NewID()
		if err != nil {
			connID = "unknown"
		}
		s.log.WithFields(logrus.Fields{"channel": channelID, "conn": connID}).Info("chat surface attached")
	}

	sub := s.hub.Subscribe(channelID)
	go s.writePump(conn, sub)
	go s.readPump(conn, sub)
}

// writePump streams announcements and pings to one client.
func (s *Server) writePump(conn *websocket.Conn, sub *Subscription) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		sub.Cancel()
		_ = conn.Close()
	}()

	for {
		select {
		case msg, ok := <-sub.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames so pongs and closes are processed.
func (s *Server) readPump(conn *websocket.Conn, sub *Subscription) {
	defer sub.Cancel()
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
