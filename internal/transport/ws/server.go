// Package ws is the websocket gate between untrusted clients and the host.
// The transport enforces connection identity: whatever client id a socket
// claimed in its hello is stamped onto every intent it submits, so a client
// cannot act as anyone else regardless of what its intents say.
package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/openfrontio/OpenFrontIO-sub010/internal/host"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/protocol"
)

const (
	handshakeTimeout = 5 * time.Second
	readTimeout      = 60 * time.Second
	writeTimeout     = 5 * time.Second
)

type Server struct {
	host *host.Host
	log  *log.Logger

	upgrader websocket.Upgrader
}

func NewServer(h *host.Host, logger *log.Logger) *Server {
	return &Server{
		host: h,
		log:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		clientID := s.handshake(conn)
		if clientID == "" {
			return
		}
		s.log.Printf("client connected: %s", clientID)

		feed := s.host.Subscribe()
		defer s.host.Unsubscribe(feed)

		done := make(chan struct{})

		// Writer goroutine: turn broadcasts out to the client.
		go func() {
			defer close(done)
			for ev := range feed {
				env := protocol.TurnEnvelope{Type: protocol.MsgTurn, Turn: ev.Turn, Digest: ev.Digest}
				b, err := json.Marshal(env)
				if err != nil {
					continue
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					return
				}
			}
		}()

		// Reader loop: intents in.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			in, err := protocol.DecodeIntent(msg)
			if err != nil {
				continue
			}
			// The socket's identity wins over whatever the payload claims.
			in.ClientID = clientID
			if !s.host.Submit(in) {
				s.log.Printf("inbox full; dropping %s intent from %s", in.Type, clientID)
			}
		}
		// Close the feed first so the writer goroutine unblocks.
		s.host.Unsubscribe(feed)
		<-done
		s.log.Printf("client disconnected: %s", clientID)
	}
}

func (s *Server) handshake(conn *websocket.Conn) string {
	_ = conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return ""
	}
	var hello protocol.Hello
	if err := json.Unmarshal(msg, &hello); err != nil || hello.Type != protocol.MsgHello {
		s.closePolicy(conn, "expected HELLO")
		return ""
	}
	if hello.Version != protocol.Version {
		s.closePolicy(conn, "bad protocol version")
		return ""
	}
	if hello.ClientID == "" {
		s.closePolicy(conn, "missing client id")
		return ""
	}
	return hello.ClientID
}

func (s *Server) closePolicy(conn *websocket.Conn, reason string) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason),
		time.Now().Add(time.Second))
}
