// Package wsserver provides the WebSocket transport for Redisgate.
package wsserver

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/redisgate/redisgate/internal/redis"
	"github.com/redisgate/redisgate/internal/telemetry/logger"
	"github.com/redisgate/redisgate/internal/telemetry/metric"
)

// Server upgrades HTTP requests to WebSocket connections and runs one
// read-dispatch-write loop per connection.
type Server struct {
	client   *redis.Client
	log      logger.Logger
	metrics  *metric.Registry
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// New creates a WebSocket server over client. metrics may be nil.
func New(client *redis.Client, log logger.Logger, metrics *metric.Registry) *Server {
	return &Server{
		client:  client,
		log:     log,
		metrics: metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin policy is the deployment's concern; the proxy has
			// no cookie-based auth to protect.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns the WebSocket route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /redis_ws/string/ws", s.serveFamily(s.dispatchString))
	mux.HandleFunc("GET /redis_ws/hash/ws", s.serveFamily(s.dispatchHash))
	mux.HandleFunc("GET /redis_ws/set/ws", s.serveFamily(s.dispatchSet))
	mux.HandleFunc("GET /redis_ws/bitmap/ws", s.serveFamily(s.dispatchBitmap))
	mux.HandleFunc("GET /redis_ws/admin/ws", s.serveFamily(s.dispatchAdmin))
	return mux
}

// dispatchFunc resolves one decoded frame into a response frame.
type dispatchFunc func(ctx context.Context, raw []byte) response

// serveFamily upgrades the request and runs the connection loop with
// the family's dispatcher.
func (s *Server) serveFamily(dispatch dispatchFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.log.Warn("websocket upgrade failed", "error", err, "path", r.URL.Path)
			return
		}
		s.track(conn)
		defer s.untrack(conn)

		if s.metrics != nil {
			s.metrics.WSConnections.Inc()
			defer s.metrics.WSConnections.Dec()
		}

		endpoint := r.URL.Path
		for {
			_, raw, rerr := conn.ReadMessage()
			if rerr != nil {
				if websocket.IsUnexpectedCloseError(rerr, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					s.log.Debug("websocket read failed", "error", rerr, "path", endpoint)
				}
				return
			}
			s.observe(endpoint, "in")

			resp := dispatch(r.Context(), raw)
			if werr := conn.WriteJSON(resp); werr != nil {
				s.log.Debug("websocket write failed", "error", werr, "path", endpoint)
				return
			}
			s.observe(endpoint, "out")
		}
	}
}

// Close tears down every open connection. Used during shutdown.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			closeDeadline())
		_ = conn.Close()
	}
	s.conns = make(map[*websocket.Conn]struct{})
	return nil
}

func (s *Server) track(conn *websocket.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	_ = conn.Close()
}

func (s *Server) observe(endpoint, direction string) {
	if s.metrics != nil {
		s.metrics.WSMessages.WithLabelValues(endpoint, direction).Inc()
	}
}
