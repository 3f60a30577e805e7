// Package server exposes dungeon generation and exploration to browser
// clients over WebSocket. Each connection gets an isolated session; there is
// no shared game state between clients.
package server

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/emberforge/taverntale/server/internal/config"
	"github.com/emberforge/taverntale/server/internal/database"
	"github.com/emberforge/taverntale/server/internal/logger"
)

// Server accepts WebSocket clients and serves the dungeon protocol.
type Server struct {
	address      string
	cfg          *config.ServerConfig
	db           *database.Database
	httpServer   *http.Server
	connLimiter  *ConnLimiter
	conns        map[*websocket.Conn]struct{}
	mu           sync.Mutex
	shutdown     chan struct{}
	shutdownOnce sync.Once
	StartTime    time.Time
}

// NewServer creates a server listening on address once Start is called.
func NewServer(address string, cfg *config.ServerConfig, db *database.Database) *Server {
	return &Server{
		address:     address,
		cfg:         cfg,
		db:          db,
		connLimiter: NewConnLimiter(cfg.Connections),
		conns:       make(map[*websocket.Conn]struct{}),
		shutdown:    make(chan struct{}),
		StartTime:   time.Now(),
	}
}

// Start runs the WebSocket listener. It blocks until the server shuts down.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocketUpgrade)

	s.httpServer = &http.Server{
		Addr:    s.address,
		Handler: mux,
	}

	logger.Info("WebSocket server listening", "address", s.address)

	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the listener and closes all active client connections.
func (s *Server) Shutdown() {
	s.shutdownOnce.Do(func() {
		close(s.shutdown)

		if s.httpServer != nil {
			s.httpServer.Close()
		}

		// Hijacked WebSocket connections aren't closed by httpServer.Close
		s.mu.Lock()
		for conn := range s.conns {
			conn.Close()
		}
		s.mu.Unlock()

		logger.Info("Server shut down")
	})
}

// handleWebSocketUpgrade upgrades an HTTP connection to WebSocket.
func (s *Server) handleWebSocketUpgrade(w http.ResponseWriter, r *http.Request) {
	clientIP := getRealIP(r)

	if !s.connLimiter.TryAcquire(clientIP) {
		logger.Warning("Connection rejected - limit exceeded",
			"remote_addr", r.RemoteAddr,
			"client_ip", clientIP)
		http.Error(w, "Too many connections. Please try again later.", http.StatusTooManyRequests)
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := s.cfg.WebSocket.IsOriginAllowed(origin, r.Host)
			if !allowed {
				logger.Warning("Connection rejected - origin not allowed",
					"origin", origin,
					"host", r.Host,
					"remote_addr", r.RemoteAddr)
			}
			return allowed
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", "error", err)
		s.connLimiter.Release(clientIP)
		return
	}

	go s.handleConnection(conn, clientIP)
}

// handleConnection runs one client's request loop until it disconnects.
func (s *Server) handleConnection(conn *websocket.Conn, clientIP string) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()

		s.connLimiter.Release(clientIP)
		conn.Close()

		logger.Info("Client disconnected", "client_ip", clientIP)
	}()

	if s.cfg.WebSocket.MaxMessageSize > 0 {
		conn.SetReadLimit(s.cfg.WebSocket.MaxMessageSize)
	}

	logger.Info("Client connected", "client_ip", clientIP)

	sess := &session{srv: s}

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("Read failed", "client_ip", clientIP, "error", err)
			}
			return
		}

		resp := sess.handle(req)

		if err := conn.WriteJSON(resp); err != nil {
			logger.Debug("Write failed", "client_ip", clientIP, "error", err)
			return
		}
	}
}

// getRealIP extracts the real client IP from an HTTP request, honoring
// reverse-proxy headers before falling back to the direct remote address.
func getRealIP(r *http.Request) string {
	// X-Forwarded-For can contain "client, proxy1, proxy2"
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			clientIP := strings.TrimSpace(ips[0])
			if clientIP != "" {
				return clientIP
			}
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	return extractIP(r.RemoteAddr)
}
