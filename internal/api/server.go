// Package api provides the local HTTP surface the settings UI talks to.
package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"

	"swiftscroll/internal/config"
	"swiftscroll/internal/protocol"
	"swiftscroll/internal/scroller"
)

// Server exposes the settings document and the enable switch over
// loopback HTTP plus a WebSocket push channel.
type Server struct {
	cfgMgr   *config.Manager
	scroller *scroller.Scroller
	wsMgr    *WSManager
}

// NewServer creates a new settings API server
func NewServer(cfgMgr *config.Manager, sc *scroller.Scroller) *Server {
	s := &Server{
		cfgMgr:   cfgMgr,
		scroller: sc,
	}
	s.wsMgr = newWSManager(s)
	return s
}

// Start serves on the loopback interface only; the settings surface is
// not a remote API. Blocking.
func (s *Server) Start(port int) error {
	go s.wsMgr.start()

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/settings", s.handleSettings)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/enabled", s.handleEnabled)
	mux.HandleFunc("/ws", s.wsMgr.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	log.Printf("API: starting settings server on %s", addr)

	ln, err := net.Listen("tcp4", addr)
	if err != nil {
		log.Printf("ERROR: settings server failed to listen on %s: %v", addr, err)
		log.Printf("Note: SwiftScroll keeps running without the settings surface.")
		return err
	}

	server := &http.Server{
		Handler: s.logMiddleware(s.recoverMiddleware(mux)),
	}

	if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Printf("ERROR: settings server stopped: %v", err)
		return err
	}
	return nil
}

// recoverMiddleware prevents panics from crashing the whole server
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("API: recovered panic: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			log.Printf("API: %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
		}
		next.ServeHTTP(w, r)
	})
}

// handleSettings handles GET (read) and POST (replace) for the
// settings document
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s.cfgMgr.Get())

	case "POST":
		var next config.Settings
		if err := json.NewDecoder(r.Body).Decode(&next); err != nil {
			http.Error(w, "Invalid settings data", http.StatusBadRequest)
			return
		}

		s.cfgMgr.Set(&next)
		if err := s.cfgMgr.Save(); err != nil {
			log.Printf("API: failed to save settings: %v", err)
			http.Error(w, "Failed to save settings", http.StatusInternalServerError)
			return
		}
		s.BroadcastSettings()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleEnabled handles POST /api/enabled?state=true|false
func (s *Server) handleEnabled(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state := r.URL.Query().Get("state")
	if state != "true" && state != "false" {
		http.Error(w, "Missing state parameter", http.StatusBadRequest)
		return
	}

	s.scroller.SetEnabled(state == "true")
	s.BroadcastStatus()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleStatus handles GET /api/status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(protocol.StatusPayload{
		Enabled: s.scroller.Enabled(),
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// BroadcastSettings pushes the current settings document to every
// connected client
func (s *Server) BroadcastSettings() {
	if s.wsMgr != nil {
		s.wsMgr.Broadcast(protocol.Message{
			Type:    protocol.TypeSettings,
			Payload: s.cfgMgr.Get(),
		})
	}
}

// BroadcastStatus pushes the enabled state to every connected client
func (s *Server) BroadcastStatus() {
	if s.wsMgr != nil {
		s.wsMgr.Broadcast(protocol.Message{
			Type: protocol.TypeStatus,
			Payload: protocol.StatusPayload{
				Enabled: s.scroller.Enabled(),
			},
		})
	}
}
