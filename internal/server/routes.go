package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/b0ase/path402/apps/assetroom/internal/assets"
	"github.com/b0ase/path402/apps/assetroom/internal/catalog"
	"github.com/b0ase/path402/apps/assetroom/internal/metrics"
	"github.com/b0ase/path402/apps/assetroom/internal/session"
	"github.com/b0ase/path402/apps/assetroom/internal/view"
)

// Version is reported by /health.
const Version = "0.1.0"

// SessionCookie carries the page session id.
const SessionCookie = "assetroom_session"

// maxWait bounds ?wait=1 on the toggle endpoints.
const maxWait = 10 * time.Second

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("POST /session/connection", s.handleFormConnection)
	mux.HandleFunc("POST /session/filter", s.handleFormFilter)

	mux.HandleFunc("GET /api/dashboard", s.handleAPIDashboard)
	mux.HandleFunc("GET /api/assets", s.handleAPIAssets)
	mux.HandleFunc("GET /api/stats", s.handleAPIStats)
	mux.HandleFunc("POST /api/connection/toggle", s.handleAPIToggleConnection)
	mux.HandleFunc("POST /api/filter/toggle", s.handleAPIToggleFilter)

	mux.HandleFunc("GET /data/assets.json", s.handleAssetSource)
	mux.HandleFunc("GET /media/{hash}", s.handleMedia)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// session resolves the caller's page session, starting one (and setting the
// cookie) when the cookie is missing or has expired.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session.Session {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}
	sess, created := s.sessions.GetOrCreate(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    sess.ID(),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

// waitRequested reports whether the caller asked to block until the
// in-flight connect resolves.
func waitRequested(r *http.Request) bool {
	v := r.URL.Query().Get("wait")
	ok, _ := strconv.ParseBool(v)
	return ok
}

func awaitConnection(r *http.Request, sess *session.Session) {
	ctx, cancel := context.WithTimeout(r.Context(), maxWait)
	defer cancel()
	sess.AwaitConnection(ctx)
}

// --- HTML form targets ---

func (s *Server) handleFormConnection(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	// A second click while connecting is a no-op.
	sess.ToggleConnection()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleFormFilter(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.ToggleOwnedOnlyFilter()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// --- JSON API ---

func (s *Server) handleAPIDashboard(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	writeJSON(w, view.Build(sess.Snapshot()))
}

func (s *Server) handleAPIAssets(w http.ResponseWriter, r *http.Request) {
	snap := s.session(w, r).Snapshot()
	d := view.Build(snap)
	writeJSON(w, map[string]interface{}{
		"phase":             d.Phase,
		"address":           snap.Address,
		"filter_owned_only": snap.EffectiveFilter(),
		"assets":            d.Cards,
		"empty":             d.Empty,
	})
}

func (s *Server) handleAPIStats(w http.ResponseWriter, r *http.Request) {
	snap := s.session(w, r).Snapshot()
	d := view.Build(snap)
	resp := map[string]interface{}{
		"phase": d.Phase,
	}
	if d.Stats != nil {
		resp["stats"] = d.Stats
	}
	if d.Error != "" {
		resp["error"] = d.Error
	}
	writeJSON(w, resp)
}

func (s *Server) handleAPIToggleConnection(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	state, err := sess.ToggleConnection()
	if errors.Is(err, session.ErrConnectInFlight) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if state == session.Connecting && waitRequested(r) {
		awaitConnection(r, sess)
	}
	snap := sess.Snapshot()
	writeJSON(w, map[string]interface{}{
		"state":     snap.State().String(),
		"dashboard": view.Build(snap),
	})
}

func (s *Server) handleAPIToggleFilter(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	on, err := sess.ToggleOwnedOnlyFilter()
	if errors.Is(err, session.ErrFilterUnavailable) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, map[string]interface{}{
		"filter_owned_only": on,
		"dashboard":         view.Build(sess.Snapshot()),
	})
}

// --- static source and media ---

// handleAssetSource serves the catalog as a bare JSON array.
// GET /data/assets.json
func (s *Server) handleAssetSource(w http.ResponseWriter, r *http.Request) {
	list, err := catalog.Assets()
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	if list == nil {
		list = []assets.Asset{}
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, list)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	nodeID := s.daemon.NodeID()
	if len(nodeID) > 16 {
		nodeID = nodeID[:16]
	}
	writeJSON(w, map[string]interface{}{
		"status":      "ok",
		"version":     Version,
		"node_id":     nodeID,
		"uptime_ms":   s.daemon.Uptime().Milliseconds(),
		"sessions":    s.sessions.Len(),
		"wallet_mode": s.daemon.WalletMode(),
	})
}
