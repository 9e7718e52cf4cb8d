package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/w1ncs/netcontrol/internal/buildinfo"
	"github.com/w1ncs/netcontrol/internal/config"
	"github.com/w1ncs/netcontrol/internal/database"
	"github.com/w1ncs/netcontrol/internal/feed"
	"github.com/w1ncs/netcontrol/internal/middleware"
	"github.com/w1ncs/netcontrol/internal/procedures"
)

// Router wraps the mux router with the service dependencies
type Router struct {
	*mux.Router
	db    *database.DB
	hub   *feed.Hub
	procs *procedures.Service
	cfg   *config.Config
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, hub *feed.Hub, procs *procedures.Service, cfg *config.Config) *Router {
	rt := &Router{
		Router: mux.NewRouter(),
		db:     db,
		hub:    hub,
		procs:  procs,
		cfg:    cfg,
	}

	rt.Use(middleware.LowercasePath)

	// Health check endpoint
	rt.HandleFunc("/health", rt.healthCheck).Methods("GET")

	// Auth routes
	auth := rt.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", rt.login).Methods("POST")
	auth.HandleFunc("/register", rt.register).Methods("POST")
	auth.HandleFunc("/logout", rt.logout).Methods("POST")

	authed := middleware.Auth(cfg.JWTSecret)

	password := rt.PathPrefix("/auth/password").Subrouter()
	password.Use(authed)
	password.HandleFunc("", rt.changePassword).Methods("PUT")

	// Row reads: select all rows from an entity, ordered
	rows := rt.PathPrefix("/api/rows").Subrouter()
	rows.Use(authed)
	rows.HandleFunc("/{table}", rt.listRows).Methods("GET")

	// Named remote procedures
	procsRoute := rt.PathPrefix("/api/procedures").Subrouter()
	procsRoute.Use(authed)
	procsRoute.HandleFunc("/{name}", rt.invokeProcedure).Methods("POST")

	// Roster membership: simple single-row insert/delete
	roster := rt.PathPrefix("/api/roster").Subrouter()
	roster.Use(authed)
	roster.HandleFunc("", rt.addRosterMember).Methods("POST")
	roster.HandleFunc("/{id}", rt.removeRosterMember).Methods("DELETE")

	// Net join QR and session log export
	extras := rt.PathPrefix("/api").Subrouter()
	extras.Use(authed)
	extras.HandleFunc("/nets/{id}/qr", rt.netJoinQR).Methods("GET")
	extras.HandleFunc("/sessions/{id}/log.pdf", rt.exportSessionLog).Methods("GET")
	extras.HandleFunc("/badges/backfill", rt.backfillBadges).Methods("POST")

	// Change feed subscription
	rt.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		feed.ServeWs(hub, w, r)
	})

	return rt
}

// healthCheck returns the health status of the API
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"subscribers": rt.hub.SubscriberCount(),
		"started":     buildinfo.StartTime,
		"commit":      buildinfo.CommitHash,
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondProcError maps a procedure failure onto the wire, keeping the
// structured fields clients assemble messages from
func respondProcError(w http.ResponseWriter, err error) {
	if perr, ok := err.(*procedures.Error); ok {
		respondJSON(w, perr.Status, perr)
		return
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}
