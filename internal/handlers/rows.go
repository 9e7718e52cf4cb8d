package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/w1ncs/netcontrol/internal/models"
)

// listRows is the full-collection read: select all rows from an entity,
// ordered by its natural field. Low-traffic entities are re-fetched
// wholesale through here whenever the feed signals any change.
func (rt *Router) listRows(w http.ResponseWriter, req *http.Request) {
	table := mux.Vars(req)["table"]
	query := req.URL.Query()

	switch table {
	case "nets":
		var nets []models.Net
		if err := rt.db.Order("name asc").Find(&nets).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to fetch nets")
			return
		}
		respondJSON(w, http.StatusOK, nets)

	case "net_sessions":
		db := rt.db.Order("started_at desc")
		if netID := query.Get("netid"); netID != "" {
			db = db.Where("net_id = ?", netID)
		}
		var sessions []models.NetSession
		if err := db.Find(&sessions).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to fetch sessions")
			return
		}
		respondJSON(w, http.StatusOK, sessions)

	case "check_ins":
		db := rt.db.Order("created_at desc")
		if sessionID := query.Get("sessionid"); sessionID != "" {
			db = db.Where("session_id = ?", sessionID)
		}
		if callSign := query.Get("callsign"); callSign != "" {
			db = db.Where("call_sign = ?", callSign)
		}
		var checkIns []models.CheckIn
		if err := db.Find(&checkIns).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to fetch check-ins")
			return
		}
		respondJSON(w, http.StatusOK, checkIns)

	case "badge_definitions":
		var defs []models.BadgeDefinition
		if err := rt.db.Order("id asc").Find(&defs).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to fetch badge definitions")
			return
		}
		respondJSON(w, http.StatusOK, defs)

	case "awarded_badges":
		db := rt.db.Order("created_at desc")
		if callSign := query.Get("callsign"); callSign != "" {
			db = db.Where("call_sign = ?", callSign)
		}
		var awards []models.AwardedBadge
		if err := db.Find(&awards).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to fetch awarded badges")
			return
		}
		respondJSON(w, http.StatusOK, awards)

	case "roster_members":
		db := rt.db.Order("call_sign asc")
		if netID := query.Get("netid"); netID != "" {
			db = db.Where("net_id = ?", netID)
		}
		var members []models.RosterMember
		if err := db.Find(&members).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to fetch roster members")
			return
		}
		respondJSON(w, http.StatusOK, members)

	default:
		respondError(w, http.StatusNotFound, "Unknown entity: "+table)
	}
}
