package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/w1ncs/netcontrol/internal/feed"
	"github.com/w1ncs/netcontrol/internal/middleware"
	"github.com/w1ncs/netcontrol/internal/models"
	"github.com/w1ncs/netcontrol/internal/utils"
)

// RosterMemberRequest represents an add-to-roster request
type RosterMemberRequest struct {
	NetID    string `json:"netId"`
	CallSign string `json:"callSign"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// addRosterMember inserts one roster row. Roster is a simple entity:
// plain insert/delete, clients re-fetch the whole collection on any event.
func (rt *Router) addRosterMember(w http.ResponseWriter, req *http.Request) {
	var body RosterMemberRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	callSign := utils.NormalizeCallSign(body.CallSign)
	if !utils.ValidCallSign(callSign) {
		respondError(w, http.StatusBadRequest, "A valid call sign is required")
		return
	}

	var net models.Net
	if err := rt.db.First(&net, "id = ?", body.NetID).Error; err != nil {
		respondError(w, http.StatusNotFound, "Net not found")
		return
	}

	caller := middleware.CallerFrom(req)
	if caller.Role != models.RoleAdmin && caller.ProfileID != net.CreatorID {
		respondError(w, http.StatusForbidden, "Only the net creator manages the roster")
		return
	}

	member := models.RosterMember{
		NetID:    net.ID,
		CallSign: callSign,
		Name:     body.Name,
		Location: body.Location,
	}
	if err := rt.db.Create(&member).Error; err != nil {
		respondError(w, http.StatusBadRequest, "Failed to add roster member (already on roster?)")
		return
	}

	rt.hub.Publish(feed.TableRosterMembers, feed.EventInsert, member, nil)
	respondJSON(w, http.StatusCreated, member)
}

// removeRosterMember deletes one roster row
func (rt *Router) removeRosterMember(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var member models.RosterMember
	if err := rt.db.First(&member, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Roster member not found")
		return
	}

	var net models.Net
	if err := rt.db.First(&net, "id = ?", member.NetID).Error; err != nil {
		respondError(w, http.StatusNotFound, "Net not found")
		return
	}

	caller := middleware.CallerFrom(req)
	if caller.Role != models.RoleAdmin && caller.ProfileID != net.CreatorID {
		respondError(w, http.StatusForbidden, "Only the net creator manages the roster")
		return
	}

	if err := rt.db.Delete(&member).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to remove roster member")
		return
	}

	rt.hub.Publish(feed.TableRosterMembers, feed.EventDelete, nil, member)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Roster member removed"})
}
