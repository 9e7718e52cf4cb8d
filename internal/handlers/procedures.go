package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/w1ncs/netcontrol/internal/middleware"
	"github.com/w1ncs/netcontrol/internal/models"
	"github.com/w1ncs/netcontrol/internal/procedures"
)

// invokeProcedure dispatches POST /api/procedures/{name} to the named
// server-side procedure. The body is the procedure's named parameters; the
// response is the affected row, or null for a rejected passcode.
func (rt *Router) invokeProcedure(w http.ResponseWriter, req *http.Request) {
	name := mux.Vars(req)["name"]
	caller := middleware.CallerFrom(req)

	decode := func(params interface{}) bool {
		if err := json.NewDecoder(req.Body).Decode(params); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request payload")
			return false
		}
		return true
	}

	var result interface{}
	var err error

	switch name {
	case "checkin.create":
		var p procedures.CreateCheckInParams
		if !decode(&p) {
			return
		}
		result, err = rt.procs.CreateCheckIn(caller, p)

	case "checkin.update":
		var p procedures.UpdateCheckInParams
		if !decode(&p) {
			return
		}
		result, err = rt.procs.UpdateCheckIn(caller, p)

	case "checkin.set_status":
		var p procedures.SetCheckInStatusParams
		if !decode(&p) {
			return
		}
		result, err = rt.procs.SetCheckInStatus(caller, p)

	case "checkin.delete":
		var p procedures.DeleteCheckInParams
		if !decode(&p) {
			return
		}
		result, err = rt.procs.DeleteCheckIn(caller, p)

	case "session.start":
		var p procedures.StartSessionParams
		if !decode(&p) {
			return
		}
		result, err = rt.procs.StartSession(caller, p)

	case "session.end":
		var p procedures.EndSessionParams
		if !decode(&p) {
			return
		}
		result, err = rt.procs.EndSession(caller, p)

	case "session.update_notes":
		var p procedures.UpdateSessionNotesParams
		if !decode(&p) {
			return
		}
		result, err = rt.procs.UpdateSessionNotes(caller, p)

	case "net.create":
		var p procedures.NetParams
		if !decode(&p) {
			return
		}
		result, err = rt.procs.CreateNet(caller, p)

	case "net.update":
		var p procedures.NetParams
		if !decode(&p) {
			return
		}
		result, err = rt.procs.UpdateNet(caller, p)

	case "net.delete":
		var p procedures.DeleteNetParams
		if !decode(&p) {
			return
		}
		result, err = rt.procs.DeleteNet(caller, p)

	case "net.verify_passcode":
		var p procedures.VerifyPasscodeParams
		if !decode(&p) {
			return
		}
		var grant *procedures.Grant
		grant, err = rt.procs.VerifyPasscode(caller, p)
		if err == nil && grant == nil {
			// Wrong or unset passcode: absence of data, not an error
			respondJSON(w, http.StatusOK, nil)
			return
		}
		result = grant

	case "profile.update":
		var p procedures.UpdateProfileParams
		if !decode(&p) {
			return
		}
		result, err = rt.procs.UpdateProfile(caller, p)

	default:
		respondError(w, http.StatusNotFound, "Unknown procedure: "+name)
		return
	}

	if err != nil {
		respondProcError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// backfillBadges re-runs badge evaluation over all history. Admin only.
func (rt *Router) backfillBadges(w http.ResponseWriter, req *http.Request) {
	caller := middleware.CallerFrom(req)
	if caller.Role != models.RoleAdmin {
		respondError(w, http.StatusForbidden, "Admin role required")
		return
	}
	go rt.procs.BackfillBadges()
	respondJSON(w, http.StatusAccepted, map[string]string{"message": "Backfill started"})
}
