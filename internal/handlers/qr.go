package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/w1ncs/netcontrol/internal/models"
)

// netJoinQR renders a QR code with the net's join URL, for club flyers and
// repeater-site postings. Operators who scan it land on the net page and can
// enter the delegated-access passcode there.
func (rt *Router) netJoinQR(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var net models.Net
	if err := rt.db.First(&net, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Net not found")
		return
	}

	joinURL := rt.cfg.BaseURL + "/join/" + net.ID

	png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate QR")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
