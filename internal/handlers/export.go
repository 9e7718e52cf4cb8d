package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jung-kurt/gofpdf"

	"github.com/w1ncs/netcontrol/internal/models"
)

// exportSessionLog renders a printable PDF of one session's check-in log,
// the traditional paper net log many clubs still archive
func (rt *Router) exportSessionLog(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var session models.NetSession
	if err := rt.db.First(&session, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Session not found")
		return
	}
	var net models.Net
	if err := rt.db.First(&net, "id = ?", session.NetID).Error; err != nil {
		respondError(w, http.StatusNotFound, "Net not found")
		return
	}
	var checkIns []models.CheckIn
	if err := rt.db.Where("session_id = ?", session.ID).Order("created_at asc").Find(&checkIns).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch check-ins")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(net.Name+" - Net Log", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, net.Name)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Session: %s", session.StartedAt.Format("2006-01-02 15:04 MST")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Net control: %s  %s", session.OperatorCallSign, session.OperatorName))
	pdf.Ln(5)
	if session.EndedAt != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Closed: %s  (%d check-ins)",
			session.EndedAt.Format("15:04 MST"), len(checkIns)))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	// Table header
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	widths := []float64{16, 26, 38, 40, 26, 44}
	headers := []string{"#", "Call Sign", "Name", "Location", "Time", "Notes"}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for i, ci := range checkIns {
		cells := []string{
			fmt.Sprintf("%d", i+1),
			ci.CallSign,
			ci.Name,
			ci.Location,
			ci.CreatedAt.Format("15:04"),
			ci.Notes,
		}
		for j, c := range cells {
			pdf.CellFormat(widths[j], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if session.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 6, "Session notes")
		pdf.Ln(5)
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, session.Notes, "", "L", false)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=netlog-%s.pdf", session.StartedAt.Format("20060102")))
	if err := pdf.Output(w); err != nil {
		log.Printf("⚠️  Export: failed to write PDF: %v", err)
	}
}
