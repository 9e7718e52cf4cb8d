package netclient

import (
	"github.com/w1ncs/netcontrol/internal/badges"
	"github.com/w1ncs/netcontrol/internal/models"
)

// PreviewBadges predicts which badges a check-in would earn, given the
// operator's history and the sessions it spans. The server's award decision
// is authoritative; this exists so the UI can show the toast immediately,
// before the awarded_badges event arrives.
func PreviewBadges(catalog *badges.Catalog, history []models.CheckIn, sessions []models.NetSession, checkIn models.CheckIn) []badges.Definition {
	if catalog == nil {
		return nil
	}
	return catalog.EvaluateAll(history, sessions, checkIn)
}
