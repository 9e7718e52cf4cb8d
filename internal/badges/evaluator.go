package badges

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/w1ncs/netcontrol/internal/models"
)

// Earned decides whether submitting checkIn earns the badge, given the call
// sign's full check-in history (which must include checkIn itself) and the
// sessions those check-ins belong to. Pure: no I/O, deterministic.
//
// The same predicates run server-side at award issuance and client-side for
// preview; a stale client preview is reconciled by the next data refresh.
func (c *Catalog) Earned(def Definition, history []models.CheckIn, sessions []models.NetSession, checkIn models.CheckIn) bool {
	netOf := sessionNetIndex(sessions)

	switch def.Rule {
	case RuleTotalCheckIns:
		return len(history) >= def.Threshold

	case RuleUniqueNets:
		nets := map[string]bool{}
		for _, ci := range history {
			if netID := netOf[ci.SessionID]; netID != "" {
				nets[netID] = true
			}
		}
		return len(nets) >= def.Threshold

	case RuleNetCheckIns:
		netID := netOf[checkIn.SessionID]
		if netID == "" {
			return false
		}
		count := 0
		for _, ci := range history {
			if netOf[ci.SessionID] == netID {
				count++
			}
		}
		return count >= def.Threshold

	case RuleFirstCheckIn:
		netID := netOf[checkIn.SessionID]
		if netID == "" {
			return false
		}
		for _, ci := range history {
			if ci.ID == checkIn.ID || netOf[ci.SessionID] != netID {
				continue
			}
			if ci.CreatedAt.Before(checkIn.CreatedAt) {
				return false
			}
		}
		return true

	case RuleTimeWindow:
		from, err1 := parseClock(def.Window.From)
		to, err2 := parseClock(def.Window.To)
		if err1 != nil || err2 != nil {
			return false
		}
		minute := checkIn.CreatedAt.Hour()*60 + checkIn.CreatedAt.Minute()
		if from <= to {
			return minute >= from && minute <= to
		}
		// Window wraps midnight
		return minute >= from || minute <= to
	}

	return false
}

// EvaluateAll returns every badge the check-in would earn
func (c *Catalog) EvaluateAll(history []models.CheckIn, sessions []models.NetSession, checkIn models.CheckIn) []Definition {
	var earned []Definition
	for _, def := range c.defs {
		if c.Earned(def, history, sessions, checkIn) {
			earned = append(earned, def)
		}
	}
	return earned
}

func sessionNetIndex(sessions []models.NetSession) map[string]string {
	idx := make(map[string]string, len(sessions))
	for _, s := range sessions {
		idx[s.ID] = s.NetID
	}
	return idx
}

// parseClock converts "HH:MM" to minutes since midnight
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	return h*60 + m, nil
}
