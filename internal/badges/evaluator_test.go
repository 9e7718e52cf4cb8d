package badges

import (
	"fmt"
	"testing"
	"time"

	"github.com/w1ncs/netcontrol/internal/models"
)

func loadCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load embedded catalog: %v", err)
	}
	return c
}

func mustFind(t *testing.T, c *Catalog, id string) Definition {
	t.Helper()
	def := c.Find(id)
	if def == nil {
		t.Fatalf("Badge %s not in catalog", id)
	}
	return *def
}

// history builds n check-ins for one call sign, one per session, spread
// across the given nets round-robin, one day apart
func buildHistory(n int, netIDs []string) ([]models.CheckIn, []models.NetSession) {
	var checkIns []models.CheckIn
	var sessions []models.NetSession
	base := time.Date(2025, 3, 1, 19, 30, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		sessID := fmt.Sprintf("sess-%d", i)
		sessions = append(sessions, models.NetSession{
			ID:    sessID,
			NetID: netIDs[i%len(netIDs)],
		})
		checkIns = append(checkIns, models.CheckIn{
			ID:        fmt.Sprintf("ci-%d", i),
			SessionID: sessID,
			CallSign:  "K4ABC",
			CreatedAt: base.AddDate(0, 0, i),
		})
	}
	return checkIns, sessions
}

func TestTotalCheckInsThreshold(t *testing.T) {
	c := loadCatalog(t)
	def := mustFind(t, c, "first_steps") // threshold 5

	history, sessions := buildHistory(4, []string{"net-a"})
	if c.Earned(def, history, sessions, history[3]) {
		t.Error("4 check-ins should not earn a threshold-5 badge")
	}

	history, sessions = buildHistory(5, []string{"net-a"})
	if !c.Earned(def, history, sessions, history[4]) {
		t.Error("5 check-ins should earn a threshold-5 badge")
	}
}

func TestUniqueNets(t *testing.T) {
	c := loadCatalog(t)
	def := mustFind(t, c, "explorer") // 3 unique nets

	history, sessions := buildHistory(6, []string{"net-a", "net-b"})
	if c.Earned(def, history, sessions, history[5]) {
		t.Error("2 unique nets should not earn explorer")
	}

	history, sessions = buildHistory(6, []string{"net-a", "net-b", "net-c"})
	if !c.Earned(def, history, sessions, history[5]) {
		t.Error("3 unique nets should earn explorer")
	}
}

func TestFirstCheckInOnlyEarliest(t *testing.T) {
	c := loadCatalog(t)
	def := mustFind(t, c, "first_checkin")

	history, sessions := buildHistory(3, []string{"net-a"})

	if !c.Earned(def, history, sessions, history[0]) {
		t.Error("Earliest check-in on the net should earn first_checkin")
	}
	for i := 1; i < 3; i++ {
		if c.Earned(def, history, sessions, history[i]) {
			t.Errorf("Check-in %d is not the earliest, should not earn first_checkin", i)
		}
	}
}

func TestFirstCheckInPerNet(t *testing.T) {
	c := loadCatalog(t)
	def := mustFind(t, c, "first_checkin")

	// Alternating nets: index 0 is first on net-a, index 1 first on net-b
	history, sessions := buildHistory(4, []string{"net-a", "net-b"})

	if !c.Earned(def, history, sessions, history[1]) {
		t.Error("First check-in on a different net should earn first_checkin")
	}
	if c.Earned(def, history, sessions, history[2]) {
		t.Error("Second check-in on net-a should not earn first_checkin")
	}
}

func TestNightOwlWindow(t *testing.T) {
	c := loadCatalog(t)
	def := mustFind(t, c, "night_owl") // 22:00-05:00, wraps midnight

	session := models.NetSession{ID: "sess-1", NetID: "net-a"}
	at := func(hour, min int) models.CheckIn {
		return models.CheckIn{
			ID:        "ci-1",
			SessionID: "sess-1",
			CallSign:  "K4ABC",
			CreatedAt: time.Date(2025, 3, 1, hour, min, 0, 0, time.UTC),
		}
	}

	earned := []models.CheckIn{at(22, 0), at(23, 59), at(2, 30), at(5, 0)}
	for _, ci := range earned {
		if !c.Earned(def, []models.CheckIn{ci}, []models.NetSession{session}, ci) {
			t.Errorf("Check-in at %02d:%02d should earn night_owl", ci.CreatedAt.Hour(), ci.CreatedAt.Minute())
		}
	}

	missed := []models.CheckIn{at(21, 59), at(5, 1), at(12, 0)}
	for _, ci := range missed {
		if c.Earned(def, []models.CheckIn{ci}, []models.NetSession{session}, ci) {
			t.Errorf("Check-in at %02d:%02d should not earn night_owl", ci.CreatedAt.Hour(), ci.CreatedAt.Minute())
		}
	}
}

func TestEvaluateAll(t *testing.T) {
	c := loadCatalog(t)

	history, sessions := buildHistory(1, []string{"net-a"})
	earned := c.EvaluateAll(history, sessions, history[0])

	ids := map[string]bool{}
	for _, d := range earned {
		ids[d.ID] = true
	}
	if !ids["first_checkin"] {
		t.Error("A first-ever check-in should earn first_checkin")
	}
	if ids["first_steps"] {
		t.Error("A single check-in should not earn first_steps")
	}
}

func TestLoadRejectsBadCatalog(t *testing.T) {
	if _, err := Load("no/such/file.yaml"); err == nil {
		t.Error("Load should fail for a missing file")
	}
}
