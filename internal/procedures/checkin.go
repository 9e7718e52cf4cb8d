package procedures

import (
	"log"
	"time"

	"github.com/w1ncs/netcontrol/internal/feed"
	"github.com/w1ncs/netcontrol/internal/models"
	"github.com/w1ncs/netcontrol/internal/utils"
)

// CreateCheckInParams are the named parameters of checkin.create
type CreateCheckInParams struct {
	SessionID string `json:"sessionId" validate:"required,uuid4"`
	CallSign  string `json:"callSign" validate:"required"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	Notes     string `json:"notes"`
	Repeater  string `json:"repeater"`
}

// CreateCheckIn logs a station into a session. The call sign is normalized,
// duplicates within the session are rejected, and earned badges are issued
// after the row is committed.
func (s *Service) CreateCheckIn(caller Caller, params CreateCheckInParams) (*models.CheckIn, error) {
	if perr := s.checkParams(params); perr != nil {
		return nil, perr
	}

	callSign := utils.NormalizeCallSign(params.CallSign)
	if callSign == "" {
		return nil, validationError("call sign is required")
	}
	if !utils.ValidCallSign(callSign) {
		return nil, validationError("%q does not look like a call sign", callSign)
	}

	session, net, perr := s.loadSession(params.SessionID)
	if perr != nil {
		return nil, perr
	}
	if perr := s.authorize(caller, net, models.PermManageCheckIns); perr != nil {
		return nil, perr
	}
	if !session.IsActive() {
		return nil, validationError("session has already ended")
	}

	// Duplicate guard: one check-in per station per session
	var existing int64
	s.db.Model(&models.CheckIn{}).
		Where("session_id = ? AND call_sign = ?", session.ID, callSign).
		Count(&existing)
	if existing > 0 {
		return nil, validationError("%s is already checked in", callSign)
	}

	checkIn := models.CheckIn{
		SessionID: session.ID,
		CallSign:  callSign,
		Name:      params.Name,
		Location:  params.Location,
		Notes:     params.Notes,
		Repeater:  params.Repeater,
		Status:    models.StatusNew,
	}
	if err := s.db.Create(&checkIn).Error; err != nil {
		return nil, internalError(err)
	}

	s.feed.Publish(feed.TableCheckIns, feed.EventInsert, checkIn, nil)

	// Best-effort housekeeping, never fails the check-in
	s.issueBadges(checkIn)

	return &checkIn, nil
}

// UpdateCheckInParams are the named parameters of checkin.update
type UpdateCheckInParams struct {
	ID       string `json:"id" validate:"required,uuid4"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
	Repeater string `json:"repeater"`
}

// UpdateCheckIn edits the descriptive fields of a check-in
func (s *Service) UpdateCheckIn(caller Caller, params UpdateCheckInParams) (*models.CheckIn, error) {
	if perr := s.checkParams(params); perr != nil {
		return nil, perr
	}

	var checkIn models.CheckIn
	if err := s.db.First(&checkIn, "id = ?", params.ID).Error; err != nil {
		return nil, notFoundError("check-in")
	}
	_, net, perr := s.loadSession(checkIn.SessionID)
	if perr != nil {
		return nil, perr
	}
	if perr := s.authorize(caller, net, models.PermManageCheckIns); perr != nil {
		return nil, perr
	}

	old := checkIn
	checkIn.Name = params.Name
	checkIn.Location = params.Location
	checkIn.Notes = params.Notes
	checkIn.Repeater = params.Repeater
	if err := s.db.Save(&checkIn).Error; err != nil {
		return nil, internalError(err)
	}

	s.feed.Publish(feed.TableCheckIns, feed.EventUpdate, checkIn, old)
	return &checkIn, nil
}

// SetCheckInStatusParams are the named parameters of checkin.set_status
type SetCheckInStatusParams struct {
	ID     string               `json:"id" validate:"required,uuid4"`
	Status models.CheckInStatus `json:"status" validate:"min=0,max=3"`
}

// SetCheckInStatus writes the acknowledgement flag. Clients compute the next
// value in the New -> Acknowledged -> Attention -> Question cycle locally
// and send it here.
func (s *Service) SetCheckInStatus(caller Caller, params SetCheckInStatusParams) (*models.CheckIn, error) {
	if perr := s.checkParams(params); perr != nil {
		return nil, perr
	}

	var checkIn models.CheckIn
	if err := s.db.First(&checkIn, "id = ?", params.ID).Error; err != nil {
		return nil, notFoundError("check-in")
	}
	_, net, perr := s.loadSession(checkIn.SessionID)
	if perr != nil {
		return nil, perr
	}
	if perr := s.authorize(caller, net, models.PermManageCheckIns); perr != nil {
		return nil, perr
	}

	old := checkIn
	checkIn.Status = params.Status
	if err := s.db.Save(&checkIn).Error; err != nil {
		return nil, internalError(err)
	}

	s.feed.Publish(feed.TableCheckIns, feed.EventUpdate, checkIn, old)
	return &checkIn, nil
}

// DeleteCheckInParams are the named parameters of checkin.delete
type DeleteCheckInParams struct {
	ID string `json:"id" validate:"required,uuid4"`
}

// DeleteCheckIn removes a check-in. Clients drop the row only when the
// DELETE event arrives on the feed, not optimistically.
func (s *Service) DeleteCheckIn(caller Caller, params DeleteCheckInParams) (*models.CheckIn, error) {
	if perr := s.checkParams(params); perr != nil {
		return nil, perr
	}

	var checkIn models.CheckIn
	if err := s.db.First(&checkIn, "id = ?", params.ID).Error; err != nil {
		return nil, notFoundError("check-in")
	}
	_, net, perr := s.loadSession(checkIn.SessionID)
	if perr != nil {
		return nil, perr
	}
	if perr := s.authorize(caller, net, models.PermManageCheckIns); perr != nil {
		return nil, perr
	}

	if err := s.db.Delete(&checkIn).Error; err != nil {
		return nil, internalError(err)
	}

	s.feed.Publish(feed.TableCheckIns, feed.EventDelete, nil, checkIn)
	return &checkIn, nil
}

// issueBadges evaluates the catalog against the station's history and
// persists any newly earned awards. Failures only log: badge issuance is
// housekeeping, never part of the check-in contract.
func (s *Service) issueBadges(checkIn models.CheckIn) {
	var history []models.CheckIn
	if err := s.db.Where("call_sign = ?", checkIn.CallSign).Order("created_at asc").Find(&history).Error; err != nil {
		log.Printf("⚠️  Badges: failed to load history for %s: %v", checkIn.CallSign, err)
		return
	}
	var sessions []models.NetSession
	if err := s.db.Find(&sessions).Error; err != nil {
		log.Printf("⚠️  Badges: failed to load sessions: %v", err)
		return
	}

	for _, def := range s.badges.EvaluateAll(history, sessions, checkIn) {
		var already int64
		s.db.Model(&models.AwardedBadge{}).
			Where("call_sign = ? AND badge_id = ?", checkIn.CallSign, def.ID).
			Count(&already)
		if already > 0 {
			continue
		}

		award := models.AwardedBadge{
			CallSign:  checkIn.CallSign,
			BadgeID:   def.ID,
			SessionID: checkIn.SessionID,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.db.Create(&award).Error; err != nil {
			log.Printf("⚠️  Badges: failed to award %s to %s: %v", def.ID, checkIn.CallSign, err)
			continue
		}
		log.Printf("🏅 Badge awarded: %s -> %s", def.ID, checkIn.CallSign)
		s.feed.Publish(feed.TableAwardedBadges, feed.EventInsert, award, nil)
	}
}

// BackfillBadges re-evaluates every station's history against the catalog.
// Used after catalog changes; failures only log.
func (s *Service) BackfillBadges() {
	var callSigns []string
	if err := s.db.Model(&models.CheckIn{}).Distinct("call_sign").Pluck("call_sign", &callSigns).Error; err != nil {
		log.Printf("⚠️  Badges: backfill failed to list call signs: %v", err)
		return
	}
	for _, cs := range callSigns {
		var latest models.CheckIn
		if err := s.db.Where("call_sign = ?", cs).Order("created_at desc").First(&latest).Error; err != nil {
			continue
		}
		s.issueBadges(latest)
	}
	log.Printf("✅ Badges: backfill complete for %d call signs", len(callSigns))
}
