package procedures

import (
	"time"

	"github.com/w1ncs/netcontrol/internal/feed"
	"github.com/w1ncs/netcontrol/internal/models"
	"github.com/w1ncs/netcontrol/internal/utils"
)

// StartSessionParams are the named parameters of session.start
type StartSessionParams struct {
	NetID            string `json:"netId" validate:"required,uuid4"`
	OperatorCallSign string `json:"operatorCallSign"` // defaults to the caller
	OperatorName     string `json:"operatorName"`
}

// StartSession opens a session for a net. At most one session per net may
// be on the air: starting while another is active is rejected.
func (s *Service) StartSession(caller Caller, params StartSessionParams) (*models.NetSession, error) {
	if perr := s.checkParams(params); perr != nil {
		return nil, perr
	}

	net, perr := s.loadNet(params.NetID)
	if perr != nil {
		return nil, perr
	}
	if perr := s.authorize(caller, net, models.PermStartSession); perr != nil {
		return nil, perr
	}

	var active int64
	s.db.Model(&models.NetSession{}).
		Where("net_id = ? AND ended_at IS NULL", net.ID).
		Count(&active)
	if active > 0 {
		return nil, validationError("a session for %s is already on the air", net.Name)
	}

	operator := utils.NormalizeCallSign(params.OperatorCallSign)
	if operator == "" {
		operator = utils.NormalizeCallSign(caller.CallSign)
	}
	session := models.NetSession{
		NetID:            net.ID,
		StartedAt:        time.Now().UTC(),
		OperatorCallSign: operator,
		OperatorName:     params.OperatorName,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, internalError(err)
	}

	s.feed.Publish(feed.TableSessions, feed.EventInsert, session, nil)
	return &session, nil
}

// EndSessionParams are the named parameters of session.end
type EndSessionParams struct {
	ID string `json:"id" validate:"required,uuid4"`
}

// EndSession closes an active session
func (s *Service) EndSession(caller Caller, params EndSessionParams) (*models.NetSession, error) {
	if perr := s.checkParams(params); perr != nil {
		return nil, perr
	}

	session, net, perr := s.loadSession(params.ID)
	if perr != nil {
		return nil, perr
	}
	if perr := s.authorize(caller, net, models.PermEndSession); perr != nil {
		return nil, perr
	}
	if !session.IsActive() {
		return nil, validationError("session has already ended")
	}

	old := *session
	now := time.Now().UTC()
	session.EndedAt = &now
	if err := s.db.Save(session).Error; err != nil {
		return nil, internalError(err)
	}

	s.feed.Publish(feed.TableSessions, feed.EventUpdate, session, old)
	return session, nil
}

// UpdateSessionNotesParams are the named parameters of session.update_notes
type UpdateSessionNotesParams struct {
	ID    string `json:"id" validate:"required,uuid4"`
	Notes string `json:"notes"`
}

// UpdateSessionNotes persists the free-text session notes. Clients debounce
// keystrokes and send only the settled value.
func (s *Service) UpdateSessionNotes(caller Caller, params UpdateSessionNotesParams) (*models.NetSession, error) {
	if perr := s.checkParams(params); perr != nil {
		return nil, perr
	}

	session, net, perr := s.loadSession(params.ID)
	if perr != nil {
		return nil, perr
	}
	if perr := s.authorize(caller, net, models.PermManageCheckIns); perr != nil {
		return nil, perr
	}

	old := *session
	session.Notes = params.Notes
	if err := s.db.Save(session).Error; err != nil {
		return nil, internalError(err)
	}

	s.feed.Publish(feed.TableSessions, feed.EventUpdate, session, old)
	return session, nil
}
