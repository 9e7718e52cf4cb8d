package procedures

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/w1ncs/netcontrol/internal/badges"
	"github.com/w1ncs/netcontrol/internal/database"
	"github.com/w1ncs/netcontrol/internal/feed"
	"github.com/w1ncs/netcontrol/internal/models"
	"github.com/w1ncs/netcontrol/internal/utils"
)

// Caller identifies who is invoking a procedure, extracted from the access
// token by the auth middleware. GrantToken optionally carries delegated net
// permissions obtained via net.verify_passcode.
type Caller struct {
	ProfileID  string
	CallSign   string
	Role       string
	GrantToken string
}

// Error is a procedure failure with an HTTP-mappable status and the
// structured fields clients assemble messages from
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

func validationError(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func forbiddenError(hint string) *Error {
	return &Error{Status: http.StatusForbidden, Message: "not authorized", Hint: hint}
}

func notFoundError(what string) *Error {
	return &Error{Status: http.StatusNotFound, Message: what + " not found"}
}

func internalError(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "internal error", Details: err.Error()}
}

// Service executes the named server-side procedures. Every mutation runs
// through here: authorization check, transactional row change, change-feed
// publication, affected row returned.
type Service struct {
	db        *database.DB
	feed      *feed.Hub
	badges    *badges.Catalog
	jwtSecret string
	validate  *validator.Validate
}

// NewService creates the procedure service
func NewService(db *database.DB, hub *feed.Hub, catalog *badges.Catalog, jwtSecret string) *Service {
	return &Service{
		db:        db,
		feed:      hub,
		badges:    catalog,
		jwtSecret: jwtSecret,
		validate:  validator.New(),
	}
}

// checkParams runs struct-tag validation on procedure parameters
func (s *Service) checkParams(params interface{}) *Error {
	if err := s.validate.Struct(params); err != nil {
		return &Error{Status: http.StatusBadRequest, Message: "invalid parameters", Details: err.Error()}
	}
	return nil
}

// authorize checks whether the caller holds permKey on the net: admins and
// the net's creator always do; otherwise a valid grant token for this net
// with the key set true is required.
func (s *Service) authorize(caller Caller, net *models.Net, permKey string) *Error {
	if caller.Role == models.RoleAdmin {
		return nil
	}
	if caller.ProfileID != "" && caller.ProfileID == net.CreatorID {
		return nil
	}
	if caller.GrantToken != "" {
		netID, perms, err := utils.ParseGrantToken(caller.GrantToken, s.jwtSecret)
		if err == nil && netID == net.ID && perms[permKey] {
			return nil
		}
	}
	return forbiddenError("requires net ownership or a passcode grant with " + permKey)
}

// loadNet fetches a net or returns a procedure error
func (s *Service) loadNet(netID string) (*models.Net, *Error) {
	var net models.Net
	if err := s.db.First(&net, "id = ?", netID).Error; err != nil {
		return nil, notFoundError("net")
	}
	return &net, nil
}

// loadSession fetches a session with its net or returns a procedure error
func (s *Service) loadSession(sessionID string) (*models.NetSession, *models.Net, *Error) {
	var session models.NetSession
	if err := s.db.First(&session, "id = ?", sessionID).Error; err != nil {
		return nil, nil, notFoundError("session")
	}
	net, perr := s.loadNet(session.NetID)
	if perr != nil {
		return nil, nil, perr
	}
	return &session, net, nil
}
