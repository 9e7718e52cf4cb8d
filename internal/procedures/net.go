package procedures

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/w1ncs/netcontrol/internal/feed"
	"github.com/w1ncs/netcontrol/internal/models"
	"github.com/w1ncs/netcontrol/internal/schedule"
	"github.com/w1ncs/netcontrol/internal/utils"
)

// NetParams are the named parameters of net.create and net.update
type NetParams struct {
	ID          string               `json:"id"` // update only
	Name        string               `json:"name" validate:"required"`
	Description string               `json:"description"`
	Type        models.NetType       `json:"type" validate:"required,oneof=single_repeater linked_system simplex"`
	Schedule    schedule.Recurrence  `json:"schedule"`
	StartTime   string               `json:"startTime"`
	TimeZone    string               `json:"timeZone"`
	Repeaters   []models.Repeater    `json:"repeaters"`
	Passcode    string               `json:"passcode"`  // plaintext, hashed before storage; empty = no delegated access
	Delegated   models.PermissionSet `json:"delegated"` // permissions the passcode grants
}

func (s *Service) applyNetParams(net *models.Net, params NetParams) *Error {
	if err := params.Schedule.Validate(); err != nil {
		return validationError("%v", err)
	}

	net.Name = params.Name
	net.Description = params.Description
	net.Type = params.Type
	net.Schedule = datatypes.JSON(params.Schedule.JSON())
	net.StartTime = params.StartTime
	if params.TimeZone != "" {
		net.TimeZone = params.TimeZone
	}

	if params.Repeaters != nil {
		data, err := json.Marshal(params.Repeaters)
		if err != nil {
			return internalError(err)
		}
		net.Repeaters = datatypes.JSON(data)
	}

	if params.Passcode != "" {
		hash, err := utils.HashPassword(params.Passcode)
		if err != nil {
			return internalError(err)
		}
		net.PasscodeHash = &hash
	}
	if params.Delegated != nil {
		data, err := json.Marshal(params.Delegated)
		if err != nil {
			return internalError(err)
		}
		net.Delegated = datatypes.JSON(data)
	}
	return nil
}

// CreateNet creates a recurring net owned by the caller
func (s *Service) CreateNet(caller Caller, params NetParams) (*models.Net, error) {
	if perr := s.checkParams(params); perr != nil {
		return nil, perr
	}
	if caller.ProfileID == "" {
		return nil, forbiddenError("sign in to create a net")
	}

	net := models.Net{CreatorID: caller.ProfileID}
	if perr := s.applyNetParams(&net, params); perr != nil {
		return nil, perr
	}
	if err := s.db.Create(&net).Error; err != nil {
		return nil, internalError(err)
	}

	s.feed.Publish(feed.TableNets, feed.EventInsert, net, nil)
	return &net, nil
}

// UpdateNet edits a net. Requires ownership, the admin role, or a passcode
// grant carrying manageNet.
func (s *Service) UpdateNet(caller Caller, params NetParams) (*models.Net, error) {
	if perr := s.checkParams(params); perr != nil {
		return nil, perr
	}
	if params.ID == "" {
		return nil, validationError("net id is required")
	}

	net, perr := s.loadNet(params.ID)
	if perr != nil {
		return nil, perr
	}
	if perr := s.authorize(caller, net, models.PermManageNet); perr != nil {
		return nil, perr
	}

	old := *net
	if perr := s.applyNetParams(net, params); perr != nil {
		return nil, perr
	}
	if err := s.db.Save(net).Error; err != nil {
		return nil, internalError(err)
	}

	s.feed.Publish(feed.TableNets, feed.EventUpdate, net, old)
	return net, nil
}

// DeleteNetParams are the named parameters of net.delete
type DeleteNetParams struct {
	ID string `json:"id" validate:"required,uuid4"`
}

// DeleteNet removes a net. Only the creator or an admin may delete;
// a passcode grant is not enough.
func (s *Service) DeleteNet(caller Caller, params DeleteNetParams) (*models.Net, error) {
	if perr := s.checkParams(params); perr != nil {
		return nil, perr
	}

	net, perr := s.loadNet(params.ID)
	if perr != nil {
		return nil, perr
	}
	if caller.Role != models.RoleAdmin && caller.ProfileID != net.CreatorID {
		return nil, forbiddenError("only the net creator can delete it")
	}

	if err := s.db.Delete(net).Error; err != nil {
		return nil, internalError(err)
	}

	s.feed.Publish(feed.TableNets, feed.EventDelete, nil, net)
	return net, nil
}

// VerifyPasscodeParams are the named parameters of net.verify_passcode
type VerifyPasscodeParams struct {
	NetID    string `json:"netId" validate:"required,uuid4"`
	Passcode string `json:"passcode" validate:"required"`
}

// Grant is the result of a successful passcode verification
type Grant struct {
	NetID       string               `json:"netId"`
	Permissions models.PermissionSet `json:"permissions"`
	GrantToken  string               `json:"grantToken"`
}

// VerifyPasscode checks a delegated-access passcode against a net. A wrong
// passcode returns (nil, nil): absence of a grant, not an error, signals
// rejection, so callers cannot distinguish wrong from unset.
func (s *Service) VerifyPasscode(caller Caller, params VerifyPasscodeParams) (*Grant, error) {
	if perr := s.checkParams(params); perr != nil {
		return nil, perr
	}

	net, perr := s.loadNet(params.NetID)
	if perr != nil {
		return nil, perr
	}
	if net.PasscodeHash == nil {
		return nil, nil
	}
	if !utils.CheckPasswordHash(params.Passcode, *net.PasscodeHash) {
		return nil, nil
	}

	perms := net.DelegatedPermissions()
	token, err := utils.GenerateGrantToken(net.ID, perms, s.jwtSecret)
	if err != nil {
		return nil, internalError(err)
	}

	return &Grant{NetID: net.ID, Permissions: perms, GrantToken: token}, nil
}
