package procedures

import (
	"github.com/w1ncs/netcontrol/internal/models"
	"github.com/w1ncs/netcontrol/internal/utils"
)

// UpdateProfileParams are the named parameters of profile.update
type UpdateProfileParams struct {
	ID       string `json:"id"` // admins may edit others; defaults to caller
	CallSign string `json:"callSign" validate:"required"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// UpdateProfile edits a profile, enforcing call sign uniqueness
func (s *Service) UpdateProfile(caller Caller, params UpdateProfileParams) (*models.Profile, error) {
	if perr := s.checkParams(params); perr != nil {
		return nil, perr
	}

	targetID := params.ID
	if targetID == "" {
		targetID = caller.ProfileID
	}
	if targetID == "" {
		return nil, forbiddenError("sign in to update a profile")
	}
	if targetID != caller.ProfileID && caller.Role != models.RoleAdmin {
		return nil, forbiddenError("cannot edit another operator's profile")
	}

	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", targetID).Error; err != nil {
		return nil, notFoundError("profile")
	}

	callSign := utils.NormalizeCallSign(params.CallSign)
	if !utils.ValidCallSign(callSign) {
		return nil, validationError("%q does not look like a call sign", callSign)
	}

	// Uniqueness check: the call sign may only belong to this profile
	var taken int64
	s.db.Model(&models.Profile{}).
		Where("call_sign = ? AND id <> ?", callSign, profile.ID).
		Count(&taken)
	if taken > 0 {
		return nil, validationError("call sign %s is already registered", callSign)
	}

	profile.CallSign = callSign
	profile.Name = params.Name
	profile.Location = params.Location
	if err := s.db.Save(&profile).Error; err != nil {
		return nil, internalError(err)
	}

	return &profile, nil
}
