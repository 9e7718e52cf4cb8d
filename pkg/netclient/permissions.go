package netclient

import (
	"github.com/w1ncs/netcontrol/internal/models"
)

// HasPermission is the permission gate: it decides whether the profile may
// perform the keyed action on the net, from current in-memory state only.
// Order: no profile -> false; admin -> true; net creator -> true; otherwise
// a delegated grant for this net must carry the key.
func HasPermission(profile *models.Profile, net *models.Net, grants map[string]models.PermissionSet, permKey string) bool {
	if profile == nil || net == nil {
		return false
	}
	if profile.Role == models.RoleAdmin {
		return true
	}
	if profile.ID == net.CreatorID {
		return true
	}
	if perms, ok := grants[net.ID]; ok {
		return perms[permKey]
	}
	return false
}

// HasPermission applies the gate using the client's signed-in profile and
// its in-memory passcode grants
func (c *Client) HasPermission(net *models.Net, permKey string) bool {
	return HasPermission(c.Profile(), net, c.Grants(), permKey)
}
