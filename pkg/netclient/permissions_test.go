package netclient

import (
	"testing"

	"github.com/w1ncs/netcontrol/internal/models"
)

var allPermKeys = []string{
	models.PermStartSession,
	models.PermEndSession,
	models.PermManageCheckIns,
	models.PermManageNet,
}

func TestNoProfileDeniesEverything(t *testing.T) {
	net := &models.Net{ID: "n1", CreatorID: "p1"}
	for _, key := range allPermKeys {
		if HasPermission(nil, net, nil, key) {
			t.Errorf("nil profile should be denied %s", key)
		}
	}
}

func TestAdminBypassesAllChecks(t *testing.T) {
	admin := &models.Profile{ID: "p9", Role: models.RoleAdmin}
	net := &models.Net{ID: "n1", CreatorID: "someone-else"}

	for _, key := range allPermKeys {
		if !HasPermission(admin, net, nil, key) {
			t.Errorf("admin should be granted %s regardless of ownership or grants", key)
		}
	}
}

func TestCreatorHasAllPermissions(t *testing.T) {
	creator := &models.Profile{ID: "p1", Role: models.RoleUser}
	net := &models.Net{ID: "n1", CreatorID: "p1"}

	for _, key := range allPermKeys {
		if !HasPermission(creator, net, nil, key) {
			t.Errorf("creator should be granted %s", key)
		}
	}
}

func TestNonOwnerWithoutGrantDenied(t *testing.T) {
	visitor := &models.Profile{ID: "p2", Role: models.RoleUser}
	net := &models.Net{ID: "n1", CreatorID: "p1"}

	for _, key := range allPermKeys {
		if HasPermission(visitor, net, map[string]models.PermissionSet{}, key) {
			t.Errorf("non-owner without a grant should be denied %s", key)
		}
	}
}

func TestDelegatedGrantIsKeyed(t *testing.T) {
	visitor := &models.Profile{ID: "p2", Role: models.RoleUser}
	net := &models.Net{ID: "n1", CreatorID: "p1"}
	grants := map[string]models.PermissionSet{
		"n1": {
			models.PermStartSession:   true,
			models.PermManageCheckIns: true,
		},
	}

	if !HasPermission(visitor, net, grants, models.PermStartSession) {
		t.Error("granted key should pass")
	}
	if HasPermission(visitor, net, grants, models.PermManageNet) {
		t.Error("key absent from the grant should be denied")
	}

	// Grant for a different net never applies
	otherNet := &models.Net{ID: "n2", CreatorID: "p1"}
	if HasPermission(visitor, otherNet, grants, models.PermStartSession) {
		t.Error("grant for another net should not apply")
	}
}
