package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/w1ncs/netcontrol/internal/schedule"
)

// NetType defines the radio configuration of a net
type NetType string

const (
	NetTypeSingleRepeater NetType = "single_repeater" // one repeater
	NetTypeLinkedSystem   NetType = "linked_system"   // multiple linked repeaters
	NetTypeSimplex        NetType = "simplex"         // simplex group, no repeater
)

// Permission keys grantable to non-owners via a net passcode
const (
	PermStartSession   = "startSession"
	PermEndSession     = "endSession"
	PermManageCheckIns = "manageCheckIns"
	PermManageNet      = "manageNet"
)

// PermissionSet maps permission keys to granted/denied
type PermissionSet map[string]bool

// Repeater describes one repeater a net operates on
type Repeater struct {
	Name      string  `json:"name"`
	Frequency float64 `json:"frequency"` // MHz
	Offset    string  `json:"offset,omitempty"`
	Tone      string  `json:"tone,omitempty"`
}

// Net represents a recurring scheduled net
type Net struct {
	ID          string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name        string  `gorm:"not null;index" json:"name"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	CreatorID   string  `gorm:"type:uuid;not null;index" json:"creatorId"`
	Type        NetType `gorm:"default:'single_repeater'" json:"type"`

	// Recurrence descriptor (schedule.Recurrence) plus local start time
	Schedule  datatypes.JSON `json:"schedule"`
	StartTime string         `json:"startTime,omitempty"` // "19:30" local
	TimeZone  string         `gorm:"default:'UTC'" json:"timeZone"`

	Repeaters datatypes.JSON `json:"repeaters,omitempty"` // []Repeater

	// Delegated access: anyone presenting the passcode gets Delegated perms
	PasscodeHash *string        `json:"-"`
	Delegated    datatypes.JSON `json:"delegated,omitempty"` // PermissionSet

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Creator *Profile `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
}

// TableName specifies the table name for Net model
func (Net) TableName() string {
	return "nets"
}

// Recurrence decodes the stored schedule descriptor
func (n *Net) Recurrence() (schedule.Recurrence, error) {
	return schedule.Parse([]byte(n.Schedule))
}

// RepeaterList decodes the stored repeater descriptors
func (n *Net) RepeaterList() []Repeater {
	var out []Repeater
	if len(n.Repeaters) > 0 {
		_ = json.Unmarshal([]byte(n.Repeaters), &out)
	}
	return out
}

// DelegatedPermissions decodes the delegated permission set
func (n *Net) DelegatedPermissions() PermissionSet {
	out := PermissionSet{}
	if len(n.Delegated) > 0 {
		_ = json.Unmarshal([]byte(n.Delegated), &out)
	}
	return out
}
