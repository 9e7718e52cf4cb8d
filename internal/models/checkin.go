package models

import (
	"time"

	"gorm.io/gorm"
)

// CheckInStatus is the cyclic acknowledgement flag on a check-in
type CheckInStatus int

const (
	StatusNew          CheckInStatus = iota // just checked in
	StatusAcknowledged                      // acknowledged by net control
	StatusAttention                         // has traffic / needs attention
	StatusQuestion                          // has a question
)

// Next returns the following status in the cycle:
// New -> Acknowledged -> Attention -> Question -> New
func (s CheckInStatus) Next() CheckInStatus {
	return (s + 1) % 4
}

func (s CheckInStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusAcknowledged:
		return "acknowledged"
	case StatusAttention:
		return "attention"
	case StatusQuestion:
		return "question"
	}
	return "unknown"
}

// CheckIn represents one operator's logged participation in one session.
// CallSign is stored normalized (upper-case, trimmed).
type CheckIn struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	SessionID string `gorm:"type:uuid;not null;index" json:"sessionId"`

	CallSign string `gorm:"not null;index" json:"callSign"`
	Name     string `json:"name,omitempty"`
	Location string `json:"location,omitempty"`
	Notes    string `gorm:"type:text" json:"notes,omitempty"`
	Repeater string `json:"repeater,omitempty"` // which repeater they came in on

	Status CheckInStatus `gorm:"default:0" json:"status"`

	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Provisional is client-side only: true from optimistic insert until the
	// authoritative copy arrives on the change feed. Never persisted.
	Provisional bool `gorm:"-" json:"provisional,omitempty"`

	Session *NetSession `gorm:"foreignKey:SessionID" json:"session,omitempty"`
}

// TableName specifies the table name for CheckIn model
func (CheckIn) TableName() string {
	return "check_ins"
}
