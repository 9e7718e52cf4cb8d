package models

import (
	"time"
)

// RosterMember is a regular participant of a net, kept by the net owner for
// quick check-in of known stations
type RosterMember struct {
	ID       string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	NetID    string `gorm:"type:uuid;not null;uniqueIndex:idx_roster_member" json:"netId"`
	CallSign string `gorm:"not null;uniqueIndex:idx_roster_member" json:"callSign"`
	Name     string `json:"name,omitempty"`
	Location string `json:"location,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for RosterMember model
func (RosterMember) TableName() string {
	return "roster_members"
}
