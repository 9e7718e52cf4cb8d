package models

import (
	"time"

	"gorm.io/gorm"
)

// NetSession represents one time-bounded occurrence of a net.
// EndedAt is null while the session is on the air; session.start refuses to
// open a second active session for the same net.
type NetSession struct {
	ID    string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	NetID string `gorm:"type:uuid;not null;index" json:"netId"`

	StartedAt time.Time  `gorm:"not null;index" json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`

	// Operator of record (net control station for this session)
	OperatorCallSign string `gorm:"not null" json:"operatorCallSign"`
	OperatorName     string `json:"operatorName,omitempty"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Net *Net `gorm:"foreignKey:NetID" json:"net,omitempty"`
}

// TableName specifies the table name for NetSession model
func (NetSession) TableName() string {
	return "net_sessions"
}

// IsActive reports whether the session is still on the air
func (s *NetSession) IsActive() bool {
	return s.EndedAt == nil
}
