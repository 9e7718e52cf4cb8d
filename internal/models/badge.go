package models

import (
	"time"
)

// BadgeDefinition is one badge in the catalog. Rows mirror the YAML catalog
// so clients can read display metadata with a plain row fetch.
type BadgeDefinition struct {
	ID          string `gorm:"primaryKey" json:"id"` // slug, e.g. "night_owl"
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Category    string `gorm:"index" json:"category"` // participation | loyalty | special

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for BadgeDefinition model
func (BadgeDefinition) TableName() string {
	return "badge_definitions"
}

// AwardedBadge records that a call sign earned a badge, and in which session
type AwardedBadge struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CallSign  string `gorm:"not null;uniqueIndex:idx_award_once" json:"callSign"`
	BadgeID   string `gorm:"not null;uniqueIndex:idx_award_once" json:"badgeId"`
	SessionID string `gorm:"type:uuid" json:"sessionId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`

	Badge *BadgeDefinition `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
}

// TableName specifies the table name for AwardedBadge model
func (AwardedBadge) TableName() string {
	return "awarded_badges"
}
