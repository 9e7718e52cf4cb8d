package feed

import (
	"encoding/json"
	"log"
)

// Tables that emit change events
const (
	TableNets          = "nets"
	TableSessions      = "net_sessions"
	TableCheckIns      = "check_ins"
	TableAwardedBadges = "awarded_badges"
	TableRosterMembers = "roster_members"
)

// EventType is the kind of row change
type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// Event is one row-change notification. New carries the row after the
// change (INSERT/UPDATE), Old the row before it (UPDATE/DELETE).
type Event struct {
	Table string          `json:"table"`
	Type  EventType       `json:"type"`
	New   json.RawMessage `json:"new,omitempty"`
	Old   json.RawMessage `json:"old,omitempty"`
}

// NewEvent builds an event from row values, marshaling them to JSON.
// A row that fails to marshal is sent as an empty payload rather than
// dropping the event.
func NewEvent(table string, typ EventType, newRow, oldRow interface{}) Event {
	ev := Event{Table: table, Type: typ}
	if newRow != nil {
		data, err := json.Marshal(newRow)
		if err != nil {
			log.Printf("⚠️  Feed: failed to marshal %s new row: %v", table, err)
		} else {
			ev.New = data
		}
	}
	if oldRow != nil {
		data, err := json.Marshal(oldRow)
		if err != nil {
			log.Printf("⚠️  Feed: failed to marshal %s old row: %v", table, err)
		} else {
			ev.Old = data
		}
	}
	return ev
}
