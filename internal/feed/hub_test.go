package feed

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/w1ncs/netcontrol/internal/models"
)

func testClient(hub *Hub, id string, tables ...string) *Client {
	c := &Client{
		hub:    hub,
		send:   make(chan []byte, 8),
		ID:     id,
		tables: make(map[string]bool),
	}
	for _, t := range tables {
		c.tables[t] = true
	}
	return c
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case data := <-c.send:
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("bad event payload: %v", err)
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
		return Event{}
	}
}

func TestHubFansOutToSubscribedTablesOnly(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	checkins := testClient(hub, "sub_a", TableCheckIns)
	sessions := testClient(hub, "sub_b", TableSessions)
	hub.register <- checkins
	hub.register <- sessions

	row := models.CheckIn{ID: "ci-1", SessionID: "sess-1", CallSign: "K4ABC"}
	hub.Publish(TableCheckIns, EventInsert, row, nil)

	ev := receive(t, checkins)
	if ev.Table != TableCheckIns || ev.Type != EventInsert {
		t.Errorf("got %s %s, want %s %s", ev.Type, ev.Table, EventInsert, TableCheckIns)
	}
	var got models.CheckIn
	if err := json.Unmarshal(ev.New, &got); err != nil {
		t.Fatalf("unmarshal new row: %v", err)
	}
	if got.CallSign != "K4ABC" {
		t.Errorf("call sign = %q, want K4ABC", got.CallSign)
	}

	select {
	case <-sessions.send:
		t.Error("session subscriber must not receive check-in events")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubDeleteEventCarriesOldRow(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := testClient(hub, "sub_a", TableCheckIns)
	hub.register <- client

	row := models.CheckIn{ID: "ci-1", SessionID: "sess-1", CallSign: "W1AW"}
	hub.Publish(TableCheckIns, EventDelete, nil, row)

	ev := receive(t, client)
	if ev.Type != EventDelete {
		t.Fatalf("type = %s, want DELETE", ev.Type)
	}
	if len(ev.New) != 0 {
		t.Error("DELETE must not carry a new row")
	}
	var got models.CheckIn
	if err := json.Unmarshal(ev.Old, &got); err != nil {
		t.Fatalf("unmarshal old row: %v", err)
	}
	if got.ID != "ci-1" {
		t.Errorf("old row ID = %q, want ci-1", got.ID)
	}
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := testClient(hub, "sub_a", TableCheckIns)
	hub.register <- client
	hub.unregister <- client

	for hub.SubscriberCount() != 0 {
		time.Sleep(time.Millisecond)
	}

	hub.Publish(TableCheckIns, EventInsert, models.CheckIn{ID: "ci-2"}, nil)

	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("unregistered client received an event")
		}
	case <-time.After(50 * time.Millisecond):
		t.Error("send channel should be closed after unregister")
	}
}
