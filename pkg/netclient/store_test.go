package netclient

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/w1ncs/netcontrol/internal/feed"
	"github.com/w1ncs/netcontrol/internal/models"
)

// fakeCaller is a stub backend: it records procedure calls and returns a
// configured error
type fakeCaller struct {
	calls []string
	err   error
	hook  func(name string)
}

func (f *fakeCaller) CallProcedure(ctx context.Context, name string, params interface{}, out interface{}) error {
	f.calls = append(f.calls, name)
	if f.hook != nil {
		f.hook(name)
	}
	return f.err
}

func insertEvent(t *testing.T, row models.CheckIn) feed.Event {
	t.Helper()
	data, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return feed.Event{Table: feed.TableCheckIns, Type: feed.EventInsert, New: data}
}

func deleteEvent(t *testing.T, row models.CheckIn) feed.Event {
	t.Helper()
	data, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return feed.Event{Table: feed.TableCheckIns, Type: feed.EventDelete, Old: data}
}

func TestSubmitRejectsDuplicateBeforeNetwork(t *testing.T) {
	backend := &fakeCaller{}
	store := NewSessionStore(backend, "sess-1")
	store.SetCheckIns([]models.CheckIn{
		{ID: "ci-1", SessionID: "sess-1", CallSign: "K4ABC", CreatedAt: time.Now()},
	})

	err := store.Submit(context.Background(), CheckInForm{CallSign: "k4abc"})

	var cerr *Error
	if !errors.As(err, &cerr) || cerr.Kind != KindValidation {
		t.Fatalf("want validation error, got %v", err)
	}
	if len(backend.calls) != 0 {
		t.Error("duplicate must be rejected before any network call")
	}
	if len(store.List()) != 1 {
		t.Errorf("list length = %d, want 1 (unchanged)", len(store.List()))
	}
}

func TestSubmitRejectsEmptyCallSign(t *testing.T) {
	backend := &fakeCaller{}
	store := NewSessionStore(backend, "sess-1")

	err := store.Submit(context.Background(), CheckInForm{CallSign: "   "})

	var cerr *Error
	if !errors.As(err, &cerr) || cerr.Kind != KindValidation {
		t.Fatalf("want validation error, got %v", err)
	}
	if len(backend.calls) != 0 {
		t.Error("empty call sign must never reach the network")
	}
}

func TestSubmitInsertsProvisionalAtFront(t *testing.T) {
	backend := &fakeCaller{}
	store := NewSessionStore(backend, "sess-1")

	var inFlight []models.CheckIn
	backend.hook = func(string) {
		// Snapshot the list while the server call is outstanding
		inFlight = store.List()
	}

	if err := store.Submit(context.Background(), CheckInForm{CallSign: "n4xyz"}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if len(inFlight) != 1 {
		t.Fatalf("in-flight list length = %d, want 1", len(inFlight))
	}
	if !inFlight[0].Provisional {
		t.Error("index 0 must be provisional while the call is outstanding")
	}
	if inFlight[0].CallSign != "N4XYZ" {
		t.Errorf("call sign = %q, want normalized %q", inFlight[0].CallSign, "N4XYZ")
	}
}

func TestSubmitRollsBackOnFailure(t *testing.T) {
	backend := &fakeCaller{err: &Error{Kind: KindServer, Message: "not authorized"}}
	store := NewSessionStore(backend, "sess-1")
	store.SetCheckIns([]models.CheckIn{
		{ID: "ci-1", SessionID: "sess-1", CallSign: "W1AW", CreatedAt: time.Now()},
	})

	err := store.Submit(context.Background(), CheckInForm{CallSign: "N4XYZ"})
	if err == nil {
		t.Fatal("Submit should propagate the server error")
	}

	list := store.List()
	if len(list) != 1 || list[0].CallSign != "W1AW" {
		t.Errorf("list must return to pre-submission content, got %v", list)
	}
}

func TestSubmitLatchBlocksConcurrentSubmission(t *testing.T) {
	backend := &fakeCaller{}
	store := NewSessionStore(backend, "sess-1")

	var second error
	backend.hook = func(name string) {
		if name == "checkin.create" {
			// A second submission while the first is in flight
			second = store.Submit(context.Background(), CheckInForm{CallSign: "W1AW"})
		}
	}

	if err := store.Submit(context.Background(), CheckInForm{CallSign: "N4XYZ"}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	var cerr *Error
	if !errors.As(second, &cerr) || cerr.Kind != KindValidation {
		t.Fatalf("second submission should hit the latch, got %v", second)
	}
}

func TestReconcileReplacesProvisional(t *testing.T) {
	backend := &fakeCaller{}
	store := NewSessionStore(backend, "sess-1")

	if err := store.Submit(context.Background(), CheckInForm{CallSign: "n4xyz"}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	authoritative := models.CheckIn{
		ID:        "a9f0e2d4-0000-4000-8000-000000000001",
		SessionID: "sess-1",
		CallSign:  "N4XYZ",
		CreatedAt: time.Now(),
	}
	store.ApplyEvent(insertEvent(t, authoritative))

	list := store.List()
	if len(list) != 1 {
		t.Fatalf("list length = %d, want 1: authoritative row replaces provisional", len(list))
	}
	if list[0].Provisional {
		t.Error("provisional must be false after reconciliation")
	}
	if list[0].ID != authoritative.ID {
		t.Errorf("ID = %q, want server-assigned %q", list[0].ID, authoritative.ID)
	}

	// Redelivery is idempotent
	store.ApplyEvent(insertEvent(t, authoritative))
	if len(store.List()) != 1 {
		t.Errorf("redelivery must not duplicate, length = %d", len(store.List()))
	}
}

func TestReconcilePrependsOtherOperators(t *testing.T) {
	backend := &fakeCaller{}
	store := NewSessionStore(backend, "sess-1")
	store.SetCheckIns([]models.CheckIn{
		{ID: "ci-1", SessionID: "sess-1", CallSign: "W1AW", CreatedAt: time.Now().Add(-time.Minute)},
	})

	other := models.CheckIn{
		ID:        "ci-2",
		SessionID: "sess-1",
		CallSign:  "VE3ABC",
		CreatedAt: time.Now(),
	}
	store.ApplyEvent(insertEvent(t, other))

	list := store.List()
	if len(list) != 2 {
		t.Fatalf("list length = %d, want 2", len(list))
	}
	if list[0].CallSign != "VE3ABC" {
		t.Errorf("newest check-in should sort first, got %s", list[0].CallSign)
	}
}

func TestReconcileIgnoresOtherSessions(t *testing.T) {
	backend := &fakeCaller{}
	store := NewSessionStore(backend, "sess-1")

	foreign := models.CheckIn{ID: "ci-9", SessionID: "sess-2", CallSign: "K4ABC", CreatedAt: time.Now()}
	store.ApplyEvent(insertEvent(t, foreign))

	if len(store.List()) != 0 {
		t.Error("events for other sessions must be ignored")
	}
}

func TestAdvanceStatusCycleLaw(t *testing.T) {
	backend := &fakeCaller{}
	store := NewSessionStore(backend, "sess-1")
	store.SetCheckIns([]models.CheckIn{
		{ID: "ci-1", SessionID: "sess-1", CallSign: "K4ABC", Status: models.StatusAcknowledged, CreatedAt: time.Now()},
	})

	for i := 0; i < 4; i++ {
		if err := store.AdvanceStatus(context.Background(), "ci-1"); err != nil {
			t.Fatalf("AdvanceStatus %d failed: %v", i, err)
		}
	}

	if got := store.List()[0].Status; got != models.StatusAcknowledged {
		t.Errorf("advancing four times must return to the original status, got %v", got)
	}
}

func TestAdvanceStatusRevertsOnFailure(t *testing.T) {
	backend := &fakeCaller{err: &Error{Kind: KindServer, Message: "boom"}}
	store := NewSessionStore(backend, "sess-1")
	store.SetCheckIns([]models.CheckIn{
		{ID: "ci-1", SessionID: "sess-1", CallSign: "K4ABC", Status: models.StatusNew, CreatedAt: time.Now()},
		{ID: "ci-2", SessionID: "sess-1", CallSign: "W1AW", Status: models.StatusQuestion, CreatedAt: time.Now().Add(-time.Second)},
	})

	if err := store.AdvanceStatus(context.Background(), "ci-1"); err == nil {
		t.Fatal("AdvanceStatus should propagate the server error")
	}

	list := store.List()
	for _, ci := range list {
		switch ci.ID {
		case "ci-1":
			if ci.Status != models.StatusNew {
				t.Errorf("failed advance must revert ci-1 to New, got %v", ci.Status)
			}
		case "ci-2":
			if ci.Status != models.StatusQuestion {
				t.Errorf("other records must be untouched, got %v", ci.Status)
			}
		}
	}
}

func TestAdvanceStatusRejectsProvisional(t *testing.T) {
	backend := &fakeCaller{}
	store := NewSessionStore(backend, "sess-1")
	store.SetCheckIns([]models.CheckIn{
		{ID: provisionalPrefix + "K4ABC", SessionID: "sess-1", CallSign: "K4ABC", Provisional: true, CreatedAt: time.Now()},
	})

	if err := store.AdvanceStatus(context.Background(), provisionalPrefix+"K4ABC"); err == nil {
		t.Error("provisional records must not be advanceable")
	}
	if len(backend.calls) != 0 {
		t.Error("rejected advance must not reach the network")
	}
}

func TestDeleteIsAuthoritativeOnly(t *testing.T) {
	backend := &fakeCaller{}
	store := NewSessionStore(backend, "sess-1")
	row := models.CheckIn{ID: "ci-1", SessionID: "sess-1", CallSign: "K4ABC", CreatedAt: time.Now()}
	store.SetCheckIns([]models.CheckIn{row})

	if err := store.Delete(context.Background(), "ci-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(store.List()) != 1 {
		t.Error("delete must not remove locally before the feed confirms")
	}

	store.ApplyEvent(deleteEvent(t, row))
	if len(store.List()) != 0 {
		t.Error("feed DELETE must remove the row")
	}
}

func TestListSortsByTimestampDescending(t *testing.T) {
	backend := &fakeCaller{}
	store := NewSessionStore(backend, "sess-1")
	now := time.Now()
	store.SetCheckIns([]models.CheckIn{
		{ID: "old", SessionID: "sess-1", CallSign: "W1AW", CreatedAt: now.Add(-2 * time.Minute)},
		{ID: "new", SessionID: "sess-1", CallSign: "K4ABC", CreatedAt: now},
		{ID: "mid", SessionID: "sess-1", CallSign: "VE3ABC", CreatedAt: now.Add(-time.Minute)},
	})

	list := store.List()
	want := []string{"new", "mid", "old"}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("list[%d] = %s, want %s", i, list[i].ID, id)
		}
	}
}

func TestLowercaseSubmitEndToEnd(t *testing.T) {
	backend := &fakeCaller{}
	store := NewSessionStore(backend, "sess-1")

	if err := store.Submit(context.Background(), CheckInForm{CallSign: "n4xyz"}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	confirmed := models.CheckIn{
		ID:        "b2c3d4e5-0000-4000-8000-000000000002",
		SessionID: "sess-1",
		CallSign:  "N4XYZ",
		CreatedAt: time.Now(),
	}
	store.ApplyEvent(insertEvent(t, confirmed))

	list := store.List()
	count := 0
	for _, ci := range list {
		if ci.CallSign == "N4XYZ" {
			count++
			if ci.Provisional {
				t.Error("confirmed entry must not be provisional")
			}
		}
	}
	if count != 1 {
		t.Errorf("want exactly one N4XYZ entry, got %d", count)
	}
}
