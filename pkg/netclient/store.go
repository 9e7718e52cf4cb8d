package netclient

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/mohae/deepcopy"

	"github.com/w1ncs/netcontrol/internal/feed"
	"github.com/w1ncs/netcontrol/internal/models"
	"github.com/w1ncs/netcontrol/internal/utils"
)

const provisionalPrefix = "provisional-"

// CheckInForm is the submission form for one check-in
type CheckInForm struct {
	CallSign string
	Name     string
	Location string
	Notes    string
	Repeater string
}

// SessionStore holds the in-memory check-in list for one session and runs
// the optimistic submission pipeline against a Caller. Check-ins and
// sessions get fine-grained patching from the change feed (the optimistic
// UI depends on it); low-traffic entities are simply re-fetched wholesale
// elsewhere.
//
// The store is owned by the session screen: only that screen and the feed
// subscription it registered mutate it, and the subscription is torn down on
// navigation so async results never land in a dead store.
type SessionStore struct {
	caller    Caller
	sessionID string

	mu         sync.Mutex
	checkIns   []models.CheckIn
	submitting bool
}

// NewSessionStore creates a store for one session
func NewSessionStore(caller Caller, sessionID string) *SessionStore {
	return &SessionStore{caller: caller, sessionID: sessionID}
}

// SetCheckIns installs the initial full-collection fetch
func (s *SessionStore) SetCheckIns(checkIns []models.CheckIn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkIns = append([]models.CheckIn(nil), checkIns...)
}

// List returns the check-ins sorted by timestamp descending. Sorting happens
// at render time, so interleaved optimistic inserts and feed deliveries
// never cause visible reordering glitches.
func (s *SessionStore) List() []models.CheckIn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]models.CheckIn(nil), s.checkIns...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Submit runs the optimistic check-in pipeline: validate synchronously,
// insert a provisional record at the front immediately, then invoke
// checkin.create. On failure the provisional record is removed and the
// error returned, so the form keeps the operator's input. Only one
// submission may be in flight at a time.
func (s *SessionStore) Submit(ctx context.Context, form CheckInForm) error {
	callSign := utils.NormalizeCallSign(form.CallSign)

	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return validationError("a submission is already in progress")
	}
	if callSign == "" {
		s.mu.Unlock()
		return validationError("call sign is required")
	}
	for _, ci := range s.checkIns {
		if !ci.Provisional && ci.CallSign == callSign {
			s.mu.Unlock()
			return validationError(callSign + " is already checked in")
		}
	}

	// Provisional identity derives from the call sign; the prefix keeps it
	// out of the server's UUID space
	provisional := models.CheckIn{
		ID:          provisionalPrefix + callSign,
		SessionID:   s.sessionID,
		CallSign:    callSign,
		Name:        form.Name,
		Location:    form.Location,
		Notes:       form.Notes,
		Repeater:    form.Repeater,
		Status:      models.StatusNew,
		CreatedAt:   time.Now(),
		Provisional: true,
	}
	s.checkIns = append([]models.CheckIn{provisional}, s.checkIns...)
	s.submitting = true
	s.mu.Unlock()

	params := map[string]string{
		"sessionId": s.sessionID,
		"callSign":  callSign,
		"name":      form.Name,
		"location":  form.Location,
		"notes":     form.Notes,
		"repeater":  form.Repeater,
	}
	err := s.caller.CallProcedure(ctx, "checkin.create", params, nil)

	s.mu.Lock()
	s.submitting = false
	if err != nil {
		// Roll back: the provisional record disappears entirely
		s.removeLocked(provisional.ID)
	}
	s.mu.Unlock()
	return err
}

// Submitting reports whether a submission is in flight
func (s *SessionStore) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// AdvanceStatus cycles a record's status flag optimistically: the next value
// in the cycle is written locally first, then sent to the server; on failure
// only that record reverts to its prior value. Provisional records cannot be
// advanced.
func (s *SessionStore) AdvanceStatus(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return validationError("check-in not found")
	}
	if s.checkIns[idx].Provisional {
		s.mu.Unlock()
		return validationError("check-in is still pending confirmation")
	}

	prev := deepcopy.Copy(s.checkIns[idx]).(models.CheckIn)
	next := prev.Status.Next()
	s.checkIns[idx].Status = next
	s.mu.Unlock()

	params := map[string]interface{}{"id": id, "status": next}
	err := s.caller.CallProcedure(ctx, "checkin.set_status", params, nil)
	if err != nil {
		s.mu.Lock()
		if idx := s.indexLocked(id); idx >= 0 {
			s.checkIns[idx].Status = prev.Status
		}
		s.mu.Unlock()
	}
	return err
}

// Edit updates a record's descriptive fields. Not optimistic: the change is
// mirrored locally when the feed delivers the updated row.
func (s *SessionStore) Edit(ctx context.Context, id string, form CheckInForm) error {
	params := map[string]string{
		"id":       id,
		"name":     form.Name,
		"location": form.Location,
		"notes":    form.Notes,
		"repeater": form.Repeater,
	}
	return s.caller.CallProcedure(ctx, "checkin.update", params, nil)
}

// Delete removes a check-in. The caller must have confirmed the action with
// the operator first. Deletion is authoritative-only: the local row is
// dropped when the feed delivers the DELETE, never optimistically.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.caller.CallProcedure(ctx, "checkin.delete", map[string]string{"id": id}, nil)
}

// ApplyEvent reconciles one change-feed event into the list. Idempotent:
// redelivery of the same row never duplicates it.
func (s *SessionStore) ApplyEvent(ev feed.Event) {
	if ev.Table != feed.TableCheckIns {
		return
	}

	switch ev.Type {
	case feed.EventInsert, feed.EventUpdate:
		var row models.CheckIn
		if err := json.Unmarshal(ev.New, &row); err != nil {
			return
		}
		if row.SessionID != s.sessionID {
			return
		}
		row.Provisional = false
		s.reconcile(row)

	case feed.EventDelete:
		var row models.CheckIn
		if err := json.Unmarshal(ev.Old, &row); err != nil {
			return
		}
		s.mu.Lock()
		s.removeLocked(row.ID)
		s.mu.Unlock()
	}
}

// reconcile merges an authoritative row: an existing row with the same id is
// replaced in place; otherwise a provisional row with the same call sign is
// replaced (the optimistic insert confirming); otherwise the row is new
// (another operator's client created it) and is prepended.
func (s *SessionStore) reconcile(row models.CheckIn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexLocked(row.ID); idx >= 0 {
		s.checkIns[idx] = row
		return
	}
	for i, ci := range s.checkIns {
		if ci.Provisional && ci.CallSign == row.CallSign {
			s.checkIns[i] = row
			return
		}
	}
	s.checkIns = append([]models.CheckIn{row}, s.checkIns...)
}

func (s *SessionStore) indexLocked(id string) int {
	for i, ci := range s.checkIns {
		if ci.ID == id {
			return i
		}
	}
	return -1
}

func (s *SessionStore) removeLocked(id string) {
	if idx := s.indexLocked(id); idx >= 0 {
		s.checkIns = append(s.checkIns[:idx], s.checkIns[idx+1:]...)
	}
}
