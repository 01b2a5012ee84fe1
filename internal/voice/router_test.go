package voice

import (
	"strings"
	"testing"
	"time"

	"github.com/harborview/frontdesk/internal/console"
	"github.com/harborview/frontdesk/internal/hotel"
)

func testRouter(t *testing.T, opts ...RouterOption) (*Router, *console.Store) {
	t.Helper()
	store := console.NewStore(hotel.NewDirectory(hotel.SeedDataset()))
	return NewRouter(store, opts...), store
}

func TestDispatchUnknownFunction(t *testing.T) {
	r, store := testRouter(t)
	result := r.Dispatch("delete_everything", map[string]any{"target": "all"})
	if result.Success {
		t.Fatalf("unknown function must fail")
	}
	if result.Message != "Unknown function: delete_everything" {
		t.Fatalf("unexpected message %q", result.Message)
	}
	if store.AIReady() {
		t.Fatalf("unknown function must leave the trees untouched")
	}
	if got := store.Snapshot(console.PaneAI).Workflow; got != console.WorkflowCheckIn {
		t.Fatalf("AI pane workflow changed to %s", got)
	}
}

func TestDispatchAppliesUpdate(t *testing.T) {
	r, store := testRouter(t)
	result := r.Dispatch("update_checkin_form", map[string]any{
		"guest_name":         "John Smith",
		"reservation_number": "res-1",
	})
	if !result.Success {
		t.Fatalf("dispatch failed: %s", result.Message)
	}
	if result.Message != "Check-in form updated" {
		t.Fatalf("unexpected message %q", result.Message)
	}
	ai := store.Snapshot(console.PaneAI)
	if ai.Workflow != console.WorkflowCheckIn || ai.CheckIn.GuestName != "John Smith" {
		t.Fatalf("update not applied: %+v", ai.CheckIn)
	}
	if !store.AIReady() {
		t.Fatalf("readiness not set after dispatch")
	}
}

func TestDispatchMalformedArgsFailSoftly(t *testing.T) {
	r, store := testRouter(t)
	result := r.Dispatch("update_checkin_form", map[string]any{
		"guest_name":     "John",
		"favorite_color": "red",
	})
	if result.Success {
		t.Fatalf("decode failure must produce a failure result")
	}
	if !strings.Contains(result.Message, "favorite_color") {
		t.Fatalf("message should name the rejected key, got %q", result.Message)
	}
	if store.AIReady() {
		t.Fatalf("failed dispatch must leave the trees untouched")
	}
}

func TestDispatchResolvesRelativeDates(t *testing.T) {
	// A Wednesday.
	fixed := time.Date(2025, 10, 22, 10, 0, 0, 0, time.UTC)
	r, store := testRouter(t, RouterWithClock(func() time.Time { return fixed }))

	args := map[string]any{
		"check_in_date":  "tomorrow",
		"check_out_date": "in 3 days",
	}
	result := r.Dispatch("search_availability", args)
	if !result.Success {
		t.Fatalf("dispatch failed: %s", result.Message)
	}
	ai := store.Snapshot(console.PaneAI)
	if ai.Availability.CheckInDate != "2025-10-23" {
		t.Fatalf("check-in not resolved: %q", ai.Availability.CheckInDate)
	}
	if ai.Availability.CheckOutDate != "2025-10-25" {
		t.Fatalf("check-out not resolved: %q", ai.Availability.CheckOutDate)
	}
	// Resolution happens on a copy; the caller's map stays as spoken.
	if args["check_in_date"] != "tomorrow" {
		t.Fatalf("caller args mutated: %v", args["check_in_date"])
	}
}

func TestDispatchPassesUnresolvableDatesThrough(t *testing.T) {
	r, store := testRouter(t)
	result := r.Dispatch("modify_reservation", map[string]any{
		"reservation_id":    "res-2",
		"new_check_in_date": "whenever works",
	})
	if !result.Success {
		t.Fatalf("dispatch failed: %s", result.Message)
	}
	ai := store.Snapshot(console.PaneAI)
	if ai.Modification.NewCheckInDate != "whenever works" {
		t.Fatalf("unresolvable date should pass through unchanged: %q", ai.Modification.NewCheckInDate)
	}
}

func TestHandleEventTranscriptsShareOneLine(t *testing.T) {
	r, _ := testRouter(t)
	r.HandleEvent(Event{Type: EventUserTranscript, Text: "hello"})
	r.HandleEvent(Event{Type: EventUserTranscript, Text: "hello, I'd like to check in"})
	if got := r.Connection().Transcript; got != "hello, I'd like to check in" {
		t.Fatalf("transcript should hold only the latest line: %q", got)
	}

	// An assistant line replaces the guest's line; the display holds one
	// string both speakers overwrite.
	r.HandleEvent(Event{Type: EventAssistantTranscript, Text: "of course"})
	if got := r.Connection().Transcript; got != "of course" {
		t.Fatalf("assistant transcript should replace the guest line: %q", got)
	}

	// Empty text leaves the line alone.
	r.HandleEvent(Event{Type: EventUserTranscript})
	if got := r.Connection().Transcript; got != "of course" {
		t.Fatalf("empty transcript overwrote the line: %q", got)
	}
}

func TestConnectionLifecycle(t *testing.T) {
	r, _ := testRouter(t)
	conn := r.Connection()
	if !conn.Connecting || conn.Connected {
		t.Fatalf("expected initial connecting state, got %+v", conn)
	}

	r.HandleEvent(Event{Type: EventConnected})
	conn = r.Connection()
	if !conn.Connected || conn.Connecting || conn.ErrMessage != "" {
		t.Fatalf("unexpected state after connect: %+v", conn)
	}

	r.HandleEvent(Event{Type: EventError, Message: "ice failure"})
	if got := r.Connection().ErrMessage; got != "ice failure" {
		t.Fatalf("error message not recorded: %q", got)
	}

	r.HandleEvent(Event{Type: EventDisconnected})
	conn = r.Connection()
	if conn.Connected || conn.Connecting {
		t.Fatalf("unexpected state after disconnect: %+v", conn)
	}
}

func TestHandleEventErrorDefaultsMessage(t *testing.T) {
	r, _ := testRouter(t)
	r.HandleEvent(Event{Type: EventError})
	if got := r.Connection().ErrMessage; got != "Connection error" {
		t.Fatalf("expected default error message, got %q", got)
	}
}

func TestHandleEventUnknownType(t *testing.T) {
	r, _ := testRouter(t)
	result := r.HandleEvent(Event{Type: EventType("warp")})
	if result.Success {
		t.Fatalf("unknown event type must fail")
	}
	if result.Message != "Unknown event type: warp" {
		t.Fatalf("unexpected message %q", result.Message)
	}
}

func TestHandleEventEmitsNotices(t *testing.T) {
	r, _ := testRouter(t, RouterWithNoticeCapacity(4))
	r.HandleEvent(Event{Type: EventFunctionCall, FunctionName: "update_checkin_form", Args: map[string]any{"guest_name": "John Smith"}})

	select {
	case notice := <-r.Notices():
		if notice.Type != EventFunctionCall {
			t.Fatalf("unexpected notice type %s", notice.Type)
		}
		if !notice.Result.Success {
			t.Fatalf("expected success result, got %+v", notice.Result)
		}
	default:
		t.Fatalf("no notice emitted")
	}
}

func TestNotifyDropsOldestOnOverflow(t *testing.T) {
	r, _ := testRouter(t, RouterWithNoticeCapacity(1))
	r.HandleEvent(Event{Type: EventConnected})
	r.HandleEvent(Event{Type: EventDisconnected})

	select {
	case notice := <-r.Notices():
		if notice.Type != EventDisconnected {
			t.Fatalf("expected the newest notice to survive, got %s", notice.Type)
		}
	default:
		t.Fatalf("no notice available")
	}
}
