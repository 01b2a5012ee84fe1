package console

import (
	"errors"
	"testing"

	"github.com/harborview/frontdesk/internal/hotel"
)

func TestApplyAIUpdateRejectsUnknownWorkflow(t *testing.T) {
	s := testStore(t)
	err := s.ApplyAIUpdate(Workflow("teleport"), map[string]any{"guest_name": "John"})
	if !errors.Is(err, ErrUnknownWorkflow) {
		t.Fatalf("expected ErrUnknownWorkflow, got %v", err)
	}
	if s.AIReady() {
		t.Fatalf("failed update must not flip the readiness flag")
	}
}

func TestApplyAIUpdateRejectsUnknownKeys(t *testing.T) {
	s := testStore(t)
	err := s.ApplyAIUpdate(WorkflowCheckIn, map[string]any{
		"guest_name":     "John Smith",
		"favorite_color": "red",
	})
	if err == nil {
		t.Fatalf("expected decode error for unknown key")
	}
	if s.AIReady() {
		t.Fatalf("rejected update must not flip the readiness flag")
	}
	ai := s.Snapshot(PaneAI)
	if ai.CheckIn.GuestName != "" {
		t.Fatalf("rejected update partially mutated the tree: %+v", ai.CheckIn)
	}
}

func TestApplyAIUpdateSwitchesWorkflowAndSetsReadiness(t *testing.T) {
	s := testStore(t)
	if err := s.ApplyAIUpdate(WorkflowSpecialRequest, map[string]any{"room_number": "101"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	ai := s.Snapshot(PaneAI)
	if ai.Workflow != WorkflowSpecialRequest {
		t.Fatalf("AI pane workflow not switched: %s", ai.Workflow)
	}
	if !s.AIReady() {
		t.Fatalf("readiness not set")
	}
	manual := s.Snapshot(PaneManual)
	if manual.Workflow != WorkflowCheckIn {
		t.Fatalf("AI update leaked into the manual pane")
	}
}

func TestApplyCheckInDerivesSelection(t *testing.T) {
	s := testStore(t)
	if err := s.ApplyAIUpdate(WorkflowCheckIn, map[string]any{
		"guest_name":         "John Smith",
		"reservation_number": "res-1",
	}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	ai := s.Snapshot(PaneAI)
	ui := ai.CheckInUI
	if ui.SearchQuery != "John Smith" {
		t.Fatalf("search query not derived: %q", ui.SearchQuery)
	}
	if len(ui.FilteredReservations) != 1 || ui.FilteredReservations[0].ID != "res-1" {
		t.Fatalf("results not re-derived from the directory: %+v", ui.FilteredReservations)
	}
	if ui.Selected == nil || ui.Selected.ID != "res-1" {
		t.Fatalf("selection not derived: %+v", ui.Selected)
	}
}

func TestApplyCheckInPrefersExactIDMatch(t *testing.T) {
	s := testStore(t)
	// "john" also matches Sarah Johnson's reservation by substring.
	if err := s.ApplyAIUpdate(WorkflowCheckIn, map[string]any{
		"guest_name":         "john",
		"reservation_number": "res-2",
	}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	ui := s.Snapshot(PaneAI).CheckInUI
	if len(ui.FilteredReservations) != 2 {
		t.Fatalf("expected two substring matches, got %d", len(ui.FilteredReservations))
	}
	if ui.Selected == nil || ui.Selected.ID != "res-2" {
		t.Fatalf("exact reservation id should win, got %+v", ui.Selected)
	}
}

func TestApplyCheckInIgnoresStaleReservationNumber(t *testing.T) {
	s := testStore(t)
	if err := s.ApplyAIUpdate(WorkflowCheckIn, map[string]any{
		"guest_name":         "john",
		"reservation_number": "res-2",
	}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	// A later update without a reservation number keeps the merged id in the
	// form but selects from its own fields only: the first result wins.
	if err := s.ApplyAIUpdate(WorkflowCheckIn, map[string]any{"guest_name": "john"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	ai := s.Snapshot(PaneAI)
	if ai.CheckIn.ReservationNumber != "res-2" {
		t.Fatalf("merged form data should keep the earlier id, got %q", ai.CheckIn.ReservationNumber)
	}
	if ai.CheckInUI.Selected == nil || ai.CheckInUI.Selected.ID != "res-1" {
		t.Fatalf("earlier id should not steer a later selection, got %+v", ai.CheckInUI.Selected)
	}
}

func TestApplyCheckInFallsBackToFirstResult(t *testing.T) {
	s := testStore(t)
	if err := s.ApplyAIUpdate(WorkflowCheckIn, map[string]any{
		"guest_name":         "chen",
		"reservation_number": "res-999",
	}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	ui := s.Snapshot(PaneAI).CheckInUI
	if ui.Selected == nil || ui.Selected.ID != "res-3" {
		t.Fatalf("expected first result when no exact id match, got %+v", ui.Selected)
	}
}

func TestApplyCheckInWithoutGuestNameLeavesUI(t *testing.T) {
	s := testStore(t)
	if err := s.ApplyAIUpdate(WorkflowCheckIn, map[string]any{"room_number": "102"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	ai := s.Snapshot(PaneAI)
	if ai.CheckIn.RoomNumber != "102" {
		t.Fatalf("form field not merged: %+v", ai.CheckIn)
	}
	if ai.CheckInUI.SearchQuery != "" || ai.CheckInUI.Selected != nil {
		t.Fatalf("missing guest name must not trigger derivation: %+v", ai.CheckInUI)
	}
}

func TestApplyAvailabilityTrustsCallerRooms(t *testing.T) {
	s := testStore(t)
	if err := s.ApplyAIUpdate(WorkflowAvailability, map[string]any{
		"check_in_date":  "2025-10-22",
		"check_out_date": "2025-10-25",
		"room_type":      "deluxe",
		"available_rooms": []map[string]any{
			// Not in the directory at all; the room list is taken verbatim.
			{"id": "room-x", "room_number": "999", "room_type": "deluxe", "price_per_night": 500},
		},
	}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	ai := s.Snapshot(PaneAI)
	if len(ai.AvailabilityUI.FilteredRooms) != 1 || ai.AvailabilityUI.FilteredRooms[0].RoomNumber != "999" {
		t.Fatalf("room list was not taken verbatim: %+v", ai.AvailabilityUI.FilteredRooms)
	}
	if ai.Availability.TotalAvailable != 1 {
		t.Fatalf("total not defaulted to list length: %d", ai.Availability.TotalAvailable)
	}
	f := ai.AvailabilityUI.Filters
	if f.CheckInDate != "2025-10-22" || f.CheckOutDate != "2025-10-25" || f.RoomType != hotel.RoomDeluxe {
		t.Fatalf("filters not mirrored: %+v", f)
	}
	if f.Status != "available" || f.MinPrice != "" || f.MaxPrice != "" {
		t.Fatalf("manual-only refinements must reset: %+v", f)
	}
}

func TestApplyAvailabilityDefaultsRoomTypeToAny(t *testing.T) {
	s := testStore(t)
	s.SetAvailabilityFilters(PaneAI, FilterPatch{RoomType: hotel.RoomSuite, Status: "occupied"})
	if err := s.ApplyAIUpdate(WorkflowAvailability, map[string]any{
		"check_in_date": "2025-10-22",
	}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	f := s.Snapshot(PaneAI).AvailabilityUI.Filters
	if f.RoomType != hotel.RoomAny {
		t.Fatalf("absent room type should reset the filter to any, got %s", f.RoomType)
	}
	if f.Status != "available" {
		t.Fatalf("status filter should reset, got %q", f.Status)
	}
}

func TestApplyModificationSeedsEditBuffer(t *testing.T) {
	s := testStore(t)
	if err := s.ApplyAIUpdate(WorkflowModification, map[string]any{
		"reservation_id":     "res-2",
		"new_check_out_date": "2025-10-30",
	}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	ui := s.Snapshot(PaneAI).ModificationUI
	if ui.Selected == nil || ui.Selected.ID != "res-2" {
		t.Fatalf("reservation not looked up: %+v", ui.Selected)
	}
	if len(ui.FilteredReservations) != 1 {
		t.Fatalf("result list not seeded: %+v", ui.FilteredReservations)
	}
	if ui.EditMode {
		t.Fatalf("ingestion must not open edit mode")
	}
	if ui.Edited.CheckInDate != "2025-10-20" {
		t.Fatalf("unchanged date should come from the reservation: %+v", ui.Edited)
	}
	if ui.Edited.CheckOutDate != "2025-10-30" {
		t.Fatalf("requested date should override: %+v", ui.Edited)
	}
	if ui.Edited.RoomID != "room-4" || ui.Edited.SpecialRequests != "Extra pillows" {
		t.Fatalf("edit buffer not seeded from the reservation: %+v", ui.Edited)
	}
}

func TestApplyModificationLookupMissClearsUI(t *testing.T) {
	s := testStore(t)
	if err := s.ApplyAIUpdate(WorkflowModification, map[string]any{"reservation_id": "res-2"}); err != nil {
		t.Fatalf("seed apply: %v", err)
	}
	if err := s.ApplyAIUpdate(WorkflowModification, map[string]any{"reservation_id": "res-404"}); err != nil {
		t.Fatalf("miss apply: %v", err)
	}
	ai := s.Snapshot(PaneAI)
	if ai.Modification.ReservationID != "res-404" {
		t.Fatalf("form field should keep the requested id: %+v", ai.Modification)
	}
	if ai.ModificationUI.Selected != nil || ai.ModificationUI.SearchQuery != "" || len(ai.ModificationUI.FilteredReservations) != 0 {
		t.Fatalf("lookup miss must clear the whole screen slot: %+v", ai.ModificationUI)
	}
}

func TestApplySpecialRequestSetsFormAndUI(t *testing.T) {
	s := testStore(t)
	if err := s.ApplyAIUpdate(WorkflowSpecialRequest, map[string]any{
		"room_number":  "101",
		"request_type": "late_checkout",
		"details":      "Flight leaves at 6pm",
	}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	ai := s.Snapshot(PaneAI)
	if ai.SpecialRequest.RoomNumber != "101" || ai.SpecialRequest.RequestType != "late_checkout" {
		t.Fatalf("form not set: %+v", ai.SpecialRequest)
	}
	if ai.SpecialRequestUI.Details != "Flight leaves at 6pm" {
		t.Fatalf("ui not set: %+v", ai.SpecialRequestUI)
	}
	if ai.SpecialRequest.RequestCreated {
		t.Fatalf("ingestion must not file the request")
	}
}
