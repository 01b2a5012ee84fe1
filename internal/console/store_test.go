package console

import (
	"strings"
	"testing"
	"time"

	"github.com/harborview/frontdesk/internal/hotel"
)

func testStore(t *testing.T, opts ...StoreOption) *Store {
	t.Helper()
	return NewStore(hotel.NewDirectory(hotel.SeedDataset()), opts...)
}

func TestPaneIsolation(t *testing.T) {
	s := testStore(t)
	results := s.Directory().SearchReservations("smith")

	s.SetCheckInSearch(PaneManual, "smith", results)
	s.SetWorkflow(PaneAI, WorkflowAvailability)

	manual := s.Snapshot(PaneManual)
	ai := s.Snapshot(PaneAI)
	if manual.CheckInUI.SearchQuery != "smith" {
		t.Fatalf("manual search query missing: %+v", manual.CheckInUI)
	}
	if ai.CheckInUI.SearchQuery != "" {
		t.Fatalf("manual edit leaked into the AI pane")
	}
	if manual.Workflow != WorkflowCheckIn {
		t.Fatalf("AI workflow switch leaked into the manual pane")
	}
	if ai.Workflow != WorkflowAvailability {
		t.Fatalf("AI workflow not switched: %s", ai.Workflow)
	}
}

func TestSetWorkflowIgnoresUnknownKinds(t *testing.T) {
	s := testStore(t)
	s.SetWorkflow(PaneManual, Workflow("teleport"))
	if got := s.Snapshot(PaneManual).Workflow; got != WorkflowCheckIn {
		t.Fatalf("unknown workflow changed the selector to %s", got)
	}
}

func TestMutateStampsLastUpdated(t *testing.T) {
	fixed := time.Date(2025, 10, 22, 12, 0, 0, 0, time.UTC)
	s := testStore(t, WithClock(func() time.Time { return fixed }))
	s.SetWorkflow(PaneManual, WorkflowAvailability)
	if got := s.Snapshot(PaneManual).LastUpdated; !got.Equal(fixed) {
		t.Fatalf("expected LastUpdated %s, got %s", fixed, got)
	}
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	s := testStore(t)
	results := s.Directory().SearchReservations("smith")
	s.SetCheckInSearch(PaneManual, "smith", results)

	snap := s.Snapshot(PaneManual)
	if len(snap.CheckInUI.FilteredReservations) == 0 {
		t.Fatalf("expected search results in snapshot")
	}
	snap.CheckInUI.FilteredReservations[0].ID = "mangled"
	snap.CheckIn.GuestName = "mangled"

	fresh := s.Snapshot(PaneManual)
	if fresh.CheckInUI.FilteredReservations[0].ID == "mangled" {
		t.Fatalf("snapshot slice shares backing storage with the store")
	}
	if fresh.CheckIn.GuestName == "mangled" {
		t.Fatalf("snapshot struct shares state with the store")
	}
}

func TestPullFromAICopiesAndClearsReadiness(t *testing.T) {
	s := testStore(t)
	if err := s.ApplyAIUpdate(WorkflowCheckIn, map[string]any{
		"guest_name":         "John Smith",
		"reservation_number": "res-1",
	}); err != nil {
		t.Fatalf("apply update: %v", err)
	}
	if !s.AIReady() {
		t.Fatalf("expected readiness after AI update")
	}

	s.PullFromAI()
	if s.AIReady() {
		t.Fatalf("pull must clear the readiness flag")
	}
	manual := s.Snapshot(PaneManual)
	if manual.Workflow != WorkflowCheckIn || manual.CheckIn.GuestName != "John Smith" {
		t.Fatalf("manual pane did not adopt the AI tree: %+v", manual.CheckIn)
	}
	if manual.CheckInUI.Selected == nil || manual.CheckInUI.Selected.ID != "res-1" {
		t.Fatalf("derived selection not carried over: %+v", manual.CheckInUI.Selected)
	}

	// The copy is independent in both directions: editing the manual pane
	// after the pull leaves the AI pane alone.
	s.SetCheckInSearch(PaneManual, "different", nil)
	if got := s.Snapshot(PaneAI).CheckInUI.SearchQuery; got != "John Smith" {
		t.Fatalf("manual edit after pull reached the AI pane: %q", got)
	}
}

func TestPullFromAIDeepCopy(t *testing.T) {
	s := testStore(t)
	if err := s.ApplyAIUpdate(WorkflowAvailability, map[string]any{
		"check_in_date":  "2025-10-22",
		"check_out_date": "2025-10-25",
		"available_rooms": []map[string]any{
			{"id": "room-1", "room_number": "101", "room_type": "standard", "price_per_night": 120},
		},
	}); err != nil {
		t.Fatalf("apply update: %v", err)
	}
	s.PullFromAI()

	// Later AI activity must not reach into the pulled manual copy.
	if err := s.ApplyAIUpdate(WorkflowAvailability, map[string]any{
		"check_in_date": "2026-01-01",
		"available_rooms": []map[string]any{
			{"id": "room-9", "room_number": "999", "room_type": "suite", "price_per_night": 900},
		},
	}); err != nil {
		t.Fatalf("second apply: %v", err)
	}

	manual := s.Snapshot(PaneManual)
	if manual.Availability.CheckInDate != "2025-10-22" {
		t.Fatalf("manual dates changed after pull: %s", manual.Availability.CheckInDate)
	}
	if len(manual.AvailabilityUI.FilteredRooms) != 1 || manual.AvailabilityUI.FilteredRooms[0].ID != "room-1" {
		t.Fatalf("manual room list changed after pull: %+v", manual.AvailabilityUI.FilteredRooms)
	}
}

func TestPullFromAIAlwaysCopies(t *testing.T) {
	s := testStore(t)
	s.SetCheckInSearch(PaneManual, "smith", s.Directory().SearchReservations("smith"))

	// No AI update has arrived; the operator pulls anyway and gets the AI
	// pane's initial value.
	s.PullFromAI()
	manual := s.Snapshot(PaneManual)
	if manual.CheckInUI.SearchQuery != "" {
		t.Fatalf("pull should replace manual state wholesale, kept %q", manual.CheckInUI.SearchQuery)
	}

	// A second pull is a no-op copy of the same tree.
	s.PullFromAI()
	if s.AIReady() {
		t.Fatalf("readiness must stay false")
	}
}

func TestResetRestoresInitialValue(t *testing.T) {
	s := testStore(t)
	s.SetWorkflow(PaneManual, WorkflowSpecialRequest)
	if err := s.ApplyAIUpdate(WorkflowAvailability, map[string]any{"check_in_date": "2025-10-22"}); err != nil {
		t.Fatalf("apply update: %v", err)
	}

	s.Reset()
	if s.AIReady() {
		t.Fatalf("reset must clear readiness")
	}
	for _, pane := range []Pane{PaneManual, PaneAI} {
		tree := s.Snapshot(pane)
		if tree.Workflow != WorkflowCheckIn {
			t.Fatalf("%s pane workflow after reset: %s", pane, tree.Workflow)
		}
		if tree.AvailabilityUI.Filters.RoomType != hotel.RoomAny {
			t.Fatalf("%s pane filter type after reset: %s", pane, tree.AvailabilityUI.Filters.RoomType)
		}
		if tree.AvailabilityUI.Filters.Status != "available" {
			t.Fatalf("%s pane status filter after reset: %s", pane, tree.AvailabilityUI.Filters.Status)
		}
	}
}

func TestSelectCheckInReservationMirrorsForm(t *testing.T) {
	s := testStore(t)
	results := s.Directory().SearchReservations("smith")
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	s.SelectCheckInReservation(PaneManual, &results[0])

	tree := s.Snapshot(PaneManual)
	if tree.CheckIn.ReservationNumber != "res-1" {
		t.Fatalf("reservation number not mirrored: %+v", tree.CheckIn)
	}
	if tree.CheckIn.GuestName != "John Smith" || tree.CheckIn.RoomNumber != "102" {
		t.Fatalf("guest and room not mirrored: %+v", tree.CheckIn)
	}

	s.SelectCheckInReservation(PaneManual, nil)
	tree = s.Snapshot(PaneManual)
	if tree.CheckInUI.Selected != nil || tree.CheckIn.ReservationNumber != "" {
		t.Fatalf("nil selection should clear the pick")
	}
}

func TestSetAvailabilityFiltersMergesPatch(t *testing.T) {
	s := testStore(t)
	s.SetAvailabilityFilters(PaneManual, FilterPatch{CheckInDate: "2025-10-22", RoomType: hotel.RoomDeluxe})
	s.SetAvailabilityFilters(PaneManual, FilterPatch{CheckOutDate: "2025-10-25", MaxPrice: "250"})

	tree := s.Snapshot(PaneManual)
	f := tree.AvailabilityUI.Filters
	if f.CheckInDate != "2025-10-22" || f.CheckOutDate != "2025-10-25" {
		t.Fatalf("dates not merged: %+v", f)
	}
	if f.RoomType != hotel.RoomDeluxe || f.MaxPrice != "250" {
		t.Fatalf("type and price not merged: %+v", f)
	}
	if tree.Availability.CheckInDate != "2025-10-22" || tree.Availability.RoomType != hotel.RoomDeluxe {
		t.Fatalf("filters not mirrored into form data: %+v", tree.Availability)
	}
}

func TestMergeModificationEdit(t *testing.T) {
	s := testStore(t)
	res, ok := s.Directory().FindReservationByID("res-2")
	if !ok {
		t.Fatalf("res-2 missing from seed data")
	}
	s.SelectModificationReservation(PaneManual, &res)
	s.MergeModificationEdit(PaneManual, ReservationEdit{CheckOutDate: "2025-10-30"})

	tree := s.Snapshot(PaneManual)
	edited := tree.ModificationUI.Edited
	if edited.CheckInDate != "2025-10-20" {
		t.Fatalf("untouched field lost: %+v", edited)
	}
	if edited.CheckOutDate != "2025-10-30" {
		t.Fatalf("patched field not applied: %+v", edited)
	}
	if edited.SpecialRequests != "Extra pillows" {
		t.Fatalf("edit buffer not seeded from the reservation: %+v", edited)
	}
}

func TestSubmitSpecialRequestFilesThroughDirectory(t *testing.T) {
	s := testStore(t)
	s.UpdateSpecialRequest(PaneManual, RequestPatch{
		RoomNumber:  "102",
		RequestType: string(hotel.RequestLateCheckout),
		Details:     "Flight leaves late",
	})
	s.SubmitSpecialRequest(PaneManual)

	tree := s.Snapshot(PaneManual)
	if !tree.SpecialRequest.RequestCreated {
		t.Fatalf("request not marked created")
	}
	if !strings.HasPrefix(tree.SpecialRequest.RequestID, "req-") {
		t.Fatalf("request id not recorded: %q", tree.SpecialRequest.RequestID)
	}

	stored := s.Directory().SpecialRequests()
	last := stored[len(stored)-1]
	if last.ID != tree.SpecialRequest.RequestID {
		t.Fatalf("filed request not found in directory")
	}
	if last.ReservationID != "res-1" {
		t.Fatalf("request not tied to the room's reservation, got %q", last.ReservationID)
	}
}
