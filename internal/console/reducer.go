package console

import (
	"github.com/harborview/frontdesk/internal/hotel"
)

// Local edit operations. Each one updates a data slot and its paired UI slot
// in a single atomic step; the pane argument decides which tree is addressed
// and nothing else.

// SetWorkflow switches the pane's active workflow selector.
func (s *Store) SetWorkflow(pane Pane, kind Workflow) {
	if !KnownWorkflow(kind) {
		return
	}
	s.mutate(pane, func(t *Tree) {
		t.Workflow = kind
	})
}

// SetCheckInSearch records the check-in search box contents together with the
// results the caller computed for it, and mirrors the query into the form's
// guest name.
func (s *Store) SetCheckInSearch(pane Pane, query string, results []hotel.Reservation) {
	s.mutate(pane, func(t *Tree) {
		t.CheckInUI.SearchQuery = query
		t.CheckInUI.FilteredReservations = cloneReservations(results)
		t.CheckIn.GuestName = query
	})
}

// SelectCheckInReservation picks a reservation (or clears the pick with nil)
// and mirrors its identifiers into the check-in form.
func (s *Store) SelectCheckInReservation(pane Pane, res *hotel.Reservation) {
	s.mutate(pane, func(t *Tree) {
		t.CheckInUI.Selected = cloneReservationPtr(res)
		if res == nil {
			t.CheckIn.ReservationNumber = ""
			return
		}
		t.CheckIn.ReservationNumber = res.ID
		if res.Guest != nil {
			t.CheckIn.GuestName = res.Guest.Name
		}
		if res.Room != nil {
			t.CheckIn.RoomNumber = res.Room.RoomNumber
		}
	})
}

// FilterPatch carries partial availability filter edits; empty fields leave
// the current value alone.
type FilterPatch struct {
	CheckInDate  string
	CheckOutDate string
	RoomType     hotel.RoomType
	Status       string
	MinPrice     string
	MaxPrice     string
}

// SetAvailabilityFilters merges a filter patch into the availability UI and
// mirrors the date and type fields into the form data.
func (s *Store) SetAvailabilityFilters(pane Pane, patch FilterPatch) {
	s.mutate(pane, func(t *Tree) {
		f := &t.AvailabilityUI.Filters
		if patch.CheckInDate != "" {
			f.CheckInDate = patch.CheckInDate
			t.Availability.CheckInDate = patch.CheckInDate
		}
		if patch.CheckOutDate != "" {
			f.CheckOutDate = patch.CheckOutDate
			t.Availability.CheckOutDate = patch.CheckOutDate
		}
		if patch.RoomType != "" {
			f.RoomType = patch.RoomType
			t.Availability.RoomType = patch.RoomType
		}
		if patch.Status != "" {
			f.Status = patch.Status
		}
		if patch.MinPrice != "" {
			f.MinPrice = patch.MinPrice
		}
		if patch.MaxPrice != "" {
			f.MaxPrice = patch.MaxPrice
		}
	})
}

// SetFilteredRooms stores an availability result list in both the UI slot and
// the form data.
func (s *Store) SetFilteredRooms(pane Pane, rooms []hotel.Room) {
	s.mutate(pane, func(t *Tree) {
		t.AvailabilityUI.FilteredRooms = cloneRooms(rooms)
		t.Availability.AvailableRooms = cloneRooms(rooms)
		t.Availability.TotalAvailable = len(rooms)
	})
}

// SetModificationSearch records the modification search box contents together
// with its results and mirrors the query into the form's reservation id.
func (s *Store) SetModificationSearch(pane Pane, query string, results []hotel.Reservation) {
	s.mutate(pane, func(t *Tree) {
		t.ModificationUI.SearchQuery = query
		t.ModificationUI.FilteredReservations = cloneReservations(results)
		t.Modification.ReservationID = query
	})
}

// SelectModificationReservation picks the reservation under edit and seeds
// the edit buffer from its current values; nil clears both.
func (s *Store) SelectModificationReservation(pane Pane, res *hotel.Reservation) {
	s.mutate(pane, func(t *Tree) {
		t.ModificationUI.Selected = cloneReservationPtr(res)
		t.Modification.CurrentReservation = cloneReservationPtr(res)
		if res == nil {
			t.ModificationUI.Edited = ReservationEdit{}
			return
		}
		t.ModificationUI.Edited = ReservationEdit{
			CheckInDate:     res.CheckInDate,
			CheckOutDate:    res.CheckOutDate,
			RoomID:          res.RoomID,
			SpecialRequests: res.SpecialRequests,
		}
	})
}

// SetModificationEditMode toggles the edit-mode flag.
func (s *Store) SetModificationEditMode(pane Pane, editMode bool) {
	s.mutate(pane, func(t *Tree) {
		t.ModificationUI.EditMode = editMode
	})
}

// MergeModificationEdit overlays the non-empty fields of patch onto the edit
// buffer.
func (s *Store) MergeModificationEdit(pane Pane, patch ReservationEdit) {
	s.mutate(pane, func(t *Tree) {
		t.ModificationUI.Edited = t.ModificationUI.Edited.merge(patch)
	})
}

// RequestPatch carries partial special-request form edits.
type RequestPatch struct {
	RequestType string
	RoomNumber  string
	Details     string
}

// UpdateSpecialRequest merges the patch into both the special-request UI and
// its form data.
func (s *Store) UpdateSpecialRequest(pane Pane, patch RequestPatch) {
	s.mutate(pane, func(t *Tree) {
		if patch.RequestType != "" {
			t.SpecialRequestUI.RequestType = patch.RequestType
			t.SpecialRequest.RequestType = patch.RequestType
		}
		if patch.RoomNumber != "" {
			t.SpecialRequestUI.RoomNumber = patch.RoomNumber
			t.SpecialRequest.RoomNumber = patch.RoomNumber
		}
		if patch.Details != "" {
			t.SpecialRequestUI.Details = patch.Details
			t.SpecialRequest.Details = patch.Details
		}
	})
}

// SubmitSpecialRequest files the pane's current special-request form through
// the directory and records the generated request id on the form.
func (s *Store) SubmitSpecialRequest(pane Pane) {
	s.mutate(pane, func(t *Tree) {
		reservationID := ""
		if s.directory != nil {
			if res, ok := s.directory.FindRoomByNumber(t.SpecialRequest.RoomNumber); ok {
				// Tie the request to whichever reservation currently holds the room.
				for _, candidate := range s.directory.SearchReservations(res.RoomNumber) {
					reservationID = candidate.ID
					break
				}
			}
			req := s.directory.CreateSpecialRequest(
				reservationID,
				t.SpecialRequest.RoomNumber,
				hotel.RequestType(t.SpecialRequest.RequestType),
				t.SpecialRequest.Details,
			)
			t.SpecialRequest.RequestID = req.ID
		}
		t.SpecialRequest.RequestCreated = true
	})
}
