// Package console holds the dual-pane workflow state for the front-desk
// operator screen: one tree the agent drives by hand and one the voice
// assistant populates, plus the one-shot pull that adopts the assistant's
// work into the manual pane.
package console

import (
	"time"

	"github.com/harborview/frontdesk/internal/hotel"
)

// Pane addresses one of the two parallel workflow trees.
type Pane string

const (
	PaneManual Pane = "manual"
	PaneAI     Pane = "ai"
)

// Workflow identifies one of the four guest-service tasks.
type Workflow string

const (
	WorkflowCheckIn        Workflow = "checkin"
	WorkflowAvailability   Workflow = "availability"
	WorkflowModification   Workflow = "modification"
	WorkflowSpecialRequest Workflow = "special_request"
)

// KnownWorkflow reports whether kind names one of the four workflows.
func KnownWorkflow(kind Workflow) bool {
	switch kind {
	case WorkflowCheckIn, WorkflowAvailability, WorkflowModification, WorkflowSpecialRequest:
		return true
	}
	return false
}

// CheckInData is the check-in workflow's canonical form state.
type CheckInData struct {
	GuestName         string
	ReservationNumber string
	IDType            string
	RoomNumber        string
}

// AvailabilityData is the availability workflow's canonical form state.
type AvailabilityData struct {
	CheckInDate    string
	CheckOutDate   string
	RoomType       hotel.RoomType
	Preferences    []string
	AvailableRooms []hotel.Room
	TotalAvailable int
}

// ModificationFlags tracks which aspects of a reservation a modification
// touches.
type ModificationFlags struct {
	DatesChanged    bool
	RoomTypeChanged bool
	ServicesAdded   bool
}

// ModificationData is the modification workflow's canonical form state.
type ModificationData struct {
	ReservationID      string
	CurrentReservation *hotel.Reservation
	NewCheckInDate     string
	NewCheckOutDate    string
	NewRoomType        string
	AdditionalServices []string
	Modifications      ModificationFlags
}

// SpecialRequestData is the special-request workflow's canonical form state.
type SpecialRequestData struct {
	RoomNumber     string
	RequestType    string
	Details        string
	RequestCreated bool
	RequestID      string
}

// CheckInUI is the derived screen state paired with CheckInData.
type CheckInUI struct {
	SearchQuery          string
	FilteredReservations []hotel.Reservation
	Selected             *hotel.Reservation
}

// AvailabilityFilters mirrors the availability search form. Status, MinPrice,
// and MaxPrice are manual-only refinements; the ingestion path resets them.
type AvailabilityFilters struct {
	CheckInDate  string
	CheckOutDate string
	RoomType     hotel.RoomType
	Status       string
	MinPrice     string
	MaxPrice     string
}

// AvailabilityUI is the derived screen state paired with AvailabilityData.
type AvailabilityUI struct {
	Filters       AvailabilityFilters
	FilteredRooms []hotel.Room
}

// ReservationEdit is the modification edit buffer. Empty fields mean
// "unchanged".
type ReservationEdit struct {
	CheckInDate     string
	CheckOutDate    string
	RoomID          string
	RoomType        string
	SpecialRequests string
}

// merge overlays the non-empty fields of patch onto the buffer.
func (e ReservationEdit) merge(patch ReservationEdit) ReservationEdit {
	if patch.CheckInDate != "" {
		e.CheckInDate = patch.CheckInDate
	}
	if patch.CheckOutDate != "" {
		e.CheckOutDate = patch.CheckOutDate
	}
	if patch.RoomID != "" {
		e.RoomID = patch.RoomID
	}
	if patch.RoomType != "" {
		e.RoomType = patch.RoomType
	}
	if patch.SpecialRequests != "" {
		e.SpecialRequests = patch.SpecialRequests
	}
	return e
}

// ModificationUI is the derived screen state paired with ModificationData.
type ModificationUI struct {
	SearchQuery          string
	FilteredReservations []hotel.Reservation
	Selected             *hotel.Reservation
	EditMode             bool
	Edited               ReservationEdit
}

// SpecialRequestUI is the derived screen state paired with SpecialRequestData.
type SpecialRequestUI struct {
	RequestType string
	RoomNumber  string
	Details     string
}

// Tree is one pane's complete workflow state: the active workflow selector,
// the four data slots, and the four derived UI slots. Both panes use this one
// type; the pane only decides which instance an operation addresses.
type Tree struct {
	Workflow Workflow

	CheckIn        CheckInData
	Availability   AvailabilityData
	Modification   ModificationData
	SpecialRequest SpecialRequestData

	CheckInUI        CheckInUI
	AvailabilityUI   AvailabilityUI
	ModificationUI   ModificationUI
	SpecialRequestUI SpecialRequestUI

	LastUpdated time.Time
}

// NewTree returns the documented empty initial value.
func NewTree() Tree {
	return Tree{
		Workflow: WorkflowCheckIn,
		Availability: AvailabilityData{
			RoomType: hotel.RoomAny,
		},
		AvailabilityUI: AvailabilityUI{
			Filters: AvailabilityFilters{
				RoomType: hotel.RoomAny,
				Status:   "available",
			},
		},
	}
}

// Clone produces a deep, reference-free copy of the tree. Edits to the clone
// never reach the original, which is what makes the pull operation safe.
func (t Tree) Clone() Tree {
	dup := t
	dup.Availability.Preferences = cloneStrings(t.Availability.Preferences)
	dup.Availability.AvailableRooms = cloneRooms(t.Availability.AvailableRooms)
	dup.Modification.AdditionalServices = cloneStrings(t.Modification.AdditionalServices)
	dup.Modification.CurrentReservation = cloneReservationPtr(t.Modification.CurrentReservation)
	dup.CheckInUI.FilteredReservations = cloneReservations(t.CheckInUI.FilteredReservations)
	dup.CheckInUI.Selected = cloneReservationPtr(t.CheckInUI.Selected)
	dup.AvailabilityUI.FilteredRooms = cloneRooms(t.AvailabilityUI.FilteredRooms)
	dup.ModificationUI.FilteredReservations = cloneReservations(t.ModificationUI.FilteredReservations)
	dup.ModificationUI.Selected = cloneReservationPtr(t.ModificationUI.Selected)
	return dup
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

func cloneRooms(rooms []hotel.Room) []hotel.Room {
	if len(rooms) == 0 {
		return nil
	}
	out := make([]hotel.Room, len(rooms))
	for i, room := range rooms {
		out[i] = room.Clone()
	}
	return out
}

func cloneReservations(reservations []hotel.Reservation) []hotel.Reservation {
	if len(reservations) == 0 {
		return nil
	}
	out := make([]hotel.Reservation, len(reservations))
	for i, res := range reservations {
		out[i] = res.Clone()
	}
	return out
}

func cloneReservationPtr(res *hotel.Reservation) *hotel.Reservation {
	if res == nil {
		return nil
	}
	dup := res.Clone()
	return &dup
}
