package console

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/harborview/frontdesk/internal/hotel"
)

// ErrUnknownWorkflow reports an external update naming a workflow outside the
// fixed set of four.
var ErrUnknownWorkflow = errors.New("console: unknown workflow kind")

// Per-workflow partial records for inbound field maps. Pointer fields
// distinguish "absent" from "empty"; unknown keys fail the decode instead of
// being splatted into the tree untyped.

type checkinPatch struct {
	GuestName         *string `mapstructure:"guest_name"`
	ReservationNumber *string `mapstructure:"reservation_number"`
	IDType            *string `mapstructure:"id_type"`
	RoomNumber        *string `mapstructure:"room_number"`
}

type roomPatch struct {
	ID            string   `mapstructure:"id"`
	RoomNumber    string   `mapstructure:"room_number"`
	RoomType      string   `mapstructure:"room_type"`
	Amenities     []string `mapstructure:"amenities"`
	PricePerNight float64  `mapstructure:"price_per_night"`
	CreatedAt     string   `mapstructure:"created_at"`
	UpdatedAt     string   `mapstructure:"updated_at"`
}

func (p roomPatch) room() hotel.Room {
	return hotel.Room{
		ID:            p.ID,
		RoomNumber:    p.RoomNumber,
		RoomType:      hotel.RoomType(p.RoomType),
		Amenities:     p.Amenities,
		PricePerNight: p.PricePerNight,
	}
}

type availabilityPatch struct {
	CheckInDate    *string      `mapstructure:"check_in_date"`
	CheckOutDate   *string      `mapstructure:"check_out_date"`
	RoomType       *string      `mapstructure:"room_type"`
	Preferences    *[]string    `mapstructure:"preferences"`
	AvailableRooms *[]roomPatch `mapstructure:"available_rooms"`
	TotalAvailable *int         `mapstructure:"total_available"`
}

type modificationFlagsPatch struct {
	DatesChanged    bool `mapstructure:"dates_changed"`
	RoomTypeChanged bool `mapstructure:"room_type_changed"`
	ServicesAdded   bool `mapstructure:"services_added"`
}

type modificationPatch struct {
	ReservationID      *string                 `mapstructure:"reservation_id"`
	NewCheckInDate     *string                 `mapstructure:"new_check_in_date"`
	NewCheckOutDate    *string                 `mapstructure:"new_check_out_date"`
	NewRoomType        *string                 `mapstructure:"new_room_type"`
	AdditionalServices *[]string               `mapstructure:"additional_services"`
	Modifications      *modificationFlagsPatch `mapstructure:"modifications"`
}

type specialRequestPatch struct {
	RoomNumber  *string `mapstructure:"room_number"`
	RequestType *string `mapstructure:"request_type"`
	Details     *string `mapstructure:"details"`
}

func decodeFields(kind Workflow, fields map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("console: build %s decoder: %w", kind, err)
	}
	if err := decoder.Decode(fields); err != nil {
		return fmt.Errorf("console: decode %s update: %w", kind, err)
	}
	return nil
}

// ApplyAIUpdate merges an inbound field map into the AI pane's data slot for
// the named workflow, switches the AI pane to that workflow, and re-derives
// the paired UI slot from the merged data instead of trusting the caller to
// supply screen state. The whole transition, including the readiness flag,
// happens under one lock.
func (s *Store) ApplyAIUpdate(kind Workflow, fields map[string]any) error {
	if !KnownWorkflow(kind) {
		return fmt.Errorf("%w: %q", ErrUnknownWorkflow, string(kind))
	}

	// Decode before taking the lock; a malformed payload must leave both
	// trees untouched.
	var apply func(*Tree)
	switch kind {
	case WorkflowCheckIn:
		var patch checkinPatch
		if err := decodeFields(kind, fields, &patch); err != nil {
			return err
		}
		apply = func(t *Tree) { s.applyCheckIn(t, patch) }
	case WorkflowAvailability:
		var patch availabilityPatch
		if err := decodeFields(kind, fields, &patch); err != nil {
			return err
		}
		apply = func(t *Tree) { applyAvailability(t, patch) }
	case WorkflowModification:
		var patch modificationPatch
		if err := decodeFields(kind, fields, &patch); err != nil {
			return err
		}
		apply = func(t *Tree) { s.applyModification(t, patch) }
	case WorkflowSpecialRequest:
		var patch specialRequestPatch
		if err := decodeFields(kind, fields, &patch); err != nil {
			return err
		}
		apply = func(t *Tree) { applySpecialRequest(t, patch) }
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tree := &s.ai
	tree.Workflow = kind
	apply(tree)
	tree.LastUpdated = s.clock()
	s.aiReady = true
	return nil
}

// applyCheckIn merges the patch and, when a guest name arrived, re-runs the
// reservation search so the screen shows exactly what a manual search for
// that name would.
func (s *Store) applyCheckIn(t *Tree, patch checkinPatch) {
	if patch.GuestName != nil {
		t.CheckIn.GuestName = *patch.GuestName
	}
	if patch.ReservationNumber != nil {
		t.CheckIn.ReservationNumber = *patch.ReservationNumber
	}
	if patch.IDType != nil {
		t.CheckIn.IDType = *patch.IDType
	}
	if patch.RoomNumber != nil {
		t.CheckIn.RoomNumber = *patch.RoomNumber
	}

	guestName := strings.TrimSpace(t.CheckIn.GuestName)
	if patch.GuestName == nil || guestName == "" {
		return
	}
	var results []hotel.Reservation
	if s.directory != nil {
		results = s.directory.SearchReservations(guestName)
	}
	// Only an id carried by this update participates in the tie-break; an id
	// merged from an earlier update does not steer a later selection.
	requestedID := ""
	if patch.ReservationNumber != nil {
		requestedID = strings.TrimSpace(*patch.ReservationNumber)
	}
	selected := selectReservation(results, requestedID)
	t.CheckInUI = CheckInUI{
		SearchQuery:          guestName,
		FilteredReservations: results,
		Selected:             selected,
	}
}

// selectReservation prefers the exact id match, then the first result.
func selectReservation(results []hotel.Reservation, id string) *hotel.Reservation {
	if len(results) == 0 {
		return nil
	}
	for i := range results {
		if id != "" && results[i].ID == id {
			dup := results[i].Clone()
			return &dup
		}
	}
	dup := results[0].Clone()
	return &dup
}

// applyAvailability sets the filter form verbatim from the supplied fields and
// trusts the caller's room list instead of re-querying. The manual-only
// status and price refinements reset to their defaults.
func applyAvailability(t *Tree, patch availabilityPatch) {
	if patch.CheckInDate != nil {
		t.Availability.CheckInDate = *patch.CheckInDate
	}
	if patch.CheckOutDate != nil {
		t.Availability.CheckOutDate = *patch.CheckOutDate
	}
	if patch.RoomType != nil {
		t.Availability.RoomType = hotel.RoomType(*patch.RoomType)
	}
	if patch.Preferences != nil {
		t.Availability.Preferences = cloneStrings(*patch.Preferences)
	}
	var rooms []hotel.Room
	if patch.AvailableRooms != nil {
		rooms = make([]hotel.Room, 0, len(*patch.AvailableRooms))
		for _, rp := range *patch.AvailableRooms {
			rooms = append(rooms, rp.room())
		}
		t.Availability.AvailableRooms = cloneRooms(rooms)
	}
	if patch.TotalAvailable != nil {
		t.Availability.TotalAvailable = *patch.TotalAvailable
	} else if patch.AvailableRooms != nil {
		t.Availability.TotalAvailable = len(rooms)
	}

	filters := AvailabilityFilters{
		RoomType: hotel.RoomAny,
		Status:   "available",
	}
	if patch.CheckInDate != nil {
		filters.CheckInDate = *patch.CheckInDate
	}
	if patch.CheckOutDate != nil {
		filters.CheckOutDate = *patch.CheckOutDate
	}
	if patch.RoomType != nil && strings.TrimSpace(*patch.RoomType) != "" {
		filters.RoomType = hotel.RoomType(*patch.RoomType)
	}
	t.AvailabilityUI = AvailabilityUI{
		Filters:       filters,
		FilteredRooms: rooms,
	}
}

// applyModification merges the patch and, when a reservation id arrived,
// looks the reservation up and seeds the edit buffer from it. A lookup miss
// clears the whole modification screen.
func (s *Store) applyModification(t *Tree, patch modificationPatch) {
	if patch.ReservationID != nil {
		t.Modification.ReservationID = *patch.ReservationID
	}
	if patch.NewCheckInDate != nil {
		t.Modification.NewCheckInDate = *patch.NewCheckInDate
	}
	if patch.NewCheckOutDate != nil {
		t.Modification.NewCheckOutDate = *patch.NewCheckOutDate
	}
	if patch.NewRoomType != nil {
		t.Modification.NewRoomType = *patch.NewRoomType
	}
	if patch.AdditionalServices != nil {
		t.Modification.AdditionalServices = cloneStrings(*patch.AdditionalServices)
	}
	if patch.Modifications != nil {
		t.Modification.Modifications = ModificationFlags{
			DatesChanged:    patch.Modifications.DatesChanged,
			RoomTypeChanged: patch.Modifications.RoomTypeChanged,
			ServicesAdded:   patch.Modifications.ServicesAdded,
		}
	}

	reservationID := strings.TrimSpace(t.Modification.ReservationID)
	if patch.ReservationID == nil || reservationID == "" {
		return
	}
	var res hotel.Reservation
	found := false
	if s.directory != nil {
		res, found = s.directory.FindReservationByID(reservationID)
	}
	if !found {
		t.ModificationUI = ModificationUI{}
		return
	}
	edited := ReservationEdit{
		CheckInDate:     res.CheckInDate,
		CheckOutDate:    res.CheckOutDate,
		RoomID:          res.RoomID,
		SpecialRequests: res.SpecialRequests,
	}
	if t.Modification.NewCheckInDate != "" {
		edited.CheckInDate = t.Modification.NewCheckInDate
	}
	if t.Modification.NewCheckOutDate != "" {
		edited.CheckOutDate = t.Modification.NewCheckOutDate
	}
	selected := res.Clone()
	t.ModificationUI = ModificationUI{
		SearchQuery:          reservationID,
		FilteredReservations: []hotel.Reservation{res},
		Selected:             &selected,
		EditMode:             false,
		Edited:               edited,
	}
}

// applySpecialRequest sets the request screen verbatim from the supplied
// fields, defaulting absent ones to empty.
func applySpecialRequest(t *Tree, patch specialRequestPatch) {
	if patch.RoomNumber != nil {
		t.SpecialRequest.RoomNumber = *patch.RoomNumber
	}
	if patch.RequestType != nil {
		t.SpecialRequest.RequestType = *patch.RequestType
	}
	if patch.Details != nil {
		t.SpecialRequest.Details = *patch.Details
	}
	ui := SpecialRequestUI{}
	if patch.RequestType != nil {
		ui.RequestType = *patch.RequestType
	}
	if patch.RoomNumber != nil {
		ui.RoomNumber = *patch.RoomNumber
	}
	if patch.Details != nil {
		ui.Details = *patch.Details
	}
	t.SpecialRequestUI = ui
}
