package hotel

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Directory answers guest, room, and reservation queries against a dataset.
// All lookups are read-only and return copies; the only write path is
// CreateSpecialRequest.
type Directory struct {
	mu sync.RWMutex
	ds Dataset
}

// NewDirectory wraps a dataset in a query service.
func NewDirectory(ds Dataset) *Directory {
	return &Directory{ds: ds}
}

// FindAvailableRooms returns rooms with no reservation overlapping the
// half-open interval [checkIn, checkOut). Two stays conflict iff
// existingStart < requestedEnd and existingEnd > requestedStart. When either
// date is missing or unparseable the date filter is skipped and only the type
// filter applies; roomType "any" or empty disables type filtering too.
func (d *Directory) FindAvailableRooms(checkIn, checkOut string, roomType RoomType) []Room {
	d.mu.RLock()
	defer d.mu.RUnlock()

	requestedStart, okIn := parseDate(checkIn)
	requestedEnd, okOut := parseDate(checkOut)

	occupied := map[string]struct{}{}
	if okIn && okOut {
		for _, res := range d.ds.Reservations {
			existingStart, ok1 := parseDate(res.CheckInDate)
			existingEnd, ok2 := parseDate(res.CheckOutDate)
			if !ok1 || !ok2 {
				continue
			}
			if existingStart.Before(requestedEnd) && existingEnd.After(requestedStart) {
				occupied[res.RoomID] = struct{}{}
			}
		}
	}

	var out []Room
	for _, room := range d.ds.Rooms {
		if _, taken := occupied[room.ID]; taken {
			continue
		}
		if !matchesType(room.RoomType, roomType) {
			continue
		}
		out = append(out, room.Clone())
	}
	return out
}

// SearchReservations matches the query as a case-insensitive substring of the
// guest name, the reservation id, or the room number. An empty query matches
// nothing.
func (d *Directory) SearchReservations(query string) []Reservation {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []Reservation
	for _, res := range d.ds.Reservations {
		if reservationMatches(res, query) {
			out = append(out, res.Clone())
		}
	}
	return out
}

func reservationMatches(res Reservation, query string) bool {
	if strings.Contains(strings.ToLower(res.ID), query) {
		return true
	}
	if res.Guest != nil && strings.Contains(strings.ToLower(res.Guest.Name), query) {
		return true
	}
	if res.Room != nil && strings.Contains(strings.ToLower(res.Room.RoomNumber), query) {
		return true
	}
	return false
}

// FindGuestByName returns the first guest whose name contains the given name,
// case-insensitively.
func (d *Directory) FindGuestByName(name string) (Guest, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Guest{}, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, guest := range d.ds.Guests {
		if strings.Contains(strings.ToLower(guest.Name), name) {
			return guest, true
		}
	}
	return Guest{}, false
}

// FindReservationByID looks up a reservation by its exact id.
func (d *Directory) FindReservationByID(id string) (Reservation, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Reservation{}, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, res := range d.ds.Reservations {
		if res.ID == id {
			return res.Clone(), true
		}
	}
	return Reservation{}, false
}

// FindRoomByNumber looks up a room by its exact room number.
func (d *Directory) FindRoomByNumber(number string) (Room, bool) {
	number = strings.TrimSpace(number)
	if number == "" {
		return Room{}, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, room := range d.ds.Rooms {
		if room.RoomNumber == number {
			return room.Clone(), true
		}
	}
	return Room{}, false
}

// CreateSpecialRequest files a new pending request and returns the stored
// record.
func (d *Directory) CreateSpecialRequest(reservationID, roomNumber string, kind RequestType, description string) SpecialRequest {
	now := time.Now().UTC()
	req := SpecialRequest{
		ID:            "req-" + uuid.NewString(),
		ReservationID: reservationID,
		RoomNumber:    roomNumber,
		RequestType:   kind,
		Description:   description,
		Status:        RequestPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	d.mu.Lock()
	d.ds.SpecialRequests = append(d.ds.SpecialRequests, req)
	d.mu.Unlock()
	return req
}

// SpecialRequests returns a snapshot of the filed requests.
func (d *Directory) SpecialRequests() []SpecialRequest {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]SpecialRequest, len(d.ds.SpecialRequests))
	copy(out, d.ds.SpecialRequests)
	return out
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func matchesType(have, want RoomType) bool {
	if want == "" || want == RoomAny {
		return true
	}
	return have == want
}
