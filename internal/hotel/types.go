package hotel

import "time"

// RoomType enumerates the room categories the property sells.
type RoomType string

const (
	RoomStandard RoomType = "standard"
	RoomDeluxe   RoomType = "deluxe"
	RoomSuite    RoomType = "suite"
	// RoomAny is a query-only value that disables type filtering.
	RoomAny RoomType = "any"
)

// ReservationStatus enumerates the lifecycle states of a reservation.
type ReservationStatus string

const (
	StatusConfirmed  ReservationStatus = "confirmed"
	StatusCheckedIn  ReservationStatus = "checked_in"
	StatusCheckedOut ReservationStatus = "checked_out"
	StatusCancelled  ReservationStatus = "cancelled"
)

// RequestType enumerates the kinds of special request a guest can file.
type RequestType string

const (
	RequestLateCheckout RequestType = "late_checkout"
	RequestExtraTowels  RequestType = "extra_towels"
	RequestRoomService  RequestType = "room_service"
	RequestMaintenance  RequestType = "maintenance"
	RequestOther        RequestType = "other"
)

// RequestStatus enumerates special request processing states.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestCompleted RequestStatus = "completed"
	RequestDenied    RequestStatus = "denied"
)

// Guest is a registered hotel guest. Referenced by reservations, never owned.
type Guest struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	Email     string    `yaml:"email,omitempty"`
	Phone     string    `yaml:"phone,omitempty"`
	IDType    string    `yaml:"id_type,omitempty"`
	IDNumber  string    `yaml:"id_number,omitempty"`
	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// Room is a sellable room. RoomNumber is unique within the property.
type Room struct {
	ID            string    `yaml:"id"`
	RoomNumber    string    `yaml:"room_number"`
	RoomType      RoomType  `yaml:"room_type"`
	Amenities     []string  `yaml:"amenities"`
	PricePerNight float64   `yaml:"price_per_night"`
	CreatedAt     time.Time `yaml:"created_at"`
	UpdatedAt     time.Time `yaml:"updated_at"`
}

// Reservation books a room for a guest over [CheckInDate, CheckOutDate).
// Guest and Room are denormalized copies joined at query time; they are
// read-only conveniences, not the source of truth.
type Reservation struct {
	ID              string            `yaml:"id"`
	GuestID         string            `yaml:"guest_id"`
	RoomID          string            `yaml:"room_id"`
	CheckInDate     string            `yaml:"check_in_date"`
	CheckOutDate    string            `yaml:"check_out_date"`
	Status          ReservationStatus `yaml:"status"`
	SpecialRequests string            `yaml:"special_requests,omitempty"`
	TotalAmount     float64           `yaml:"total_amount"`
	CreatedAt       time.Time         `yaml:"created_at"`
	UpdatedAt       time.Time         `yaml:"updated_at"`

	Guest *Guest `yaml:"-"`
	Room  *Room  `yaml:"-"`
}

// SpecialRequest is a standalone guest request tied to a reservation.
type SpecialRequest struct {
	ID            string        `yaml:"id"`
	ReservationID string        `yaml:"reservation_id"`
	RoomNumber    string        `yaml:"room_number"`
	RequestType   RequestType   `yaml:"request_type"`
	Description   string        `yaml:"description"`
	Status        RequestStatus `yaml:"status"`
	CreatedAt     time.Time     `yaml:"created_at"`
	UpdatedAt     time.Time     `yaml:"updated_at"`
}

// Clone returns a reservation copy whose denormalized references are
// duplicated as well, so callers can hold results without sharing memory
// with the directory.
func (r Reservation) Clone() Reservation {
	dup := r
	if r.Guest != nil {
		guest := *r.Guest
		dup.Guest = &guest
	}
	if r.Room != nil {
		room := r.Room.Clone()
		dup.Room = &room
	}
	return dup
}

// Clone duplicates the room including its amenity list.
func (r Room) Clone() Room {
	dup := r
	if len(r.Amenities) > 0 {
		dup.Amenities = make([]string, len(r.Amenities))
		copy(dup.Amenities, r.Amenities)
	}
	return dup
}
