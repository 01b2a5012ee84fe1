package hotel

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Dataset is the raw record set backing a Directory. It stands in for a real
// reservations database and can be loaded from a YAML file or seeded with the
// built-in demo property.
type Dataset struct {
	Guests          []Guest          `yaml:"guests"`
	Rooms           []Room           `yaml:"rooms"`
	Reservations    []Reservation    `yaml:"reservations"`
	SpecialRequests []SpecialRequest `yaml:"special_requests"`
}

// LoadDataset reads a dataset from a YAML file and joins reservation
// references.
func LoadDataset(path string) (Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("hotel: read dataset: %w", err)
	}
	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return Dataset{}, fmt.Errorf("hotel: parse dataset %s: %w", path, err)
	}
	ds.join()
	return ds, nil
}

// join attaches denormalized guest and room copies to each reservation.
func (ds *Dataset) join() {
	guests := make(map[string]*Guest, len(ds.Guests))
	for i := range ds.Guests {
		guests[ds.Guests[i].ID] = &ds.Guests[i]
	}
	rooms := make(map[string]*Room, len(ds.Rooms))
	for i := range ds.Rooms {
		rooms[ds.Rooms[i].ID] = &ds.Rooms[i]
	}
	for i := range ds.Reservations {
		res := &ds.Reservations[i]
		res.Guest = guests[res.GuestID]
		res.Room = rooms[res.RoomID]
	}
}

func ts(value string) time.Time {
	t, _ := time.Parse(time.RFC3339, value)
	return t
}

// SeedDataset returns the built-in demo property used when no dataset file is
// configured.
func SeedDataset() Dataset {
	ds := Dataset{
		Guests: []Guest{
			{ID: "guest-1", Name: "John Smith", Email: "john.smith@email.com", Phone: "+1-555-0101",
				IDType: "passport", IDNumber: "P12345678",
				CreatedAt: ts("2024-01-15T10:00:00Z"), UpdatedAt: ts("2024-01-15T10:00:00Z")},
			{ID: "guest-2", Name: "Sarah Johnson", Email: "sarah.j@email.com", Phone: "+1-555-0102",
				IDType: "drivers_license", IDNumber: "DL987654",
				CreatedAt: ts("2024-02-20T14:30:00Z"), UpdatedAt: ts("2024-02-20T14:30:00Z")},
			{ID: "guest-3", Name: "Michael Chen", Email: "mchen@email.com", Phone: "+1-555-0103",
				IDType: "passport", IDNumber: "P87654321",
				CreatedAt: ts("2024-03-10T09:15:00Z"), UpdatedAt: ts("2024-03-10T09:15:00Z")},
			{ID: "guest-4", Name: "Emily Rodriguez", Email: "emily.r@email.com", Phone: "+1-555-0104",
				IDType: "passport", IDNumber: "P45678912",
				CreatedAt: ts("2024-03-12T16:45:00Z"), UpdatedAt: ts("2024-03-12T16:45:00Z")},
		},
		Rooms: []Room{
			{ID: "room-1", RoomNumber: "101", RoomType: RoomStandard,
				Amenities: []string{"wifi", "tv", "minibar"}, PricePerNight: 120,
				CreatedAt: ts("2024-01-01T00:00:00Z"), UpdatedAt: ts("2024-01-01T00:00:00Z")},
			{ID: "room-2", RoomNumber: "102", RoomType: RoomStandard,
				Amenities: []string{"wifi", "tv", "minibar"}, PricePerNight: 120,
				CreatedAt: ts("2024-01-01T00:00:00Z"), UpdatedAt: ts("2024-01-01T00:00:00Z")},
			{ID: "room-3", RoomNumber: "201", RoomType: RoomDeluxe,
				Amenities: []string{"wifi", "tv", "minibar", "balcony", "jacuzzi"}, PricePerNight: 200,
				CreatedAt: ts("2024-01-01T00:00:00Z"), UpdatedAt: ts("2024-01-01T00:00:00Z")},
			{ID: "room-4", RoomNumber: "202", RoomType: RoomDeluxe,
				Amenities: []string{"wifi", "tv", "minibar", "balcony", "jacuzzi"}, PricePerNight: 200,
				CreatedAt: ts("2024-01-01T00:00:00Z"), UpdatedAt: ts("2024-01-01T00:00:00Z")},
			{ID: "room-5", RoomNumber: "301", RoomType: RoomSuite,
				Amenities: []string{"wifi", "tv", "minibar", "balcony", "jacuzzi", "kitchen", "living_room"}, PricePerNight: 350,
				CreatedAt: ts("2024-01-01T00:00:00Z"), UpdatedAt: ts("2024-01-01T00:00:00Z")},
			{ID: "room-6", RoomNumber: "302", RoomType: RoomSuite,
				Amenities: []string{"wifi", "tv", "minibar", "balcony", "jacuzzi", "kitchen", "living_room"}, PricePerNight: 350,
				CreatedAt: ts("2024-01-01T00:00:00Z"), UpdatedAt: ts("2024-01-01T00:00:00Z")},
			{ID: "room-7", RoomNumber: "103", RoomType: RoomStandard,
				Amenities: []string{"wifi", "tv"}, PricePerNight: 100,
				CreatedAt: ts("2024-01-01T00:00:00Z"), UpdatedAt: ts("2024-01-01T00:00:00Z")},
			{ID: "room-8", RoomNumber: "203", RoomType: RoomDeluxe,
				Amenities: []string{"wifi", "tv", "minibar", "balcony"}, PricePerNight: 180,
				CreatedAt: ts("2024-01-01T00:00:00Z"), UpdatedAt: ts("2024-01-01T00:00:00Z")},
		},
		Reservations: []Reservation{
			{ID: "res-1", GuestID: "guest-1", RoomID: "room-2",
				CheckInDate: "2025-10-22", CheckOutDate: "2025-10-25", Status: StatusCheckedIn,
				SpecialRequests: "Late checkout requested", TotalAmount: 360,
				CreatedAt: ts("2025-10-15T10:00:00Z"), UpdatedAt: ts("2025-10-22T10:00:00Z")},
			{ID: "res-2", GuestID: "guest-2", RoomID: "room-4",
				CheckInDate: "2025-10-20", CheckOutDate: "2025-10-27", Status: StatusCheckedIn,
				SpecialRequests: "Extra pillows", TotalAmount: 1400,
				CreatedAt: ts("2025-10-10T14:30:00Z"), UpdatedAt: ts("2025-10-20T15:00:00Z")},
			{ID: "res-3", GuestID: "guest-3", RoomID: "room-1",
				CheckInDate: "2025-10-25", CheckOutDate: "2025-10-28", Status: StatusConfirmed,
				TotalAmount: 360,
				CreatedAt: ts("2025-10-18T09:15:00Z"), UpdatedAt: ts("2025-10-18T09:15:00Z")},
			{ID: "res-4", GuestID: "guest-4", RoomID: "room-3",
				CheckInDate: "2025-10-23", CheckOutDate: "2025-10-26", Status: StatusConfirmed,
				SpecialRequests: "Quiet room preferred", TotalAmount: 600,
				CreatedAt: ts("2025-10-16T16:45:00Z"), UpdatedAt: ts("2025-10-16T16:45:00Z")},
		},
		SpecialRequests: []SpecialRequest{
			{ID: "req-1", ReservationID: "res-1", RoomNumber: "102", RequestType: RequestLateCheckout,
				Description: "Guest requests checkout at 2 PM instead of 11 AM", Status: RequestPending,
				CreatedAt: ts("2024-03-16T10:30:00Z"), UpdatedAt: ts("2024-03-16T10:30:00Z")},
			{ID: "req-2", ReservationID: "res-2", RoomNumber: "202", RequestType: RequestExtraTowels,
				Description: "Guest needs 4 extra towels", Status: RequestCompleted,
				CreatedAt: ts("2024-03-21T08:15:00Z"), UpdatedAt: ts("2024-03-21T09:00:00Z")},
			{ID: "req-3", ReservationID: "res-2", RoomNumber: "202", RequestType: RequestRoomService,
				Description: "Continental breakfast at 8 AM", Status: RequestApproved,
				CreatedAt: ts("2024-03-22T20:00:00Z"), UpdatedAt: ts("2024-03-22T20:15:00Z")},
		},
	}
	ds.join()
	return ds
}
