package model

import "time"

// Order groups the tickets a user bought in one booking.  An order and
// its tickets are created in a single transaction and never partially
// persisted; there is no update or cancel path.
type Order struct {
	ID        uint64    // orders.id
	UserID    uint64    // orders.user_id
	CreatedAt time.Time // orders.created_at
}

// Ticket is one sold seat on one journey.  The triple
// (JourneyID, WagonNumber, SeatNumber) is unique across all tickets;
// the tickets table enforces this with a unique key.
//
// Fields:
//
//	ID          – primary key identifier.
//	OrderID     – order the ticket belongs to.
//	JourneyID   – journey the seat is sold on.
//	WagonNumber – wagon, 1..train.WagonCount.
//	SeatNumber  – seat within the wagon, 1..train.WagonCapacity.
type Ticket struct {
	ID          uint64 // tickets.id
	OrderID     uint64 // tickets.order_id
	JourneyID   uint64 // tickets.journey_id
	WagonNumber uint32 // tickets.wagon_number
	SeatNumber  uint32 // tickets.seat_number
}
