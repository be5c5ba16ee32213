// Package queue defines message payloads exchanged over the message
// broker and the background consumer that drains them.
package queue

// OrderTicket is one booked seat inside an OrderCreatedEvent.
type OrderTicket struct {
	JourneyID   uint64 `json:"journey_id"`
	WagonNumber uint32 `json:"wagon_number"`
	SeatNumber  uint32 `json:"seat_number"`
}

// OrderCreatedEvent is published after an order transaction commits.
// It carries enough to log or notify without querying the primary
// database.
type OrderCreatedEvent struct {
	OrderID   uint64        `json:"order_id"`
	UserID    uint64        `json:"user_id"`
	CreatedAt string        `json:"created_at"`
	Tickets   []OrderTicket `json:"tickets"`
}
