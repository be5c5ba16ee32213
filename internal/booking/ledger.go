// Package booking holds the seat-allocation rules for journeys.  The
// rules are pure: a Ledger is built from a journey's train dimensions
// and its already-sold seats, and every seat request in an order batch
// is checked against the union of persisted state and the earlier lines
// of the same batch.  Persistence is the caller's job; the tickets
// table's unique key remains the final arbiter under concurrency.
package booking

import (
	"fmt"

	"github.com/iliyamo/train-station-booking/internal/model"
)

// SeatKey identifies one seat on a journey: wagon 1..WagonCount, seat
// 1..WagonCapacity.
type SeatKey struct {
	Wagon uint32
	Seat  uint32
}

// ValidationError reports why a seat request was rejected.  Field names
// match the JSON request fields so handlers can return per-field errors.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Ledger is the in-memory sold-seat set for a single journey.  It is
// seeded with the committed tickets of the journey and then accumulates
// the accepted lines of the current batch, so a duplicate inside one
// order is caught the same way as a seat sold long ago.
type Ledger struct {
	train model.Train
	sold  map[SeatKey]struct{}
}

// NewLedger builds a ledger for one journey from its train and the seat
// pairs already sold.
func NewLedger(train model.Train, sold []SeatKey) *Ledger {
	m := make(map[SeatKey]struct{}, len(sold))
	for _, k := range sold {
		m[k] = struct{}{}
	}
	return &Ledger{train: train, sold: m}
}

// Validate checks one seat request without claiming the seat.  It
// returns nil on acceptance, otherwise a ValidationError naming the
// offending field:
//
//   - wagon outside 1..WagonCount
//   - seat outside 1..WagonCapacity
//   - seat already present in the sold set
func (l *Ledger) Validate(wagon, seat uint32) *ValidationError {
	if wagon < 1 || wagon > l.train.WagonCount {
		return &ValidationError{
			Field:   "wagon_number",
			Message: fmt.Sprintf("wagon number must be in range (1,%d)", l.train.WagonCount),
		}
	}
	if seat < 1 || seat > l.train.WagonCapacity {
		return &ValidationError{
			Field:   "seat_number",
			Message: fmt.Sprintf("seat number must be in range (1,%d)", l.train.WagonCapacity),
		}
	}
	if _, taken := l.sold[SeatKey{Wagon: wagon, Seat: seat}]; taken {
		return &ValidationError{
			Field:   "seat_number",
			Message: "seat already sold",
		}
	}
	return nil
}

// Reserve validates a seat request and, on acceptance, records it in
// the sold set so later lines of the same batch see it as taken.
func (l *Ledger) Reserve(wagon, seat uint32) *ValidationError {
	if verr := l.Validate(wagon, seat); verr != nil {
		return verr
	}
	l.sold[SeatKey{Wagon: wagon, Seat: seat}] = struct{}{}
	return nil
}

// SoldCount returns the number of seats currently held by the ledger,
// including lines reserved in this batch.
func (l *Ledger) SoldCount() int {
	return len(l.sold)
}

// Available returns the number of unsold seats for a train given the
// count of committed tickets.  It never goes below zero.
func Available(train model.Train, soldCount int) int {
	n := int(train.Capacity()) - soldCount
	if n < 0 {
		n = 0
	}
	return n
}
