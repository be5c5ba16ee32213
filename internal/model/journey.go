package model

import (
	"errors"
	"time"
)

// ErrArrivalBeforeDeparture is returned by Validate when a journey would
// arrive at or before its own departure.
var ErrArrivalBeforeDeparture = errors.New("arrival_time must be after departure_time")

// Journey is one scheduled run of a train over a route between two
// timestamps.  Its seat space is defined entirely by the train; sold
// seats live in the tickets table.
//
// Fields:
//
//	ID            – primary key identifier.
//	TrainID       – train operating the journey.
//	RouteID       – route being travelled.
//	DepartureTime – scheduled departure (UTC).
//	ArrivalTime   – scheduled arrival (UTC), strictly after departure.
type Journey struct {
	ID            uint64    // journeys.id
	TrainID       uint64    // journeys.train_id
	RouteID       uint64    // journeys.route_id
	DepartureTime time.Time // journeys.departure_time
	ArrivalTime   time.Time // journeys.arrival_time
}

// Duration returns the scheduled travel time.
func (j Journey) Duration() time.Duration {
	return j.ArrivalTime.Sub(j.DepartureTime)
}

// Validate checks the schedule window.  A journey that arrives at or
// before its departure is rejected.
func (j Journey) Validate() error {
	if !j.ArrivalTime.After(j.DepartureTime) {
		return ErrArrivalBeforeDeparture
	}
	return nil
}
