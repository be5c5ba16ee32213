package model

import "time"

// TrainType is one of the canonical train categories seeded at startup
// (Long-distance, Express, Regional, Inter-City).  Names are unique.
type TrainType struct {
	ID   uint64 // train_types.id
	Name string // train_types.name
}

// Train describes the physical rolling stock assigned to journeys.  The
// seat space of any journey run by this train is the grid
// {1..WagonCount} x {1..WagonCapacity}.  Both dimensions must be at
// least 1.
//
// Fields:
//
//	ID            – primary key identifier.
//	Name          – display name of the train.
//	TypeID        – reference to its train type.
//	WagonCount    – number of wagons.
//	WagonCapacity – seats per wagon.
//	CreatedAt     – timestamp when the record was created.
type Train struct {
	ID            uint64    // trains.id
	Name          string    // trains.name
	TypeID        uint64    // trains.type_id
	WagonCount    uint32    // trains.wagon_count
	WagonCapacity uint32    // trains.wagon_capacity
	CreatedAt     time.Time // trains.created_at
}

// Capacity returns the total number of seats on the train.
func (t Train) Capacity() uint32 {
	return t.WagonCount * t.WagonCapacity
}
