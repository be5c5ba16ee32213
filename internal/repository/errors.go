// Package repository implements database access for the booking service.
// This file defines sentinel errors reused across repositories so that
// handlers can translate failure scenarios into HTTP responses without
// inspecting driver errors themselves.
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot proceed because
// of dependent records, such as deleting a journey that already has
// tickets sold.  Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrSeatTaken is returned when inserting a ticket violates the unique
// key on (journey_id, wagon_number, seat_number).  This is the
// storage-level backstop firing after the advisory checks passed, which
// happens when two bookings race for the same seat.  Handlers surface
// it as the same "seat already sold" validation error as the pre-check.
var ErrSeatTaken = errors.New("seat already sold")

// Not-found sentinels for referenced entities.  Handlers translate
// these into HTTP 404.
var (
	ErrStationNotFound   = errors.New("station not found")
	ErrTrainNotFound     = errors.New("train not found")
	ErrTrainTypeNotFound = errors.New("train type not found")
	ErrRouteNotFound     = errors.New("route not found")
	ErrJourneyNotFound   = errors.New("journey not found")
)

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (error number 1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
