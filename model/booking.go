package model

import (
	"time"

	"itemshare/util/apperr"
)

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
	StatusCanceled BookingStatus = "CANCELED"
)

// Decision maps an owner's approve flag onto the target status.
func Decision(approved bool) BookingStatus {
	if approved {
		return StatusApproved
	}
	return StatusRejected
}

// Decided reports whether the booking already left WAITING.
func (s BookingStatus) Decided() bool { return s != StatusWaiting }

// Booking reserves one item for one booker over the half-open interval
// [Start, End).
type Booking struct {
	ID     int64         `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Status BookingStatus `json:"status"`
	Item   Item          `json:"item"`
	Booker User          `json:"booker"`
}

// BookingState is the listing filter: either a time window relative to the
// query instant or an exact status.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

func ParseState(s string) (BookingState, error) {
	switch BookingState(s) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return BookingState(s), nil
	default:
		return "", apperr.Newf(apperr.ErrInvalidState, "Unknown state: %s", s)
	}
}
