// Package bookingsvc is the booking lifecycle engine: creation, the one-shot
// owner decision, access-checked retrieval, and the time-window listing and
// last/next projections consumed by the item listings.
package bookingsvc

import (
	"context"
	"time"

	"itemshare/model"
	"itemshare/util/apperr"
	"itemshare/util/clock"
	"itemshare/util/page"
)

type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*model.Booking, error)
	Decide(ctx context.Context, id int64, status model.BookingStatus, guard func(*model.Booking) error) (*model.Booking, error)

	AllByBooker(ctx context.Context, bookerID int64, p page.Page) ([]model.Booking, error)
	CurrentByBooker(ctx context.Context, bookerID int64, now time.Time, p page.Page) ([]model.Booking, error)
	PastByBooker(ctx context.Context, bookerID int64, now time.Time, p page.Page) ([]model.Booking, error)
	FutureByBooker(ctx context.Context, bookerID int64, now time.Time, p page.Page) ([]model.Booking, error)
	ByBookerAndStatus(ctx context.Context, bookerID int64, status model.BookingStatus, p page.Page) ([]model.Booking, error)

	AllByOwner(ctx context.Context, ownerID int64, p page.Page) ([]model.Booking, error)
	CurrentByOwner(ctx context.Context, ownerID int64, now time.Time, p page.Page) ([]model.Booking, error)
	PastByOwner(ctx context.Context, ownerID int64, now time.Time, p page.Page) ([]model.Booking, error)
	FutureByOwner(ctx context.Context, ownerID int64, now time.Time, p page.Page) ([]model.Booking, error)
	ByOwnerAndStatus(ctx context.Context, ownerID int64, status model.BookingStatus, p page.Page) ([]model.Booking, error)

	LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	HasPastForItem(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type Items interface {
	ByID(ctx context.Context, id int64) (*model.Item, error)
}

type Users interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Service interface {
	Create(ctx context.Context, start, end time.Time, itemID, bookerID int64) (*model.Booking, error)
	Approve(ctx context.Context, bookingID int64, approved bool, actorID int64) (*model.Booking, error)
	GetByID(ctx context.Context, bookingID, actorID int64) (*model.Booking, error)
	ListForBooker(ctx context.Context, bookerID int64, state model.BookingState, p page.Page) ([]model.Booking, error)
	ListForOwner(ctx context.Context, ownerID int64, state model.BookingState, p page.Page) ([]model.Booking, error)

	// LastForItem resolves the latest booking already started at the query
	// instant, NextForItem the earliest one yet to start. Both return nil
	// when no booking qualifies.
	LastForItem(ctx context.Context, itemID int64) (*model.Booking, error)
	NextForItem(ctx context.Context, itemID int64) (*model.Booking, error)
	HasPastForItem(ctx context.Context, bookerID, itemID int64) (bool, error)
}

type service struct {
	r     Repo
	items Items
	users Users
	clk   clock.Clock
}

func New(r Repo, items Items, users Users, clk clock.Clock) Service {
	return &service{r: r, items: items, users: users, clk: clk}
}

func (s *service) Create(ctx context.Context, start, end time.Time, itemID, bookerID int64) (*model.Booking, error) {
	if !start.Before(end) {
		return nil, apperr.Newf(apperr.ErrInvalidRange,
			"start time (%s) is not before end time (%s)", start, end)
	}
	item, err := s.items.ByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.Newf(apperr.ErrNotFound, "no item with id = %d", itemID)
	}
	booker, err := s.users.ByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if booker == nil {
		return nil, apperr.Newf(apperr.ErrNotFound, "no user with id = %d", bookerID)
	}
	if booker.ID == item.Owner.ID {
		return nil, apperr.Newf(apperr.ErrSelfBooking, "item %d is your own", item.ID)
	}
	if !item.Available {
		return nil, apperr.Newf(apperr.ErrUnavailable, "item %d is unavailable now", item.ID)
	}

	b := &model.Booking{
		Start:  start,
		End:    end,
		Status: model.StatusWaiting,
		Item:   *item,
		Booker: *booker,
	}
	if err := s.r.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Approve(ctx context.Context, bookingID int64, approved bool, actorID int64) (*model.Booking, error) {
	newStatus := model.Decision(approved)
	b, err := s.r.Decide(ctx, bookingID, newStatus, func(b *model.Booking) error {
		// "Not your item" surfaces as not-found so a stranger cannot
		// probe for booking ids.
		if b.Item.Owner.ID != actorID {
			return apperr.Newf(apperr.ErrNotFound,
				"item %d from booking %d doesn't belong to user %d", b.Item.ID, b.ID, actorID)
		}
		// Only WAITING bookings may be decided; a second decision of any
		// direction is rejected.
		if b.Status.Decided() {
			return apperr.Newf(apperr.ErrAlreadyDecided,
				"booking %d is already %s", b.ID, b.Status)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperr.Newf(apperr.ErrNotFound, "no booking with id = %d", bookingID)
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, bookingID, actorID int64) (*model.Booking, error) {
	b, err := s.r.ByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperr.Newf(apperr.ErrNotFound, "no booking with id = %d", bookingID)
	}
	if b.Booker.ID != actorID && b.Item.Owner.ID != actorID {
		return nil, apperr.Newf(apperr.ErrNotFound, "no access to booking %d", b.ID)
	}
	return b, nil
}

func (s *service) ListForBooker(ctx context.Context, bookerID int64, state model.BookingState, p page.Page) ([]model.Booking, error) {
	if err := s.userExists(ctx, bookerID); err != nil {
		return nil, err
	}
	now := s.clk.Now()
	switch state {
	case model.StateAll:
		return s.r.AllByBooker(ctx, bookerID, p)
	case model.StateCurrent:
		return s.r.CurrentByBooker(ctx, bookerID, now, p)
	case model.StatePast:
		return s.r.PastByBooker(ctx, bookerID, now, p)
	case model.StateFuture:
		return s.r.FutureByBooker(ctx, bookerID, now, p)
	case model.StateWaiting:
		return s.r.ByBookerAndStatus(ctx, bookerID, model.StatusWaiting, p)
	case model.StateRejected:
		return s.r.ByBookerAndStatus(ctx, bookerID, model.StatusRejected, p)
	default:
		return nil, apperr.Newf(apperr.ErrInvalidState, "Unknown state: %s", state)
	}
}

func (s *service) ListForOwner(ctx context.Context, ownerID int64, state model.BookingState, p page.Page) ([]model.Booking, error) {
	if err := s.userExists(ctx, ownerID); err != nil {
		return nil, err
	}
	now := s.clk.Now()
	switch state {
	case model.StateAll:
		return s.r.AllByOwner(ctx, ownerID, p)
	case model.StateCurrent:
		return s.r.CurrentByOwner(ctx, ownerID, now, p)
	case model.StatePast:
		return s.r.PastByOwner(ctx, ownerID, now, p)
	case model.StateFuture:
		return s.r.FutureByOwner(ctx, ownerID, now, p)
	case model.StateWaiting:
		return s.r.ByOwnerAndStatus(ctx, ownerID, model.StatusWaiting, p)
	case model.StateRejected:
		return s.r.ByOwnerAndStatus(ctx, ownerID, model.StatusRejected, p)
	default:
		return nil, apperr.Newf(apperr.ErrInvalidState, "Unknown state: %s", state)
	}
}

func (s *service) LastForItem(ctx context.Context, itemID int64) (*model.Booking, error) {
	return s.r.LastForItem(ctx, itemID, s.clk.Now())
}

func (s *service) NextForItem(ctx context.Context, itemID int64) (*model.Booking, error) {
	return s.r.NextForItem(ctx, itemID, s.clk.Now())
}

func (s *service) HasPastForItem(ctx context.Context, bookerID, itemID int64) (bool, error) {
	return s.r.HasPastForItem(ctx, bookerID, itemID, s.clk.Now())
}

func (s *service) userExists(ctx context.Context, userID int64) error {
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return apperr.Newf(apperr.ErrNotFound, "no user with id = %d", userID)
	}
	return nil
}
