// Package itemsvc covers the item catalog: creation, patch-style updates,
// owner listings with last/next booking projections, search, and renter
// comments.
package itemsvc

import (
	"context"
	"strings"

	"itemshare/model"
	"itemshare/util/apperr"
	"itemshare/util/clock"
	"itemshare/util/page"
)

type Repo interface {
	Create(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	Delete(ctx context.Context, id int64) error
	AllByOwner(ctx context.Context, ownerID int64, p page.Page) ([]model.Item, error)
	Search(ctx context.Context, template string, p page.Page) ([]model.Item, error)
}

type Users interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Requests interface {
	ByID(ctx context.Context, id int64) (*model.Request, error)
}

type Comments interface {
	Create(ctx context.Context, c *model.Comment) error
	AllByItem(ctx context.Context, itemID int64) ([]model.Comment, error)
}

// Bookings is the slice of the booking engine the catalog needs. Satisfied
// by bookingsvc.Service.
type Bookings interface {
	LastForItem(ctx context.Context, itemID int64) (*model.Booking, error)
	NextForItem(ctx context.Context, itemID int64) (*model.Booking, error)
	HasPastForItem(ctx context.Context, bookerID, itemID int64) (bool, error)
}

// Details is an item with its owner-facing booking projections and comments.
// Last and Next stay nil for non-owner viewers.
type Details struct {
	Item     model.Item
	Last     *model.Booking
	Next     *model.Booking
	Comments []model.Comment
}

type Service interface {
	Create(ctx context.Context, n model.NewItem, ownerID int64) (*model.Item, error)
	Update(ctx context.Context, patch model.ItemPatch, itemID, actorID int64) (*model.Item, error)
	GetByID(ctx context.Context, itemID, viewerID int64) (*Details, error)
	ListByOwner(ctx context.Context, ownerID int64, p page.Page) ([]Details, error)
	Search(ctx context.Context, viewerID int64, text string, p page.Page) ([]model.Item, error)
	Delete(ctx context.Context, itemID, actorID int64) error
	CreateComment(ctx context.Context, itemID, authorID int64, text string) (*model.Comment, error)
}

type service struct {
	r        Repo
	users    Users
	requests Requests
	comments Comments
	bookings Bookings
	clk      clock.Clock
}

func New(r Repo, users Users, requests Requests, comments Comments, bookings Bookings, clk clock.Clock) Service {
	return &service{r: r, users: users, requests: requests, comments: comments, bookings: bookings, clk: clk}
}

func (s *service) Create(ctx context.Context, n model.NewItem, ownerID int64) (*model.Item, error) {
	// The gateway rejects blank fields too; the re-check keeps the invariant
	// when the service is driven without it.
	if strings.TrimSpace(n.Name) == "" {
		return nil, apperr.New(apperr.ErrInvalidInput, "item name must not be blank")
	}
	if strings.TrimSpace(n.Description) == "" {
		return nil, apperr.New(apperr.ErrInvalidInput, "item description must not be blank")
	}
	owner, err := s.getUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if n.RequestID != nil {
		req, err := s.requests.ByID(ctx, *n.RequestID)
		if err != nil {
			return nil, err
		}
		if req == nil {
			return nil, apperr.Newf(apperr.ErrNotFound, "no request with id = %d", *n.RequestID)
		}
	}
	it := &model.Item{
		Name:        n.Name,
		Description: n.Description,
		Available:   n.Available,
		Owner:       *owner,
		RequestID:   n.RequestID,
	}
	if err := s.r.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, patch model.ItemPatch, itemID, actorID int64) (*model.Item, error) {
	if _, err := s.getUser(ctx, actorID); err != nil {
		return nil, err
	}
	it, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.Owner.ID != actorID {
		return nil, apperr.Newf(apperr.ErrForbidden,
			"user %d may not edit item %d", actorID, itemID)
	}

	// Only non-blank supplied fields overwrite; a blank string behaves like
	// an absent field.
	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		it.Name = *patch.Name
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) != "" {
		it.Description = *patch.Description
	}
	if patch.Available != nil {
		it.Available = *patch.Available
	}

	if err := s.r.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetByID(ctx context.Context, itemID, viewerID int64) (*Details, error) {
	if _, err := s.getUser(ctx, viewerID); err != nil {
		return nil, err
	}
	it, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, *it, it.Owner.ID == viewerID)
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, p page.Page) ([]Details, error) {
	if _, err := s.getUser(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.r.AllByOwner(ctx, ownerID, p)
	if err != nil {
		return nil, err
	}
	out := make([]Details, 0, len(items))
	for _, it := range items {
		d, err := s.details(ctx, it, true)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

func (s *service) Search(ctx context.Context, viewerID int64, text string, p page.Page) ([]model.Item, error) {
	if _, err := s.getUser(ctx, viewerID); err != nil {
		return nil, err
	}
	// Empty search box must not turn into a full catalog scan.
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	return s.r.Search(ctx, text, p)
}

func (s *service) Delete(ctx context.Context, itemID, actorID int64) error {
	it, err := s.getItem(ctx, itemID)
	if err != nil {
		return err
	}
	if it.Owner.ID != actorID {
		return apperr.Newf(apperr.ErrForbidden,
			"user %d may not delete item %d", actorID, itemID)
	}
	return s.r.Delete(ctx, itemID)
}

func (s *service) CreateComment(ctx context.Context, itemID, authorID int64, text string) (*model.Comment, error) {
	author, err := s.getUser(ctx, authorID)
	if err != nil {
		return nil, err
	}
	it, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	rented, err := s.bookings.HasPastForItem(ctx, authorID, itemID)
	if err != nil {
		return nil, err
	}
	if !rented {
		return nil, apperr.Newf(apperr.ErrUnavailable,
			"user %d has no finished booking of item %d", authorID, it.ID)
	}
	c := &model.Comment{
		Text:    text,
		ItemID:  it.ID,
		Author:  *author,
		Created: s.clk.Now(),
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) details(ctx context.Context, it model.Item, forOwner bool) (*Details, error) {
	d := &Details{Item: it}
	var err error
	if forOwner {
		if d.Last, err = s.bookings.LastForItem(ctx, it.ID); err != nil {
			return nil, err
		}
		if d.Next, err = s.bookings.NextForItem(ctx, it.ID); err != nil {
			return nil, err
		}
	}
	if d.Comments, err = s.comments.AllByItem(ctx, it.ID); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) getUser(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.Newf(apperr.ErrNotFound, "no user with id = %d", userID)
	}
	return u, nil
}

func (s *service) getItem(ctx context.Context, itemID int64) (*model.Item, error) {
	it, err := s.r.ByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperr.Newf(apperr.ErrNotFound, "no item with id = %d", itemID)
	}
	return it, nil
}
