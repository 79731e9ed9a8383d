// Package requestsvc handles item requests: the asks users raise for items
// nobody has listed yet, and the listings showing which items fulfilled them.
package requestsvc

import (
	"context"

	"itemshare/model"
	"itemshare/util/apperr"
	"itemshare/util/clock"
	"itemshare/util/page"
)

type Repo interface {
	Create(ctx context.Context, req *model.Request) error
	ByID(ctx context.Context, id int64) (*model.Request, error)
	AllByRequester(ctx context.Context, requesterID int64) ([]model.Request, error)
	AllAlien(ctx context.Context, requesterID int64, p page.Page) ([]model.Request, error)
}

type Users interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Items interface {
	AllByRequest(ctx context.Context, requestID int64) ([]model.Item, error)
}

// Details is a request plus the items listed in fulfillment of it. The
// items carry no booking projections here: no single viewing owner applies.
type Details struct {
	Request model.Request
	Items   []model.Item
}

type Service interface {
	Create(ctx context.Context, requesterID int64, description string) (*model.Request, error)
	ListForRequester(ctx context.Context, requesterID int64) ([]Details, error)
	ListAlien(ctx context.Context, viewerID int64, p page.Page) ([]Details, error)
	GetByID(ctx context.Context, requestID, viewerID int64) (*Details, error)
}

type service struct {
	r     Repo
	users Users
	items Items
	clk   clock.Clock
}

func New(r Repo, users Users, items Items, clk clock.Clock) Service {
	return &service{r: r, users: users, items: items, clk: clk}
}

func (s *service) Create(ctx context.Context, requesterID int64, description string) (*model.Request, error) {
	requester, err := s.getUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	req := &model.Request{
		Description: description,
		Created:     s.clk.Now(),
		Requester:   *requester,
	}
	if err := s.r.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) ListForRequester(ctx context.Context, requesterID int64) ([]Details, error) {
	if _, err := s.getUser(ctx, requesterID); err != nil {
		return nil, err
	}
	requests, err := s.r.AllByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, requests)
}

func (s *service) ListAlien(ctx context.Context, viewerID int64, p page.Page) ([]Details, error) {
	if _, err := s.getUser(ctx, viewerID); err != nil {
		return nil, err
	}
	requests, err := s.r.AllAlien(ctx, viewerID, p)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, requests)
}

func (s *service) GetByID(ctx context.Context, requestID, viewerID int64) (*Details, error) {
	if _, err := s.getUser(ctx, viewerID); err != nil {
		return nil, err
	}
	req, err := s.r.ByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperr.Newf(apperr.ErrNotFound, "no request with id = %d", requestID)
	}
	items, err := s.items.AllByRequest(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &Details{Request: *req, Items: items}, nil
}

func (s *service) hydrate(ctx context.Context, requests []model.Request) ([]Details, error) {
	out := make([]Details, 0, len(requests))
	for _, req := range requests {
		items, err := s.items.AllByRequest(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, Details{Request: req, Items: items})
	}
	return out, nil
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
