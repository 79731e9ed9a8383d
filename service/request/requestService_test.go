package requestsvc_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"itemshare/model"
	requestsvc "itemshare/service/request"
	"itemshare/util/apperr"
	"itemshare/util/clock"
	"itemshare/util/page"
)

var (
	now       = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	requester = model.User{ID: 1, Name: "Maria", Email: "maria@example.com"}
	other     = model.User{ID: 2, Name: "Oleg", Email: "oleg@example.com"}
)

type repoMock struct {
	createFn         func(ctx context.Context, req *model.Request) error
	byIDFn           func(ctx context.Context, id int64) (*model.Request, error)
	allByRequesterFn func(ctx context.Context, requesterID int64) ([]model.Request, error)
	allAlienFn       func(ctx context.Context, requesterID int64, p page.Page) ([]model.Request, error)
}

func (m *repoMock) Create(ctx context.Context, req *model.Request) error { return m.createFn(ctx, req) }

func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Request, error) {
	if m.byIDFn == nil {
		return nil, nil
	}
	return m.byIDFn(ctx, id)
}

func (m *repoMock) AllByRequester(ctx context.Context, requesterID int64) ([]model.Request, error) {
	return m.allByRequesterFn(ctx, requesterID)
}

func (m *repoMock) AllAlien(ctx context.Context, requesterID int64, p page.Page) ([]model.Request, error) {
	return m.allAlienFn(ctx, requesterID, p)
}

type usersMock struct{}

func (usersMock) ByID(ctx context.Context, id int64) (*model.User, error) {
	for _, u := range []model.User{requester, other} {
		if u.ID == id {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

type itemsMock struct {
	allByRequestFn func(ctx context.Context, requestID int64) ([]model.Item, error)
}

func (m *itemsMock) AllByRequest(ctx context.Context, requestID int64) ([]model.Item, error) {
	if m.allByRequestFn == nil {
		return nil, nil
	}
	return m.allByRequestFn(ctx, requestID)
}

func newService(r requestsvc.Repo, items requestsvc.Items) requestsvc.Service {
	if items == nil {
		items = &itemsMock{}
	}
	return requestsvc.New(r, usersMock{}, items, clock.Fixed(now))
}

func TestCreate_StampsClock(t *testing.T) {
	svc := newService(&repoMock{createFn: func(ctx context.Context, req *model.Request) error {
		req.ID = 3
		return nil
	}}, nil)

	req, err := svc.Create(context.Background(), requester.ID, "need a drill")
	require.NoError(t, err)
	require.Equal(t, int64(3), req.ID)
	require.Equal(t, now, req.Created)
	require.Equal(t, requester.ID, req.Requester.ID)
}

func TestCreate_UnknownRequester(t *testing.T) {
	svc := newService(&repoMock{}, nil)

	_, err := svc.Create(context.Background(), 999, "need a drill")
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}

func TestListForRequester_HydratesItems(t *testing.T) {
	requests := []model.Request{
		{ID: 1, Description: "need a drill", Created: now, Requester: requester},
		{ID: 2, Description: "need a ladder", Created: now, Requester: requester},
	}
	reqID := int64(1)
	answers := []model.Item{{ID: 10, Name: "drill", Available: true, Owner: other, RequestID: &reqID}}

	svc := newService(
		&repoMock{allByRequesterFn: func(ctx context.Context, requesterID int64) ([]model.Request, error) {
			require.Equal(t, requester.ID, requesterID)
			return requests, nil
		}},
		&itemsMock{allByRequestFn: func(ctx context.Context, requestID int64) ([]model.Item, error) {
			if requestID == 1 {
				return answers, nil
			}
			return nil, nil
		}},
	)

	got, err := svc.ListForRequester(context.Background(), requester.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, answers, got[0].Items)
	require.Empty(t, got[1].Items)
}

func TestListAlien_PassesPage(t *testing.T) {
	p := page.Page{From: 5, Size: 10}
	svc := newService(&repoMock{allAlienFn: func(ctx context.Context, requesterID int64, gp page.Page) ([]model.Request, error) {
		require.Equal(t, other.ID, requesterID)
		require.Equal(t, p, gp)
		return nil, nil
	}}, nil)

	got, err := svc.ListAlien(context.Background(), other.ID, p)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestGetByID_AnyUserMayView(t *testing.T) {
	req := model.Request{ID: 1, Description: "need a drill", Created: now, Requester: requester}
	svc := newService(&repoMock{byIDFn: func(ctx context.Context, id int64) (*model.Request, error) {
		cp := req
		return &cp, nil
	}}, nil)

	d, err := svc.GetByID(context.Background(), req.ID, other.ID)
	require.NoError(t, err)
	require.Equal(t, req, d.Request)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newService(&repoMock{}, nil)

	_, err := svc.GetByID(context.Background(), 404, requester.ID)
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}

func TestGetByID_UnknownViewer(t *testing.T) {
	svc := newService(&repoMock{}, nil)

	_, err := svc.GetByID(context.Background(), 1, 999)
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}
