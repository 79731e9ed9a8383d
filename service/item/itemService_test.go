package itemsvc_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"itemshare/model"
	itemsvc "itemshare/service/item"
	"itemshare/util/apperr"
	"itemshare/util/clock"
	"itemshare/util/page"
)

var (
	now    = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	owner  = model.User{ID: 1, Name: "Maria", Email: "maria@example.com"}
	renter = model.User{ID: 2, Name: "Oleg", Email: "oleg@example.com"}
	drill  = model.Item{ID: 10, Name: "drill", Description: "cordless drill", Available: true, Owner: owner}
)

type repoMock struct {
	createFn     func(ctx context.Context, it *model.Item) error
	byIDFn       func(ctx context.Context, id int64) (*model.Item, error)
	updateFn     func(ctx context.Context, it *model.Item) error
	deleteFn     func(ctx context.Context, id int64) error
	allByOwnerFn func(ctx context.Context, ownerID int64, p page.Page) ([]model.Item, error)
	searchFn     func(ctx context.Context, template string, p page.Page) ([]model.Item, error)
}

func (m *repoMock) Create(ctx context.Context, it *model.Item) error { return m.createFn(ctx, it) }

func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Item, error) {
	if m.byIDFn == nil {
		return nil, nil
	}
	return m.byIDFn(ctx, id)
}

func (m *repoMock) Update(ctx context.Context, it *model.Item) error { return m.updateFn(ctx, it) }

func (m *repoMock) Delete(ctx context.Context, id int64) error { return m.deleteFn(ctx, id) }

func (m *repoMock) AllByOwner(ctx context.Context, ownerID int64, p page.Page) ([]model.Item, error) {
	return m.allByOwnerFn(ctx, ownerID, p)
}

func (m *repoMock) Search(ctx context.Context, template string, p page.Page) ([]model.Item, error) {
	return m.searchFn(ctx, template, p)
}

type usersMock struct {
	byIDFn func(ctx context.Context, id int64) (*model.User, error)
}

func (m *usersMock) ByID(ctx context.Context, id int64) (*model.User, error) { return m.byIDFn(ctx, id) }

type requestsMock struct {
	byIDFn func(ctx context.Context, id int64) (*model.Request, error)
}

func (m *requestsMock) ByID(ctx context.Context, id int64) (*model.Request, error) {
	return m.byIDFn(ctx, id)
}

type commentsMock struct {
	createFn    func(ctx context.Context, c *model.Comment) error
	allByItemFn func(ctx context.Context, itemID int64) ([]model.Comment, error)
}

func (m *commentsMock) Create(ctx context.Context, c *model.Comment) error { return m.createFn(ctx, c) }

func (m *commentsMock) AllByItem(ctx context.Context, itemID int64) ([]model.Comment, error) {
	if m.allByItemFn == nil {
		return nil, nil
	}
	return m.allByItemFn(ctx, itemID)
}

type bookingsMock struct {
	lastFn    func(ctx context.Context, itemID int64) (*model.Booking, error)
	nextFn    func(ctx context.Context, itemID int64) (*model.Booking, error)
	hasPastFn func(ctx context.Context, bookerID, itemID int64) (bool, error)
}

func (m *bookingsMock) LastForItem(ctx context.Context, itemID int64) (*model.Booking, error) {
	return m.lastFn(ctx, itemID)
}

func (m *bookingsMock) NextForItem(ctx context.Context, itemID int64) (*model.Booking, error) {
	return m.nextFn(ctx, itemID)
}

func (m *bookingsMock) HasPastForItem(ctx context.Context, bookerID, itemID int64) (bool, error) {
	return m.hasPastFn(ctx, bookerID, itemID)
}

func knownUsers(users ...model.User) *usersMock {
	return &usersMock{byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
		for _, u := range users {
			if u.ID == id {
				cp := u
				return &cp, nil
			}
		}
		return nil, nil
	}}
}

func knownItems(items ...model.Item) func(ctx context.Context, id int64) (*model.Item, error) {
	return func(ctx context.Context, id int64) (*model.Item, error) {
		for _, it := range items {
			if it.ID == id {
				cp := it
				return &cp, nil
			}
		}
		return nil, nil
	}
}

type deps struct {
	repo     *repoMock
	requests *requestsMock
	comments *commentsMock
	bookings *bookingsMock
}

func newService(d deps) itemsvc.Service {
	if d.repo == nil {
		d.repo = &repoMock{}
	}
	if d.requests == nil {
		d.requests = &requestsMock{}
	}
	if d.comments == nil {
		d.comments = &commentsMock{}
	}
	if d.bookings == nil {
		d.bookings = &bookingsMock{}
	}
	return itemsvc.New(d.repo, knownUsers(owner, renter), d.requests, d.comments, d.bookings, clock.Fixed(now))
}

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }

// ----- Create -----

func TestCreate_Success(t *testing.T) {
	var saved *model.Item
	svc := newService(deps{repo: &repoMock{createFn: func(ctx context.Context, it *model.Item) error {
		it.ID = 10
		saved = it
		return nil
	}}})

	it, err := svc.Create(context.Background(), model.NewItem{
		Name: "drill", Description: "cordless drill", Available: true,
	}, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	require.Equal(t, int64(10), it.ID)
	require.Equal(t, owner.ID, it.Owner.ID)
}

func TestCreate_BlankFields(t *testing.T) {
	svc := newService(deps{repo: &repoMock{createFn: func(ctx context.Context, it *model.Item) error {
		t.Fatal("blank item reached the repository")
		return nil
	}}})

	for _, n := range []model.NewItem{
		{Name: "   ", Description: "\t", Available: true},
		{Name: "drill", Description: "  ", Available: true},
		{Name: "", Description: "cordless drill", Available: true},
	} {
		_, err := svc.Create(context.Background(), n, owner.ID)
		require.Error(t, err)
		require.Equal(t, apperr.ErrInvalidInput, apperr.Code(err))
	}
}

func TestCreate_UnknownOwner(t *testing.T) {
	svc := newService(deps{})

	_, err := svc.Create(context.Background(), model.NewItem{Name: "drill", Available: true}, 999)
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}

func TestCreate_DanglingRequest(t *testing.T) {
	missing := int64(404)
	svc := newService(deps{requests: &requestsMock{byIDFn: func(ctx context.Context, id int64) (*model.Request, error) {
		return nil, nil
	}}})

	_, err := svc.Create(context.Background(), model.NewItem{
		Name: "drill", Available: true, RequestID: &missing,
	}, owner.ID)
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}

func TestCreate_AnswersRequest(t *testing.T) {
	reqID := int64(3)
	svc := newService(deps{
		repo: &repoMock{createFn: func(ctx context.Context, it *model.Item) error { return nil }},
		requests: &requestsMock{byIDFn: func(ctx context.Context, id int64) (*model.Request, error) {
			return &model.Request{ID: id, Description: "need a drill"}, nil
		}},
	})

	it, err := svc.Create(context.Background(), model.NewItem{
		Name: "drill", Available: true, RequestID: &reqID,
	}, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, it.RequestID)
	require.Equal(t, reqID, *it.RequestID)
}

// ----- Update -----

func TestUpdate_Patch(t *testing.T) {
	cases := []struct {
		name  string
		patch model.ItemPatch
		want  model.Item
	}{
		{
			name:  "name only",
			patch: model.ItemPatch{Name: strp("hammer")},
			want:  model.Item{ID: 10, Name: "hammer", Description: "cordless drill", Available: true, Owner: owner},
		},
		{
			name:  "blank fields ignored",
			patch: model.ItemPatch{Name: strp("   "), Description: strp("")},
			want:  drill,
		},
		{
			name:  "availability toggles",
			patch: model.ItemPatch{Available: boolp(false)},
			want:  model.Item{ID: 10, Name: "drill", Description: "cordless drill", Available: false, Owner: owner},
		},
		{
			name:  "full overwrite",
			patch: model.ItemPatch{Name: strp("saw"), Description: strp("hand saw"), Available: boolp(false)},
			want:  model.Item{ID: 10, Name: "saw", Description: "hand saw", Available: false, Owner: owner},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newService(deps{repo: &repoMock{
				byIDFn:   knownItems(drill),
				updateFn: func(ctx context.Context, it *model.Item) error { return nil },
			}})

			got, err := svc.Update(context.Background(), tc.patch, drill.ID, owner.ID)
			require.NoError(t, err)
			require.Equal(t, tc.want, *got)
		})
	}
}

func TestUpdate_NotOwner(t *testing.T) {
	svc := newService(deps{repo: &repoMock{byIDFn: knownItems(drill)}})

	_, err := svc.Update(context.Background(), model.ItemPatch{Name: strp("hammer")}, drill.ID, renter.ID)
	require.Equal(t, apperr.ErrForbidden, apperr.Code(err))
}

func TestUpdate_ItemNotFound(t *testing.T) {
	svc := newService(deps{repo: &repoMock{byIDFn: knownItems()}})

	_, err := svc.Update(context.Background(), model.ItemPatch{Name: strp("hammer")}, 999, owner.ID)
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}

// ----- GetByID -----

func TestGetByID_OwnerSeesBookings(t *testing.T) {
	last := &model.Booking{ID: 1, Status: model.StatusApproved, Item: drill, Booker: renter}
	next := &model.Booking{ID: 2, Status: model.StatusApproved, Item: drill, Booker: renter}
	svc := newService(deps{
		repo: &repoMock{byIDFn: knownItems(drill)},
		bookings: &bookingsMock{
			lastFn: func(ctx context.Context, itemID int64) (*model.Booking, error) { return last, nil },
			nextFn: func(ctx context.Context, itemID int64) (*model.Booking, error) { return next, nil },
		},
	})

	d, err := svc.GetByID(context.Background(), drill.ID, owner.ID)
	require.NoError(t, err)
	require.Equal(t, last, d.Last)
	require.Equal(t, next, d.Next)
}

func TestGetByID_ViewerSeesNoBookings(t *testing.T) {
	// The booking projections are owner-only; for anyone else they must not
	// even be looked up.
	svc := newService(deps{
		repo: &repoMock{byIDFn: knownItems(drill)},
		bookings: &bookingsMock{
			lastFn: func(ctx context.Context, itemID int64) (*model.Booking, error) {
				t.Fatal("LastForItem called for a non-owner viewer")
				return nil, nil
			},
			nextFn: func(ctx context.Context, itemID int64) (*model.Booking, error) {
				t.Fatal("NextForItem called for a non-owner viewer")
				return nil, nil
			},
		},
	})

	d, err := svc.GetByID(context.Background(), drill.ID, renter.ID)
	require.NoError(t, err)
	require.Nil(t, d.Last)
	require.Nil(t, d.Next)
}

func TestGetByID_IncludesComments(t *testing.T) {
	comments := []model.Comment{{ID: 1, Text: "worked great", ItemID: drill.ID, Author: renter, Created: now}}
	svc := newService(deps{
		repo: &repoMock{byIDFn: knownItems(drill)},
		comments: &commentsMock{allByItemFn: func(ctx context.Context, itemID int64) ([]model.Comment, error) {
			return comments, nil
		}},
	})

	d, err := svc.GetByID(context.Background(), drill.ID, renter.ID)
	require.NoError(t, err)
	require.Equal(t, comments, d.Comments)
}

// ----- Search -----

func TestSearch_BlankTextShortCircuits(t *testing.T) {
	svc := newService(deps{repo: &repoMock{searchFn: func(ctx context.Context, template string, p page.Page) ([]model.Item, error) {
		t.Fatal("Search hit the repository for a blank query")
		return nil, nil
	}}})

	for _, text := range []string{"", "   ", "\t"} {
		items, err := svc.Search(context.Background(), renter.ID, text, page.Page{From: 0, Size: 5})
		require.NoError(t, err)
		require.NotNil(t, items)
		require.Empty(t, items)
	}
}

func TestSearch_DelegatesText(t *testing.T) {
	svc := newService(deps{repo: &repoMock{searchFn: func(ctx context.Context, template string, p page.Page) ([]model.Item, error) {
		require.Equal(t, "DriLL", template)
		return []model.Item{drill}, nil
	}}})

	items, err := svc.Search(context.Background(), renter.ID, "DriLL", page.Page{From: 0, Size: 5})
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestSearch_UnknownViewer(t *testing.T) {
	svc := newService(deps{})

	_, err := svc.Search(context.Background(), 999, "drill", page.Page{From: 0, Size: 5})
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}

// ----- Delete -----

func TestDelete_NotOwner(t *testing.T) {
	svc := newService(deps{repo: &repoMock{byIDFn: knownItems(drill)}})

	err := svc.Delete(context.Background(), drill.ID, renter.ID)
	require.Equal(t, apperr.ErrForbidden, apperr.Code(err))
}

func TestDelete_Owner(t *testing.T) {
	deleted := int64(0)
	svc := newService(deps{repo: &repoMock{
		byIDFn:   knownItems(drill),
		deleteFn: func(ctx context.Context, id int64) error { deleted = id; return nil },
	}})

	require.NoError(t, svc.Delete(context.Background(), drill.ID, owner.ID))
	require.Equal(t, drill.ID, deleted)
}

// ----- comments -----

func TestCreateComment_RequiresPastBooking(t *testing.T) {
	svc := newService(deps{
		repo: &repoMock{byIDFn: knownItems(drill)},
		bookings: &bookingsMock{hasPastFn: func(ctx context.Context, bookerID, itemID int64) (bool, error) {
			return false, nil
		}},
	})

	_, err := svc.CreateComment(context.Background(), drill.ID, renter.ID, "worked great")
	require.Equal(t, apperr.ErrUnavailable, apperr.Code(err))
}

func TestCreateComment_Success(t *testing.T) {
	var saved *model.Comment
	svc := newService(deps{
		repo: &repoMock{byIDFn: knownItems(drill)},
		bookings: &bookingsMock{hasPastFn: func(ctx context.Context, bookerID, itemID int64) (bool, error) {
			require.Equal(t, renter.ID, bookerID)
			require.Equal(t, drill.ID, itemID)
			return true, nil
		}},
		comments: &commentsMock{createFn: func(ctx context.Context, c *model.Comment) error {
			c.ID = 1
			saved = c
			return nil
		}},
	})

	c, err := svc.CreateComment(context.Background(), drill.ID, renter.ID, "worked great")
	require.NoError(t, err)
	require.NotNil(t, saved)
	require.Equal(t, "worked great", c.Text)
	require.Equal(t, renter.ID, c.Author.ID)
	require.Equal(t, now, c.Created)
}
