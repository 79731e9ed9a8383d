package item

import (
	"time"

	"itemshare/model"
	itemsvc "itemshare/service/item"
)

type CreateItemReq struct {
	Name        string `json:"name" validate:"required,notblank"`
	Description string `json:"description" validate:"required,notblank"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId"`
}

type UpdateItemReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentReq struct {
	Text string `json:"text" validate:"required,notblank"`
}

// BookingShort is the projection shown on owner-facing item views.
type BookingShort struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type CommentResp struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type ItemResp struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Available   bool          `json:"available"`
	RequestID   *int64        `json:"requestId,omitempty"`
	LastBooking *BookingShort `json:"lastBooking"`
	NextBooking *BookingShort `json:"nextBooking"`
	Comments    []CommentResp `json:"comments"`
}

func toItemResp(d itemsvc.Details) ItemResp {
	resp := ItemResp{
		ID:          d.Item.ID,
		Name:        d.Item.Name,
		Description: d.Item.Description,
		Available:   d.Item.Available,
		RequestID:   d.Item.RequestID,
		Comments:    toCommentResps(d.Comments),
	}
	if d.Last != nil {
		resp.LastBooking = &BookingShort{ID: d.Last.ID, BookerID: d.Last.Booker.ID}
	}
	if d.Next != nil {
		resp.NextBooking = &BookingShort{ID: d.Next.ID, BookerID: d.Next.Booker.ID}
	}
	return resp
}

func toItemResps(ds []itemsvc.Details) []ItemResp {
	out := make([]ItemResp, 0, len(ds))
	for _, d := range ds {
		out = append(out, toItemResp(d))
	}
	return out
}

// Search results carry no projections or comments.
func toPlainItemResps(items []model.Item) []ItemResp {
	out := make([]ItemResp, 0, len(items))
	for _, it := range items {
		out = append(out, ItemResp{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Available:   it.Available,
			RequestID:   it.RequestID,
			Comments:    []CommentResp{},
		})
	}
	return out
}

func toCommentResp(cm model.Comment) CommentResp {
	return CommentResp{
		ID:         cm.ID,
		Text:       cm.Text,
		AuthorName: cm.Author.Name,
		Created:    cm.Created,
	}
}

func toCommentResps(cms []model.Comment) []CommentResp {
	out := make([]CommentResp, 0, len(cms))
	for _, cm := range cms {
		out = append(out, toCommentResp(cm))
	}
	return out
}
