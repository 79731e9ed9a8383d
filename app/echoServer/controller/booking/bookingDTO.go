package booking

import (
	"time"

	"itemshare/model"
)

type CreateBookingReq struct {
	ItemID int64     `json:"itemId" validate:"required,gt=0"`
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required"`
}

type UserResp struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ItemResp struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResp struct {
	ID     int64     `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Booker UserResp  `json:"booker"`
	Item   ItemResp  `json:"item"`
}

func toBookingResp(b model.Booking) BookingResp {
	return BookingResp{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Booker: UserResp{ID: b.Booker.ID, Name: b.Booker.Name},
		Item:   ItemResp{ID: b.Item.ID, Name: b.Item.Name},
	}
}

func toBookingResps(bs []model.Booking) []BookingResp {
	out := make([]BookingResp, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBookingResp(b))
	}
	return out
}
