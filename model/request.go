package model

import "time"

// Request is an ask for an item that is not in the catalog yet. It is
// immutable once created; items created in fulfillment point back at it
// via Item.RequestID.
type Request struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
	Requester   User      `json:"requester"`
}
