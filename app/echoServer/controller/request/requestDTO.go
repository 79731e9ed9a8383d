package request

import (
	"time"

	requestsvc "itemshare/service/request"
)

type CreateRequestReq struct {
	Description string `json:"description" validate:"required,notblank"`
}

// ItemResp here is deliberately flat: items fulfilling a request render
// without booking projections.
type ItemResp struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

type RequestResp struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	Created     time.Time  `json:"created"`
	Items       []ItemResp `json:"items"`
}

func toRequestResp(d requestsvc.Details) RequestResp {
	items := make([]ItemResp, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, ItemResp{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Available:   it.Available,
			RequestID:   it.RequestID,
		})
	}
	return RequestResp{
		ID:          d.Request.ID,
		Description: d.Request.Description,
		Created:     d.Request.Created,
		Items:       items,
	}
}

func toRequestResps(ds []requestsvc.Details) []RequestResp {
	out := make([]RequestResp, 0, len(ds))
	for _, d := range ds {
		out = append(out, toRequestResp(d))
	}
	return out
}
