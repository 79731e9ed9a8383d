package model

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	Owner       User   `json:"owner"`
	RequestID   *int64 `json:"request_id,omitempty"`
}

// NewItem is the creation payload; availability is mandatory at creation,
// hence the pointer only in the patch type below.
type NewItem struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

// ItemPatch follows the same present-or-absent semantics as UserPatch.
type ItemPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}
