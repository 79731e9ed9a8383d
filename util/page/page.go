// Package page is the offset pager shared by booking, item and request listings.
//
// The contract is "skip From rows, return up to Size rows": Offset returns the
// absolute From, not a page-index multiple. Offsets past the end of the result
// set yield an empty sequence, never an error.
package page

import "fmt"

type Page struct {
	From int
	Size int
}

// New validates the raw query parameters coming from the HTTP layer.
func New(from, size int) (Page, error) {
	if from < 0 {
		return Page{}, fmt.Errorf("from must be >= 0, got %d", from)
	}
	if size <= 0 {
		return Page{}, fmt.Errorf("size must be > 0, got %d", size)
	}
	return Page{From: from, Size: size}, nil
}

func (p Page) Offset() int { return p.From }
func (p Page) Limit() int  { return p.Size }
