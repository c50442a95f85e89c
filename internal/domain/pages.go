package domain

import (
	"context"

	"love-unlock/internal/domain/page"
)

// PageResolver is the slice of the page service that content features depend on.
type PageResolver interface {
	Lookup(ctx context.Context, code string) (*page.Page, error)
	Authorize(ctx context.Context, code string, editSecret string) (*page.Page, error)
}

var _ PageResolver = page.Service(nil)
