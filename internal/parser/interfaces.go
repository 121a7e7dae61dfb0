package parser

import (
	"context"
	"io"
	"net/http"

	"github.com/tsymba/refurbwatch/internal/models"
)

// HTMLParser is the fetching and extraction contract consumed by the watcher.
type HTMLParser interface {
	// GetHTMLResponse issues one GET to the configured listing page.
	GetHTMLResponse(ctx context.Context) (*http.Response, error)
	// MatchingListings extracts the listings matching every term, in document order.
	MatchingListings(ctx context.Context, inp io.Reader, terms []string) ([]models.Listing, error)
}
