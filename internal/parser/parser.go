package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tsymba/refurbwatch/internal/matcher"
	"github.com/tsymba/refurbwatch/internal/models"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

// ErrMalformedListing indicates a listing row missing a required sub-element.
var ErrMalformedListing = errors.New("listing is missing a required element")

type Parser struct {
	log     *slog.Logger
	client  *http.Client
	limiter *rate.Limiter
	destURL string
	baseURL string
	// specs memoizes extraction per listing node. Keys are node pointers,
	// valid only within one document, so the cache is purged per parse pass.
	specs *lru.Cache[*html.Node, string]
}

func NewParser(log *slog.Logger, destinationURL, baseURL string, cacheSize int) (*Parser, error) {
	cache, err := lru.New[*html.Node, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create specs cache: %w", err)
	}

	return &Parser{
		log:     log,
		client:  http.DefaultClient,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		destURL: destinationURL,
		baseURL: baseURL,
		specs:   cache,
	}, nil
}

func (p *Parser) GetHTMLResponse(ctx context.Context) (*http.Response, error) {
	reqURL, err := url.Parse(p.destURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse destination URL %s: %w", p.destURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new request %s: %w", reqURL.String(), err)
	}

	req.Header.Add("User-Agent", "Mozilla/5.0 (compatible; GoHttpClient/1.0)")

	if err = p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter interrupted: %w", err)
	}

	p.log.DebugContext(ctx, "Send request", "method", req.Method, "URL", req.URL, "header", req.Header)

	res, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request %s: %w", p.destURL, err)
	}

	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, fmt.Errorf("status code error: [%d] %s", res.StatusCode, res.Status)
	}

	p.log.DebugContext(ctx, "Successfully received http response", "status code", res.StatusCode)

	return res, nil
}

// MatchingListings parses the page body and returns the listings whose specs
// contain every term, in document order. Specs are tested before a listing is
// built, so non-matching rows are never materialized. Rows missing a required
// element are logged and skipped.
func (p *Parser) MatchingListings(ctx context.Context, inp io.Reader, terms []string) ([]models.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(inp)
	if err != nil {
		return nil, fmt.Errorf("data cannot be parsed as HTML: %w", err)
	}

	// Cached node keys belong to the previous document; drop them.
	p.specs.Purge()

	var listings []models.Listing
	doc.Find("tr.product").Each(func(idx int, s *goquery.Selection) {
		specs := p.specsOf(s)
		if !matcher.Matches(specs, terms) {
			return
		}

		listing, buildErr := p.buildListing(s)
		if buildErr != nil {
			p.log.WarnContext(ctx, "Skipping malformed listing", "index", idx, "error", buildErr)
			return
		}

		p.log.DebugContext(ctx, "Parsed listing", "Title", listing.Title, "Price", listing.Price)
		listings = append(listings, listing)
	})

	return listings, nil
}

// specsOf extracts and trims the free-text specs cell of a listing row. The
// same row is hit twice per cycle (filter, then build), hence the memoization.
func (p *Parser) specsOf(s *goquery.Selection) string {
	if len(s.Nodes) == 0 {
		return ""
	}

	node := s.Nodes[0]
	if cached, ok := p.specs.Get(node); ok {
		return cached
	}

	specs := strings.TrimSpace(s.Find("td.specs").Text())
	p.specs.Add(node, specs)

	return specs
}

func (p *Parser) buildListing(s *goquery.Selection) (models.Listing, error) {
	header := s.Find("h3 a").First()
	if header.Length() == 0 {
		return models.Listing{}, fmt.Errorf("%w: title header", ErrMalformedListing)
	}

	href, ok := header.Attr("href")
	if !ok {
		return models.Listing{}, fmt.Errorf("%w: header href", ErrMalformedListing)
	}

	price := s.Find("span.price").First()
	if price.Length() == 0 {
		return models.Listing{}, fmt.Errorf("%w: price", ErrMalformedListing)
	}

	if s.Find("td.specs").Length() == 0 {
		return models.Listing{}, fmt.Errorf("%w: specs", ErrMalformedListing)
	}

	return models.Listing{
		Title: strings.TrimSpace(header.Text()),
		Link:  p.baseURL + href,
		Price: strings.TrimSpace(price.Text()),
		Specs: p.specsOf(s),
	}, nil
}
