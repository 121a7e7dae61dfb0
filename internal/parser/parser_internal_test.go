package parser

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsymba/refurbwatch/internal/models"
)

// mockRoundTripper — its a mock for http.RoundTripper.
type mockRoundTripper struct {
	response *http.Response
	err      error
}

func (m *mockRoundTripper) RoundTrip(_ *http.Request) (*http.Response, error) {
	return m.response, m.err
}

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p, err := NewParser(logger, "http://test.com", "https://www.apple.com", 16)
	require.NoError(t, err)
	return p
}

func listingRow(title, href, price, specs string) string {
	return `<tr class="product">
		<td><h3><a href="` + href + `">` + title + `</a></h3></td>
		<td class="specs"> ` + specs + ` </td>
		<td><span class="price"> ` + price + ` </span></td>
	</tr>`
}

// =============================================================================
// Tests for extraction and filtering logic
// =============================================================================

func TestMatchingListings(t *testing.T) {
	pageWith := func(rows ...string) string {
		return `<html><body><table><tbody>` + strings.Join(rows, "\n") + `</tbody></table></body></html>`
	}

	m1 := listingRow("MacBook Air", "/shop/product/1", "$849.00", "Apple M1 chip, 16GB RAM")
	m2 := listingRow("MacBook Air", "/shop/product/2", "$999.00", "Apple M2 chip, 16GB RAM")
	m1small := listingRow("MacBook Air", "/shop/product/3", "$749.00", "Apple M1 chip, 8GB RAM")

	testCases := []struct {
		name      string
		inputHTML string
		terms     []string
		expected  []models.Listing
	}{
		{
			name:      "only the fully matching listing survives",
			inputHTML: pageWith(m1, m2, m1small),
			terms:     []string{"M1", "16GB"},
			expected: []models.Listing{
				{
					Title: "MacBook Air",
					Link:  "https://www.apple.com/shop/product/1",
					Price: "$849.00",
					Specs: "Apple M1 chip, 16GB RAM",
				},
			},
		},
		{
			name:      "empty terms match everything in document order",
			inputHTML: pageWith(m1, m2),
			terms:     nil,
			expected: []models.Listing{
				{
					Title: "MacBook Air",
					Link:  "https://www.apple.com/shop/product/1",
					Price: "$849.00",
					Specs: "Apple M1 chip, 16GB RAM",
				},
				{
					Title: "MacBook Air",
					Link:  "https://www.apple.com/shop/product/2",
					Price: "$999.00",
					Specs: "Apple M2 chip, 16GB RAM",
				},
			},
		},
		{
			name:      "empty document yields no listings",
			inputHTML: "",
			terms:     []string{"M1"},
			expected:  []models.Listing(nil),
		},
		{
			name: "malformed row is skipped, later rows still parse",
			inputHTML: pageWith(
				`<tr class="product"><td class="specs">Apple M1 chip, 16GB RAM</td></tr>`,
				m1,
			),
			terms: []string{"M1", "16GB"},
			expected: []models.Listing{
				{
					Title: "MacBook Air",
					Link:  "https://www.apple.com/shop/product/1",
					Price: "$849.00",
					Specs: "Apple M1 chip, 16GB RAM",
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestParser(t)

			listings, err := p.MatchingListings(t.Context(), strings.NewReader(tc.inputHTML), tc.terms)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, listings)
		})
	}
}

func TestSpecsOfMemoization(t *testing.T) {
	p := newTestParser(t)

	page := `<html><body><table><tbody>` +
		listingRow("MacBook Pro", "/shop/product/9", "$1,499.00", "Apple M1 Pro chip, 16GB RAM") +
		`</tbody></table></body></html>`

	listings, err := p.MatchingListings(t.Context(), strings.NewReader(page), []string{"M1"})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Apple M1 Pro chip, 16GB RAM", listings[0].Specs)

	// The row is extracted twice per pass (filter, then build) but cached once.
	assert.Equal(t, 1, p.specs.Len())

	// A fresh pass over a new document must not see the old node keys.
	_, err = p.MatchingListings(t.Context(), strings.NewReader("<html></html>"), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, p.specs.Len())
}

// =============================================================================
// Tests for network logic
// =============================================================================

func TestGetHTMLResponse(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := t.Context()

	testCases := []struct {
		name           string
		mockResponse   *http.Response
		mockError      error
		parserURL      string
		expectError    bool
		expectedErrMsg string
	}{
		{
			name: "Successful request (200 OK)",
			mockResponse: &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader("OK")),
			},
			mockError:   nil,
			parserURL:   "http://test.com",
			expectError: false,
		},
		{
			name: "Server Error (500)",
			mockResponse: &http.Response{
				StatusCode: http.StatusInternalServerError,
				Status:     "500 Internal Server Error",
				Body:       io.NopCloser(strings.NewReader("Error")),
			},
			mockError:      nil,
			parserURL:      "http://test.com",
			expectError:    true,
			expectedErrMsg: "status code error: [500]",
		},
		{
			name:           "Network error",
			mockResponse:   nil,
			mockError:      errors.New("connection failed"),
			parserURL:      "http://test.com",
			expectError:    true,
			expectedErrMsg: "connection failed",
		},
		{
			name:           "Invalid URL in parser",
			parserURL:      "://invalid-url",
			expectError:    true,
			expectedErrMsg: "failed to parse destination URL",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewParser(logger, tc.parserURL, "", 16)
			require.NoError(t, err)
			p.client = &http.Client{
				Transport: &mockRoundTripper{
					response: tc.mockResponse,
					err:      tc.mockError,
				},
			}

			resp, err := p.GetHTMLResponse(ctx)

			if tc.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
				return
			}

			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}
