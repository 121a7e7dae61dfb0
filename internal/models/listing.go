package models

import "strings"

// Listing is one refurbished product entry from the listing page.
type Listing struct {
	Title string
	Link  string
	Price string
	Specs string
}

// Key returns the dedup identity of the listing. By default all four fields
// participate, so a price change makes the listing count as new again. With
// byLink the link alone identifies the listing.
func (l Listing) Key(byLink bool) string {
	if byLink {
		return l.Link
	}
	return strings.Join([]string{l.Title, l.Link, l.Price, l.Specs}, "\x1f")
}

// String formats the listing for log output.
func (l Listing) String() string {
	return l.Title + " | " + l.Price + " | " + l.Specs + " | " + l.Link
}
