package query

import (
	"net/url"
	"strconv"
)

// unset is what an absent sort field or direction contributes to the sort
// token. The remote contract expects the literal string, so a state with no
// sort active yields "null.null". Treat the token as opaque.
const unset = "null"

// Descriptor is the canonical remote request derived from a state snapshot.
// It is immutable; a new one is compiled after every state mutation.
type Descriptor struct {
	Genre  string
	Rating string
	Year   string
	Page   int
	SortBy string
}

// Compile maps a state snapshot to the exact parameter set sent remotely.
// It is pure: equal snapshots always compile to equal descriptors.
func Compile(s Snapshot) Descriptor {
	field := unset
	if s.SortField != nil {
		field = string(*s.SortField)
	}

	dir := unset
	if s.SortDirection != nil {
		dir = string(*s.SortDirection)
	}

	return Descriptor{
		Genre:  formatFilter(s.Genre),
		Rating: formatFilter(s.Rating),
		Year:   formatFilter(s.Year),
		Page:   s.PageIndex + 1,
		SortBy: field + "." + dir,
	}
}

// Values renders the descriptor as request query parameters. Unset filters
// are sent as empty values and sortBy is always present, per the remote
// contract.
func (d Descriptor) Values() url.Values {
	v := url.Values{}
	v.Set("genre", d.Genre)
	v.Set("rating", d.Rating)
	v.Set("year", d.Year)
	v.Set("page", strconv.Itoa(d.Page))
	v.Set("sortBy", d.SortBy)
	return v
}

func formatFilter(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}
