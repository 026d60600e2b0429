package query

import "sync"

// SortField is a column the remote side knows how to order by.
type SortField string

const (
	SortFieldTitle  SortField = "title"
	SortFieldRating SortField = "vote_average"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

const DefaultPageSize = 10

// State holds the user's current query intent: filters, sort, and pagination.
// Mutators only record intent; issuing the resulting fetch is the caller's
// job (see browse.Browser). Changing a filter deliberately does not reset the
// page index: staying on page 3 while the filtered set shrinks can surface an
// empty page, matching the remote contract this engine was built against.
type State struct {
	mu        sync.Mutex
	genre     *int
	rating    *int
	year      *int
	sortField *SortField
	sortDir   *SortDirection
	pageIndex int
	pageSize  int
}

// Snapshot is a point-in-time copy of State, safe to read without locking.
type Snapshot struct {
	Genre         *int
	Rating        *int
	Year          *int
	SortField     *SortField
	SortDirection *SortDirection
	PageIndex     int
	PageSize      int
}

// NewState returns the startup query intent: no filters, no sort field,
// ascending direction, first page.
func NewState() *State {
	asc := SortAsc
	return &State{
		sortDir:  &asc,
		pageSize: DefaultPageSize,
	}
}

// SetGenre filters the catalog by genre id. A nil id clears the filter.
func (s *State) SetGenre(id *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.genre = id
}

// SetRating filters the catalog by minimum rating. A nil rating clears the filter.
func (s *State) SetRating(rating *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rating = rating
}

// SetYear filters the catalog by release year. A nil year clears the filter.
func (s *State) SetYear(year *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.year = year
}

// RequestSort records a sort header click. Re-selecting the active field
// flips the direction; selecting a new field forces ascending.
func (s *State) RequestSort(field SortField) {
	s.mu.Lock()
	defer s.mu.Unlock()

	isAsc := s.sortField != nil && *s.sortField == field &&
		s.sortDir != nil && *s.sortDir == SortAsc

	dir := SortAsc
	if isAsc {
		dir = SortDesc
	}

	s.sortField = &field
	s.sortDir = &dir
}

// SetPageIndex moves to a zero-based page.
func (s *State) SetPageIndex(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageIndex = index
}

// SetPageSize changes how many rows a page displays. The remote query does
// not carry a page size, so this never requires a fetch.
func (s *State) SetPageSize(size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageSize = size
}

// Reset clears every filter, clears the sort field and direction, and
// returns to the first page.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.genre = nil
	s.rating = nil
	s.year = nil
	s.sortField = nil
	s.sortDir = nil
	s.pageIndex = 0
}

// Snapshot copies the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Genre:         s.genre,
		Rating:        s.rating,
		Year:          s.year,
		SortField:     s.sortField,
		SortDirection: s.sortDir,
		PageIndex:     s.pageIndex,
		PageSize:      s.pageSize,
	}
}
