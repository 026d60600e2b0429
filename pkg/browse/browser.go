// Package browse implements the catalog browsing engine: it owns the query
// intent, derives the canonical remote request from it, reconciles
// out-of-order responses, and manages the single open detail/review session.
package browse

import (
	"context"
	"errors"
	"sync"

	"github.com/kholland/moviedeck/pkg/cache"
	"github.com/kholland/moviedeck/pkg/logger"
	"github.com/kholland/moviedeck/pkg/moviesvc"
	"github.com/kholland/moviedeck/pkg/query"
	"go.uber.org/zap"
)

// ErrMovieNotInPage is returned when a session is requested for a movie id
// that is not part of the currently displayed page.
var ErrMovieNotInPage = errors.New("movie is not in the current catalog page")

// Browser ties the query state, the catalog, and the review session
// together. Every mutation of the query intent issues exactly one catalog
// refresh with the freshly compiled descriptor; the catalog decides whether
// the eventual response is still worth applying.
type Browser struct {
	client  moviesvc.ClientInterface
	state   *query.State
	catalog *Catalog
	session *Session

	mu         sync.Mutex
	genres     []moviesvc.Genre
	genreNames *cache.Cache[int, string]
}

func New(client moviesvc.ClientInterface) *Browser {
	return &Browser{
		client:     client,
		state:      query.NewState(),
		catalog:    NewCatalog(client),
		session:    newSession(client),
		genreNames: cache.New[int, string](),
	}
}

// State exposes the raw query intent for callers that want to stage several
// mutations before a single explicit Refresh, such as one-shot CLI commands.
func (b *Browser) State() *query.State {
	return b.state
}

// Session returns the single review session.
func (b *Browser) Session() *Session {
	return b.session
}

// Catalog returns the current catalog projection.
func (b *Browser) Catalog() CatalogView {
	return b.catalog.View()
}

// Refresh fetches the catalog for the current query intent. It is called
// once at startup and after every mutation.
func (b *Browser) Refresh(ctx context.Context) error {
	return b.catalog.Refresh(ctx, query.Compile(b.state.Snapshot()))
}

// SetGenre changes the genre filter and refreshes the catalog.
func (b *Browser) SetGenre(ctx context.Context, id *int) error {
	b.state.SetGenre(id)
	return b.Refresh(ctx)
}

// SetRating changes the minimum rating filter and refreshes the catalog.
func (b *Browser) SetRating(ctx context.Context, rating *int) error {
	b.state.SetRating(rating)
	return b.Refresh(ctx)
}

// SetYear changes the release year filter and refreshes the catalog.
func (b *Browser) SetYear(ctx context.Context, year *int) error {
	b.state.SetYear(year)
	return b.Refresh(ctx)
}

// RequestSort records a sort header click and refreshes the catalog.
func (b *Browser) RequestSort(ctx context.Context, field query.SortField) error {
	b.state.RequestSort(field)
	return b.Refresh(ctx)
}

// SetPageIndex moves to another page and refreshes the catalog.
func (b *Browser) SetPageIndex(ctx context.Context, index int) error {
	b.state.SetPageIndex(index)
	return b.Refresh(ctx)
}

// SetPageSize changes the displayed page size. The remote query does not
// carry a page size, so no refresh is issued.
func (b *Browser) SetPageSize(size int) {
	b.state.SetPageSize(size)
}

// Reset clears filters, sort, and pagination, then refreshes the catalog.
func (b *Browser) Reset(ctx context.Context) error {
	b.state.Reset()
	return b.Refresh(ctx)
}

// OpenMovie opens the review session for a movie of the displayed page.
func (b *Browser) OpenMovie(ctx context.Context, movieID int) error {
	for _, movie := range b.catalog.View().Page.Results {
		if movie.ID == movieID {
			return b.session.Open(ctx, movie)
		}
	}

	return ErrMovieNotInPage
}

// LoadGenres fetches the genre vocabulary once at startup. A failure is
// surfaced in the logs but is not fatal: the vocabulary stays empty and
// genre filtering is simply unavailable.
func (b *Browser) LoadGenres(ctx context.Context) {
	log := logger.FromCtx(ctx)

	list, err := b.client.ListGenres(ctx)
	if err != nil {
		log.Warn("genre vocabulary unavailable", zap.Error(err))
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.genres = list.Genres
	for _, g := range list.Genres {
		b.genreNames.Set(g.ID, g.Name)
	}
}

// Genres returns the loaded genre vocabulary.
func (b *Browser) Genres() []moviesvc.Genre {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.genres
}

// GenreName resolves a genre id against the loaded vocabulary.
func (b *Browser) GenreName(id int) (string, bool) {
	return b.genreNames.Get(id)
}
