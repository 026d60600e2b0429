package browse

import (
	"context"
	"fmt"
	"sync"

	"github.com/kholland/moviedeck/pkg/logger"
	"github.com/kholland/moviedeck/pkg/moviesvc"
	"github.com/kholland/moviedeck/pkg/query"
	"go.uber.org/zap"
)

// Catalog reconciles overlapping catalog fetches. Responses are applied in
// request order, not completion order: each refresh is stamped with a
// monotonic sequence number at issue time and only the response matching the
// latest issued number is published. A slow early response can never
// overwrite a fast later one.
type Catalog struct {
	client moviesvc.ClientInterface

	mu      sync.Mutex
	issued  uint64
	page    moviesvc.MoviePage
	loading bool
}

// CatalogView is the read-only projection handed to presentation: the last
// accepted page plus whether the latest request is still in flight.
type CatalogView struct {
	Page    moviesvc.MoviePage `json:"page"`
	Loading bool               `json:"loading"`
}

func NewCatalog(client moviesvc.ClientInterface) *Catalog {
	return &Catalog{client: client}
}

// Refresh fetches the page described by desc and publishes it unless a newer
// refresh was issued in the meantime. An in-flight request is never aborted
// at the transport level; a superseded result is simply discarded. On
// failure the previously published page is kept, so callers always see a
// consistent last-known-good catalog.
func (c *Catalog) Refresh(ctx context.Context, desc query.Descriptor) error {
	log := logger.FromCtx(ctx)

	c.mu.Lock()
	c.issued++
	seq := c.issued
	c.loading = true
	c.mu.Unlock()

	page, err := c.client.DiscoverMovies(ctx, desc)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.issued {
		log.Debugw("discarding stale catalog response", "seq", seq, "latest", c.issued)
		return nil
	}

	// the latest request settled; loading resolves regardless of outcome
	c.loading = false

	if err != nil {
		log.Error("catalog refresh failed", zap.Error(err))
		return fmt.Errorf("refreshing catalog: %w", err)
	}

	c.page = *page
	return nil
}

// View returns the current catalog projection.
func (c *Catalog) View() CatalogView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CatalogView{
		Page:    c.page,
		Loading: c.loading,
	}
}
