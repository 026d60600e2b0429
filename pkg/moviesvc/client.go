package moviesvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	mhttp "github.com/kholland/moviedeck/pkg/http"
	"github.com/kholland/moviedeck/pkg/query"
)

// ClientInterface is the surface the browsing engine consumes.
type ClientInterface interface {
	ListGenres(ctx context.Context) (*GenreList, error)
	DiscoverMovies(ctx context.Context, desc query.Descriptor) (*MoviePage, error)
	ListReviews(ctx context.Context, movieID int) ([]Review, error)
	RateMovie(ctx context.Context, req RateMovieRequest) error
}

// RequestEditorFn can modify requests before they are sent.
type RequestEditorFn func(ctx context.Context, req *http.Request) error

// SetRequestAPIKey returns an editor that attaches a bearer token to every request.
func SetRequestAPIKey(apiKey string) RequestEditorFn {
	return func(ctx context.Context, req *http.Request) error {
		req.Header.Add("Authorization", "Bearer "+apiKey)
		req.Header.Add("accept", "application/json")
		return nil
	}
}

// Client talks to the movie service over HTTP.
type Client struct {
	baseURL *url.URL
	http    mhttp.HTTPClient
	editors []RequestEditorFn
}

var _ ClientInterface = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying transport.
func WithHTTPClient(client mhttp.HTTPClient) Option {
	return func(c *Client) {
		c.http = client
	}
}

// WithRequestEditorFn appends a request editor applied to every request.
func WithRequestEditorFn(fn RequestEditorFn) Option {
	return func(c *Client) {
		c.editors = append(c.editors, fn)
	}
}

// New creates a movie service client for the given base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}

	c := &Client{
		baseURL: u,
		http:    mhttp.NewRateLimitedClient(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// ListGenres fetches the genre vocabulary.
func (c *Client) ListGenres(ctx context.Context) (*GenreList, error) {
	res, err := c.get(ctx, "genres", nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	return parseGenreListResponse(res)
}

// DiscoverMovies fetches one page of the catalog described by desc.
func (c *Client) DiscoverMovies(ctx context.Context, desc query.Descriptor) (*MoviePage, error) {
	res, err := c.get(ctx, "movies", desc.Values())
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	return parseMoviePageResponse(res)
}

// ListReviews fetches the reviews of a movie in server order.
func (c *Client) ListReviews(ctx context.Context, movieID int) ([]Review, error) {
	res, err := c.get(ctx, "movies/"+strconv.Itoa(movieID)+"/reviews", nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	return parseReviewsResponse(res)
}

// RateMovie creates a review. The service reports only success or failure.
func (c *Client) RateMovie(ctx context.Context, rateReq RateMovieRequest) error {
	b, err := json.Marshal(rateReq)
	if err != nil {
		return fmt.Errorf("encoding rate request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "movies/rateMovie", nil, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected movie service status: %s", res.Status)
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, values url.Values) (*http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, values, nil)
	if err != nil {
		return nil, err
	}

	return c.http.Do(req)
}

func (c *Client) newRequest(ctx context.Context, method, path string, values url.Values, body *bytes.Reader) (*http.Request, error) {
	u := c.baseURL.JoinPath(path)
	if values != nil {
		u.RawQuery = values.Encode()
	}

	var reader = bytes.NewReader(nil)
	if body != nil {
		reader = body
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", path, err)
	}

	for _, edit := range c.editors {
		if err := edit(ctx, req); err != nil {
			return nil, err
		}
	}

	return req, nil
}
