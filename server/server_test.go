package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kholland/moviedeck/pkg/browse"
	"github.com/kholland/moviedeck/pkg/moviesvc"
	"github.com/kholland/moviedeck/pkg/moviesvc/mocks"
	"github.com/kholland/moviedeck/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*httptest.Server, *mocks.MockClientInterface) {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := mocks.NewMockClientInterface(ctrl)
	srv := New(zap.NewNop().Sugar(), browse.New(client))

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return ts, client
}

func do(t *testing.T, ts *httptest.Server, method, path string, body any) (*http.Response, GenericResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)

	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var generic GenericResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&generic))
	return res, generic
}

func TestServer_Healthz(t *testing.T) {
	ts, _ := newTestServer(t)

	res, generic := do(t, ts, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ok", generic.Response)
}

func TestServer_QueryMutations(t *testing.T) {
	t.Run("genre filter refreshes and returns the catalog", func(t *testing.T) {
		ts, client := newTestServer(t)

		page := moviesvc.MoviePage{
			Page:         1,
			TotalResults: 1,
			TotalPages:   1,
			Results:      []moviesvc.Movie{{ID: 7, Title: "Heat"}},
		}
		client.EXPECT().
			DiscoverMovies(gomock.Any(), query.Descriptor{Genre: "28", Page: 1, SortBy: "null.asc"}).
			Times(1).
			Return(&page, nil)

		res, generic := do(t, ts, http.MethodPost, "/api/v1/query/genre", map[string]any{"genre": 28})
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.Nil(t, generic.Error)

		b, err := json.Marshal(generic.Response)
		require.NoError(t, err)

		var view browse.CatalogView
		require.NoError(t, json.Unmarshal(b, &view))
		assert.False(t, view.Loading)
		require.Len(t, view.Page.Results, 1)
		assert.Equal(t, "Heat", view.Page.Results[0].Title)
	})

	t.Run("failed refresh keeps the last page and reports the error", func(t *testing.T) {
		ts, client := newTestServer(t)

		client.EXPECT().
			DiscoverMovies(gomock.Any(), gomock.Any()).
			Times(1).
			Return(nil, fmt.Errorf("upstream down"))

		res, generic := do(t, ts, http.MethodPost, "/api/v1/query/year", map[string]any{"year": 1999})
		assert.Equal(t, http.StatusOK, res.StatusCode)
		require.NotNil(t, generic.Error)
		assert.Contains(t, *generic.Error, "upstream down")
	})

	t.Run("unknown sort field is rejected", func(t *testing.T) {
		ts, _ := newTestServer(t)

		res, generic := do(t, ts, http.MethodPost, "/api/v1/query/sort", map[string]any{"field": "popularity"})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		require.NotNil(t, generic.Error)
	})

	t.Run("page size changes without a fetch", func(t *testing.T) {
		ts, _ := newTestServer(t)

		res, generic := do(t, ts, http.MethodPost, "/api/v1/query/pageSize", map[string]any{"size": 25})
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Nil(t, generic.Error)
	})

	t.Run("negative page index is rejected", func(t *testing.T) {
		ts, _ := newTestServer(t)

		res, _ := do(t, ts, http.MethodPost, "/api/v1/query/page", map[string]any{"index": -1})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("reset compiles the fully cleared descriptor", func(t *testing.T) {
		ts, client := newTestServer(t)

		client.EXPECT().
			DiscoverMovies(gomock.Any(), query.Descriptor{Page: 1, SortBy: "null.null"}).
			Times(1).
			Return(&moviesvc.MoviePage{}, nil)

		res, generic := do(t, ts, http.MethodPost, "/api/v1/query/reset", nil)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Nil(t, generic.Error)
	})
}

func TestServer_Session(t *testing.T) {
	openSession := func(t *testing.T, ts *httptest.Server, client *mocks.MockClientInterface) {
		t.Helper()

		page := moviesvc.MoviePage{Results: []moviesvc.Movie{{ID: 7, Title: "Heat"}}}
		client.EXPECT().DiscoverMovies(gomock.Any(), gomock.Any()).Times(1).Return(&page, nil)
		client.EXPECT().ListReviews(gomock.Any(), 7).Times(1).Return([]moviesvc.Review{}, nil)

		res, _ := do(t, ts, http.MethodPost, "/api/v1/query/page", map[string]any{"index": 0})
		require.Equal(t, http.StatusOK, res.StatusCode)

		res, generic := do(t, ts, http.MethodPost, "/api/v1/session", map[string]any{"movieId": 7})
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.Nil(t, generic.Error)
	}

	t.Run("opening a movie outside the page is a 404", func(t *testing.T) {
		ts, client := newTestServer(t)

		client.EXPECT().DiscoverMovies(gomock.Any(), gomock.Any()).Times(1).Return(&moviesvc.MoviePage{}, nil)
		res, _ := do(t, ts, http.MethodPost, "/api/v1/query/page", map[string]any{"index": 0})
		require.Equal(t, http.StatusOK, res.StatusCode)

		res, generic := do(t, ts, http.MethodPost, "/api/v1/session", map[string]any{"movieId": 999})
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		require.NotNil(t, generic.Error)
	})

	t.Run("open, draft, submit", func(t *testing.T) {
		ts, client := newTestServer(t)
		openSession(t, ts, client)

		res, generic := do(t, ts, http.MethodPut, "/api/v1/session/draft", map[string]any{"rating": 4.5, "text": "tight pacing"})
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.Nil(t, generic.Error)

		client.EXPECT().
			RateMovie(gomock.Any(), moviesvc.RateMovieRequest{MovieID: 7, UserRating: 4.5, Review: "tight pacing"}).
			Times(1).
			Return(nil)
		client.EXPECT().
			ListReviews(gomock.Any(), 7).
			Times(1).
			Return([]moviesvc.Review{{UserRating: 4.5, Review: "tight pacing"}}, nil)

		res, generic = do(t, ts, http.MethodPost, "/api/v1/session/submit", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.Nil(t, generic.Error)

		b, err := json.Marshal(generic.Response)
		require.NoError(t, err)

		var view browse.SessionView
		require.NoError(t, json.Unmarshal(b, &view))
		assert.Equal(t, browse.PhaseOpen, view.Phase)
		assert.Zero(t, view.Draft.Rating)
		require.Len(t, view.Reviews, 1)
	})

	t.Run("off grid rating is surfaced as an error", func(t *testing.T) {
		ts, client := newTestServer(t)
		openSession(t, ts, client)

		res, generic := do(t, ts, http.MethodPut, "/api/v1/session/draft", map[string]any{"rating": 4.3})
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.Nil(t, generic.Error)

		res, generic = do(t, ts, http.MethodPost, "/api/v1/session/submit", nil)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		require.NotNil(t, generic.Error)
		assert.Contains(t, *generic.Error, "invalid review draft")
	})

	t.Run("close tears the session down", func(t *testing.T) {
		ts, client := newTestServer(t)
		openSession(t, ts, client)

		res, generic := do(t, ts, http.MethodDelete, "/api/v1/session", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.Nil(t, generic.Error)

		_, generic = do(t, ts, http.MethodGet, "/api/v1/session", nil)
		b, err := json.Marshal(generic.Response)
		require.NoError(t, err)

		var view browse.SessionView
		require.NoError(t, json.Unmarshal(b, &view))
		assert.Equal(t, browse.PhaseClosed, view.Phase)
	})
}

func TestServer_ListGenres(t *testing.T) {
	ts, client := newTestServer(t)

	client.EXPECT().ListGenres(gomock.Any()).Times(1).Return(&moviesvc.GenreList{
		Genres: []moviesvc.Genre{{ID: 28, Name: "Action"}},
	}, nil)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/genres", nil)
	require.NoError(t, err)

	// populate the vocabulary through the browser before listing
	browser := browse.New(client)
	browser.LoadGenres(req.Context())

	srv := New(zap.NewNop().Sugar(), browser)
	rec := httptest.NewRecorder()
	srv.ListGenres()(rec, req)

	var generic GenericResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&generic))

	b, err := json.Marshal(generic.Response)
	require.NoError(t, err)

	var genres []moviesvc.Genre
	require.NoError(t, json.Unmarshal(b, &genres))
	require.Len(t, genres, 1)
	assert.Equal(t, "Action", genres[0].Name)
}
