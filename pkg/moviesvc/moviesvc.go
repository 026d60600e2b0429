// Package moviesvc is a client for the remote movie catalog service. The
// service owns ordering and membership of the catalog: pages are published
// to callers exactly as returned.
package moviesvc

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/oapi-codegen/nullable"
)

// Genre is one entry of the filter vocabulary.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreList is the response shape of the genre vocabulary endpoint.
type GenreList struct {
	Genres []Genre `json:"genres"`
}

// Movie is a single catalog item. Immutable once fetched.
type Movie struct {
	ID          int                       `json:"id"`
	Title       string                    `json:"title"`
	ReleaseDate string                    `json:"release_date"`
	PosterPath  nullable.Nullable[string] `json:"poster_path,omitempty"`
	Overview    string                    `json:"overview"`
	VoteAverage float64                   `json:"vote_average"`
}

// MoviePage is one page of catalog results together with its pagination
// metadata. Pages are replaced wholesale, never merged.
type MoviePage struct {
	Page         int     `json:"page"`
	TotalResults int     `json:"total_results"`
	TotalPages   int     `json:"total_pages"`
	Results      []Movie `json:"results"`
}

// Review is a reader-submitted rating and text for one movie.
type Review struct {
	UserRating float64   `json:"user_rating"`
	Review     string    `json:"review"`
	CreatedAt  time.Time `json:"created_at"`
}

// RateMovieRequest is the body of the review creation endpoint.
type RateMovieRequest struct {
	MovieID    int     `json:"movieId"`
	UserRating float64 `json:"userRating"`
	Review     string  `json:"review"`
}

func parseMoviePageResponse(res *http.Response) (*MoviePage, error) {
	b, err := readOKBody(res)
	if err != nil {
		return nil, err
	}

	page := new(MoviePage)
	err = json.Unmarshal(b, page)
	return page, err
}

func parseGenreListResponse(res *http.Response) (*GenreList, error) {
	b, err := readOKBody(res)
	if err != nil {
		return nil, err
	}

	list := new(GenreList)
	err = json.Unmarshal(b, list)
	return list, err
}

func parseReviewsResponse(res *http.Response) ([]Review, error) {
	b, err := readOKBody(res)
	if err != nil {
		return nil, err
	}

	var reviews []Review
	err = json.Unmarshal(b, &reviews)
	return reviews, err
}

func readOKBody(res *http.Response) ([]byte, error) {
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected movie service status: %s", res.Status)
	}

	return io.ReadAll(res.Body)
}
