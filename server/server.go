package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/kholland/moviedeck/pkg/browse"
	"github.com/kholland/moviedeck/pkg/logger"
	"github.com/kholland/moviedeck/pkg/query"
	"go.uber.org/zap"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type GenericResponse struct {
	Error    *string `json:"error,omitempty"`
	Response any     `json:"response"`
}

// Server exposes the browsing engine to a single-user frontend: the catalog
// projection, the query mutation surface, and the review session.
type Server struct {
	baseLogger *zap.SugaredLogger
	browser    *browse.Browser
}

// New creates a new moviedeck server
func New(logger *zap.SugaredLogger, browser *browse.Browser) Server {
	return Server{
		baseLogger: logger,
		browser:    browser,
	}
}

func writeGenericResponse(w http.ResponseWriter, status int) error {
	return writeResponse(w, status, GenericResponse{})
}

func writeErrorResponse(w http.ResponseWriter, status int, err error) error {
	msg := err.Error()
	return writeResponse(w, status, GenericResponse{
		Error: &msg,
	})
}

func writeResponse(w http.ResponseWriter, status int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	w.Header().Set("content-type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	w.Write(b)
	return nil
}

// Handler builds the http routes
func (s Server) Handler() http.Handler {
	rtr := mux.NewRouter()
	rtr.Use(s.LogMiddleware())
	rtr.HandleFunc("/healthz", s.Healthz()).Methods(http.MethodGet)

	api := rtr.PathPrefix("/api").Subrouter()
	v1 := api.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/catalog", s.GetCatalog()).Methods(http.MethodGet)
	v1.HandleFunc("/genres", s.ListGenres()).Methods(http.MethodGet)

	v1.HandleFunc("/query/genre", s.SetGenre()).Methods(http.MethodPost)
	v1.HandleFunc("/query/rating", s.SetRating()).Methods(http.MethodPost)
	v1.HandleFunc("/query/year", s.SetYear()).Methods(http.MethodPost)
	v1.HandleFunc("/query/sort", s.RequestSort()).Methods(http.MethodPost)
	v1.HandleFunc("/query/page", s.SetPage()).Methods(http.MethodPost)
	v1.HandleFunc("/query/pageSize", s.SetPageSize()).Methods(http.MethodPost)
	v1.HandleFunc("/query/reset", s.ResetQuery()).Methods(http.MethodPost)

	v1.HandleFunc("/session", s.OpenSession()).Methods(http.MethodPost)
	v1.HandleFunc("/session", s.GetSession()).Methods(http.MethodGet)
	v1.HandleFunc("/session", s.CloseSession()).Methods(http.MethodDelete)
	v1.HandleFunc("/session/draft", s.UpdateDraft()).Methods(http.MethodPut)
	v1.HandleFunc("/session/submit", s.SubmitReview()).Methods(http.MethodPost)

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
	)(rtr)
}

// Serve starts the http server and is a blocking call
func (s Server) Serve(port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Handler(),
	}

	go func() {
		s.baseLogger.Info("serving...", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil {
			s.baseLogger.Error(err.Error())
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	return srv.Shutdown(ctx)
}

// Healthz is an endpoint that can be used for probes
func (s Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, http.StatusOK, GenericResponse{
			Response: "ok",
		})
	}
}

// GetCatalog returns the latest accepted catalog page and the loading flag
func (s Server) GetCatalog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeCatalog(w, r, nil)
	}
}

// ListGenres returns the loaded genre vocabulary
func (s Server) ListGenres() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		err := writeResponse(w, http.StatusOK, GenericResponse{Response: s.browser.Genres()})
		if err != nil {
			log.Error("failed to write response", zap.Error(err))
		}
	}
}

// SetGenre changes the genre filter; a null value clears it
func (s Server) SetGenre() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request struct {
			Genre *int `json:"genre"`
		}
		if !decodeBody(w, r, &request) {
			return
		}

		s.writeCatalog(w, r, s.browser.SetGenre(r.Context(), request.Genre))
	}
}

// SetRating changes the minimum rating filter; a null value clears it
func (s Server) SetRating() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request struct {
			Rating *int `json:"rating"`
		}
		if !decodeBody(w, r, &request) {
			return
		}

		s.writeCatalog(w, r, s.browser.SetRating(r.Context(), request.Rating))
	}
}

// SetYear changes the release year filter; a null value clears it
func (s Server) SetYear() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request struct {
			Year *int `json:"year"`
		}
		if !decodeBody(w, r, &request) {
			return
		}

		s.writeCatalog(w, r, s.browser.SetYear(r.Context(), request.Year))
	}
}

// RequestSort records a sort header click
func (s Server) RequestSort() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request struct {
			Field query.SortField `json:"field"`
		}
		if !decodeBody(w, r, &request) {
			return
		}

		if request.Field != query.SortFieldTitle && request.Field != query.SortFieldRating {
			writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("unknown sort field: %q", request.Field))
			return
		}

		s.writeCatalog(w, r, s.browser.RequestSort(r.Context(), request.Field))
	}
}

// SetPage moves to a zero-based page index
func (s Server) SetPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request struct {
			Index int `json:"index"`
		}
		if !decodeBody(w, r, &request) {
			return
		}

		if request.Index < 0 {
			writeErrorResponse(w, http.StatusBadRequest, errors.New("page index must not be negative"))
			return
		}

		s.writeCatalog(w, r, s.browser.SetPageIndex(r.Context(), request.Index))
	}
}

// SetPageSize changes the displayed page size without a fetch
func (s Server) SetPageSize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request struct {
			Size int `json:"size"`
		}
		if !decodeBody(w, r, &request) {
			return
		}

		if request.Size <= 0 {
			writeErrorResponse(w, http.StatusBadRequest, errors.New("page size must be positive"))
			return
		}

		s.browser.SetPageSize(request.Size)
		s.writeCatalog(w, r, nil)
	}
}

// ResetQuery clears filters, sort, and pagination
func (s Server) ResetQuery() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeCatalog(w, r, s.browser.Reset(r.Context()))
	}
}

// OpenSession opens the review session for a movie of the displayed page
func (s Server) OpenSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request struct {
			MovieID int `json:"movieId"`
		}
		if !decodeBody(w, r, &request) {
			return
		}

		err := s.browser.OpenMovie(r.Context(), request.MovieID)
		if errors.Is(err, browse.ErrMovieNotInPage) {
			writeErrorResponse(w, http.StatusNotFound, err)
			return
		}

		s.writeSession(w, r, err)
	}
}

// GetSession returns the review session state
func (s Server) GetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeSession(w, r, nil)
	}
}

// CloseSession discards the open session
func (s Server) CloseSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.browser.Session().Close()
		writeGenericResponse(w, http.StatusOK)
	}
}

// UpdateDraft mutates the review draft of the open session
func (s Server) UpdateDraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request struct {
			Rating *float64 `json:"rating"`
			Text   *string  `json:"text"`
		}
		if !decodeBody(w, r, &request) {
			return
		}

		session := s.browser.Session()
		if request.Rating != nil {
			session.SetDraftRating(*request.Rating)
		}
		if request.Text != nil {
			session.SetDraftText(*request.Text)
		}

		s.writeSession(w, r, nil)
	}
}

// SubmitReview sends the draft as a new review
func (s Server) SubmitReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeSession(w, r, s.browser.Session().Submit(r.Context()))
	}
}

// writeCatalog responds with the catalog projection. A failed refresh is
// reported alongside the last-known-good page instead of replacing it.
func (s Server) writeCatalog(w http.ResponseWriter, r *http.Request, refreshErr error) {
	log := logger.FromCtx(r.Context())

	resp := GenericResponse{Response: s.browser.Catalog()}
	if refreshErr != nil {
		msg := refreshErr.Error()
		resp.Error = &msg
	}

	if err := writeResponse(w, http.StatusOK, resp); err != nil {
		log.Error("failed to write response", zap.Error(err))
	}
}

func (s Server) writeSession(w http.ResponseWriter, r *http.Request, opErr error) {
	log := logger.FromCtx(r.Context())

	resp := GenericResponse{Response: s.browser.Session().View()}
	if opErr != nil {
		msg := opErr.Error()
		resp.Error = &msg
	}

	if err := writeResponse(w, http.StatusOK, resp); err != nil {
		log.Error("failed to write response", zap.Error(err))
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, into any) bool {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, errors.New("invalid request body"))
		return false
	}

	if err := json.Unmarshal(b, into); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, errors.New("invalid request body"))
		return false
	}

	return true
}
