package browse

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/kholland/moviedeck/pkg/logger"
	"github.com/kholland/moviedeck/pkg/machine"
	"github.com/kholland/moviedeck/pkg/moviesvc"
	"go.uber.org/zap"
)

// Phase is where a review session is in its lifecycle.
type Phase string

const (
	PhaseClosed     Phase = "closed"
	PhaseOpen       Phase = "open"
	PhaseSubmitting Phase = "submitting"
)

// Draft is the in-progress review a user is composing. Ratings move in half
// steps between 0 and 5.
type Draft struct {
	Rating float64 `json:"rating" validate:"gte=0,lte=5,halfstep"`
	Text   string  `json:"text"`
}

// Session is the scoped state of one selected movie's detail view: its
// reviews and the review draft. At most one movie is open at a time;
// opening a new one tears the previous session down. Completions of remote
// calls are keyed by (movie id, open epoch) so a response belonging to a
// closed or reopened session is discarded instead of leaking into the
// wrong one.
type Session struct {
	client   moviesvc.ClientInterface
	validate *validator.Validate

	mu      sync.Mutex
	phase   *machine.Machine[Phase]
	epoch   uint64
	movie   moviesvc.Movie
	reviews []moviesvc.Review
	draft   Draft
}

// SessionView is a read-only copy of the session for presentation.
type SessionView struct {
	Phase      Phase             `json:"phase"`
	Movie      moviesvc.Movie    `json:"movie"`
	Reviews    []moviesvc.Review `json:"reviews"`
	Draft      Draft             `json:"draft"`
	Submitting bool              `json:"submitting"`
}

func newSession(client moviesvc.ClientInterface) *Session {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// ratings snap to half steps
	_ = validate.RegisterValidation("halfstep", func(fl validator.FieldLevel) bool {
		return math.Mod(fl.Field().Float()*2, 1) == 0
	})

	return &Session{
		client:   client,
		validate: validate,
		phase: machine.New(PhaseClosed,
			machine.From(PhaseClosed).To(PhaseOpen),
			machine.From(PhaseOpen).To(PhaseClosed, PhaseSubmitting),
			machine.From(PhaseSubmitting).To(PhaseOpen, PhaseClosed),
		),
	}
}

// Open starts a session for the given movie and fetches its reviews. An
// already open session is torn down first.
func (s *Session) Open(ctx context.Context, movie moviesvc.Movie) error {
	s.mu.Lock()
	if s.phase.Current() != PhaseClosed {
		s.teardownLocked()
	}
	if err := s.phase.Transition(PhaseOpen); err != nil {
		s.mu.Unlock()
		return err
	}
	s.epoch++
	epoch := s.epoch
	s.movie = movie
	s.reviews = nil
	s.draft = Draft{}
	s.mu.Unlock()

	return s.fetchReviews(ctx, movie.ID, epoch)
}

// Close discards the session's reviews and draft. Remote calls still in
// flight for the closed session resolve into nothing.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase.Current() == PhaseClosed {
		return
	}
	s.teardownLocked()
}

// SetDraftRating updates the draft rating. A no-op when no session is open.
func (s *Session) SetDraftRating(rating float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase.Current() == PhaseClosed {
		return
	}
	s.draft.Rating = rating
}

// SetDraftText updates the draft text. A no-op when no session is open.
func (s *Session) SetDraftText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase.Current() == PhaseClosed {
		return
	}
	s.draft.Text = text
}

// Submit sends the draft as a new review. It is a no-op while a submission
// is already in flight or when no session is open, which keeps rapid
// repeated clicks down to a single remote write. On success the reviews are
// re-fetched for the canonical server-side view and the draft resets; on
// failure the draft is preserved so typed input is not lost.
func (s *Session) Submit(ctx context.Context) error {
	log := logger.FromCtx(ctx)

	s.mu.Lock()
	if s.phase.CanTransition(PhaseSubmitting) != nil {
		s.mu.Unlock()
		return nil
	}
	if err := s.validate.Struct(s.draft); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("invalid review draft: %w", err)
	}
	_ = s.phase.Transition(PhaseSubmitting)
	movieID := s.movie.ID
	epoch := s.epoch
	draft := s.draft
	s.mu.Unlock()

	err := s.client.RateMovie(ctx, moviesvc.RateMovieRequest{
		MovieID:    movieID,
		UserRating: draft.Rating,
		Review:     draft.Text,
	})

	s.mu.Lock()
	if !s.sameSessionLocked(movieID, epoch) {
		// the session was closed or reopened while the write was in flight
		s.mu.Unlock()
		return nil
	}
	_ = s.phase.Transition(PhaseOpen)
	if err != nil {
		s.mu.Unlock()
		log.Error("review submission failed", zap.Error(err))
		return fmt.Errorf("submitting review: %w", err)
	}
	s.draft = Draft{}
	s.mu.Unlock()

	return s.fetchReviews(ctx, movieID, epoch)
}

// View returns a copy of the session state.
func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionView{
		Phase:      s.phase.Current(),
		Movie:      s.movie,
		Reviews:    s.reviews,
		Draft:      s.draft,
		Submitting: s.phase.Current() == PhaseSubmitting,
	}
}

// fetchReviews loads the reviews of movieID and applies them only if the
// session that requested them is still the open one.
func (s *Session) fetchReviews(ctx context.Context, movieID int, epoch uint64) error {
	log := logger.FromCtx(ctx)

	reviews, err := s.client.ListReviews(ctx, movieID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.sameSessionLocked(movieID, epoch) {
		log.Debugw("discarding review response for stale session", "movieID", movieID, "epoch", epoch)
		return nil
	}

	if err != nil {
		log.Error("review fetch failed", zap.Error(err))
		return fmt.Errorf("fetching reviews: %w", err)
	}

	// replaced wholesale, server order preserved
	s.reviews = reviews
	return nil
}

func (s *Session) sameSessionLocked(movieID int, epoch uint64) bool {
	return s.phase.Current() != PhaseClosed && s.movie.ID == movieID && s.epoch == epoch
}

func (s *Session) teardownLocked() {
	_ = s.phase.Transition(PhaseClosed)
	s.movie = moviesvc.Movie{}
	s.reviews = nil
	s.draft = Draft{}
}
