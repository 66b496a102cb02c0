package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/emmanueladavize43/Gemini-cupid/internal/geo"
	"github.com/emmanueladavize43/Gemini-cupid/internal/models"
	"github.com/emmanueladavize43/Gemini-cupid/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// ErrNoViewer is returned when an operation needs a signed-in viewer
	ErrNoViewer = errors.New("no viewer signed in")
	// ErrUnknownDecision is returned by Swipe for a decision outside pass/like/superlike
	ErrUnknownDecision = errors.New("unknown swipe decision")
	// ErrNotPending is returned when accepting a profile that has no open request
	ErrNotPending = errors.New("no pending request from this profile")
	// ErrMatchNotFound is returned for messages addressed to an unknown match
	ErrMatchNotFound = errors.New("match not found")
	// ErrNotMember is returned when the sender does not belong to the match
	ErrNotMember = errors.New("sender is not part of this match")
	// ErrNotOwnProfile is returned when editing a profile other than the viewer's
	ErrNotOwnProfile = errors.New("only the viewer's own profile can be edited")
)

// Match sources used for metrics and logs
const (
	sourceSwipe   = "swipe"
	sourceRequest = "request"
	sourceForced  = "forced"
)

// Random is the source of the simulated counterpart's decisions
type Random interface {
	Float64() float64
}

// RandomFunc adapts a function to Random
type RandomFunc func() float64

// Float64 calls f
func (f RandomFunc) Float64() float64 { return f() }

// SessionOptions configures a Session
type SessionOptions struct {
	// UndoWindow is how long the last swipe stays undoable
	UndoWindow time.Duration
	// SimulateReciprocity lets an absent counterpart like back at random
	SimulateReciprocity  bool
	LikeProbability      float64
	SuperLikeProbability float64
	// Filters are the initial feed preferences; DefaultFilters when nil
	Filters *models.FilterPreferences

	Random  Random
	Clock   func() time.Time
	Metrics *Metrics
	Voice   VoiceStore
	Logger  *zerolog.Logger
}

// DefaultSessionOptions returns the demo defaults
func DefaultSessionOptions() SessionOptions {
	return SessionOptions{
		UndoWindow:           5 * time.Second,
		SimulateReciprocity:  true,
		LikeProbability:      0.30,
		SuperLikeProbability: 0.75,
	}
}

// SwipeResult describes what a swipe did
type SwipeResult struct {
	Profile  models.Profile
	Decision models.Decision
	// Match is set only when this swipe created a match
	Match *models.Match
}

// swipeRecord is the single undo slot
type swipeRecord struct {
	viewerID  int64
	profileID int64
	position  int
	decision  models.Decision
	at        time.Time

	likeAdded    bool
	superAdded   bool
	reverseAdded bool
	matchID      string
}

// Session is one viewer's matching state: feed preferences, deck cursor and undo slot
// on top of a ProfileStore. It has a single mutator and is not safe for concurrent use.
type Session struct {
	store   *repository.ProfileStore
	opts    SessionOptions
	random  Random
	now     func() time.Time
	metrics *Metrics
	voice   VoiceStore
	log     zerolog.Logger

	prefs  models.FilterPreferences
	coords *models.Coordinates
	passed map[int64]struct{}
	last   *swipeRecord
}

// NewSession creates a session over store
func NewSession(store *repository.ProfileStore, opts SessionOptions) *Session {
	if opts.UndoWindow <= 0 {
		opts.UndoWindow = DefaultSessionOptions().UndoWindow
	}

	s := &Session{
		store:   store,
		opts:    opts,
		random:  opts.Random,
		now:     opts.Clock,
		metrics: opts.Metrics,
		voice:   opts.Voice,
		log:     log.Logger,
		prefs:   DefaultFilters(),
		passed:  make(map[int64]struct{}),
	}
	if s.random == nil {
		s.random = RandomFunc(rand.Float64)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if opts.Logger != nil {
		s.log = *opts.Logger
	}
	if opts.Filters != nil {
		s.prefs = copyFilters(*opts.Filters)
	}

	return s
}

// Viewer returns the signed-in profile
func (s *Session) Viewer() (models.Profile, bool) {
	id := s.store.Viewer()
	if id == 0 {
		return models.Profile{}, false
	}
	return s.store.Profile(id)
}

// Filters returns the active feed preferences
func (s *Session) Filters() models.FilterPreferences {
	return copyFilters(s.prefs)
}

// ApplyFilters validates and installs prefs, then starts a new deck round
func (s *Session) ApplyFilters(prefs models.FilterPreferences) error {
	if err := ValidateFilters(prefs); err != nil {
		return err
	}

	s.prefs = copyFilters(prefs)
	s.passed = make(map[int64]struct{})

	s.log.Info().
		Int("min_age", prefs.AgeRange.Min).
		Int("max_age", prefs.AgeRange.Max).
		Int("max_distance", prefs.MaxDistance).
		Strs("interests", prefs.Interests).
		Msg("Filters applied")
	return nil
}

// SetLocation sets the live coordinates; nil falls back to the viewer's stored coordinates
func (s *Session) SetLocation(coords *models.Coordinates) {
	if coords == nil {
		s.coords = nil
		return
	}
	c := *coords
	s.coords = &c
}

// UseProvider asks p for a fix once; on failure the stored coordinates stay in effect
func (s *Session) UseProvider(ctx context.Context, p geo.Provider) {
	if p == nil {
		s.coords = nil
		return
	}

	coords, err := p.Locate(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("Geolocation unavailable, using stored coordinates")
		s.coords = nil
		return
	}
	s.coords = &coords
}

// Coordinates returns the origin used for distances
func (s *Session) Coordinates() (models.Coordinates, bool) {
	if s.coords != nil {
		return *s.coords, true
	}
	viewer, ok := s.Viewer()
	if !ok {
		return models.Coordinates{}, false
	}
	return viewer.Coordinates, true
}

// Deck rebuilds the full deck from the current store state
func (s *Session) Deck() []models.Profile {
	viewer, ok := s.Viewer()
	if !ok {
		return nil
	}

	deck := BuildDeck(DeckInput{
		Viewer:   viewer,
		Profiles: s.store.Profiles(),
		Liked:    s.store.LikesFrom(viewer.ID),
		Matched:  s.matchedIDs(viewer.ID),
		Blocked:  s.store.Blocked(),
		Prefs:    s.prefs,
		Coords:   s.coords,
	})
	s.metrics.ObserveDeck(len(deck))
	return deck
}

// Position is the number of cards in the current deck already passed this round
func (s *Session) Position() int {
	return s.position(s.Deck())
}

// Current returns the top-of-deck candidate
func (s *Session) Current() (models.Profile, bool) {
	return s.top(s.Deck())
}

// Remaining returns the cards not yet swiped this round, top first
func (s *Session) Remaining() []models.Profile {
	deck := s.Deck()
	out := make([]models.Profile, 0, len(deck))
	for _, p := range deck {
		if !contains(s.passed, p.ID) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Session) position(deck []models.Profile) int {
	n := 0
	for _, p := range deck {
		if contains(s.passed, p.ID) {
			n++
		}
	}
	return n
}

func (s *Session) top(deck []models.Profile) (models.Profile, bool) {
	for _, p := range deck {
		if !contains(s.passed, p.ID) {
			return p, true
		}
	}
	return models.Profile{}, false
}

func (s *Session) matchedIDs(viewerID int64) map[int64]struct{} {
	out := make(map[int64]struct{})
	for _, m := range s.store.MatchesFor(viewerID) {
		if other, ok := m.OtherUserID(viewerID); ok {
			out[other] = struct{}{}
		}
	}
	return out
}

// Swipe applies d to the top-of-deck candidate. With no viewer or an exhausted
// deck it does nothing.
func (s *Session) Swipe(ctx context.Context, d models.Decision) (SwipeResult, error) {
	if d != models.DecisionPass && !d.IsLike() {
		return SwipeResult{}, fmt.Errorf("%w: %d", ErrUnknownDecision, d)
	}

	viewer, ok := s.Viewer()
	if !ok {
		s.log.Debug().Str("decision", d.String()).Msg("Swipe ignored, no viewer")
		return SwipeResult{}, nil
	}

	deck := s.Deck()
	candidate, ok := s.top(deck)
	if !ok {
		s.log.Debug().Str("decision", d.String()).Msg("Swipe ignored, deck exhausted")
		return SwipeResult{}, nil
	}

	rec := &swipeRecord{
		viewerID:  viewer.ID,
		profileID: candidate.ID,
		position:  s.position(deck),
		decision:  d,
		at:        s.now(),
	}
	result := SwipeResult{Profile: candidate, Decision: d}

	if d == models.DecisionPass {
		s.passed[candidate.ID] = struct{}{}
	} else {
		result.Match = s.resolveLike(ctx, viewer.ID, candidate.ID, d == models.DecisionSuperLike, true, sourceSwipe, rec)
	}

	s.last = rec
	s.metrics.RecordSwipe(d)

	s.log.Info().
		Int64("profile_id", candidate.ID).
		Str("decision", d.String()).
		Bool("matched", result.Match != nil).
		Msg("Swipe recorded")

	return result, nil
}

// resolveLike records viewerID -> targetID, decides mutuality and creates the match.
// Everything it adds is noted on rec so Undo can take it back. It returns the
// match only when this call created it.
func (s *Session) resolveLike(ctx context.Context, viewerID, targetID int64, super, simulate bool, source string, rec *swipeRecord) *models.Match {
	like := models.Like{LikerID: viewerID, LikedID: targetID}
	reverse := like.Reverse()

	rec.likeAdded = s.store.AddLike(ctx, like)
	if super {
		rec.superAdded = s.store.MarkSuperLike(ctx, like)
	}

	mutual := s.store.HasLike(reverse)
	if !mutual && simulate && s.opts.SimulateReciprocity {
		p := s.opts.LikeProbability
		if super {
			p = s.opts.SuperLikeProbability
		}
		if s.random.Float64() < p {
			rec.reverseAdded = s.store.AddLike(ctx, reverse)
			mutual = true
		}
	}
	if !mutual {
		return nil
	}

	superMatch := s.store.IsSuperLike(like) || s.store.IsSuperLike(reverse)
	m, created := s.store.CreateMatch(ctx, models.NewMatch(viewerID, targetID, s.now(), superMatch))
	if !created {
		return nil
	}

	rec.matchID = m.ID
	s.metrics.RecordMatch(source)
	s.log.Info().
		Str("match_id", m.ID).
		Bool("super_like", m.SuperLike).
		Str("source", source).
		Msg("Match created")
	return &m
}

// Undo reverts the most recent swipe if it is still inside the undo window.
// It reports whether anything was reverted.
func (s *Session) Undo(ctx context.Context) bool {
	rec := s.last
	if rec == nil {
		return false
	}
	s.last = nil

	if s.now().Sub(rec.at) > s.opts.UndoWindow {
		s.log.Debug().Int64("profile_id", rec.profileID).Msg("Undo window expired")
		return false
	}

	like := models.Like{LikerID: rec.viewerID, LikedID: rec.profileID}
	if rec.matchID != "" {
		s.store.RemoveMatch(ctx, rec.matchID)
		s.store.DeleteMessages(ctx, rec.matchID)
	}
	if rec.reverseAdded {
		s.store.RemoveLike(ctx, like.Reverse())
	}
	if rec.superAdded {
		s.store.UnmarkSuperLike(ctx, like)
	}
	if rec.likeAdded {
		s.store.RemoveLike(ctx, like)
	}
	delete(s.passed, rec.profileID)

	s.metrics.RecordUndo()
	s.log.Info().
		Int64("profile_id", rec.profileID).
		Str("decision", rec.decision.String()).
		Int("position", rec.position).
		Msg("Swipe undone")
	return true
}

// CanUndo reports whether Undo would revert something right now
func (s *Session) CanUndo() bool {
	return s.last != nil && s.now().Sub(s.last.at) <= s.opts.UndoWindow
}

// ForceMatch connects the viewer with id directly, recording both like edges
func (s *Session) ForceMatch(ctx context.Context, id int64) (*models.Match, error) {
	viewer, ok := s.Viewer()
	if !ok {
		return nil, ErrNoViewer
	}
	if _, ok := s.store.Profile(id); !ok || id == viewer.ID {
		return nil, nil
	}

	like := models.Like{LikerID: viewer.ID, LikedID: id}
	s.store.AddLike(ctx, like)
	s.store.AddLike(ctx, like.Reverse())

	m, created := s.store.CreateMatch(ctx, models.NewMatch(viewer.ID, id, s.now(), false))
	if created {
		s.metrics.RecordMatch(sourceForced)
		s.log.Info().Str("match_id", m.ID).Str("source", sourceForced).Msg("Match created")
	}
	return &m, nil
}

// Matches returns the viewer's matches, newest first
func (s *Session) Matches() []models.Match {
	id := s.store.Viewer()
	if id == 0 {
		return nil
	}
	return s.store.MatchesFor(id)
}

// RecordView bumps the view counter of the top-of-deck candidate
func (s *Session) RecordView(ctx context.Context) bool {
	top, ok := s.Current()
	if !ok {
		return false
	}
	return s.store.IncrementViewCount(ctx, top.ID)
}

// Block hides id from the viewer's deck and requests
func (s *Session) Block(ctx context.Context, id int64) bool {
	viewer, ok := s.Viewer()
	if !ok || id == viewer.ID {
		return false
	}
	if _, ok := s.store.Profile(id); !ok {
		return false
	}

	s.store.Block(ctx, id)
	s.log.Info().Int64("profile_id", id).Msg("Profile blocked")
	return true
}

// Unblock removes id from the block list
func (s *Session) Unblock(ctx context.Context, id int64) {
	s.store.Unblock(ctx, id)
	s.log.Info().Int64("profile_id", id).Msg("Profile unblocked")
}

// BlockedProfiles returns the blocked profiles that still exist, ordered by id
func (s *Session) BlockedProfiles() []models.Profile {
	out := make([]models.Profile, 0)
	for _, p := range s.store.Profiles() {
		if s.store.IsBlocked(p.ID) {
			out = append(out, p)
		}
	}
	return out
}

// AllInterests lists the interests of every other profile, for the filter UI
func (s *Session) AllInterests() []string {
	return AllInterests(s.store.Profiles(), s.store.Viewer())
}

func copyFilters(p models.FilterPreferences) models.FilterPreferences {
	p.Interests = append([]string{}, p.Interests...)
	p.Lifestyle.Smoking = append([]string(nil), p.Lifestyle.Smoking...)
	p.Lifestyle.Drinking = append([]string(nil), p.Lifestyle.Drinking...)
	p.Lifestyle.Exercise = append([]string(nil), p.Lifestyle.Exercise...)
	return p
}
