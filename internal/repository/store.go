package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/emmanueladavize43/Gemini-cupid/internal/models"

	"github.com/rs/zerolog"
)

// Storage keys for each persisted collection. The block list and dismissals
// belong to one viewer and are stored under BlockedKey/DismissedKey.
const (
	KeyProfiles   = "cupid-profiles"
	KeyViewer     = "cupid-viewer"
	KeyBlocked    = "cupid-blocked-ids"
	KeyLikes      = "cupid-likes"
	KeySuperLikes = "cupid-superlikes"
	KeyMatches    = "cupid-matches"
	KeyMessages   = "cupid-messages"
	KeyDismissed  = "cupid-dismissed"
)

// ProfileStore holds profiles, the viewer identity and all relations between profiles.
// Reads are served from memory; every mutation is written through to the KV.
type ProfileStore struct {
	kv  KV
	log zerolog.Logger

	profiles   map[int64]models.Profile
	viewerID   int64
	blocked    map[int64]struct{}
	likes      map[models.Like]struct{}
	superLikes map[models.Like]struct{}
	matches    map[string]models.Match
	messages   map[string][]models.Message
	dismissed  map[int64]struct{}
}

// NewProfileStore creates an empty store backed by kv
func NewProfileStore(kv KV, logger zerolog.Logger) *ProfileStore {
	return &ProfileStore{
		kv:         kv,
		log:        logger,
		profiles:   make(map[int64]models.Profile),
		blocked:    make(map[int64]struct{}),
		likes:      make(map[models.Like]struct{}),
		superLikes: make(map[models.Like]struct{}),
		matches:    make(map[string]models.Match),
		messages:   make(map[string][]models.Message),
		dismissed:  make(map[int64]struct{}),
	}
}

// Load reads every collection from the KV. Missing or unreadable entries
// leave the collection empty; when no profiles exist the seed set is installed.
func (s *ProfileStore) Load(ctx context.Context) {
	var profiles []models.Profile
	if s.load(ctx, KeyProfiles, &profiles) {
		for _, p := range profiles {
			p.Distance = nil
			s.profiles[p.ID] = p
		}
	}

	var viewer int64
	if s.load(ctx, KeyViewer, &viewer) {
		s.viewerID = viewer
	}

	var likes []models.Like
	if s.load(ctx, KeyLikes, &likes) {
		for _, l := range likes {
			s.likes[l] = struct{}{}
		}
	}

	var superLikes []models.Like
	if s.load(ctx, KeySuperLikes, &superLikes) {
		for _, l := range superLikes {
			s.superLikes[l] = struct{}{}
		}
	}

	var matches []models.Match
	if s.load(ctx, KeyMatches, &matches) {
		for _, m := range matches {
			m = models.NewMatch(m.UserIDs[0], m.UserIDs[1], m.CreatedAt, m.SuperLike)
			s.matches[m.ID] = m
		}
	}

	var messages map[string][]models.Message
	if s.load(ctx, KeyMessages, &messages) && messages != nil {
		s.messages = messages
	}

	if len(s.profiles) == 0 {
		s.seed(ctx)
	}
	s.loadViewerState(ctx)

	s.log.Info().
		Int("profiles", len(s.profiles)).
		Int64("viewer_id", s.viewerID).
		Int("matches", len(s.matches)).
		Msg("Profile store loaded")
}

// BlockedKey is the storage key of viewerID's block list
func BlockedKey(viewerID int64) string {
	return fmt.Sprintf("%s:%d", KeyBlocked, viewerID)
}

// DismissedKey is the storage key of viewerID's dismissed requests
func DismissedKey(viewerID int64) string {
	return fmt.Sprintf("%s:%d", KeyDismissed, viewerID)
}

// loadViewerState replaces the block list and dismissals with the current viewer's
func (s *ProfileStore) loadViewerState(ctx context.Context) {
	s.blocked = make(map[int64]struct{})
	s.dismissed = make(map[int64]struct{})
	if s.viewerID == 0 {
		return
	}

	for _, id := range s.loadIDs(ctx, BlockedKey(s.viewerID)) {
		s.blocked[id] = struct{}{}
	}
	for _, id := range s.loadIDs(ctx, DismissedKey(s.viewerID)) {
		s.dismissed[id] = struct{}{}
	}
}

// load decodes key into v and reports whether a usable value was found
func (s *ProfileStore) load(ctx context.Context, key string, v any) bool {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Failed to read stored state")
		return false
	}
	if data == nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Discarding malformed stored state")
		return false
	}
	return true
}

// loadIDs decodes a JSON array of ids, skipping entries that are not integers
func (s *ProfileStore) loadIDs(ctx context.Context, key string) []int64 {
	var raw []json.RawMessage
	if !s.load(ctx, key, &raw) {
		return nil
	}

	ids := make([]int64, 0, len(raw))
	for _, r := range raw {
		var id int64
		if err := json.Unmarshal(r, &id); err != nil {
			s.log.Warn().Str("key", key).RawJSON("entry", r).Msg("Skipping non-numeric id")
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func (s *ProfileStore) seed(ctx context.Context) {
	for _, p := range SeedProfiles() {
		s.profiles[p.ID] = p
	}
	s.viewerID = SeedViewerID
	for _, liker := range SeedPendingLikers {
		s.likes[models.Like{LikerID: liker, LikedID: SeedViewerID}] = struct{}{}
	}

	s.persistProfiles(ctx)
	s.persist(ctx, KeyViewer, s.viewerID)
	s.persistLikes(ctx)

	s.log.Info().Int("profiles", len(s.profiles)).Msg("Seeded profile store")
}

func (s *ProfileStore) persist(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Failed to encode state")
		return
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Failed to persist state")
	}
}

func (s *ProfileStore) persistProfiles(ctx context.Context) {
	s.persist(ctx, KeyProfiles, s.Profiles())
}

func (s *ProfileStore) persistLikes(ctx context.Context) {
	s.persist(ctx, KeyLikes, sortedEdges(s.likes))
}

// Viewer returns the current viewer id, or 0 when nobody is signed in
func (s *ProfileStore) Viewer() int64 {
	return s.viewerID
}

// SetViewer changes the current viewer identity and switches to that viewer's
// block list and dismissals
func (s *ProfileStore) SetViewer(ctx context.Context, id int64) {
	s.viewerID = id
	s.persist(ctx, KeyViewer, id)
	s.loadViewerState(ctx)
}

// Profiles returns every profile ordered by id
func (s *ProfileStore) Profiles() []models.Profile {
	out := make([]models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Profile returns the profile with id
func (s *ProfileStore) Profile(id int64) (models.Profile, bool) {
	p, ok := s.profiles[id]
	return p, ok
}

// UpsertProfile stores p, replacing any profile with the same id
func (s *ProfileStore) UpsertProfile(ctx context.Context, p models.Profile) {
	p.Distance = nil
	s.profiles[p.ID] = p
	s.persistProfiles(ctx)
}

// IncrementViewCount bumps the view counter of id and reports whether the profile exists
func (s *ProfileStore) IncrementViewCount(ctx context.Context, id int64) bool {
	p, ok := s.profiles[id]
	if !ok {
		return false
	}
	p.ViewCount++
	s.profiles[id] = p
	s.persistProfiles(ctx)
	return true
}

// Block adds id to the viewer's block list
func (s *ProfileStore) Block(ctx context.Context, id int64) {
	s.blocked[id] = struct{}{}
	s.persist(ctx, BlockedKey(s.viewerID), sortedIDs(s.blocked))
}

// Unblock removes id from the viewer's block list
func (s *ProfileStore) Unblock(ctx context.Context, id int64) {
	delete(s.blocked, id)
	s.persist(ctx, BlockedKey(s.viewerID), sortedIDs(s.blocked))
}

// IsBlocked reports whether id is on the block list
func (s *ProfileStore) IsBlocked(id int64) bool {
	_, ok := s.blocked[id]
	return ok
}

// Blocked returns a copy of the block list
func (s *ProfileStore) Blocked() map[int64]struct{} {
	return copyIDs(s.blocked)
}

// AddLike records the edge and reports whether it was newly added
func (s *ProfileStore) AddLike(ctx context.Context, like models.Like) bool {
	if _, ok := s.likes[like]; ok {
		return false
	}
	s.likes[like] = struct{}{}
	s.persistLikes(ctx)
	return true
}

// RemoveLike deletes the edge if present
func (s *ProfileStore) RemoveLike(ctx context.Context, like models.Like) {
	if _, ok := s.likes[like]; !ok {
		return
	}
	delete(s.likes, like)
	s.persistLikes(ctx)
}

// HasLike reports whether the edge exists
func (s *ProfileStore) HasLike(like models.Like) bool {
	_, ok := s.likes[like]
	return ok
}

// LikeCount returns the number of recorded edges
func (s *ProfileStore) LikeCount() int {
	return len(s.likes)
}

// LikesFrom returns the ids liked by likerID
func (s *ProfileStore) LikesFrom(likerID int64) map[int64]struct{} {
	out := make(map[int64]struct{})
	for l := range s.likes {
		if l.LikerID == likerID {
			out[l.LikedID] = struct{}{}
		}
	}
	return out
}

// LikersOf returns the ids that like likedID, in ascending order
func (s *ProfileStore) LikersOf(likedID int64) []int64 {
	out := make([]int64, 0)
	for l := range s.likes {
		if l.LikedID == likedID {
			out = append(out, l.LikerID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MarkSuperLike flags the edge as a super-like and reports whether it was newly flagged
func (s *ProfileStore) MarkSuperLike(ctx context.Context, like models.Like) bool {
	if _, ok := s.superLikes[like]; ok {
		return false
	}
	s.superLikes[like] = struct{}{}
	s.persist(ctx, KeySuperLikes, sortedEdges(s.superLikes))
	return true
}

// UnmarkSuperLike clears the super-like flag on the edge
func (s *ProfileStore) UnmarkSuperLike(ctx context.Context, like models.Like) {
	if _, ok := s.superLikes[like]; !ok {
		return
	}
	delete(s.superLikes, like)
	s.persist(ctx, KeySuperLikes, sortedEdges(s.superLikes))
}

// IsSuperLike reports whether the edge carries the super-like flag
func (s *ProfileStore) IsSuperLike(like models.Like) bool {
	_, ok := s.superLikes[like]
	return ok
}

// CreateMatch stores m unless the pair already has a match. It returns the
// stored match and whether it was created by this call.
func (s *ProfileStore) CreateMatch(ctx context.Context, m models.Match) (models.Match, bool) {
	m = models.NewMatch(m.UserIDs[0], m.UserIDs[1], m.CreatedAt, m.SuperLike)
	if existing, ok := s.matches[m.ID]; ok {
		return existing, false
	}
	s.matches[m.ID] = m
	s.persistMatches(ctx)
	return m, true
}

// RemoveMatch deletes the match with id
func (s *ProfileStore) RemoveMatch(ctx context.Context, id string) {
	if _, ok := s.matches[id]; !ok {
		return
	}
	delete(s.matches, id)
	s.persistMatches(ctx)
}

func (s *ProfileStore) persistMatches(ctx context.Context) {
	out := make([]models.Match, 0, len(s.matches))
	for _, m := range s.matches {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	s.persist(ctx, KeyMatches, out)
}

// Match returns the match with id
func (s *ProfileStore) Match(id string) (models.Match, bool) {
	m, ok := s.matches[id]
	return m, ok
}

// MatchBetween returns the match between a and b regardless of argument order
func (s *ProfileStore) MatchBetween(a, b int64) (models.Match, bool) {
	return s.Match(models.MatchID(a, b))
}

// MatchCount returns the number of stored matches
func (s *ProfileStore) MatchCount() int {
	return len(s.matches)
}

// MatchesFor returns every match involving id, newest first
func (s *ProfileStore) MatchesFor(id int64) []models.Match {
	out := make([]models.Match, 0)
	for _, m := range s.matches {
		if m.HasUser(id) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// AppendMessage adds msg to its match's conversation
func (s *ProfileStore) AppendMessage(ctx context.Context, msg models.Message) {
	s.messages[msg.MatchID] = append(s.messages[msg.MatchID], msg)
	s.persist(ctx, KeyMessages, s.messages)
}

// Messages returns a copy of the conversation for matchID in send order
func (s *ProfileStore) Messages(matchID string) []models.Message {
	return append([]models.Message(nil), s.messages[matchID]...)
}

// DeleteMessages drops the conversation of matchID
func (s *ProfileStore) DeleteMessages(ctx context.Context, matchID string) {
	if _, ok := s.messages[matchID]; !ok {
		return
	}
	delete(s.messages, matchID)
	s.persist(ctx, KeyMessages, s.messages)
}

// MarkRead flips every unread message in matchID not sent by readerID and returns how many changed
func (s *ProfileStore) MarkRead(ctx context.Context, matchID string, readerID int64) int {
	msgs := s.messages[matchID]
	changed := 0
	for i := range msgs {
		if msgs[i].SenderID != readerID && !msgs[i].Read {
			msgs[i].Read = true
			changed++
		}
	}
	if changed > 0 {
		s.persist(ctx, KeyMessages, s.messages)
	}
	return changed
}

// Dismiss records that the viewer declined a pending request from id
func (s *ProfileStore) Dismiss(ctx context.Context, id int64) {
	s.dismissed[id] = struct{}{}
	s.persist(ctx, DismissedKey(s.viewerID), sortedIDs(s.dismissed))
}

// IsDismissed reports whether a pending request from id was declined
func (s *ProfileStore) IsDismissed(id int64) bool {
	_, ok := s.dismissed[id]
	return ok
}

func sortedIDs(set map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func copyIDs(set map[int64]struct{}) map[int64]struct{} {
	out := make(map[int64]struct{}, len(set))
	for id := range set {
		out[id] = struct{}{}
	}
	return out
}

func sortedEdges(set map[models.Like]struct{}) []models.Like {
	out := make([]models.Like, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LikerID != out[j].LikerID {
			return out[i].LikerID < out[j].LikerID
		}
		return out[i].LikedID < out[j].LikedID
	})
	return out
}
