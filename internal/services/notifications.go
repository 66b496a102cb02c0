package services

import (
	"context"

	"github.com/emmanueladavize43/Gemini-cupid/internal/models"
)

// UnreadSummary counts messages the viewer has not read yet
type UnreadSummary struct {
	Total    int            `json:"total"`
	PerMatch map[string]int `json:"perMatch"`
}

// PendingRequests returns the profiles that liked the viewer and are still waiting
// for an answer, ordered by id. Dismissed and blocked likers are left out.
func (s *Session) PendingRequests() []models.Profile {
	viewerID := s.store.Viewer()
	if viewerID == 0 {
		return nil
	}

	out := make([]models.Profile, 0)
	for _, id := range s.store.LikersOf(viewerID) {
		if !s.isPending(viewerID, id) {
			continue
		}
		p, ok := s.store.Profile(id)
		if !ok {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *Session) isPending(viewerID, id int64) bool {
	if id == viewerID || s.store.IsDismissed(id) || s.store.IsBlocked(id) {
		return false
	}
	if !s.store.HasLike(models.Like{LikerID: id, LikedID: viewerID}) {
		return false
	}
	_, matched := s.store.MatchBetween(viewerID, id)
	return !matched
}

// UnreadSummary counts incoming unread messages across the viewer's matches
func (s *Session) UnreadSummary() UnreadSummary {
	summary := UnreadSummary{PerMatch: make(map[string]int)}

	viewerID := s.store.Viewer()
	if viewerID == 0 {
		return summary
	}

	for _, m := range s.store.MatchesFor(viewerID) {
		n := 0
		for _, msg := range s.store.Messages(m.ID) {
			if msg.SenderID != viewerID && !msg.Read {
				n++
			}
		}
		summary.PerMatch[m.ID] = n
		summary.Total += n
	}
	return summary
}

// AcceptRequest likes back a pending liker. The reverse edge already exists, so the
// match is always created. The deck cursor and the undo slot are left alone.
func (s *Session) AcceptRequest(ctx context.Context, id int64) (*models.Match, error) {
	viewerID := s.store.Viewer()
	if viewerID == 0 {
		return nil, ErrNoViewer
	}
	if _, ok := s.store.Profile(id); !ok {
		return nil, nil
	}
	if !s.isPending(viewerID, id) {
		return nil, ErrNotPending
	}

	var rec swipeRecord
	m := s.resolveLike(ctx, viewerID, id, false, false, sourceRequest, &rec)
	return m, nil
}

// RejectRequest hides a pending request. It is not a block: the profile can
// still show up in the deck.
func (s *Session) RejectRequest(ctx context.Context, id int64) error {
	if s.store.Viewer() == 0 {
		return ErrNoViewer
	}
	if _, ok := s.store.Profile(id); !ok {
		return nil
	}

	s.store.Dismiss(ctx, id)
	s.log.Info().Int64("profile_id", id).Msg("Request rejected")
	return nil
}
