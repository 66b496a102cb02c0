package services

import (
	"context"

	"github.com/emmanueladavize43/Gemini-cupid/internal/models"
)

// SaveProfile validates and stores an edit of the viewer's own profile.
// The view counter is kept from the stored profile.
func (s *Session) SaveProfile(ctx context.Context, p models.Profile) error {
	viewer, ok := s.Viewer()
	if !ok {
		return ErrNoViewer
	}
	if p.ID != viewer.ID {
		return ErrNotOwnProfile
	}
	if err := validateStruct(p); err != nil {
		return err
	}

	p.ViewCount = viewer.ViewCount
	p.Distance = nil
	p.Interests = append([]string{}, p.Interests...)
	s.store.UpsertProfile(ctx, p)

	s.log.Info().Int64("profile_id", p.ID).Msg("Profile updated")
	return nil
}
