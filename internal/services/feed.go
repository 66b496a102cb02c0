package services

import (
	"sort"

	"github.com/emmanueladavize43/Gemini-cupid/internal/geo"
	"github.com/emmanueladavize43/Gemini-cupid/internal/models"
)

// DeckInput is everything a deck is derived from
type DeckInput struct {
	Viewer   models.Profile
	Profiles []models.Profile
	// Liked holds the ids the viewer has a like edge to
	Liked map[int64]struct{}
	// Matched holds the ids the viewer already has a match with
	Matched map[int64]struct{}
	Blocked map[int64]struct{}
	Prefs   models.FilterPreferences
	// Coords overrides the viewer's stored coordinates when set
	Coords *models.Coordinates
}

// BuildDeck returns the ordered swipe deck for in. Identical input always
// yields the identical list: ascending distance, then ascending id.
func BuildDeck(in DeckInput) []models.Profile {
	origin := in.Viewer.Coordinates
	if in.Coords != nil {
		origin = *in.Coords
	}

	deck := make([]models.Profile, 0, len(in.Profiles))
	seen := make(map[int64]struct{}, len(in.Profiles))

	for _, p := range in.Profiles {
		if p.ID == in.Viewer.ID {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		if contains(in.Blocked, p.ID) || contains(in.Matched, p.ID) || contains(in.Liked, p.ID) {
			continue
		}
		if p.Visibility != models.VisibilityPublic {
			continue
		}
		if !IsEligible(p, in.Prefs, origin) {
			continue
		}

		seen[p.ID] = struct{}{}
		d := geo.DistanceMiles(origin, p.Coordinates)
		p.Distance = &d
		p.Interests = append([]string(nil), p.Interests...)
		deck = append(deck, p)
	}

	sort.Slice(deck, func(i, j int) bool {
		if *deck[i].Distance != *deck[j].Distance {
			return *deck[i].Distance < *deck[j].Distance
		}
		return deck[i].ID < deck[j].ID
	})

	return deck
}

// AllInterests returns the sorted set of interests carried by profiles other than the viewer
func AllInterests(profiles []models.Profile, viewerID int64) []string {
	set := make(map[string]struct{})
	for _, p := range profiles {
		if p.ID == viewerID {
			continue
		}
		for _, interest := range p.Interests {
			set[interest] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for interest := range set {
		out = append(out, interest)
	}
	sort.Strings(out)
	return out
}

func contains(set map[int64]struct{}, id int64) bool {
	_, ok := set[id]
	return ok
}
