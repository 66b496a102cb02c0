package services

import (
	"slices"

	"github.com/emmanueladavize43/Gemini-cupid/internal/geo"
	"github.com/emmanueladavize43/Gemini-cupid/internal/models"
)

// DefaultFilters returns the preferences a new viewer starts with
func DefaultFilters() models.FilterPreferences {
	return models.FilterPreferences{
		AgeRange:    models.AgeRange{Min: 18, Max: 99},
		Interests:   []string{},
		MaxDistance: 50,
	}
}

// ValidateFilters rejects preferences that must not reach IsEligible
func ValidateFilters(prefs models.FilterPreferences) error {
	return validateStruct(prefs)
}

// IsEligible reports whether candidate satisfies every constraint in prefs
// as seen from viewerCoords.
func IsEligible(candidate models.Profile, prefs models.FilterPreferences, viewerCoords models.Coordinates) bool {
	if candidate.Age < prefs.AgeRange.Min || candidate.Age > prefs.AgeRange.Max {
		return false
	}

	if len(prefs.Interests) > 0 && !sharesAny(candidate.Interests, prefs.Interests) {
		return false
	}

	if geo.DistanceMiles(viewerCoords, candidate.Coordinates) > prefs.MaxDistance {
		return false
	}

	if prefs.RelationshipGoal != "" && candidate.RelationshipGoal != prefs.RelationshipGoal {
		return false
	}

	var lifestyle models.Lifestyle
	if candidate.Lifestyle != nil {
		lifestyle = *candidate.Lifestyle
	}
	return lifestyleMatches(lifestyle.Smoking, prefs.Lifestyle.Smoking) &&
		lifestyleMatches(lifestyle.Drinking, prefs.Lifestyle.Drinking) &&
		lifestyleMatches(lifestyle.Exercise, prefs.Lifestyle.Exercise)
}

func sharesAny(have, want []string) bool {
	for _, w := range want {
		if slices.Contains(have, w) {
			return true
		}
	}
	return false
}

// lifestyleMatches fails closed: an active filter rejects candidates without the attribute
func lifestyleMatches(value string, accepted []string) bool {
	if len(accepted) == 0 {
		return true
	}
	return value != "" && slices.Contains(accepted, value)
}
