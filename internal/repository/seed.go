package repository

import "github.com/emmanueladavize43/Gemini-cupid/internal/models"

// SeedViewerID is the profile signed in on a fresh install
const SeedViewerID int64 = 1

// SeedPendingLikers already like the seed viewer, so a fresh install has pending requests
var SeedPendingLikers = []int64{4, 7}

// SeedProfiles returns the demo profile set installed into an empty store
func SeedProfiles() []models.Profile {
	return []models.Profile{
		{
			ID: 1, Name: "Jordan", Age: 28,
			Bio:              "Hiker, food-truck regular and owner of a very loud dog called Rusty.",
			ImageURL:         "https://picsum.photos/seed/you/800/1200",
			Interests:        []string{"Hiking", "Dogs", "Foodie", "Travel", "Camping", "Road Trips"},
			Location:         "San Francisco, CA",
			Coordinates:      models.Coordinates{Lat: 37.7749, Lon: -122.4194},
			Visibility:       models.VisibilityPublic,
			RelationshipGoal: "Long-term",
			Lifestyle:        &models.Lifestyle{Smoking: "No", Drinking: "Socially", Exercise: "Active"},
		},
		{
			ID: 2, Name: "Alex", Age: 29,
			Bio:              "Writes software by day and carbonara by night. Board games, sci-fi, good espresso.",
			ImageURL:         "https://picsum.photos/seed/alex/800/1200",
			Interests:        []string{"Cooking", "Board Games", "Sci-Fi", "Coffee", "Technology", "Puzzles"},
			Location:         "San Francisco, CA",
			Coordinates:      models.Coordinates{Lat: 37.7577, Lon: -122.4376},
			Visibility:       models.VisibilityPublic,
			ViewCount:        152,
			RelationshipGoal: "Life Partner",
			Lifestyle:        &models.Lifestyle{Smoking: "No", Drinking: "Socially", Exercise: "Sometimes"},
		},
		{
			ID: 3, Name: "Brianna", Age: 26,
			Bio:              "Graphic designer, painter and potter. Galleries, live music, rainy days with a book.",
			ImageURL:         "https://picsum.photos/seed/brianna/800/1200",
			Interests:        []string{"Art", "Music", "Reading", "Museums", "Crafts", "Indie Films"},
			Location:         "Los Angeles, CA",
			Coordinates:      models.Coordinates{Lat: 34.0522, Lon: -118.2437},
			Visibility:       models.VisibilityPublic,
			ViewCount:        203,
			RelationshipGoal: "Figuring it out",
			Lifestyle:        &models.Lifestyle{Smoking: "No", Drinking: "No", Exercise: "Active"},
		},
		{
			ID: 4, Name: "Carlos", Age: 31,
			Bio:              "Personal trainer and marathon runner looking for a workout partner and a life partner.",
			ImageURL:         "https://picsum.photos/seed/carlos/800/1200",
			Interests:        []string{"Fitness", "Running", "Health", "Outdoors", "Weightlifting", "Nutrition"},
			Location:         "San Diego, CA",
			Coordinates:      models.Coordinates{Lat: 32.7157, Lon: -117.1611},
			Visibility:       models.VisibilityPublic,
			ViewCount:        410,
			RelationshipGoal: "Long-term",
			Lifestyle:        &models.Lifestyle{Smoking: "No", Drinking: "Socially", Exercise: "Active"},
		},
		{
			ID: 5, Name: "Diana", Age: 30,
			Bio:              "Veterinarian. Yoga, volunteering, documentaries and one spoiled golden retriever.",
			ImageURL:         "https://picsum.photos/seed/diana/800/1200",
			Interests:        []string{"Animals", "Yoga", "Volunteering", "Documentaries", "Nature", "Meditation"},
			Location:         "Portland, OR",
			Coordinates:      models.Coordinates{Lat: 45.5051, Lon: -122.6750},
			Visibility:       models.VisibilityPublic,
			ViewCount:        351,
			RelationshipGoal: "New friends",
			Lifestyle:        &models.Lifestyle{Smoking: "No", Drinking: "Socially", Exercise: "Sometimes"},
		},
		{
			ID: 6, Name: "Ethan", Age: 27,
			Bio:              "Guitarist in a local band. Old-school rock, new-school indie, always up for a gig.",
			ImageURL:         "https://picsum.photos/seed/ethan/800/1200",
			Interests:        []string{"Music", "Guitar", "Concerts", "Songwriting", "Vinyl Records", "Live Gigs"},
			Location:         "Oakland, CA",
			Coordinates:      models.Coordinates{Lat: 37.8044, Lon: -122.2712},
			Visibility:       models.VisibilityPublic,
			ViewCount:        188,
			RelationshipGoal: "Short-term",
			Lifestyle:        &models.Lifestyle{Smoking: "Yes", Drinking: "Yes", Exercise: "Rarely"},
		},
		{
			ID: 7, Name: "Fiona", Age: 25,
			Bio:              "Photographer chasing thirty countries before thirty. Languages, backpacking, culture.",
			ImageURL:         "https://picsum.photos/seed/fiona/800/1200",
			Interests:        []string{"Travel", "Photography", "Languages", "Adventure", "Backpacking", "Culture"},
			Location:         "New York, NY",
			Coordinates:      models.Coordinates{Lat: 40.7128, Lon: -74.0060},
			Visibility:       models.VisibilityPublic,
			ViewCount:        520,
			RelationshipGoal: "Long-term",
			Lifestyle:        &models.Lifestyle{Smoking: "No", Drinking: "Socially", Exercise: "Active"},
		},
		{
			ID: 8, Name: "George", Age: 33,
			Bio:              "History teacher. Trivia nights, historical films and a good debate over a pint.",
			ImageURL:         "https://picsum.photos/seed/george/800/1200",
			Interests:        []string{"History", "Trivia", "Movies", "Debate", "Podcasts", "Politics"},
			Location:         "Chicago, IL",
			Coordinates:      models.Coordinates{Lat: 41.8781, Lon: -87.6298},
			Visibility:       models.VisibilityPublic,
			ViewCount:        98,
			RelationshipGoal: "Life Partner",
			Lifestyle:        &models.Lifestyle{Smoking: "No", Drinking: "Yes", Exercise: "Sometimes"},
		},
	}
}
