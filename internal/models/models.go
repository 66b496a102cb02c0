package models

import (
	"fmt"
	"time"
)

// Visibility controls whether a profile can appear in other viewers' decks
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Coordinates is a latitude/longitude pair in degrees
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Lifestyle holds the optional lifestyle tags of a profile
type Lifestyle struct {
	Smoking  string `json:"smoking,omitempty" validate:"omitempty,oneof=Yes No Socially"`
	Drinking string `json:"drinking,omitempty" validate:"omitempty,oneof=Yes No Socially"`
	Exercise string `json:"exercise,omitempty" validate:"omitempty,oneof=Active Sometimes Rarely Never"`
}

// Profile represents a user profile
type Profile struct {
	ID               int64       `json:"id"`
	Name             string      `json:"name" validate:"required"`
	Age              int         `json:"age" validate:"gte=18"`
	Bio              string      `json:"bio"`
	ImageURL         string      `json:"imageUrl"`
	Interests        []string    `json:"interests"`
	Location         string      `json:"location"`
	Coordinates      Coordinates `json:"coordinates"`
	Visibility       Visibility  `json:"profileVisibility" validate:"oneof=public private"`
	ViewCount        int         `json:"viewCount"`
	RelationshipGoal string      `json:"relationshipGoal,omitempty" validate:"omitempty,relationship_goal"`
	Lifestyle        *Lifestyle  `json:"lifestyle,omitempty"`

	// Distance is only populated in feed context
	Distance *int `json:"distance,omitempty"`
}

// Like is a directed interest edge from one profile to another
type Like struct {
	LikerID int64 `json:"likerId"`
	LikedID int64 `json:"likedId"`
}

// Reverse returns the edge pointing the other way
func (l Like) Reverse() Like {
	return Like{LikerID: l.LikedID, LikedID: l.LikerID}
}

// Match represents a confirmed mutual connection between two profiles
type Match struct {
	ID        string    `json:"id"`
	UserIDs   [2]int64  `json:"userIds"`
	CreatedAt time.Time `json:"timestamp"`
	SuperLike bool      `json:"isSuperLike"`
}

// MatchID returns the canonical, order-independent id for a pair
func MatchID(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d-%d", a, b)
}

// NewMatch builds a match with ids stored in ascending order
func NewMatch(a, b int64, createdAt time.Time, superLike bool) Match {
	if a > b {
		a, b = b, a
	}
	return Match{
		ID:        MatchID(a, b),
		UserIDs:   [2]int64{a, b},
		CreatedAt: createdAt,
		SuperLike: superLike,
	}
}

// HasUser reports whether the profile is part of the match
func (m Match) HasUser(id int64) bool {
	return m.UserIDs[0] == id || m.UserIDs[1] == id
}

// OtherUserID returns the member that is not id
func (m Match) OtherUserID(id int64) (int64, bool) {
	switch id {
	case m.UserIDs[0]:
		return m.UserIDs[1], true
	case m.UserIDs[1]:
		return m.UserIDs[0], true
	}
	return 0, false
}

// MessageType is the kind of chat payload
type MessageType string

const (
	MessageText    MessageType = "text"
	MessageSticker MessageType = "sticker"
	MessageVoice   MessageType = "voice"
)

// Valid reports whether t is a known message type
func (t MessageType) Valid() bool {
	switch t {
	case MessageText, MessageSticker, MessageVoice:
		return true
	}
	return false
}

// Message represents a chat message inside a match
type Message struct {
	ID        string      `json:"id"`
	MatchID   string      `json:"matchId"`
	SenderID  int64       `json:"senderId"`
	Timestamp time.Time   `json:"timestamp"`
	Type      MessageType `json:"type"`
	Content   string      `json:"content"`
	Read      bool        `json:"read"`
}

// Decision is the outcome of a swipe
type Decision int

const (
	DecisionPass Decision = iota + 1
	DecisionLike
	DecisionSuperLike
)

func (d Decision) String() string {
	switch d {
	case DecisionPass:
		return "pass"
	case DecisionLike:
		return "like"
	case DecisionSuperLike:
		return "superlike"
	default:
		return "unknown"
	}
}

// IsLike reports whether the decision records a like edge
func (d Decision) IsLike() bool {
	return d == DecisionLike || d == DecisionSuperLike
}

// AgeRange is an inclusive age bound
type AgeRange struct {
	Min int `json:"min" validate:"gte=18,lte=99"`
	Max int `json:"max" validate:"gte=18,lte=99,gtefield=Min"`
}

// LifestyleFilter holds OR-sets per lifestyle category; empty means unconstrained
type LifestyleFilter struct {
	Smoking  []string `json:"smoking,omitempty" validate:"dive,oneof=Yes No Socially"`
	Drinking []string `json:"drinking,omitempty" validate:"dive,oneof=Yes No Socially"`
	Exercise []string `json:"exercise,omitempty" validate:"dive,oneof=Active Sometimes Rarely Never"`
}

// FilterPreferences are the viewer's feed constraints
type FilterPreferences struct {
	AgeRange         AgeRange        `json:"ageRange"`
	Interests        []string        `json:"interests"`
	MaxDistance      int             `json:"maxDistance" validate:"gte=0"`
	RelationshipGoal string          `json:"relationshipGoal,omitempty" validate:"omitempty,relationship_goal"`
	Lifestyle        LifestyleFilter `json:"lifestyle"`
}

// RelationshipGoals lists the goals a profile or filter may carry
var RelationshipGoals = []string{
	"Long-term",
	"Short-term",
	"New friends",
	"Figuring it out",
	"Life Partner",
}

// LifestyleOptions lists the accepted values per lifestyle category
var LifestyleOptions = map[string][]string{
	"smoking":  {"Yes", "No", "Socially"},
	"drinking": {"Yes", "No", "Socially"},
	"exercise": {"Active", "Sometimes", "Rarely", "Never"},
}
