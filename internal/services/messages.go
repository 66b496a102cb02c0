package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/emmanueladavize43/Gemini-cupid/internal/models"

	"github.com/google/uuid"
)

// SendMessage posts a message from the viewer into one of their matches.
// Blank text is ignored and returns nil. Voice payloads go through the voice
// store when one is configured and the message keeps only the reference.
func (s *Session) SendMessage(ctx context.Context, matchID string, typ models.MessageType, content string) (*models.Message, error) {
	viewerID := s.store.Viewer()
	if viewerID == 0 {
		return nil, ErrNoViewer
	}

	if typ == models.MessageVoice && s.voice != nil && content != "" {
		if _, err := s.member(matchID, viewerID); err != nil {
			return nil, err
		}
		ref, err := s.voice.Put(ctx, matchID, []byte(content))
		if err != nil {
			return nil, err
		}
		content = ref
	}

	return s.Deliver(ctx, matchID, viewerID, typ, content)
}

// Deliver appends a message from senderID, who must belong to the match
func (s *Session) Deliver(ctx context.Context, matchID string, senderID int64, typ models.MessageType, content string) (*models.Message, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: message type must be one of [text sticker voice]", ErrInvalidInput)
	}
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}
	if _, err := s.member(matchID, senderID); err != nil {
		return nil, err
	}

	msg := models.Message{
		ID:        uuid.New().String(),
		MatchID:   matchID,
		SenderID:  senderID,
		Timestamp: s.now(),
		Type:      typ,
		Content:   content,
	}
	s.store.AppendMessage(ctx, msg)

	s.log.Debug().
		Str("match_id", matchID).
		Int64("sender_id", senderID).
		Str("type", string(typ)).
		Msg("Message sent")
	return &msg, nil
}

// OpenConversation marks the other party's messages as read and returns the conversation
func (s *Session) OpenConversation(ctx context.Context, matchID string) ([]models.Message, error) {
	viewerID := s.store.Viewer()
	if viewerID == 0 {
		return nil, ErrNoViewer
	}
	if _, err := s.member(matchID, viewerID); err != nil {
		return nil, err
	}

	if n := s.store.MarkRead(ctx, matchID, viewerID); n > 0 {
		s.log.Debug().Str("match_id", matchID).Int("count", n).Msg("Messages marked read")
	}
	return s.store.Messages(matchID), nil
}

// Conversation returns the messages of a match without touching read state
func (s *Session) Conversation(matchID string) []models.Message {
	return s.store.Messages(matchID)
}

func (s *Session) member(matchID string, id int64) (models.Match, error) {
	m, ok := s.store.Match(matchID)
	if !ok {
		return models.Match{}, ErrMatchNotFound
	}
	if !m.HasUser(id) {
		return models.Match{}, ErrNotMember
	}
	return m, nil
}
