package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/emmanueladavize43/Gemini-cupid/internal/models"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVoiceStore struct {
	matchID string
	audio   []byte
	err     error
}

func (f *fakeVoiceStore) Put(_ context.Context, matchID string, audio []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.matchID = matchID
	f.audio = audio
	return "s3://voice-bucket/voice/" + matchID + "/note.webm", nil
}

type fakeS3 struct {
	input *s3.PutObjectInput
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	m, err := s.ForceMatch(ctx, 2)
	require.NoError(t, err)

	msg, err := s.SendMessage(ctx, m.ID, models.MessageText, "hello")
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, int64(1), msg.SenderID)
	assert.Equal(t, s.clock.now, msg.Timestamp)
	assert.False(t, msg.Read)

	sticker, err := s.SendMessage(ctx, m.ID, models.MessageSticker, "🎉")
	require.NoError(t, err)
	require.NotNil(t, sticker)

	assert.Len(t, s.Conversation(m.ID), 2)
}

func TestSendMessageIgnoresBlankText(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	m, err := s.ForceMatch(ctx, 2)
	require.NoError(t, err)

	msg, err := s.SendMessage(ctx, m.ID, models.MessageText, "   ")
	require.NoError(t, err)
	assert.Nil(t, msg)
	assert.Empty(t, s.Conversation(m.ID))
}

func TestSendMessageMembership(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)

	_, err := s.SendMessage(ctx, "1-2", models.MessageText, "hello")
	assert.ErrorIs(t, err, ErrMatchNotFound)

	other, _ := s.store.CreateMatch(ctx, models.NewMatch(4, 7, s.clock.now, false))
	_, err = s.SendMessage(ctx, other.ID, models.MessageText, "hello")
	assert.ErrorIs(t, err, ErrNotMember)

	m, err := s.ForceMatch(ctx, 2)
	require.NoError(t, err)
	_, err = s.Deliver(ctx, m.ID, 6, models.MessageText, "hello")
	assert.ErrorIs(t, err, ErrNotMember)

	_, err = s.SendMessage(ctx, m.ID, models.MessageType("gif"), "hello")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSendVoiceMessage(t *testing.T) {
	ctx := context.Background()
	voice := &fakeVoiceStore{}
	s := newTestSession(t, func(o *SessionOptions) { o.Voice = voice })
	m, err := s.ForceMatch(ctx, 2)
	require.NoError(t, err)

	msg, err := s.SendMessage(ctx, m.ID, models.MessageVoice, "RIFF....")
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, "s3://voice-bucket/voice/1-2/note.webm", msg.Content)
	assert.Equal(t, m.ID, voice.matchID)
	assert.Equal(t, []byte("RIFF...."), voice.audio)

	voice.err = errors.New("bucket unavailable")
	_, err = s.SendMessage(ctx, m.ID, models.MessageVoice, "RIFF....")
	assert.Error(t, err)
	assert.Len(t, s.Conversation(m.ID), 1)
}

func TestOpenConversation(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	m, err := s.ForceMatch(ctx, 2)
	require.NoError(t, err)

	_, err = s.SendMessage(ctx, m.ID, models.MessageText, "hi")
	require.NoError(t, err)
	_, err = s.Deliver(ctx, m.ID, 2, models.MessageText, "hello back")
	require.NoError(t, err)

	msgs, err := s.OpenConversation(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.False(t, msgs[0].Read)
	assert.True(t, msgs[1].Read)
}

func TestS3VoiceStore(t *testing.T) {
	client := &fakeS3{}
	store := NewS3VoiceStoreWithClient(client, "voice-bucket")

	ref, err := store.Put(context.Background(), "1-2", []byte("audio"))
	require.NoError(t, err)

	require.NotNil(t, client.input)
	key := *client.input.Key
	assert.Equal(t, "voice-bucket", *client.input.Bucket)
	assert.True(t, strings.HasPrefix(key, "voice/1-2/"))
	assert.True(t, strings.HasSuffix(key, ".webm"))
	assert.Equal(t, "audio/webm", *client.input.ContentType)
	assert.Equal(t, "s3://voice-bucket/"+key, ref)

	client.err = errors.New("access denied")
	_, err = store.Put(context.Background(), "1-2", []byte("audio"))
	assert.ErrorContains(t, err, "failed to upload voice note")
}

func TestSaveProfile(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)

	me, ok := s.Viewer()
	require.True(t, ok)
	me.Bio = "New bio"
	me.ViewCount = 9999
	require.NoError(t, s.SaveProfile(ctx, me))

	saved, ok := s.Viewer()
	require.True(t, ok)
	assert.Equal(t, "New bio", saved.Bio)
	assert.Zero(t, saved.ViewCount)

	other, ok := s.store.Profile(2)
	require.True(t, ok)
	assert.ErrorIs(t, s.SaveProfile(ctx, other), ErrNotOwnProfile)
}

func TestSaveProfileValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	me, ok := s.Viewer()
	require.True(t, ok)

	tests := []struct {
		name   string
		mutate func(p *models.Profile)
		msg    string
	}{
		{"under age", func(p *models.Profile) { p.Age = 17 }, "age must be at least 18"},
		{"missing name", func(p *models.Profile) { p.Name = "" }, "name is required"},
		{"bad visibility", func(p *models.Profile) { p.Visibility = "friends" }, "profileVisibility must be one of"},
		{"bad goal", func(p *models.Profile) { p.RelationshipGoal = "Pen pals" }, "relationshipGoal must be one of"},
		{"bad lifestyle", func(p *models.Profile) { p.Lifestyle = &models.Lifestyle{Exercise: "Daily"} }, "lifestyle.exercise must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := me
			tt.mutate(&p)

			err := s.SaveProfile(ctx, p)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	stored, _ := s.Viewer()
	assert.Equal(t, me.Age, stored.Age)
}
