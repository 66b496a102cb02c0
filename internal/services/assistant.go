package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/emmanueladavize43/Gemini-cupid/internal/models"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// quickReplyContext is how many trailing messages are sent for reply suggestions
const quickReplyContext = 5

// FallbackIcebreakers are offered whenever the generator cannot help
var FallbackIcebreakers = []string{
	"What's the most exciting thing you've done recently?",
	"What's something you're passionate about?",
	"If you could travel anywhere, where would you go?",
}

// Assistant suggests conversation starters and replies. Failures never
// surface as errors; they degrade to fallbacks.
type Assistant struct {
	gen TextGenerator
	log zerolog.Logger
}

// NewAssistant creates an assistant; gen may be nil, in which case only fallbacks are returned
func NewAssistant(gen TextGenerator, logger *zerolog.Logger) *Assistant {
	a := &Assistant{gen: gen, log: log.Logger}
	if logger != nil {
		a.log = *logger
	}
	return a
}

// Icebreakers returns opening questions tailored to the two profiles
func (a *Assistant) Icebreakers(ctx context.Context, me, other models.Profile) []string {
	fallback := append([]string(nil), FallbackIcebreakers...)
	if a.gen == nil {
		return fallback
	}

	var out struct {
		Icebreakers []string `json:"icebreakers"`
	}
	if err := a.generate(ctx, icebreakerPrompt(me, other), "icebreakers", &out); err != nil {
		a.log.Warn().Err(err).Msg("Icebreaker generation failed, using fallback")
		return fallback
	}
	if len(out.Icebreakers) == 0 {
		return fallback
	}
	return out.Icebreakers
}

// IcebreakersAsync runs Icebreakers in the background and delivers exactly one result
func (a *Assistant) IcebreakersAsync(ctx context.Context, me, other models.Profile) <-chan []string {
	ch := make(chan []string, 1)
	go func() {
		defer close(ch)
		ch <- a.Icebreakers(ctx, me, other)
	}()
	return ch
}

// QuickReplies suggests short replies for me based on the tail of the conversation
func (a *Assistant) QuickReplies(ctx context.Context, messages []models.Message, me, other models.Profile) []string {
	if a.gen == nil || len(messages) == 0 {
		return []string{}
	}

	var out struct {
		Replies []string `json:"replies"`
	}
	if err := a.generate(ctx, quickReplyPrompt(messages, me, other), "replies", &out); err != nil {
		a.log.Warn().Err(err).Msg("Quick reply generation failed")
		return []string{}
	}
	if out.Replies == nil {
		return []string{}
	}
	return out.Replies
}

func (a *Assistant) generate(ctx context.Context, prompt, field string, v any) error {
	text, err := a.gen.GenerateJSON(ctx, prompt, field)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), v); err != nil {
		return fmt.Errorf("failed to parse model response: %w", err)
	}
	return nil
}

func icebreakerPrompt(me, other models.Profile) string {
	var sb strings.Builder
	sb.WriteString("Act as a playful dating coach. Write 3 open-ended icebreaker questions ")
	sb.WriteString("that one of these two people could ask the other, drawing on the interests they share or that complement each other.\n\n")
	writeProfile(&sb, "First person", me)
	writeProfile(&sb, "Second person", other)
	sb.WriteString(`Respond with a JSON object of the form {"icebreakers": ["...", "...", "..."]}.`)
	return sb.String()
}

func writeProfile(sb *strings.Builder, label string, p models.Profile) {
	fmt.Fprintf(sb, "%s:\nName: %s\nBio: %s\nInterests: %s\n\n", label, p.Name, p.Bio, strings.Join(p.Interests, ", "))
}

func quickReplyPrompt(messages []models.Message, me, other models.Profile) string {
	if len(messages) > quickReplyContext {
		messages = messages[len(messages)-quickReplyContext:]
	}

	name := func(id int64) string {
		if id == me.ID {
			return me.Name
		}
		return other.Name
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Suggest 3 short replies (under 10 words each) that %s could send to %s next. ", me.Name, other.Name)
	sb.WriteString("Mix the tone: one enthusiastic, one curious, one relaxed.\n\n")
	fmt.Fprintf(&sb, "The most recent message came from %s.\n\nConversation:\n", name(messages[len(messages)-1].SenderID))
	for _, m := range messages {
		switch m.Type {
		case models.MessageSticker:
			fmt.Fprintf(&sb, "%s: (sticker %s)\n", name(m.SenderID), m.Content)
		case models.MessageVoice:
			fmt.Fprintf(&sb, "%s: (voice note)\n", name(m.SenderID))
		default:
			fmt.Fprintf(&sb, "%s: %s\n", name(m.SenderID), m.Content)
		}
	}
	sb.WriteString("\n")
	sb.WriteString(`Respond with a JSON object of the form {"replies": ["...", "...", "..."]}.`)
	return sb.String()
}
