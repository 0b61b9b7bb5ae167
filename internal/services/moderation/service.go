package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// minDescriptionLength is the shortest plain-text description worth
	// analyzing at all
	minDescriptionLength = 15

	// minFallbackWords is the shortest description the keyword
	// heuristic will accept
	minFallbackWords = 5

	// relatedThreshold is the confidence above which the keyword
	// heuristic calls the text event-related
	relatedThreshold = 0.3

	defaultModel = openai.GPT4oMini
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	codeFencePattern  = regexp.MustCompile("```json|```")
)

// commonPlaceholders are editor defaults users forget to replace
var commonPlaceholders = []string{"desc", "description", "text", "content", "enter text here"}

// eventKeywords drive the fallback heuristic
var eventKeywords = []string{
	"event", "workshop", "concert", "conference", "meetup", "webinar",
	"party", "gathering", "festival", "celebration", "lecture", "seminar",
	"date", "time", "schedule", "location", "venue", "attend", "join",
	"register", "rsvp", "ticket", "free", "paid", "host", "speaker",
	"performer", "artist", "agenda", "program",
}

// Config holds configuration for the moderation service
type Config struct {
	// Completer is the chat-completion backend. Nil runs the service
	// on the keyword heuristic alone.
	Completer Completer

	// Model overrides the chat model, defaults to gpt-4o-mini
	Model string
}

type service struct {
	completer Completer
	model     string
}

// New creates a new moderation service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &service{
		completer: cfg.Completer,
		model:     model,
	}, nil
}

// verdictPayload is the JSON shape the model is asked to reply with
type verdictPayload struct {
	IsEventRelated bool    `json:"is_event_related"`
	Confidence     float64 `json:"confidence"`
	Reason         string  `json:"reason"`
}

// ValidateDescription checks whether a description plausibly describes
// an event
func (s *service) ValidateDescription(ctx context.Context, input *ValidateDescriptionInput) (*ValidateDescriptionOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	text := extractText(input.Description)

	if len(text) < minDescriptionLength {
		return &ValidateDescriptionOutput{
			IsEventRelated: false,
			Confidence:     0,
			Reason:         "Description is too short or empty. Please provide more details.",
		}, nil
	}

	lowered := strings.ToLower(text)
	for _, placeholder := range commonPlaceholders {
		if lowered == placeholder {
			return &ValidateDescriptionOutput{
				IsEventRelated: false,
				Confidence:     0,
				Reason:         "Description appears to be a placeholder. Please provide actual event details.",
			}, nil
		}
	}

	if s.completer == nil {
		return keywordVerdict(lowered), nil
	}

	verdict, err := s.askModel(ctx, text)
	if err != nil {
		log.Printf("Error validating description with model: %v", err)
		return keywordVerdict(lowered), nil
	}

	return verdict, nil
}

// askModel asks the chat model for a verdict on the plain text
func (s *service) askModel(ctx context.Context, text string) (*ValidateDescriptionOutput, error) {
	prompt := fmt.Sprintf(`Analyze if the following text is describing an event (like a concert, conference, meetup, party, etc.).
Respond with a JSON object only with properties: "is_event_related" (boolean), "confidence" (number 0-1), "reason" (string).
Text to analyze: %q`, text)

	resp, err := s.completer.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: 0.2,
		MaxTokens:   200,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to complete chat: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	// Models wrap JSON replies in code fences more often than not
	raw := strings.TrimSpace(codeFencePattern.ReplaceAllString(resp.Choices[0].Message.Content, ""))

	var verdict verdictPayload
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		return nil, fmt.Errorf("failed to parse verdict: %w", err)
	}

	return &ValidateDescriptionOutput{
		IsEventRelated: verdict.IsEventRelated,
		Confidence:     verdict.Confidence,
		Reason:         verdict.Reason,
	}, nil
}

// keywordVerdict scores the lowercased text against the event keyword
// list: one point per matched keyword, full confidence at five
func keywordVerdict(lowered string) *ValidateDescriptionOutput {
	words := strings.Fields(lowered)
	if len(words) < minFallbackWords {
		return &ValidateDescriptionOutput{
			IsEventRelated: false,
			Confidence:     0,
			Reason:         "Description is too brief to be an event description. Please provide more details.",
		}
	}

	matches := 0
	for _, keyword := range eventKeywords {
		if strings.Contains(lowered, keyword) {
			matches++
		}
	}

	confidence := float64(matches) / 5
	if confidence > 1 {
		confidence = 1
	}

	if confidence > relatedThreshold {
		return &ValidateDescriptionOutput{
			IsEventRelated: true,
			Confidence:     confidence,
			Reason:         fmt.Sprintf("Content appears to be event-related with %d%% confidence.", int(confidence*100+0.5)),
		}
	}

	return &ValidateDescriptionOutput{
		IsEventRelated: false,
		Confidence:     confidence,
		Reason:         "Content doesn't appear to be describing an event. Consider adding more event details like date, time, location, etc.",
	}
}

// extractText strips markup down to normalized plain text
func extractText(html string) string {
	text := htmlTagPattern.ReplaceAllString(html, " ")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = whitespacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
