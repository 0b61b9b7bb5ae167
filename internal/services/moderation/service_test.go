package moderation

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/organizerhq/backoffice/internal/services/moderation/mocks"
)

type ModerationServiceTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	completer *mocks.MockCompleter
	service   Service
	ctx       context.Context
}

func (s *ModerationServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.completer = mocks.NewMockCompleter(s.ctrl)
	s.ctx = context.Background()

	service, err := New(&Config{
		Completer: s.completer,
	})
	s.Require().NoError(err)
	s.service = service
}

func (s *ModerationServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestModerationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ModerationServiceTestSuite))
}

func completionReply(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{
				Message: openai.ChatCompletionMessage{
					Role:    openai.ChatMessageRoleAssistant,
					Content: content,
				},
			},
		},
	}
}

func (s *ModerationServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)
}

func (s *ModerationServiceTestSuite) TestNilInput() {
	_, err := s.service.ValidateDescription(s.ctx, nil)
	s.ErrorIs(err, ErrNilInput)
}

func (s *ModerationServiceTestSuite) TestShortDescriptionRejectedWithoutModelCall() {
	result, err := s.service.ValidateDescription(s.ctx, &ValidateDescriptionInput{
		Description: "<p>too short</p>",
	})
	s.Require().NoError(err)

	s.False(result.IsEventRelated)
	s.Zero(result.Confidence)
	s.Contains(result.Reason, "too short")
}

func (s *ModerationServiceTestSuite) TestPlaceholderRejectedWithoutModelCall() {
	result, err := s.service.ValidateDescription(s.ctx, &ValidateDescriptionInput{
		Description: "<h1>Enter Text Here</h1>",
	})
	s.Require().NoError(err)

	s.False(result.IsEventRelated)
	s.Contains(result.Reason, "placeholder")
}

func (s *ModerationServiceTestSuite) TestModelVerdictParsed() {
	s.completer.EXPECT().
		CreateChatCompletion(s.ctx, gomock.Any()).
		Return(completionReply(`{"is_event_related": true, "confidence": 0.92, "reason": "Mentions a venue and a date."}`), nil)

	result, err := s.service.ValidateDescription(s.ctx, &ValidateDescriptionInput{
		Description: "Join us at the Harbor Hall on June 3rd for live music.",
	})
	s.Require().NoError(err)

	s.True(result.IsEventRelated)
	s.Equal(0.92, result.Confidence)
	s.Equal("Mentions a venue and a date.", result.Reason)
}

func (s *ModerationServiceTestSuite) TestModelVerdictWithCodeFences() {
	s.completer.EXPECT().
		CreateChatCompletion(s.ctx, gomock.Any()).
		Return(completionReply("```json\n{\"is_event_related\": true, \"confidence\": 0.8, \"reason\": \"ok\"}\n```"), nil)

	result, err := s.service.ValidateDescription(s.ctx, &ValidateDescriptionInput{
		Description: "Join us at the Harbor Hall on June 3rd for live music.",
	})
	s.Require().NoError(err)

	s.True(result.IsEventRelated)
	s.Equal(0.8, result.Confidence)
}

func (s *ModerationServiceTestSuite) TestModelErrorFallsBackToKeywords() {
	s.completer.EXPECT().
		CreateChatCompletion(s.ctx, gomock.Any()).
		Return(openai.ChatCompletionResponse{}, errors.New("rate limited"))

	result, err := s.service.ValidateDescription(s.ctx, &ValidateDescriptionInput{
		Description: "A free concert at our venue, register for tickets and join the party.",
	})
	s.Require().NoError(err)

	// concert, venue, register, ticket, join, free, party
	s.True(result.IsEventRelated)
	s.Equal(1.0, result.Confidence)
}

func (s *ModerationServiceTestSuite) TestUnparseableReplyFallsBackToKeywords() {
	s.completer.EXPECT().
		CreateChatCompletion(s.ctx, gomock.Any()).
		Return(completionReply("I think this is probably an event."), nil)

	result, err := s.service.ValidateDescription(s.ctx, &ValidateDescriptionInput{
		Description: "We sell industrial fasteners in bulk quantities every weekday morning.",
	})
	s.Require().NoError(err)

	s.False(result.IsEventRelated)
}

func (s *ModerationServiceTestSuite) TestNoCompleterUsesKeywords() {
	service, err := New(&Config{})
	s.Require().NoError(err)

	result, err := service.ValidateDescription(s.ctx, &ValidateDescriptionInput{
		Description: "A workshop and seminar with a guest speaker, schedule to follow.",
	})
	s.Require().NoError(err)

	// workshop, seminar, speaker, schedule
	s.True(result.IsEventRelated)
	s.InDelta(0.8, result.Confidence, 0.0001)
}

func (s *ModerationServiceTestSuite) TestKeywordFallbackRejectsFewWords() {
	service, err := New(&Config{})
	s.Require().NoError(err)

	result, err := service.ValidateDescription(s.ctx, &ValidateDescriptionInput{
		Description: "concert tickets available now",
	})
	s.Require().NoError(err)

	s.False(result.IsEventRelated)
	s.Contains(result.Reason, "too brief")
}

func (s *ModerationServiceTestSuite) TestKeywordFallbackBelowThreshold() {
	service, err := New(&Config{})
	s.Require().NoError(err)

	result, err := service.ValidateDescription(s.ctx, &ValidateDescriptionInput{
		Description: "Our company produces reclaimed lumber for residential flooring projects nationwide.",
	})
	s.Require().NoError(err)

	s.False(result.IsEventRelated)
	s.Less(result.Confidence, 0.4)
}
