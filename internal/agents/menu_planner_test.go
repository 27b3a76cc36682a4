package agents

import (
	"context"
	"errors"
	"strings"
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"comboplanner/internal/models"
)

// MockLLM is a mock implementation of the LLM interface
type MockLLM struct {
	mock.Mock
}

func (m *MockLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	args := m.Called(ctx, messages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llms.ContentResponse), args.Error(1)
}

func reply(content string) *llms.ContentResponse {
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: content}}}
}

func testMenu() *models.ScopedMenu {
	return &models.ScopedMenu{
		Categories: map[string][]models.MenuItem{
			"tacos": {{Name: "Carnitas", Tags: []string{"pork"}}},
			"sides": {{Name: "Black Beans"}},
		},
		Beverages: map[string][]models.MenuItem{
			"beer": {{Name: "Corona"}},
		},
	}
}

func testPrefs() models.Preferences {
	return models.PreferencesRequest{Meal: "dinner", PartySize: 2.0, Alcohol: "beer"}.Sanitize()
}

const validReply = `{"recommendations":[{"title":"Taco Night","tags":["pork"],"items":[{"category":"Tacos","name":"Carnitas","note":"pair"},{"category":"Drink","name":"Corona"}],"rationale":"Simple and classic."}]}`

func TestNewMenuPlanner(t *testing.T) {
	mockLLM := new(MockLLM)
	planner := NewMenuPlanner(mockLLM, WithTemperature(0.2), WithMaxTokens(100), WithModelName("gpt-4o-mini"))

	assert.NotNil(t, planner)
	assert.Equal(t, "llm", planner.Name())
	assert.Equal(t, RoleMenuPlanner, planner.GetRole())
	assert.Equal(t, 0.2, planner.temperature)
	assert.Equal(t, 100, planner.maxTokens)
	assert.Equal(t, gobreaker.StateClosed, planner.BreakerState())
}

func TestMenuPlannerRecommend(t *testing.T) {
	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.MatchedBy(func(msgs []llms.MessageContent) bool {
		if len(msgs) != 2 || msgs[0].Role != llms.ChatMessageTypeSystem || msgs[1].Role != llms.ChatMessageTypeHuman {
			return false
		}
		text, ok := msgs[1].Parts[0].(llms.TextContent)
		return ok && strings.Contains(text.Text, "Carnitas") && strings.Contains(text.Text, `"partySize":2`)
	})).Return(reply(validReply), nil)

	planner := NewMenuPlanner(mockLLM)
	recs, err := planner.Recommend(context.Background(), testMenu(), testPrefs())
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.Equal(t, "Taco Night", recs[0].Title)
	assert.Equal(t, []string{"pork", models.TagLLM}, recs[0].Tags)
	assert.Equal(t, "pair", recs[0].Items[0].Note)
	assert.Empty(t, recs[0].EstimateTotal)

	events := planner.RecentEvents(1)
	require.Len(t, events, 1)
	assert.Equal(t, "recommendations", events[0].Type)
	mockLLM.AssertExpectations(t)
}

func TestMenuPlannerUpstreamErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		reason string
	}{
		{"rate limited", errors.New("API returned unexpected status code: 429: slow down"), ReasonRateLimit},
		{"forbidden", errors.New("API returned unexpected status code: 403"), ReasonModelUnavailable},
		{"missing model", errors.New("API returned unexpected status code: 404: model not found"), ReasonModelUnavailable},
		{"server error", errors.New("API returned unexpected status code: 500"), ReasonUpstream},
		{"timeout", context.DeadlineExceeded, ReasonTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLLM := new(MockLLM)
			mockLLM.On("GenerateContent", mock.Anything, mock.Anything).Return(nil, tt.err)

			_, err := NewMenuPlanner(mockLLM).Recommend(context.Background(), testMenu(), testPrefs())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUpstream)

			var upstream *UpstreamError
			require.ErrorAs(t, err, &upstream)
			assert.Equal(t, tt.reason, upstream.FailureReason())
		})
	}
}

func TestMenuPlannerInvalidOutput(t *testing.T) {
	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.Anything).Return(reply("Sure! Here are some combos"), nil)

	_, err := NewMenuPlanner(mockLLM).Recommend(context.Background(), testMenu(), testPrefs())
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.NotErrorIs(t, err, ErrUpstream)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, ReasonInvalidResponse, upstream.Reason)
}

func TestMenuPlannerErrorMarker(t *testing.T) {
	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.Anything).
		Return(reply(`{"recommendations":[],"error":"rate-limit"}`), nil)

	_, err := NewMenuPlanner(mockLLM).Recommend(context.Background(), testMenu(), testPrefs())
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, ReasonRateLimit, upstream.Reason)
}

func TestMenuPlannerCircuitBreaker(t *testing.T) {
	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.Anything).
		Return(nil, errors.New("API returned unexpected status code: 502")).Times(5)

	planner := NewMenuPlanner(mockLLM)
	for i := 0; i < 5; i++ {
		_, err := planner.Recommend(context.Background(), testMenu(), testPrefs())
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, planner.BreakerState())

	_, err := planner.Recommend(context.Background(), testMenu(), testPrefs())
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, ReasonCircuitOpen, upstream.Reason)
	mockLLM.AssertNumberOfCalls(t, "GenerateContent", 5)
}

func TestMenuPlannerNoModel(t *testing.T) {
	_, err := NewMenuPlanner(nil).Recommend(context.Background(), testMenu(), testPrefs())
	assert.ErrorIs(t, err, ErrNoModel)
}
