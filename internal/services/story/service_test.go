package story

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"civicfund-go/internal/model"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req model.StoryRequest) (model.StoryResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.StoryResult), args.Error(1)
}

func testConfig() Config {
	return Config{DefaultModel: "claude-haiku-4-5-20251001", MaxTokens: 512}
}

func TestGenerateForwardsPrompt(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, model.StoryRequest{Model: "claude-sonnet-4-5-20250929", Prompt: "Un parque nuevo", MaxTokens: 512}).
		Return(model.StoryResult{Model: "claude-sonnet-4-5-20250929", Text: "Había una vez un parque."}, nil).Once()

	svc := NewService(gen, testConfig())
	res, err := svc.Generate(context.Background(), "Un parque nuevo", "claude-sonnet-4-5-20250929")
	require.NoError(t, err)
	assert.Equal(t, "Había una vez un parque.", res.Text)
	assert.Equal(t, "claude-sonnet-4-5-20250929", res.Model)
	gen.AssertExpectations(t)
}

func TestGenerateEmptyPromptUsesFallback(t *testing.T) {
	for _, prompt := range []string{"", "   \n\t"} {
		gen := new(MockGenerator)
		gen.On("Generate", mock.Anything, mock.MatchedBy(func(req model.StoryRequest) bool {
			return req.Prompt == "Write a short bedtime story about a unicorn." && req.Model == "claude-haiku-4-5-20251001"
		})).Return(model.StoryResult{Text: "Historia"}, nil).Once()

		svc := NewService(gen, testConfig())
		res, err := svc.Generate(context.Background(), prompt, "")
		require.NoError(t, err)
		assert.Equal(t, "claude-haiku-4-5-20251001", res.Model)
		gen.AssertExpectations(t)
	}
}

func TestGenerateEchoesRequestedModel(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).
		Return(model.StoryResult{Model: "claude-3-5-haiku-20241022-snapshot", Text: "Historia"}, nil).Twice()

	svc := NewService(gen, testConfig())
	res, err := svc.Generate(context.Background(), "hola", "claude-sonnet-4-5")
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-5", res.Model)

	res, err = svc.Generate(context.Background(), "hola", "")
	require.NoError(t, err)
	assert.Equal(t, "claude-haiku-4-5-20251001", res.Model)
	gen.AssertExpectations(t)
}

func TestGenerateUpstreamFailureWithoutStatus(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).
		Return(model.StoryResult{}, eris.Wrap(errors.New("dial tcp: connection refused"), "anthropic: create message")).Once()

	svc := NewService(gen, testConfig())
	_, err := svc.Generate(context.Background(), "hola", "")

	var upErr *model.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusInternalServerError, upErr.Status)
	assert.Equal(t, "dial tcp: connection refused", upErr.Message)
	gen.AssertNumberOfCalls(t, "Generate", 1)
}

func TestGenerateUpstreamStatusMirrored(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).
		Return(model.StoryResult{}, &model.UpstreamError{Message: "rate_limit_error: slow down", Status: http.StatusTooManyRequests}).Once()

	svc := NewService(gen, testConfig())
	_, err := svc.Generate(context.Background(), "hola", "")

	var upErr *model.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusTooManyRequests, upErr.Status)
	assert.Equal(t, "rate_limit_error: slow down", upErr.Message)
}

func TestGenerateRateLimited(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return(model.StoryResult{Text: "ok"}, nil)

	cfg := testConfig()
	cfg.RateLimit = 0.001
	svc := NewService(gen, cfg)

	_, err := svc.Generate(context.Background(), "uno", "")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = svc.Generate(ctx, "dos", "")

	var upErr *model.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusServiceUnavailable, upErr.Status)
	gen.AssertNumberOfCalls(t, "Generate", 1)
}

func TestAsUpstreamErrorDefaults(t *testing.T) {
	upErr := asUpstreamError(&model.UpstreamError{})
	assert.Equal(t, http.StatusInternalServerError, upErr.Status)
	assert.Equal(t, "text generation failed", upErr.Message)
}
