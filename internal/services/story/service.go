package story

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"civicfund-go/internal/metrics"
	"civicfund-go/internal/model"
)

// FallbackPrompt is sent upstream when the caller's prompt is blank.
const FallbackPrompt = "Write a short bedtime story about a unicorn."

type Config struct {
	DefaultModel string
	MaxTokens    int64
	// RateLimit caps outbound calls per second; zero or less disables it.
	RateLimit float64
}

type Service struct {
	generator Generator
	cfg       Config
	limiter   *rate.Limiter
}

func NewService(generator Generator, cfg Config) *Service {
	limit := rate.Inf
	burst := 1
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
		burst = max(int(cfg.RateLimit), 1)
	}
	return &Service{
		generator: generator,
		cfg:       cfg,
		limiter:   rate.NewLimiter(limit, burst),
	}
}

// Generate makes exactly one upstream call. Every failure comes back as a
// *model.UpstreamError with a non-zero Status.
func (s *Service) Generate(ctx context.Context, prompt, modelName string) (model.StoryResult, error) {
	fallback := strings.TrimSpace(prompt) == ""
	if fallback {
		prompt = FallbackPrompt
	}
	if modelName == "" {
		modelName = s.cfg.DefaultModel
	}

	if err := s.limiter.Wait(ctx); err != nil {
		metrics.IncrementStoryRequest("throttled", fallback)
		return model.StoryResult{}, &model.UpstreamError{Message: err.Error(), Status: http.StatusServiceUnavailable}
	}

	start := time.Now()
	result, err := s.generator.Generate(ctx, model.StoryRequest{
		Model:     modelName,
		Prompt:    prompt,
		MaxTokens: s.cfg.MaxTokens,
	})
	if err != nil {
		upErr := asUpstreamError(err)
		metrics.RecordUpstreamLatency(modelName, "error", time.Since(start))
		metrics.IncrementStoryRequest("error", fallback)
		zap.L().Error("story generation failed",
			zap.String("model", modelName),
			zap.Int("status", upErr.Status),
			zap.Error(err),
		)
		return model.StoryResult{}, upErr
	}

	metrics.RecordUpstreamLatency(modelName, "ok", time.Since(start))
	metrics.IncrementStoryRequest("ok", fallback)
	// Echo the model that was asked for, not the snapshot the upstream reports.
	result.Model = modelName
	return result, nil
}

func asUpstreamError(err error) *model.UpstreamError {
	out := &model.UpstreamError{}
	var upErr *model.UpstreamError
	if errors.As(err, &upErr) {
		out.Message = upErr.Message
		out.Status = upErr.Status
	} else {
		out.Message = eris.Cause(err).Error()
	}
	if out.Message == "" {
		out.Message = "text generation failed"
	}
	if out.Status == 0 {
		out.Status = http.StatusInternalServerError
	}
	return out
}
