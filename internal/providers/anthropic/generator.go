package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"

	"civicfund-go/internal/model"
)

// Generator produces stories through the Anthropic Messages API.
type Generator struct {
	client sdk.Client
}

// NewGenerator builds a client that never retries: one story request maps to
// one upstream call.
func NewGenerator(apiKey, baseURL string, opts ...option.RequestOption) *Generator {
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}
	options = append(options, opts...)
	return &Generator{client: sdk.NewClient(options...)}
}

func (g *Generator) Generate(ctx context.Context, req model.StoryRequest) (model.StoryResult, error) {
	msg, err := g.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(req.Model),
		MaxTokens: req.MaxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		var apiErr *sdk.Error
		if errors.As(err, &apiErr) {
			return model.StoryResult{}, &model.UpstreamError{
				Message: apiErrorMessage(apiErr),
				Status:  apiErr.StatusCode,
			}
		}
		return model.StoryResult{}, eris.Wrap(err, "anthropic: create message")
	}

	return model.StoryResult{Model: string(msg.Model), Text: joinText(msg)}, nil
}

func joinText(msg *sdk.Message) string {
	parts := make([]string, 0, len(msg.Content))
	for _, block := range msg.Content {
		if block.Type == "text" && block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}

// apiErrorMessage prefers the message from the error body over the SDK's
// verbose rendering, which includes the request URL.
func apiErrorMessage(apiErr *sdk.Error) string {
	var body struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if raw := apiErr.RawJSON(); raw != "" {
		if err := json.Unmarshal([]byte(raw), &body); err == nil && body.Error.Message != "" {
			if body.Error.Type != "" {
				return body.Error.Type + ": " + body.Error.Message
			}
			return body.Error.Message
		}
	}
	return apiErr.Error()
}
