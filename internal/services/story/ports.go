package story

import (
	"context"

	"civicfund-go/internal/model"
)

// Generator is the external text-generation API.
type Generator interface {
	Generate(ctx context.Context, req model.StoryRequest) (model.StoryResult, error)
}
