package service

import (
	"context"

	"github.com/minhtran-dev/studynotes-be/types"
)

// AIService is the single upstream model operation the generation core
// consumes. Implementations must classify failures through
// ClassifyUpstreamError so callers only ever see *types.QuotaError or
// *types.GenerationError.
type AIService interface {
	ChatCompletion(ctx context.Context, messages []types.Message, cfg types.ModelConfig) (string, error)
}
