package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	app_errors "polychat/backend/internal/errors"
	"polychat/backend/internal/llm"
	"polychat/backend/internal/metrics"
)

// ImageService generates images on demand. Nothing is persisted.
type ImageService struct {
	generator llm.ImageGenerator
	limiter   *KeyedLimiter
	metrics   *metrics.Recorder
}

// NewImageService accepts a nil generator when no Gemini key is configured;
// every request then fails with ErrProviderUnavailable.
func NewImageService(generator llm.ImageGenerator, limiter *KeyedLimiter, recorder *metrics.Recorder) *ImageService {
	if limiter == nil {
		limiter = NewKeyedLimiter(0)
	}
	return &ImageService{generator: generator, limiter: limiter, metrics: recorder}
}

// Generate returns the image as a data URL. Vendor failures are logged and
// reported as a generic internal error.
func (s *ImageService) Generate(ctx context.Context, userID, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", fmt.Errorf("%w: prompt is required", app_errors.ErrValidation)
	}
	if s.generator == nil {
		return "", fmt.Errorf("%w: image generation requires GEMINI_API_KEY", app_errors.ErrProviderUnavailable)
	}
	if !s.limiter.Allow(userID) {
		return "", fmt.Errorf("%w: too many image requests, try again later", app_errors.ErrRateLimited)
	}

	img, err := s.generator.GenerateImage(ctx, prompt)
	if err != nil {
		s.metrics.RecordImage(false)
		slog.Error("Image generation failed", "user_id", userID, "error", err)
		return "", fmt.Errorf("%w: failed to generate image", app_errors.ErrInternal)
	}
	s.metrics.RecordImage(true)
	return img.DataURL(), nil
}
