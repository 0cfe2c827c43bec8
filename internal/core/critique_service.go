package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/huzzai/rizz-coach/internal/gemini"
	"github.com/huzzai/rizz-coach/internal/logger"
	"github.com/huzzai/rizz-coach/internal/model"
	"github.com/huzzai/rizz-coach/internal/normalize"
	"github.com/huzzai/rizz-coach/internal/prompt"
)

type CritiqueResult struct {
	model.ImageCritique
	Failed bool `json:"failed"`
}

type CritiqueService struct {
	completer gemini.Completer
	logger    *logger.LogMiddleware
	inflight  singleflight.Group
}

func NewCritiqueService(completer gemini.Completer, log *logger.LogMiddleware) *CritiqueService {
	return &CritiqueService{completer: completer, logger: log}
}

// Analyze rates a profile photo. A failed call yields the fixed failure critique, not an error.
func (s *CritiqueService) Analyze(ctx context.Context, image model.Attachment) (CritiqueResult, error) {
	if !isImage(image.MIMEType) {
		return CritiqueResult{}, ErrUnsupportedMedia
	}
	if len(image.Data) == 0 {
		return CritiqueResult{}, ErrEmptyInput
	}

	sum := sha256.Sum256(image.Data)
	key := image.MIMEType + "|" + hex.EncodeToString(sum[:])
	text, _, err := sharedGenerate(ctx, &s.inflight, key, s.completer, gemini.Request{Prompt: prompt.ImageCritique(), Attachment: &image})
	if err != nil {
		s.logger.Logger(ctx).Error("[Critique] Failed to analyze image", zap.Error(err))
		return CritiqueResult{ImageCritique: normalize.FailedCritique(), Failed: true}, nil
	}

	critique := normalize.Critique(text)
	s.logger.Logger(ctx).Debug("[Critique] Analysis complete",
		zap.String("vibe", string(critique.Vibe)),
		zap.Float64("score", critique.Score),
	)
	return CritiqueResult{ImageCritique: critique}, nil
}
