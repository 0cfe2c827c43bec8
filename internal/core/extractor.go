package core

import (
	"context"
	"strings"

	"github.com/huzzai/rizz-coach/internal/gemini"
	"github.com/huzzai/rizz-coach/internal/model"
	"github.com/huzzai/rizz-coach/internal/prompt"
)

// Extractor turns a conversation screenshot into plain text.
type Extractor interface {
	ExtractText(ctx context.Context, image model.Attachment) (string, error)
}

// GeminiExtractor asks the completion service to transcribe the image.
type GeminiExtractor struct {
	completer gemini.Completer
}

func NewGeminiExtractor(completer gemini.Completer) *GeminiExtractor {
	return &GeminiExtractor{completer: completer}
}

func (e *GeminiExtractor) ExtractText(ctx context.Context, image model.Attachment) (string, error) {
	text, err := e.completer.Generate(ctx, gemini.Request{Prompt: prompt.ExtractText(), Attachment: &image})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func isImage(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mimeType)), "image/")
}
