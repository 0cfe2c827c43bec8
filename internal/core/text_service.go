package core

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/huzzai/rizz-coach/internal/gemini"
	"github.com/huzzai/rizz-coach/internal/logger"
	"github.com/huzzai/rizz-coach/internal/model"
	"github.com/huzzai/rizz-coach/internal/prompt"
)

// TextApology is shown in place of a reply when the completion call fails.
const TextApology = "Sorry, try again."

type TextInput struct {
	Conversation string
	Screenshot   *model.Attachment
	Tone         model.ToneLevel
}

// TextReply carries the suggestion. FromScreenshot is set when the conversation was read from
// the screenshot rather than the typed text.
type TextReply struct {
	Text           string          `json:"text"`
	Tone           model.ToneLevel `json:"tone"`
	Failed         bool            `json:"failed"`
	FromScreenshot bool            `json:"from_screenshot"`
}

type TextService struct {
	completer gemini.Completer
	extractor Extractor
	logger    *logger.LogMiddleware
	inflight  singleflight.Group
}

func NewTextService(completer gemini.Completer, extractor Extractor, log *logger.LogMiddleware) *TextService {
	return &TextService{completer: completer, extractor: extractor, logger: log}
}

// Reply suggests a response to the conversation. Text read from a screenshot wins over typed text.
func (s *TextService) Reply(ctx context.Context, in TextInput) (TextReply, error) {
	if !in.Tone.Valid() {
		return TextReply{}, ErrInvalidTone
	}

	conversation := in.Conversation
	fromScreenshot := false
	if in.Screenshot != nil {
		if !isImage(in.Screenshot.MIMEType) {
			return TextReply{}, ErrUnsupportedMedia
		}
		extracted, err := s.extractor.ExtractText(ctx, *in.Screenshot)
		if err != nil {
			s.logger.Logger(ctx).Error("[Text] Screenshot extraction failed", zap.Error(err))
			return TextReply{}, fmt.Errorf("%w: %w", ErrExtraction, err)
		}
		if strings.TrimSpace(extracted) != "" {
			conversation = extracted
			fromScreenshot = true
		}
	}
	if strings.TrimSpace(conversation) == "" {
		return TextReply{}, ErrEmptyInput
	}

	key := fmt.Sprintf("%d|%s", in.Tone, conversation)
	text, shared, err := sharedGenerate(ctx, &s.inflight, key, s.completer, gemini.Request{Prompt: prompt.TextResponse(conversation, in.Tone)})
	if err != nil {
		s.logger.Logger(ctx).Error("[Text] Failed to generate a response", zap.Error(err))
		return TextReply{Text: TextApology, Tone: in.Tone, Failed: true, FromScreenshot: fromScreenshot}, nil
	}
	if shared {
		s.logger.Logger(ctx).Debug("[Text] Shared result with a duplicate request")
	}
	return TextReply{Text: strings.TrimSpace(text), Tone: in.Tone, FromScreenshot: fromScreenshot}, nil
}
