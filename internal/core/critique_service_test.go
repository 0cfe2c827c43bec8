package core

import (
	"context"
	"errors"
	"testing"

	"github.com/huzzai/rizz-coach/internal/gemini"
	"github.com/huzzai/rizz-coach/internal/logger"
	"github.com/huzzai/rizz-coach/internal/model"
	"github.com/huzzai/rizz-coach/internal/normalize"
)

func TestCritiqueAnalyze(t *testing.T) {
	fc := &fakeCompleter{reply: `{"vibe":"W","score":9,"feedback":"Great lighting and a real smile.","caption_suggestions":["Golden hour"],"would_swipe":"Yes","improvements":["Try one outdoor shot"]}`}
	svc := NewCritiqueService(fc, logger.Nop())

	got, err := svc.Analyze(context.Background(), model.Attachment{MIMEType: "image/jpeg", Data: []byte("jpeg")})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if got.Failed || got.Vibe != model.VibeW || got.Score != 9 || got.WouldSwipe != model.SwipeYes {
		t.Errorf("unexpected critique %+v", got)
	}
	req := fc.requests()[0]
	if req.Attachment == nil || req.Attachment.MIMEType != "image/jpeg" {
		t.Errorf("image not attached: %+v", req.Attachment)
	}
}

func TestCritiqueFailure(t *testing.T) {
	fc := &fakeCompleter{err: &gemini.ServiceError{Status: 429, Message: "rate limited"}}
	svc := NewCritiqueService(fc, logger.Nop())

	got, err := svc.Analyze(context.Background(), model.Attachment{MIMEType: "image/png", Data: []byte("png")})
	if err != nil {
		t.Fatalf("service errors should not surface: %v", err)
	}
	want := normalize.FailedCritique()
	if !got.Failed || got.Feedback != want.Feedback || got.Score != want.Score {
		t.Errorf("expected failed critique, got %+v", got)
	}
}

func TestCritiqueRejectsInput(t *testing.T) {
	svc := NewCritiqueService(&fakeCompleter{}, logger.Nop())
	if _, err := svc.Analyze(context.Background(), model.Attachment{MIMEType: "text/plain", Data: []byte("x")}); !errors.Is(err, ErrUnsupportedMedia) {
		t.Errorf("expected ErrUnsupportedMedia, got %v", err)
	}
	if _, err := svc.Analyze(context.Background(), model.Attachment{MIMEType: "image/png"}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}
