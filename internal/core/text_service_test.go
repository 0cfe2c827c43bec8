package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/huzzai/rizz-coach/internal/gemini"
	"github.com/huzzai/rizz-coach/internal/logger"
	"github.com/huzzai/rizz-coach/internal/model"
)

func TestTextReplyTyped(t *testing.T) {
	fc := &fakeCompleter{reply: "  haha you wish 😏\n"}
	svc := NewTextService(fc, &fakeExtractor{}, logger.Nop())

	got, err := svc.Reply(context.Background(), TextInput{Conversation: "hey what's up", Tone: model.ToneBold})
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if got.Text != "haha you wish 😏" || got.Failed || got.FromScreenshot {
		t.Errorf("unexpected reply: %+v", got)
	}
	reqs := fc.requests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 call, got %d", len(reqs))
	}
	if !strings.Contains(reqs[0].Prompt, "hey what's up") || !strings.Contains(reqs[0].Prompt, model.ToneBold.Descriptor()) {
		t.Errorf("prompt missing conversation or tone: %q", reqs[0].Prompt)
	}
}

func TestTextReplyScreenshotWins(t *testing.T) {
	fc := &fakeCompleter{reply: "nice one"}
	ex := &fakeExtractor{text: "from the screenshot"}
	svc := NewTextService(fc, ex, logger.Nop())

	shot := &model.Attachment{MIMEType: "image/png", Data: []byte{1, 2, 3}}
	got, err := svc.Reply(context.Background(), TextInput{Conversation: "typed", Screenshot: shot, Tone: model.ToneCasual})
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if !got.FromScreenshot {
		t.Error("expected reply to be marked as from screenshot")
	}
	if p := fc.requests()[0].Prompt; !strings.Contains(p, "from the screenshot") || strings.Contains(p, "typed") {
		t.Errorf("prompt should use extracted text only: %q", p)
	}
	if len(ex.got) != 1 || ex.got[0].MIMEType != "image/png" {
		t.Errorf("extractor not called with screenshot: %+v", ex.got)
	}
}

func TestTextReplyBlankScreenshotFallsBackToTyped(t *testing.T) {
	fc := &fakeCompleter{reply: "ok then"}
	svc := NewTextService(fc, &fakeExtractor{text: "  \n"}, logger.Nop())

	got, err := svc.Reply(context.Background(), TextInput{
		Conversation: "typed text",
		Screenshot:   &model.Attachment{MIMEType: "image/jpeg", Data: []byte{1}},
	})
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if got.FromScreenshot {
		t.Error("blank extraction should not count as screenshot text")
	}
	if !strings.Contains(fc.requests()[0].Prompt, "typed text") {
		t.Error("expected typed text in prompt")
	}
}

func TestTextReplyRejectsInput(t *testing.T) {
	tests := []struct {
		name string
		in   TextInput
		ex   *fakeExtractor
		want error
	}{
		{"blank", TextInput{Conversation: "   "}, &fakeExtractor{}, ErrEmptyInput},
		{"bad tone", TextInput{Conversation: "hi", Tone: 7}, &fakeExtractor{}, ErrInvalidTone},
		{"not an image", TextInput{Screenshot: &model.Attachment{MIMEType: "application/pdf", Data: []byte{1}}}, &fakeExtractor{}, ErrUnsupportedMedia},
		{"extraction failed", TextInput{Screenshot: &model.Attachment{MIMEType: "image/png", Data: []byte{1}}}, &fakeExtractor{err: errors.New("boom")}, ErrExtraction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeCompleter{reply: "unused"}
			svc := NewTextService(fc, tt.ex, logger.Nop())
			_, err := svc.Reply(context.Background(), tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if n := len(fc.requests()); n != 0 {
				t.Errorf("completion should not be called, got %d calls", n)
			}
		})
	}
}

func TestTextReplyServiceErrorApologizes(t *testing.T) {
	fc := &fakeCompleter{err: &gemini.ServiceError{Status: 429, Message: "rate limited"}}
	svc := NewTextService(fc, &fakeExtractor{}, logger.Nop())

	got, err := svc.Reply(context.Background(), TextInput{Conversation: "hello", Tone: model.ToneFlirty})
	if err != nil {
		t.Fatalf("service errors should not surface: %v", err)
	}
	if !got.Failed || got.Text != TextApology {
		t.Errorf("expected apology, got %+v", got)
	}
}

func TestGeminiExtractor(t *testing.T) {
	fc := &fakeCompleter{reply: "Me: hi\nThem: hey\n"}
	ex := NewGeminiExtractor(fc)
	img := model.Attachment{MIMEType: "image/png", Data: []byte("png")}

	text, err := ex.ExtractText(context.Background(), img)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != "Me: hi\nThem: hey" {
		t.Errorf("unexpected text %q", text)
	}
	req := fc.requests()[0]
	if req.Attachment == nil || string(req.Attachment.Data) != "png" {
		t.Errorf("attachment not forwarded: %+v", req.Attachment)
	}
}
