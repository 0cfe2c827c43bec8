package core

import (
	"context"
	"sync"

	"github.com/huzzai/rizz-coach/internal/gemini"
	"github.com/huzzai/rizz-coach/internal/model"
)

type fakeCompleter struct {
	reply string
	err   error

	// started receives once per call when set; block holds the call until closed.
	started chan struct{}
	block   chan struct{}

	mu    sync.Mutex
	calls []gemini.Request
}

func (f *fakeCompleter) Generate(ctx context.Context, req gemini.Request) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.err
}

func (f *fakeCompleter) requests() []gemini.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]gemini.Request(nil), f.calls...)
}

type fakeExtractor struct {
	text string
	err  error
	got  []model.Attachment
}

func (f *fakeExtractor) ExtractText(_ context.Context, image model.Attachment) (string, error) {
	f.got = append(f.got, image)
	return f.text, f.err
}
