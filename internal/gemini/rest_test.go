package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/huzzai/rizz-coach/internal/model"
)

func newTestREST(t *testing.T, handler http.HandlerFunc) *RESTTransport {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRESTTransport(Settings{APIKey: "test-key", Endpoint: srv.URL + "/v1beta/", Model: "test-model"}, srv.Client())
}

func TestRESTGenerateSendsPromptAndAttachment(t *testing.T) {
	var got restRequest
	rt := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/v1beta/models/test-model:generateContent" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("key query = %q", r.URL.Query().Get("key"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  hey you  "}]}}]}`))
	})

	text, err := rt.Generate(context.Background(), Request{
		Prompt:     "rate my pic",
		Attachment: &model.Attachment{MIMEType: "image/jpeg", Data: []byte("hi")},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if text != "  hey you  " {
		t.Errorf("text should be returned untouched, got %q", text)
	}
	if len(got.Contents) != 1 || len(got.Contents[0].Parts) != 2 {
		t.Fatalf("unexpected request shape: %+v", got)
	}
	if got.Contents[0].Parts[0].Text != "rate my pic" {
		t.Errorf("first part text = %q", got.Contents[0].Parts[0].Text)
	}
	inline := got.Contents[0].Parts[1].InlineData
	if inline == nil || inline.MimeType != "image/jpeg" || inline.Data != "aGk=" {
		t.Errorf("inline part = %+v", inline)
	}
}

func TestRESTServiceErrorUsesPayloadMessage(t *testing.T) {
	rt := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	})

	_, err := rt.Generate(context.Background(), Request{Prompt: "hi"})
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %T %v", err, err)
	}
	if svcErr.Status != http.StatusTooManyRequests || svcErr.Message != "rate limited" {
		t.Errorf("got %+v", svcErr)
	}
}

func TestRESTServiceErrorFallsBackToStatusText(t *testing.T) {
	rt := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`upstream sad`))
	})

	_, err := rt.Generate(context.Background(), Request{Prompt: "hi"})
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if svcErr.Message != "Service Unavailable" {
		t.Errorf("message = %q", svcErr.Message)
	}
}

func TestRESTEmptyCandidates(t *testing.T) {
	rt := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := rt.Generate(context.Background(), Request{Prompt: "hi"})
	if !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
}

func TestRESTTransportFailureIsRedacted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	rt := NewRESTTransport(Settings{APIKey: "super-secret", Endpoint: endpoint, Model: "m"}, nil)
	_, err := rt.Generate(context.Background(), Request{Prompt: "hi"})

	var tErr *TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected TransportError, got %T %v", err, err)
	}
	if strings.Contains(err.Error(), "super-secret") {
		t.Errorf("api key leaked in error: %v", err)
	}
}
