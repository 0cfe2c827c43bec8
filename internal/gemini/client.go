// Package gemini talks to the Gemini generateContent API.
//
// A Client holds an ordered list of transports. Each call tries them in order, once each,
// and returns the first reply. There is no retry or backoff beyond that.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/huzzai/rizz-coach/internal/logger"
	"github.com/huzzai/rizz-coach/internal/model"
	"github.com/huzzai/rizz-coach/internal/prompt"
)

const (
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel    = "gemini-2.0-flash-exp"

	// MaxConcurrentRequests bounds outstanding calls across all features.
	MaxConcurrentRequests = 10
)

// Settings are the three inputs every call needs.
type Settings struct {
	APIKey   string
	Endpoint string
	Model    string
}

// Validate reports the first missing setting.
func (s Settings) Validate() error {
	switch {
	case s.APIKey == "":
		return &ConfigError{Setting: "GEMINI_API_KEY"}
	case s.Endpoint == "":
		return &ConfigError{Setting: "GEMINI_ENDPOINT"}
	case s.Model == "":
		return &ConfigError{Setting: "GEMINI_MODEL"}
	}
	return nil
}

// Request is one prompt plus an optional inline attachment.
type Request struct {
	Prompt     string
	Attachment *model.Attachment
}

// Transport performs a single request/response exchange.
type Transport interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

// Completer is what feature code depends on.
type Completer interface {
	Generate(ctx context.Context, req Request) (string, error)
}

type Client struct {
	settings   Settings
	transports []Transport
	logger     *logger.LogMiddleware
	semaphore  *semaphore.Weighted
}

func NewClient(settings Settings, log *logger.LogMiddleware, transports ...Transport) *Client {
	return &Client{
		settings:   settings,
		transports: transports,
		logger:     log,
		semaphore:  semaphore.NewWeighted(MaxConcurrentRequests),
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.settings.Model
}

// Generate returns the first candidate's text exactly as the service sent it.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	text, _, err := c.generate(ctx, req)
	return text, err
}

func (c *Client) generate(ctx context.Context, req Request) (string, string, error) {
	tracer := otel.Tracer("gemini/Generate")
	ctx, span := tracer.Start(ctx, "Generate")
	defer span.End()

	span.SetAttributes(
		attribute.String("gemini.model", c.settings.Model),
		attribute.Int("prompt.length", len(req.Prompt)),
		attribute.Bool("prompt.has_attachment", req.Attachment != nil),
	)

	if err := c.settings.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", "", err
	}
	if len(c.transports) == 0 {
		return "", "", errors.New("gemini client has no transports configured")
	}
	if err := c.semaphore.Acquire(ctx, 1); err != nil {
		span.RecordError(err)
		return "", "", err
	}
	defer c.semaphore.Release(1)

	var lastErr error
	for i, t := range c.transports {
		log := c.logger.Logger(ctx).With(zap.String("transport", t.Name()), zap.Int("position", i+1))

		text, err := t.Generate(ctx, req)
		if err == nil {
			log.Debug("[Gemini] Generation succeeded", zap.Int("response.length", len(text)))
			span.SetAttributes(attribute.String("gemini.transport", t.Name()))
			return text, t.Name(), nil
		}

		lastErr = err
		span.RecordError(err)
		if ctx.Err() != nil {
			log.Warn("[Gemini] Context finished, not trying further transports", zap.Error(err))
			break
		}
		if i < len(c.transports)-1 {
			log.Warn("[Gemini] Transport failed, falling back to next transport", zap.Error(err))
		} else {
			log.Error("[Gemini] All transports failed", zap.Error(err))
		}
	}

	span.SetStatus(codes.Error, lastErr.Error())
	return "", "", lastErr
}

// ProbeResult reports whether the service answered a trivial prompt and through which transport.
type ProbeResult struct {
	Success   bool   `json:"success"`
	Response  string `json:"response,omitempty"`
	Error     string `json:"error,omitempty"`
	Model     string `json:"model"`
	Transport string `json:"transport,omitempty"`
}

// Probe sends a fixed prompt and never returns an error; failures are described in the result.
func (c *Client) Probe(ctx context.Context) ProbeResult {
	res := ProbeResult{Model: c.settings.Model}
	text, transport, err := c.generate(ctx, Request{Prompt: prompt.ProbeText})
	if err != nil {
		res.Error = err.Error()
		c.logger.Logger(ctx).Warn("[Gemini] Connectivity probe failed", zap.Error(err))
		return res
	}
	res.Success = true
	res.Response = text
	res.Transport = transport
	c.logger.Logger(ctx).Info("[Gemini] Connectivity probe succeeded", zap.String("transport", transport))
	return res
}

func (c *Client) String() string {
	names := make([]string, 0, len(c.transports))
	for _, t := range c.transports {
		names = append(names, t.Name())
	}
	return fmt.Sprintf("gemini.Client{model=%s transports=%v}", c.settings.Model, names)
}
