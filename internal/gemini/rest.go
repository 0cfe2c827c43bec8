package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// RESTTransport posts the JSON body directly to the generateContent endpoint.
type RESTTransport struct {
	settings   Settings
	httpClient *http.Client
}

type restInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type restPart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *restInlineData `json:"inline_data,omitempty"`
}

type restContent struct {
	Parts []restPart `json:"parts"`
}

type restRequest struct {
	Contents []restContent `json:"contents"`
}

type restResponse struct {
	Candidates []struct {
		Content restContent `json:"content"`
	} `json:"candidates"`
}

type restErrorBody struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewRESTTransport uses httpClient when given, otherwise an otelhttp-instrumented default client.
// No timeout is set locally.
func NewRESTTransport(settings Settings, httpClient *http.Client) *RESTTransport {
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &RESTTransport{settings: settings, httpClient: httpClient}
}

func (t *RESTTransport) Name() string {
	return "rest"
}

func (t *RESTTransport) url() string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(t.settings.Endpoint, "/"), t.settings.Model, url.QueryEscape(t.settings.APIKey))
}

func (t *RESTTransport) Generate(ctx context.Context, req Request) (string, error) {
	tracer := otel.Tracer("gemini/RESTTransport")
	ctx, span := tracer.Start(ctx, "Generate")
	defer span.End()

	parts := []restPart{{Text: req.Prompt}}
	if req.Attachment != nil {
		parts = append(parts, restPart{InlineData: &restInlineData{
			MimeType: req.Attachment.MIMEType,
			Data:     req.Attachment.Base64(),
		}})
	}
	body, err := json.Marshal(restRequest{Contents: []restContent{{Parts: parts}}})
	if err != nil {
		return "", fmt.Errorf("failed to encode request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url(), bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Transport: t.Name(), Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		return "", &TransportError{Transport: t.Name(), Err: redact(err, t.settings.APIKey)}
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Transport: t.Name(), Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ServiceError{Status: resp.StatusCode, Message: serviceMessage(resp, respBody)}
	}

	var parsed restResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &ServiceError{Status: resp.StatusCode, Message: "malformed response body: " + err.Error()}
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResult
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// serviceMessage prefers the payload's error.message and falls back to the status text.
func serviceMessage(resp *http.Response, body []byte) string {
	var payload restErrorBody
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

// redact strips the API key out of errors that echo the request URL.
func redact(err error, key string) error {
	escaped := url.QueryEscape(key)
	if key == "" || !strings.Contains(err.Error(), escaped) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), escaped, "API_KEY_REDACTED"))
}
