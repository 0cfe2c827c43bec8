package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"go.opentelemetry.io/otel"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
)

// SDKTransport performs the exchange through the official generative-ai-go client.
type SDKTransport struct {
	client *genai.Client
	model  string
}

func NewSDKTransport(ctx context.Context, settings Settings) (*SDKTransport, error) {
	if settings.APIKey == "" {
		return nil, &ConfigError{Setting: "GEMINI_API_KEY"}
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(settings.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &SDKTransport{client: client, model: settings.Model}, nil
}

func (t *SDKTransport) Name() string {
	return "sdk"
}

func (t *SDKTransport) Close() error {
	if t.client == nil {
		return nil
	}
	return t.client.Close()
}

func (t *SDKTransport) Generate(ctx context.Context, req Request) (string, error) {
	tracer := otel.Tracer("gemini/SDKTransport")
	ctx, span := tracer.Start(ctx, "Generate")
	defer span.End()

	parts := []genai.Part{genai.Text(req.Prompt)}
	if req.Attachment != nil {
		parts = append(parts, genai.Blob{MIMEType: req.Attachment.MIMEType, Data: req.Attachment.Data})
	}

	resp, err := t.client.GenerativeModel(t.model).GenerateContent(ctx, parts...)
	if err != nil {
		span.RecordError(err)
		return "", t.mapError(err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResult
	}
	txt, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("%w: first part is %T, not text", ErrEmptyResult, resp.Candidates[0].Content.Parts[0])
	}
	return string(txt), nil
}

// mapError folds SDK failures into the same taxonomy the REST transport produces.
func (t *SDKTransport) mapError(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return fmt.Errorf("%w: %v", ErrEmptyResult, blocked)
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		msg := gErr.Message
		if msg == "" {
			msg = http.StatusText(gErr.Code)
		}
		return &ServiceError{Status: gErr.Code, Message: msg}
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.HTTPCode()
		if st := apiErr.GRPCStatus(); code <= 0 && st != nil {
			code = grpcHTTPStatus[st.Code()]
		}
		if code > 0 {
			return &ServiceError{Status: code, Message: apiErrorMessage(apiErr, code)}
		}
	}

	return &TransportError{Transport: t.Name(), Err: err}
}

// grpcHTTPStatus translates the gRPC codes the service reports into the HTTP statuses the REST
// transport would have seen.
var grpcHTTPStatus = map[codes.Code]int{
	codes.InvalidArgument:    http.StatusBadRequest,
	codes.FailedPrecondition: http.StatusBadRequest,
	codes.OutOfRange:         http.StatusBadRequest,
	codes.Unauthenticated:    http.StatusUnauthorized,
	codes.PermissionDenied:   http.StatusForbidden,
	codes.NotFound:           http.StatusNotFound,
	codes.AlreadyExists:      http.StatusConflict,
	codes.Aborted:            http.StatusConflict,
	codes.ResourceExhausted:  http.StatusTooManyRequests,
	codes.Unknown:            http.StatusInternalServerError,
	codes.Internal:           http.StatusInternalServerError,
	codes.DataLoss:           http.StatusInternalServerError,
	codes.Unimplemented:      http.StatusNotImplemented,
	codes.Unavailable:        http.StatusServiceUnavailable,
	codes.DeadlineExceeded:   http.StatusGatewayTimeout,
}

// apiErrorMessage prefers the human readable message over the machine reason code.
func apiErrorMessage(apiErr *apierror.APIError, code int) string {
	if st := apiErr.GRPCStatus(); st != nil && st.Message() != "" {
		return st.Message()
	}
	var gErr *googleapi.Error
	if errors.As(apiErr.Unwrap(), &gErr) && gErr.Message != "" {
		return gErr.Message
	}
	if reason := apiErr.Reason(); reason != "" {
		return reason
	}
	return http.StatusText(code)
}
