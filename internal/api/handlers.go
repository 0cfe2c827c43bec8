package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/huzzai/rizz-coach/internal/catalog"
	"github.com/huzzai/rizz-coach/internal/core"
	"github.com/huzzai/rizz-coach/internal/gemini"
	"github.com/huzzai/rizz-coach/internal/logger"
	"github.com/huzzai/rizz-coach/internal/model"
)

// MaxUploadBytes caps request bodies, uploads included.
const MaxUploadBytes = 10 << 20

const (
	defaultTextTone   = model.ToneFlirty
	defaultPickupTone = model.ToneCasual
)

// Prober checks that the completion service answers.
type Prober interface {
	Probe(ctx context.Context) gemini.ProbeResult
}

type Services struct {
	Text     *core.TextService
	Pickup   *core.PickupService
	Critique *core.CritiqueService
	Chat     *core.ChatService
	Catalog  *catalog.Catalog
	Prober   Prober
}

type APIHandler struct {
	svc    Services
	logger *logger.LogMiddleware

	statusMu sync.Mutex
	status   *gemini.ProbeResult
}

func NewAPIHandler(svc Services, log *logger.LogMiddleware) *APIHandler {
	return &APIHandler{svc: svc, logger: log}
}

// RefreshStatus runs the connectivity probe and caches the result for the status endpoint.
func (h *APIHandler) RefreshStatus(ctx context.Context) gemini.ProbeResult {
	res := h.svc.Prober.Probe(ctx)
	h.statusMu.Lock()
	h.status = &res
	h.statusMu.Unlock()
	return res
}

func (h *APIHandler) cachedStatus() (gemini.ProbeResult, bool) {
	h.statusMu.Lock()
	defer h.statusMu.Unlock()
	if h.status == nil {
		return gemini.ProbeResult{}, false
	}
	return *h.status, true
}

func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *APIHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	res, ok := h.cachedStatus()
	if !ok || r.URL.Query().Get("refresh") == "1" {
		res = h.RefreshStatus(r.Context())
	}
	writeJSON(w, http.StatusOK, res)
}

type TextResponseRequest struct {
	Conversation string `json:"conversation"`
	Tone         *int   `json:"tone,omitempty"`
}

func (h *APIHandler) TextResponseHandler(w http.ResponseWriter, r *http.Request) {
	in := core.TextInput{Tone: defaultTextTone}

	if isMultipart(r) {
		if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid form data")
			return
		}
		in.Conversation = r.FormValue("conversation")
		if v := r.FormValue("tone"); v != "" {
			tone, err := parseToneString(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			in.Tone = tone
		}
		shot, err := readUpload(r, "screenshot")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid screenshot upload")
			return
		}
		in.Screenshot = shot
	} else {
		var req TextResponseRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		in.Conversation = req.Conversation
		if req.Tone != nil {
			tone, err := model.ParseToneLevel(*req.Tone)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			in.Tone = tone
		}
	}

	reply, err := h.svc.Text.Reply(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrEmptyInput):
			writeError(w, http.StatusBadRequest, "Please enter some conversation text or upload an image")
		case errors.Is(err, core.ErrUnsupportedMedia):
			writeError(w, http.StatusUnsupportedMediaType, "Please select an image file (PNG, JPG, JPEG)")
		case errors.Is(err, core.ErrExtraction):
			writeError(w, http.StatusBadGateway, "Failed to extract text from image. Please try again or enter text manually.")
		case errors.Is(err, core.ErrInvalidTone):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Logger(r.Context()).Error("[API] Text response failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to generate a response. Please try again.")
		}
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

type PickupLineRequest struct {
	Scenario string `json:"scenario"`
	Tone     *int   `json:"tone,omitempty"`
}

func (h *APIHandler) PickupLineHandler(w http.ResponseWriter, r *http.Request) {
	var req PickupLineRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	tone := defaultPickupTone
	if req.Tone != nil {
		var err error
		if tone, err = model.ParseToneLevel(*req.Tone); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	res, err := h.svc.Pickup.Generate(r.Context(), req.Scenario, tone)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrEmptyInput):
			writeError(w, http.StatusBadRequest, "Please describe a scenario")
		case errors.Is(err, core.ErrInvalidTone):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Logger(r.Context()).Error("[API] Pickup line failed", zap.Error(err))
			writeError(w, http.StatusBadGateway, "Failed to generate a pickup line. Please try again.")
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *APIHandler) PickupHistoryHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Pickup.History())
}

type ScenariosResponse struct {
	Examples    []string `json:"examples"`
	Collections []string `json:"collections"`
}

func (h *APIHandler) ScenariosHandler(w http.ResponseWriter, r *http.Request) {
	resp := ScenariosResponse{Examples: catalog.ExampleScenarios}
	for _, c := range h.svc.Catalog.Collections() {
		resp.Collections = append(resp.Collections, c.Name)
	}
	writeJSON(w, http.StatusOK, resp)
}

type ImageCritiqueRequest struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

func (h *APIHandler) ImageCritiqueHandler(w http.ResponseWriter, r *http.Request) {
	var image *model.Attachment
	if isMultipart(r) {
		if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid form data")
			return
		}
		var err error
		if image, err = readUpload(r, "image"); err != nil {
			writeError(w, http.StatusBadRequest, "Failed to process image. Please try another one.")
			return
		}
	} else {
		var req ImageCritiqueRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Data != "" {
			data, err := base64.StdEncoding.DecodeString(stripDataURL(req.Data))
			if err != nil {
				writeError(w, http.StatusBadRequest, "Failed to process image. Please try another one.")
				return
			}
			image = &model.Attachment{MIMEType: req.MIMEType, Data: data}
		}
	}
	if image == nil {
		writeError(w, http.StatusBadRequest, "Please upload an image")
		return
	}

	res, err := h.svc.Critique.Analyze(r.Context(), *image)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrUnsupportedMedia):
			writeError(w, http.StatusUnsupportedMediaType, "Please select an image file (PNG, JPG, JPEG)")
		case errors.Is(err, core.ErrEmptyInput):
			writeError(w, http.StatusBadRequest, "Please upload an image")
		default:
			h.logger.Logger(r.Context()).Error("[API] Image critique failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to analyze image. Please try again.")
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type CreateChatRequest struct {
	Difficulty string `json:"difficulty"`
}

func (h *APIHandler) CreateChatHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateChatRequest
	if r.Body != nil && r.Body != http.NoBody && r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	difficulty, err := model.ParseDifficulty(req.Difficulty)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, h.svc.Chat.CreateChat(r.Context(), difficulty))
}

func (h *APIHandler) GetChatHandler(w http.ResponseWriter, r *http.Request) {
	chat, err := h.svc.Chat.GetChat(chi.URLParam(r, "chatID"))
	if err != nil {
		h.chatError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chat)
}

type PostMessageRequest struct {
	Content string `json:"content"`
}

func (h *APIHandler) PostMessageHandler(w http.ResponseWriter, r *http.Request) {
	var req PostMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	res, err := h.svc.Chat.Send(r.Context(), chi.URLParam(r, "chatID"), req.Content)
	if err != nil {
		h.chatError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *APIHandler) ResetChatHandler(w http.ResponseWriter, r *http.Request) {
	chat, err := h.svc.Chat.Reset(r.Context(), chi.URLParam(r, "chatID"))
	if err != nil {
		h.chatError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chat)
}

func (h *APIHandler) DeleteChatHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Chat.Delete(r.Context(), chi.URLParam(r, "chatID")); err != nil {
		h.chatError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) chatError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrChatNotFound):
		writeError(w, http.StatusNotFound, "Chat not found")
	case errors.Is(err, core.ErrEmptyInput):
		writeError(w, http.StatusBadRequest, "Message content cannot be empty")
	case errors.Is(err, core.ErrBusy):
		writeError(w, http.StatusConflict, "Still waiting for a reply")
	default:
		h.logger.Logger(r.Context()).Error("[API] Chat request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Something went wrong")
	}
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

func parseToneString(v string) (model.ToneLevel, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, core.ErrInvalidTone
	}
	return model.ParseToneLevel(n)
}

// readUpload returns nil without error when the field is absent.
func readUpload(r *http.Request, field string) (*model.Attachment, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	return &model.Attachment{MIMEType: mimeType, Data: data}, nil
}

// stripDataURL drops a "data:image/png;base64," prefix if present.
func stripDataURL(s string) string {
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			return s[i+1:]
		}
	}
	return s
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
