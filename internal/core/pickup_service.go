package core

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/huzzai/rizz-coach/internal/catalog"
	"github.com/huzzai/rizz-coach/internal/gemini"
	"github.com/huzzai/rizz-coach/internal/logger"
	"github.com/huzzai/rizz-coach/internal/model"
	"github.com/huzzai/rizz-coach/internal/normalize"
	"github.com/huzzai/rizz-coach/internal/prompt"
	"github.com/huzzai/rizz-coach/internal/store"
)

const (
	SourceModel   = "model"
	SourceCatalog = "catalog"
)

// PickupResult is the line shown to the user. Fallback is set when the completion call failed
// outright rather than returning an unusable reply.
type PickupResult struct {
	Scenario string          `json:"scenario"`
	Line     string          `json:"line"`
	Tone     model.ToneLevel `json:"tone"`
	Source   string          `json:"source"`
	Fallback bool            `json:"fallback"`
}

type PickupService struct {
	completer gemini.Completer
	catalog   *catalog.Catalog
	history   *store.History
	logger    *logger.LogMiddleware
	now       func() time.Time

	mu      sync.Mutex
	entries []model.HistoryEntry

	// saveMu orders writes to the store the same way entries were prepended.
	saveMu sync.Mutex
}

// NewPickupService reads the stored history once. A failed read starts from an empty history.
func NewPickupService(ctx context.Context, completer gemini.Completer, cat *catalog.Catalog, history *store.History, log *logger.LogMiddleware) *PickupService {
	entries, err := history.Load(ctx)
	if err != nil {
		log.Logger(ctx).Warn("[Pickup] Failed to load history, starting empty", zap.Error(err))
		entries = []model.HistoryEntry{}
	}
	return &PickupService{
		completer: completer,
		catalog:   cat,
		history:   history,
		logger:    log,
		now:       time.Now,
		entries:   entries,
	}
}

// Generate asks the model for a line and substitutes a catalog line when the reply is unusable.
func (s *PickupService) Generate(ctx context.Context, scenario string, tone model.ToneLevel) (PickupResult, error) {
	scenario = strings.TrimSpace(scenario)
	if scenario == "" {
		return PickupResult{}, ErrEmptyInput
	}
	if !tone.Valid() {
		return PickupResult{}, ErrInvalidTone
	}
	log := s.logger.Logger(ctx).With(zap.String("scenario", scenario), zap.Int("tone", int(tone)))

	res := PickupResult{Scenario: scenario, Tone: tone, Source: SourceModel}
	text, err := s.completer.Generate(ctx, gemini.Request{Prompt: prompt.PickupLine(scenario, tone)})
	switch {
	case err != nil:
		log.Error("[Pickup] Completion failed, using catalog line", zap.Error(err))
		res.Fallback = true
	case normalize.Degenerate(text):
		log.Info("[Pickup] Reply unusable, using catalog line", zap.String("reply", text))
	default:
		res.Line = strings.TrimSpace(text)
	}

	if res.Line == "" {
		line, ok := s.catalog.Pick(scenario, tone)
		if !ok {
			if err != nil {
				return PickupResult{}, fmt.Errorf("%w: %w", ErrNoLine, err)
			}
			return PickupResult{}, ErrNoLine
		}
		res.Line = line.Text
		res.Source = SourceCatalog
	}

	s.record(ctx, model.HistoryEntry{Scenario: scenario, Line: res.Line, Tone: tone, Timestamp: s.now()})
	return res, nil
}

func (s *PickupService) record(ctx context.Context, entry model.HistoryEntry) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	s.entries = store.Prepend(s.entries, entry)
	snapshot := s.entries
	s.mu.Unlock()

	if err := s.history.Save(ctx, snapshot); err != nil {
		s.logger.Logger(ctx).Error("[Pickup] Failed to persist history", zap.Error(err))
	}
}

// History returns a copy of the in-memory history, most recent first.
func (s *PickupService) History() []model.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}
