package store

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/huzzai/rizz-coach/internal/logger"
	"github.com/huzzai/rizz-coach/internal/model"
)

const (
	HistoryKey   = "pickupLineHistory"
	HistoryLimit = 10
)

// History reads and writes the generated-line history slot.
type History struct {
	kv     KV
	logger *logger.LogMiddleware
}

func NewHistory(kv KV, log *logger.LogMiddleware) *History {
	return &History{kv: kv, logger: log}
}

// Load returns the stored entries, most recent first. A missing or unreadable slot
// yields an empty history; only backend failures are returned as errors.
func (h *History) Load(ctx context.Context) ([]model.HistoryEntry, error) {
	raw, ok, err := h.kv.Get(ctx, HistoryKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []model.HistoryEntry{}, nil
	}

	var entries []model.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		h.logger.Logger(ctx).Warn("[History] Discarding unreadable history slot", zap.Error(err))
		return []model.HistoryEntry{}, nil
	}
	if len(entries) > HistoryLimit {
		entries = entries[:HistoryLimit]
	}
	return entries, nil
}

// Save writes entries, keeping at most HistoryLimit.
func (h *History) Save(ctx context.Context, entries []model.HistoryEntry) error {
	if len(entries) > HistoryLimit {
		entries = entries[:HistoryLimit]
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	return h.kv.Set(ctx, HistoryKey, string(data))
}

// Prepend puts entry in front of entries and truncates to HistoryLimit. entries is not modified.
func Prepend(entries []model.HistoryEntry, entry model.HistoryEntry) []model.HistoryEntry {
	n := len(entries) + 1
	if n > HistoryLimit {
		n = HistoryLimit
	}
	out := make([]model.HistoryEntry, 0, n)
	out = append(out, entry)
	for _, e := range entries {
		if len(out) == n {
			break
		}
		out = append(out, e)
	}
	return out
}
