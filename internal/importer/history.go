package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const historyKey = "ats:imports:recent"

// ImportRecord is one entry of the recent-import log shown on the
// dashboard.
type ImportRecord struct {
	ProcessID       string    `json:"process_id"`
	ProcessTitle    string    `json:"process_title"`
	SuccessCount    int       `json:"success_count"`
	FailedCount     int       `json:"failed_count"`
	Errors          []string  `json:"errors"`
	TruncatedErrors int       `json:"truncated_errors"`
	CreatedAt       time.Time `json:"created_at"`
}

// History keeps the last N import runs in a Redis list.
type History struct {
	client *redis.Client
	size   int
	ttl    time.Duration
}

// NewHistory creates a history store capped at size entries.
func NewHistory(client *redis.Client, size int) *History {
	if size <= 0 {
		size = 20
	}
	return &History{client: client, size: size, ttl: 30 * 24 * time.Hour}
}

// Record prepends a run to the log and trims it to the cap.
func (h *History) Record(ctx context.Context, rec ImportRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling import record: %w", err)
	}

	pipe := h.client.TxPipeline()
	pipe.LPush(ctx, historyKey, payload)
	pipe.LTrim(ctx, historyKey, 0, int64(h.size-1))
	pipe.Expire(ctx, historyKey, h.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("recording import history: %w", err)
	}
	return nil
}

// Recent returns the logged runs, newest first. Entries that fail to
// decode are skipped rather than failing the whole read.
func (h *History) Recent(ctx context.Context) ([]ImportRecord, error) {
	raw, err := h.client.LRange(ctx, historyKey, 0, int64(h.size-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("reading import history: %w", err)
	}

	records := make([]ImportRecord, 0, len(raw))
	for _, item := range raw {
		var rec ImportRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
