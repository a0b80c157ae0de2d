package importer_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/talentohq/ats-server/internal/importer"
)

func newTestHistory(t *testing.T, size int) *importer.History {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return importer.NewHistory(client, size)
}

func TestHistoryRecordAndRecent(t *testing.T) {
	h := newTestHistory(t, 20)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := h.Record(ctx, importer.ImportRecord{
			ProcessID:    fmt.Sprintf("proc-%d", i),
			ProcessTitle: "Backend Engineer",
			SuccessCount: i,
		})
		if err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	recs, err := h.Recent(ctx)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	// Newest first.
	if recs[0].ProcessID != "proc-2" {
		t.Fatalf("expected proc-2 first, got %s", recs[0].ProcessID)
	}
	if recs[0].CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
}

func TestHistoryTrimsToSize(t *testing.T) {
	h := newTestHistory(t, 2)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := h.Record(ctx, importer.ImportRecord{ProcessID: fmt.Sprintf("proc-%d", i)}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	recs, err := h.Recent(ctx)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records after trim, got %d", len(recs))
	}
	if recs[0].ProcessID != "proc-4" || recs[1].ProcessID != "proc-3" {
		t.Fatalf("unexpected order: %s, %s", recs[0].ProcessID, recs[1].ProcessID)
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := newTestHistory(t, 20)
	recs, err := h.Recent(context.Background())
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected empty history, got %d", len(recs))
	}
}
