package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"keydrill/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "keydrill.db")
	st, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func sampleRecord(text string, endedAt time.Time) model.SessionRecord {
	return model.SessionRecord{
		ID:          uuid.NewString(),
		StartedAt:   endedAt.Add(-30 * time.Second),
		EndedAt:     endedAt,
		Text:        text,
		CharsTotal:  120,
		Words:       25,
		TotalInputs: 125,
		TotalErrors: 5,
		ErrorsLeft:  1,
		DurationMs:  30000,
	}
}

func TestInsertAndListRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	rec := sampleRecord("quotes", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	if err := st.InsertSession(ctx, rec); err != nil {
		t.Fatalf("insert: %v", err)
	}

	records, err := st.ListSessions(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0]
	if got.ID != rec.ID || got.Text != rec.Text || got.TotalInputs != rec.TotalInputs || got.ErrorsLeft != rec.ErrorsLeft {
		t.Fatalf("unexpected record: %+v", got)
	}
	if !got.EndedAt.Equal(rec.EndedAt) {
		t.Fatalf("ended_at mismatch: %v vs %v", got.EndedAt, rec.EndedAt)
	}
}

func TestListSessionsFilters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		text := "quotes"
		if i == 1 {
			text = "prose"
		}
		if err := st.InsertSession(ctx, sampleRecord(text, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	records, err := st.ListSessions(ctx, model.StatsConfig{Text: "quotes"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 quotes records, got %d", len(records))
	}

	since := base.Add(90 * time.Minute)
	records, err = st.ListSessions(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record since %v, got %d", since, len(records))
	}

	records, err = st.ListSessions(ctx, model.StatsConfig{Last: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected last 2 records, got %d", len(records))
	}
	if !records[1].EndedAt.After(records[0].EndedAt) {
		t.Fatalf("expected records ordered oldest first")
	}
}
