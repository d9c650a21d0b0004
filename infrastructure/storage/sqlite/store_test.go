package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/felixgeelhaar/haggle-go/domain/negotiation"
	"github.com/felixgeelhaar/haggle-go/domain/transcript"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	cfg := DefaultConfig()
	cfg.DSN = "file:" + filepath.Join(t.TempDir(), "test.db") + "?cache=shared&mode=rwc"
	store, err := NewStore(cfg)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_AppendAndBySession(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	ts := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	entries := []transcript.Entry{
		transcript.NewEntry(ts, "s1", negotiation.ModeNeutral, transcript.RoleSeller, "The iPad costs 1000 €.", 1000),
		transcript.NewEntry(ts.Add(10*time.Second), "s1", negotiation.ModeNeutral, transcript.RoleBuyer, "850?", 1000),
		transcript.NewEntry(ts.Add(20*time.Second), "s2", negotiation.ModePower, transcript.RoleSeller, "hello", 1000),
	}
	for _, e := range entries {
		if err := store.Append(ctx, e); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	got, err := store.BySession(ctx, "s1")
	if err != nil {
		t.Fatalf("BySession() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("BySession(s1) len = %d, want 2", len(got))
	}
	if got[0].Role != transcript.RoleSeller || got[1].Role != transcript.RoleBuyer {
		t.Errorf("roles = %q, %q, want seller then buyer", got[0].Role, got[1].Role)
	}
	if !got[0].Timestamp.Equal(ts) {
		t.Errorf("Timestamp = %v, want %v", got[0].Timestamp, ts)
	}
	if got[1].Text != "850?" || got[1].CurrentOffer != 1000 {
		t.Errorf("entry = %+v", got[1])
	}
}

func TestStore_RejectsEmptySessionID(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Append(ctx, transcript.Entry{Text: "x"}); !errors.Is(err, transcript.ErrInvalidSessionID) {
		t.Errorf("Append() error = %v, want ErrInvalidSessionID", err)
	}
	if err := store.RecordOutcome(ctx, transcript.Outcome{}); !errors.Is(err, transcript.ErrInvalidSessionID) {
		t.Errorf("RecordOutcome() error = %v, want ErrInvalidSessionID", err)
	}
}

func TestStore_RecordOutcomeRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	outcome := transcript.Outcome{
		Timestamp:       time.Date(2026, 8, 28, 12, 5, 0, 0, time.UTC),
		SessionID:       "s1",
		Mode:            negotiation.ModePower,
		Item:            "iPad (new, sealed)",
		ListPrice:       1000,
		FinalPrice:      935,
		EndedBy:         negotiation.EndDealWithPrice,
		BuyerTurns:      5,
		DurationSeconds: 412,
	}
	if err := store.RecordOutcome(ctx, outcome); err != nil {
		t.Fatalf("RecordOutcome() error = %v", err)
	}

	got, err := store.Outcomes(ctx)
	if err != nil {
		t.Fatalf("Outcomes() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Outcomes() len = %d, want 1", len(got))
	}
	if got[0] != outcome {
		t.Errorf("Outcomes()[0] = %+v, want %+v", got[0], outcome)
	}
}

func TestStore_OutcomeIsUniquePerSession(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	outcome := transcript.Outcome{SessionID: "s1", Mode: negotiation.ModeNeutral, ListPrice: 1000, EndedBy: negotiation.EndAborted}
	if err := store.RecordOutcome(ctx, outcome); err != nil {
		t.Fatalf("RecordOutcome() error = %v", err)
	}
	if err := store.RecordOutcome(ctx, outcome); err == nil {
		t.Error("RecordOutcome() second write for same session must fail")
	}
}

func TestStore_RecordSurveyRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	survey := transcript.Survey{
		Timestamp:  time.Date(2026, 8, 28, 12, 8, 0, 0, time.UTC),
		SessionID:  "s1",
		Mode:       negotiation.ModePower,
		FinalPrice: 940,
		EndedBy:    negotiation.EndDealButton,
		Ratings:    transcript.Ratings{Dominance: 6, Pressure: 5, Fairness: 3, Satisfaction: 4, Trust: 3, Expertise: 5, Recommend: 3, ManipulationPower: 6},
		Comment:    "pushy but effective",
	}
	if err := store.RecordSurvey(ctx, survey); err != nil {
		t.Fatalf("RecordSurvey() error = %v", err)
	}

	got, err := store.Surveys(ctx)
	if err != nil {
		t.Fatalf("Surveys() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Surveys() len = %d, want 1", len(got))
	}
	if got[0] != survey {
		t.Errorf("Surveys()[0] = %+v, want %+v", got[0], survey)
	}
}

func TestStore_SurveyValidationRejectsBadRatings(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	bad := transcript.Survey{
		SessionID: "s1",
		Mode:      negotiation.ModeNeutral,
		Ratings:   transcript.Ratings{Dominance: 0, Pressure: 1, Fairness: 1, Satisfaction: 1, Trust: 1, Expertise: 1, Recommend: 1, ManipulationPower: 1},
	}
	if err := store.RecordSurvey(context.Background(), bad); !errors.Is(err, transcript.ErrInvalidRating) {
		t.Errorf("RecordSurvey() error = %v, want ErrInvalidRating", err)
	}
}

func TestStore_CancelledContext(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	entry := transcript.NewEntry(time.Unix(0, 0), "s1", negotiation.ModeNeutral, transcript.RoleSeller, "hi", 1000)
	if err := store.Append(ctx, entry); !errors.Is(err, context.Canceled) {
		t.Errorf("Append() error = %v, want context.Canceled", err)
	}
}
