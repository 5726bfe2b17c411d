package badges

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/PPRAMANIK62/word-quest/internal/store"
)

func TestStreakRarity(t *testing.T) {
	tests := []struct {
		length int
		want   Rarity
	}{
		{5, RarityCommon},
		{9, RarityCommon},
		{10, RarityRare},
		{14, RarityRare},
		{15, RarityEpic},
		{19, RarityEpic},
		{20, RarityLegendary},
		{50, RarityLegendary},
	}
	for _, tt := range tests {
		if got := StreakRarity(tt.length); got != tt.want {
			t.Errorf("StreakRarity(%d) = %v, want %v", tt.length, got, tt.want)
		}
	}
}

func TestSessionRarity(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     Rarity
	}{
		{0.0, RarityCommon},
		{0.49, RarityCommon},
		{0.50, RarityRare},
		{0.74, RarityRare},
		{0.75, RarityEpic},
		{0.89, RarityEpic},
		{0.90, RarityLegendary},
		{1.0, RarityLegendary},
	}
	for _, tt := range tests {
		if got := SessionRarity(tt.accuracy); got != tt.want {
			t.Errorf("SessionRarity(%v) = %v, want %v", tt.accuracy, got, tt.want)
		}
	}
}

func TestDifficultyRarity(t *testing.T) {
	tests := []struct {
		difficulty int
		want       Rarity
	}{
		{0, RarityCommon},
		{1, RarityCommon},
		{2, RarityCommon},
		{3, RarityRare},
		{4, RarityEpic},
		{5, RarityLegendary},
	}
	for _, tt := range tests {
		if got := DifficultyRarity(tt.difficulty); got != tt.want {
			t.Errorf("DifficultyRarity(%d) = %v, want %v", tt.difficulty, got, tt.want)
		}
	}
}

func TestNextStreakThreshold(t *testing.T) {
	tests := []struct {
		current int
		want    int
	}{
		{0, 5},
		{4, 5},
		{5, 10},
		{10, 15},
		{15, 20},
		{20, 25},
		{23, 25},
		{25, 30},
	}
	for _, tt := range tests {
		if got := NextStreakThreshold(tt.current); got != tt.want {
			t.Errorf("NextStreakThreshold(%d) = %d, want %d", tt.current, got, tt.want)
		}
	}
}

func TestStreakTracker_Milestones(t *testing.T) {
	tr := NewStreakTracker()
	var hits []int
	for i := 0; i < 12; i++ {
		if n := tr.Record(true); n > 0 {
			hits = append(hits, n)
		}
	}
	if len(hits) != 2 || hits[0] != 5 || hits[1] != 10 {
		t.Errorf("milestones = %v, want [5 10]", hits)
	}
	if tr.Current() != 12 || tr.Best() != 12 {
		t.Errorf("current=%d best=%d, want 12/12", tr.Current(), tr.Best())
	}
}

func TestStreakTracker_ResetOnMiss(t *testing.T) {
	tr := NewStreakTracker()
	for i := 0; i < 4; i++ {
		tr.Record(true)
	}
	tr.Record(false)
	if tr.Current() != 0 {
		t.Errorf("Current() = %d after miss, want 0", tr.Current())
	}
	for i := 0; i < 4; i++ {
		if n := tr.Record(true); n != 0 {
			t.Errorf("unexpected milestone %d after reset", n)
		}
	}
	if n := tr.Record(true); n != 5 {
		t.Errorf("Record() = %d, want 5", n)
	}
	if tr.Best() != 5 {
		t.Errorf("Best() = %d, want 5", tr.Best())
	}
}

type recordingSink struct {
	events []store.BadgeEventData
	err    error
}

func (r *recordingSink) AppendBadgeEvent(_ context.Context, data store.BadgeEventData) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, data)
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestService_AwardsAccumulate(t *testing.T) {
	sink := &recordingSink{}
	svc := NewService(sink, quietLogger())
	ctx := context.Background()

	m := svc.AwardMastery(ctx, "es.1.1", "gato", 3, "s1")
	if m.Type != BadgeMastery || m.Rarity != RarityRare || m.Reason != "Mastered gato" {
		t.Errorf("AwardMastery() = %+v", m)
	}
	svc.AwardStreak(ctx, 10, "s1")
	svc.AwardSession(ctx, 0.8, "s1")

	if len(svc.SessionBadges) != 3 {
		t.Fatalf("SessionBadges = %d, want 3", len(svc.SessionBadges))
	}
	if len(sink.events) != 3 {
		t.Fatalf("persisted = %d, want 3", len(sink.events))
	}
	if sink.events[0].VocabularyID != "es.1.1" || sink.events[0].Word != "gato" {
		t.Errorf("mastery event = %+v", sink.events[0])
	}
	if sink.events[1].Rarity != string(RarityRare) {
		t.Errorf("streak rarity = %q, want rare", sink.events[1].Rarity)
	}
	if sink.events[2].Reason != "Session complete (80% accuracy)" {
		t.Errorf("session reason = %q", sink.events[2].Reason)
	}

	svc.ResetSession()
	if len(svc.SessionBadges) != 0 {
		t.Errorf("SessionBadges after reset = %d, want 0", len(svc.SessionBadges))
	}
}

func TestService_NilSink(t *testing.T) {
	svc := NewService(nil, nil)
	a := svc.AwardStreak(context.Background(), 5, "s1")
	if a == nil || a.Rarity != RarityCommon {
		t.Errorf("AwardStreak() = %+v", a)
	}
	if len(svc.SessionBadges) != 1 {
		t.Errorf("SessionBadges = %d, want 1", len(svc.SessionBadges))
	}
}

func TestService_PersistFailureKeepsAward(t *testing.T) {
	svc := NewService(&recordingSink{err: errors.New("disk full")}, quietLogger())
	svc.AwardSession(context.Background(), 1.0, "s1")
	if len(svc.SessionBadges) != 1 {
		t.Errorf("SessionBadges = %d, want 1", len(svc.SessionBadges))
	}
}
