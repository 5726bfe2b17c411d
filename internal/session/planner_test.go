package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PPRAMANIK62/word-quest/internal/mastery"
	"github.com/PPRAMANIK62/word-quest/internal/vocab"
)

type fakeEntries struct {
	entries []vocab.Entry
	err     error
}

func (f *fakeEntries) Entries(_ context.Context, lessonID string) ([]vocab.Entry, error) {
	var out []vocab.Entry
	for _, e := range f.entries {
		if e.LessonID == lessonID {
			out = append(out, e)
		}
	}
	return out, f.err
}

func (f *fakeEntries) AllEntries(_ context.Context) ([]vocab.Entry, error) {
	return f.entries, f.err
}

type fakeRecords struct {
	records []mastery.Record
}

func (f *fakeRecords) All(_ context.Context, _ string) ([]mastery.Record, error) {
	return f.records, nil
}

func rec(id string, level, attempts, correct int, next time.Time) mastery.Record {
	return mastery.Record{
		UserID:         "local",
		VocabularyID:   id,
		Level:          level,
		TotalAttempts:  attempts,
		CorrectAnswers: correct,
		LastReviewedAt: next.AddDate(0, 0, -1),
		NextReviewAt:   next,
	}
}

func slotIDs(p *Plan) []string {
	var ids []string
	for _, s := range p.Slots {
		ids = append(ids, s.Entry.ID)
	}
	return ids
}

func TestBuildPlan_DueFirstThenNewThenWeak(t *testing.T) {
	records := []mastery.Record{
		rec("es.1.1", 2, 4, 4, start.Add(-time.Hour)),      // due
		rec("es.1.2", 1, 5, 2, start.Add(48*time.Hour)),    // weak, not due
		rec("es.1.3", 3, 6, 6, start.Add(-48*time.Hour)),   // due, earlier
		rec("es.1.4", 4, 8, 8, start.Add(7*24*time.Hour)), // strong
	}
	p := NewPlanner(&fakeEntries{entries: testEntries()}, &fakeRecords{records: records}, "local")

	plan, err := p.BuildPlan(context.Background(), PlanOptions{Size: 6}, start)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	want := []string{"es.1.3", "es.1.1", "es.2.1", "es.2.2", "es.1.2", "es.1.4"}
	got := slotIDs(plan)
	if len(got) != len(want) {
		t.Fatalf("slots = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot %d = %s, want %s (all: %v)", i, got[i], want[i], got)
		}
	}
	if plan.Count(CategoryReview) != 2 || plan.Count(CategoryNew) != 2 || plan.Count(CategoryPractice) != 2 {
		t.Errorf("category counts = %d/%d/%d", plan.Count(CategoryReview), plan.Count(CategoryNew), plan.Count(CategoryPractice))
	}
}

func TestBuildPlan_MinimumSize(t *testing.T) {
	p := NewPlanner(&fakeEntries{entries: testEntries()}, &fakeRecords{}, "local")
	plan, err := p.BuildPlan(context.Background(), PlanOptions{Size: 1}, start)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}
	if len(plan.Slots) != 4 {
		t.Errorf("len(Slots) = %d, want 4", len(plan.Slots))
	}
}

func TestBuildPlan_LessonScope(t *testing.T) {
	records := []mastery.Record{rec("es.2.1", 1, 1, 1, start.Add(-time.Hour))}
	p := NewPlanner(&fakeEntries{entries: testEntries()}, &fakeRecords{records: records}, "local")

	plan, err := p.BuildPlan(context.Background(), PlanOptions{LessonID: "es.1", Size: 10}, start)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}
	for _, s := range plan.Slots {
		if s.Entry.LessonID != "es.1" {
			t.Errorf("slot %s outside lesson es.1", s.Entry.ID)
		}
	}
	if len(plan.Slots) != 4 {
		t.Errorf("len(Slots) = %d, want 4", len(plan.Slots))
	}
}

func TestBuildPlan_ReviewOnly(t *testing.T) {
	records := []mastery.Record{
		rec("es.1.1", 2, 4, 4, start.Add(-time.Hour)),
		rec("es.1.2", 2, 4, 4, start.Add(-2*time.Hour)),
		rec("es.1.3", 2, 4, 4, start.Add(-3*time.Hour)),
		rec("es.1.4", 2, 4, 4, start.Add(-4*time.Hour)),
		rec("es.2.1", 2, 4, 4, start.Add(-5*time.Hour)),
	}
	p := NewPlanner(&fakeEntries{entries: testEntries()}, &fakeRecords{records: records}, "local")

	plan, err := p.BuildPlan(context.Background(), PlanOptions{Size: 10, ReviewOnly: true}, start)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}
	if len(plan.Slots) != 5 || plan.Count(CategoryReview) != 5 {
		t.Errorf("plan = %v, want 5 review slots", slotIDs(plan))
	}
}

func TestBuildPlan_ReviewOnlyPadsSmallQueue(t *testing.T) {
	records := []mastery.Record{rec("es.1.1", 2, 4, 4, start.Add(-time.Hour))}
	p := NewPlanner(&fakeEntries{entries: testEntries()}, &fakeRecords{records: records}, "local")

	plan, _ := p.BuildPlan(context.Background(), PlanOptions{ReviewOnly: true}, start)
	if len(plan.Slots) != 4 {
		t.Fatalf("len(Slots) = %d, want 4", len(plan.Slots))
	}
	if plan.Slots[0].Entry.ID != "es.1.1" || plan.Slots[0].Category != CategoryReview {
		t.Errorf("first slot = %+v, want due es.1.1", plan.Slots[0])
	}
}

func TestBuildPlan_ReviewOnlyNothingDue(t *testing.T) {
	p := NewPlanner(&fakeEntries{entries: testEntries()}, &fakeRecords{}, "local")
	plan, _ := p.BuildPlan(context.Background(), PlanOptions{ReviewOnly: true}, start)
	if len(plan.Slots) != 0 {
		t.Errorf("len(Slots) = %d, want 0", len(plan.Slots))
	}
}

func TestBuildPlan_LoadError(t *testing.T) {
	boom := errors.New("boom")
	p := NewPlanner(&fakeEntries{err: boom}, &fakeRecords{}, "local")
	if _, err := p.BuildPlan(context.Background(), PlanOptions{}, start); !errors.Is(err, boom) {
		t.Errorf("BuildPlan() error = %v, want wrapped boom", err)
	}
}
