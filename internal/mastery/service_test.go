package mastery

import (
	"context"
	"errors"
	"testing"
)

// memStore implements Store for testing.
type memStore struct {
	records map[string]Record
	getErr  error
	putErr  error
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]Record)}
}

func (m *memStore) Get(_ context.Context, userID, vocabularyID string) (*Record, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	r, ok := m.records[userID+"/"+vocabularyID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *memStore) Upsert(_ context.Context, r Record) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.records[r.UserID+"/"+r.VocabularyID] = r
	return nil
}

func TestService_RecordAnswer_FirstAttempt(t *testing.T) {
	st := newMemStore()
	svc := NewService(st, LinearPolicy{}, "local")

	rec, change, err := svc.RecordAnswer(context.Background(), "es.1.1", "hola", true, now)
	if err != nil {
		t.Fatalf("RecordAnswer() error = %v", err)
	}
	if rec.UserID != "local" || rec.VocabularyID != "es.1.1" {
		t.Errorf("record keys = %q/%q", rec.UserID, rec.VocabularyID)
	}
	if change == nil || change.Trigger != TriggerFirstAttempt || change.To != 1 {
		t.Fatalf("change = %+v, want first-attempt to level 1", change)
	}
	if !change.Learned() {
		t.Error("first correct answer should count as learned")
	}

	saved, _ := st.Get(context.Background(), "local", "es.1.1")
	if saved == nil || saved.Level != 1 {
		t.Errorf("saved record = %+v, want level 1", saved)
	}
}

func TestService_RecordAnswer_Transitions(t *testing.T) {
	st := newMemStore()
	svc := NewService(st, LinearPolicy{}, "local")
	ctx := context.Background()

	var triggers []string
	for _, correct := range []bool{true, true, true, false, false} {
		_, change, err := svc.RecordAnswer(ctx, "w", "word", correct, now)
		if err != nil {
			t.Fatal(err)
		}
		if change != nil {
			triggers = append(triggers, change.Trigger)
		}
	}

	want := []string{TriggerFirstAttempt, TriggerLevelUp, TriggerLevelDown, TriggerLevelDown}
	if len(triggers) != len(want) {
		t.Fatalf("triggers = %v, want %v", triggers, want)
	}
	for i := range want {
		if triggers[i] != want[i] {
			t.Errorf("trigger[%d] = %s, want %s", i, triggers[i], want[i])
		}
	}

	rec, _ := svc.Get(ctx, "w")
	if rec.Level != 0 {
		t.Errorf("final level = %d, want 0", rec.Level)
	}
}

func TestService_RecordAnswer_Mastered(t *testing.T) {
	st := newMemStore()
	st.records["local/w"] = Record{UserID: "local", VocabularyID: "w", TotalAttempts: 9, CorrectAnswers: 9, Level: 4}
	svc := NewService(st, ExponentialPolicy{}, "local")

	_, change, err := svc.RecordAnswer(context.Background(), "w", "word", true, now)
	if err != nil {
		t.Fatal(err)
	}
	if change == nil || change.Trigger != TriggerMastered {
		t.Errorf("change = %+v, want mastered", change)
	}
}

func TestService_RecordAnswer_StoreErrors(t *testing.T) {
	boom := errors.New("disk full")

	st := newMemStore()
	st.getErr = boom
	if _, _, err := NewService(st, LinearPolicy{}, "u").RecordAnswer(context.Background(), "w", "w", true, now); !errors.Is(err, boom) {
		t.Errorf("RecordAnswer() error = %v, want wrapped %v", err, boom)
	}

	st = newMemStore()
	st.putErr = boom
	if _, _, err := NewService(st, LinearPolicy{}, "u").RecordAnswer(context.Background(), "w", "w", true, now); !errors.Is(err, boom) {
		t.Errorf("RecordAnswer() error = %v, want wrapped %v", err, boom)
	}
}
