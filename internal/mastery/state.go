package mastery

// Triggers recorded on a LevelChange.
const (
	TriggerFirstAttempt = "first-attempt"
	TriggerLevelUp      = "level-up"
	TriggerLevelDown    = "level-down"
	TriggerMastered     = "mastered"
)

// LevelChange records a mastery level change for display and event logging.
type LevelChange struct {
	VocabularyID string
	Word         string
	From         int
	To           int
	Trigger      string
}

// Learned reports whether the change moved a word out of level 0.
func (c *LevelChange) Learned() bool {
	return c.From == 0 && c.To >= 1
}

// changeFor describes the transition from prior to next, or nil when the
// level did not move and the word was already on record.
func changeFor(prior *Record, next Record, word string) *LevelChange {
	c := &LevelChange{VocabularyID: next.VocabularyID, Word: word, To: next.Level}
	switch {
	case prior == nil:
		c.Trigger = TriggerFirstAttempt
	case next.Level > prior.Level:
		c.From = prior.Level
		c.Trigger = TriggerLevelUp
		if next.Level == MaxLevel {
			c.Trigger = TriggerMastered
		}
	case next.Level < prior.Level:
		c.From = prior.Level
		c.Trigger = TriggerLevelDown
	default:
		return nil
	}
	return c
}
