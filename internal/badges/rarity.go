package badges

// Rarity represents how hard a badge was to earn.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// DisplayName returns a human-readable label for the rarity.
func (r Rarity) DisplayName() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return string(r)
	}
}

// StreakRarity returns the rarity for a given streak length.
func StreakRarity(length int) Rarity {
	switch {
	case length >= 20:
		return RarityLegendary
	case length >= 15:
		return RarityEpic
	case length >= 10:
		return RarityRare
	default:
		return RarityCommon
	}
}

// SessionRarity returns the rarity for a given session accuracy (0.0-1.0).
func SessionRarity(accuracy float64) Rarity {
	switch {
	case accuracy >= 0.90:
		return RarityLegendary
	case accuracy >= 0.75:
		return RarityEpic
	case accuracy >= 0.50:
		return RarityRare
	default:
		return RarityCommon
	}
}

// DifficultyRarity maps a lesson difficulty (1-5) to the rarity of a mastery
// badge for one of its words.
func DifficultyRarity(difficulty int) Rarity {
	switch {
	case difficulty >= 5:
		return RarityLegendary
	case difficulty == 4:
		return RarityEpic
	case difficulty == 3:
		return RarityRare
	default:
		return RarityCommon
	}
}
