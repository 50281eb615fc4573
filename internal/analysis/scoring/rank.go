package scoring

import (
	"sort"

	"streak-picker/internal/models"
)

// Rank returns the decisions eligible for entry, ordered by composite score
// descending with buy price descending as the tie-break. The sort is stable,
// so decisions tied on both keys keep their original relative order. The
// input slice is not modified.
func Rank(decisions []models.TradeDecision) []models.TradeDecision {
	picks := make([]models.TradeDecision, 0, len(decisions))
	for _, d := range decisions {
		if d.Enter {
			picks = append(picks, d)
		}
	}

	sort.SliceStable(picks, func(i, j int) bool {
		if picks[i].Score != picks[j].Score {
			return picks[i].Score > picks[j].Score
		}
		return picks[i].BuyPrice > picks[j].BuyPrice
	})

	return picks
}
