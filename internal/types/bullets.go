package types

import "sort"

// MinRelevance and MaxRelevance bound the relevance score attached to a
// candidate bullet.
const (
	MinRelevance = 1
	MaxRelevance = 5
)

// RankedBullet is a candidate highlight with a model-assigned relevance score.
// Bullets are transient: they are consumed immediately to resequence highlight
// lists and never persisted standalone.
type RankedBullet struct {
	Highlight string `json:"highlight"`
	Relevance int    `json:"relevance"`
}

// SortBulletsByRelevance orders bullets by descending relevance. The sort is
// stable: bullets with equal relevance keep their emission order.
func SortBulletsByRelevance(bullets []RankedBullet) {
	sort.SliceStable(bullets, func(i, j int) bool {
		return bullets[i].Relevance > bullets[j].Relevance
	})
}

// HighlightStrings extracts the highlight text from each bullet, in order.
func HighlightStrings(bullets []RankedBullet) []string {
	out := make([]string, 0, len(bullets))
	for _, b := range bullets {
		out = append(out, b.Highlight)
	}
	return out
}
