package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortBulletsByRelevance_Descending(t *testing.T) {
	bullets := []RankedBullet{
		{Highlight: "low", Relevance: 1},
		{Highlight: "high", Relevance: 5},
		{Highlight: "mid", Relevance: 3},
	}

	SortBulletsByRelevance(bullets)

	assert.Equal(t, []string{"high", "mid", "low"}, HighlightStrings(bullets))
}

func TestSortBulletsByRelevance_StableOnTies(t *testing.T) {
	// Relevance [3,5,3,5] in emission order [a,b,c,d] must yield [b,d,a,c].
	bullets := []RankedBullet{
		{Highlight: "a", Relevance: 3},
		{Highlight: "b", Relevance: 5},
		{Highlight: "c", Relevance: 3},
		{Highlight: "d", Relevance: 5},
	}

	SortBulletsByRelevance(bullets)

	assert.Equal(t, []string{"b", "d", "a", "c"}, HighlightStrings(bullets))
}

func TestSortBulletsByRelevance_Empty(t *testing.T) {
	var bullets []RankedBullet
	SortBulletsByRelevance(bullets)
	assert.Empty(t, HighlightStrings(bullets))
}

func TestHighlightStrings(t *testing.T) {
	bullets := []RankedBullet{
		{Highlight: "one", Relevance: 2},
		{Highlight: "two", Relevance: 4},
	}
	assert.Equal(t, []string{"one", "two"}, HighlightStrings(bullets))
}
