package products

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierBandsPartitionScoreRange(t *testing.T) {
	counts := map[Tier]int{}
	for score := 0; score <= 100; score++ {
		counts[TierFor(score)]++
	}

	assert.Equal(t, 21, counts[TierStar], "[80,100]")
	assert.Equal(t, 20, counts[TierStrong], "[60,79]")
	assert.Equal(t, 15, counts[TierAverage], "[45,59]")
	assert.Equal(t, 45, counts[TierWeak], "[0,44]")
}

func TestTierBoundaries(t *testing.T) {
	tests := []struct {
		score int
		tier  Tier
	}{
		{100, TierStar},
		{80, TierStar},
		{79, TierStrong},
		{60, TierStrong},
		{59, TierAverage},
		{45, TierAverage},
		{44, TierWeak},
		{0, TierWeak},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.tier, TierFor(tt.score), "score=%d", tt.score)
	}
}
