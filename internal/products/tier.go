package products

// tierBands partitions [0,100]; bands are inclusive on their lower edge and
// walked top-down so every score maps to exactly one tier.
var tierBands = []struct {
	min  int
	tier Tier
}{
	{80, TierStar},
	{60, TierStrong},
	{45, TierAverage},
	{0, TierWeak},
}

// TierFor maps a clamped health score to its performance tier. Tier is a
// pure function of the score; records never store a tier that was not
// recomputed from their current score.
func TierFor(score int) Tier {
	for _, band := range tierBands {
		if score >= band.min {
			return band.tier
		}
	}
	return TierWeak
}
