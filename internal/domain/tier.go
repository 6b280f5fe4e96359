package domain

// Tier is the subscription level ladder. It is used both as a member's
// subscription tier and as a course's minimum required level.
type Tier string

const (
	TierDebutant Tier = "debutant"
	TierMedium   Tier = "medium"
	TierExpert   Tier = "expert"
)

var tierRanks = map[Tier]int{
	TierDebutant: 1,
	TierMedium:   2,
	TierExpert:   3,
}

// Rank returns the position of the tier in the total order. Unknown tiers
// rank below every valid tier.
func (t Tier) Rank() int {
	return tierRanks[t]
}

// Valid reports whether the tier is one of the known levels.
func (t Tier) Valid() bool {
	_, ok := tierRanks[t]
	return ok
}

// AtLeast reports whether t ranks at or above other.
func (t Tier) AtLeast(other Tier) bool {
	return t.Rank() >= other.Rank()
}
