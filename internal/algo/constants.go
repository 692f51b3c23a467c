package algo

// Fixed scoring weights. The values and their relative proportions are load
// bearing: the gap penalty is tuned so that the boundary bonus is cancelled
// once a gap grows past about 8 characters, and the first-character
// multiplier is tuned so the gap penalty is still respected even for a
// bonus position at the very start of the pattern.
const (
	scoreMatch        int16 = 16
	penaltyGapStart   int16 = 3
	penaltyGapExtend  int16 = 1
	bonusBoundaryBase int16 = scoreMatch / 2 // 8, used when Config doesn't override white/delimiter bonus
	bonusNonWord      int16 = scoreMatch / 2
	bonusCamel123     int16 = bonusBoundaryBase - penaltyGapExtend
	bonusConsecutive  int16 = penaltyGapStart + penaltyGapExtend
	bonusFirstCharMul int16 = 2

	maxPrefixBonus   int16 = 8
	prefixBonusScale int   = 2
)

// Size guards. Above these, FuzzyMatch falls back to the greedy algorithm
// rather than allocating a DP matrix (spec.md §7 "Oversize match").
const (
	maxHaystackLen = 1 << 16
	maxNeedleLen   = 1 << 12
	maxMatrixSize  = 100_000
)
