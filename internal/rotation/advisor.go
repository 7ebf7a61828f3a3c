package rotation

// Advice is the Duration Advisor's recommendation for a single period.
type Advice struct {
	// RotationsPerPeriod is the minimum number of slots needed so that
	// every roster member could appear at least once per period.
	RotationsPerPeriod int
	// RecommendedSeconds is the slot length that divides the period into
	// that many equal rotations.
	RecommendedSeconds int
}

// Advise computes the slot length that subdivides a period of periodLength
// seconds into the minimum number of equal rotations covering a roster of
// rosterSize with slotSize participants on the field at a time. Advisory
// only; callers may override the recommendation.
func Advise(rosterSize, slotSize, periodLength int) Advice {
	rotations := (rosterSize + slotSize - 1) / slotSize
	return Advice{
		RotationsPerPeriod: rotations,
		RecommendedSeconds: periodLength / rotations,
	}
}
