package rules

import "math"

// DefaultSwipeThreshold is the minimum gesture power a drag has to reach
// before it counts as a decision.
const DefaultSwipeThreshold = 800

type Decision string

const (
	DecisionNone Decision = "NONE"
	DecisionLike Decision = "LIKE"
	DecisionSkip Decision = "SKIP"
)

// DecideSwipe turns raw drag telemetry into a card decision. Gesture power is
// horizontal displacement magnitude times horizontal velocity; the sign of
// the velocity picks the direction (right = like, left = skip).
func DecideSwipe(offsetX, velocityX, threshold float64) Decision {
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}

	power := math.Abs(offsetX) * velocityX
	switch {
	case power > threshold:
		return DecisionLike
	case power < -threshold:
		return DecisionSkip
	default:
		return DecisionNone
	}
}
