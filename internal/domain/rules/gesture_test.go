package rules

import "testing"

func TestDecideSwipe(t *testing.T) {
	cases := []struct {
		name      string
		offsetX   float64
		velocityX float64
		want      Decision
	}{
		{name: "right drag above threshold", offsetX: 120, velocityX: 10, want: DecisionLike},
		{name: "left drag above threshold", offsetX: -120, velocityX: -10, want: DecisionSkip},
		{name: "slow drag below threshold", offsetX: 120, velocityX: 5, want: DecisionNone},
		{name: "exactly at threshold", offsetX: 80, velocityX: 10, want: DecisionNone},
		{name: "no movement", offsetX: 0, velocityX: 0, want: DecisionNone},
		{name: "fast flick with short offset", offsetX: 30, velocityX: 40, want: DecisionLike},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DecideSwipe(tc.offsetX, tc.velocityX, DefaultSwipeThreshold)
			if got != tc.want {
				t.Fatalf("unexpected decision: got %s want %s", got, tc.want)
			}
		})
	}
}

func TestDecideSwipeFallsBackToDefaultThreshold(t *testing.T) {
	if got := DecideSwipe(120, 10, 0); got != DecisionLike {
		t.Fatalf("unexpected decision with zero threshold: got %s want %s", got, DecisionLike)
	}
}
