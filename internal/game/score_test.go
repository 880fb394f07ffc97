package game

import "testing"

func TestScoreTrackerAward(t *testing.T) {
	tr := NewScoreTracker(2, 1)

	full := tr.Award(false)
	reduced := tr.Award(true)

	if reduced >= full {
		t.Errorf("reduced award %d must be less than full award %d", reduced, full)
	}
	if tr.Current() != full+reduced {
		t.Errorf("Current() = %d, want %d", tr.Current(), full+reduced)
	}
}

func TestScoreTrackerConfigFallback(t *testing.T) {
	tests := []struct {
		name          string
		full, reduced int
		wantFull      int
		wantReduced   int
	}{
		{"valid custom awards", 10, 5, 10, 5},
		{"reduced not smaller", 2, 2, DefaultFullAward, DefaultHintAward},
		{"zero full", 0, 1, DefaultFullAward, DefaultHintAward},
		{"negative reduced", 5, -1, DefaultFullAward, DefaultHintAward},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewScoreTracker(tt.full, tt.reduced)
			if tr.FullAward() != tt.wantFull || tr.HintAward() != tt.wantReduced {
				t.Errorf("awards = %d/%d, want %d/%d",
					tr.FullAward(), tr.HintAward(), tt.wantFull, tt.wantReduced)
			}
		})
	}
}

func TestScoreTrackerResetAndRestore(t *testing.T) {
	tr := NewScoreTracker(2, 1)
	tr.Award(false)
	tr.Reset()
	if tr.Current() != 0 {
		t.Errorf("Current() = %d after Reset, want 0", tr.Current())
	}

	tr.Restore(7)
	if tr.Current() != 7 {
		t.Errorf("Current() = %d after Restore(7), want 7", tr.Current())
	}
	tr.Restore(-3)
	if tr.Current() != 0 {
		t.Errorf("Current() = %d after Restore(-3), want 0", tr.Current())
	}
}
