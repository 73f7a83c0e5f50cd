package trust

import "testing"

func TestPeerScore(t *testing.T) {
	tests := []struct {
		name     string
		snippets int
		want     int
	}{
		{"zero snippets", 0, 0},
		{"one snippet", 1, 10},
		{"three snippets", 3, 30},
		{"capped at 40", 4, 40},
		{"well past the cap", 12, 40},
		{"negative clamps to zero", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PeerScore(tt.snippets); got != tt.want {
				t.Errorf("PeerScore(%d) = %d, want %d", tt.snippets, got, tt.want)
			}
		})
	}
}

func TestInventoryScore(t *testing.T) {
	tests := []struct {
		name    string
		actions int
		want    int
	}{
		{"no actions", 0, 10},
		{"one action", 1, 25},
		{"many actions", 5, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InventoryScore(tt.actions); got != tt.want {
				t.Errorf("InventoryScore(%d) = %d, want %d", tt.actions, got, tt.want)
			}
		})
	}
}

func TestClarityScore(t *testing.T) {
	tests := []struct {
		name string
		len  int
		want int
	}{
		{"empty message", 0, 10},
		{"exactly 50 chars", 50, 10},
		{"51 chars", 51, 20},
		{"long message", 500, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClarityScore(tt.len); got != tt.want {
				t.Errorf("ClarityScore(%d) = %d, want %d", tt.len, got, tt.want)
			}
		})
	}
}

func TestKBScore(t *testing.T) {
	tests := []struct {
		name     string
		snippets int
		want     int
	}{
		{"zero snippets", 0, 5},
		{"exactly 3 snippets", 3, 5},
		{"four snippets", 4, 15},
		{"many snippets", 10, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KBScore(tt.snippets); got != tt.want {
				t.Errorf("KBScore(%d) = %d, want %d", tt.snippets, got, tt.want)
			}
		})
	}
}

func TestConfidence_Floor(t *testing.T) {
	// Worst case: no snippets, no actions, terse message.
	got := Confidence(0, 0, 10)
	if got != 25 {
		t.Errorf("expected floor confidence 25, got %d", got)
	}
	if !SuggestHandoff(got) {
		t.Error("floor confidence must trigger handoff")
	}
}

func TestConfidence_Ceiling(t *testing.T) {
	// Best case: 4+ snippets, at least one action, substantial message.
	got := Confidence(4, 1, 120)
	if got != 100 {
		t.Errorf("expected ceiling confidence 100, got %d", got)
	}
	if SuggestHandoff(got) {
		t.Error("ceiling confidence must not trigger handoff")
	}
}

func TestConfidence_Range(t *testing.T) {
	// Confidence stays in [25, 100] across the whole input space.
	for snippets := 0; snippets <= 15; snippets++ {
		for actions := 0; actions <= 5; actions++ {
			for _, msgLen := range []int{0, 1, 50, 51, 200, 5000} {
				got := Confidence(snippets, actions, msgLen)
				if got < 25 || got > 100 {
					t.Fatalf("Confidence(%d, %d, %d) = %d, outside [25, 100]",
						snippets, actions, msgLen, got)
				}
			}
		}
	}
}

func TestConfidence_Examples(t *testing.T) {
	tests := []struct {
		name     string
		snippets int
		actions  int
		msgLen   int
		want     int
	}{
		// 0+10+10+5
		{"bare reply", 0, 0, 40, 25},
		// 20+10+20+5
		{"two snippets long reply", 2, 0, 80, 55},
		// 30+25+20+5; snippet count 3 misses the kb bonus
		{"three snippets with action", 3, 2, 80, 80},
		// 30+25+10+5
		{"three snippets terse with action", 3, 1, 30, 70},
		// 40+25+20+15
		{"full marks", 6, 3, 200, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Confidence(tt.snippets, tt.actions, tt.msgLen)
			if got != tt.want {
				t.Errorf("Confidence(%d, %d, %d) = %d, want %d",
					tt.snippets, tt.actions, tt.msgLen, got, tt.want)
			}
		})
	}
}

func TestSuggestHandoff_Threshold(t *testing.T) {
	if !SuggestHandoff(44) {
		t.Error("44 must suggest handoff")
	}
	if SuggestHandoff(45) {
		t.Error("45 must not suggest handoff")
	}
}
