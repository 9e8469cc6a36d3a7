package leveling

import "testing"

func TestXPForLevel(t *testing.T) {
	tests := []struct {
		curve Curve
		level int
		want  int
	}{
		{MediumFast, 10, 1000},
		{Fast, 10, 800},
		{Slow, 10, 1250},
		{MediumSlow, 2, 9},
		{MediumSlow, 100, 1059860},
		{Erratic, 100, 600000},
		{Erratic, 50, 125000},
		{Fluctuating, 100, 1640000},
		{Fluctuating, 15, 1957},
		{MediumFast, 100, 1000000},
		{Curve("unknown-curve"), 10, 1000},
	}

	for _, tt := range tests {
		if got := XPForLevel(tt.curve, tt.level); got != tt.want {
			t.Errorf("XPForLevel(%q, %d) = %d, want %d", tt.curve, tt.level, got, tt.want)
		}
	}
}

func TestXPForLevelOneIsZero(t *testing.T) {
	for _, c := range append(Curves, "unknown-curve") {
		for _, level := range []int{-5, 0, 1} {
			if got := XPForLevel(c, level); got != 0 {
				t.Errorf("XPForLevel(%q, %d) = %d, want 0", c, level, got)
			}
		}
	}
}

func TestUnknownCurveMatchesDefault(t *testing.T) {
	for level := 1; level <= MaxLevel; level++ {
		if XPForLevel("missingno", level) != XPForLevel(DefaultCurve, level) {
			t.Fatalf("level %d differs from default curve", level)
		}
	}
}

func TestCurvesAreMonotonic(t *testing.T) {
	for _, c := range Curves {
		prev := 0
		for level := 2; level <= MaxLevel; level++ {
			xp := XPForLevel(c, level)
			if xp < prev {
				t.Errorf("%s: level %d threshold %d below previous %d", c, level, xp, prev)
			}
			prev = xp
		}
	}
}

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		curve Curve
		xp    int
		want  int
	}{
		{MediumFast, 999, 9},
		{MediumFast, 1000, 10},
		{MediumFast, 0, 1},
		{MediumFast, -10, 1},
		{MediumFast, 1000000, 100},
		{MediumFast, 5000000, 100},
		{Fast, 800, 10},
		{Fast, 799, 9},
	}

	for _, tt := range tests {
		if got := LevelForXP(tt.curve, tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%q, %d) = %d, want %d", tt.curve, tt.xp, got, tt.want)
		}
	}
}

func TestLevelForXPInvertsThresholds(t *testing.T) {
	for _, c := range Curves {
		for level := 2; level <= MaxLevel; level++ {
			xp := XPForLevel(c, level)
			if got := LevelForXP(c, xp); got != level {
				t.Errorf("%s: LevelForXP(%d) = %d, want %d", c, xp, got, level)
			}
		}
	}
}

func TestGain(t *testing.T) {
	tests := []struct {
		name              string
		level, xp, amount int
		wantLevel, wantXP int
	}{
		{"single level", 1, 0, 100, 2, 0},
		{"remainder kept", 1, 0, 250, 2, 150},
		{"two levels", 1, 0, 300, 3, 0},
		{"below threshold", 5, 100, 50, 5, 150},
		{"existing experience counts", 2, 150, 50, 3, 0},
		{"level floor", 0, 0, 100, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, xp := Gain(tt.level, tt.xp, tt.amount)
			if level != tt.wantLevel || xp != tt.wantXP {
				t.Errorf("Gain(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.level, tt.xp, tt.amount, level, xp, tt.wantLevel, tt.wantXP)
			}
		})
	}
}

func TestParseCurve(t *testing.T) {
	if c, ok := ParseCurve("slow"); !ok || c != Slow {
		t.Fatalf("ParseCurve(slow) = %q, %v", c, ok)
	}
	if c, ok := ParseCurve("medium"); ok || c != DefaultCurve {
		t.Fatalf("ParseCurve(medium) = %q, %v", c, ok)
	}
}
