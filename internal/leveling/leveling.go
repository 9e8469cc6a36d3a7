// Package leveling converts between levels and cumulative experience for the
// named growth curves.
package leveling

import (
	"math"
	"slices"
)

const (
	MinLevel = 1
	MaxLevel = 100
)

type Curve string

const (
	Erratic     Curve = "erratic"
	Fast        Curve = "fast"
	MediumFast  Curve = "medium-fast"
	MediumSlow  Curve = "medium-slow"
	Slow        Curve = "slow"
	Fluctuating Curve = "fluctuating"

	DefaultCurve = MediumFast
)

var Curves = []Curve{Erratic, Fast, MediumFast, MediumSlow, Slow, Fluctuating}

// ParseCurve maps a growth rate name to its Curve. Unknown names map to
// DefaultCurve, ok reports whether the name was recognized.
func ParseCurve(name string) (c Curve, ok bool) {
	if slices.Contains(Curves, Curve(name)) {
		return Curve(name), true
	}
	return DefaultCurve, false
}

// XPForLevel returns the total experience needed to reach level on curve.
// Each formula is truncated toward zero.
func XPForLevel(curve Curve, level int) int {
	if level <= 1 {
		return 0
	}

	n := float64(level)
	n3 := n * n * n

	switch curve {
	case Erratic:
		switch {
		case level <= 50:
			return int(n3 * (100 - n) / 50)
		case level <= 68:
			return int(n3 * (150 - n) / 100)
		case level <= 98:
			return int(n3 * math.Floor((1911-10*n)/3) / 500)
		default:
			return int(n3 * (160 - n) / 100)
		}
	case Fast:
		return int(4 * n3 / 5)
	case MediumSlow:
		return int(6.0/5.0*n3 - 15*n*n + 100*n - 140)
	case Slow:
		return int(5 * n3 / 4)
	case Fluctuating:
		switch {
		case level <= 15:
			return int(n3 * (math.Floor((n+1)/3) + 24) / 50)
		case level <= 36:
			return int(n3 * (n + 14) / 50)
		default:
			return int(n3 * (math.Floor(n/2) + 32) / 50)
		}
	default:
		return int(n3)
	}
}

// LevelForXP returns the highest level in [MinLevel, MaxLevel] whose
// threshold on curve does not exceed xp.
func LevelForXP(curve Curve, xp int) int {
	for level := MinLevel + 1; level <= MaxLevel; level++ {
		if xp < XPForLevel(curve, level) {
			return level - 1
		}
	}
	return MaxLevel
}

// NextLevelXP is the threshold of the level after level.
func NextLevelXP(curve Curve, level int) int {
	return XPForLevel(curve, level+1)
}

// Gain adds amount to experience and levels up while the running total
// covers level*100, consuming that threshold each time.
func Gain(level, experience, amount int) (int, int) {
	if level < MinLevel {
		level = MinLevel
	}

	experience += amount
	for experience >= level*100 {
		experience -= level * 100
		level++
	}
	return level, experience
}
