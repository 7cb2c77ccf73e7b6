package collectibles

// Leveling projects cumulative power onto a level and a progress fraction
// within that level. Level L spans 100*L power, starting at level 1, so
// the cumulative thresholds are 100, 300, 600, ...
//
// Both functions are pure and monotonic in power.

// Level returns the level reached with the given cumulative power.
// Negative power is treated as zero.
func Level(power int) int {
	level, _ := project(power)
	return level
}

// Progress returns the fraction of the current level completed, in [0, 1)
func Progress(power int) float64 {
	_, progress := project(power)
	return progress
}

func project(power int) (int, float64) {
	if power < 0 {
		power = 0
	}
	level := 1
	remaining := power
	for {
		span := 100 * level
		if remaining < span {
			return level, float64(remaining) / float64(span)
		}
		remaining -= span
		level++
	}
}
