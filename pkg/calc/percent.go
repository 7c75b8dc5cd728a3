package calc

// PercentOf returns pct percent of value.
func PercentOf(pct, value float64) float64 {
	return value * pct / 100
}

// PercentChange returns the relative change from before to after, in percent.
func PercentChange(before, after float64) (float64, error) {
	if before == 0 {
		return 0, invalid("before", "must not be zero")
	}
	return (after - before) / before * 100, nil
}

// PercentRatio returns what percent part is of whole.
func PercentRatio(part, whole float64) (float64, error) {
	if whole == 0 {
		return 0, invalid("whole", "must not be zero")
	}
	return part / whole * 100, nil
}
