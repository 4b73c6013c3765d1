package batch

// Stateless navigation helpers over the validated entry list. Indexes
// clamp at the ends; there is no wraparound.

// HasNext reports whether a later entry exists
func HasNext(index, total int) bool {
	return index < total-1
}

// HasPrevious reports whether an earlier entry exists
func HasPrevious(index int) bool {
	return index > 0
}

// NextIndex advances the cursor, clamping at total-1
func NextIndex(index, total int) int {
	if index < total-1 {
		return index + 1
	}
	if total == 0 {
		return 0
	}
	return total - 1
}

// PreviousIndex retreats the cursor, clamping at 0
func PreviousIndex(index int) int {
	if index > 0 {
		return index - 1
	}
	return 0
}
