package playlist

// Move returns a copy of s with the element at index from removed and
// reinserted at index to, the permutation produced by dragging a row onto
// another. Any gesture layer (drag, keyboard, up/down buttons) reduces to
// this one operation. Out-of-range indices yield an unchanged copy.
func Move[T any](s []T, from, to int) []T {
	out := make([]T, len(s))
	copy(out, s)

	if from < 0 || from >= len(s) || to < 0 || to >= len(s) || from == to {
		return out
	}

	item := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]T{item}, out[to:]...)...)
	return out
}
