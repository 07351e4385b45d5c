package core

// FilterByCategory returns the subsequence of entries whose category equals
// c, preserving order. An empty category matches everything, in which case
// the input slice is returned as-is. The projection never mutates its input
// and is recomputed on every call; nothing is cached.
func FilterByCategory(entries []Entry, c Category) []Entry {
	if c == "" {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}
