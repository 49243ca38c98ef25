package utils

// ID-array fields are semantically sets but stored as ordered lists; these
// helpers preserve order while keeping the no-duplicates invariant.

// ContainsID reports whether id is present in ids.
func ContainsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// AppendUnique appends id unless it is already present.
func AppendUnique(ids []string, id string) []string {
	if ContainsID(ids, id) {
		return ids
	}
	return append(ids, id)
}

// RemoveID removes every occurrence of id, preserving order.
func RemoveID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
