package generate

// IDSet is the set of identifiers the sink assigned to a parent entity.
// Child generators sample foreign keys from it uniformly.
type IDSet []int64

// RangeIDs returns the dense set [1, n]. Used when no sink is involved.
func RangeIDs(n int) IDSet {
	ids := make(IDSet, n)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	return ids
}

// Len returns the number of identifiers in the set.
func (s IDSet) Len() int { return len(s) }

// Contains reports whether id is in the set.
func (s IDSet) Contains(id int64) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}
