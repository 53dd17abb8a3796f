package join

import "sort"

// DefectIndex answers first-in-window lookups over a defect list sorted by distance.
type DefectIndex struct {
	defects []DefectEntry
}

// NewDefectIndex indexes a sorted copy of defects; the caller's slice is left untouched.
func NewDefectIndex(defects []DefectEntry) *DefectIndex {
	sorted := make([]DefectEntry, len(defects))
	copy(sorted, defects)
	SortDefects(sorted)
	return &DefectIndex{defects: sorted}
}

// Len returns the number of indexed defects.
func (ix *DefectIndex) Len() int { return len(ix.defects) }

// At returns the i-th defect in ascending distance order.
func (ix *DefectIndex) At(i int) DefectEntry { return ix.defects[i] }

// Match returns the position of the first defect, in ascending distance order,
// whose distance lies in [distance-tolerance, distance+tolerance].
// It is the smallest-distance defect inside the window, not the closest one.
func (ix *DefectIndex) Match(distance, tolerance float64) (int, bool) {
	// Same predicates as MatchLinear so rounding cannot make the two disagree.
	i := sort.Search(len(ix.defects), func(i int) bool {
		return distance <= ix.defects[i].Distance+tolerance
	})
	if i < len(ix.defects) && distance >= ix.defects[i].Distance-tolerance {
		return i, true
	}
	return -1, false
}

// MatchLinear is the reference scan Match must agree with: walk the sorted
// list and take the first defect inside the window.
func MatchLinear(sorted []DefectEntry, distance, tolerance float64) (int, bool) {
	for i, d := range sorted {
		if distance >= d.Distance-tolerance && distance <= d.Distance+tolerance {
			return i, true
		}
	}
	return -1, false
}
