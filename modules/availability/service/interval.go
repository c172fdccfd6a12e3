package service

import (
	"sort"

	"counsel-api/modules/availability/entity"
)

// Overlaps reports whether two half-open ranges intersect. Ranges that only
// touch at an endpoint do not overlap.
func Overlaps(a, b entity.TimeRange) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// MergeIntervals normalizes a set of ranges into a sorted, disjoint set.
// Adjacent ranges are coalesced.
func MergeIntervals(intervals []entity.TimeRange) []entity.TimeRange {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]entity.TimeRange, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []entity.TimeRange{sorted[0]}
	for _, cur := range sorted[1:] {
		last := &merged[len(merged)-1]
		if cur.Start.After(last.End) {
			merged = append(merged, cur)
			continue
		}
		if cur.End.After(last.End) {
			last.End = cur.End
		}
	}
	return merged
}

// Subtract removes the busy ranges from block, returning the free fragments
// in order. A busy interval inside the block splits it in two.
func Subtract(block entity.TimeRange, busy []entity.TimeRange) []entity.TimeRange {
	free := []entity.TimeRange{block}
	for _, b := range MergeIntervals(busy) {
		var next []entity.TimeRange
		for _, f := range free {
			if !Overlaps(f, b) {
				next = append(next, f)
				continue
			}
			if f.Start.Before(b.Start) {
				next = append(next, entity.TimeRange{Start: f.Start, End: b.Start})
			}
			if b.End.Before(f.End) {
				next = append(next, entity.TimeRange{Start: b.End, End: f.End})
			}
		}
		free = next
	}
	return free
}
