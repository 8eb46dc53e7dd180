package timeline

import (
	"cmp"
	"slices"
)

// Interval is a half-open [Start, End) minute range on one day.
type Interval struct {
	ID           string
	Start        int
	End          int
	AllowOverlap bool
}

// Overlaps reports whether two half-open intervals share any minute.
// Touching intervals (a.End == b.Start) do not overlap.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start < b.End && a.End > b.Start
}

// Column is the horizontal placement of one interval within its cluster.
type Column struct {
	Index int
	Total int
}

// Width returns the rendered width as a percentage of the day track.
func (c Column) Width() float64 {
	if c.Total <= 1 {
		return 100
	}
	return 100 / float64(c.Total)
}

// Offset returns the left offset as a percentage of the day track.
func (c Column) Offset() float64 {
	if c.Total <= 1 {
		return 0
	}
	return float64(c.Index) * c.Width()
}

// Result is the layout of one day.
type Result struct {
	Columns   map[string]Column
	Colliding map[string]bool
	// Clusters lists the ids of each maximal overlap cluster, in start order.
	Clusters [][]string
}

// IsColliding reports whether id was flagged.
func (r Result) IsColliding(id string) bool {
	return r.Colliding[id]
}

// Layout groups the intervals of one day into maximal overlap clusters,
// packs every cluster into the minimum number of columns, and flags
// genuinely overlapping pairs unless either side allows overlap.
func Layout(intervals []Interval) Result {
	res := Result{
		Columns:   make(map[string]Column, len(intervals)),
		Colliding: map[string]bool{},
	}
	if len(intervals) == 0 {
		return res
	}

	sorted := slices.Clone(intervals)
	slices.SortStableFunc(sorted, func(a, b Interval) int {
		return cmp.Compare(a.Start, b.Start)
	})

	processed := make([]bool, len(sorted))
	for seed := range sorted {
		if processed[seed] {
			continue
		}
		cluster := collectCluster(sorted, processed, seed)
		packColumns(cluster, res.Columns)
		flagCollisions(cluster, res.Colliding)

		ids := make([]string, len(cluster))
		for i, iv := range cluster {
			ids[i] = iv.ID
		}
		res.Clusters = append(res.Clusters, ids)
	}
	return res
}

// LayoutSegments lays out the segments of a single day, keyed by segment id.
func LayoutSegments(segments []Segment) Result {
	intervals := make([]Interval, len(segments))
	for i, s := range segments {
		intervals[i] = Interval{
			ID:           s.ID(),
			Start:        s.StartMin,
			End:          s.EndMin,
			AllowOverlap: s.Activity.AllowOverlap,
		}
	}
	return Layout(intervals)
}

// collectCluster flood-fills from seed over every unprocessed interval
// that overlaps something already queued.
func collectCluster(sorted []Interval, processed []bool, seed int) []Interval {
	queue := []int{seed}
	processed[seed] = true
	for head := 0; head < len(queue); head++ {
		current := sorted[queue[head]]
		for j, other := range sorted {
			if processed[j] || !current.Overlaps(other) {
				continue
			}
			processed[j] = true
			queue = append(queue, j)
		}
	}

	cluster := make([]Interval, len(queue))
	for i, idx := range queue {
		cluster[i] = sorted[idx]
	}
	slices.SortStableFunc(cluster, func(a, b Interval) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return cluster
}

// packColumns places each member in the first column whose last end is at
// or before the member's start, opening a new column otherwise.
func packColumns(cluster []Interval, out map[string]Column) {
	var columnEnds []int
	index := make([]int, len(cluster))
	for i, member := range cluster {
		placed := false
		for c, end := range columnEnds {
			if end <= member.Start {
				columnEnds[c] = member.End
				index[i] = c
				placed = true
				break
			}
		}
		if !placed {
			index[i] = len(columnEnds)
			columnEnds = append(columnEnds, member.End)
		}
	}
	for i, member := range cluster {
		out[member.ID] = Column{Index: index[i], Total: len(columnEnds)}
	}
}

func flagCollisions(cluster []Interval, colliding map[string]bool) {
	for i := range cluster {
		for j := i + 1; j < len(cluster); j++ {
			a, b := cluster[i], cluster[j]
			if !a.Overlaps(b) || a.AllowOverlap || b.AllowOverlap {
				continue
			}
			colliding[a.ID] = true
			colliding[b.ID] = true
		}
	}
}

// MaxDepth returns the largest number of intervals active at one instant.
func MaxDepth(intervals []Interval) int {
	type edge struct{ at, delta int }
	edges := make([]edge, 0, len(intervals)*2)
	for _, iv := range intervals {
		if iv.End <= iv.Start {
			continue
		}
		edges = append(edges, edge{iv.Start, 1}, edge{iv.End, -1})
	}
	// Ends sort before starts at the same minute: touching is not overlap.
	slices.SortFunc(edges, func(a, b edge) int {
		if a.at != b.at {
			return cmp.Compare(a.at, b.at)
		}
		return cmp.Compare(a.delta, b.delta)
	})
	depth, best := 0, 0
	for _, e := range edges {
		depth += e.delta
		best = max(best, depth)
	}
	return best
}
