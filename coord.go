package dtnsim

//
// Coord: a 2-D point and the range checks built on it.
//

import "math"

// Coord is a 2-D point in the simulated playfield.
type Coord struct {
	X float64
	Y float64
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Coord) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// InRange reports whether two interfaces at the given coordinates and
// transmit ranges can see each other. Per SPEC_FULL.md §4.3, the check uses
// the smaller of the two ranges and ties (d == range) are connected.
func InRange(a, b Coord, rangeA, rangeB float64) bool {
	limit := rangeA
	if rangeB < limit {
		limit = rangeB
	}
	return Distance(a, b) <= limit
}
