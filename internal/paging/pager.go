// Package paging maps scroll positions onto logical pages: the looping
// dashboard pager and the lazily extended window of calendar weeks.
package paging

import (
	"errors"
	"fmt"
)

// ErrInvalidPager is returned when a pager is configured without pages or cycles.
var ErrInvalidPager = errors.New("pager needs at least one page and one cycle")

// Pager repeats TotalPages logical pages CycleCount times to approximate an
// infinite carousel without generating unbounded items.
type Pager struct {
	TotalPages int
	CycleCount int
	// EdgeCycles is how many cycles from either end of the repeated list a
	// position may get before it has to be re-centred.
	EdgeCycles int
}

// NewPager validates and returns a pager. edgeCycles <= 0 defaults to 1.
func NewPager(totalPages, cycleCount, edgeCycles int) (Pager, error) {
	if totalPages <= 0 || cycleCount <= 0 {
		return Pager{}, fmt.Errorf("%w: pages=%d cycles=%d", ErrInvalidPager, totalPages, cycleCount)
	}
	if edgeCycles <= 0 {
		edgeCycles = 1
	}
	return Pager{TotalPages: totalPages, CycleCount: cycleCount, EdgeCycles: edgeCycles}, nil
}

// ItemCount is the number of items the scroll view renders.
func (p Pager) ItemCount() int {
	return p.TotalPages * p.CycleCount
}

// Center is the first page of the middle cycle, leaving room on both sides.
func (p Pager) Center() int {
	return (p.CycleCount / 2) * p.TotalPages
}

// Page maps any scroll index, including negative ones, into [0, TotalPages).
func (p Pager) Page(index int) int {
	if p.TotalPages <= 0 {
		return 0
	}
	return ((index % p.TotalPages) + p.TotalPages) % p.TotalPages
}

// NeedsRecenter reports whether index is close enough to either end of the
// repeated list that the carousel illusion would break.
func (p Pager) NeedsRecenter(index int) bool {
	margin := p.EdgeCycles * p.TotalPages
	if margin*2 >= p.ItemCount() {
		// Too few cycles to have a safe middle; only out-of-range positions move.
		return index < 0 || index >= p.ItemCount()
	}
	return index < margin || index >= p.ItemCount()-margin
}

// Recenter moves index to the same logical page inside the middle cycle.
func (p Pager) Recenter(index int) int {
	return p.Center() + p.Page(index)
}

// Settle returns the logical page for index and the scroll position the view
// should sit at, re-centred when index drifted near an edge.
func (p Pager) Settle(index int) (page, position int) {
	page = p.Page(index)
	if p.NeedsRecenter(index) {
		return page, p.Recenter(index)
	}
	return page, index
}
