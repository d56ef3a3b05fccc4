// Copyright 2026 Yigithan Sonmez. All rights reserved.

package rsx

import "github.com/SonmezYigithan/rpcs3/memwin"

// rangeTracker maintains the [min, max) guest-address interval covering
// one of the registry's maps (color or depth), so that the Overlap
// Engine can skip scanning a map entirely when a query's range cannot
// possibly intersect it.
//
// It only ever grows: shrinking it precisely on every eviction would
// require a full rescan of the remaining map, which defeats its purpose
// as a short-circuit. A tracker that overshoots costs a few wasted
// comparisons in the overlap scan; one that undershoots would silently
// drop surfaces from query results, so growth-only is the safe direction
// to approximate in.
type rangeTracker struct {
	lo, hi memwin.Address
	armed  bool
}

// extend grows the tracked interval to cover [lo, hi).
func (r *rangeTracker) extend(lo, hi memwin.Address) {
	if !r.armed {
		r.lo, r.hi, r.armed = lo, hi, true
		return
	}
	if lo < r.lo {
		r.lo = lo
	}
	if hi > r.hi {
		r.hi = hi
	}
}

// overlaps reports whether [lo, hi) can possibly intersect the tracked
// interval. An unarmed tracker (nothing ever extended it) overlaps
// nothing.
func (r *rangeTracker) overlaps(lo, hi memwin.Address) bool {
	if !r.armed {
		return false
	}
	return lo < r.hi && hi > r.lo
}

// reset returns the tracker to its unarmed state, in which it overlaps
// nothing. No operation of the store calls it.
func (r *rangeTracker) reset() { *r = rangeTracker{} }
