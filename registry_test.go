// Copyright 2026 Yigithan Sonmez. All rights reserved.

package rsx

import (
	"testing"

	"github.com/SonmezYigithan/rpcs3/memwin"
)

func TestRegistryClearBoundReferencesTo(t *testing.T) {
	r := newRegistry()
	r.boundColor[0] = boundSlot{address: 0x1000}
	r.boundDepth = boundSlot{address: 0x2000}

	r.clearBoundReferencesTo(0x1000, false)
	if r.boundColor[0].live() {
		t.Fatal("clearBoundReferencesTo should clear the matching color slot")
	}
	if !r.boundDepth.live() {
		t.Fatal("clearBoundReferencesTo(isDepth=false) must not touch the depth slot")
	}

	r.clearBoundReferencesTo(0x2000, true)
	if r.boundDepth.live() {
		t.Fatal("clearBoundReferencesTo should clear the depth slot")
	}
}

func TestRegistryIsBound(t *testing.T) {
	r := newRegistry()
	r.boundColor[2] = boundSlot{address: 0x3000}
	if !r.isBound(0x3000, false) {
		t.Fatal("isBound should find the address in any color slot")
	}
	if r.isBound(0x3000, true) {
		t.Fatal("isBound must not cross the color/depth type boundary")
	}
}

func TestRangeTrackerOverlaps(t *testing.T) {
	var rt rangeTracker
	if rt.overlaps(0, 100) {
		t.Fatal("an unarmed tracker should overlap nothing")
	}
	rt.extend(0x1000, 0x2000)
	if !rt.overlaps(0x1800, 0x1900) {
		t.Fatal("range fully inside the tracked interval should overlap")
	}
	if rt.overlaps(0x3000, 0x4000) {
		t.Fatal("disjoint range should not overlap")
	}
	rt.extend(0x500, 0x600)
	if !rt.overlaps(0x500, 0x600) {
		t.Fatal("extend should grow lo downward")
	}
}

func TestInvalidatedPoolFindAndReplace(t *testing.T) {
	p := newInvalidatedPool()
	d1 := &Descriptor{address: memwin.Address(0x1000)}
	d2 := &Descriptor{address: memwin.Address(0x2000)}
	p.push(d1)
	p.push(d2)

	e := p.find(func(d *Descriptor) bool { return d.Address() == 0x2000 })
	if e == nil {
		t.Fatal("find should locate d2")
	}
	if p.len() != 2 {
		t.Fatalf("find must not remove entries: len=%d, want 2", p.len())
	}

	replacement := &Descriptor{address: memwin.Address(0x9000)}
	p.replace(e, replacement)
	if p.len() != 2 {
		t.Fatalf("replace must preserve queue length: len=%d, want 2", p.len())
	}
	if e.Value.(*Descriptor) != replacement {
		t.Fatal("replace should swap the element's value in place")
	}
}
