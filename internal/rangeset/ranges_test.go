// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rangeset

import (
	"fmt"
	"testing"
)

// intval is the smallest possible Value[T] implementation, used to exercise
// Ranges without pulling in a real version or string type.
type intval int

func (a intval) Compare(b intval) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func iv(n int) intval { return intval(n) }

// contains reports whether v is a member of r, computed the slow way by
// scanning segments directly, independent of any Ranges method under test.
func contains(r Ranges[intval], v intval) bool {
	for _, seg := range r.Segments() {
		lo, loOK := seg.Lower.Value()
		hi, hiOK := seg.Upper.Value()
		if loOK {
			if v.Compare(lo) < 0 {
				continue
			}
			if v.Compare(lo) == 0 && !seg.Lower.Included() {
				continue
			}
		}
		if hiOK {
			if v.Compare(hi) > 0 {
				continue
			}
			if v.Compare(hi) == 0 && !seg.Upper.Included() {
				continue
			}
		}
		return true
	}
	return false
}

func TestBasicConstructors(t *testing.T) {
	tests := []struct {
		name  string
		r     Ranges[intval]
		in    []int
		notIn []int
	}{
		{"singleton", Singleton(iv(5)), []int{5}, []int{4, 6}},
		{"strictlyHigher", StrictlyHigherThan(iv(5)), []int{6, 100}, []int{5, 4}},
		{"higher", HigherThan(iv(5)), []int{5, 6}, []int{4}},
		{"strictlyLower", StrictlyLowerThan(iv(5)), []int{4, -100}, []int{5, 6}},
		{"lower", LowerThan(iv(5)), []int{5, 4}, []int{6}},
		{"full", Full[intval](), []int{-100, 0, 100}, nil},
		{"empty", Empty[intval](), nil, []int{-100, 0, 100}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, v := range tc.in {
				if !contains(tc.r, iv(v)) {
					t.Errorf("expected %d in %v", v, tc.name)
				}
			}
			for _, v := range tc.notIn {
				if contains(tc.r, iv(v)) {
					t.Errorf("expected %d not in %v", v, tc.name)
				}
			}
		})
	}
}

func TestComplementInvolution(t *testing.T) {
	rs := []Ranges[intval]{
		Singleton(iv(5)),
		HigherThan(iv(5)),
		StrictlyLowerThan(iv(5)),
		Full[intval](),
		Empty[intval](),
		FromBounds(Included(iv(1)), Excluded(iv(10))),
	}
	for _, r := range rs {
		for v := -5; v <= 15; v++ {
			want := contains(r, iv(v))
			got := contains(r.Complement().Complement(), iv(v))
			if want != got {
				t.Errorf("contains(%v, complement(complement(%v))) = %v, want %v", v, r, got, want)
			}
		}
	}
}

func TestUnionIntersectionDisjoint(t *testing.T) {
	a := FromBounds(Included(iv(0)), Excluded(iv(5)))
	b := FromBounds(Included(iv(5)), Excluded(iv(10)))
	// a and b touch exactly at 5 (exclusive/inclusive): union should merge
	// into one segment, not two.
	u := a.Union(b)
	if segs := u.Segments(); len(segs) != 1 {
		t.Fatalf("Union of touching ranges produced %d segments, want 1: %v", len(segs), segs)
	}
	for v := -2; v <= 12; v++ {
		want := contains(a, iv(v)) || contains(b, iv(v))
		if got := contains(u, iv(v)); got != want {
			t.Errorf("contains(%d, union) = %v, want %v", v, got, want)
		}
	}

	c := FromBounds(Included(iv(3)), Excluded(iv(8)))
	i := a.Union(b).Intersection(c)
	for v := -2; v <= 12; v++ {
		want := (contains(a, iv(v)) || contains(b, iv(v))) && contains(c, iv(v))
		if got := contains(i, iv(v)); got != want {
			t.Errorf("contains(%d, intersection) = %v, want %v", v, got, want)
		}
	}

	if !a.IsDisjoint(FromBounds(Included(iv(5)), Unbounded[intval]())) {
		t.Error("expected [0,5) to be disjoint from [5, inf)")
	}
	if a.IsDisjoint(b.Union(c)) {
		// b.Union(c) covers [3, 10), which overlaps [0,5) on [3,5).
		t.Error("expected [0,5) to overlap [3,10)")
	}
}

func TestUnionDoesNotMergeAcrossGap(t *testing.T) {
	a := FromBounds(Unbounded[intval](), Excluded(iv(5)))
	b := FromBounds(Excluded(iv(5)), Unbounded[intval]())
	u := a.Union(b)
	if segs := u.Segments(); len(segs) != 2 {
		t.Fatalf("Union of (-inf,5) and (5,inf) produced %d segments, want 2 (5 itself is missing)", len(segs))
	}
	if contains(u, iv(5)) {
		t.Error("5 should not be a member of (-inf,5) union (5,inf)")
	}
}

func TestBoundingRange(t *testing.T) {
	if _, _, ok := Empty[intval]().BoundingRange(); ok {
		t.Error("empty set should have no bounding range")
	}
	r := FromBounds(Included(iv(1)), Excluded(iv(4))).Union(FromBounds(Included(iv(8)), Excluded(iv(10))))
	lo, hi, ok := r.BoundingRange()
	if !ok {
		t.Fatal("expected a bounding range")
	}
	if v, _ := lo.Value(); v != 1 {
		t.Errorf("lower bound = %v, want 1", v)
	}
	if v, _ := hi.Value(); v != 10 {
		t.Errorf("upper bound = %v, want 10", v)
	}
}

func ExampleFromBounds() {
	r := FromBounds(Included(iv(1)), Excluded(iv(4)))
	fmt.Println(contains(r, iv(1)), contains(r, iv(4)))
	// Output: true false
}
