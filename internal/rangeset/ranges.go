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

/*
Package rangeset implements a totally-ordered disjoint-interval set, the
Range primitive described in the marker algebra: a set of values of some
ordered type T represented as a sorted, non-overlapping, non-adjoining list
of intervals.

It plays the role version_ranges::Ranges<T> plays in the original uv-pep508
marker algebra: version and string edge sets are built entirely out of
Ranges values, and the algebra never inspects T directly, only through
Compare and the operations here.
*/
package rangeset

import "sort"

// Segment is one of the disjoint intervals making up a Ranges.
type Segment[T Value[T]] struct {
	Lower, Upper Bound[T]
}

// Ranges is a disjoint, sorted set of intervals over T. The zero value is
// the empty set.
type Ranges[T Value[T]] struct {
	segments []Segment[T]
}

// Empty returns the set containing no values.
func Empty[T Value[T]]() Ranges[T] {
	return Ranges[T]{}
}

// Full returns the set containing every value of T.
func Full[T Value[T]]() Ranges[T] {
	return Ranges[T]{segments: []Segment[T]{{Lower: Unbounded[T](), Upper: Unbounded[T]()}}}
}

// Singleton returns the set containing exactly v.
func Singleton[T Value[T]](v T) Ranges[T] {
	return Ranges[T]{segments: []Segment[T]{{Lower: Included(v), Upper: Included(v)}}}
}

// StrictlyHigherThan returns the set of values greater than v.
func StrictlyHigherThan[T Value[T]](v T) Ranges[T] {
	return Ranges[T]{segments: []Segment[T]{{Lower: Excluded(v), Upper: Unbounded[T]()}}}
}

// HigherThan returns the set of values greater than or equal to v.
func HigherThan[T Value[T]](v T) Ranges[T] {
	return Ranges[T]{segments: []Segment[T]{{Lower: Included(v), Upper: Unbounded[T]()}}}
}

// StrictlyLowerThan returns the set of values less than v.
func StrictlyLowerThan[T Value[T]](v T) Ranges[T] {
	return Ranges[T]{segments: []Segment[T]{{Lower: Unbounded[T](), Upper: Excluded(v)}}}
}

// LowerThan returns the set of values less than or equal to v.
func LowerThan[T Value[T]](v T) Ranges[T] {
	return Ranges[T]{segments: []Segment[T]{{Lower: Unbounded[T](), Upper: Included(v)}}}
}

// FromBounds returns the set of values between lower and upper, or the
// empty set if the bounds admit no value.
func FromBounds[T Value[T]](lower, upper Bound[T]) Ranges[T] {
	if emptyBounds(lower, upper) {
		return Empty[T]()
	}
	return Ranges[T]{segments: []Segment[T]{{Lower: lower, Upper: upper}}}
}

// IsEmpty reports whether the set contains no values.
func (r Ranges[T]) IsEmpty() bool { return len(r.segments) == 0 }

// Segments returns the disjoint intervals making up the set, sorted by
// lower bound.
func (r Ranges[T]) Segments() []Segment[T] {
	out := make([]Segment[T], len(r.segments))
	copy(out, r.segments)
	return out
}

// BoundingRange returns the smallest interval containing every value in the
// set, or ok=false if the set is empty.
func (r Ranges[T]) BoundingRange() (lower, upper Bound[T], ok bool) {
	if r.IsEmpty() {
		return lower, upper, false
	}
	return r.segments[0].Lower, r.segments[len(r.segments)-1].Upper, true
}

// Complement returns the set of every value not in r.
func (r Ranges[T]) Complement() Ranges[T] {
	if r.IsEmpty() {
		return Full[T]()
	}
	var out []Segment[T]
	segs := r.segments
	if !segs[0].Lower.IsUnbounded() {
		out = append(out, Segment[T]{Lower: Unbounded[T](), Upper: flip(segs[0].Lower)})
	}
	for i := 0; i < len(segs)-1; i++ {
		out = append(out, Segment[T]{Lower: flip(segs[i].Upper), Upper: flip(segs[i+1].Lower)})
	}
	last := segs[len(segs)-1]
	if !last.Upper.IsUnbounded() {
		out = append(out, Segment[T]{Lower: flip(last.Upper), Upper: Unbounded[T]()})
	}
	if len(out) == 0 {
		return Empty[T]()
	}
	return Ranges[T]{segments: out}
}

// overlapsOrTouches reports whether an interval ending at upper and one
// starting at lower cover at least one common or adjoining point, i.e.
// whether they can be merged into a single interval.
func overlapsOrTouches[T Value[T]](upper, lower Bound[T]) bool {
	if touching(upper, lower) {
		return true
	}
	if upper.IsUnbounded() || lower.IsUnbounded() {
		return true
	}
	uv, _ := upper.Value()
	lv, _ := lower.Value()
	c := uv.Compare(lv)
	if c < 0 {
		return false
	}
	if c > 0 {
		return true
	}
	return upper.Included() && lower.Included()
}

// Union returns the set of values in r or other (or both).
func (r Ranges[T]) Union(other Ranges[T]) Ranges[T] {
	all := make([]Segment[T], 0, len(r.segments)+len(other.segments))
	all = append(all, r.segments...)
	all = append(all, other.segments...)
	if len(all) == 0 {
		return Empty[T]()
	}
	sort.Slice(all, func(i, j int) bool {
		return compareLower(all[i].Lower, all[j].Lower) < 0
	})
	merged := []Segment[T]{all[0]}
	for _, s := range all[1:] {
		last := &merged[len(merged)-1]
		if overlapsOrTouches(last.Upper, s.Lower) {
			if compareUpper(s.Upper, last.Upper) > 0 {
				last.Upper = s.Upper
			}
			continue
		}
		merged = append(merged, s)
	}
	return Ranges[T]{segments: merged}
}

func maxLower[T Value[T]](a, b Bound[T]) Bound[T] {
	if compareLower(a, b) >= 0 {
		return a
	}
	return b
}

func minUpper[T Value[T]](a, b Bound[T]) Bound[T] {
	if compareUpper(a, b) <= 0 {
		return a
	}
	return b
}

// Intersection returns the set of values in both r and other.
func (r Ranges[T]) Intersection(other Ranges[T]) Ranges[T] {
	var out []Segment[T]
	i, j := 0, 0
	for i < len(r.segments) && j < len(other.segments) {
		a, b := r.segments[i], other.segments[j]
		lo := maxLower(a.Lower, b.Lower)
		up := minUpper(a.Upper, b.Upper)
		if !emptyBounds(lo, up) {
			out = append(out, Segment[T]{Lower: lo, Upper: up})
		}
		if compareUpper(a.Upper, b.Upper) < 0 {
			i++
		} else {
			j++
		}
	}
	return Ranges[T]{segments: out}
}

// IsDisjoint reports whether r and other share no value.
func (r Ranges[T]) IsDisjoint(other Ranges[T]) bool {
	return r.Intersection(other).IsEmpty()
}
