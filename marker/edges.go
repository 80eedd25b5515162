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

package marker

import (
	"strings"

	"pep508.dev/marker/internal/pyversion"
	"pep508.dev/marker/internal/rangeset"
)

// Str is the string domain for String edge sets: a named string type
// satisfying rangeset.Value[Str] with ordinary lexicographic order.
type Str string

// Compare implements rangeset.Value[Str].
func (s Str) Compare(other Str) int { return strings.Compare(string(s), string(other)) }

func rangeSingletonStr(v string) rangeset.Ranges[Str] { return rangeset.Singleton(Str(v)) }

type edgeKind int8

const (
	edgeBoolean edgeKind = iota
	edgeVersion
	edgeString
)

// edgePair pairs a single disjoint range with the child it leads to. Each
// Range holds exactly one contiguous interval; the edge list as a whole
// is the sorted, disjoint sequence spec.md §3 calls a Version/String edge
// set.
type edgePair[T rangeset.Value[T]] struct {
	Range rangeset.Ranges[T]
	Child NodeId
}

// versionEdge pairs a disjoint Version range with the child it leads to.
type versionEdge = edgePair[pyversion.Version]

// stringEdge pairs a disjoint Str range with the child it leads to.
type stringEdge = edgePair[Str]

// Edges is the outgoing edge set of a decision node: boolean high/low, or
// a sorted sequence of disjoint ranges over Version or Str, each mapped
// to a child. Exactly one of the three shapes is populated, per Kind.
type Edges struct {
	kind edgeKind

	high, low NodeId // edgeBoolean

	versionEdges []versionEdge // edgeVersion
	stringEdges  []stringEdge  // edgeString
}

// booleanEdges builds a Boolean{high, low} edge set.
func booleanEdges(high, low NodeId) Edges {
	return Edges{kind: edgeBoolean, high: high, low: low}
}

// fromBool builds the Boolean edge set for a constant (complemented or not).
func fromBool(complemented bool) Edges {
	if complemented {
		return booleanEdges(FALSE, TRUE)
	}
	return booleanEdges(TRUE, FALSE)
}

// firstChild returns the child of the first outgoing edge, per spec §4.2
// step 1: Boolean -> high, Range -> first range's child.
func (e Edges) firstChild() NodeId {
	switch e.kind {
	case edgeBoolean:
		return e.high
	case edgeVersion:
		return e.versionEdges[0].Child
	case edgeString:
		return e.stringEdges[0].Child
	default:
		panic("marker: edges have no shape")
	}
}

// allChildrenEqual reports whether every child in e equals id.
func (e Edges) allChildrenEqual(id NodeId) bool {
	switch e.kind {
	case edgeBoolean:
		return e.high == id && e.low == id
	case edgeVersion:
		for _, ve := range e.versionEdges {
			if ve.Child != id {
				return false
			}
		}
		return true
	case edgeString:
		for _, se := range e.stringEdges {
			if se.Child != id {
				return false
			}
		}
		return true
	default:
		panic("marker: edges have no shape")
	}
}

// not flips every child id, the edge-set counterpart of Node.not().
func (e Edges) not() Edges {
	switch e.kind {
	case edgeBoolean:
		return booleanEdges(e.high.Not(), e.low.Not())
	case edgeVersion:
		out := make([]versionEdge, len(e.versionEdges))
		for i, ve := range e.versionEdges {
			out[i] = versionEdge{Range: ve.Range, Child: ve.Child.Not()}
		}
		return Edges{kind: edgeVersion, versionEdges: out}
	case edgeString:
		out := make([]stringEdge, len(e.stringEdges))
		for i, se := range e.stringEdges {
			out[i] = stringEdge{Range: se.Range, Child: se.Child.Not()}
		}
		return Edges{kind: edgeString, stringEdges: out}
	default:
		panic("marker: edges have no shape")
	}
}

// children returns every child id appearing in e, in edge order.
func (e Edges) children() []NodeId {
	switch e.kind {
	case edgeBoolean:
		return []NodeId{e.high, e.low}
	case edgeVersion:
		out := make([]NodeId, len(e.versionEdges))
		for i, ve := range e.versionEdges {
			out[i] = ve.Child
		}
		return out
	case edgeString:
		out := make([]NodeId, len(e.stringEdges))
		for i, se := range e.stringEdges {
			out[i] = se.Child
		}
		return out
	default:
		return nil
	}
}

// mapChildren rebuilds edges of the same shape, replacing each child c
// (negated under parent first) with f(c).
func (e Edges) mapChildren(parent NodeId, f func(NodeId) NodeId) Edges {
	switch e.kind {
	case edgeBoolean:
		return booleanEdges(f(e.high.Negate(parent)), f(e.low.Negate(parent)))
	case edgeVersion:
		out := make([]versionEdge, len(e.versionEdges))
		for i, ve := range e.versionEdges {
			out[i] = versionEdge{Range: ve.Range, Child: f(ve.Child.Negate(parent))}
		}
		return Edges{kind: edgeVersion, versionEdges: out}
	case edgeString:
		out := make([]stringEdge, len(e.stringEdges))
		for i, se := range e.stringEdges {
			out[i] = stringEdge{Range: se.Range, Child: f(se.Child.Negate(parent))}
		}
		return Edges{kind: edgeString, stringEdges: out}
	default:
		panic("marker: edges have no shape")
	}
}

// versionEdgesFromRange builds a two-or-more-entry Version edge set: the
// range is true-mapped to trueChild and its complement to falseChild,
// ordered by lower bound so the result satisfies I5 (coverage) by
// construction.
func versionEdgesFromRange(r rangeset.Ranges[pyversion.Version], trueChild, falseChild NodeId) []versionEdge {
	var out []versionEdge
	for _, seg := range r.Segments() {
		out = append(out, versionEdge{Range: rangeset.FromBounds(seg.Lower, seg.Upper), Child: trueChild})
	}
	for _, seg := range r.Complement().Segments() {
		out = append(out, versionEdge{Range: rangeset.FromBounds(seg.Lower, seg.Upper), Child: falseChild})
	}
	sortVersionEdges(out)
	return out
}

func sortVersionEdges(edges []versionEdge) {
	for i := 1; i < len(edges); i++ {
		for j := i; j > 0 && compareLowerVersion(edges[j].Range, edges[j-1].Range) < 0; j-- {
			edges[j], edges[j-1] = edges[j-1], edges[j]
		}
	}
}

func compareLowerVersion(a, b rangeset.Ranges[pyversion.Version]) int {
	aLo, _, _ := a.BoundingRange()
	bLo, _, _ := b.BoundingRange()
	av, aOK := aLo.Value()
	bv, bOK := bLo.Value()
	if !aOK && !bOK {
		return 0
	}
	if !aOK {
		return -1
	}
	if !bOK {
		return 1
	}
	if c := av.Compare(bv); c != 0 {
		return c
	}
	if aLo.Included() == bLo.Included() {
		return 0
	}
	if aLo.Included() {
		return -1
	}
	return 1
}

// stringEdgesFromRange is the Str analogue of versionEdgesFromRange.
func stringEdgesFromRange(r rangeset.Ranges[Str], trueChild, falseChild NodeId) []stringEdge {
	var out []stringEdge
	for _, seg := range r.Segments() {
		out = append(out, stringEdge{Range: rangeset.FromBounds(seg.Lower, seg.Upper), Child: trueChild})
	}
	for _, seg := range r.Complement().Segments() {
		out = append(out, stringEdge{Range: rangeset.FromBounds(seg.Lower, seg.Upper), Child: falseChild})
	}
	sortStringEdges(out)
	return out
}

func sortStringEdges(edges []stringEdge) {
	for i := 1; i < len(edges); i++ {
		for j := i; j > 0 && compareLowerString(edges[j].Range, edges[j-1].Range) < 0; j-- {
			edges[j], edges[j-1] = edges[j-1], edges[j]
		}
	}
}

// applyRanges implements spec.md §4.5's apply_ranges: for every pair of
// edges from x and y, intersect their ranges; if the intersection is
// non-empty, combine their children with f (negating each under its own
// parent first) and append the result, coalescing with the previous
// entry when it has the same child and the ranges can_conjoin (TODO
// carried from algebra.rs: take advantage of the sorted ranges to break
// the inner loop early instead of scanning every pair).
func applyRanges[T rangeset.Value[T]](xs []edgePair[T], px NodeId, ys []edgePair[T], py NodeId, f func(NodeId, NodeId) NodeId) []edgePair[T] {
	var out []edgePair[T]
	for _, x := range xs {
		for _, y := range ys {
			inter := x.Range.Intersection(y.Range)
			if inter.IsEmpty() {
				continue
			}
			child := f(x.Child.Negate(px), y.Child.Negate(py))
			interLower, interUpper, _ := inter.BoundingRange()
			if len(out) > 0 {
				last := &out[len(out)-1]
				lastLower, lastUpper, _ := last.Range.BoundingRange()
				if last.Child == child && rangeset.CanConjoin(lastUpper, interLower) {
					last.Range = rangeset.FromBounds(lastLower, interUpper)
					continue
				}
			}
			out = append(out, edgePair[T]{Range: inter, Child: child})
		}
	}
	return out
}

func rangeKeyVersion(r rangeset.Ranges[pyversion.Version]) string { return rangesKey(r) }

func rangeKeyString(r rangeset.Ranges[Str]) string { return rangesKey(r) }

func compareLowerString(a, b rangeset.Ranges[Str]) int {
	aLo, _, _ := a.BoundingRange()
	bLo, _, _ := b.BoundingRange()
	av, aOK := aLo.Value()
	bv, bOK := bLo.Value()
	if !aOK && !bOK {
		return 0
	}
	if !aOK {
		return -1
	}
	if !bOK {
		return 1
	}
	if c := av.Compare(bv); c != 0 {
		return c
	}
	if aLo.Included() == bLo.Included() {
		return 0
	}
	if aLo.Included() {
		return -1
	}
	return 1
}
