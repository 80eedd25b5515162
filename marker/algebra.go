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

import "pep508.dev/marker/internal/rangeset"

// Not returns the logical negation of x. O(1): it only flips the
// complement bit.
func Not(x NodeId) NodeId { return x.Not() }

// And returns the conjunction of x and y.
func (in *Interner) And(x, y NodeId) NodeId {
	switch {
	case x == TRUE:
		return y
	case y == TRUE:
		return x
	case x == FALSE || y == FALSE:
		return FALSE
	case x == y:
		return x
	case x == y.Not():
		return FALSE
	}

	if result, ok := in.memoGet(x, y); ok {
		return result
	}

	result := in.andUncached(x, y)
	in.memoSet(x, y, result)
	return result
}

func (in *Interner) andUncached(x, y NodeId) NodeId {
	xVar, _ := in.variableOf(x)
	yVar, _ := in.variableOf(y)

	var result NodeId
	switch c := xVar.Compare(yVar); {
	case c < 0:
		nx := in.node(x)
		edges := nx.Edges.mapChildren(x, func(child NodeId) NodeId { return in.And(child, y) })
		result = in.createNode(xVar, edges)
	case c > 0:
		ny := in.node(y)
		edges := ny.Edges.mapChildren(y, func(child NodeId) NodeId { return in.And(x, child) })
		result = in.createNode(yVar, edges)
	default:
		nx, ny := in.node(x), in.node(y)
		edges := in.applyEdges(nx.Edges, x, ny.Edges, y, in.And)
		result = in.createNode(xVar, edges)
	}

	if result != FALSE && xVar.isConflicting() && yVar.isConflicting() {
		excl := in.exclusionsNode()
		if in.disjointness(result, excl.Not()) {
			result = FALSE
		}
	}
	return result
}

// Or returns the disjunction of x and y, via De Morgan: the algebra never
// implements or() directly.
func (in *Interner) Or(x, y NodeId) NodeId {
	return in.And(x.Not(), y.Not()).Not()
}

// applyEdges dispatches apply (spec.md §4.5) on the shape shared by ex
// and ey, which must agree: mixing shapes is a programmer error (spec §7).
func (in *Interner) applyEdges(ex Edges, px NodeId, ey Edges, py NodeId, f func(NodeId, NodeId) NodeId) Edges {
	if ex.kind != ey.kind {
		panic("marker: apply called on edges of different shapes")
	}
	switch ex.kind {
	case edgeBoolean:
		h := f(ex.high.Negate(px), ey.high.Negate(py))
		l := f(ex.low.Negate(px), ey.low.Negate(py))
		return booleanEdges(h, l)
	case edgeVersion:
		edges := applyRanges(ex.versionEdges, px, ey.versionEdges, py, f)
		return Edges{kind: edgeVersion, versionEdges: edges}
	case edgeString:
		edges := applyRanges(ex.stringEdges, px, ey.stringEdges, py, f)
		return Edges{kind: edgeString, stringEdges: edges}
	default:
		panic("marker: edges have no shape")
	}
}

// IsDisjoint reports whether x and y share no satisfying assignment. The
// public form re-enters And so that conflicting string variables benefit
// from the exclusions disjunction; disjointness below is the inner form
// used while building or consulting exclusions itself, which must not
// re-enter And.
func (in *Interner) IsDisjoint(x, y NodeId) bool {
	return in.And(x, y) == FALSE
}

// disjointness is the exclusions-free disjointness probe spec.md §4.8
// requires: it must not call And (which would recurse back into
// exclusions), so it re-implements the Shannon expansion directly.
func (in *Interner) disjointness(x, y NodeId) bool {
	switch {
	case x == TRUE:
		return y == FALSE
	case y == TRUE:
		return x == FALSE
	case x == FALSE || y == FALSE:
		return true
	case x == y:
		return x == FALSE
	case x == y.Not():
		return true
	}

	xVar, _ := in.variableOf(x)
	yVar, _ := in.variableOf(y)

	switch c := xVar.Compare(yVar); {
	case c < 0:
		nx := in.node(x)
		for _, child := range nx.Edges.children() {
			if !in.disjointness(child.Negate(x), y) {
				return false
			}
		}
		return true
	case c > 0:
		ny := in.node(y)
		for _, child := range ny.Edges.children() {
			if !in.disjointness(x, child.Negate(y)) {
				return false
			}
		}
		return true
	default:
		nx, ny := in.node(x), in.node(y)
		return in.edgesDisjoint(nx.Edges, x, ny.Edges, y)
	}
}

// edgesDisjoint is the Edges-level disjointness check of spec.md §4.5:
// for Boolean edges, both high/low pairs must be pairwise disjoint; for
// range edges, only overlapping ranges need their children checked.
func (in *Interner) edgesDisjoint(ex Edges, px NodeId, ey Edges, py NodeId) bool {
	if ex.kind != ey.kind {
		panic("marker: is_disjoint called on edges of different shapes")
	}
	switch ex.kind {
	case edgeBoolean:
		return in.disjointness(ex.high.Negate(px), ey.high.Negate(py)) &&
			in.disjointness(ex.low.Negate(px), ey.low.Negate(py))
	case edgeVersion:
		return rangeEdgesDisjoint(in, ex.versionEdges, px, ey.versionEdges, py)
	case edgeString:
		return rangeEdgesDisjoint(in, ex.stringEdges, px, ey.stringEdges, py)
	default:
		panic("marker: edges have no shape")
	}
}

func rangeEdgesDisjoint[T rangeset.Value[T]](in *Interner, xs []edgePair[T], px NodeId, ys []edgePair[T], py NodeId) bool {
	for _, x := range xs {
		for _, y := range ys {
			if x.Range.IsDisjoint(y.Range) {
				continue
			}
			if !in.disjointness(x.Child.Negate(px), y.Child.Negate(py)) {
				return false
			}
		}
	}
	return true
}
