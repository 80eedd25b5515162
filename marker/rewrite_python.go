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
	"pep508.dev/marker/internal/pyversion"
	"pep508.dev/marker/internal/rangeset"
)

// versionSpecifierNode builds the Version-edge node for "key <op> v" from
// the range of the specifier's release.
func (in *Interner) versionSpecifierNode(key VersionKeyName, spec pyversion.Specifier) NodeId {
	r := pyversion.ReleaseToRange(spec)
	edges := versionEdgesFromRange(r, TRUE, FALSE)
	return in.createNode(VersionVar(key), Edges{kind: edgeVersion, versionEdges: edges})
}

// pythonVersionNode implements spec.md §4.7: python_version is always
// rewritten to python_full_version before a node is built, or collapsed
// to a constant when no python_full_version range can express the
// original comparison.
func (in *Interner) pythonVersionNode(spec pyversion.Specifier) NodeId {
	result := pyversion.RewriteToFullVersion(spec)
	if result.Constant != nil {
		if *result.Constant {
			return TRUE
		}
		return FALSE
	}
	return in.versionSpecifierNode(PythonFullVersion, result.Specifier)
}

// pythonVersionInNode implements the list variant of §4.7: apply the
// rewrite per value and union the resulting ranges, complementing for
// "not in".
func (in *Interner) pythonVersionInNode(values []pyversion.Specifier, negate bool) NodeId {
	union := rangeset.Empty[pyversion.Version]()
	for _, spec := range values {
		result := pyversion.RewriteToFullVersion(spec)
		if result.Constant != nil {
			if *result.Constant {
				union = rangeset.Full[pyversion.Version]()
			}
			continue
		}
		union = union.Union(pyversion.ReleaseToRange(result.Specifier))
	}
	if negate {
		union = union.Complement()
	}
	edges := versionEdgesFromRange(union, TRUE, FALSE)
	return in.createNode(VersionVar(PythonFullVersion), Edges{kind: edgeVersion, versionEdges: edges})
}

// SimplifyPythonVersions implements spec.md §4.9: assuming the resolver
// guarantees lower <= python_full_version <= upper, drop range
// constraints made redundant by that assumption, asserting it into the
// representation by clipping the outermost surviving edges to the
// universe.
func (in *Interner) SimplifyPythonVersions(id NodeId, lower, upper rangeset.Bound[pyversion.Version]) NodeId {
	if id.isTerminal() || (lower.IsUnbounded() && upper.IsUnbounded()) {
		return id
	}
	node := in.node(id)
	if key, ok := node.Var.IsVersion(); ok && key == PythonFullVersion {
		bounds := rangeset.FromBounds(lower, upper)
		var kept []versionEdge
		for _, ve := range node.Edges.versionEdges {
			inter := ve.Range.Intersection(bounds)
			if inter.IsEmpty() {
				continue
			}
			kept = append(kept, versionEdge{
				Range: inter,
				Child: in.SimplifyPythonVersions(ve.Child.Negate(id), lower, upper),
			})
		}
		if len(kept) == 0 {
			return id
		}
		_, firstUpper, _ := kept[0].Range.BoundingRange()
		kept[0].Range = rangeset.FromBounds(rangeset.Unbounded[pyversion.Version](), firstUpper)

		last := len(kept) - 1
		lastLower, _, _ := kept[last].Range.BoundingRange()
		kept[last].Range = rangeset.FromBounds(lastLower, rangeset.Unbounded[pyversion.Version]())

		return in.createNode(node.Var, Edges{kind: edgeVersion, versionEdges: kept})
	}
	edges := node.Edges.mapChildren(id, func(child NodeId) NodeId {
		return in.SimplifyPythonVersions(child, lower, upper)
	})
	return in.createNode(node.Var, edges)
}

// ComplexifyPythonVersions implements spec.md §4.9: the inverse of
// SimplifyPythonVersions. Starting from a tree valid only within
// [lower, upper], it rewrites the tree so it evaluates to FALSE outside
// that interval.
func (in *Interner) ComplexifyPythonVersions(id NodeId, lower, upper rangeset.Bound[pyversion.Version]) NodeId {
	if id == FALSE || (lower.IsUnbounded() && upper.IsUnbounded()) {
		return id
	}
	bounds := rangeset.FromBounds(lower, upper)
	if id == TRUE {
		edges := versionEdgesFromRange(bounds, TRUE, FALSE)
		return in.createNode(VersionVar(PythonFullVersion), Edges{kind: edgeVersion, versionEdges: edges})
	}

	node := in.node(id)
	key, ok := node.Var.IsVersion()
	if !ok || key != PythonFullVersion {
		edges := node.Edges.mapChildren(id, func(child NodeId) NodeId {
			return in.ComplexifyPythonVersions(child, lower, upper)
		})
		return in.createNode(node.Var, edges)
	}

	var kept []versionEdge
	for _, ve := range node.Edges.versionEdges {
		if ve.Range.IsDisjoint(bounds) {
			continue
		}
		kept = append(kept, versionEdge{
			Range: ve.Range.Intersection(bounds),
			Child: in.ComplexifyPythonVersions(ve.Child.Negate(id), lower, upper),
		})
	}
	if len(kept) == 0 {
		return FALSE
	}

	if !lower.IsUnbounded() {
		if kept[0].Child == FALSE {
			_, firstUpper, _ := kept[0].Range.BoundingRange()
			kept[0].Range = rangeset.FromBounds(rangeset.Unbounded[pyversion.Version](), firstUpper)
		} else {
			outside := rangeset.FromBounds(rangeset.Unbounded[pyversion.Version](), rangeset.Flip(lower))
			kept = append([]versionEdge{{Range: outside, Child: FALSE}}, kept...)
		}
	}

	if !upper.IsUnbounded() {
		last := len(kept) - 1
		if kept[last].Child == FALSE {
			lastLower, _, _ := kept[last].Range.BoundingRange()
			kept[last].Range = rangeset.FromBounds(lastLower, rangeset.Unbounded[pyversion.Version]())
		} else {
			outside := rangeset.FromBounds(rangeset.Flip(upper), rangeset.Unbounded[pyversion.Version]())
			kept = append(kept, versionEdge{Range: outside, Child: FALSE})
		}
	}

	return in.createNode(node.Var, Edges{kind: edgeVersion, versionEdges: kept})
}
