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

// Restrict implements spec.md §4.6: f maps a boolean variable to a known
// truth value, or nil to leave it alone. Where the current node's edges
// are Boolean-shaped and f names a value for its variable, the node is
// replaced by the matching child; otherwise every child is visited in
// place. Range variables (Version/String edges) are never matched by f,
// since f only speaks about boolean variables.
func (in *Interner) Restrict(id NodeId, f func(Variable) *bool) NodeId {
	if id.isTerminal() {
		return id
	}
	node := in.node(id)
	if node.Edges.kind == edgeBoolean {
		if v := f(node.Var); v != nil {
			var child NodeId
			if *v {
				child = node.Edges.high
			} else {
				child = node.Edges.low
			}
			return in.Restrict(child.Negate(id), f)
		}
	}
	edges := node.Edges.mapChildren(id, func(child NodeId) NodeId { return in.Restrict(child, f) })
	return in.createNode(node.Var, edges)
}

// WithoutExtras implements spec.md §4.6: Extra decision nodes are
// existentially eliminated, replaced by the disjunction of their
// children. Because extras sort last in the variable order, this is
// effectively a bottom-up pass over the leaves.
func (in *Interner) WithoutExtras(id NodeId) NodeId {
	if id.isTerminal() {
		return id
	}
	node := in.node(id)
	if node.Var.IsExtra() {
		result := FALSE
		for _, child := range node.Edges.children() {
			result = in.Or(result, child.Negate(id))
			if result == TRUE {
				return TRUE
			}
		}
		return in.WithoutExtras(result)
	}
	edges := node.Edges.mapChildren(id, func(child NodeId) NodeId { return in.WithoutExtras(child) })
	return in.createNode(node.Var, edges)
}

// OnlyExtras implements spec.md §4.6: every non-Extra variable is
// existentially eliminated, keeping only the Extra decisions.
func (in *Interner) OnlyExtras(id NodeId) NodeId {
	if id.isTerminal() {
		return id
	}
	node := in.node(id)
	if !node.Var.IsExtra() {
		result := FALSE
		for _, child := range node.Edges.children() {
			result = in.Or(result, child.Negate(id))
			if result == TRUE {
				return TRUE
			}
		}
		return in.OnlyExtras(result)
	}
	edges := node.Edges.mapChildren(id, func(child NodeId) NodeId { return in.OnlyExtras(child) })
	return in.createNode(node.Var, edges)
}
