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
	"fmt"
	"strings"
	"sync"
)

// Interner is the process-wide hash-consing store for decision nodes. It
// memoizes and(x,y) and caches the lazily-built exclusions node.
//
// The node table is guarded by its own RWMutex so that holders of a
// stable NodeId can read concurrently without contending with the
// separate mutex that guards the unique map, the AND memo, and the
// exclusions cache — the same split spec.md §4.2 and §5 describe between
// a lock-free-read shared table and a mutex-guarded mutable state.
type Interner struct {
	nodesMu sync.RWMutex
	nodes   []Node

	mu         sync.Mutex
	unique     map[string][]uniqueEntry
	andMemo    map[andKey]NodeId
	exclusions *NodeId
}

type uniqueEntry struct {
	node Node
	id   NodeId
}

type andKey struct {
	x, y NodeId
}

// NewInterner returns an empty interner.
func NewInterner() *Interner {
	return &Interner{
		unique:  make(map[string][]uniqueEntry),
		andMemo: make(map[andKey]NodeId),
	}
}

func (in *Interner) nodeAt(id NodeId) Node {
	in.nodesMu.RLock()
	defer in.nodesMu.RUnlock()
	return in.nodes[id.index()]
}

func (in *Interner) appendNode(n Node) int {
	in.nodesMu.Lock()
	defer in.nodesMu.Unlock()
	in.nodes = append(in.nodes, n)
	return len(in.nodes) - 1
}

// node returns the Node a non-terminal id refers to. It panics if given a
// terminal, matching the algebra's invariant that terminals never carry
// edges to inspect.
func (in *Interner) node(id NodeId) Node {
	if id.isTerminal() {
		panic("marker: terminal ids have no node")
	}
	return in.nodeAt(id)
}

// variableOf returns the variable of id, or ok=false for a terminal.
func (in *Interner) variableOf(id NodeId) (Variable, bool) {
	if id.isTerminal() {
		return Variable{}, false
	}
	return in.node(id).Var, true
}

// createNode is the only path that installs a node, enforcing I2
// (reduced) and I3 (canonical complement bit) per spec.md §4.2.
func (in *Interner) createNode(v Variable, e Edges) NodeId {
	first := e.firstChild()
	flipped := false
	if first.IsComplement() {
		e = e.not()
		first = first.Not()
		flipped = true
	}
	if e.allChildrenEqual(first) {
		if flipped {
			return first.Not()
		}
		return first
	}

	key := nodeKey(v, e)
	in.mu.Lock()
	for _, cand := range in.unique[key] {
		if cand.node.Var.Equal(v) && edgesEqual(cand.node.Edges, e) {
			in.mu.Unlock()
			if flipped {
				return cand.id.Not()
			}
			return cand.id
		}
	}
	idx := in.appendNode(Node{Var: v, Edges: e})
	id := newNodeId(idx, false)
	in.unique[key] = append(in.unique[key], uniqueEntry{node: Node{Var: v, Edges: e}, id: id})
	in.mu.Unlock()

	if flipped {
		return id.Not()
	}
	return id
}

func (in *Interner) memoGet(x, y NodeId) (NodeId, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	id, ok := in.andMemo[andKey{x, y}]
	return id, ok
}

func (in *Interner) memoSet(x, y, result NodeId) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.andMemo[andKey{x, y}] = result
}

func (in *Interner) cachedExclusions() (NodeId, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.exclusions == nil {
		return 0, false
	}
	return *in.exclusions, true
}

func (in *Interner) setCachedExclusions(id NodeId) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.exclusions == nil {
		in.exclusions = &id
	}
}

// nodeKey builds a string hash key for the unique map. It only needs to
// group candidates for the precise edgesEqual/Var.Equal check that
// follows; collisions across distinct nodes only cost a linear scan of a
// short bucket, never correctness.
func nodeKey(v Variable, e Edges) string {
	var b strings.Builder
	b.WriteString(v.String())
	b.WriteByte('|')
	switch e.kind {
	case edgeBoolean:
		fmt.Fprintf(&b, "B:%d,%d", e.high, e.low)
	case edgeVersion:
		b.WriteString("V:")
		for _, ve := range e.versionEdges {
			fmt.Fprintf(&b, "%s=>%d;", rangeKeyVersion(ve.Range), ve.Child)
		}
	case edgeString:
		b.WriteString("S:")
		for _, se := range e.stringEdges {
			fmt.Fprintf(&b, "%s=>%d;", rangeKeyString(se.Range), se.Child)
		}
	}
	return b.String()
}
