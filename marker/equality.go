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

	"pep508.dev/marker/internal/rangeset"
)

// boundKey renders a Bound deterministically for hashing and equality
// comparisons, independent of the underlying value's own String method
// quirks.
func boundKey[T rangeset.Value[T]](b rangeset.Bound[T]) string {
	v, ok := b.Value()
	if !ok {
		return "u"
	}
	if b.Included() {
		return fmt.Sprintf("i%v", v)
	}
	return fmt.Sprintf("e%v", v)
}

func rangesKey[T rangeset.Value[T]](r rangeset.Ranges[T]) string {
	var b strings.Builder
	for _, seg := range r.Segments() {
		b.WriteString(boundKey(seg.Lower))
		b.WriteByte(',')
		b.WriteString(boundKey(seg.Upper))
		b.WriteByte(';')
	}
	return b.String()
}

func rangesEqual[T rangeset.Value[T]](a, b rangeset.Ranges[T]) bool {
	as, bs := a.Segments(), b.Segments()
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if boundKey(as[i].Lower) != boundKey(bs[i].Lower) {
			return false
		}
		if boundKey(as[i].Upper) != boundKey(bs[i].Upper) {
			return false
		}
	}
	return true
}

func edgesEqual(a, b Edges) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case edgeBoolean:
		return a.high == b.high && a.low == b.low
	case edgeVersion:
		if len(a.versionEdges) != len(b.versionEdges) {
			return false
		}
		for i := range a.versionEdges {
			if a.versionEdges[i].Child != b.versionEdges[i].Child {
				return false
			}
			if !rangesEqual(a.versionEdges[i].Range, b.versionEdges[i].Range) {
				return false
			}
		}
		return true
	case edgeString:
		if len(a.stringEdges) != len(b.stringEdges) {
			return false
		}
		for i := range a.stringEdges {
			if a.stringEdges[i].Child != b.stringEdges[i].Child {
				return false
			}
			if !rangesEqual(a.stringEdges[i].Range, b.stringEdges[i].Range) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
