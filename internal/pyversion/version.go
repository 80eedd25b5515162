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
Package pyversion is the external collaborator spec.md §6 describes as
"version and version-specifier parsing, consumed as opaque totally-ordered
values with range operations". It models only the release segment of a
PEP 440 version — the marker algebra never sees epoch, pre-release, post-
release, dev-release or local-version qualifiers, because every version
specifier reaching the algebra has already gone through only_release()
(spec.md §4.7, §4.3): the range-construction rules in algebra.rs operate
exclusively on the release tuple.

This is a deliberate reduction of util/semver/pep440.go's full comparison
semantics, grounded in that narrowing: modifiers such as "a1", "post1" or
"+local" never reach a marker's decision tree, so a full PEP 440 ordering
is scope this collaborator doesn't need to carry.
*/
package pyversion

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a release segment tuple, e.g. "3.9.1" -> [3, 9, 1]. It
// satisfies rangeset.Value[Version].
type Version struct {
	release []int
}

// New returns a Version with the given release segments.
func New(segments ...int) Version {
	return Version{release: append([]int(nil), segments...)}
}

// Parse parses a dotted numeric release, e.g. "3.10.2". Non-numeric
// segments (as in a local version or pre-release tag) are rejected: the
// algebra only ever parses a specifier's release, which PEP 440 defines
// as numeric dot-separated segments.
func Parse(s string) (Version, error) {
	if s == "" {
		return Version{}, fmt.Errorf("pyversion: empty version")
	}
	parts := strings.Split(s, ".")
	release := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("pyversion: invalid release segment %q in %q", p, s)
		}
		release[i] = n
	}
	return Version{release: release}, nil
}

// Release returns the release segments, e.g. [3, 9, 1].
func (v Version) Release() []int {
	return append([]int(nil), v.release...)
}

// TrimTrailingZeros returns the release with any trailing zero segments
// removed, e.g. [3, 9, 0, 0] -> [3, 9]. An all-zero release trims to [0].
func (v Version) TrimTrailingZeros() []int {
	r := v.release
	end := len(r)
	for end > 1 && r[end-1] == 0 {
		end--
	}
	return append([]int(nil), r[:end]...)
}

// segmentAt returns the release segment at i, treating missing trailing
// segments as implied zero.
func segmentAt(release []int, i int) int {
	if i < len(release) {
		return release[i]
	}
	return 0
}

// Compare implements rangeset.Value[Version]: releases compare
// segment-by-segment with missing trailing segments treated as zero, so
// [3, 9] == [3, 9, 0].
func (v Version) Compare(other Version) int {
	n := len(v.release)
	if len(other.release) > n {
		n = len(other.release)
	}
	for i := 0; i < n; i++ {
		a, b := segmentAt(v.release, i), segmentAt(other.release, i)
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (v Version) String() string {
	parts := make([]string, len(v.release))
	for i, s := range v.release {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ".")
}

// incrementLast returns release with its last segment incremented by one,
// e.g. [3, 9] -> [3, 10]. Used to build the exclusive upper bound of a
// star or tilde-equal range from a release prefix.
func incrementLast(release []int) []int {
	out := append([]int(nil), release...)
	if len(out) == 0 {
		return []int{1}
	}
	out[len(out)-1]++
	return out
}

// truncate returns the first n segments of release, zero-padding if it is
// shorter than n.
func truncate(release []int, n int) []int {
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = segmentAt(release, i)
	}
	return out
}
