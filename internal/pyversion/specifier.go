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

package pyversion

import (
	"fmt"

	"pep508.dev/marker/internal/rangeset"
)

// Operator is a PEP 440 version comparison operator.
type Operator int8

const (
	Equal Operator = iota
	ExactEqual
	NotEqual
	LessThan
	LessThanEqual
	GreaterThan
	GreaterThanEqual
	TildeEqual
	EqualStar
	NotEqualStar
)

func (op Operator) String() string {
	switch op {
	case Equal:
		return "=="
	case ExactEqual:
		return "==="
	case NotEqual:
		return "!="
	case LessThan:
		return "<"
	case LessThanEqual:
		return "<="
	case GreaterThan:
		return ">"
	case GreaterThanEqual:
		return ">="
	case TildeEqual:
		return "~="
	case EqualStar:
		return "==.*"
	case NotEqualStar:
		return "!=.*"
	default:
		return "?"
	}
}

// Specifier is an operator paired with the release segment of a version,
// e.g. ">= 3.8" or "== 3.9.*".
type Specifier struct {
	Op      Operator
	Release []int
}

// NewSpecifier builds a Specifier from an operator and release segments.
func NewSpecifier(op Operator, segments ...int) Specifier {
	return Specifier{Op: op, Release: append([]int(nil), segments...)}
}

// ReleaseToRange builds the Ranges[Version] a release-only version
// specifier denotes. It is the Go counterpart of uv_pep440's
// release_specifier_to_range, restricted (as the marker algebra always is)
// to a specifier whose version has already been reduced to its release
// segments.
func ReleaseToRange(spec Specifier) rangeset.Ranges[Version] {
	v := Version{release: spec.Release}
	switch spec.Op {
	case Equal, ExactEqual:
		return rangeset.Singleton(v)
	case NotEqual:
		return rangeset.Singleton(v).Complement()
	case LessThan:
		return rangeset.StrictlyLowerThan(v)
	case LessThanEqual:
		return rangeset.LowerThan(v)
	case GreaterThan:
		return rangeset.StrictlyHigherThan(v)
	case GreaterThanEqual:
		return rangeset.HigherThan(v)
	case TildeEqual:
		return compatibleRange(v)
	case EqualStar:
		return starRange(v)
	case NotEqualStar:
		return starRange(v).Complement()
	default:
		panic(fmt.Sprintf("pyversion: unhandled operator %v", spec.Op))
	}
}

// starRange returns the set of versions whose release starts with the
// prefix v.release, e.g. "3.9" -> [3.9, 3.10).
func starRange(v Version) rangeset.Ranges[Version] {
	lower := Version{release: v.release}
	upper := Version{release: incrementLast(v.release)}
	return rangeset.FromBounds(rangeset.Included(lower), rangeset.Excluded(upper))
}

// compatibleRange returns the PEP 440 "~=" range: at least v, and less
// than the release with its next-to-last segment bumped and the last
// segment dropped. "~= 2.2" means >= 2.2, < 3.0; "~= 2.2.3" means
// >= 2.2.3, < 2.3.0.
func compatibleRange(v Version) rangeset.Ranges[Version] {
	release := v.release
	var upperPrefix []int
	if len(release) <= 1 {
		upperPrefix = release
	} else {
		upperPrefix = release[:len(release)-1]
	}
	upper := Version{release: incrementLast(upperPrefix)}
	return rangeset.FromBounds(rangeset.Included(v), rangeset.Excluded(upper))
}
