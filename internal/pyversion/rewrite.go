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

// RewriteResult is the outcome of rewriting a python_version specifier
// into a python_full_version one: either a rewritten Specifier, or a
// collapse to a constant TRUE/FALSE when no python_full_version range
// can express the original comparison.
type RewriteResult struct {
	Specifier Specifier
	Constant  *bool
}

func asSpecifier(s Specifier) RewriteResult { return RewriteResult{Specifier: s} }

func asConstant(b bool) RewriteResult { return RewriteResult{Constant: &b} }

// RewriteToFullVersion implements the python_version -> python_full_version
// normalization: python_version is a two-segment truncation of
// sys.version_info, so a comparison against it must be re-expressed as a
// range over the untruncated python_full_version, or collapsed to a
// constant when no such range exists.
//
// The star/tilde branches test the length of the specifier's untrimmed
// release first, so that "~= 3.0" (kept as is) is told apart from
// "~= 3.0.0" (rewritten to "== 3.0.*"). The trimmed release is computed
// up front but only consulted after that test, to detect a non-zero tail
// past the second segment, as in "== 3.9.1.*", which collapses to FALSE.
func RewriteToFullVersion(spec Specifier) RewriteResult {
	release := spec.Release
	trimmed := Version{release: release}.TrimTrailingZeros()

	switch spec.Op {
	case EqualStar, NotEqualStar:
		if len(release) == 1 {
			return asSpecifier(spec)
		}
		if len(trimmed) <= 2 {
			return asSpecifier(Specifier{Op: spec.Op, Release: truncate(release, 2)})
		}
		return asConstant(false)

	case TildeEqual:
		if len(release) == 2 {
			return asSpecifier(spec)
		}
		if len(trimmed) <= 2 {
			return asSpecifier(Specifier{Op: EqualStar, Release: truncate(release, 2)})
		}
		return asConstant(false)

	default:
		m, n := segmentAt(release, 0), segmentAt(release, 1)
		majorMinor := []int{m, n}
		if len(trimmed) <= 2 {
			switch spec.Op {
			case Equal, ExactEqual:
				return asSpecifier(Specifier{Op: EqualStar, Release: majorMinor})
			case NotEqual:
				return asSpecifier(Specifier{Op: NotEqualStar, Release: majorMinor})
			case LessThan:
				return asSpecifier(Specifier{Op: LessThan, Release: majorMinor})
			case LessThanEqual:
				return asSpecifier(Specifier{Op: LessThan, Release: incrementLast(majorMinor)})
			case GreaterThan:
				return asSpecifier(Specifier{Op: GreaterThanEqual, Release: incrementLast(majorMinor)})
			case GreaterThanEqual:
				return asSpecifier(Specifier{Op: GreaterThanEqual, Release: majorMinor})
			}
		}
		// 3+ segments with a non-zero tail: python_version truncates to
		// [m, n] and can never equal the longer release.
		switch spec.Op {
		case Equal, ExactEqual:
			return asConstant(false)
		case NotEqual:
			return asConstant(true)
		case LessThan, LessThanEqual:
			return asSpecifier(Specifier{Op: LessThan, Release: incrementLast(majorMinor)})
		case GreaterThan, GreaterThanEqual:
			return asSpecifier(Specifier{Op: GreaterThanEqual, Release: incrementLast(majorMinor)})
		}
	}
	return asConstant(false)
}
