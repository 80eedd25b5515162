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
	"testing"

	"pep508.dev/marker/internal/pyversion"
)

func boolVar(in *Interner, key StringKeyName, value string) NodeId {
	return in.StringIn(key, value, false)
}

func TestAndIdentityAndAbsorption(t *testing.T) {
	in := NewInterner()
	x := boolVar(in, SysPlatform, "linux")

	if got := in.And(TRUE, x); got != x {
		t.Errorf("And(TRUE, x) = %v, want x = %v", got, x)
	}
	if got := in.And(x, TRUE); got != x {
		t.Errorf("And(x, TRUE) = %v, want x = %v", got, x)
	}
	if got := in.And(FALSE, x); got != FALSE {
		t.Errorf("And(FALSE, x) = %v, want FALSE", got)
	}
	if got := in.And(x, FALSE); got != FALSE {
		t.Errorf("And(x, FALSE) = %v, want FALSE", got)
	}
}

func TestOrIdentityAndAbsorption(t *testing.T) {
	in := NewInterner()
	x := boolVar(in, SysPlatform, "linux")

	if got := in.Or(FALSE, x); got != x {
		t.Errorf("Or(FALSE, x) = %v, want x = %v", got, x)
	}
	if got := in.Or(TRUE, x); got != TRUE {
		t.Errorf("Or(TRUE, x) = %v, want TRUE", got)
	}
}

func TestAndSelfAndComplement(t *testing.T) {
	in := NewInterner()
	x := boolVar(in, SysPlatform, "linux")

	if got := in.And(x, x); got != x {
		t.Errorf("And(x, x) = %v, want x", got)
	}
	if got := in.And(x, x.Not()); got != FALSE {
		t.Errorf("And(x, Not(x)) = %v, want FALSE", got)
	}
	if got := in.Or(x, x.Not()); got != TRUE {
		t.Errorf("Or(x, Not(x)) = %v, want TRUE", got)
	}
}

func TestAndCommutative(t *testing.T) {
	in := NewInterner()
	x := boolVar(in, SysPlatform, "linux")
	y := boolVar(in, OSName, "posix")

	if got, want := in.And(x, y), in.And(y, x); got != want {
		t.Errorf("And(x,y) = %v, And(y,x) = %v, want equal", got, want)
	}
}

func TestDeMorgan(t *testing.T) {
	in := NewInterner()
	x := boolVar(in, SysPlatform, "linux")
	y := boolVar(in, OSName, "posix")

	notAnd := in.And(x, y).Not()
	orOfNots := in.Or(x.Not(), y.Not())
	if notAnd != orOfNots {
		t.Errorf("Not(And(x,y)) = %v, Or(Not(x),Not(y)) = %v, want equal", notAnd, orOfNots)
	}
}

func TestIsDisjoint(t *testing.T) {
	in := NewInterner()
	x := boolVar(in, SysPlatform, "linux")

	if !in.IsDisjoint(x, x.Not()) {
		t.Error("x and Not(x) must be disjoint")
	}
	if in.IsDisjoint(x, x) {
		t.Error("x and x must not be disjoint (unless x is FALSE)")
	}
	if !in.IsDisjoint(FALSE, x) {
		t.Error("FALSE is disjoint from everything")
	}
}

func TestExclusionsMakeConflictingStringsDisjoint(t *testing.T) {
	in := NewInterner()
	nt := in.StringCompare(OSName, StrEqual, "nt")
	linux := in.StringCompare(SysPlatform, StrEqual, "linux")

	if got := in.And(nt, linux); got != FALSE {
		t.Errorf("os_name == 'nt' and sys_platform == 'linux' should be FALSE via exclusions, got %v", got)
	}
}

func TestExclusionsDoNotAffectCompatiblePairs(t *testing.T) {
	in := NewInterner()
	posix := in.StringCompare(OSName, StrEqual, "posix")
	linux := in.StringCompare(SysPlatform, StrEqual, "linux")

	if got := in.And(posix, linux); got == FALSE {
		t.Error("os_name == 'posix' and sys_platform == 'linux' are compatible and must not collapse to FALSE")
	}
}

// TestAndOverlappingVersionRangesCoalesces exercises applyRanges'
// intersect-and-coalesce merge directly: two overlapping
// python_full_version bounds combined through And must narrow to their
// intersection, and the resulting edge set must still be satisfiable
// inside that intersection and unsatisfiable outside it.
func TestAndOverlappingVersionRangesCoalesces(t *testing.T) {
	in := NewInterner()
	gt30 := in.VersionCompare(PythonFullVersionRaw, pyversion.NewSpecifier(pyversion.GreaterThan, 3, 0))
	lt310 := in.VersionCompare(PythonFullVersionRaw, pyversion.NewSpecifier(pyversion.LessThan, 3, 10))

	combined := in.And(gt30, lt310)
	if combined == FALSE {
		t.Fatal("python_full_version > '3.0' and < '3.10' must be satisfiable")
	}

	above := in.VersionCompare(PythonFullVersionRaw, pyversion.NewSpecifier(pyversion.GreaterThanEqual, 3, 10))
	if got := in.And(combined, above); got != FALSE {
		t.Errorf("combined range must be disjoint from python_full_version >= '3.10', got %v", got)
	}

	below := in.VersionCompare(PythonFullVersionRaw, pyversion.NewSpecifier(pyversion.LessThanEqual, 3, 0))
	if got := in.And(combined, below); got != FALSE {
		t.Errorf("combined range must be disjoint from python_full_version <= '3.0', got %v", got)
	}
}

// TestOrOverlappingStringRangesCoalesces is the String-edge analogue:
// os_name < 'n' and os_name > 'a' together cover every string, so their
// Or coalesces all the way to TRUE, which any os_name value satisfies.
func TestOrOverlappingStringRangesCoalesces(t *testing.T) {
	in := NewInterner()
	ltN := in.StringCompare(OSName, StrLessThan, "n")
	gtA := in.StringCompare(OSName, StrGreaterThan, "a")

	combined := in.Or(ltN, gtA)
	if combined == FALSE {
		t.Fatal("os_name < 'n' or os_name > 'a' must be satisfiable")
	}

	posix := in.StringCompare(OSName, StrEqual, "posix")
	if got := in.And(combined, posix); got == FALSE {
		t.Errorf("os_name == 'posix' satisfies os_name < 'n' or os_name > 'a', got FALSE")
	}
}

func TestIOSCompatibilityCarveOut(t *testing.T) {
	in := NewInterner()
	iOS := in.StringCompare(PlatformSystem, StrEqual, "iOS")
	ios := in.StringCompare(SysPlatform, StrEqual, "ios")

	if got := in.And(iOS, ios); got == FALSE {
		t.Error("platform_system == 'iOS' and sys_platform == 'ios' are compatible and must not collapse to FALSE")
	}
}
