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
	"pep508.dev/marker/internal/rangeset"
)

func TestPythonVersionEqualsPythonFullVersionStar(t *testing.T) {
	in := NewInterner()
	// python_version == '3' should be equivalent to python_full_version == '3.0.*'.
	a := in.VersionCompare(PythonVersionRaw, pyversion.NewSpecifier(pyversion.Equal, 3))
	b := in.VersionCompare(PythonFullVersionRaw, pyversion.NewSpecifier(pyversion.EqualStar, 3, 0))
	if a != b {
		t.Errorf("python_version == '3' (%v) should equal python_full_version == '3.0.*' (%v)", a, b)
	}
}

func TestPythonVersionTildeEqualThreeSegmentCollapses(t *testing.T) {
	in := NewInterner()
	// python_version ~= '3.9.1' has no python_full_version equivalent and
	// collapses to FALSE per spec.md §4.7.
	got := in.VersionCompare(PythonVersionRaw, pyversion.NewSpecifier(pyversion.TildeEqual, 3, 9, 1))
	if got != FALSE {
		t.Errorf("python_version ~= '3.9.1' should collapse to FALSE, got %v", got)
	}
}

func TestPythonVersionTildeEqualFourSegmentEqualsStar(t *testing.T) {
	in := NewInterner()
	a := in.VersionCompare(PythonVersionRaw, pyversion.NewSpecifier(pyversion.TildeEqual, 3, 9, 0, 0))
	b := in.VersionCompare(PythonFullVersionRaw, pyversion.NewSpecifier(pyversion.EqualStar, 3, 9))
	if a != b {
		t.Errorf("python_version ~= '3.9.0.0' (%v) should equal python_full_version == '3.9.*' (%v)", a, b)
	}
}

func TestSimplifyPythonVersionsDropsRedundantBound(t *testing.T) {
	in := NewInterner()
	lessEqual310 := in.VersionCompare(PythonFullVersionRaw, pyversion.NewSpecifier(pyversion.LessThanEqual, 3, 10))

	lower := rangeset.Included(pyversion.New(3, 8))
	upper := rangeset.Included(pyversion.New(3, 10))
	got := in.SimplifyPythonVersions(lessEqual310, lower, upper)
	if got != TRUE {
		t.Errorf("python_full_version <= '3.10' should simplify to TRUE when the resolver guarantees [3.8, 3.10], got %v", got)
	}
}

func TestComplexifyPythonVersionsIsFalseOutsideBounds(t *testing.T) {
	in := NewInterner()
	lower := rangeset.Included(pyversion.New(3, 8))
	upper := rangeset.Included(pyversion.New(3, 10))

	got := in.ComplexifyPythonVersions(TRUE, lower, upper)
	if got == TRUE || got == FALSE {
		t.Fatalf("complexifying TRUE over a bounded interval should produce a range node, got terminal %v", got)
	}

	below := in.VersionCompare(PythonFullVersionRaw, pyversion.NewSpecifier(pyversion.LessThan, 3, 8))
	if and := in.And(got, below); and != FALSE {
		t.Errorf("complexified node should be FALSE below 3.8, got %v", and)
	}
	above := in.VersionCompare(PythonFullVersionRaw, pyversion.NewSpecifier(pyversion.GreaterThan, 3, 10))
	if and := in.And(got, above); and != FALSE {
		t.Errorf("complexified node should be FALSE above 3.10, got %v", and)
	}

	// Re-simplifying over the same bounds should recover TRUE.
	back := in.SimplifyPythonVersions(got, lower, upper)
	if back != TRUE {
		t.Errorf("simplifying the complexified node back over the same bounds should recover TRUE, got %v", back)
	}
}

func TestComplexifyFalseIsNoop(t *testing.T) {
	in := NewInterner()
	lower := rangeset.Included(pyversion.New(3, 8))
	upper := rangeset.Included(pyversion.New(3, 10))
	if got := in.ComplexifyPythonVersions(FALSE, lower, upper); got != FALSE {
		t.Errorf("ComplexifyPythonVersions(FALSE, ...) should be a no-op, got %v", got)
	}
}

func TestSimplifyUnboundedIsNoop(t *testing.T) {
	in := NewInterner()
	x := in.VersionCompare(PythonFullVersionRaw, pyversion.NewSpecifier(pyversion.LessThanEqual, 3, 10))
	got := in.SimplifyPythonVersions(x, rangeset.Unbounded[pyversion.Version](), rangeset.Unbounded[pyversion.Version]())
	if got != x {
		t.Errorf("SimplifyPythonVersions with unbounded lower/upper should be a no-op, got %v want %v", got, x)
	}
}
