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
Expression ingress (spec.md §4.3): translate a validated, already-parsed
marker predicate into a canonical NodeId. Each row of the ingress table is
realized here as its own typed constructor on *Interner, rather than one
big predicate-variant struct dispatched through a single function — the
Go-idiomatic shape for a small fixed set of ingress shapes, mirrored on
how util/resolve/pypi/markers.go builds its own constraints directly
rather than through an intermediate AST.
*/
package marker

import (
	"regexp"

	"pep508.dev/marker/internal/pyversion"
	"pep508.dev/marker/internal/rangeset"
)

// RawVersionKey names a PEP 508 version-valued marker key as the parser
// sees it, before python_version is rewritten away.
type RawVersionKey string

const (
	PythonVersionRaw         RawVersionKey = "python_version"
	PythonFullVersionRaw     RawVersionKey = "python_full_version"
	ImplementationVersionRaw RawVersionKey = "implementation_version"
)

func (k RawVersionKey) canonical() VersionKeyName {
	switch k {
	case PythonFullVersionRaw:
		return PythonFullVersion
	case ImplementationVersionRaw:
		return ImplementationVersion
	default:
		panic("marker: " + string(k) + " has no canonical VersionKeyName; python_version must go through pythonVersionNode")
	}
}

// VersionCompare builds "key <op> v" (spec §4.3 row 1-2): python_version
// is rewritten via §4.7, other version keys build a Version edge set
// directly from the specifier's release range.
func (in *Interner) VersionCompare(key RawVersionKey, spec pyversion.Specifier) NodeId {
	if key == PythonVersionRaw {
		return in.pythonVersionNode(spec)
	}
	return in.versionSpecifierNode(key.canonical(), spec)
}

// VersionIn builds "key in/not in [v...]" (spec §4.3 row 3): the true
// region is the union of the per-value ranges, complemented for "not in".
func (in *Interner) VersionIn(key RawVersionKey, specs []pyversion.Specifier, negate bool) NodeId {
	if key == PythonVersionRaw {
		return in.pythonVersionInNode(specs, negate)
	}
	union := rangeset.Empty[pyversion.Version]()
	for _, s := range specs {
		union = union.Union(pyversion.ReleaseToRange(s))
	}
	if negate {
		union = union.Complement()
	}
	edges := versionEdgesFromRange(union, TRUE, FALSE)
	return in.createNode(VersionVar(key.canonical()), Edges{kind: edgeVersion, versionEdges: edges})
}

// canonicalizeStringKeyValue rewrites (platform_system, X) to
// (sys_platform, Y) for the fixed equivalence set of spec.md §4.3, ahead
// of constructing any string-keyed node.
func canonicalizeStringKeyValue(key StringKeyName, value string) (StringKeyName, string) {
	if key == PlatformSystem {
		if canon, ok := canonicalPlatformSystem(value); ok {
			return SysPlatform, canon
		}
	}
	return key, value
}

func boolEdges(trueWhen bool) Edges {
	if trueWhen {
		return booleanEdges(TRUE, FALSE)
	}
	return booleanEdges(FALSE, TRUE)
}

// StringIn builds "value in/not in <stringkey>" (spec §4.3 row 4): a
// plain boolean decision under an In{key,value} variable.
func (in *Interner) StringIn(key StringKeyName, value string, negate bool) NodeId {
	key, value = canonicalizeStringKeyValue(key, value)
	return in.createNode(InVar(key, value), boolEdges(!negate))
}

// StringContains builds "<stringkey> contains/not-contains value" (spec
// §4.3 row 5): a plain boolean decision under a Contains{key,value}
// variable.
func (in *Interner) StringContains(key StringKeyName, value string, negate bool) NodeId {
	key, value = canonicalizeStringKeyValue(key, value)
	return in.createNode(ContainsVar(key, value), boolEdges(!negate))
}

// StringOp is a PEP 508 string comparison operator. TildeEqual has no
// case here: the parser never produces it for a string-keyed comparison
// (spec §7), and reaching this code with one is a programmer error.
type StringOp int8

const (
	StrEqual StringOp = iota
	StrNotEqual
	StrLessThan
	StrLessThanEqual
	StrGreaterThan
	StrGreaterThanEqual
)

func stringOpToRange(op StringOp, value Str) rangeset.Ranges[Str] {
	switch op {
	case StrEqual:
		return rangeset.Singleton(value)
	case StrNotEqual:
		return rangeset.Singleton(value).Complement()
	case StrLessThan:
		return rangeset.StrictlyLowerThan(value)
	case StrLessThanEqual:
		return rangeset.LowerThan(value)
	case StrGreaterThan:
		return rangeset.StrictlyHigherThan(value)
	case StrGreaterThanEqual:
		return rangeset.HigherThan(value)
	default:
		panic("marker: ~= is not a valid string marker operator")
	}
}

// StringCompare builds "key <op> v" (spec §4.3 row 6) as a String edge
// set derived from op.
func (in *Interner) StringCompare(key StringKeyName, op StringOp, value string) NodeId {
	key, value = canonicalizeStringKeyValue(key, value)
	r := stringOpToRange(op, Str(value))
	edges := stringEdgesFromRange(r, TRUE, FALSE)
	return in.createNode(StringVar(key), Edges{kind: edgeString, stringEdges: edges})
}

// ListIn builds "value in/not in <list-valued-key>" (spec §4.3 row 7): a
// plain boolean decision under a ListPair(key, value) variable.
func (in *Interner) ListIn(key, value string, negate bool) NodeId {
	return in.createNode(ListVar(key, value), boolEdges(!negate))
}

// extraNamePattern matches a valid PEP 508 extra name (the same shape as
// a normalized PEP 503 project name).
var extraNamePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

func isValidExtraName(name string) bool {
	return extraNamePattern.MatchString(name)
}

// Extra builds "extra == name" / "extra != name" (spec §4.3 rows 8-9): a
// boolean decision under an ExtraKey(name) variable, or the constant
// FALSE for a syntactically invalid extra name.
func (in *Interner) Extra(name string, equal bool) NodeId {
	if !isValidExtraName(name) {
		return FALSE
	}
	return in.createNode(ExtraVar(name), boolEdges(equal))
}
