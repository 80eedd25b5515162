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
Package marker implements a canonical symbolic decision engine for PEP 508
environment markers: a Reduced Ordered Algebraic Decision Diagram (ADD)
over boolean, version-range, and string-range variables, with complemented
edges, hash-consing, and operation memoization.

It is a Go port of uv-pep508's marker algebra
(_examples/original_source/crates/uv-pep508/src/marker/algebra.rs), written
in the idiom of deps.dev/util/semver and deps.dev/util/resolve/pypi, which
already parse and evaluate PEP 508 markers for the same ecosystem but
without building a canonical, interned representation.
*/
package marker

import "strings"

// StringKeyName is a canonical PEP 508 string-valued marker key, after
// platform_system -> sys_platform canonicalization.
type StringKeyName string

const (
	OSName                     StringKeyName = "os_name"
	SysPlatform                StringKeyName = "sys_platform"
	PlatformMachine            StringKeyName = "platform_machine"
	PlatformPythonImplementation StringKeyName = "platform_python_implementation"
	PlatformRelease            StringKeyName = "platform_release"
	PlatformVersion            StringKeyName = "platform_version"
	ImplementationName         StringKeyName = "implementation_name"
	PlatformSystem             StringKeyName = "platform_system"
)

// VersionKeyName is a canonical PEP 508 version-valued marker key.
// python_version is never stored directly: ingress always rewrites it to
// PythonFullVersion before a node is built (spec §4.7).
type VersionKeyName string

const (
	ImplementationVersion VersionKeyName = "implementation_version"
	PythonFullVersion     VersionKeyName = "python_full_version"
)

// varKind discriminates the six Variable shapes, in the fixed total
// order spec.md §3 assigns them: StringKey < VersionKey < In < Contains <
// ExtraKey < ListPair.
type varKind int8

const (
	kindString varKind = iota
	kindVersion
	kindIn
	kindContains
	kindExtra
	kindList
)

// Variable identifies what a decision node tests. It is one of six
// shapes (StringKey, VersionKey, In, Contains, ExtraKey, ListPair);
// exactly one group of fields is meaningful depending on kind.
type Variable struct {
	kind varKind

	stringKey  StringKeyName // kindString
	versionKey VersionKeyName // kindVersion
	key        StringKeyName  // kindIn, kindContains: the string key being tested
	value      string         // kindIn, kindContains: the value being tested against
	extraName  string         // kindExtra
	listKey    string         // kindList: canonical (key) component
	listValue  string         // kindList: canonical value component
}

// StringVar builds a StringKey(k) variable.
func StringVar(k StringKeyName) Variable { return Variable{kind: kindString, stringKey: k} }

// VersionVar builds a VersionKey(k) variable.
func VersionVar(k VersionKeyName) Variable { return Variable{kind: kindVersion, versionKey: k} }

// InVar builds an In{key, value} variable.
func InVar(key StringKeyName, value string) Variable {
	return Variable{kind: kindIn, key: key, value: value}
}

// ContainsVar builds a Contains{key, value} variable.
func ContainsVar(key StringKeyName, value string) Variable {
	return Variable{kind: kindContains, key: key, value: value}
}

// ExtraVar builds an ExtraKey(name) variable.
func ExtraVar(name string) Variable { return Variable{kind: kindExtra, extraName: name} }

// ListVar builds a ListPair(key, value) variable.
func ListVar(key, value string) Variable {
	return Variable{kind: kindList, listKey: key, listValue: value}
}

// IsVersion reports whether v is a VersionKey variable, and if so, which key.
func (v Variable) IsVersion() (VersionKeyName, bool) {
	if v.kind != kindVersion {
		return "", false
	}
	return v.versionKey, true
}

// IsExtra reports whether v is an ExtraKey variable.
func (v Variable) IsExtra() bool { return v.kind == kindExtra }

// isConflicting reports whether v is one of the string variables the
// exclusions disjunction (spec §4.8) knows incompatibilities for:
// os_name, sys_platform, platform_system.
func (v Variable) isConflicting() bool {
	if v.kind != kindString {
		return false
	}
	switch v.stringKey {
	case OSName, SysPlatform, PlatformSystem:
		return true
	default:
		return false
	}
}

func (v Variable) sortKey() string {
	var b strings.Builder
	switch v.kind {
	case kindString:
		b.WriteString(string(v.stringKey))
	case kindVersion:
		b.WriteString(string(v.versionKey))
	case kindIn, kindContains:
		b.WriteString(string(v.key))
		b.WriteByte(0)
		b.WriteString(v.value)
	case kindExtra:
		b.WriteString(v.extraName)
	case kindList:
		b.WriteString(v.listKey)
		b.WriteByte(0)
		b.WriteString(v.listValue)
	}
	return b.String()
}

// Compare implements the total variable order of spec.md §3: kind first,
// then the inner canonical value lexicographically.
func (v Variable) Compare(other Variable) int {
	if v.kind != other.kind {
		if v.kind < other.kind {
			return -1
		}
		return 1
	}
	return strings.Compare(v.sortKey(), other.sortKey())
}

// Equal reports whether v and other are the same variable.
func (v Variable) Equal(other Variable) bool {
	return v.kind == other.kind && v.sortKey() == other.sortKey()
}

func (v Variable) String() string {
	switch v.kind {
	case kindString:
		return string(v.stringKey)
	case kindVersion:
		return string(v.versionKey)
	case kindIn:
		return string(v.key) + " in " + v.value
	case kindContains:
		return string(v.key) + " contains " + v.value
	case kindExtra:
		return "extra == " + v.extraName
	case kindList:
		return v.listValue + " in " + v.listKey
	default:
		return "?"
	}
}

// canonicalPlatformSystem rewrites a (platform_system, value) pair to the
// equivalent (sys_platform, value) pair per spec.md §4.3, or reports ok=false
// if value is not one of the known equivalences.
func canonicalPlatformSystem(value string) (string, bool) {
	switch value {
	case "Windows":
		return "win32", true
	case "Darwin":
		return "darwin", true
	case "Linux":
		return "linux", true
	case "AIX":
		return "aix", true
	case "Emscripten":
		return "emscripten", true
	case "Android":
		return "android", true
	default:
		return "", false
	}
}
