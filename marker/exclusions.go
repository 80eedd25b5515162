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

// plainAnd is And without the exclusions check: spec.md §4.8 requires the
// exclusions node itself, and the probe And runs against it, to be built
// without consulting exclusions, or building the node would recurse into
// itself forever.
func (in *Interner) plainAnd(x, y NodeId) NodeId {
	switch {
	case x == TRUE:
		return y
	case y == TRUE:
		return x
	case x == FALSE || y == FALSE:
		return FALSE
	case x == y:
		return x
	case x == y.Not():
		return FALSE
	}

	xVar, _ := in.variableOf(x)
	yVar, _ := in.variableOf(y)

	switch c := xVar.Compare(yVar); {
	case c < 0:
		nx := in.node(x)
		edges := nx.Edges.mapChildren(x, func(child NodeId) NodeId { return in.plainAnd(child, y) })
		return in.createNode(xVar, edges)
	case c > 0:
		ny := in.node(y)
		edges := ny.Edges.mapChildren(y, func(child NodeId) NodeId { return in.plainAnd(x, child) })
		return in.createNode(yVar, edges)
	default:
		nx, ny := in.node(x), in.node(y)
		edges := in.applyEdges(nx.Edges, x, ny.Edges, y, in.plainAnd)
		return in.createNode(xVar, edges)
	}
}

// plainOr is Or built on plainAnd, for the same reason.
func (in *Interner) plainOr(x, y NodeId) NodeId {
	return in.plainAnd(x.Not(), y.Not()).Not()
}

// stringEquals returns the node for "key == value", building it directly
// rather than through the StringCompare ingress constructor, so no
// platform_system canonicalization is applied to key or value.
func (in *Interner) stringEquals(key StringKeyName, value string) NodeId {
	r := rangeSingletonStr(value)
	edges := stringEdgesFromRange(r, TRUE, FALSE)
	return in.createNode(StringVar(key), Edges{kind: edgeString, stringEdges: edges})
}

var exclusionSysPlatforms = []string{
	"aix", "android", "emscripten", "ios", "linux", "darwin", "win32", "cygwin", "wasi",
}

var exclusionPlatformSystems = []string{
	"FreeBSD", "NetBSD", "OpenBSD", "SunOS", "iOS", "iPadOS",
}

// iosCompatible reports whether (platformSystem, sysPlatform) is the one
// compatibility case excluded from the cross product of spec.md §4.8:
// both iOS and iPadOS are compatible with sys_platform == "ios".
func iosCompatible(platformSystem, sysPlatform string) bool {
	if sysPlatform != "ios" {
		return false
	}
	return platformSystem == "iOS" || platformSystem == "iPadOS"
}

// exclusionsNode returns the lazily-built, cached disjunction of string
// predicate pairs known to never co-occur in any real environment (spec
// §4.8), building it on first use with plainAnd/plainOr so that building
// it never consults itself.
func (in *Interner) exclusionsNode() NodeId {
	if cached, ok := in.cachedExclusions(); ok {
		return cached
	}

	osNT := in.stringEquals(OSName, "nt")
	osPosix := in.stringEquals(OSName, "posix")

	var pairs []NodeId
	for _, sp := range []string{"linux", "darwin", "ios"} {
		pairs = append(pairs, in.plainAnd(osNT, in.stringEquals(SysPlatform, sp)))
	}
	pairs = append(pairs, in.plainAnd(osPosix, in.stringEquals(SysPlatform, "win32")))

	for _, ps := range exclusionPlatformSystems {
		psNode := in.stringEquals(PlatformSystem, ps)
		for _, sp := range exclusionSysPlatforms {
			if iosCompatible(ps, sp) {
				continue
			}
			pairs = append(pairs, in.plainAnd(psNode, in.stringEquals(SysPlatform, sp)))
		}
	}

	result := FALSE
	for _, p := range pairs {
		result = in.plainOr(result, p)
	}

	in.setCachedExclusions(result)
	return result
}
