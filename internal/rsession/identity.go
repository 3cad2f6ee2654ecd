package rsession

import "strings"

// Path is a component identity path: the concatenation of the parent path
// with the child's type name and an optional explicit identity, joined by
// "/". Paths are stable across renders and are therefore used (rather than
// arena indices) to key state, effects, and focus.
type Path string

// Child extends a path with a component's type name and optional explicit
// identity key.
func Child(parent Path, typeName string, explicitIdentity string) Path {
	seg := typeName
	if explicitIdentity != "" {
		seg = typeName + "#" + explicitIdentity
	}
	if parent == "" {
		return Path(seg)
	}
	return parent + "/" + Path(seg)
}

// Root is the identity path of the render tree's top-level component.
const Root Path = ""

// rootIdentity is the (typeName, explicitIdentity) pair the session
// compares across frames to decide whether to perform an identity reset.
type rootIdentity struct {
	typeName         string
	explicitIdentity string
}

func (r rootIdentity) equal(o rootIdentity) bool {
	return r.typeName == o.typeName && r.explicitIdentity == o.explicitIdentity
}

// segments splits a path into its "/"-delimited components, used by focus
// jump-by-id matching (any segment of the path may match the given id).
func (p Path) segments() []string {
	if p == "" {
		return nil
	}
	return strings.Split(string(p), "/")
}

// hasSegment reports whether id matches any "/"-delimited segment of p, or
// either the type-name portion (before "#") or the identity portion (after
// "#") of a segment.
func (p Path) hasSegment(id string) bool {
	for _, seg := range p.segments() {
		if seg == id {
			return true
		}
		if idx := strings.IndexByte(seg, '#'); idx >= 0 && (seg[:idx] == id || seg[idx+1:] == id) {
			return true
		}
	}
	return false
}
