package unit

import "strconv"

// Find walks the receiver by consuming path segments: a pair selects its
// halves through "0"/"1", a list through a zero-based index, a map through
// the rendered form of its keys (first match wins). Whenever the current node
// is a Ref the walk re-anchors: the ref's own path is resolved against root,
// never against the current subtree.
//
// There is no cycle detection; resolving a cyclic reference chain does not
// terminate. Callers own that invariant.
func (u Unit) Find(root Unit, path []string) (Unit, bool) {
	if refPath, ok := u.AsRef(); ok {
		return root.Find(root, refPath)
	}
	if len(path) == 0 {
		return u, true
	}

	curr, rest := path[0], path[1:]
	switch u.kind {
	case KindPair:
		switch curr {
		case "0":
			return u.kids[0].Find(root, rest)
		case "1":
			return u.kids[1].Find(root, rest)
		}
	case KindList:
		idx, err := strconv.Atoi(curr)
		if err == nil && idx >= 0 && idx < len(u.kids) {
			return u.kids[idx].Find(root, rest)
		}
	case KindMap:
		for _, e := range u.ents {
			if e.Key.String() == curr {
				return e.Val.Find(root, rest)
			}
		}
	}
	return Unit{}, false
}

// Typed finders collapse "absent" and "present but wrong variant" into the
// same miss; callers cannot tell the two apart.

func (u Unit) FindBool(root Unit, path []string) (bool, bool) {
	v, ok := u.Find(root, path)
	if !ok {
		return false, false
	}
	return v.AsBool()
}

func (u Unit) FindInt(root Unit, path []string) (int32, bool) {
	v, ok := u.Find(root, path)
	if !ok {
		return 0, false
	}
	return v.AsInt()
}

func (u Unit) FindStr(root Unit, path []string) (string, bool) {
	v, ok := u.Find(root, path)
	if !ok {
		return "", false
	}
	return v.AsStr()
}

func (u Unit) FindPair(root Unit, path []string) (Unit, Unit, bool) {
	v, ok := u.Find(root, path)
	if !ok {
		return Unit{}, Unit{}, false
	}
	return v.AsPair()
}

func (u Unit) FindList(root Unit, path []string) ([]Unit, bool) {
	v, ok := u.Find(root, path)
	if !ok {
		return nil, false
	}
	return v.AsList()
}

func (u Unit) FindMap(root Unit, path []string) ([]Entry, bool) {
	v, ok := u.Find(root, path)
	if !ok {
		return nil, false
	}
	return v.AsMap()
}
