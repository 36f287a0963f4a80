package unit

import (
	"strconv"
	"strings"
	"unicode"
)

// Kind discriminates the Unit variants.
type Kind uint8

const (
	KindNone Kind = iota
	KindBool
	KindByte
	KindInt
	KindDec
	KindStr
	KindRef
	KindPair
	KindList
	KindMap
)

// Unit is the tagged tree value used uniformly as data, configuration and
// program payload. The zero value is None.
type Unit struct {
	kind Kind
	b    bool
	byt  byte
	i    int32
	d    float32
	s    string
	path []string
	kids []Unit
	ents []Entry
}

// Entry is one ordered key/value pair of a map Unit. Keys are full Units
// compared structurally; duplicates are not rejected and lookup returns the
// first match.
type Entry struct {
	Key Unit
	Val Unit
}

func None() Unit { return Unit{kind: KindNone} }

func Bool(v bool) Unit { return Unit{kind: KindBool, b: v} }

func Byte(v byte) Unit { return Unit{kind: KindByte, byt: v} }

func Int(v int32) Unit { return Unit{kind: KindInt, i: v} }

func Dec(v float32) Unit { return Unit{kind: KindDec, d: v} }

func Str(v string) Unit { return Unit{kind: KindStr, s: v} }

func Ref(path ...string) Unit { return Unit{kind: KindRef, path: path} }

func Pair(a, b Unit) Unit { return Unit{kind: KindPair, kids: []Unit{a, b}} }

func List(us ...Unit) Unit { return Unit{kind: KindList, kids: us} }

func Map(es ...Entry) Unit { return Unit{kind: KindMap, ents: es} }

// E builds a map entry.
func E(k, v Unit) Entry { return Entry{Key: k, Val: v} }

// Kind reports the variant tag.
func (u Unit) Kind() Kind { return u.kind }

func (u Unit) AsNone() bool { return u.kind == KindNone }

func (u Unit) AsBool() (bool, bool) {
	if u.kind != KindBool {
		return false, false
	}
	return u.b, true
}

func (u Unit) AsByte() (byte, bool) {
	if u.kind != KindByte {
		return 0, false
	}
	return u.byt, true
}

func (u Unit) AsInt() (int32, bool) {
	if u.kind != KindInt {
		return 0, false
	}
	return u.i, true
}

func (u Unit) AsDec() (float32, bool) {
	if u.kind != KindDec {
		return 0, false
	}
	return u.d, true
}

func (u Unit) AsStr() (string, bool) {
	if u.kind != KindStr {
		return "", false
	}
	return u.s, true
}

func (u Unit) AsRef() ([]string, bool) {
	if u.kind != KindRef {
		return nil, false
	}
	return u.path, true
}

func (u Unit) AsPair() (Unit, Unit, bool) {
	if u.kind != KindPair {
		return Unit{}, Unit{}, false
	}
	return u.kids[0], u.kids[1], true
}

func (u Unit) AsList() ([]Unit, bool) {
	if u.kind != KindList {
		return nil, false
	}
	return u.kids, true
}

func (u Unit) AsMap() ([]Entry, bool) {
	if u.kind != KindMap {
		return nil, false
	}
	return u.ents, true
}

// AsMapFind returns the value of the first entry whose key is Str(key).
func (u Unit) AsMapFind(key string) (Unit, bool) {
	if u.kind != KindMap {
		return Unit{}, false
	}
	for _, e := range u.ents {
		if s, ok := e.Key.AsStr(); ok && s == key {
			return e.Val, true
		}
	}
	return Unit{}, false
}

// AsListTyped maps the list elements through f, dropping the ones f rejects.
func AsListTyped[T any](u Unit, f func(Unit) (T, bool)) ([]T, bool) {
	lst, ok := u.AsList()
	if !ok {
		return nil, false
	}
	out := make([]T, 0, len(lst))
	for _, el := range lst {
		if v, ok := f(el); ok {
			out = append(out, v)
		}
	}
	return out, true
}

// Equal reports full structural equality, including map entry order.
func (u Unit) Equal(o Unit) bool {
	if u.kind != o.kind {
		return false
	}
	switch u.kind {
	case KindNone:
		return true
	case KindBool:
		return u.b == o.b
	case KindByte:
		return u.byt == o.byt
	case KindInt:
		return u.i == o.i
	case KindDec:
		return u.d == o.d
	case KindStr:
		return u.s == o.s
	case KindRef:
		if len(u.path) != len(o.path) {
			return false
		}
		for i := range u.path {
			if u.path[i] != o.path[i] {
				return false
			}
		}
		return true
	case KindPair, KindList:
		if len(u.kids) != len(o.kids) {
			return false
		}
		for i := range u.kids {
			if !u.kids[i].Equal(o.kids[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(u.ents) != len(o.ents) {
			return false
		}
		for i := range u.ents {
			if !u.ents[i].Key.Equal(o.ents[i].Key) || !u.ents[i].Val.Equal(o.ents[i].Val) {
				return false
			}
		}
		return true
	}
	return false
}

// Clone returns a deep copy.
func (u Unit) Clone() Unit {
	out := u
	if u.path != nil {
		out.path = append([]string(nil), u.path...)
	}
	if u.kids != nil {
		out.kids = make([]Unit, len(u.kids))
		for i := range u.kids {
			out.kids[i] = u.kids[i].Clone()
		}
	}
	if u.ents != nil {
		out.ents = make([]Entry, len(u.ents))
		for i := range u.ents {
			out.ents[i] = Entry{Key: u.ents[i].Key.Clone(), Val: u.ents[i].Val.Clone()}
		}
	}
	return out
}

// Merge lays the entries of o over a map receiver: entries of u whose keys
// reappear in o are dropped, then the entries of o are appended, so new keys
// override and untouched keys survive. Anything other than map-onto-map
// returns the receiver unchanged.
func (u Unit) Merge(o Unit) Unit {
	om, ok := o.AsMap()
	if !ok {
		return u
	}
	um, ok := u.AsMap()
	if !ok {
		return u
	}
	out := make([]Entry, 0, len(um)+len(om))
	for _, e := range um {
		shadowed := false
		for _, n := range om {
			if e.Key.Equal(n.Key) {
				shadowed = true
				break
			}
		}
		if !shadowed {
			out = append(out, e)
		}
	}
	out = append(out, om...)
	return Map(out...)
}

// String renders the canonical text form. The output reparses to an equal
// Unit, except for empty lists and maps which the grammar cannot express.
func (u Unit) String() string {
	var sb strings.Builder
	u.render(&sb)
	return sb.String()
}

func (u Unit) render(sb *strings.Builder) {
	switch u.kind {
	case KindNone:
		sb.WriteByte('-')
	case KindBool:
		if u.b {
			sb.WriteByte('t')
		} else {
			sb.WriteByte('f')
		}
	case KindByte:
		sb.WriteString("0x")
		const hex = "0123456789abcdef"
		sb.WriteByte(hex[u.byt>>4])
		sb.WriteByte(hex[u.byt&0xf])
	case KindInt:
		sb.WriteString(strconv.FormatInt(int64(u.i), 10))
	case KindDec:
		s := strconv.FormatFloat(float64(u.d), 'f', -1, 32)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		sb.WriteString(s)
	case KindStr:
		if bareString(u.s) {
			sb.WriteString(u.s)
		} else {
			sb.WriteByte('`')
			sb.WriteString(u.s)
			sb.WriteByte('`')
		}
	case KindRef:
		sb.WriteByte('@')
		sb.WriteString(strings.Join(u.path, "."))
	case KindPair:
		sb.WriteByte('(')
		u.kids[0].render(sb)
		sb.WriteByte(' ')
		u.kids[1].render(sb)
		sb.WriteByte(')')
	case KindList:
		sb.WriteByte('[')
		for i, el := range u.kids {
			if i > 0 {
				sb.WriteByte(' ')
			}
			el.render(sb)
		}
		sb.WriteByte(']')
	case KindMap:
		sb.WriteByte('{')
		for i, e := range u.ents {
			if i > 0 {
				sb.WriteByte(' ')
			}
			e.Key.render(sb)
			sb.WriteByte(':')
			e.Val.render(sb)
		}
		sb.WriteByte('}')
	}
}

func bareString(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !bareRune(r) {
			return false
		}
	}
	return true
}

func bareRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '#'
}
