package unit

type schemaKind uint8

const (
	schemaValue schemaKind = iota
	schemaSlotNone
	schemaSlotBool
	schemaSlotByte
	schemaSlotInt
	schemaSlotDec
	schemaSlotStr
	schemaSlotAny
	schemaPair
	schemaList
	schemaMap
	schemaOr
)

// Schema structurally validates a Unit and destructures matched scalars into
// caller-owned output cells. Slot writes happen immediately on each
// successful leaf match and are not rolled back when an enclosing match
// fails; after an overall failure the cells are in an unspecified state.
type Schema struct {
	kind schemaKind

	lit Unit

	boolDst *bool
	byteDst *byte
	intDst  *int32
	decDst  *float32
	strDst  *string
	anyDst  *Unit

	kids []Schema
	ents []SchemaEntry
}

// SchemaEntry pairs a key schema with a value schema for map matching.
type SchemaEntry struct {
	Key Schema
	Val Schema
}

// Value matches only a Unit structurally equal to u.
func Value(u Unit) Schema { return Schema{kind: schemaValue, lit: u} }

// SlotNone matches the none variant without capturing anything.
func SlotNone() Schema { return Schema{kind: schemaSlotNone} }

func SlotBool(dst *bool) Schema { return Schema{kind: schemaSlotBool, boolDst: dst} }

func SlotByte(dst *byte) Schema { return Schema{kind: schemaSlotByte, byteDst: dst} }

func SlotInt(dst *int32) Schema { return Schema{kind: schemaSlotInt, intDst: dst} }

func SlotDec(dst *float32) Schema { return Schema{kind: schemaSlotDec, decDst: dst} }

func SlotStr(dst *string) Schema { return Schema{kind: schemaSlotStr, strDst: dst} }

// SlotAny captures any Unit whole.
func SlotAny(dst *Unit) Schema { return Schema{kind: schemaSlotAny, anyDst: dst} }

// PairOf matches a pair whose halves match a and b.
func PairOf(a, b Schema) Schema { return Schema{kind: schemaPair, kids: []Schema{a, b}} }

// ListOf matches a list positionally, only up to the shorter of the two
// lengths; extra elements on either side are ignored.
func ListOf(ss ...Schema) Schema { return Schema{kind: schemaList, kids: ss} }

// MapOf matches a map when every entry schema is satisfied by some input
// entry: the first input entry whose key matches and whose value matches
// wins. Nothing stops one input entry from satisfying several schema
// entries.
func MapOf(es ...SchemaEntry) Schema { return Schema{kind: schemaMap, ents: es} }

// SE builds a schema map entry.
func SE(k, v Schema) SchemaEntry { return SchemaEntry{Key: k, Val: v} }

// OneOf tries a first and falls back to b only when a fails.
func OneOf(a, b Schema) Schema { return Schema{kind: schemaOr, kids: []Schema{a, b}} }

// Match matches u against the schema, resolving any Ref node against u
// itself as the document root.
func (s Schema) Match(u Unit) bool { return s.MatchAt(u, u) }

// MatchAt matches u against the schema with Refs resolved against root.
func (s Schema) MatchAt(root, u Unit) bool {
	if refPath, ok := u.AsRef(); ok {
		v, ok := root.Find(root, refPath)
		if !ok {
			return false
		}
		return s.MatchAt(root, v)
	}

	switch s.kind {
	case schemaValue:
		return s.lit.Equal(u)
	case schemaSlotNone:
		return u.AsNone()
	case schemaSlotBool:
		if v, ok := u.AsBool(); ok {
			*s.boolDst = v
			return true
		}
	case schemaSlotByte:
		if v, ok := u.AsByte(); ok {
			*s.byteDst = v
			return true
		}
	case schemaSlotInt:
		if v, ok := u.AsInt(); ok {
			*s.intDst = v
			return true
		}
	case schemaSlotDec:
		if v, ok := u.AsDec(); ok {
			*s.decDst = v
			return true
		}
	case schemaSlotStr:
		if v, ok := u.AsStr(); ok {
			*s.strDst = v
			return true
		}
	case schemaSlotAny:
		*s.anyDst = u
		return true
	case schemaPair:
		if a, b, ok := u.AsPair(); ok {
			return s.kids[0].MatchAt(root, a) && s.kids[1].MatchAt(root, b)
		}
	case schemaList:
		lst, ok := u.AsList()
		if !ok {
			return false
		}
		n := len(lst)
		if len(s.kids) < n {
			n = len(s.kids)
		}
		for i := 0; i < n; i++ {
			if !s.kids[i].MatchAt(root, lst[i]) {
				return false
			}
		}
		return true
	case schemaMap:
		ents, ok := u.AsMap()
		if !ok {
			return false
		}
		for _, se := range s.ents {
			found := false
			for _, e := range ents {
				if se.Key.MatchAt(root, e.Key) && se.Val.MatchAt(root, e.Val) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	case schemaOr:
		return s.kids[0].MatchAt(root, u) || s.kids[1].MatchAt(root, u)
	}
	return false
}
