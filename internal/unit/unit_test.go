package unit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var unitCmp = cmp.AllowUnexported(Unit{})

func TestStringForms(t *testing.T) {
	cases := []struct {
		u    Unit
		want string
	}{
		{None(), "-"},
		{Bool(true), "t"},
		{Bool(false), "f"},
		{Byte(5), "0x05"},
		{Byte(0xAB), "0xab"},
		{Int(-42), "-42"},
		{Dec(3), "3.0"},
		{Dec(-2.25), "-2.25"},
		{Str("abc"), "abc"},
		{Str("has space"), "`has space`"},
		{Str(""), "``"},
		{Ref("a", "b", "0"), "@a.b.0"},
		{Pair(Int(1), Str("a")), "(1 a)"},
		{List(Int(1), Int(2)), "[1 2]"},
		{Map(E(Str("a"), Int(1)), E(Str("b"), Bool(true))), "{a:1 b:t}"},
	}
	for _, tc := range cases {
		if got := tc.u.String(); got != tc.want {
			t.Fatalf("render: got %q, want %q", got, tc.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	units := []Unit{
		None(),
		Bool(false),
		Byte(0x1a),
		Int(12),
		Dec(12.05),
		Str("hello world"),
		Ref("img", "grass"),
		Pair(Byte(0), Pair(Str("x"), None())),
		List(Int(1), Dec(2.5), Str("three")),
		Map(
			E(Str("task"), List(Str("io.term"), Str("etc.chrono"))),
			E(Int(7), Pair(Bool(true), Ref("a", "b"))),
		),
	}
	for _, u := range units {
		got, err := Parse(u.String())
		if err != nil {
			t.Fatalf("reparse %s: %v", u, err)
		}
		if !got.Equal(u) {
			t.Fatalf("round trip %s: got %s", u, got)
		}
	}
}

func TestEqual(t *testing.T) {
	a := Map(E(Str("a"), Int(1)), E(Str("b"), Int(2)))
	b := Map(E(Str("b"), Int(2)), E(Str("a"), Int(1)))
	if a.Equal(b) {
		t.Fatal("maps with different entry order must not compare equal")
	}
	if !a.Equal(a.Clone()) {
		t.Fatal("clone must compare equal")
	}
	if Int(1).Equal(Dec(1)) {
		t.Fatal("int and dec are distinct variants")
	}
}

func TestClone(t *testing.T) {
	orig := Map(E(Str("xs"), List(Int(1), Int(2))))
	cl := orig.Clone()
	lst, _ := cl.AsMapFind("xs")
	elems, _ := lst.AsList()
	elems[0] = Int(99)
	if got, _ := orig.AsMapFind("xs"); !got.Equal(List(Int(1), Int(2))) {
		t.Fatalf("clone shares storage with original: %s", orig)
	}
}

func TestMerge(t *testing.T) {
	old := Map(E(Str("a"), Int(1)), E(Str("b"), Int(2)))
	upd := Map(E(Str("b"), Int(9)), E(Str("c"), Int(3)))

	got := old.Merge(upd)
	want := Map(E(Str("a"), Int(1)), E(Str("b"), Int(9)), E(Str("c"), Int(3)))
	if diff := cmp.Diff(want, got, unitCmp); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}

	// non-map arguments leave the receiver untouched
	if diff := cmp.Diff(old, old.Merge(Int(5)), unitCmp); diff != "" {
		t.Fatalf("merge with non-map changed receiver:\n%s", diff)
	}
	if diff := cmp.Diff(Int(5), Int(5).Merge(upd), unitCmp); diff != "" {
		t.Fatalf("merge onto non-map changed receiver:\n%s", diff)
	}
}

func TestAccessors(t *testing.T) {
	if _, ok := Int(1).AsStr(); ok {
		t.Fatal("AsStr on int must fail")
	}
	if v, ok := Byte(200).AsByte(); !ok || v != 200 {
		t.Fatalf("AsByte: %v %v", v, ok)
	}
	a, b, ok := Pair(Int(1), Int(2)).AsPair()
	if !ok || !a.Equal(Int(1)) || !b.Equal(Int(2)) {
		t.Fatal("AsPair mismatch")
	}

	m := Map(E(Str("k"), Int(1)), E(Str("k"), Int(2)))
	if v, ok := m.AsMapFind("k"); !ok || !v.Equal(Int(1)) {
		t.Fatalf("duplicate keys: first entry must win, got %s", v)
	}
	if _, ok := m.AsMapFind("missing"); ok {
		t.Fatal("missing key must report false")
	}

	got, ok := AsListTyped(List(Int(1), Str("x"), Int(3)), Unit.AsInt)
	if !ok || len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("AsListTyped: %v %v", got, ok)
	}
}

func TestZeroValueIsNone(t *testing.T) {
	var u Unit
	if !u.AsNone() {
		t.Fatal("zero Unit must be none")
	}
	if u.String() != "-" {
		t.Fatalf("zero Unit renders %q", u.String())
	}
}
