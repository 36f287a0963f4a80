package unit

import "testing"

func TestSchemaSlots(t *testing.T) {
	u := mustParse(t, "{name:`bob` age:30 score:1.5 flag:t raw:0x2a}")

	var (
		name  string
		age   int32
		score float32
		flag  bool
		raw   byte
	)
	sc := MapOf(
		SE(Value(Str("name")), SlotStr(&name)),
		SE(Value(Str("age")), SlotInt(&age)),
		SE(Value(Str("score")), SlotDec(&score)),
		SE(Value(Str("flag")), SlotBool(&flag)),
		SE(Value(Str("raw")), SlotByte(&raw)),
	)
	if !sc.Match(u) {
		t.Fatal("schema must match")
	}
	if name != "bob" || age != 30 || score != 1.5 || flag != true || raw != 0x2a {
		t.Fatalf("slots: %q %d %v %v %#x", name, age, score, flag, raw)
	}
}

func TestSchemaVariantMismatch(t *testing.T) {
	u := mustParse(t, "{age:thirty}")
	var age int32
	sc := MapOf(SE(Value(Str("age")), SlotInt(&age)))
	if sc.Match(u) {
		t.Fatal("int slot must reject a str value")
	}
	if !Value(Int(5)).Match(Int(5)) {
		t.Fatal("literal must match itself")
	}
	if Value(Int(5)).Match(Dec(5)) {
		t.Fatal("literal must reject a different variant")
	}
	if !SlotNone().Match(None()) {
		t.Fatal("none slot must match none")
	}
}

func TestSchemaPairAndList(t *testing.T) {
	var a, b int32
	if !PairOf(SlotInt(&a), SlotInt(&b)).Match(mustParse(t, "(3 4)")) {
		t.Fatal("pair must match")
	}
	if a != 3 || b != 4 {
		t.Fatalf("pair slots: %d %d", a, b)
	}

	// positional matching stops at the shorter side
	var first int32
	sc := ListOf(SlotInt(&first))
	if !sc.Match(mustParse(t, "[7 8 9]")) {
		t.Fatal("longer input list must still match")
	}
	if first != 7 {
		t.Fatalf("first: %d", first)
	}
	if !ListOf(SlotInt(&first), SlotInt(&first), SlotInt(&first)).Match(mustParse(t, "[1]")) {
		t.Fatal("shorter input list must still match")
	}
	if ListOf(SlotInt(&first)).Match(mustParse(t, "[x]")) {
		t.Fatal("element mismatch must fail")
	}
}

func TestSchemaOneOf(t *testing.T) {
	var v int32
	sc := OneOf(Value(Str("stop")), SlotInt(&v))
	if !sc.Match(Str("stop")) {
		t.Fatal("first alternative must match")
	}
	if !sc.Match(Int(9)) || v != 9 {
		t.Fatalf("second alternative must match and capture, got %d", v)
	}
	if sc.Match(Bool(true)) {
		t.Fatal("neither alternative matches a bool")
	}

	// the first success wins; the fallback slot stays untouched
	v = -1
	sc = OneOf(Value(Int(5)), SlotInt(&v))
	if !sc.Match(Int(5)) {
		t.Fatal("literal alternative must match")
	}
	if v != -1 {
		t.Fatalf("fallback slot written on short circuit: %d", v)
	}
}

func TestSchemaRefResolution(t *testing.T) {
	root := mustParse(t, "{wait:@cfg.delay cfg:{delay:250}}")
	val, ok := root.Find(root, []string{"wait"})
	if !ok {
		t.Fatal("wait must resolve")
	}
	var ms int32
	if !SlotInt(&ms).MatchAt(root, val) || ms != 250 {
		t.Fatalf("ref slot: %d", ms)
	}

	// matching the ref node directly resolves it first
	var got Unit
	if !SlotAny(&got).MatchAt(root, Ref("cfg", "delay")) || !got.Equal(Int(250)) {
		t.Fatalf("any slot through ref: %s", got)
	}

	if SlotInt(&ms).MatchAt(root, Ref("nowhere")) {
		t.Fatal("dangling ref must fail the match")
	}
}

func TestSchemaMapSemantics(t *testing.T) {
	u := mustParse(t, "{a:1 b:2}")

	// every schema entry needs some input entry; extra input entries are fine
	var a int32
	if !MapOf(SE(Value(Str("a")), SlotInt(&a))).Match(u) {
		t.Fatal("subset schema must match")
	}
	var c int32
	sc := MapOf(
		SE(Value(Str("a")), SlotInt(&a)),
		SE(Value(Str("c")), SlotInt(&c)),
	)
	if sc.Match(u) {
		t.Fatal("unsatisfied schema entry must fail")
	}
	// no rollback: the a-slot keeps its value from before the c-entry failed
	if a != 1 {
		t.Fatalf("earlier slot write must survive the failure, got %d", a)
	}
}
