package unit

import (
	"strconv"
	"strings"
	"unicode"
)

// cursor is a read position over the source runes. It is a value type: every
// production attempt works on a copy, so a failed attempt never perturbs the
// caller's position.
type cursor struct {
	src []rune
	pos int
}

func (c cursor) done() bool { return c.pos >= len(c.src) }

func (c cursor) peek() (rune, bool) {
	if c.done() {
		return 0, false
	}
	return c.src[c.pos], true
}

func (c cursor) next() (rune, cursor) {
	r := c.src[c.pos]
	c.pos++
	return r, c
}

// Parse reads one Unit from the start of text. Trailing input after the first
// complete value is ignored, matching the grammar's streaming use.
func Parse(text string) (Unit, error) {
	u, _, err := parseAny(cursor{src: []rune(text)})
	return u, err
}

// ParseRest reads one Unit and also reports the unconsumed remainder.
func ParseRest(text string) (Unit, string, error) {
	u, c, err := parseAny(cursor{src: []rune(text)})
	if err != nil {
		return Unit{}, "", err
	}
	return u, string(c.src[c.pos:]), nil
}

// parseAny tries every production in fixed order; the first success wins.
func parseAny(c cursor) (Unit, cursor, error) {
	if c.done() {
		return Unit{}, c, ErrUnexpectedEnd
	}
	if u, nc, err := parseBool(c); err == nil {
		return u, nc, nil
	}
	if u, nc, err := parseByte(c); err == nil {
		return u, nc, nil
	}
	if u, nc, err := parseDec(c); err == nil {
		return u, nc, nil
	}
	if u, nc, err := parseInt(c); err == nil {
		return u, nc, nil
	}
	if u, nc, err := parseNone(c); err == nil {
		return u, nc, nil
	}
	if u, nc, err := parseStr(c); err != nil {
		if err != ErrNotStr {
			return Unit{}, c, err
		}
	} else {
		return u, nc, nil
	}
	if u, nc, err := parsePair(c); err != nil {
		// pair errors past the opening bracket are specific causes, not
		// ordered-choice misses
		if err != ErrNotPair {
			return Unit{}, c, err
		}
	} else {
		return u, nc, nil
	}
	if u, nc, err := parseRef(c); err != nil {
		if err != ErrNotRef {
			return Unit{}, c, err
		}
	} else {
		return u, nc, nil
	}
	if u, nc, err := parseList(c); err != nil {
		if err != ErrNotList {
			return Unit{}, c, err
		}
	} else {
		return u, nc, nil
	}
	if u, nc, err := parseMap(c); err != nil {
		if err != ErrNotMap {
			return Unit{}, c, err
		}
	} else {
		return u, nc, nil
	}
	return Unit{}, c, ErrNotUnit
}

func parseCh(c cursor, ch rune) (bool, cursor) {
	if r, ok := c.peek(); ok && r == ch {
		_, nc := c.next()
		return true, nc
	}
	return false, c
}

// parseWS consumes one or more whitespace runes.
func parseWS(c cursor) (bool, cursor) {
	ok := false
	for {
		r, has := c.peek()
		if !has || !unicode.IsSpace(r) {
			return ok, c
		}
		_, c = c.next()
		ok = true
	}
}

func parseNone(c cursor) (Unit, cursor, error) {
	if ok, nc := parseCh(c, '-'); ok {
		return None(), nc, nil
	}
	return Unit{}, c, ErrNotNone
}

func parseBool(c cursor) (Unit, cursor, error) {
	okT, ncT := parseCh(c, 't')
	okF, ncF := parseCh(c, 'f')
	nc := ncF
	if okT {
		nc = ncT
	}
	if !okT && !okF {
		return Unit{}, c, ErrNotBool
	}
	// a following alphanumeric means this is a bare string, not a bool
	if r, ok := nc.peek(); ok && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
		return Unit{}, c, ErrNotBool
	}
	return Bool(okT), nc, nil
}

// parseByte consumes exactly four runes forming 0xHH.
func parseByte(c cursor) (Unit, cursor, error) {
	if c.pos+4 > len(c.src) {
		return Unit{}, c, ErrNotByte
	}
	s := string(c.src[c.pos : c.pos+4])
	if !strings.HasPrefix(s, "0x") {
		return Unit{}, c, ErrNotByte
	}
	v, err := strconv.ParseUint(s[2:], 16, 8)
	if err != nil {
		return Unit{}, c, ErrNotByte
	}
	c.pos += 4
	return Byte(byte(v)), c, nil
}

// parseIntRaw greedily collects digit and '-' runes; the run must parse as a
// 32-bit signed decimal.
func parseIntRaw(c cursor) (int32, cursor, error) {
	var sb strings.Builder
	nc := c
	for {
		r, ok := nc.peek()
		if !ok || !(unicode.IsDigit(r) || r == '-') {
			break
		}
		sb.WriteRune(r)
		_, nc = nc.next()
	}
	v, err := strconv.ParseInt(sb.String(), 10, 32)
	if err != nil {
		return 0, c, ErrNotInt
	}
	return int32(v), nc, nil
}

func parseInt(c cursor) (Unit, cursor, error) {
	v, nc, err := parseIntRaw(c)
	if err != nil {
		return Unit{}, c, err
	}
	return Int(v), nc, nil
}

// parseDec reads <int>.<int>. A missing integer after the dot is a distinct
// error from not being a decimal at all.
func parseDec(c cursor) (Unit, cursor, error) {
	_, nc, err := parseIntRaw(c)
	if err != nil {
		return Unit{}, c, ErrNotDec
	}
	ok, nc := parseCh(nc, '.')
	if !ok {
		return Unit{}, c, ErrMissingDot
	}
	_, nc, err = parseIntRaw(nc)
	if err != nil {
		return Unit{}, c, ErrMissingDotPart
	}
	v, err := strconv.ParseFloat(string(c.src[c.pos:nc.pos]), 32)
	if err != nil {
		return Unit{}, c, ErrNotDec
	}
	return Dec(float32(v)), nc, nil
}

func parseStr(c cursor) (Unit, cursor, error) {
	r, ok := c.peek()
	if !ok {
		return Unit{}, c, ErrNotStr
	}

	// `arbitrary text`
	if r == '`' {
		_, nc := c.next()
		var sb strings.Builder
		for {
			r, ok := nc.peek()
			if !ok {
				return Unit{}, c, ErrUnclosedQuotes
			}
			_, nc = nc.next()
			if r == '`' {
				return Str(sb.String()), nc, nil
			}
			sb.WriteRune(r)
		}
	}

	// bare run of alphanumeric / '.' / '#'
	if !bareRune(r) {
		return Unit{}, c, ErrNotStr
	}
	var sb strings.Builder
	nc := c
	for {
		r, ok := nc.peek()
		if !ok || !bareRune(r) {
			return Str(sb.String()), nc, nil
		}
		sb.WriteRune(r)
		_, nc = nc.next()
	}
}

// parseRef reads @ followed by a dotted path; every segment must be purely
// alphanumeric or the whole ref fails.
func parseRef(c cursor) (Unit, cursor, error) {
	ok, nc := parseCh(c, '@')
	if !ok {
		return Unit{}, c, ErrNotRef
	}
	u, nc, err := parseStr(nc)
	if err != nil {
		return Unit{}, c, err
	}
	s, ok := u.AsStr()
	if !ok {
		return Unit{}, c, ErrRefNotString
	}
	path := strings.Split(s, ".")
	for _, seg := range path {
		for _, r := range seg {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return Unit{}, c, ErrRefInvalidPath
			}
		}
	}
	return Ref(path...), nc, nil
}

func parsePair(c cursor) (Unit, cursor, error) {
	ok, nc := parseCh(c, '(')
	if !ok {
		return Unit{}, c, ErrNotPair
	}
	a, nc, err := parseAny(nc)
	if err != nil {
		return Unit{}, c, err
	}
	ok, nc = parseWS(nc)
	if !ok {
		return Unit{}, c, ErrMissingSeparator
	}
	b, nc, err := parseAny(nc)
	if err != nil {
		return Unit{}, c, err
	}
	ok, nc = parseCh(nc, ')')
	if !ok {
		return Unit{}, c, ErrUnclosedBrackets
	}
	return Pair(a, b), nc, nil
}

func parseList(c cursor) (Unit, cursor, error) {
	ok, nc := parseCh(c, '[')
	if !ok {
		return Unit{}, c, ErrNotList
	}
	var lst []Unit
	for {
		_, nc = parseWS(nc)
		u, rest, err := parseAny(nc)
		if err != nil {
			return Unit{}, c, err
		}
		lst = append(lst, u)
		nc = rest

		okWS, rest := parseWS(nc)
		nc = rest
		if ok, rest := parseCh(nc, ']'); ok {
			return List(lst...), rest, nil
		} else if !okWS {
			return Unit{}, c, ErrMissingSeparator
		}
	}
}

func parseMap(c cursor) (Unit, cursor, error) {
	ok, nc := parseCh(c, '{')
	if !ok {
		return Unit{}, c, ErrNotMap
	}
	var ents []Entry
	for {
		_, nc = parseWS(nc)
		k, rest, err := parseAny(nc)
		if err != nil {
			return Unit{}, c, err
		}
		nc = rest

		_, nc = parseWS(nc)
		ok, rest = parseCh(nc, ':')
		if !ok {
			return Unit{}, c, ErrMissingSeparator
		}
		nc = rest

		_, nc = parseWS(nc)
		v, rest, err := parseAny(nc)
		if err != nil {
			return Unit{}, c, err
		}
		nc = rest
		ents = append(ents, E(k, v))

		okWS, rest := parseWS(nc)
		nc = rest
		if ok, rest := parseCh(nc, '}'); ok {
			return Map(ents...), rest, nil
		} else if !okWS {
			return Unit{}, c, ErrMissingSeparator
		}
	}
}
