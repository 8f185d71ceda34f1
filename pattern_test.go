package dfalex

import "testing"

func buildOne(t *testing.T, pat Pattern) *DfaState[testLabel] {
	b := NewBuilder[testLabel]()
	b.AddPattern(pat, "hit")
	return mustBuild(t, b, nil)
}

func TestStrMatchesExactLiteral(t *testing.T) {
	start := buildOne(t, Str("cat"))
	if _, ok := runDFA(start, "cat"); !ok {
		t.Fatalf("expected \"cat\" to match")
	}
	if _, ok := runDFA(start, "ca"); ok {
		t.Fatalf("expected \"ca\" not to match")
	}
	if _, ok := runDFA(start, "cats"); ok {
		t.Fatalf("expected \"cats\" not to match (trailing input after accept)")
	}
}

func TestUnionMatchesEitherAlternative(t *testing.T) {
	start := buildOne(t, Union(Str("cat"), Str("dog")))
	for _, s := range []string{"cat", "dog"} {
		if _, ok := runDFA(start, s); !ok {
			t.Fatalf("expected %q to match", s)
		}
	}
	if _, ok := runDFA(start, "cow"); ok {
		t.Fatalf("expected \"cow\" not to match")
	}
}

func TestMaybeRepeatMatchesZeroOrMore(t *testing.T) {
	start := buildOne(t, MaybeRepeat(Char('a')))
	for _, s := range []string{"", "a", "aaaa"} {
		if _, ok := runDFA(start, s); !ok {
			t.Fatalf("expected %q to match", s)
		}
	}
	if _, ok := runDFA(start, "aab"); ok {
		t.Fatalf("expected \"aab\" not to match")
	}
}

func TestPlusRequiresAtLeastOne(t *testing.T) {
	start := buildOne(t, Plus(Char('a')))
	if _, ok := runDFA(start, ""); ok {
		t.Fatalf("expected empty string not to match a+")
	}
	if _, ok := runDFA(start, "aaa"); !ok {
		t.Fatalf("expected \"aaa\" to match a+")
	}
}

func TestOptionalMatchesZeroOrOne(t *testing.T) {
	start := buildOne(t, Concat(Str("colo"), Optional(Char('u')), Str("r")))
	for _, s := range []string{"color", "colour"} {
		if _, ok := runDFA(start, s); !ok {
			t.Fatalf("expected %q to match", s)
		}
	}
}

func TestRepeatBounded(t *testing.T) {
	start := buildOne(t, Repeat(Char('x'), 2, 4))
	cases := map[string]bool{
		"":     false,
		"x":    false,
		"xx":   true,
		"xxx":  true,
		"xxxx": true,
		"xxxxx": false,
	}
	for s, want := range cases {
		_, got := runDFA(start, s)
		if got != want {
			t.Fatalf("Repeat(x,2,4) on %q: got match=%v, want %v", s, got, want)
		}
	}
}

func TestRepeatUnbounded(t *testing.T) {
	start := buildOne(t, Repeat(Char('x'), 2, -1))
	if _, ok := runDFA(start, "x"); ok {
		t.Fatalf("expected single x not to match min-2 unbounded repeat")
	}
	if _, ok := runDFA(start, "xxxxxxxxxx"); !ok {
		t.Fatalf("expected many x's to match min-2 unbounded repeat")
	}
}

func TestCharClass(t *testing.T) {
	start := buildOne(t, Plus(CharClass(CharRange{First: '0', Last: '9'})))
	if _, ok := runDFA(start, "1942"); !ok {
		t.Fatalf("expected digit run to match")
	}
	if _, ok := runDFA(start, "19a2"); ok {
		t.Fatalf("expected non-digit to reject")
	}
}

func TestReversedLiteralIsReversedOrder(t *testing.T) {
	rev := Str("cat").Reversed()
	start := buildOne(t, rev)
	if _, ok := runDFA(start, "tac"); !ok {
		t.Fatalf("expected reversed literal to match \"tac\"")
	}
	if _, ok := runDFA(start, "cat"); ok {
		t.Fatalf("expected reversed literal not to match \"cat\"")
	}
}
