package dfalex_test

import (
	"fmt"

	"github.com/bikallem/dfalex"
	"github.com/bikallem/dfalex/cache"
)

type tokenKind string

func (k tokenKind) MarshalBinary() ([]byte, error) { return []byte(k), nil }

func (k *tokenKind) UnmarshalBinary(data []byte) error {
	*k = tokenKind(data)
	return nil
}

func Example() {
	builder := dfalex.NewBuilderWithCache[tokenKind](cache.New(1 << 20))
	builder.AddPattern(dfalex.Str("if"), "KEYWORD_IF")
	builder.AddPattern(dfalex.Str("else"), "KEYWORD_ELSE")
	builder.AddPattern(
		dfalex.Plus(dfalex.CharClass(
			dfalex.CharRange{First: 'a', Last: 'z'},
			dfalex.CharRange{First: 'A', Last: 'Z'},
		)),
		"IDENT",
	)

	start, err := builder.Build(dfalex.FirstResolver(builder.Order()))
	if err != nil {
		fmt.Println("build error:", err)
		return
	}

	for _, word := range []string{"if", "else", "iffy"} {
		cur := start
		for _, r := range word {
			cur = cur.NextState(uint16(r))
			if cur == nil {
				break
			}
		}
		if cur == nil {
			fmt.Printf("%s: no match\n", word)
			continue
		}
		label, ok := cur.Match()
		if !ok {
			fmt.Printf("%s: no match\n", word)
			continue
		}
		fmt.Printf("%s: %s\n", word, label)
	}

	// Output:
	// if: KEYWORD_IF
	// else: KEYWORD_ELSE
	// iffy: IDENT
}
